// Package nn implements neural network layers for the CubeSphere framework.
//
// This package provides building blocks for convolutional models on the
// cubed-sphere grid:
//   - Module interface: base interface for all layers
//   - Parameter: trainable parameters mutated by an external optimizer
//   - CubeSpherePadding2D: ghost-cell halo exchange across cube faces
//   - CubeSphereConv2D: face-group convolution with shared kernels
//   - PeriodicPadding2D, FillPadding2D, RowConv2D: flat-grid companions
//   - Activations: ReLU, Sigmoid, Tanh
//   - Loss functions: MSE, latitude-weighted MSE, anomaly correlation
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import (
	"github.com/cubesphere-ml/cubesphere/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Every layer must implement:
//   - Forward: Compute output from input
//   - Parameters: Return all trainable parameters
//
// Forward panics on invalid input; layers that validate user-supplied
// configuration also expose an error-returning Call method.
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	//
	// The input tensor should have the appropriate shape for this module.
	// For example, CubeSphereConv2D expects [batch, channels, H, W, 6].
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module.
	//
	// Returns an empty slice for modules without trainable parameters
	// (e.g., activation functions and padding layers).
	Parameters() []*Parameter[B]
}
