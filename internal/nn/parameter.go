package nn

import (
	"github.com/cubesphere-ml/cubesphere/internal/tensor"
)

// Parameter represents a trainable parameter in a neural network.
//
// Parameters are the tensors an external optimizer mutates between
// forward evaluations. They typically represent convolution kernels and
// biases. Gradients are supplied by the host; the framework does not
// compute them.
//
// Example:
//
//	kernel := nn.NewParameter("equatorial.kernel", kernelTensor)
//	kernel.SetGrad(hostComputedGrad)
//	optimizer.Step(model.Parameters())
type Parameter[B tensor.Backend] struct {
	name   string                     // Parameter name (e.g., "equatorial.kernel")
	tensor *tensor.Tensor[float32, B] // The parameter tensor
	grad   *tensor.Tensor[float32, B] // Gradient supplied by the host, nil until set
}

// NewParameter creates a new trainable parameter.
//
// The parameter tensor should be initialized before creating the
// Parameter. The gradient stays nil until the host supplies one.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// Grad returns the gradient tensor, or nil if none has been supplied.
func (p *Parameter[B]) Grad() *tensor.Tensor[float32, B] {
	return p.grad
}

// SetGrad sets the gradient tensor.
//
// This is called by the host before an optimizer step.
func (p *Parameter[B]) SetGrad(grad *tensor.Tensor[float32, B]) {
	p.grad = grad
}

// ZeroGrad clears the gradient tensor.
//
// This should be called after each optimizer step to avoid reusing a
// stale gradient.
func (p *Parameter[B]) ZeroGrad() {
	p.grad = nil
}
