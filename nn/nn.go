// Copyright 2025 CubeSphere ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/cubesphere-ml/cubesphere/internal/nn"
	"github.com/cubesphere-ml/cubesphere/internal/tensor"
)

// ErrInvalidArgument is the sentinel wrapped by every configuration or
// input validation failure in this package. Match it with errors.Is.
var ErrInvalidArgument = nn.ErrInvalidArgument

// Module interface defines the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a trainable parameter in a neural network.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Cubed-sphere layers

// CubeSpherePadding2D pads every face of a cubed-sphere tensor with
// ghost cells from its neighboring faces.
type CubeSpherePadding2D[B tensor.Backend] = nn.CubeSpherePadding2D[B]

// CubeSpherePadding2DConfig is the serializable configuration of a
// CubeSpherePadding2D layer.
type CubeSpherePadding2DConfig = nn.CubeSpherePadding2DConfig

// NewCubeSpherePadding2D creates a cubed-sphere padding layer with the
// given halo width.
//
// Example:
//
//	backend := cpu.New()
//	pad, err := nn.NewCubeSpherePadding2D(1, backend)
//	padded, err := pad.Pad(input)  // [N,C,H,W,6] -> [N,C,H+2,W+2,6]
func NewCubeSpherePadding2D[B tensor.Backend](padding int, backend B) (*CubeSpherePadding2D[B], error) {
	return nn.NewCubeSpherePadding2D(padding, backend)
}

// NewCubeSpherePadding2DFromConfig reconstructs a padding layer from
// its configuration record.
func NewCubeSpherePadding2DFromConfig[B tensor.Backend](cfg CubeSpherePadding2DConfig, backend B) (*CubeSpherePadding2D[B], error) {
	return nn.NewCubeSpherePadding2DFromConfig(cfg, backend)
}

// CubeSphereConv2D convolves a cubed-sphere tensor face by face with
// kernels shared within face groups.
type CubeSphereConv2D[B tensor.Backend] = nn.CubeSphereConv2D[B]

// CubeSphereConv2DConfig is the serializable configuration of a
// CubeSphereConv2D layer.
type CubeSphereConv2DConfig = nn.CubeSphereConv2DConfig

// NewCubeSphereConv2D creates a cubed-sphere convolution layer.
// Kernels are allocated on the first forward pass, when the input
// channel count is known.
//
// Example:
//
//	conv, err := nn.NewCubeSphereConv2D(nn.CubeSphereConv2DConfig{
//	    Filters:    4,
//	    KernelSize: [2]int{3, 3},
//	    UseBias:    true,
//	}, backend)
//	output, err := conv.Call(padded)
func NewCubeSphereConv2D[B tensor.Backend](cfg CubeSphereConv2DConfig, backend B) (*CubeSphereConv2D[B], error) {
	return nn.NewCubeSphereConv2D(cfg, backend)
}

// NewCubeSphereConv2DFromConfig reconstructs a convolution layer from a
// configuration record produced by Config.
func NewCubeSphereConv2DFromConfig[B tensor.Backend](cfg CubeSphereConv2DConfig, backend B) (*CubeSphereConv2D[B], error) {
	return nn.NewCubeSphereConv2DFromConfig(cfg, backend)
}

// Flat-grid layers

// Conv2D represents a plain 2D convolutional layer over channels-first input.
type Conv2D[B tensor.Backend] = nn.Conv2D[B]

// NewConv2D creates a 2D convolutional layer. padding is "valid" or
// "same".
//
// Example:
//
//	conv, err := nn.NewConv2D(2, 4, [2]int{3, 3}, [2]int{1, 1}, [2]int{1, 1}, "valid", true, backend)
func NewConv2D[B tensor.Backend](
	inChannels, filters int,
	kernelSize, strides, dilation [2]int,
	padding string,
	useBias bool,
	backend B,
) (*Conv2D[B], error) {
	return nn.NewConv2D(inChannels, filters, kernelSize, strides, dilation, padding, useBias, backend)
}

// PeriodicPadding2D pads a flat grid by wrapping around, for fields
// periodic in longitude.
type PeriodicPadding2D[B tensor.Backend] = nn.PeriodicPadding2D[B]

// NewPeriodicPadding2D creates a wrap-around padding layer with
// symmetric [height, width] amounts.
func NewPeriodicPadding2D[B tensor.Backend](padding [2]int, backend B) (*PeriodicPadding2D[B], error) {
	return nn.NewPeriodicPadding2D(padding, backend)
}

// FillPadding2D pads a flat grid by replicating its edge rows and columns.
type FillPadding2D[B tensor.Backend] = nn.FillPadding2D[B]

// NewFillPadding2D creates an edge-replicating padding layer with
// symmetric [height, width] amounts.
func NewFillPadding2D[B tensor.Backend](padding [2]int, backend B) (*FillPadding2D[B], error) {
	return nn.NewFillPadding2D(padding, backend)
}

// RowConv2D is a 2D convolution whose weights are shared only along rows.
type RowConv2D[B tensor.Backend] = nn.RowConv2D[B]

// NewRowConv2D creates a row-shared convolution layer.
func NewRowConv2D[B tensor.Backend](filters int, kernelSize, strides [2]int, useBias bool, backend B) (*RowConv2D[B], error) {
	return nn.NewRowConv2D(filters, kernelSize, strides, useBias, backend)
}

// Containers

// Sequential chains modules so each module's output feeds the next.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a new Sequential container.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// Activations

// ReLU represents the Rectified Linear Unit activation function.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a new ReLU activation layer.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Sigmoid represents the Sigmoid activation function.
type Sigmoid[B tensor.Backend] = nn.Sigmoid[B]

// NewSigmoid creates a new Sigmoid activation layer.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return nn.NewSigmoid[B]()
}

// Tanh represents the Tanh activation function.
type Tanh[B tensor.Backend] = nn.Tanh[B]

// NewTanh creates a new Tanh activation layer.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return nn.NewTanh[B]()
}

// Loss functions

// MSELoss computes Mean Squared Error loss.
type MSELoss[B tensor.Backend] = nn.MSELoss[B]

// NewMSELoss creates a new MSE loss function.
func NewMSELoss[B tensor.Backend](backend B) *MSELoss[B] {
	return nn.NewMSELoss(backend)
}

// LatitudeWeightedMSE is an MSE loss weighted by a function of latitude.
type LatitudeWeightedMSE[B tensor.Backend] = nn.LatitudeWeightedMSE[B]

// Weighting mode names accepted by NewLatitudeWeightedMSE.
const (
	WeightingCosine      = nn.WeightingCosine
	WeightingMidlatitude = nn.WeightingMidlatitude
)

// NewLatitudeWeightedMSE creates a latitude-weighted MSE loss from the
// latitude coordinates of the grid rows, in degrees.
func NewLatitudeWeightedMSE[B tensor.Backend](lats []float32, axis int, weighting string, backend B) (*LatitudeWeightedMSE[B], error) {
	return nn.NewLatitudeWeightedMSE(lats, axis, weighting, backend)
}

// AnomalyCorrelation scores predictions by their correlation with the targets.
type AnomalyCorrelation[B tensor.Backend] = nn.AnomalyCorrelation[B]

// NewAnomalyCorrelation creates an anomaly correlation loss.
func NewAnomalyCorrelation[B tensor.Backend](regularizeMSE, reverse bool, backend B) (*AnomalyCorrelation[B], error) {
	return nn.NewAnomalyCorrelation(regularizeMSE, reverse, backend)
}

// Initializers

// Xavier performs Glorot uniform initialization.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, backend)
}

// Zeros creates a zero-filled tensor, commonly used for biases.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Zeros(shape, backend)
}

// Ones creates a tensor filled with ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Ones(shape, backend)
}

// Randn creates a tensor with values from the standard normal distribution.
func Randn[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Randn(shape, backend)
}
