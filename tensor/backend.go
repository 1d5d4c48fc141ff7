// Copyright 2025 CubeSphere ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/cubesphere-ml/cubesphere/internal/tensor"

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - backend/cpu: Pure Go CPU backend
//
// Example:
//
//	import (
//	    "github.com/cubesphere-ml/cubesphere/tensor"
//	    "github.com/cubesphere-ml/cubesphere/backend/cpu"
//	)
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y)  // Uses backend.Add under the hood
type Backend interface {
	// Element-wise binary operations.
	Add(a, b *RawTensor) *RawTensor // Element-wise addition.
	Sub(a, b *RawTensor) *RawTensor // Element-wise subtraction.
	Mul(a, b *RawTensor) *RawTensor // Element-wise multiplication.
	Div(a, b *RawTensor) *RawTensor // Element-wise division.

	// Scalar operations (element-wise with scalar).
	MulScalar(x *RawTensor, scalar any) *RawTensor // Multiply by scalar.
	AddScalar(x *RawTensor, scalar any) *RawTensor // Add scalar.
	SubScalar(x *RawTensor, scalar any) *RawTensor // Subtract scalar.
	DivScalar(x *RawTensor, scalar any) *RawTensor // Divide by scalar.

	// Math operations (element-wise).
	Exp(x *RawTensor) *RawTensor  // Exponential.
	Sqrt(x *RawTensor) *RawTensor // Square root.
	Cos(x *RawTensor) *RawTensor  // Cosine.
	Sin(x *RawTensor) *RawTensor  // Sine.

	// Convolution over [N, C, H, W] input with [K_h, K_w, C_in, C_out] kernel.
	Conv2D(input, kernel *RawTensor, params Conv2DParams) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor // Reshape tensor.
	Transpose(t *RawTensor, axes ...int) *RawTensor  // Transpose dimensions.

	// Reduction operations.
	Sum(x *RawTensor) *RawTensor                            // Total sum (scalar result).
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor  // Sum along dimension.
	MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor // Mean along dimension.

	// Manipulation operations.
	Cat(tensors []*RawTensor, dim int) *RawTensor           // Concatenate along dimension.
	Narrow(x *RawTensor, dim, start, length int) *RawTensor // Slice a band along dimension.
	Flip(x *RawTensor, dim int) *RawTensor                  // Reverse order along dimension.
	Index(x *RawTensor, dim, index int) *RawTensor          // Select one slice, dropping the dimension.
	Unsqueeze(x *RawTensor, dim int) *RawTensor             // Add dimension of size 1.
	Squeeze(x *RawTensor, dim int) *RawTensor               // Remove dimension of size 1.

	// Metadata.
	Name() string   // Backend name (e.g., "CPU").
	Device() Device // Device type.
}

// Compile-time check that internal Backend implements public Backend.
var _ Backend = tensor.Backend(nil)
