// Package tensor provides the core tensor types and operations for the CubeSphere ML framework.
package tensor

import (
	"fmt"
	"math"
)

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple backend for testing.
// It implements operations naively for correctness verification.
type MockBackend struct{}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// Add performs element-wise addition with broadcasting.
func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (m *MockBackend) Sub(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (m *MockBackend) Div(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x / y })
}

// elementWise performs element-wise operations with broadcasting.
func (m *MockBackend) elementWise(a, b *RawTensor, op func(float64, float64) float64) *RawTensor {
	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(err)
	}

	result, err := NewRaw(outShape, a.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	aData := m.toFloat64Slice(a)
	bData := m.toFloat64Slice(b)
	resultData := make([]float64, outShape.NumElements())

	for i := range resultData {
		aIdx := m.broadcastIndex(i, outShape, a.Shape())
		bIdx := m.broadcastIndex(i, outShape, b.Shape())
		resultData[i] = op(aData[aIdx], bData[bIdx])
	}

	m.fromFloat64Slice(resultData, result)
	return result
}

// broadcastIndex maps a flat index in the output shape to the
// corresponding flat index in a (possibly smaller) source shape.
func (m *MockBackend) broadcastIndex(flatIdx int, outShape, srcShape Shape) int {
	outStrides := outShape.ComputeStrides()
	srcStrides := srcShape.ComputeStrides()

	offset := len(outShape) - len(srcShape)
	srcIdx := 0
	for d := 0; d < len(outShape); d++ {
		coord := (flatIdx / outStrides[d]) % outShape[d]
		sd := d - offset
		if sd < 0 {
			continue
		}
		if srcShape[sd] == 1 {
			continue
		}
		srcIdx += coord * srcStrides[sd]
	}
	return srcIdx
}

// MulScalar multiplies each element by a scalar.
func (m *MockBackend) MulScalar(x *RawTensor, scalar any) *RawTensor {
	return m.scalarOp(x, scalar, func(v, s float64) float64 { return v * s })
}

// AddScalar adds a scalar to each element.
func (m *MockBackend) AddScalar(x *RawTensor, scalar any) *RawTensor {
	return m.scalarOp(x, scalar, func(v, s float64) float64 { return v + s })
}

// SubScalar subtracts a scalar from each element.
func (m *MockBackend) SubScalar(x *RawTensor, scalar any) *RawTensor {
	return m.scalarOp(x, scalar, func(v, s float64) float64 { return v - s })
}

// DivScalar divides each element by a scalar.
func (m *MockBackend) DivScalar(x *RawTensor, scalar any) *RawTensor {
	return m.scalarOp(x, scalar, func(v, s float64) float64 { return v / s })
}

func (m *MockBackend) scalarOp(x *RawTensor, scalar any, op func(v, s float64) float64) *RawTensor {
	var s float64
	switch v := scalar.(type) {
	case float32:
		s = float64(v)
	case float64:
		s = v
	default:
		panic(fmt.Sprintf("mock: unsupported scalar type %T", scalar))
	}
	return m.mathOp(x, func(v float64) float64 { return op(v, s) })
}

// Exp computes element-wise exponential.
func (m *MockBackend) Exp(x *RawTensor) *RawTensor {
	return m.mathOp(x, math.Exp)
}

// Sqrt computes element-wise square root.
func (m *MockBackend) Sqrt(x *RawTensor) *RawTensor {
	return m.mathOp(x, math.Sqrt)
}

// Cos computes element-wise cosine.
func (m *MockBackend) Cos(x *RawTensor) *RawTensor {
	return m.mathOp(x, math.Cos)
}

// Sin computes element-wise sine.
func (m *MockBackend) Sin(x *RawTensor) *RawTensor {
	return m.mathOp(x, math.Sin)
}

func (m *MockBackend) mathOp(x *RawTensor, f func(float64) float64) *RawTensor {
	result, err := NewRaw(x.Shape(), x.DType(), m.Device())
	if err != nil {
		panic(err)
	}
	data := m.toFloat64Slice(x)
	for i, v := range data {
		data[i] = f(v)
	}
	m.fromFloat64Slice(data, result)
	return result
}

// Conv2D is not implemented by the mock backend.
func (m *MockBackend) Conv2D(input, kernel *RawTensor, params Conv2DParams) *RawTensor {
	panic("mock: Conv2D not implemented")
}

// Reshape returns a copy of the tensor with a new shape.
func (m *MockBackend) Reshape(t *RawTensor, newShape Shape) *RawTensor {
	result, err := t.Clone().WithShape(newShape)
	if err != nil {
		panic(err)
	}
	return result
}

// Transpose permutes dimensions. Empty axes reverse all dimensions.
func (m *MockBackend) Transpose(t *RawTensor, axes ...int) *RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("mock: transpose axes length %d != ndim %d", len(axes), ndim))
	}

	newShape := make(Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	result, err := NewRaw(newShape, t.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	srcStrides := shape.ComputeStrides()
	dstStrides := newShape.ComputeStrides()
	src := m.toFloat64Slice(t)
	dst := make([]float64, len(src))

	for i := range src {
		srcIdx := 0
		for d := 0; d < ndim; d++ {
			coord := (i / dstStrides[d]) % newShape[d]
			srcIdx += coord * srcStrides[axes[d]]
		}
		dst[i] = src[srcIdx]
	}

	m.fromFloat64Slice(dst, result)
	return result
}

// Sum reduces the tensor to its scalar total, shape [1].
func (m *MockBackend) Sum(x *RawTensor) *RawTensor {
	result, err := NewRaw(Shape{1}, x.DType(), m.Device())
	if err != nil {
		panic(err)
	}
	var sum float64
	for _, v := range m.toFloat64Slice(x) {
		sum += v
	}
	m.fromFloat64Slice([]float64{sum}, result)
	return result
}

// SumDim sums along a dimension.
func (m *MockBackend) SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor {
	return m.reduceDim(x, dim, keepDim, false)
}

// MeanDim averages along a dimension.
func (m *MockBackend) MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor {
	return m.reduceDim(x, dim, keepDim, true)
}

func (m *MockBackend) reduceDim(x *RawTensor, dim int, keepDim, mean bool) *RawTensor {
	shape := x.Shape()
	ndim := len(shape)
	dim = NormalizeDim(dim, ndim)
	if dim < 0 {
		panic("mock: dimension out of range")
	}

	outShape := make(Shape, 0, ndim)
	for d := 0; d < ndim; d++ {
		switch {
		case d != dim:
			outShape = append(outShape, shape[d])
		case keepDim:
			outShape = append(outShape, 1)
		}
	}
	if len(outShape) == 0 {
		outShape = Shape{1}
	}

	outer := 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}
	inner := 1
	for d := dim + 1; d < ndim; d++ {
		inner *= shape[d]
	}

	result, err := NewRaw(outShape, x.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	src := m.toFloat64Slice(x)
	dst := make([]float64, outer*inner)
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			var sum float64
			for k := 0; k < shape[dim]; k++ {
				sum += src[(o*shape[dim]+k)*inner+i]
			}
			if mean {
				sum /= float64(shape[dim])
			}
			dst[o*inner+i] = sum
		}
	}

	m.fromFloat64Slice(dst, result)
	return result
}

// Cat is not implemented by the mock backend.
func (m *MockBackend) Cat(tensors []*RawTensor, dim int) *RawTensor {
	panic("mock: Cat not implemented")
}

// Narrow is not implemented by the mock backend.
func (m *MockBackend) Narrow(x *RawTensor, dim, start, length int) *RawTensor {
	panic("mock: Narrow not implemented")
}

// Flip is not implemented by the mock backend.
func (m *MockBackend) Flip(x *RawTensor, dim int) *RawTensor {
	panic("mock: Flip not implemented")
}

// Index is not implemented by the mock backend.
func (m *MockBackend) Index(x *RawTensor, dim, index int) *RawTensor {
	panic("mock: Index not implemented")
}

// Unsqueeze adds a dimension of size 1.
func (m *MockBackend) Unsqueeze(x *RawTensor, dim int) *RawTensor {
	shape := x.Shape()
	ndim := len(shape)
	if dim < 0 {
		dim = ndim + 1 + dim
	}
	if dim < 0 || dim > ndim {
		panic(fmt.Sprintf("mock: unsqueeze dimension %d out of range", dim))
	}
	newShape := make(Shape, ndim+1)
	copy(newShape, shape[:dim])
	newShape[dim] = 1
	copy(newShape[dim+1:], shape[dim:])
	return m.Reshape(x, newShape)
}

// Squeeze removes a dimension of size 1.
func (m *MockBackend) Squeeze(x *RawTensor, dim int) *RawTensor {
	shape := x.Shape()
	ndim := len(shape)
	dim = NormalizeDim(dim, ndim)
	if dim < 0 || shape[dim] != 1 {
		panic(fmt.Sprintf("mock: cannot squeeze dimension %d of %v", dim, shape))
	}
	newShape := make(Shape, 0, ndim-1)
	for i := 0; i < ndim; i++ {
		if i != dim {
			newShape = append(newShape, shape[i])
		}
	}
	return m.Reshape(x, newShape)
}

func (m *MockBackend) toFloat64Slice(t *RawTensor) []float64 {
	switch t.DType() {
	case Float32:
		src := t.AsFloat32()
		out := make([]float64, len(src))
		for i, v := range src {
			out[i] = float64(v)
		}
		return out
	case Float64:
		src := t.AsFloat64()
		out := make([]float64, len(src))
		copy(out, src)
		return out
	default:
		panic(fmt.Sprintf("mock: unsupported dtype %s", t.DType()))
	}
}

func (m *MockBackend) fromFloat64Slice(data []float64, t *RawTensor) {
	switch t.DType() {
	case Float32:
		dst := t.AsFloat32()
		for i, v := range data {
			dst[i] = float32(v)
		}
	case Float64:
		copy(t.AsFloat64(), data)
	default:
		panic(fmt.Sprintf("mock: unsupported dtype %s", t.DType()))
	}
}
