package cpu

import (
	"fmt"

	"github.com/cubesphere-ml/cubesphere/internal/tensor"
)

// Cat concatenates tensors along the specified dimension.
//
// All tensors must have the same shape except along the concatenation dimension.
// Supports negative dim indexing (-1 = last dimension).
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	shape := tensors[0].Shape()
	ndim := len(shape)
	dtype := tensors[0].DType()

	dim = tensor.NormalizeDim(dim, ndim)
	if dim < 0 {
		panic(fmt.Sprintf("cat: dimension out of range for %dD tensor", ndim))
	}

	totalDim := 0
	for i, t := range tensors {
		tShape := t.Shape()
		if len(tShape) != ndim {
			panic(fmt.Sprintf("cat: tensor %d has %d dimensions, expected %d", i, len(tShape), ndim))
		}
		if t.DType() != dtype {
			panic(fmt.Sprintf("cat: tensor %d has dtype %s, expected %s", i, t.DType(), dtype))
		}
		for d := 0; d < ndim; d++ {
			if d == dim {
				totalDim += tShape[d]
			} else if tShape[d] != shape[d] {
				panic(fmt.Sprintf("cat: tensor %d dimension %d is %d, expected %d", i, d, tShape[d], shape[d]))
			}
		}
	}

	outShape := shape.Clone()
	outShape[dim] = totalDim

	result, err := tensor.NewRaw(outShape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cat: %v", err))
	}

	// Copy contiguous bands. For each position in the outer dimensions,
	// every source tensor contributes one block of dimSize*inner elements.
	esz := dtype.Size()
	outer := 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}
	inner := esz
	for d := dim + 1; d < ndim; d++ {
		inner *= shape[d]
	}

	outData := result.Data()
	outRowBytes := totalDim * inner
	offset := 0
	for _, t := range tensors {
		data := t.Data()
		rowBytes := t.Shape()[dim] * inner
		for o := 0; o < outer; o++ {
			src := data[o*rowBytes : (o+1)*rowBytes]
			dst := outData[o*outRowBytes+offset:]
			copy(dst, src)
		}
		offset += rowBytes
	}

	return result
}

// Narrow slices a band of the given length along a dimension, starting at start.
// The result is a copy. Supports negative dim indexing.
func (cpu *CPUBackend) Narrow(x *tensor.RawTensor, dim, start, length int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	dim = tensor.NormalizeDim(dim, ndim)
	if dim < 0 {
		panic(fmt.Sprintf("narrow: dimension out of range for %dD tensor", ndim))
	}
	if length <= 0 || start < 0 || start+length > shape[dim] {
		panic(fmt.Sprintf("narrow: band [%d, %d) out of range for dimension of size %d", start, start+length, shape[dim]))
	}

	outShape := shape.Clone()
	outShape[dim] = length

	result, err := tensor.NewRaw(outShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("narrow: %v", err))
	}

	esz := x.DType().Size()
	outer := 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}
	inner := esz
	for d := dim + 1; d < ndim; d++ {
		inner *= shape[d]
	}

	srcData := x.Data()
	dstData := result.Data()
	srcRowBytes := shape[dim] * inner
	dstRowBytes := length * inner
	for o := 0; o < outer; o++ {
		src := srcData[o*srcRowBytes+start*inner : o*srcRowBytes+(start+length)*inner]
		copy(dstData[o*dstRowBytes:], src)
	}

	return result
}

// Flip reverses element order along a dimension.
// Supports negative dim indexing.
func (cpu *CPUBackend) Flip(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	dim = tensor.NormalizeDim(dim, ndim)
	if dim < 0 {
		panic(fmt.Sprintf("flip: dimension out of range for %dD tensor", ndim))
	}

	result, err := tensor.NewRaw(shape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("flip: %v", err))
	}

	esz := x.DType().Size()
	dimSize := shape[dim]
	outer := 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}
	inner := esz
	for d := dim + 1; d < ndim; d++ {
		inner *= shape[d]
	}

	srcData := x.Data()
	dstData := result.Data()
	rowBytes := dimSize * inner
	for o := 0; o < outer; o++ {
		base := o * rowBytes
		for i := 0; i < dimSize; i++ {
			src := srcData[base+i*inner : base+(i+1)*inner]
			dst := dstData[base+(dimSize-1-i)*inner:]
			copy(dst, src)
		}
	}

	return result
}

// Index selects one slice along a dimension, dropping that dimension.
// Supports negative dim indexing.
func (cpu *CPUBackend) Index(x *tensor.RawTensor, dim, index int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	normDim := tensor.NormalizeDim(dim, ndim)
	if normDim < 0 {
		panic(fmt.Sprintf("index: dimension out of range for %dD tensor", ndim))
	}
	if index < 0 || index >= shape[normDim] {
		panic(fmt.Sprintf("index: %d out of range for dimension of size %d", index, shape[normDim]))
	}

	band := cpu.Narrow(x, normDim, index, 1)
	return cpu.Squeeze(band, normDim)
}

// Unsqueeze adds a dimension of size 1 at the specified position.
// Supports negative dim indexing. This is a view operation (reshape).
func (cpu *CPUBackend) Unsqueeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	// Valid insertion range is [0, ndim]
	if dim < 0 {
		dim = ndim + 1 + dim
	}
	if dim < 0 || dim > ndim {
		panic(fmt.Sprintf("unsqueeze: dimension %d out of range for %dD tensor (valid: [0, %d])", dim, ndim, ndim))
	}

	newShape := make(tensor.Shape, ndim+1)
	copy(newShape, shape[:dim])
	newShape[dim] = 1
	copy(newShape[dim+1:], shape[dim:])

	return cpu.Reshape(x, newShape)
}

// Squeeze removes a dimension of size 1 at the specified position.
// Panics if the dimension size is not 1. Supports negative dim indexing.
func (cpu *CPUBackend) Squeeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	dim = tensor.NormalizeDim(dim, ndim)
	if dim < 0 {
		panic(fmt.Sprintf("squeeze: dimension out of range for %dD tensor", ndim))
	}
	if shape[dim] != 1 {
		panic(fmt.Sprintf("squeeze: dimension %d has size %d, must be 1", dim, shape[dim]))
	}

	newShape := make(tensor.Shape, 0, ndim-1)
	for i := 0; i < ndim; i++ {
		if i != dim {
			newShape = append(newShape, shape[i])
		}
	}

	return cpu.Reshape(x, newShape)
}
