package cpu

import (
	"github.com/cubesphere-ml/cubesphere/internal/tensor"
)

// Vectorized same-shape paths.

func addVectorized(result, a, b *tensor.RawTensor) {
	switch a.DType() {
	case tensor.Float32:
		dst, x, y := result.AsFloat32(), a.AsFloat32(), b.AsFloat32()
		for i := range x {
			dst[i] = x[i] + y[i]
		}
	case tensor.Float64:
		dst, x, y := result.AsFloat64(), a.AsFloat64(), b.AsFloat64()
		for i := range x {
			dst[i] = x[i] + y[i]
		}
	default:
		panic("add: unsupported dtype")
	}
}

func subVectorized(result, a, b *tensor.RawTensor) {
	switch a.DType() {
	case tensor.Float32:
		dst, x, y := result.AsFloat32(), a.AsFloat32(), b.AsFloat32()
		for i := range x {
			dst[i] = x[i] - y[i]
		}
	case tensor.Float64:
		dst, x, y := result.AsFloat64(), a.AsFloat64(), b.AsFloat64()
		for i := range x {
			dst[i] = x[i] - y[i]
		}
	default:
		panic("sub: unsupported dtype")
	}
}

func mulVectorized(result, a, b *tensor.RawTensor) {
	switch a.DType() {
	case tensor.Float32:
		dst, x, y := result.AsFloat32(), a.AsFloat32(), b.AsFloat32()
		for i := range x {
			dst[i] = x[i] * y[i]
		}
	case tensor.Float64:
		dst, x, y := result.AsFloat64(), a.AsFloat64(), b.AsFloat64()
		for i := range x {
			dst[i] = x[i] * y[i]
		}
	default:
		panic("mul: unsupported dtype")
	}
}

func divVectorized(result, a, b *tensor.RawTensor) {
	switch a.DType() {
	case tensor.Float32:
		dst, x, y := result.AsFloat32(), a.AsFloat32(), b.AsFloat32()
		for i := range x {
			dst[i] = x[i] / y[i]
		}
	case tensor.Float64:
		dst, x, y := result.AsFloat64(), a.AsFloat64(), b.AsFloat64()
		for i := range x {
			dst[i] = x[i] / y[i]
		}
	default:
		panic("div: unsupported dtype")
	}
}

// Broadcasting paths.

func addBroadcast(result, a, b *tensor.RawTensor, outShape tensor.Shape) {
	broadcastBinary(result, a, b, outShape,
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y })
}

func subBroadcast(result, a, b *tensor.RawTensor, outShape tensor.Shape) {
	broadcastBinary(result, a, b, outShape,
		func(x, y float32) float32 { return x - y },
		func(x, y float64) float64 { return x - y })
}

func mulBroadcast(result, a, b *tensor.RawTensor, outShape tensor.Shape) {
	broadcastBinary(result, a, b, outShape,
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y })
}

func divBroadcast(result, a, b *tensor.RawTensor, outShape tensor.Shape) {
	broadcastBinary(result, a, b, outShape,
		func(x, y float32) float32 { return x / y },
		func(x, y float64) float64 { return x / y })
}

func broadcastBinary(result, a, b *tensor.RawTensor, outShape tensor.Shape,
	f32 func(x, y float32) float32, f64 func(x, y float64) float64) {
	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(a.Shape(), outShape)
	bStrides := computeBroadcastStridesForShape(b.Shape(), outShape)
	n := outShape.NumElements()

	switch a.DType() {
	case tensor.Float32:
		dst, x, y := result.AsFloat32(), a.AsFloat32(), b.AsFloat32()
		for i := 0; i < n; i++ {
			aIdx := computeFlatIndex(i, outStrides, aStrides)
			bIdx := computeFlatIndex(i, outStrides, bStrides)
			dst[i] = f32(x[aIdx], y[bIdx])
		}
	case tensor.Float64:
		dst, x, y := result.AsFloat64(), a.AsFloat64(), b.AsFloat64()
		for i := 0; i < n; i++ {
			aIdx := computeFlatIndex(i, outStrides, aStrides)
			bIdx := computeFlatIndex(i, outStrides, bStrides)
			dst[i] = f64(x[aIdx], y[bIdx])
		}
	default:
		panic("broadcast: unsupported dtype")
	}
}

// computeBroadcastStridesForShape computes strides for broadcasting a shape to outShape.
// Returns strides where dimensions of size 1 have stride 0 (for broadcasting).
func computeBroadcastStridesForShape(inShape, outShape tensor.Shape) []int {
	outDim := len(outShape)
	strides := make([]int, outDim)

	// Pad input shape with 1s on the left
	inDim := len(inShape)
	offset := outDim - inDim

	origStrides := inShape.ComputeStrides()

	for i := 0; i < outDim; i++ {
		inIdx := i - offset
		switch {
		case inIdx < 0 || inIdx >= inDim:
			// Padded dimension, stride is 0
			strides[i] = 0
		case inShape[inIdx] == 1:
			// Broadcast dimension, stride is 0
			strides[i] = 0
		default:
			strides[i] = origStrides[inIdx]
		}
	}

	return strides
}

// computeFlatIndex computes the flat index in the source array for a given output index.
func computeFlatIndex(outIdx int, outStrides, inStrides []int) int {
	ndim := len(outStrides)
	flatIdx := 0

	for i := 0; i < ndim; i++ {
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]
		flatIdx += coord * inStrides[i]
	}

	return flatIdx
}

// transposeData permutes tensor data according to axes.
func transposeData(result, src *tensor.RawTensor, axes []int) {
	shape := src.Shape()
	ndim := len(shape)
	srcStrides := shape.ComputeStrides()
	dstStrides := result.Shape().ComputeStrides()

	n := shape.NumElements()
	coords := make([]int, ndim)

	var copyElem func(dstIdx, srcIdx int)
	switch src.DType() {
	case tensor.Float32:
		dst, s := result.AsFloat32(), src.AsFloat32()
		copyElem = func(dstIdx, srcIdx int) { dst[dstIdx] = s[srcIdx] }
	case tensor.Float64:
		dst, s := result.AsFloat64(), src.AsFloat64()
		copyElem = func(dstIdx, srcIdx int) { dst[dstIdx] = s[srcIdx] }
	default:
		panic("transpose: unsupported dtype")
	}

	for i := 0; i < n; i++ {
		idx := i
		for dim := 0; dim < ndim; dim++ {
			coords[dim] = idx / srcStrides[dim]
			idx %= srcStrides[dim]
		}

		dstIdx := 0
		for dstDim, srcDim := range axes {
			dstIdx += coords[srcDim] * dstStrides[dstDim]
		}

		copyElem(dstIdx, i)
	}
}
