package tensor

// Cat concatenates tensors along the specified dimension.
//
// All tensors must have the same shape except along the concatenation dimension.
// Supports negative dim indexing (-1 = last dimension).
//
// Example:
//
//	a := tensor.Randn[float32](Shape{2, 3}, backend)
//	b := tensor.Randn[float32](Shape{2, 5}, backend)
//	c := tensor.Cat([]*Tensor[float32, B]{a, b}, 1) // Shape: [2, 8]
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	if len(tensors) == 1 {
		return tensors[0].Clone()
	}

	rawTensors := make([]*RawTensor, len(tensors))
	backend := tensors[0].backend
	for i, t := range tensors {
		rawTensors[i] = t.raw
	}

	result := backend.Cat(rawTensors, dim)
	return New[T, B](result, backend)
}

// Narrow slices a band of the given length along a dimension,
// starting at start. Supports negative dim indexing.
//
// Example:
//
//	x := tensor.Randn[float32](Shape{2, 3, 8}, backend)
//	y := x.Narrow(-1, 2, 4) // Shape: [2, 3, 4]
func (t *Tensor[T, B]) Narrow(dim, start, length int) *Tensor[T, B] {
	result := t.backend.Narrow(t.raw, dim, start, length)
	return New[T, B](result, t.backend)
}

// Flip reverses element order along a dimension.
// Supports negative dim indexing.
func (t *Tensor[T, B]) Flip(dim int) *Tensor[T, B] {
	result := t.backend.Flip(t.raw, dim)
	return New[T, B](result, t.backend)
}

// Index selects one slice along a dimension, dropping that dimension.
//
// Example:
//
//	x := tensor.Randn[float32](Shape{2, 3, 8, 8, 6}, backend)
//	face := x.Index(-1, 4) // Shape: [2, 3, 8, 8]
func (t *Tensor[T, B]) Index(dim, index int) *Tensor[T, B] {
	result := t.backend.Index(t.raw, dim, index)
	return New[T, B](result, t.backend)
}

// Unsqueeze adds a dimension of size 1 at the specified position.
// Supports negative dim indexing.
//
// Example:
//
//	x := tensor.Randn[float32](Shape{2, 3}, backend)
//	y := x.Unsqueeze(1)  // Shape: [2, 1, 3]
//	z := x.Unsqueeze(-1) // Shape: [2, 3, 1]
func (t *Tensor[T, B]) Unsqueeze(dim int) *Tensor[T, B] {
	result := t.backend.Unsqueeze(t.raw, dim)
	return New[T, B](result, t.backend)
}

// Squeeze removes a dimension of size 1 at the specified position.
// Panics if the dimension size is not 1.
// Supports negative dim indexing.
func (t *Tensor[T, B]) Squeeze(dim int) *Tensor[T, B] {
	result := t.backend.Squeeze(t.raw, dim)
	return New[T, B](result, t.backend)
}
