package nn

import (
	"fmt"

	"github.com/cubesphere-ml/cubesphere/internal/tensor"
)

// PeriodicPadding2D pads a flat channels-first grid by wrapping around:
// rows added at the top come from the bottom of the grid and vice versa,
// and likewise for columns. Useful for fields periodic in longitude.
//
// Input shape:  [batch, channels, H, W]
// Output shape: [batch, channels, H+2*padH, W+2*padW]
type PeriodicPadding2D[B tensor.Backend] struct {
	padding [2]int // symmetric [height, width] amounts
	backend B
}

// NewPeriodicPadding2D creates a wrap-around padding layer with
// symmetric [height, width] amounts.
func NewPeriodicPadding2D[B tensor.Backend](padding [2]int, backend B) (*PeriodicPadding2D[B], error) {
	if padding[0] < 0 || padding[1] < 0 {
		return nil, fmt.Errorf("%w: padding %v must be non-negative", ErrInvalidArgument, padding)
	}
	return &PeriodicPadding2D[B]{padding: padding, backend: backend}, nil
}

// Pad wraps the grid along both spatial axes. The width axis is padded
// first, so the corner blocks wrap diagonally.
func (l *PeriodicPadding2D[B]) Pad(input *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	shape := input.Shape()
	if len(shape) != 4 {
		return nil, fmt.Errorf("%w: expected 4D input [N,C,H,W], got %dD", ErrInvalidArgument, len(shape))
	}
	h, w := shape[2], shape[3]
	ph, pw := l.padding[0], l.padding[1]
	if ph > h || pw > w {
		return nil, fmt.Errorf("%w: padding %v exceeds grid %dx%d", ErrInvalidArgument, l.padding, h, w)
	}

	out := input
	if pw > 0 {
		left := out.Narrow(3, w-pw, pw)
		right := out.Narrow(3, 0, pw)
		out = tensor.Cat([]*tensor.Tensor[float32, B]{left, out, right}, 3)
	}
	if ph > 0 {
		top := out.Narrow(2, h-ph, ph)
		bottom := out.Narrow(2, 0, ph)
		out = tensor.Cat([]*tensor.Tensor[float32, B]{top, out, bottom}, 2)
	}
	if out == input {
		out = input.Clone()
	}
	return out, nil
}

// Forward pads the input, panicking on invalid shapes.
func (l *PeriodicPadding2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out, err := l.Pad(input)
	if err != nil {
		panic(err)
	}
	return out
}

// Parameters returns an empty slice.
func (l *PeriodicPadding2D[B]) Parameters() []*Parameter[B] {
	return nil
}

// FillPadding2D pads a flat channels-first grid by replicating its edge
// rows and columns. Useful near the poles of a latitude-longitude grid
// where wrap-around is wrong.
//
// Input shape:  [batch, channels, H, W]
// Output shape: [batch, channels, H+2*padH, W+2*padW]
type FillPadding2D[B tensor.Backend] struct {
	padding [2]int // symmetric [height, width] amounts
	backend B
}

// NewFillPadding2D creates an edge-replicating padding layer with
// symmetric [height, width] amounts.
func NewFillPadding2D[B tensor.Backend](padding [2]int, backend B) (*FillPadding2D[B], error) {
	if padding[0] < 0 || padding[1] < 0 {
		return nil, fmt.Errorf("%w: padding %v must be non-negative", ErrInvalidArgument, padding)
	}
	return &FillPadding2D[B]{padding: padding, backend: backend}, nil
}

// Pad replicates the edge rows, then the edge columns of the
// height-padded result, so corners replicate the corner values.
func (l *FillPadding2D[B]) Pad(input *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	shape := input.Shape()
	if len(shape) != 4 {
		return nil, fmt.Errorf("%w: expected 4D input [N,C,H,W], got %dD", ErrInvalidArgument, len(shape))
	}
	h, w := shape[2], shape[3]
	ph, pw := l.padding[0], l.padding[1]

	out := input
	if ph > 0 {
		out = replicateEdge(out, 2, ph, h)
	}
	if pw > 0 {
		out = replicateEdge(out, 3, pw, w)
	}
	if out == input {
		out = input.Clone()
	}
	return out, nil
}

// replicateEdge pads dimension dim of x by repeating its first and last
// slices n times each. size is the current extent of dim.
func replicateEdge[B tensor.Backend](x *tensor.Tensor[float32, B], dim, n, size int) *tensor.Tensor[float32, B] {
	first := x.Narrow(dim, 0, 1)
	last := x.Narrow(dim, size-1, 1)

	parts := make([]*tensor.Tensor[float32, B], 0, 2*n+1)
	for i := 0; i < n; i++ {
		parts = append(parts, first)
	}
	parts = append(parts, x)
	for i := 0; i < n; i++ {
		parts = append(parts, last)
	}
	return tensor.Cat(parts, dim)
}

// Forward pads the input, panicking on invalid shapes.
func (l *FillPadding2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out, err := l.Pad(input)
	if err != nil {
		panic(err)
	}
	return out
}

// Parameters returns an empty slice.
func (l *FillPadding2D[B]) Parameters() []*Parameter[B] {
	return nil
}
