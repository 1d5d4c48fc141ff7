package nn

import (
	"fmt"

	"github.com/cubesphere-ml/cubesphere/internal/cube"
	"github.com/cubesphere-ml/cubesphere/internal/tensor"
)

// CubeSpherePadding2D pads every face of a cubed-sphere tensor with
// ghost cells copied from its neighboring faces.
//
// Input shape:  [batch, channels, H, W, 6] with H == W
// Output shape: [batch, channels, H+2p, W+2p, 6]
//
// The halo is assembled in two ordered passes. The first pass pads every
// face along the height axis from its top and bottom neighbors, rotating
// each neighbor into the face's frame. The second pass pads along the
// width axis; the pole faces read their side strips from the already
// width-padded equatorial neighbors, so the corner blocks of the halo
// resolve deterministically.
//
// The layer is pure: it never mutates its input and has no parameters.
type CubeSpherePadding2D[B tensor.Backend] struct {
	padding int
	backend B
}

// CubeSpherePadding2DConfig is the serializable configuration of a
// CubeSpherePadding2D layer.
type CubeSpherePadding2DConfig struct {
	Padding int `json:"padding"`
}

// NewCubeSpherePadding2D creates a padding layer with the given halo
// width. Rejects negative widths with ErrInvalidArgument.
func NewCubeSpherePadding2D[B tensor.Backend](padding int, backend B) (*CubeSpherePadding2D[B], error) {
	if padding < 0 {
		return nil, fmt.Errorf("%w: padding %d must be non-negative", ErrInvalidArgument, padding)
	}
	return &CubeSpherePadding2D[B]{padding: padding, backend: backend}, nil
}

// NewCubeSpherePadding2DFromConfig reconstructs a layer from its
// configuration record.
func NewCubeSpherePadding2DFromConfig[B tensor.Backend](cfg CubeSpherePadding2DConfig, backend B) (*CubeSpherePadding2D[B], error) {
	return NewCubeSpherePadding2D(cfg.Padding, backend)
}

// Config returns the layer's configuration record.
func (l *CubeSpherePadding2D[B]) Config() CubeSpherePadding2DConfig {
	return CubeSpherePadding2DConfig{Padding: l.padding}
}

// Padding returns the halo width.
func (l *CubeSpherePadding2D[B]) Padding() int {
	return l.padding
}

// Pad pads the input with ghost cells from neighboring faces.
//
// Input must be [batch, channels, H, W, 6] with H == W and the halo
// width at most H. A zero halo width returns a copy of the input.
func (l *CubeSpherePadding2D[B]) Pad(input *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	shape := input.Shape()
	if len(shape) != 5 {
		return nil, fmt.Errorf("%w: expected 5D input [N,C,H,W,F], got %dD", ErrInvalidArgument, len(shape))
	}
	if shape[4] != cube.NumFaces {
		return nil, fmt.Errorf("%w: face axis must have size %d, got %d", ErrInvalidArgument, cube.NumFaces, shape[4])
	}
	h, w := shape[2], shape[3]
	if h != w {
		return nil, fmt.Errorf("%w: faces must be square, got %dx%d", ErrInvalidArgument, h, w)
	}
	p := l.padding
	if p > h {
		return nil, fmt.Errorf("%w: padding %d exceeds face size %d", ErrInvalidArgument, p, h)
	}
	if p == 0 {
		return input.Clone(), nil
	}

	var faces [cube.NumFaces]*tensor.Tensor[float32, B]
	for f := range faces {
		faces[f] = input.Index(4, f)
	}

	// Pass 1: pad every face along the height axis from its top and
	// bottom neighbors.
	var tall [cube.NumFaces]*tensor.Tensor[float32, B]
	for f := range tall {
		top := heightHalo(&faces, cube.Face(f), cube.Top, p)
		bottom := heightHalo(&faces, cube.Face(f), cube.Bottom, p)
		tall[f] = tensor.Cat([]*tensor.Tensor[float32, B]{top, faces[f], bottom}, 2)
	}

	// Pass 2 for the equatorial belt: side strips come straight from
	// the height-padded neighbors (all belt transforms are identity).
	var out [cube.NumFaces]*tensor.Tensor[float32, B]
	for f := cube.Face0; f <= cube.Face3; f++ {
		leftNbr := cube.Neighbor(f, cube.Left).Face
		rightNbr := cube.Neighbor(f, cube.Right).Face
		left := tall[leftNbr].Narrow(3, w-p, p)
		right := tall[rightNbr].Narrow(3, 0, p)
		out[f] = tensor.Cat([]*tensor.Tensor[float32, B]{left, tall[f], right}, 3)
	}

	// Pass 2 for the poles: side strips come from the width-padded
	// equatorial neighbors, rotated into the pole's frame. The slices
	// skip the neighbor's own halo band, so only interior columns feed
	// the pole halo.
	paddedW := w + 2*p
	for _, f := range []cube.Face{cube.FaceSouth, cube.FaceNorth} {
		leftAdj := cube.Neighbor(f, cube.Left)
		rightAdj := cube.Neighbor(f, cube.Right)
		leftSrc := rotateFace(out[leftAdj.Face], leftAdj.Transform)
		rightSrc := rotateFace(out[rightAdj.Face], rightAdj.Transform)
		left := leftSrc.Narrow(3, paddedW-2*p, p)
		right := rightSrc.Narrow(3, p, p)
		out[f] = tensor.Cat([]*tensor.Tensor[float32, B]{left, tall[f], right}, 3)
	}

	stacked := make([]*tensor.Tensor[float32, B], cube.NumFaces)
	for f := range out {
		stacked[f] = out[f].Unsqueeze(-1)
	}
	return tensor.Cat(stacked, 4), nil
}

// Forward pads the input, panicking on invalid shapes. Use Pad for an
// error-returning variant.
func (l *CubeSpherePadding2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out, err := l.Pad(input)
	if err != nil {
		panic(err)
	}
	return out
}

// Parameters returns an empty slice (padding has no trainable parameters).
func (l *CubeSpherePadding2D[B]) Parameters() []*Parameter[B] {
	return nil
}

// ComputeOutputShape returns the padded shape for a given input shape.
func (l *CubeSpherePadding2D[B]) ComputeOutputShape(in tensor.Shape) (tensor.Shape, error) {
	if len(in) != 5 {
		return nil, fmt.Errorf("%w: expected 5D shape [N,C,H,W,F], got %dD", ErrInvalidArgument, len(in))
	}
	if in[4] != cube.NumFaces {
		return nil, fmt.Errorf("%w: face axis must have size %d, got %d", ErrInvalidArgument, cube.NumFaces, in[4])
	}
	return tensor.Shape{in[0], in[1], in[2] + 2*l.padding, in[3] + 2*l.padding, in[4]}, nil
}

// heightHalo extracts the p rows a face receives across its top or
// bottom edge, rotated into the face's frame.
func heightHalo[B tensor.Backend](faces *[cube.NumFaces]*tensor.Tensor[float32, B], f cube.Face, e cube.Edge, p int) *tensor.Tensor[float32, B] {
	adj := cube.Neighbor(f, e)
	rotated := rotateFace(faces[adj.Face], adj.Transform)
	n := rotated.Shape()[2]
	if e == cube.Top {
		return rotated.Narrow(2, n-p, p)
	}
	return rotated.Narrow(2, 0, p)
}

// rotateFace applies an in-plane rotation to the spatial axes of a
// [batch, channels, H, W] tensor. Quarter turns are a transpose of the
// spatial axes followed by a flip.
func rotateFace[B tensor.Backend](x *tensor.Tensor[float32, B], t cube.Transform) *tensor.Tensor[float32, B] {
	switch t {
	case cube.Identity:
		return x
	case cube.Rot90:
		return x.Transpose(0, 1, 3, 2).Flip(3)
	case cube.Rot180:
		return x.Flip(2).Flip(3)
	case cube.Rot270:
		return x.Transpose(0, 1, 3, 2).Flip(2)
	default:
		panic(fmt.Sprintf("cube padding: unknown transform %d", t))
	}
}
