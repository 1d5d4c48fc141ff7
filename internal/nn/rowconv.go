package nn

import (
	"fmt"

	"github.com/cubesphere-ml/cubesphere/internal/tensor"
)

// RowConv2D is a 2D convolution whose weights are shared only along
// rows: every output row has its own kernel, applied across the full
// width. Useful on latitude-longitude grids where the physics varies
// with latitude but not longitude.
//
// Input shape:  [batch, channels, H, W]
// Kernel shape: [out_rows, kernel_h, kernel_w, in_channels, filters]
// Output shape: [batch, filters, out_rows, out_cols]
//
// Only "valid" padding is supported. Kernels are allocated on the first
// forward pass, when the input height and channel count are known.
type RowConv2D[B tensor.Backend] struct {
	filters    int
	kernelSize [2]int
	strides    [2]int
	useBias    bool

	built      bool
	inChannels int
	outRows    int

	weight *Parameter[B]
	bias   *Parameter[B]

	backend B
}

// NewRowConv2D creates a row-shared convolution layer.
func NewRowConv2D[B tensor.Backend](filters int, kernelSize, strides [2]int, useBias bool, backend B) (*RowConv2D[B], error) {
	if filters <= 0 {
		return nil, fmt.Errorf("%w: filters %d must be positive", ErrInvalidArgument, filters)
	}
	if err := validateConvGeometry(kernelSize, strides, [2]int{1, 1}); err != nil {
		return nil, err
	}
	return &RowConv2D[B]{
		filters:    filters,
		kernelSize: kernelSize,
		strides:    strides,
		useBias:    useBias,
		backend:    backend,
	}, nil
}

func (l *RowConv2D[B]) build(inChannels, inH int) error {
	outRows := (inH-l.kernelSize[0])/l.strides[0] + 1
	if outRows <= 0 {
		return fmt.Errorf("%w: kernel height %d does not fit input height %d", ErrInvalidArgument, l.kernelSize[0], inH)
	}

	kh, kw := l.kernelSize[0], l.kernelSize[1]
	weightShape := tensor.Shape{outRows, kh, kw, inChannels, l.filters}
	fanIn := inChannels * kh * kw
	fanOut := l.filters * kh * kw
	l.weight = NewParameter("rowconv2d.weight", Xavier(fanIn, fanOut, weightShape, l.backend))

	if l.useBias {
		l.bias = NewParameter("rowconv2d.bias", Zeros(tensor.Shape{l.filters}, l.backend))
	}

	l.inChannels = inChannels
	l.outRows = outRows
	l.built = true
	return nil
}

// Call convolves each output row with its own kernel and concatenates
// the single-row results along the height axis.
func (l *RowConv2D[B]) Call(input *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	shape := input.Shape()
	if len(shape) != 4 {
		return nil, fmt.Errorf("%w: expected 4D input [N,C,H,W], got %dD", ErrInvalidArgument, len(shape))
	}
	if !l.built {
		if err := l.build(shape[1], shape[2]); err != nil {
			return nil, err
		}
	} else if shape[1] != l.inChannels {
		return nil, fmt.Errorf("%w: input channels %d, layer built for %d", ErrInvalidArgument, shape[1], l.inChannels)
	}

	// Each band is exactly one kernel tall, so the height stride only
	// selects which rows feed a band.
	params := tensor.Conv2DParams{
		StrideH:   1,
		StrideW:   l.strides[1],
		DilationH: 1,
		DilationW: 1,
	}

	rows := make([]*tensor.Tensor[float32, B], l.outRows)
	for r := 0; r < l.outRows; r++ {
		band := input.Narrow(2, r*l.strides[0], l.kernelSize[0])
		kernel := l.weight.Tensor().Index(0, r)
		rows[r] = tensor.New[float32, B](l.backend.Conv2D(band.Raw(), kernel.Raw(), params), l.backend)
	}

	out := tensor.Cat(rows, 2)
	if l.useBias {
		out = out.Add(l.bias.Tensor().Reshape(1, l.filters, 1, 1))
	}
	return out, nil
}

// Forward convolves the input, panicking on invalid shapes.
func (l *RowConv2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out, err := l.Call(input)
	if err != nil {
		panic(err)
	}
	return out
}

// Parameters returns all trainable parameters. Empty until the layer is
// built.
func (l *RowConv2D[B]) Parameters() []*Parameter[B] {
	if !l.built {
		return nil
	}
	if l.useBias {
		return []*Parameter[B]{l.weight, l.bias}
	}
	return []*Parameter[B]{l.weight}
}
