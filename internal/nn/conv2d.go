package nn

import (
	"fmt"

	"github.com/cubesphere-ml/cubesphere/internal/tensor"
)

// Padding mode names accepted by convolution layers.
const (
	PaddingValid = "valid"
	PaddingSame  = "same"
)

// Conv2D is a 2D convolutional layer over channels-first input.
//
// Input shape:  [batch, in_channels, height, width]
// Kernel shape: [kernel_h, kernel_w, in_channels, filters]
// Bias shape:   [filters]
// Output shape: [batch, filters, out_h, out_w]
//
// With "valid" padding:
//
//	out_h = (height - (kernel_h-1)*dilation_h - 1) / stride_h + 1
//
// With "same" padding the spatial size is ceil(size / stride).
//
// Example:
//
//	conv, err := nn.NewConv2D(2, 4, [2]int{3, 3}, [2]int{1, 1}, [2]int{1, 1}, "valid", true, backend)
//	output := conv.Forward(input)
type Conv2D[B tensor.Backend] struct {
	inChannels int
	filters    int
	kernelSize [2]int
	strides    [2]int
	dilation   [2]int
	padding    string
	useBias    bool

	weight *Parameter[B] // [kernel_h, kernel_w, in_channels, filters]
	bias   *Parameter[B] // [filters] or nil

	backend B
}

// NewConv2D creates a 2D convolutional layer with Xavier-initialized
// weights and zero biases. padding is "valid" or "same" ("" means
// "valid"). Rejects non-positive sizes with ErrInvalidArgument.
func NewConv2D[B tensor.Backend](
	inChannels, filters int,
	kernelSize, strides, dilation [2]int,
	padding string,
	useBias bool,
	backend B,
) (*Conv2D[B], error) {
	if inChannels <= 0 || filters <= 0 {
		return nil, fmt.Errorf("%w: conv2d channels in=%d, filters=%d", ErrInvalidArgument, inChannels, filters)
	}
	padding, err := normalizePadding(padding)
	if err != nil {
		return nil, err
	}
	if err := validateConvGeometry(kernelSize, strides, dilation); err != nil {
		return nil, err
	}

	weightShape := tensor.Shape{kernelSize[0], kernelSize[1], inChannels, filters}

	// fan_in = in_channels * kernel_h * kernel_w
	// fan_out = filters * kernel_h * kernel_w
	fanIn := inChannels * kernelSize[0] * kernelSize[1]
	fanOut := filters * kernelSize[0] * kernelSize[1]
	weight := NewParameter("conv2d.weight", Xavier(fanIn, fanOut, weightShape, backend))

	var bias *Parameter[B]
	if useBias {
		bias = NewParameter("conv2d.bias", Zeros(tensor.Shape{filters}, backend))
	}

	return &Conv2D[B]{
		inChannels: inChannels,
		filters:    filters,
		kernelSize: kernelSize,
		strides:    strides,
		dilation:   dilation,
		padding:    padding,
		useBias:    useBias,
		weight:     weight,
		bias:       bias,
		backend:    backend,
	}, nil
}

// Forward performs the forward pass.
//
// Input: [batch, in_channels, height, width]
// Output: [batch, filters, out_h, out_w].
func (c *Conv2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	inputShape := input.Shape()
	if len(inputShape) != 4 {
		panic(fmt.Sprintf("conv2d: expected 4D input [N,C,H,W], got %dD", len(inputShape)))
	}
	if inputShape[1] != c.inChannels {
		panic(fmt.Sprintf("conv2d: input channels %d != expected %d", inputShape[1], c.inChannels))
	}

	params := convParams(c.padding, inputShape[2], inputShape[3], c.kernelSize, c.strides, c.dilation)
	outputRaw := c.backend.Conv2D(input.Raw(), c.weight.Tensor().Raw(), params)
	output := tensor.New[float32, B](outputRaw, c.backend)

	if c.useBias {
		// Bias broadcasts as [1, filters, 1, 1] over [batch, filters, out_h, out_w].
		biasReshaped := c.bias.Tensor().Reshape(1, c.filters, 1, 1)
		output = output.Add(biasReshaped)
	}

	return output
}

// Parameters returns all trainable parameters.
func (c *Conv2D[B]) Parameters() []*Parameter[B] {
	if c.useBias {
		return []*Parameter[B]{c.weight, c.bias}
	}
	return []*Parameter[B]{c.weight}
}

// String returns a string representation of the layer.
func (c *Conv2D[B]) String() string {
	return fmt.Sprintf("Conv2D(in_channels=%d, filters=%d, kernel_size=(%d, %d), strides=(%d, %d), dilation=(%d, %d), padding=%s, bias=%v)",
		c.inChannels, c.filters,
		c.kernelSize[0], c.kernelSize[1],
		c.strides[0], c.strides[1],
		c.dilation[0], c.dilation[1],
		c.padding, c.useBias)
}

// Filters returns the number of output channels.
func (c *Conv2D[B]) Filters() int {
	return c.filters
}

// InChannels returns the number of input channels.
func (c *Conv2D[B]) InChannels() int {
	return c.inChannels
}

// KernelSize returns the kernel size [height, width].
func (c *Conv2D[B]) KernelSize() [2]int {
	return c.kernelSize
}

// ComputeOutputSize computes output spatial dimensions for the given
// input size. Returns [out_height, out_width].
func (c *Conv2D[B]) ComputeOutputSize(inputH, inputW int) [2]int {
	return [2]int{
		convOutputSize(c.padding, inputH, c.kernelSize[0], c.strides[0], c.dilation[0]),
		convOutputSize(c.padding, inputW, c.kernelSize[1], c.strides[1], c.dilation[1]),
	}
}

func normalizePadding(padding string) (string, error) {
	switch padding {
	case "", PaddingValid:
		return PaddingValid, nil
	case PaddingSame:
		return PaddingSame, nil
	default:
		return "", fmt.Errorf("%w: padding must be %q or %q, got %q", ErrInvalidArgument, PaddingValid, PaddingSame, padding)
	}
}

func validateConvGeometry(kernelSize, strides, dilation [2]int) error {
	if kernelSize[0] <= 0 || kernelSize[1] <= 0 {
		return fmt.Errorf("%w: kernel size %v", ErrInvalidArgument, kernelSize)
	}
	if strides[0] <= 0 || strides[1] <= 0 {
		return fmt.Errorf("%w: strides %v", ErrInvalidArgument, strides)
	}
	if dilation[0] <= 0 || dilation[1] <= 0 {
		return fmt.Errorf("%w: dilation %v", ErrInvalidArgument, dilation)
	}
	return nil
}

// samePadding computes the begin/end padding that keeps the output size
// at ceil(in / stride) for the given kernel, stride and dilation. When
// the total is odd, the extra cell goes to the end.
func samePadding(in, kernel, stride, dilation int) (int, int) {
	out := (in + stride - 1) / stride
	effectiveKernel := (kernel-1)*dilation + 1
	total := (out-1)*stride + effectiveKernel - in
	if total < 0 {
		total = 0
	}
	return total / 2, total - total/2
}

// convParams lowers a padding mode to the explicit begin/end amounts the
// backend expects.
func convParams(padding string, inH, inW int, kernelSize, strides, dilation [2]int) tensor.Conv2DParams {
	params := tensor.Conv2DParams{
		StrideH:   strides[0],
		StrideW:   strides[1],
		DilationH: dilation[0],
		DilationW: dilation[1],
	}
	if padding == PaddingSame {
		params.PadTop, params.PadBottom = samePadding(inH, kernelSize[0], strides[0], dilation[0])
		params.PadLeft, params.PadRight = samePadding(inW, kernelSize[1], strides[1], dilation[1])
	}
	return params
}

func convOutputSize(padding string, in, kernel, stride, dilation int) int {
	if padding == PaddingSame {
		return (in + stride - 1) / stride
	}
	effectiveKernel := (kernel-1)*dilation + 1
	return (in-effectiveKernel)/stride + 1
}
