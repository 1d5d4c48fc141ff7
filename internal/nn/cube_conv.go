package nn

import (
	"fmt"

	"github.com/cubesphere-ml/cubesphere/internal/cube"
	"github.com/cubesphere-ml/cubesphere/internal/tensor"
)

// CubeSphereConv2DConfig is the serializable configuration of a
// CubeSphereConv2D layer. Zero-valued geometry fields take defaults:
// strides and dilation default to 1, padding to "valid", initializers to
// glorot_uniform kernels and zero biases.
type CubeSphereConv2DConfig struct {
	Filters              int    `json:"filters"`
	KernelSize           [2]int `json:"kernel_size"`
	Strides              [2]int `json:"strides"`
	Padding              string `json:"padding"`
	Dilation             [2]int `json:"dilation_rate"`
	Activation           string `json:"activation"`
	UseBias              bool   `json:"use_bias"`
	FlipNorthPole        bool   `json:"flip_north_pole"`
	IndependentNorthPole bool   `json:"independent_north_pole"`
	KernelInitializer    string `json:"kernel_initializer"`
	BiasInitializer      string `json:"bias_initializer"`
}

// CubeSphereConv2D convolves a cubed-sphere tensor face by face with
// kernels shared within face groups.
//
// Input shape:  [batch, channels, H, W, 6]
// Output shape: [batch, filters, out_h, out_w, 6]
//
// The four equatorial faces share one kernel. Face 4 (south pole) uses
// the polar kernel; face 5 (north pole) uses the polar kernel too unless
// IndependentNorthPole grants it its own. With FlipNorthPole the north
// pole face is reversed along the width axis before the convolution and
// reversed back after, so the shared polar kernel sees both poles in a
// consistent orientation.
//
// Kernels are stored HWIO: [kernel_h, kernel_w, in_channels, filters].
// They are allocated on the first forward pass, when the input channel
// count is known, and afterwards mutated only by an external optimizer.
type CubeSphereConv2D[B tensor.Backend] struct {
	cfg CubeSphereConv2DConfig

	built      bool
	inChannels int

	equatorialKernel *Parameter[B]
	polarKernel      *Parameter[B]
	northPoleKernel  *Parameter[B] // nil unless IndependentNorthPole
	equatorialBias   *Parameter[B]
	polarBias        *Parameter[B]
	northPoleBias    *Parameter[B]

	kernelInit Initializer[B]
	biasInit   Initializer[B]
	activation Activation[B]

	backend B
}

// NewCubeSphereConv2D creates a cubed-sphere convolution layer from its
// configuration. Kernel allocation is deferred to the first forward
// pass. Invalid geometry, activation or initializer names are rejected
// with ErrInvalidArgument.
func NewCubeSphereConv2D[B tensor.Backend](cfg CubeSphereConv2DConfig, backend B) (*CubeSphereConv2D[B], error) {
	if cfg.Filters <= 0 {
		return nil, fmt.Errorf("%w: filters %d must be positive", ErrInvalidArgument, cfg.Filters)
	}
	if cfg.Strides == ([2]int{}) {
		cfg.Strides = [2]int{1, 1}
	}
	if cfg.Dilation == ([2]int{}) {
		cfg.Dilation = [2]int{1, 1}
	}
	padding, err := normalizePadding(cfg.Padding)
	if err != nil {
		return nil, err
	}
	cfg.Padding = padding
	if err := validateConvGeometry(cfg.KernelSize, cfg.Strides, cfg.Dilation); err != nil {
		return nil, err
	}

	kernelInit, err := InitializerByName[B](cfg.KernelInitializer)
	if err != nil {
		return nil, err
	}
	biasInit, err := InitializerByName[B](biasInitName(cfg.BiasInitializer))
	if err != nil {
		return nil, err
	}
	activation, err := ActivationByName[B](cfg.Activation)
	if err != nil {
		return nil, err
	}

	return &CubeSphereConv2D[B]{
		cfg:        cfg,
		kernelInit: kernelInit,
		biasInit:   biasInit,
		activation: activation,
		backend:    backend,
	}, nil
}

// NewCubeSphereConv2DFromConfig reconstructs a layer from a
// configuration record produced by Config.
func NewCubeSphereConv2DFromConfig[B tensor.Backend](cfg CubeSphereConv2DConfig, backend B) (*CubeSphereConv2D[B], error) {
	return NewCubeSphereConv2D(cfg, backend)
}

func biasInitName(name string) string {
	if name == "" {
		return "zeros"
	}
	return name
}

// Config returns the layer's configuration record. Together with
// Parameters it is sufficient to reconstruct the layer.
func (l *CubeSphereConv2D[B]) Config() CubeSphereConv2DConfig {
	return l.cfg
}

// Built reports whether the kernels have been allocated.
func (l *CubeSphereConv2D[B]) Built() bool {
	return l.built
}

// build allocates kernels and biases for the now-known channel count.
func (l *CubeSphereConv2D[B]) build(inChannels int) {
	kh, kw := l.cfg.KernelSize[0], l.cfg.KernelSize[1]
	kernelShape := tensor.Shape{kh, kw, inChannels, l.cfg.Filters}
	fanIn := inChannels * kh * kw
	fanOut := l.cfg.Filters * kh * kw

	l.equatorialKernel = NewParameter("equatorial.kernel", l.kernelInit(kernelShape, fanIn, fanOut, l.backend))
	l.polarKernel = NewParameter("polar.kernel", l.kernelInit(kernelShape, fanIn, fanOut, l.backend))
	if l.cfg.IndependentNorthPole {
		l.northPoleKernel = NewParameter("north_pole.kernel", l.kernelInit(kernelShape, fanIn, fanOut, l.backend))
	}

	if l.cfg.UseBias {
		biasShape := tensor.Shape{l.cfg.Filters}
		l.equatorialBias = NewParameter("equatorial.bias", l.biasInit(biasShape, fanIn, fanOut, l.backend))
		l.polarBias = NewParameter("polar.bias", l.biasInit(biasShape, fanIn, fanOut, l.backend))
		if l.cfg.IndependentNorthPole {
			l.northPoleBias = NewParameter("north_pole.bias", l.biasInit(biasShape, fanIn, fanOut, l.backend))
		}
	}

	l.inChannels = inChannels
	l.built = true
}

// faceWeights returns the kernel and bias a face convolves with. The
// bias is nil when UseBias is false.
func (l *CubeSphereConv2D[B]) faceWeights(f cube.Face) (*Parameter[B], *Parameter[B]) {
	switch cube.FaceGroup(f) {
	case cube.Equatorial:
		return l.equatorialKernel, l.equatorialBias
	case cube.NorthPole:
		if l.cfg.IndependentNorthPole {
			return l.northPoleKernel, l.northPoleBias
		}
		return l.polarKernel, l.polarBias
	default:
		return l.polarKernel, l.polarBias
	}
}

// Call convolves every face and concatenates the results along the face
// axis. The first call fixes the layer's input channel count.
func (l *CubeSphereConv2D[B]) Call(input *tensor.Tensor[float32, B]) (*tensor.Tensor[float32, B], error) {
	shape := input.Shape()
	if len(shape) != 5 {
		return nil, fmt.Errorf("%w: expected 5D input [N,C,H,W,F], got %dD", ErrInvalidArgument, len(shape))
	}
	if shape[4] != cube.NumFaces {
		return nil, fmt.Errorf("%w: face axis must have size %d, got %d", ErrInvalidArgument, cube.NumFaces, shape[4])
	}
	inChannels := shape[1]
	if inChannels <= 0 {
		return nil, fmt.Errorf("%w: unresolved channel dimension", ErrInvalidArgument)
	}
	if !l.built {
		l.build(inChannels)
	} else if inChannels != l.inChannels {
		return nil, fmt.Errorf("%w: input channels %d, layer built for %d", ErrInvalidArgument, inChannels, l.inChannels)
	}

	params := convParams(l.cfg.Padding, shape[2], shape[3], l.cfg.KernelSize, l.cfg.Strides, l.cfg.Dilation)

	parts := make([]*tensor.Tensor[float32, B], cube.NumFaces)
	for f := cube.Face(0); f < cube.NumFaces; f++ {
		kernel, bias := l.faceWeights(f)
		face := input.Index(4, int(f))

		flip := l.cfg.FlipNorthPole && f == cube.FaceNorth
		if flip {
			face = face.Flip(3)
		}
		out := tensor.New[float32, B](l.backend.Conv2D(face.Raw(), kernel.Tensor().Raw(), params), l.backend)
		if flip {
			out = out.Flip(3)
		}
		if bias != nil {
			out = out.Add(bias.Tensor().Reshape(1, l.cfg.Filters, 1, 1))
		}
		parts[f] = out.Unsqueeze(-1)
	}

	result := tensor.Cat(parts, 4)
	if l.activation != nil {
		result = l.activation(result)
	}
	return result, nil
}

// Forward convolves the input, panicking on invalid shapes. Use Call
// for an error-returning variant.
func (l *CubeSphereConv2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out, err := l.Call(input)
	if err != nil {
		panic(err)
	}
	return out
}

// Parameters returns all trainable parameters in a stable order:
// kernels first, then biases, equatorial before polar before any
// independent north pole. Empty until the layer is built.
func (l *CubeSphereConv2D[B]) Parameters() []*Parameter[B] {
	if !l.built {
		return nil
	}
	params := []*Parameter[B]{l.equatorialKernel, l.polarKernel}
	if l.northPoleKernel != nil {
		params = append(params, l.northPoleKernel)
	}
	if l.cfg.UseBias {
		params = append(params, l.equatorialBias, l.polarBias)
		if l.northPoleBias != nil {
			params = append(params, l.northPoleBias)
		}
	}
	return params
}

// ComputeOutputShape returns the output shape for a given input shape
// following standard convolution arithmetic per face.
func (l *CubeSphereConv2D[B]) ComputeOutputShape(in tensor.Shape) (tensor.Shape, error) {
	if len(in) != 5 {
		return nil, fmt.Errorf("%w: expected 5D shape [N,C,H,W,F], got %dD", ErrInvalidArgument, len(in))
	}
	if in[4] != cube.NumFaces {
		return nil, fmt.Errorf("%w: face axis must have size %d, got %d", ErrInvalidArgument, cube.NumFaces, in[4])
	}
	outH := convOutputSize(l.cfg.Padding, in[2], l.cfg.KernelSize[0], l.cfg.Strides[0], l.cfg.Dilation[0])
	outW := convOutputSize(l.cfg.Padding, in[3], l.cfg.KernelSize[1], l.cfg.Strides[1], l.cfg.Dilation[1])
	if outH <= 0 || outW <= 0 {
		return nil, fmt.Errorf("%w: kernel %v does not fit input %dx%d", ErrInvalidArgument, l.cfg.KernelSize, in[2], in[3])
	}
	return tensor.Shape{in[0], l.cfg.Filters, outH, outW, in[4]}, nil
}

// String returns a string representation of the layer.
func (l *CubeSphereConv2D[B]) String() string {
	return fmt.Sprintf("CubeSphereConv2D(filters=%d, kernel_size=(%d, %d), strides=(%d, %d), padding=%s, flip_north_pole=%v, independent_north_pole=%v)",
		l.cfg.Filters, l.cfg.KernelSize[0], l.cfg.KernelSize[1],
		l.cfg.Strides[0], l.cfg.Strides[1], l.cfg.Padding,
		l.cfg.FlipNorthPole, l.cfg.IndependentNorthPole)
}
