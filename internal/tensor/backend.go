package tensor

// Conv2DParams describes a 2D convolution over channels-first input.
//
// Padding is explicit and may be asymmetric: the 'same' mode of higher
// layers is lowered to begin/end amounts before reaching the backend.
type Conv2DParams struct {
	StrideH   int
	StrideW   int
	DilationH int
	DilationW int
	PadTop    int
	PadBottom int
	PadLeft   int
	PadRight  int
}

// DefaultConv2DParams returns unit strides and dilation with no padding.
func DefaultConv2DParams() Conv2DParams {
	return Conv2DParams{StrideH: 1, StrideW: 1, DilationH: 1, DilationW: 1}
}

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
type Backend interface {
	// Element-wise binary operations with broadcasting
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Scalar operations (element-wise with scalar)
	MulScalar(x *RawTensor, scalar any) *RawTensor
	AddScalar(x *RawTensor, scalar any) *RawTensor
	SubScalar(x *RawTensor, scalar any) *RawTensor
	DivScalar(x *RawTensor, scalar any) *RawTensor

	// Math operations (element-wise)
	Exp(x *RawTensor) *RawTensor
	Sqrt(x *RawTensor) *RawTensor
	Cos(x *RawTensor) *RawTensor
	Sin(x *RawTensor) *RawTensor

	// Convolution over [N, C, H, W] input with [K_h, K_w, C_in, C_out] kernel
	Conv2D(input, kernel *RawTensor, params Conv2DParams) *RawTensor

	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Reduction operations
	Sum(x *RawTensor) *RawTensor
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor

	// Manipulation operations
	Cat(tensors []*RawTensor, dim int) *RawTensor       // concatenate along dimension
	Narrow(x *RawTensor, dim, start, length int) *RawTensor // slice a band along dimension
	Flip(x *RawTensor, dim int) *RawTensor              // reverse order along dimension
	Index(x *RawTensor, dim, index int) *RawTensor      // select one slice, dropping the dimension
	Unsqueeze(x *RawTensor, dim int) *RawTensor         // add dimension of size 1
	Squeeze(x *RawTensor, dim int) *RawTensor           // remove dimension of size 1

	// Metadata
	Name() string
	Device() Device
}
