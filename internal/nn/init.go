package nn

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cubesphere-ml/cubesphere/internal/tensor"
)

// Initializer fills a freshly allocated parameter tensor. fanIn and
// fanOut describe the layer the tensor belongs to; initializers that do
// not depend on them ignore both.
type Initializer[B tensor.Backend] func(shape tensor.Shape, fanIn, fanOut int, backend B) *tensor.Tensor[float32, B]

// InitializerByName resolves an initializer from its configuration name.
// The empty string selects glorot_uniform. Unknown names are rejected
// with ErrInvalidArgument.
func InitializerByName[B tensor.Backend](name string) (Initializer[B], error) {
	switch name {
	case "", "glorot_uniform":
		return func(shape tensor.Shape, fanIn, fanOut int, backend B) *tensor.Tensor[float32, B] {
			return Xavier(fanIn, fanOut, shape, backend)
		}, nil
	case "zeros":
		return func(shape tensor.Shape, _, _ int, backend B) *tensor.Tensor[float32, B] {
			return Zeros(shape, backend)
		}, nil
	case "ones":
		return func(shape tensor.Shape, _, _ int, backend B) *tensor.Tensor[float32, B] {
			return Ones(shape, backend)
		}, nil
	case "random_normal":
		return func(shape tensor.Shape, _, _ int, backend B) *tensor.Tensor[float32, B] {
			return Randn(shape, backend)
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown initializer %q", ErrInvalidArgument, name)
	}
}

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// This initialization helps maintain variance of activations across layers.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t, err := tensor.NewRaw(shape, tensor.Float32, backend.Device())
	if err != nil {
		panic(err)
	}

	data := t.AsFloat32()
	for i := range data {
		//nolint:gosec // Using math/rand for weight initialization (not security-critical)
		data[i] = float32((rand.Float64()*2.0 - 1.0) * bound)
	}

	return tensor.New[float32, B](t, backend)
}

// Zeros creates a tensor filled with zeros.
//
// This is commonly used for bias initialization.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

// Ones creates a tensor filled with ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Ones[float32](shape, backend)
}

// Randn creates a tensor with random values from the standard normal
// distribution N(0, 1).
func Randn[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Randn[float32](shape, backend)
}
