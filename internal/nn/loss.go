package nn

import (
	"fmt"
	"math"

	"github.com/cubesphere-ml/cubesphere/internal/tensor"
)

// MSELoss computes Mean Squared Error loss.
//
// Loss = mean((predictions - targets)²)
//
// Example:
//
//	mse := nn.NewMSELoss(backend)
//	loss := mse.Forward(predictions, targets)
type MSELoss[B tensor.Backend] struct {
	backend B
}

// NewMSELoss creates a new MSE loss function.
func NewMSELoss[B tensor.Backend](backend B) *MSELoss[B] {
	return &MSELoss[B]{backend: backend}
}

// Forward computes the MSE loss as a scalar tensor of shape [1].
// Predictions and targets must have the same shape.
func (m *MSELoss[B]) Forward(predictions, targets *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic("MSELoss: predictions and targets must have the same shape")
	}
	return meanSquaredError(predictions, targets)
}

// Parameters returns an empty slice (loss functions have no trainable parameters).
func (m *MSELoss[B]) Parameters() []*Parameter[B] {
	return nil
}

func meanSquaredError[B tensor.Backend](predictions, targets *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	diff := predictions.Sub(targets)
	return mean(diff.Mul(diff))
}

// mean reduces a tensor to its scalar mean, shape [1].
func mean[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return x.Sum().MulScalar(float32(1) / float32(x.NumElements()))
}

// Weighting mode names accepted by LatitudeWeightedMSE.
const (
	WeightingCosine      = "cosine"
	WeightingMidlatitude = "midlatitude"
)

// LatitudeWeightedMSE is an MSE loss that scales both predictions and
// targets by a function of latitude before squaring, so errors near the
// poles count less on an equiangular grid.
//
// Cosine weighting uses cos(lat). Midlatitude weighting adds
// 0.5*sin(2*lat)², damping the equator and boosting the midlatitudes.
type LatitudeWeightedMSE[B tensor.Backend] struct {
	weights *tensor.Tensor[float32, B] // one weight per latitude row
	axis    int                        // latitude axis in the prediction shape
	backend B
}

// NewLatitudeWeightedMSE creates the loss from the latitude coordinates
// of the grid rows, in degrees. axis is the latitude axis in the
// prediction shape (2 for channels-first [N,C,H,W]).
func NewLatitudeWeightedMSE[B tensor.Backend](lats []float32, axis int, weighting string, backend B) (*LatitudeWeightedMSE[B], error) {
	if len(lats) == 0 {
		return nil, fmt.Errorf("%w: no latitude coordinates", ErrInvalidArgument)
	}
	if weighting != WeightingCosine && weighting != WeightingMidlatitude {
		return nil, fmt.Errorf("%w: weighting must be %q or %q, got %q",
			ErrInvalidArgument, WeightingCosine, WeightingMidlatitude, weighting)
	}

	latT, err := tensor.FromSlice(lats, tensor.Shape{len(lats)}, backend)
	if err != nil {
		return nil, err
	}
	rad := latT.MulScalar(float32(math.Pi / 180))
	weights := rad.Cos()
	if weighting == WeightingMidlatitude {
		sin2 := rad.MulScalar(2).Sin()
		weights = weights.Add(sin2.Mul(sin2).MulScalar(0.5))
	}

	return &LatitudeWeightedMSE[B]{weights: weights, axis: axis, backend: backend}, nil
}

// Forward computes the weighted MSE as a scalar tensor of shape [1].
func (l *LatitudeWeightedMSE[B]) Forward(predictions, targets *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic("LatitudeWeightedMSE: predictions and targets must have the same shape")
	}
	shape := predictions.Shape()
	if l.axis < 0 || l.axis >= len(shape) {
		panic(fmt.Sprintf("LatitudeWeightedMSE: latitude axis %d out of range for %dD input", l.axis, len(shape)))
	}
	if shape[l.axis] != l.weights.NumElements() {
		panic(fmt.Sprintf("LatitudeWeightedMSE: input has %d latitude rows, weights have %d",
			shape[l.axis], l.weights.NumElements()))
	}

	// Broadcast the row weights across every other axis.
	broadcast := make([]int, len(shape))
	for i := range broadcast {
		broadcast[i] = 1
	}
	broadcast[l.axis] = l.weights.NumElements()
	w := l.weights.Reshape(broadcast...)

	return meanSquaredError(predictions.Mul(w), targets.Mul(w))
}

// Parameters returns an empty slice.
func (l *LatitudeWeightedMSE[B]) Parameters() []*Parameter[B] {
	return nil
}

// AnomalyCorrelation scores predictions by their correlation with the
// targets, assuming both are anomalies with spatial mean already
// removed:
//
//	a = mean(pred*true) / sqrt(mean(pred²) * mean(true²))
//
// With Reverse the sign is flipped so that minimizing the loss drives
// the correlation toward 1. RegularizeMSE adds the plain MSE to the
// reversed score, penalizing amplitude errors correlation alone ignores.
type AnomalyCorrelation[B tensor.Backend] struct {
	regularizeMSE bool
	reverse       bool
	backend       B
}

// NewAnomalyCorrelation creates the loss. Regularization forces
// Reverse, matching its use as a minimization target.
func NewAnomalyCorrelation[B tensor.Backend](regularizeMSE, reverse bool, backend B) (*AnomalyCorrelation[B], error) {
	if regularizeMSE && !reverse {
		return nil, fmt.Errorf("%w: MSE regularization requires the reversed score", ErrInvalidArgument)
	}
	return &AnomalyCorrelation[B]{regularizeMSE: regularizeMSE, reverse: reverse, backend: backend}, nil
}

// Forward computes the (optionally reversed and regularized) anomaly
// correlation as a scalar tensor of shape [1].
func (l *AnomalyCorrelation[B]) Forward(predictions, targets *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic("AnomalyCorrelation: predictions and targets must have the same shape")
	}

	cross := mean(predictions.Mul(targets))
	power := mean(predictions.Mul(predictions)).Mul(mean(targets.Mul(targets)))
	a := cross.Div(power.Sqrt())

	if !l.reverse {
		return a
	}
	if l.regularizeMSE {
		return meanSquaredError(predictions, targets).Sub(a)
	}
	return a.MulScalar(float32(-1))
}

// Parameters returns an empty slice.
func (l *AnomalyCorrelation[B]) Parameters() []*Parameter[B] {
	return nil
}
