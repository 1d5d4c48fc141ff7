// Package optim implements optimization algorithms that mutate layer
// parameters between forward evaluations.
//
// This package provides:
//   - Optimizer interface: base interface for all optimizers
//   - SGD: stochastic gradient descent with momentum
//   - Adam: adaptive moment estimation
//
// Gradients are supplied by the host through Parameter.SetGrad; the
// framework does not compute them. Parameters without a gradient are
// skipped by Step.
//
// Example usage:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	}, backend)
//
//	for step := range steps {
//	    output := model.Forward(input)
//	    setHostGradients(model.Parameters(), output)
//	    optimizer.Step()
//	    optimizer.ZeroGrad()
//	}
package optim

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one gradient update to every parameter whose
	// gradient has been set. Parameters with a nil gradient are left
	// untouched.
	Step()

	// ZeroGrad clears all parameter gradients.
	//
	// This should be called after each Step so a stale gradient is
	// never applied twice.
	ZeroGrad()

	// GetLR returns the current learning rate.
	//
	// Useful for monitoring and learning rate scheduling.
	GetLR() float32
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float32 // Learning rate
}
