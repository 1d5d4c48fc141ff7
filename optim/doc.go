// Copyright 2025 CubeSphere ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimizers that mutate layer parameters
// between forward evaluations.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// Gradients are supplied by the host through Parameter.SetGrad; the
// framework does not compute them.
//
// # Basic Usage
//
//	import (
//	    "github.com/cubesphere-ml/cubesphere/optim"
//	    "github.com/cubesphere-ml/cubesphere/nn"
//	    "github.com/cubesphere-ml/cubesphere/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    conv, _ := nn.NewCubeSphereConv2D(cfg, backend)
//
//	    optimizer := optim.NewAdam(
//	        conv.Parameters(),
//	        optim.AdamConfig{
//	            LR:    0.001,
//	            Betas: [2]float32{0.9, 0.999},
//	        },
//	        backend,
//	    )
//
//	    for step := range steps {
//	        output := conv.Forward(input)
//	        setHostGradients(conv.Parameters(), output)
//	        optimizer.Step()
//	        optimizer.ZeroGrad()
//	    }
//	}
//
// # Optimizers
//
// SGD (Stochastic Gradient Descent):
//
//	optimizer := optim.NewSGD(
//	    model.Parameters(),
//	    optim.SGDConfig{
//	        LR:       0.01,
//	        Momentum: 0.9,
//	    },
//	    backend,
//	)
//
// Adam (Adaptive Moment Estimation):
//
//	optimizer := optim.NewAdam(
//	    model.Parameters(),
//	    optim.AdamConfig{
//	        LR:    0.001,
//	        Betas: [2]float32{0.9, 0.999},
//	        Eps:   1e-8,
//	    },
//	    backend,
//	)
package optim
