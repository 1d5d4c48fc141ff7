// Copyright 2025 CubeSphere ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers for cubed-sphere and
// flat-grid fields.
//
// # Overview
//
// This package contains:
//   - Cubed-sphere layers: CubeSpherePadding2D, CubeSphereConv2D
//   - Flat-grid layers: Conv2D, PeriodicPadding2D, FillPadding2D, RowConv2D
//   - Activations: ReLU, Sigmoid, Tanh
//   - Loss functions: MSELoss, LatitudeWeightedMSE, AnomalyCorrelation
//   - Utilities: Sequential, Module interface, Parameter
//   - Initialization: Xavier, Zeros, Ones, Randn
//
// # Basic Usage
//
//	import (
//	    "github.com/cubesphere-ml/cubesphere/nn"
//	    "github.com/cubesphere-ml/cubesphere/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    pad, _ := nn.NewCubeSpherePadding2D(1, backend)
//	    conv, _ := nn.NewCubeSphereConv2D(nn.CubeSphereConv2DConfig{
//	        Filters:    4,
//	        KernelSize: [2]int{3, 3},
//	        UseBias:    true,
//	        Activation: "relu",
//	    }, backend)
//
//	    // input: [batch, channels, H, W, 6]
//	    padded, _ := pad.Pad(input)
//	    output, _ := conv.Call(padded)  // [batch, 4, H, W, 6]
//	}
//
// # Cubed-Sphere Layers
//
// CubeSpherePadding2D exchanges ghost cells between the six cube faces
// so a subsequent "valid" convolution sees the sphere as seamless.
// CubeSphereConv2D convolves each face with a kernel shared within its
// face group: one kernel for the four equatorial faces, one for the
// poles (optionally a separate one for the north pole).
//
// # Error Handling
//
// Constructors and the error-returning Call/Pad methods wrap
// ErrInvalidArgument; the Module-style Forward methods panic instead.
//
// # Parameter Management
//
// Access model parameters for optimization:
//
//	params := model.Parameters()
//	for _, param := range params {
//	    fmt.Println(param.Name(), param.Tensor().Shape())
//	}
//
// Gradients are supplied by the host through Parameter.SetGrad and
// consumed by the optim package.
package nn
