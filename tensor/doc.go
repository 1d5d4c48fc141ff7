// Copyright 2025 CubeSphere ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensor operations for the CubeSphere framework.
//
// # Overview
//
// Tensors are the fundamental data structure in CubeSphere. This package provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting
//   - Channels-first layouts for convolutional workloads
//   - The manipulation primitives (Cat, Narrow, Flip, Index) the
//     cubed-sphere halo exchange is built from
//
// # Basic Usage
//
//	import (
//	    "github.com/cubesphere-ml/cubesphere/tensor"
//	    "github.com/cubesphere-ml/cubesphere/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Create tensors
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//
//	    // Tensor operations
//	    z := x.Add(y)
//	}
//
// # Supported Data Types
//
// The tensor package supports floating-point data via the DType constraint:
//   - float32, float64
//
// # Broadcasting
//
// Tensor operations follow NumPy broadcasting rules:
//
//	a := tensor.Zeros[float32](tensor.Shape{3, 1}, backend)     // (3, 1)
//	b := tensor.Ones[float32](tensor.Shape{3, 4}, backend)      // (3, 4)
//	c := a.Add(b)                                                // (3, 4)
//
// # Cubed-Sphere Layout
//
// Fields on the cubed sphere are stored channels-first with the face
// axis last: [batch, channels, height, width, 6]. The nn package's
// CubeSpherePadding2D and CubeSphereConv2D consume this layout; see the
// cube package for the face adjacency conventions.
//
// See method documentation for the full list of operations.
package tensor
