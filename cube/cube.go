// Copyright 2025 CubeSphere ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cube exposes the connectivity of the cubed-sphere grid.
//
// A field on the cubed sphere is stored as six square faces: four
// equatorial faces in eastward order, a south-pole face (4) and a
// north-pole face (5). Neighbor answers, for any face edge, which face
// lies across it and the in-plane rotation that carries the neighbor
// into the requesting face's pixel frame.
//
// Example:
//
//	adj := cube.Neighbor(cube.Face1, cube.Top)
//	// adj.Face == cube.FaceSouth, adj.Edge == cube.Right, adj.Transform == cube.Rot90
package cube

import (
	"github.com/cubesphere-ml/cubesphere/internal/cube"
)

// NumFaces is the number of faces on the cubed sphere.
const NumFaces = cube.NumFaces

// Face identifies one of the six cube faces.
type Face = cube.Face

// Face constants: four equatorial faces in eastward order, then the poles.
const (
	Face0     Face = cube.Face0
	Face1     Face = cube.Face1
	Face2     Face = cube.Face2
	Face3     Face = cube.Face3
	FaceSouth Face = cube.FaceSouth
	FaceNorth Face = cube.FaceNorth
)

// Edge identifies one side of a face in its own pixel frame.
type Edge = cube.Edge

// Edge constants.
const (
	Top    Edge = cube.Top
	Bottom Edge = cube.Bottom
	Left   Edge = cube.Left
	Right  Edge = cube.Right
)

// Transform is the in-plane rotation applied to a neighbor face to
// bring it into the requesting face's pixel frame.
type Transform = cube.Transform

// Transform constants: clockwise quarter turns.
const (
	Identity Transform = cube.Identity
	Rot90    Transform = cube.Rot90
	Rot180   Transform = cube.Rot180
	Rot270   Transform = cube.Rot270
)

// Group classifies faces by which convolution kernel they share.
type Group = cube.Group

// Group constants.
const (
	Equatorial Group = cube.Equatorial
	SouthPole  Group = cube.SouthPole
	NorthPole  Group = cube.NorthPole
)

// Adjacency describes the far side of one face edge.
type Adjacency = cube.Adjacency

// Neighbor returns the adjacency record for the given face edge.
// It is total: every (face, edge) pair has exactly one neighbor.
func Neighbor(f Face, e Edge) Adjacency {
	return cube.Neighbor(f, e)
}

// FaceGroup returns the weight-sharing group of a face.
func FaceGroup(f Face) Group {
	return cube.FaceGroup(f)
}
