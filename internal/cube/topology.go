// Package cube describes the connectivity of the cubed-sphere grid.
//
// A field on the cubed sphere is stored as six square faces. Faces 0-3
// form the equatorial belt in eastward order, face 4 is centered on the
// south pole, face 5 on the north pole. Within a face, rows run top to
// bottom and columns left to right; "top" of an equatorial face borders
// the south-pole face, "bottom" borders the north-pole face.
//
// The adjacency table answers, for any (face, edge), which face lies
// across that edge, which of its edges touches, and the in-plane
// rotation that carries the neighbor's pixel frame into the requesting
// face's frame.
package cube

import "fmt"

// NumFaces is the number of faces on the cubed sphere.
const NumFaces = 6

// Face identifies one of the six cube faces.
type Face int

// Face constants: four equatorial faces in eastward order, then the poles.
const (
	Face0 Face = iota // equatorial
	Face1             // equatorial
	Face2             // equatorial
	Face3             // equatorial
	FaceSouth         // south pole
	FaceNorth         // north pole
)

// Valid reports whether f is one of the six faces.
func (f Face) Valid() bool {
	return f >= 0 && f < NumFaces
}

// Edge identifies one side of a face in its own pixel frame.
type Edge int

// Edge constants.
const (
	Top Edge = iota
	Bottom
	Left
	Right
)

// String returns a human-readable edge name.
func (e Edge) String() string {
	switch e {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Transform is the in-plane rotation applied to a neighbor face to bring
// it into the requesting face's pixel frame. Rotations are clockwise
// quarter turns: Rot90 maps cell (i, j) of an N×N grid to source cell
// (N-1-j, i).
type Transform int

// Transform constants.
const (
	Identity Transform = iota
	Rot90
	Rot180
	Rot270
)

// String returns a human-readable transform name.
func (t Transform) String() string {
	switch t {
	case Identity:
		return "identity"
	case Rot90:
		return "rot90"
	case Rot180:
		return "rot180"
	case Rot270:
		return "rot270"
	default:
		return "unknown"
	}
}

// Inverse returns the rotation that undoes t.
func (t Transform) Inverse() Transform {
	switch t {
	case Rot90:
		return Rot270
	case Rot270:
		return Rot90
	default:
		return t
	}
}

// Group classifies faces by which convolution kernel they share.
type Group int

// Group constants.
const (
	Equatorial Group = iota
	SouthPole
	NorthPole
)

// String returns a human-readable group name.
func (g Group) String() string {
	switch g {
	case Equatorial:
		return "equatorial"
	case SouthPole:
		return "south-pole"
	case NorthPole:
		return "north-pole"
	default:
		return "unknown"
	}
}

// FaceGroup returns the weight-sharing group of a face.
// Panics if the face is out of range.
func FaceGroup(f Face) Group {
	switch {
	case f >= Face0 && f <= Face3:
		return Equatorial
	case f == FaceSouth:
		return SouthPole
	case f == FaceNorth:
		return NorthPole
	default:
		panic(fmt.Sprintf("cube: invalid face %d", f))
	}
}

// Adjacency describes the far side of one face edge.
type Adjacency struct {
	Face      Face      // neighboring face
	Edge      Edge      // the neighbor's edge that touches
	Transform Transform // rotation into the requester's frame
}

// adjacency holds the full 24-entry table, indexed by [face][edge].
//
// Equatorial faces chain eastward with identity transforms; each also
// touches both poles. The polar entries carry the quarter- and
// half-turn rotations that line the pole faces up with each equatorial
// neighbor.
var adjacency = [NumFaces][4]Adjacency{
	Face0: {
		Top:    {FaceSouth, Bottom, Identity},
		Bottom: {FaceNorth, Top, Identity},
		Left:   {Face3, Right, Identity},
		Right:  {Face1, Left, Identity},
	},
	Face1: {
		Top:    {FaceSouth, Right, Rot90},
		Bottom: {FaceNorth, Right, Rot270},
		Left:   {Face0, Right, Identity},
		Right:  {Face2, Left, Identity},
	},
	Face2: {
		Top:    {FaceSouth, Top, Rot180},
		Bottom: {FaceNorth, Bottom, Rot180},
		Left:   {Face1, Right, Identity},
		Right:  {Face3, Left, Identity},
	},
	Face3: {
		Top:    {FaceSouth, Left, Rot270},
		Bottom: {FaceNorth, Left, Rot90},
		Left:   {Face2, Right, Identity},
		Right:  {Face0, Left, Identity},
	},
	FaceSouth: {
		Top:    {Face2, Top, Rot180},
		Bottom: {Face0, Top, Identity},
		Left:   {Face3, Top, Rot90},
		Right:  {Face1, Top, Rot270},
	},
	FaceNorth: {
		Top:    {Face0, Bottom, Identity},
		Bottom: {Face2, Bottom, Rot180},
		Left:   {Face3, Bottom, Rot270},
		Right:  {Face1, Bottom, Rot90},
	},
}

// Neighbor returns the adjacency record for the given face edge.
// It is total: every (face, edge) pair has exactly one neighbor.
// Panics if face is out of range.
func Neighbor(f Face, e Edge) Adjacency {
	if !f.Valid() {
		panic(fmt.Sprintf("cube: invalid face %d", f))
	}
	if e < Top || e > Right {
		panic(fmt.Sprintf("cube: invalid edge %d", e))
	}
	return adjacency[f][e]
}
