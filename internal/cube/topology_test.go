package cube

import "testing"

func TestNeighborSymmetry(t *testing.T) {
	// Crossing an edge and crossing back must land on the original
	// (face, edge) pair, and the return transform must invert the
	// outbound one.
	for f := Face(0); f < NumFaces; f++ {
		for e := Top; e <= Right; e++ {
			out := Neighbor(f, e)
			back := Neighbor(out.Face, out.Edge)
			if back.Face != f || back.Edge != e {
				t.Errorf("Neighbor(%d,%s) -> (%d,%s), return trip gave (%d,%s)",
					f, e, out.Face, out.Edge, back.Face, back.Edge)
			}
			if back.Transform != out.Transform.Inverse() {
				t.Errorf("Neighbor(%d,%s): transform %s, return transform %s, want %s",
					f, e, out.Transform, back.Transform, out.Transform.Inverse())
			}
		}
	}
}

func TestEquatorialBelt(t *testing.T) {
	// The belt chains eastward through Right edges with identity
	// transforms and wraps after four faces.
	f := Face0
	for i := 0; i < 4; i++ {
		adj := Neighbor(f, Right)
		if adj.Edge != Left || adj.Transform != Identity {
			t.Errorf("face %d right edge: got (%s, %s), want (left, identity)", f, adj.Edge, adj.Transform)
		}
		f = adj.Face
	}
	if f != Face0 {
		t.Errorf("belt does not close: ended on face %d", f)
	}
}

func TestPolesTouchAllEquatorialFaces(t *testing.T) {
	for _, pole := range []Face{FaceSouth, FaceNorth} {
		seen := map[Face]bool{}
		for e := Top; e <= Right; e++ {
			adj := Neighbor(pole, e)
			if g := FaceGroup(adj.Face); g != Equatorial {
				t.Errorf("pole %d edge %s touches %s face %d", pole, e, g, adj.Face)
			}
			seen[adj.Face] = true
		}
		if len(seen) != 4 {
			t.Errorf("pole %d touches %d distinct faces, want 4", pole, len(seen))
		}
	}
}

func TestEquatorialPolarEdges(t *testing.T) {
	// Every equatorial top edge borders the south pole, every bottom
	// edge the north pole.
	for f := Face0; f <= Face3; f++ {
		if adj := Neighbor(f, Top); adj.Face != FaceSouth {
			t.Errorf("face %d top borders face %d, want south pole", f, adj.Face)
		}
		if adj := Neighbor(f, Bottom); adj.Face != FaceNorth {
			t.Errorf("face %d bottom borders face %d, want north pole", f, adj.Face)
		}
	}
}

func TestFaceGroup(t *testing.T) {
	want := map[Face]Group{
		Face0: Equatorial, Face1: Equatorial, Face2: Equatorial, Face3: Equatorial,
		FaceSouth: SouthPole, FaceNorth: NorthPole,
	}
	for f, g := range want {
		if got := FaceGroup(f); got != g {
			t.Errorf("FaceGroup(%d) = %s, want %s", f, got, g)
		}
	}
}

func TestTransformInverse(t *testing.T) {
	cases := map[Transform]Transform{
		Identity: Identity,
		Rot90:    Rot270,
		Rot180:   Rot180,
		Rot270:   Rot90,
	}
	for tr, inv := range cases {
		if got := tr.Inverse(); got != inv {
			t.Errorf("%s.Inverse() = %s, want %s", tr, got, inv)
		}
	}
}

func TestNeighborPanicsOnInvalidFace(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid face")
		}
	}()
	Neighbor(Face(6), Top)
}
