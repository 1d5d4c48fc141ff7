package cpu

import (
	"testing"

	"github.com/cubesphere-ml/cubesphere/internal/tensor"
)

// TestCat tests concatenation along various dimensions.
func TestCat(t *testing.T) {
	backend := newTestBackend()

	t.Run("Dim0", func(t *testing.T) {
		a := rawFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
		b := rawFromSlice(t, []float32{5, 6}, tensor.Shape{1, 2})

		out := backend.Cat([]*tensor.RawTensor{a, b}, 0)

		if !out.Shape().Equal(tensor.Shape{3, 2}) {
			t.Fatalf("Cat shape: got %v, want [3, 2]", out.Shape())
		}
		expected := []float32{1, 2, 3, 4, 5, 6}
		if !float32SliceEqual(out.AsFloat32(), expected) {
			t.Errorf("Cat failed: got %v, expected %v", out.AsFloat32(), expected)
		}
	})

	t.Run("Dim1", func(t *testing.T) {
		a := rawFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
		b := rawFromSlice(t, []float32{5, 6}, tensor.Shape{2, 1})

		out := backend.Cat([]*tensor.RawTensor{a, b}, 1)

		if !out.Shape().Equal(tensor.Shape{2, 3}) {
			t.Fatalf("Cat shape: got %v, want [2, 3]", out.Shape())
		}
		expected := []float32{1, 2, 5, 3, 4, 6}
		if !float32SliceEqual(out.AsFloat32(), expected) {
			t.Errorf("Cat failed: got %v, expected %v", out.AsFloat32(), expected)
		}
	})

	t.Run("NegativeDim", func(t *testing.T) {
		a := rawFromSlice(t, []float32{1, 2}, tensor.Shape{2, 1})
		b := rawFromSlice(t, []float32{3, 4}, tensor.Shape{2, 1})

		out := backend.Cat([]*tensor.RawTensor{a, b}, -1)

		if !out.Shape().Equal(tensor.Shape{2, 2}) {
			t.Fatalf("Cat shape: got %v, want [2, 2]", out.Shape())
		}
		expected := []float32{1, 3, 2, 4}
		if !float32SliceEqual(out.AsFloat32(), expected) {
			t.Errorf("Cat failed: got %v, expected %v", out.AsFloat32(), expected)
		}
	})

	t.Run("ShapeMismatchPanics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for mismatched shapes")
			}
		}()
		a := rawFromSlice(t, []float32{1, 2}, tensor.Shape{2, 1})
		b := rawFromSlice(t, []float32{1, 2, 3}, tensor.Shape{3, 1})
		backend.Cat([]*tensor.RawTensor{a, b}, 1)
	})
}

// TestNarrow tests band slicing.
func TestNarrow(t *testing.T) {
	backend := newTestBackend()
	x := rawFromSlice(t, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}, tensor.Shape{3, 3})

	t.Run("Rows", func(t *testing.T) {
		out := backend.Narrow(x, 0, 1, 2)
		if !out.Shape().Equal(tensor.Shape{2, 3}) {
			t.Fatalf("Narrow shape: got %v, want [2, 3]", out.Shape())
		}
		expected := []float32{4, 5, 6, 7, 8, 9}
		if !float32SliceEqual(out.AsFloat32(), expected) {
			t.Errorf("Narrow failed: got %v, expected %v", out.AsFloat32(), expected)
		}
	})

	t.Run("Cols", func(t *testing.T) {
		out := backend.Narrow(x, 1, 0, 1)
		if !out.Shape().Equal(tensor.Shape{3, 1}) {
			t.Fatalf("Narrow shape: got %v, want [3, 1]", out.Shape())
		}
		expected := []float32{1, 4, 7}
		if !float32SliceEqual(out.AsFloat32(), expected) {
			t.Errorf("Narrow failed: got %v, expected %v", out.AsFloat32(), expected)
		}
	})

	t.Run("IsACopy", func(t *testing.T) {
		out := backend.Narrow(x, 0, 0, 1)
		out.AsFloat32()[0] = 99
		if x.AsFloat32()[0] != 1 {
			t.Error("Narrow shares memory with the input")
		}
	})

	t.Run("OutOfRangePanics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for out-of-range band")
			}
		}()
		backend.Narrow(x, 0, 2, 2)
	})
}

// TestFlip tests element reversal along a dimension.
func TestFlip(t *testing.T) {
	backend := newTestBackend()
	x := rawFromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	t.Run("Rows", func(t *testing.T) {
		out := backend.Flip(x, 0)
		expected := []float32{4, 5, 6, 1, 2, 3}
		if !float32SliceEqual(out.AsFloat32(), expected) {
			t.Errorf("Flip failed: got %v, expected %v", out.AsFloat32(), expected)
		}
	})

	t.Run("Cols", func(t *testing.T) {
		out := backend.Flip(x, -1)
		expected := []float32{3, 2, 1, 6, 5, 4}
		if !float32SliceEqual(out.AsFloat32(), expected) {
			t.Errorf("Flip failed: got %v, expected %v", out.AsFloat32(), expected)
		}
	})

	t.Run("Involution", func(t *testing.T) {
		out := backend.Flip(backend.Flip(x, 1), 1)
		if !float32SliceEqual(out.AsFloat32(), x.AsFloat32()) {
			t.Error("double Flip is not the identity")
		}
	})
}

// TestIndex tests slice selection with dimension removal.
func TestIndex(t *testing.T) {
	backend := newTestBackend()
	x := rawFromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	t.Run("Row", func(t *testing.T) {
		out := backend.Index(x, 0, 1)
		if !out.Shape().Equal(tensor.Shape{3}) {
			t.Fatalf("Index shape: got %v, want [3]", out.Shape())
		}
		expected := []float32{4, 5, 6}
		if !float32SliceEqual(out.AsFloat32(), expected) {
			t.Errorf("Index failed: got %v, expected %v", out.AsFloat32(), expected)
		}
	})

	// Face extraction pattern: select one slot of a trailing axis.
	t.Run("LastDim", func(t *testing.T) {
		faces := rawFromSlice(t, []float32{
			0, 1, 2,
			10, 11, 12,
		}, tensor.Shape{2, 3})

		out := backend.Index(faces, -1, 2)
		if !out.Shape().Equal(tensor.Shape{2}) {
			t.Fatalf("Index shape: got %v, want [2]", out.Shape())
		}
		expected := []float32{2, 12}
		if !float32SliceEqual(out.AsFloat32(), expected) {
			t.Errorf("Index failed: got %v, expected %v", out.AsFloat32(), expected)
		}
	})

	t.Run("OutOfRangePanics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for out-of-range index")
			}
		}()
		backend.Index(x, 0, 2)
	})
}

// TestUnsqueezeSqueeze tests dimension insertion and removal.
func TestUnsqueezeSqueeze(t *testing.T) {
	backend := newTestBackend()
	x := rawFromSlice(t, []float32{1, 2, 3}, tensor.Shape{3})

	u := backend.Unsqueeze(x, -1)
	if !u.Shape().Equal(tensor.Shape{3, 1}) {
		t.Fatalf("Unsqueeze(-1) shape: got %v, want [3, 1]", u.Shape())
	}

	u0 := backend.Unsqueeze(x, 0)
	if !u0.Shape().Equal(tensor.Shape{1, 3}) {
		t.Fatalf("Unsqueeze(0) shape: got %v, want [1, 3]", u0.Shape())
	}

	s := backend.Squeeze(u0, 0)
	if !s.Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("Squeeze shape: got %v, want [3]", s.Shape())
	}

	t.Run("SqueezeNonUnitPanics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for squeezing a non-unit dimension")
			}
		}()
		backend.Squeeze(x, 0)
	})
}

// TestStackFaces tests the unsqueeze-then-cat pattern the cubed-sphere
// layers use to rebuild the face axis.
func TestStackFaces(t *testing.T) {
	backend := newTestBackend()

	a := rawFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawFromSlice(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})

	stacked := backend.Cat([]*tensor.RawTensor{
		backend.Unsqueeze(a, -1),
		backend.Unsqueeze(b, -1),
	}, -1)

	if !stacked.Shape().Equal(tensor.Shape{2, 2, 2}) {
		t.Fatalf("Stack shape: got %v, want [2, 2, 2]", stacked.Shape())
	}
	expected := []float32{1, 5, 2, 6, 3, 7, 4, 8}
	if !float32SliceEqual(stacked.AsFloat32(), expected) {
		t.Errorf("Stack failed: got %v, expected %v", stacked.AsFloat32(), expected)
	}

	// Index must invert the stack.
	back := backend.Index(stacked, -1, 1)
	if !float32SliceEqual(back.AsFloat32(), b.AsFloat32()) {
		t.Errorf("Index after stack failed: got %v", back.AsFloat32())
	}
}
