package nn

import (
	"errors"
	"testing"

	"github.com/cubesphere-ml/cubesphere/internal/backend/cpu"
	"github.com/cubesphere-ml/cubesphere/internal/cube"
	"github.com/cubesphere-ml/cubesphere/internal/tensor"
)

// faceConstantInput builds a [1, 1, n, n, 6] tensor where every cell of
// face f holds the value f.
func faceConstantInput(n int, backend *cpu.CPUBackend) *tensor.Tensor[float32, *cpu.CPUBackend] {
	x := tensor.Zeros[float32](tensor.Shape{1, 1, n, n, 6}, backend)
	data := x.Data()
	// The face axis is last with stride 1, so i mod 6 is the face index.
	for i := range data {
		data[i] = float32(i % 6)
	}
	return x
}

// faceCountingInput builds a [1, 1, n, n, 6] tensor where face f holds
// f*100 + row*n + col, so every cell is identifiable after rotation.
func faceCountingInput(n int, backend *cpu.CPUBackend) *tensor.Tensor[float32, *cpu.CPUBackend] {
	x := tensor.Zeros[float32](tensor.Shape{1, 1, n, n, 6}, backend)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for f := 0; f < 6; f++ {
				x.Set(float32(f*100+i*n+j), 0, 0, i, j, f)
			}
		}
	}
	return x
}

// TestCubeSpherePadding2D_OutputShape tests the padded shape.
func TestCubeSpherePadding2D_OutputShape(t *testing.T) {
	backend := cpu.New()
	pad, err := NewCubeSpherePadding2D(1, backend)
	if err != nil {
		t.Fatalf("NewCubeSpherePadding2D failed: %v", err)
	}

	input := tensor.Zeros[float32](tensor.Shape{2, 3, 4, 4, 6}, backend)
	out, err := pad.Pad(input)
	if err != nil {
		t.Fatalf("Pad failed: %v", err)
	}
	if !out.Shape().Equal(tensor.Shape{2, 3, 6, 6, 6}) {
		t.Errorf("Padded shape: got %v, want [2, 3, 6, 6, 6]", out.Shape())
	}

	shape, err := pad.ComputeOutputShape(tensor.Shape{2, 3, 4, 4, 6})
	if err != nil {
		t.Fatalf("ComputeOutputShape failed: %v", err)
	}
	if !shape.Equal(tensor.Shape{2, 3, 6, 6, 6}) {
		t.Errorf("ComputeOutputShape: got %v", shape)
	}
}

// TestCubeSpherePadding2D_ZeroPadding tests that a zero halo copies the input.
func TestCubeSpherePadding2D_ZeroPadding(t *testing.T) {
	backend := cpu.New()
	pad, err := NewCubeSpherePadding2D(0, backend)
	if err != nil {
		t.Fatalf("NewCubeSpherePadding2D failed: %v", err)
	}

	input := faceCountingInput(3, backend)
	out, err := pad.Pad(input)
	if err != nil {
		t.Fatalf("Pad failed: %v", err)
	}
	if !out.Shape().Equal(input.Shape()) {
		t.Fatalf("Shape changed: got %v", out.Shape())
	}
	for i, v := range out.Data() {
		if v != input.Data()[i] {
			t.Fatal("zero padding altered values")
		}
	}
	if out.Raw() == input.Raw() {
		t.Error("zero padding must return a copy, not the input")
	}
}

// TestCubeSpherePadding2D_InteriorPreserved tests that the original face
// values survive in the interior of the padded output.
func TestCubeSpherePadding2D_InteriorPreserved(t *testing.T) {
	backend := cpu.New()
	pad, _ := NewCubeSpherePadding2D(1, backend)

	n := 4
	input := faceCountingInput(n, backend)
	out, err := pad.Pad(input)
	if err != nil {
		t.Fatalf("Pad failed: %v", err)
	}

	for f := 0; f < 6; f++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				want := input.At(0, 0, i, j, f)
				got := out.At(0, 0, i+1, j+1, f)
				if got != want {
					t.Fatalf("face %d interior (%d,%d): got %v, want %v", f, i, j, got, want)
				}
			}
		}
	}
}

// TestCubeSpherePadding2D_EdgeNeighbors tests that every halo strip
// carries values from the face named by the adjacency table.
func TestCubeSpherePadding2D_EdgeNeighbors(t *testing.T) {
	backend := cpu.New()
	pad, _ := NewCubeSpherePadding2D(1, backend)

	n := 4
	input := faceConstantInput(n, backend)
	out, err := pad.Pad(input)
	if err != nil {
		t.Fatalf("Pad failed: %v", err)
	}

	for f := cube.Face(0); f < cube.NumFaces; f++ {
		top := float32(cube.Neighbor(f, cube.Top).Face)
		bottom := float32(cube.Neighbor(f, cube.Bottom).Face)
		left := float32(cube.Neighbor(f, cube.Left).Face)
		right := float32(cube.Neighbor(f, cube.Right).Face)

		for k := 0; k < n; k++ {
			if got := out.At(0, 0, 0, k+1, int(f)); got != top {
				t.Errorf("face %d top halo col %d: got %v, want %v", f, k, got, top)
			}
			if got := out.At(0, 0, n+1, k+1, int(f)); got != bottom {
				t.Errorf("face %d bottom halo col %d: got %v, want %v", f, k, got, bottom)
			}
			if got := out.At(0, 0, k+1, 0, int(f)); got != left {
				t.Errorf("face %d left halo row %d: got %v, want %v", f, k, got, left)
			}
			if got := out.At(0, 0, k+1, n+1, int(f)); got != right {
				t.Errorf("face %d right halo row %d: got %v, want %v", f, k, got, right)
			}
		}
	}
}

// TestCubeSpherePadding2D_Rotations tests exact cell provenance through
// identity and quarter-turn transforms.
func TestCubeSpherePadding2D_Rotations(t *testing.T) {
	backend := cpu.New()
	pad, _ := NewCubeSpherePadding2D(1, backend)

	n := 4
	input := faceCountingInput(n, backend)
	out, err := pad.Pad(input)
	if err != nil {
		t.Fatalf("Pad failed: %v", err)
	}

	val := func(f, i, j int) float32 { return float32(f*100 + i*n + j) }

	// Face 0's top edge reads the south pole's bottom rows unrotated.
	for j := 0; j < n; j++ {
		want := val(4, n-1, j)
		if got := out.At(0, 0, 0, j+1, 0); got != want {
			t.Errorf("face 0 top halo col %d: got %v, want %v", j, got, want)
		}
	}

	// Face 0's bottom edge reads the north pole's top rows unrotated.
	for j := 0; j < n; j++ {
		want := val(5, 0, j)
		if got := out.At(0, 0, n+1, j+1, 0); got != want {
			t.Errorf("face 0 bottom halo col %d: got %v, want %v", j, got, want)
		}
	}

	// Face 0's left edge reads face 3's rightmost column.
	for i := 0; i < n; i++ {
		want := val(3, i, n-1)
		if got := out.At(0, 0, i+1, 0, 0); got != want {
			t.Errorf("face 0 left halo row %d: got %v, want %v", i, got, want)
		}
	}

	// Face 1's top edge reads the south pole turned a quarter clockwise:
	// the halo walks the pole's right column bottom to top.
	for j := 0; j < n; j++ {
		want := val(4, n-1-j, n-1)
		if got := out.At(0, 0, 0, j+1, 1); got != want {
			t.Errorf("face 1 top halo col %d: got %v, want %v", j, got, want)
		}
	}

	// Face 2's top edge reads the south pole's top row reversed.
	for j := 0; j < n; j++ {
		want := val(4, 0, n-1-j)
		if got := out.At(0, 0, 0, j+1, 2); got != want {
			t.Errorf("face 2 top halo col %d: got %v, want %v", j, got, want)
		}
	}
}

// TestCubeSpherePadding2D_Corners tests the corner cells of every padded
// face against the deterministic two-pass resolution.
func TestCubeSpherePadding2D_Corners(t *testing.T) {
	backend := cpu.New()
	pad, _ := NewCubeSpherePadding2D(1, backend)

	n := 4
	input := faceConstantInput(n, backend)
	out, err := pad.Pad(input)
	if err != nil {
		t.Fatalf("Pad failed: %v", err)
	}

	// corner values per face: top-left, top-right, bottom-left, bottom-right
	corners := [6][4]float32{
		{4, 4, 5, 5}, // face 0
		{4, 4, 5, 5}, // face 1
		{4, 4, 5, 5}, // face 2
		{4, 4, 5, 5}, // face 3
		{2, 2, 0, 0}, // south pole
		{0, 0, 2, 2}, // north pole
	}

	last := n + 1
	for f := 0; f < 6; f++ {
		got := [4]float32{
			out.At(0, 0, 0, 0, f),
			out.At(0, 0, 0, last, f),
			out.At(0, 0, last, 0, f),
			out.At(0, 0, last, last, f),
		}
		if got != corners[f] {
			t.Errorf("face %d corners: got %v, want %v", f, got, corners[f])
		}
	}
}

// TestCubeSpherePadding2D_WidePadding tests a halo wider than one cell.
func TestCubeSpherePadding2D_WidePadding(t *testing.T) {
	backend := cpu.New()
	pad, _ := NewCubeSpherePadding2D(2, backend)

	n := 4
	input := faceConstantInput(n, backend)
	out, err := pad.Pad(input)
	if err != nil {
		t.Fatalf("Pad failed: %v", err)
	}
	if !out.Shape().Equal(tensor.Shape{1, 1, 8, 8, 6}) {
		t.Fatalf("Padded shape: got %v, want [1, 1, 8, 8, 6]", out.Shape())
	}

	// Both halo rows of face 0's top edge come from the south pole.
	for r := 0; r < 2; r++ {
		for j := 0; j < n; j++ {
			if got := out.At(0, 0, r, j+2, 0); got != 4 {
				t.Errorf("face 0 top halo (%d,%d): got %v, want 4", r, j, got)
			}
		}
	}
}

// TestCubeSpherePadding2D_Errors tests input validation.
func TestCubeSpherePadding2D_Errors(t *testing.T) {
	backend := cpu.New()

	if _, err := NewCubeSpherePadding2D(-1, backend); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative padding: got %v, want ErrInvalidArgument", err)
	}

	pad, _ := NewCubeSpherePadding2D(1, backend)

	cases := []struct {
		name  string
		shape tensor.Shape
	}{
		{"Not5D", tensor.Shape{1, 1, 4, 4}},
		{"WrongFaceCount", tensor.Shape{1, 1, 4, 4, 5}},
		{"NonSquare", tensor.Shape{1, 1, 4, 5, 6}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := tensor.Zeros[float32](tc.shape, backend)
			if _, err := pad.Pad(input); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("got %v, want ErrInvalidArgument", err)
			}
		})
	}

	t.Run("PaddingExceedsFace", func(t *testing.T) {
		wide, _ := NewCubeSpherePadding2D(5, backend)
		input := tensor.Zeros[float32](tensor.Shape{1, 1, 4, 4, 6}, backend)
		if _, err := wide.Pad(input); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("got %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("ForwardPanics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic from Forward on bad input")
			}
		}()
		pad.Forward(tensor.Zeros[float32](tensor.Shape{2, 2}, backend))
	})
}

// TestCubeSpherePadding2D_Config tests the configuration round trip.
func TestCubeSpherePadding2D_Config(t *testing.T) {
	backend := cpu.New()
	pad, _ := NewCubeSpherePadding2D(3, backend)

	cfg := pad.Config()
	if cfg.Padding != 3 {
		t.Errorf("Config padding: got %d, want 3", cfg.Padding)
	}

	restored, err := NewCubeSpherePadding2DFromConfig(cfg, backend)
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if restored.Padding() != 3 {
		t.Errorf("restored padding: got %d, want 3", restored.Padding())
	}

	if params := pad.Parameters(); len(params) != 0 {
		t.Errorf("padding layer has %d parameters, want 0", len(params))
	}
}
