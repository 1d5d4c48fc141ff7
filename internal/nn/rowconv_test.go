package nn

import (
	"errors"
	"testing"

	"github.com/cubesphere-ml/cubesphere/internal/backend/cpu"
	"github.com/cubesphere-ml/cubesphere/internal/tensor"
)

// TestRowConv2D_PerRowKernels tests that every output row applies its
// own kernel.
func TestRowConv2D_PerRowKernels(t *testing.T) {
	backend := cpu.New()

	conv, err := NewRowConv2D(1, [2]int{2, 3}, [2]int{2, 1}, false, backend)
	if err != nil {
		t.Fatalf("NewRowConv2D failed: %v", err)
	}

	// 4x3 grid with values 0..11, two output rows.
	input := countingGrid(t, backend, 4, 3)

	out, err := conv.Call(input)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if !out.Shape().Equal(tensor.Shape{1, 1, 2, 1}) {
		t.Fatalf("Output shape: got %v, want [1, 1, 2, 1]", out.Shape())
	}

	// Row 0 kernel sums its band, row 1 kernel doubles its band.
	wData := conv.weight.Tensor().Data()
	perRow := len(wData) / 2
	for i := 0; i < perRow; i++ {
		wData[i] = 1
		wData[perRow+i] = 2
	}

	out, err = conv.Call(input)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}

	// Band 0 covers rows 0-1 (sum 15), band 1 covers rows 2-3 (sum 51).
	if got := out.At(0, 0, 0, 0); got != 15 {
		t.Errorf("row 0: got %v, want 15", got)
	}
	if got := out.At(0, 0, 1, 0); got != 102 {
		t.Errorf("row 1: got %v, want 102", got)
	}
}

// TestRowConv2D_DeferredBuild tests kernel allocation on first call.
func TestRowConv2D_DeferredBuild(t *testing.T) {
	backend := cpu.New()

	conv, err := NewRowConv2D(3, [2]int{2, 2}, [2]int{1, 1}, true, backend)
	if err != nil {
		t.Fatalf("NewRowConv2D failed: %v", err)
	}
	if params := conv.Parameters(); params != nil {
		t.Errorf("unbuilt layer has %d parameters, want none", len(params))
	}

	input := tensor.Zeros[float32](tensor.Shape{1, 2, 5, 5}, backend)
	out, err := conv.Call(input)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}

	// outRows = (5-2)/1 + 1 = 4, outCols = 5-2+1 = 4.
	if !out.Shape().Equal(tensor.Shape{1, 3, 4, 4}) {
		t.Fatalf("Output shape: got %v, want [1, 3, 4, 4]", out.Shape())
	}

	params := conv.Parameters()
	if len(params) != 2 {
		t.Fatalf("expected weight and bias, got %d parameters", len(params))
	}
	if !params[0].Tensor().Shape().Equal(tensor.Shape{4, 2, 2, 2, 3}) {
		t.Errorf("weight shape: got %v, want [4, 2, 2, 2, 3]", params[0].Tensor().Shape())
	}
	if !params[1].Tensor().Shape().Equal(tensor.Shape{3}) {
		t.Errorf("bias shape: got %v, want [3]", params[1].Tensor().Shape())
	}

	// Channel count is fixed after the first call.
	_, err = conv.Call(tensor.Zeros[float32](tensor.Shape{1, 3, 5, 5}, backend))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("channel mismatch: got %v, want ErrInvalidArgument", err)
	}
}

// TestRowConv2D_Errors tests validation.
func TestRowConv2D_Errors(t *testing.T) {
	backend := cpu.New()

	if _, err := NewRowConv2D(0, [2]int{2, 2}, [2]int{1, 1}, false, backend); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero filters: got %v, want ErrInvalidArgument", err)
	}
	if _, err := NewRowConv2D(1, [2]int{0, 2}, [2]int{1, 1}, false, backend); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero kernel: got %v, want ErrInvalidArgument", err)
	}

	conv, _ := NewRowConv2D(1, [2]int{4, 1}, [2]int{1, 1}, false, backend)
	_, err := conv.Call(tensor.Zeros[float32](tensor.Shape{1, 1, 2, 2}, backend))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("kernel taller than input: got %v, want ErrInvalidArgument", err)
	}
}
