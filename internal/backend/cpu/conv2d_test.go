package cpu

import (
	"testing"

	"github.com/cubesphere-ml/cubesphere/internal/tensor"
)

// TestConv2D_Identity tests a 1x1 scaling kernel.
func TestConv2D_Identity(t *testing.T) {
	backend := newTestBackend()

	input := rawFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2})
	kernel := rawFromSlice(t, []float32{2}, tensor.Shape{1, 1, 1, 1})

	out := backend.Conv2D(input, kernel, tensor.DefaultConv2DParams())

	if !out.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("Output shape: got %v, want [1, 1, 2, 2]", out.Shape())
	}
	expected := []float32{2, 4, 6, 8}
	if !float32SliceEqual(out.AsFloat32(), expected) {
		t.Errorf("Conv2D failed: got %v, expected %v", out.AsFloat32(), expected)
	}
}

// TestConv2D_SumKernel tests a 3x3 box kernel against hand-computed sums.
func TestConv2D_SumKernel(t *testing.T) {
	backend := newTestBackend()

	// 4x4 input with values 1..16.
	data := make([]float32, 16)
	for i := range data {
		data[i] = float32(i + 1)
	}
	input := rawFromSlice(t, data, tensor.Shape{1, 1, 4, 4})

	ones := make([]float32, 9)
	for i := range ones {
		ones[i] = 1
	}
	kernel := rawFromSlice(t, ones, tensor.Shape{3, 3, 1, 1})

	out := backend.Conv2D(input, kernel, tensor.DefaultConv2DParams())

	if !out.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("Output shape: got %v, want [1, 1, 2, 2]", out.Shape())
	}
	expected := []float32{54, 63, 90, 99}
	if !float32SliceEqual(out.AsFloat32(), expected) {
		t.Errorf("Conv2D failed: got %v, expected %v", out.AsFloat32(), expected)
	}
}

// TestConv2D_Stride tests strided convolution.
func TestConv2D_Stride(t *testing.T) {
	backend := newTestBackend()

	data := make([]float32, 16)
	for i := range data {
		data[i] = float32(i + 1)
	}
	input := rawFromSlice(t, data, tensor.Shape{1, 1, 4, 4})
	kernel := rawFromSlice(t, []float32{1, 1, 1, 1}, tensor.Shape{2, 2, 1, 1})

	params := tensor.DefaultConv2DParams()
	params.StrideH, params.StrideW = 2, 2
	out := backend.Conv2D(input, kernel, params)

	if !out.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("Output shape: got %v, want [1, 1, 2, 2]", out.Shape())
	}
	expected := []float32{14, 22, 46, 54}
	if !float32SliceEqual(out.AsFloat32(), expected) {
		t.Errorf("Strided Conv2D failed: got %v, expected %v", out.AsFloat32(), expected)
	}
}

// TestConv2D_Dilation tests dilated convolution.
func TestConv2D_Dilation(t *testing.T) {
	backend := newTestBackend()

	data := make([]float32, 9)
	for i := range data {
		data[i] = float32(i + 1)
	}
	input := rawFromSlice(t, data, tensor.Shape{1, 1, 3, 3})
	kernel := rawFromSlice(t, []float32{1, 1, 1, 1}, tensor.Shape{2, 2, 1, 1})

	params := tensor.DefaultConv2DParams()
	params.DilationH, params.DilationW = 2, 2
	out := backend.Conv2D(input, kernel, params)

	if !out.Shape().Equal(tensor.Shape{1, 1, 1, 1}) {
		t.Fatalf("Output shape: got %v, want [1, 1, 1, 1]", out.Shape())
	}
	// The dilated 2x2 kernel sees the four corners: 1 + 3 + 7 + 9.
	if out.AsFloat32()[0] != 20 {
		t.Errorf("Dilated Conv2D = %v, want 20", out.AsFloat32()[0])
	}
}

// TestConv2D_AsymmetricPadding tests explicit begin/end zero padding.
func TestConv2D_AsymmetricPadding(t *testing.T) {
	backend := newTestBackend()

	input := rawFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2})
	kernel := rawFromSlice(t, []float32{1, 1, 1, 1}, tensor.Shape{2, 2, 1, 1})

	params := tensor.DefaultConv2DParams()
	params.PadTop = 1
	out := backend.Conv2D(input, kernel, params)

	if !out.Shape().Equal(tensor.Shape{1, 1, 2, 1}) {
		t.Fatalf("Output shape: got %v, want [1, 1, 2, 1]", out.Shape())
	}
	// Row 0 reads one padded row of zeros, row 1 reads the full input.
	expected := []float32{3, 10}
	if !float32SliceEqual(out.AsFloat32(), expected) {
		t.Errorf("Padded Conv2D failed: got %v, expected %v", out.AsFloat32(), expected)
	}
}

// TestConv2D_HWIOChannelMapping tests the HWIO kernel layout with
// multiple input and output channels.
func TestConv2D_HWIOChannelMapping(t *testing.T) {
	backend := newTestBackend()

	// Two input channels holding constants 5 and 7.
	input := rawFromSlice(t, []float32{5, 7}, tensor.Shape{1, 2, 1, 1})

	// 1x1 kernel [K_h, K_w, C_in, C_out] that swaps the channels:
	// out[0] = in[1], out[1] = in[0].
	kernel := rawFromSlice(t, []float32{0, 1, 1, 0}, tensor.Shape{1, 1, 2, 2})

	out := backend.Conv2D(input, kernel, tensor.DefaultConv2DParams())

	if !out.Shape().Equal(tensor.Shape{1, 2, 1, 1}) {
		t.Fatalf("Output shape: got %v, want [1, 2, 1, 1]", out.Shape())
	}
	expected := []float32{7, 5}
	if !float32SliceEqual(out.AsFloat32(), expected) {
		t.Errorf("Channel mapping failed: got %v, expected %v", out.AsFloat32(), expected)
	}
}

// TestConv2D_Batch tests that batches produce independent outputs.
func TestConv2D_Batch(t *testing.T) {
	backend := newTestBackend()

	input := rawFromSlice(t, []float32{1, 2, 3, 4, 10, 20, 30, 40}, tensor.Shape{2, 1, 2, 2})
	kernel := rawFromSlice(t, []float32{1, 1, 1, 1}, tensor.Shape{2, 2, 1, 1})

	out := backend.Conv2D(input, kernel, tensor.DefaultConv2DParams())

	if !out.Shape().Equal(tensor.Shape{2, 1, 1, 1}) {
		t.Fatalf("Output shape: got %v, want [2, 1, 1, 1]", out.Shape())
	}
	expected := []float32{10, 100}
	if !float32SliceEqual(out.AsFloat32(), expected) {
		t.Errorf("Batched Conv2D failed: got %v, expected %v", out.AsFloat32(), expected)
	}
}

// TestConv2D_Float64 tests the float64 path.
func TestConv2D_Float64(t *testing.T) {
	backend := newTestBackend()

	input, err := tensor.NewRaw(tensor.Shape{1, 1, 2, 2}, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	copy(input.AsFloat64(), []float64{1, 2, 3, 4})

	kernel, err := tensor.NewRaw(tensor.Shape{2, 2, 1, 1}, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	copy(kernel.AsFloat64(), []float64{1, 1, 1, 1})

	out := backend.Conv2D(input, kernel, tensor.DefaultConv2DParams())
	if out.AsFloat64()[0] != 10 {
		t.Errorf("Float64 Conv2D = %v, want 10", out.AsFloat64()[0])
	}
}

// TestConv2D_InvalidInputs tests panics on malformed inputs.
func TestConv2D_InvalidInputs(t *testing.T) {
	backend := newTestBackend()

	expectPanic := func(t *testing.T, name string, f func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		f()
	}

	t.Run("Non4DInput", func(t *testing.T) {
		input := rawFromSlice(t, []float32{1, 2}, tensor.Shape{2})
		kernel := rawFromSlice(t, []float32{1}, tensor.Shape{1, 1, 1, 1})
		expectPanic(t, "non-4D input", func() {
			backend.Conv2D(input, kernel, tensor.DefaultConv2DParams())
		})
	})

	t.Run("ChannelMismatch", func(t *testing.T) {
		input := rawFromSlice(t, []float32{1, 2}, tensor.Shape{1, 2, 1, 1})
		kernel := rawFromSlice(t, []float32{1}, tensor.Shape{1, 1, 1, 1})
		expectPanic(t, "channel mismatch", func() {
			backend.Conv2D(input, kernel, tensor.DefaultConv2DParams())
		})
	})

	t.Run("KernelLargerThanInput", func(t *testing.T) {
		input := rawFromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2})
		ones := make([]float32, 9)
		kernel := rawFromSlice(t, ones, tensor.Shape{3, 3, 1, 1})
		expectPanic(t, "kernel larger than input", func() {
			backend.Conv2D(input, kernel, tensor.DefaultConv2DParams())
		})
	})

	t.Run("ZeroStride", func(t *testing.T) {
		input := rawFromSlice(t, []float32{1}, tensor.Shape{1, 1, 1, 1})
		kernel := rawFromSlice(t, []float32{1}, tensor.Shape{1, 1, 1, 1})
		params := tensor.DefaultConv2DParams()
		params.StrideH = 0
		expectPanic(t, "zero stride", func() {
			backend.Conv2D(input, kernel, params)
		})
	})
}
