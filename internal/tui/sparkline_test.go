package tui

import (
	"testing"
)

func TestRingBuffer_PushAndSlice(t *testing.T) {
	rb := NewRingBuffer(3)
	rb.Push(1)
	rb.Push(2)
	rb.Push(3)

	got := rb.Slice()
	want := []float64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestRingBuffer_Overflow(t *testing.T) {
	rb := NewRingBuffer(3)
	rb.Push(1)
	rb.Push(2)
	rb.Push(3)
	rb.Push(4) // overwrites 1

	got := rb.Slice()
	want := []float64{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestRingBuffer_Last(t *testing.T) {
	rb := NewRingBuffer(5)
	if rb.Last() != 0 {
		t.Error("expected 0 for empty buffer")
	}
	rb.Push(10)
	rb.Push(20)
	rb.Push(30)
	if rb.Last() != 30 {
		t.Errorf("expected 30, got %f", rb.Last())
	}
}

func TestRingBuffer_Last_AfterOverflow(t *testing.T) {
	rb := NewRingBuffer(2)
	rb.Push(10)
	rb.Push(20)
	rb.Push(30) // overwrites 10
	if rb.Last() != 30 {
		t.Errorf("expected 30, got %f", rb.Last())
	}
}

func TestRingBuffer_Reset(t *testing.T) {
	rb := NewRingBuffer(5)
	rb.Push(1)
	rb.Push(2)
	rb.Reset()

	if rb.Len() != 0 {
		t.Errorf("expected len 0, got %d", rb.Len())
	}
	if rb.Slice() != nil {
		t.Error("expected nil slice after reset")
	}
}

func TestRenderSparkline_Empty(t *testing.T) {
	got := RenderSparkline(nil)
	if got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestRenderSparkline_AllZero(t *testing.T) {
	got := RenderSparkline([]float64{0, 0, 0})
	for i, r := range []rune(got) {
		if r != '▁' {
			t.Errorf("index %d: expected '▁', got %c", i, r)
		}
	}
}

func TestRenderSparkline_AllMax(t *testing.T) {
	got := RenderSparkline([]float64{100, 100, 100})
	for i, r := range []rune(got) {
		if r != '█' {
			t.Errorf("index %d: expected '█', got %c", i, r)
		}
	}
}

func TestRenderSparkline_Clamping(t *testing.T) {
	got := RenderSparkline([]float64{-10, 150})
	runes := []rune(got)
	if runes[0] != '▁' {
		t.Errorf("negative not clamped to min: got %c", runes[0])
	}
	if runes[1] != '█' {
		t.Errorf("over-100 not clamped to max: got %c", runes[1])
	}
}

func TestLastN(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	got := lastN(values, 3)
	want := []float64{3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %f, want %f", i, got[i], want[i])
		}
	}
	if len(lastN(values, 10)) != 5 {
		t.Error("expected full slice when n exceeds length")
	}
}
