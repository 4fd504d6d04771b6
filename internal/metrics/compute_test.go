package metrics

import "testing"

func TestPercentile_Empty(t *testing.T) {
	for _, p := range []float64{0, 0.01, 0.5, 1} {
		if got := Percentile(nil, p); got != 0 {
			t.Errorf("Percentile(nil, %v) = %f, want 0", p, got)
		}
	}
}

func TestPercentile_Bounds(t *testing.T) {
	xs := []float64{-3.5, -1, 2, 7.25}

	if got := Percentile(xs, 0); got != -3.5 {
		t.Errorf("Percentile(xs, 0) = %f, want min -3.5", got)
	}
	if got := Percentile(xs, -0.2); got != -3.5 {
		t.Errorf("Percentile(xs, -0.2) = %f, want min -3.5", got)
	}
	if got := Percentile(xs, 1); got != 7.25 {
		t.Errorf("Percentile(xs, 1) = %f, want max 7.25", got)
	}
	if got := Percentile(xs, 1.5); got != 7.25 {
		t.Errorf("Percentile(xs, 1.5) = %f, want max 7.25", got)
	}
}

func TestPercentile_FloorRank(t *testing.T) {
	xs := []float64{1.0, 2.0, 3.0, 4.0}

	// floor(0.01 * 3) = 0 -> first element
	if got := Percentile(xs, 0.01); got != 1.0 {
		t.Errorf("Percentile(xs, 0.01) = %f, want 1.0", got)
	}
	// floor(0.5 * 3) = 1
	if got := Percentile(xs, 0.5); got != 2.0 {
		t.Errorf("Percentile(xs, 0.5) = %f, want 2.0", got)
	}
	// floor(0.99 * 3) = 2
	if got := Percentile(xs, 0.99); got != 3.0 {
		t.Errorf("Percentile(xs, 0.99) = %f, want 3.0", got)
	}
}

func TestPercentile_SingleElement(t *testing.T) {
	xs := []float64{42}
	for _, p := range []float64{0, 0.01, 0.5, 1} {
		if got := Percentile(xs, p); got != 42 {
			t.Errorf("Percentile([42], %v) = %f, want 42", p, got)
		}
	}
}

func TestWorst1PctPnL(t *testing.T) {
	// 101 sorted values: index floor(0.01*100) = 1
	xs := make([]float64, 101)
	for i := range xs {
		xs[i] = float64(i - 50)
	}
	if got := Worst1PctPnL(xs); got != -49 {
		t.Errorf("Worst1PctPnL = %f, want -49", got)
	}
}
