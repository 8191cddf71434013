package app

import "testing"

func TestComputeScore(t *testing.T) {
	cases := []struct {
		yes, total int
		want       float64
	}{
		{3, 4, 75},
		{1, 2, 50},
		{0, 5, 0},
		{5, 5, 100},
		{1, 3, 100.0 / 3},
		{0, 0, 0},
	}
	for _, tc := range cases {
		if got := ComputeScore(tc.yes, tc.total); got != tc.want {
			t.Fatalf("ComputeScore(%d, %d) = %v, want %v", tc.yes, tc.total, got, tc.want)
		}
	}
}

func TestAverage(t *testing.T) {
	if got := Average(nil); got != 0 {
		t.Fatalf("expected 0 for empty history, got %v", got)
	}
	if got := Average([]float64{50, 100, 75}); got != 75 {
		t.Fatalf("expected 75, got %v", got)
	}
}

func TestFormatPercent(t *testing.T) {
	cases := map[float64]string{
		50:          "50%",
		100:         "100%",
		0:           "0%",
		62.5:        "62.5%",
		100.0 / 3:   "33.333333333333336%",
		200.0 / 3.0: "66.66666666666667%",
	}
	for v, want := range cases {
		if got := FormatPercent(v); got != want {
			t.Fatalf("FormatPercent(%v) = %q, want %q", v, got, want)
		}
	}
}
