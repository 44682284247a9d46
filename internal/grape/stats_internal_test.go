package grape

import "testing"

func TestCalcStats(t *testing.T) {
	s := calcStats([]int64{0, 100, 200, 300, 400})
	if s.Mean != 200 || s.Min != 0 || s.Max != 400 {
		t.Fatalf("got %+v", s)
	}
	if s.Var != 20000 {
		t.Fatalf("var = %f, want 20000", s.Var)
	}
	if s.P50 != 200 {
		t.Fatalf("p50 = %f, want 200", s.P50)
	}
	if s.P90 != 360 {
		t.Fatalf("p90 = %f, want 360", s.P90)
	}
	if (calcStats(nil) != Stats{}) {
		t.Fatalf("empty input should give zero stats")
	}
}
