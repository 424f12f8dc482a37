package domain

import "testing"

type stubRand struct {
	ints  []int
	float float64
}

func (r *stubRand) IntN(n int) int {
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func (r *stubRand) Float64() float64 { return r.float }

func TestMetricsAdvance(t *testing.T) {
	t.Parallel()

	r := &stubRand{ints: []int{2, 1, 39, 0, 0, 5}, float: 0.5}
	m := Metrics{}.Advance(r)
	if m.Steps != 2 || m.Calories != 1 || m.HeartRate != 159 {
		t.Fatalf("unexpected metrics %+v", m)
	}
	m = m.Advance(r)
	if m.Steps != 2 || m.Calories != 1 || m.HeartRate != 125 {
		t.Fatalf("unexpected metrics %+v", m)
	}
	if m.DistanceKm < 0.0099 || m.DistanceKm > 0.0101 {
		t.Fatalf("distance = %f", m.DistanceKm)
	}
}

func TestParseActivity(t *testing.T) {
	t.Parallel()

	got, err := ParseActivity(" Running ")
	if err != nil || got != ActivityRunning {
		t.Fatalf("got %q err=%v", got, err)
	}
	if _, err := ParseActivity("swimming"); err == nil {
		t.Fatalf("expected error for unknown activity")
	}
}
