package domain

import (
	"fmt"
	"strings"
)

type Activity string

const (
	ActivityWalking Activity = "walking"
	ActivityRunning Activity = "running"
	ActivityCycling Activity = "cycling"
)

func ParseActivity(raw string) (Activity, error) {
	switch activity := Activity(strings.ToLower(strings.TrimSpace(raw))); activity {
	case ActivityWalking, ActivityRunning, ActivityCycling:
		return activity, nil
	}
	return "", fmt.Errorf("unknown activity %q", raw)
}

// Rand is the random source behind the simulated sensor readings.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Metrics are simulated readings shown next to the exercise stopwatch. They
// are display-only and never reach the progress history.
type Metrics struct {
	Steps      int
	DistanceKm float64
	Calories   int
	HeartRate  int
}

// Advance applies one tick worth of simulated movement.
func (m Metrics) Advance(r Rand) Metrics {
	return Metrics{
		Steps:      m.Steps + r.IntN(3),
		DistanceKm: m.DistanceKm + r.Float64()*0.01,
		Calories:   m.Calories + r.IntN(2),
		HeartRate:  120 + r.IntN(40),
	}
}
