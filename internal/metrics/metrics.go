package metrics

import (
	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/world"
)

// Metric accumulates a scalar over the ticks of a run.
type Metric interface {
	Name() string
	OnStep(frame int, bodies []physics.Body, stats world.StepStats)
	Value() float64
	Reset()
}

// Defaults returns the metrics recorded for every run.
func Defaults(arena physics.Arena) []Metric {
	return []Metric{
		NewKineticEnergy(),
		NewEnergyDrift(),
		NewCollisionRate(),
		NewWallHits(),
		NewMaxSpeed(),
		NewContainment(arena, 1e-6),
	}
}

// Summary collects the current value of every metric by name.
func Summary(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

func totalEnergy(bodies []physics.Body) float64 {
	e := 0.0
	for _, b := range bodies {
		e += b.KineticEnergy()
	}
	return e
}
