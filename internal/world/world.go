package world

import (
	"errors"
	"fmt"

	"github.com/san-kum/ballsim/internal/physics"
)

var (
	ErrInvalidPopulation = errors.New("world: population must not be negative")
	ErrArenaTooSmall     = errors.New("world: arena too small for body radius")
)

// StepStats summarises what happened during one tick.
type StepStats struct {
	WallHits int
	Contacts int
	Resolved int
}

// World owns the body collection and advances it one tick at a time.
type World struct {
	arena    physics.Arena
	bodies   []physics.Body
	spawner  *Spawner
	maxSpeed float64
}

func New(arena physics.Arena, spawner *Spawner, maxSpeed float64) (*World, error) {
	if arena.Radius <= 0 {
		return nil, fmt.Errorf("%w: arena", physics.ErrInvalidRadius)
	}
	if spawner.Radius <= 0 {
		return nil, fmt.Errorf("%w: body", physics.ErrInvalidRadius)
	}
	if spawner.Radius >= arena.Radius {
		return nil, fmt.Errorf("%w: body %.1f, arena %.1f", ErrArenaTooSmall, spawner.Radius, arena.Radius)
	}
	if maxSpeed <= 0 {
		maxSpeed = physics.DefaultMaxSpeed
	}
	return &World{arena: arena, spawner: spawner, maxSpeed: maxSpeed}, nil
}

// SetPopulation discards every body and spawns n new ones.
func (w *World) SetPopulation(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPopulation, n)
	}
	w.bodies = w.spawner.SpawnN(w.arena, n)
	return nil
}

// Place replaces the population with the given bodies as-is.
func (w *World) Place(bodies ...physics.Body) error {
	for i, b := range bodies {
		if b.Radius <= 0 {
			return fmt.Errorf("body %d: %w", i, physics.ErrInvalidRadius)
		}
	}
	w.bodies = append(w.bodies[:0:0], bodies...)
	return nil
}

// Step moves every body, then resolves every unordered pair i<j once.
// Pairs are resolved against the live slice, so a body updated by an
// earlier pair is seen in its updated state by later pairs.
func (w *World) Step() StepStats {
	var st StepStats
	for i := range w.bodies {
		if w.bodies[i].Move(w.arena) {
			st.WallHits++
		}
	}
	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			c := physics.Resolve(&w.bodies[i], &w.bodies[j], w.maxSpeed)
			if c.Touching {
				st.Contacts++
			}
			if c.Resolved {
				st.Resolved++
			}
		}
	}
	return st
}

// Bodies returns the live body slice. Callers must not modify it.
func (w *World) Bodies() []physics.Body { return w.bodies }
func (w *World) Len() int               { return len(w.bodies) }
func (w *World) Arena() physics.Arena   { return w.arena }
func (w *World) MaxSpeed() float64      { return w.maxSpeed }

func (w *World) KineticEnergy() float64 {
	e := 0.0
	for _, b := range w.bodies {
		e += b.KineticEnergy()
	}
	return e
}
