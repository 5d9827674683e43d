package metrics

import (
	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/world"
)

// CollisionRate is the mean number of touching pairs per tick.
type CollisionRate struct {
	name    string
	sum     int
	samples int
}

func NewCollisionRate() *CollisionRate {
	return &CollisionRate{name: "collision_rate"}
}

func (c *CollisionRate) Name() string { return c.name }

func (c *CollisionRate) OnStep(_ int, _ []physics.Body, stats world.StepStats) {
	c.sum += stats.Contacts
	c.samples++
}

func (c *CollisionRate) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.sum) / float64(c.samples)
}

func (c *CollisionRate) Reset() {
	c.sum = 0
	c.samples = 0
}

// WallHits counts boundary reflections over the run.
type WallHits struct {
	name  string
	total int
}

func NewWallHits() *WallHits { return &WallHits{name: "wall_hits"} }

func (w *WallHits) Name() string { return w.name }

func (w *WallHits) OnStep(_ int, _ []physics.Body, stats world.StepStats) {
	w.total += stats.WallHits
}

func (w *WallHits) Value() float64 { return float64(w.total) }
func (w *WallHits) Reset()         { w.total = 0 }
