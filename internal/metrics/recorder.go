package metrics

import (
	"math"

	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/world"
)

// Sample is one tick worth of aggregate observations.
type Sample struct {
	Frame         int     `json:"frame"`
	Bodies        int     `json:"bodies"`
	KineticEnergy float64 `json:"kinetic_energy"`
	MeanSpeed     float64 `json:"mean_speed"`
	MaxSpeed      float64 `json:"max_speed"`
	Contacts      int     `json:"contacts"`
	Resolved      int     `json:"resolved"`
	WallHits      int     `json:"wall_hits"`
}

// Recorder keeps per-tick samples. With a positive capacity it keeps only
// the most recent samples.
type Recorder struct {
	capacity int
	samples  []Sample
}

func NewRecorder(capacity int) *Recorder {
	n := capacity
	if n <= 0 {
		n = 1024
	}
	return &Recorder{capacity: capacity, samples: make([]Sample, 0, n)}
}

func (r *Recorder) OnStep(frame int, bodies []physics.Body, stats world.StepStats) {
	s := Sample{
		Frame:         frame,
		Bodies:        len(bodies),
		KineticEnergy: totalEnergy(bodies),
		Contacts:      stats.Contacts,
		Resolved:      stats.Resolved,
		WallHits:      stats.WallHits,
	}
	for _, b := range bodies {
		v := b.Speed()
		s.MeanSpeed += v
		s.MaxSpeed = math.Max(s.MaxSpeed, v)
	}
	if len(bodies) > 0 {
		s.MeanSpeed /= float64(len(bodies))
	}

	r.samples = append(r.samples, s)
	if r.capacity > 0 && len(r.samples) > r.capacity {
		r.samples = r.samples[1:]
	}
}

func (r *Recorder) Samples() []Sample { return r.samples }
func (r *Recorder) Len() int          { return len(r.samples) }
func (r *Recorder) Reset()            { r.samples = r.samples[:0] }

// Last returns the most recent sample.
func (r *Recorder) Last() (Sample, bool) {
	if len(r.samples) == 0 {
		return Sample{}, false
	}
	return r.samples[len(r.samples)-1], true
}

// Series extracts one field of every sample.
func (r *Recorder) Series(field func(Sample) float64) []float64 {
	out := make([]float64, len(r.samples))
	for i, s := range r.samples {
		out[i] = field(s)
	}
	return out
}

func Energy(s Sample) float64   { return s.KineticEnergy }
func Contacts(s Sample) float64 { return float64(s.Contacts) }
func Speed(s Sample) float64    { return s.MeanSpeed }
