package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/ballsim/internal/metrics"
	"github.com/san-kum/ballsim/internal/physics"
)

type ExportData struct {
	Run     RunMetadata      `json:"run"`
	Samples []metrics.Sample `json:"samples"`
	Bodies  []ExportBody     `json:"bodies"`
}

type ExportBody struct {
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	VX     float64  `json:"vx"`
	VY     float64  `json:"vy"`
	Radius float64  `json:"radius"`
	Color  [3]uint8 `json:"color"`
}

// ExportJSON writes a full run as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, samples []metrics.Sample, bodies []physics.Body) error {
	data := ExportData{
		Run:     meta,
		Samples: samples,
		Bodies:  make([]ExportBody, len(bodies)),
	}
	for i, b := range bodies {
		data.Bodies[i] = ExportBody{
			X:      b.Pos.X,
			Y:      b.Pos.Y,
			VX:     b.Vel.X,
			VY:     b.Vel.Y,
			Radius: b.Radius,
			Color:  [3]uint8{b.Color.R, b.Color.G, b.Color.B},
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
