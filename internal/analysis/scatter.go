package analysis

import (
	"strings"
)

type Point struct{ X, Y float64 }

// Scatter pairs two recorded series frame by frame, e.g. mean speed against
// contacts per tick.
type Scatter struct {
	XLabel, YLabel string
	Points         []Point
}

// NewScatter truncates to the shorter series.
func NewScatter(xLabel string, xs []float64, yLabel string, ys []float64) *Scatter {
	n := min(len(xs), len(ys))
	s := &Scatter{XLabel: xLabel, YLabel: yLabel, Points: make([]Point, n)}
	for i := 0; i < n; i++ {
		s.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return s
}

// ScatterToASCII plots the points on a width x height character grid.
func ScatterToASCII(s *Scatter, width, height int) string {
	if s == nil || len(s.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := s.Points[0].X, s.Points[0].X
	minY, maxY := s.Points[0].Y, s.Points[0].Y
	for _, p := range s.Points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range s.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			grid[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
