package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/ballsim/internal/metrics"
	"github.com/san-kum/ballsim/internal/physics"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	bodiesFile   = "bodies.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

var frameHeader = []string{"frame", "bodies", "kinetic_energy", "mean_speed", "max_speed", "contacts", "resolved", "wall_hits"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Preset     string             `json:"preset,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Balls      int                `json:"balls"`
	Frames     int                `json:"frames"`
	FPS        int                `json:"fps"`
	BallRadius float64            `json:"ball_radius"`
	MaxSpeed   float64            `json:"max_speed"`
	Arena      ArenaMetadata      `json:"arena"`
	Metrics    map[string]float64 `json:"metrics"`
}

type ArenaMetadata struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

func ArenaMeta(a physics.Arena) ArenaMetadata {
	return ArenaMetadata{X: a.Center.X, Y: a.Center.Y, Radius: a.Radius}
}

func (a ArenaMetadata) Arena() physics.Arena {
	return physics.Arena{Center: physics.V(a.X, a.Y), Radius: a.Radius}
}

// Save writes a run directory holding the metadata, the per-frame samples
// and the final body snapshot. The run id is assigned here.
func (s *Store) Save(meta RunMetadata, samples []metrics.Sample, final []physics.Body) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("run_%s_%09d", now.Format("20060102_150405"), now.Nanosecond())
	meta.Timestamp = now
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(runDir, framesFile), func(w io.Writer) error {
		return WriteSamplesCSV(w, samples)
	}); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(runDir, bodiesFile), func(w io.Writer) error {
		return writeBodiesCSV(w, final)
	}); err != nil {
		return "", err
	}

	return meta.ID, nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]metrics.Sample, error) {
	records, err := s.readCSV(runID, framesFile)
	if err != nil {
		return nil, err
	}

	samples := make([]metrics.Sample, 0, len(records))
	for _, rec := range records {
		if len(rec) < len(frameHeader) {
			continue
		}
		var smp metrics.Sample
		ints := []*int{&smp.Frame, &smp.Bodies, nil, nil, nil, &smp.Contacts, &smp.Resolved, &smp.WallHits}
		floats := []*float64{nil, nil, &smp.KineticEnergy, &smp.MeanSpeed, &smp.MaxSpeed, nil, nil, nil}
		ok := true
		for i := range frameHeader {
			switch {
			case ints[i] != nil:
				v, err := strconv.Atoi(rec[i])
				ok = ok && err == nil
				*ints[i] = v
			case floats[i] != nil:
				v, err := strconv.ParseFloat(rec[i], 64)
				ok = ok && err == nil
				*floats[i] = v
			}
		}
		if ok {
			samples = append(samples, smp)
		}
	}
	return samples, nil
}

func (s *Store) LoadBodies(runID string) ([]physics.Body, error) {
	records, err := s.readCSV(runID, bodiesFile)
	if err != nil {
		return nil, err
	}

	bodies := make([]physics.Body, 0, len(records))
	for _, rec := range records {
		if len(rec) < 8 {
			continue
		}
		vals := make([]float64, 5)
		bad := false
		for i := range vals {
			v, err := strconv.ParseFloat(rec[i], 64)
			if err != nil {
				bad = true
				break
			}
			vals[i] = v
		}
		var rgb [3]uint8
		for i := range rgb {
			v, err := strconv.ParseUint(rec[5+i], 10, 8)
			if err != nil {
				bad = true
				break
			}
			rgb[i] = uint8(v)
		}
		if bad {
			continue
		}
		b := physics.Body{Pos: physics.V(vals[0], vals[1]), Vel: physics.V(vals[2], vals[3]), Radius: vals[4]}
		b.Color.R, b.Color.G, b.Color.B, b.Color.A = rgb[0], rgb[1], rgb[2], 255
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// readCSV returns the records of a run file without its header row.
func (s *Store) readCSV(runID, name string) ([][]string, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]string{}, nil
	}
	return records[1:], nil
}

// WriteSamplesCSV writes samples with a header row.
func WriteSamplesCSV(out io.Writer, samples []metrics.Sample) error {
	w := csv.NewWriter(out)
	if err := w.Write(frameHeader); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Frame),
			strconv.Itoa(s.Bodies),
			formatFloat(s.KineticEnergy),
			formatFloat(s.MeanSpeed),
			formatFloat(s.MaxSpeed),
			strconv.Itoa(s.Contacts),
			strconv.Itoa(s.Resolved),
			strconv.Itoa(s.WallHits),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeBodiesCSV(out io.Writer, bodies []physics.Body) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"x", "y", "vx", "vy", "radius", "r", "g", "b"}); err != nil {
		return err
	}
	for _, b := range bodies {
		row := []string{
			formatFloat(b.Pos.X), formatFloat(b.Pos.Y),
			formatFloat(b.Vel.X), formatFloat(b.Vel.Y),
			formatFloat(b.Radius),
			strconv.Itoa(int(b.Color.R)), strconv.Itoa(int(b.Color.G)), strconv.Itoa(int(b.Color.B)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
