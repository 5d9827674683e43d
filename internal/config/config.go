package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballsim/internal/physics"
)

const (
	DefaultTitle         = "Ball Simulation with Circular Boundary and Ball Collisions"
	DefaultWidth         = 800
	DefaultHeight        = 600
	DefaultFPS           = 60
	DefaultBalls         = 5
	DefaultBallRadius    = 10.0
	DefaultMaxSpeed      = physics.DefaultMaxSpeed
	DefaultVelocityRange = 3.0
	DefaultFrames        = 3600
	DefaultTheme         = "minimal"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Title         string  `yaml:"title"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	FPS           int     `yaml:"fps"`
	Balls         int     `yaml:"balls"`
	BallRadius    float64 `yaml:"ball_radius"`
	MaxSpeed      float64 `yaml:"max_speed"`
	VelocityRange float64 `yaml:"velocity_range"`
	Seed          int64   `yaml:"seed"`
	Frames        int     `yaml:"frames"`
	Theme         string  `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Title:         DefaultTitle,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		FPS:           DefaultFPS,
		Balls:         DefaultBalls,
		BallRadius:    DefaultBallRadius,
		MaxSpeed:      DefaultMaxSpeed,
		VelocityRange: DefaultVelocityRange,
		Frames:        DefaultFrames,
		Theme:         DefaultTheme,
	}
}

// Load reads a YAML file on top of the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto reads a YAML file over a copy of base. Only keys present in the
// file change.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Merge copies every non-zero field of o into c.
func (c *Config) Merge(o *Config) {
	if o == nil {
		return
	}
	if o.Title != "" {
		c.Title = o.Title
	}
	if o.Width != 0 {
		c.Width = o.Width
	}
	if o.Height != 0 {
		c.Height = o.Height
	}
	if o.FPS != 0 {
		c.FPS = o.FPS
	}
	if o.Balls != 0 {
		c.Balls = o.Balls
	}
	if o.BallRadius != 0 {
		c.BallRadius = o.BallRadius
	}
	if o.MaxSpeed != 0 {
		c.MaxSpeed = o.MaxSpeed
	}
	if o.VelocityRange != 0 {
		c.VelocityRange = o.VelocityRange
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.Frames != 0 {
		c.Frames = o.Frames
	}
	if o.Theme != "" {
		c.Theme = o.Theme
	}
}

func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: display %dx%d", ErrInvalid, c.Width, c.Height)
	case c.FPS < 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS)
	case c.Balls < 1:
		return fmt.Errorf("%w: balls must be at least 1, got %d", ErrInvalid, c.Balls)
	case c.BallRadius <= 0:
		return fmt.Errorf("%w: ball_radius %g", ErrInvalid, c.BallRadius)
	case c.MaxSpeed <= 0:
		return fmt.Errorf("%w: max_speed %g", ErrInvalid, c.MaxSpeed)
	case c.VelocityRange < 0:
		return fmt.Errorf("%w: velocity_range %g", ErrInvalid, c.VelocityRange)
	case c.Frames < 0:
		return fmt.Errorf("%w: frames %d", ErrInvalid, c.Frames)
	}

	a, err := c.Arena()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.BallRadius >= a.Radius {
		return fmt.Errorf("%w: ball_radius %g does not fit arena radius %g", ErrInvalid, c.BallRadius, a.Radius)
	}
	return nil
}

func (c *Config) Arena() (physics.Arena, error) {
	return physics.NewArena(c.Width, c.Height)
}
