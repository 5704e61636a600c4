package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/go-logr/logr"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/horizon/internal/body"
	"github.com/san-kum/horizon/internal/horizon"
	"github.com/san-kum/horizon/internal/nbody"
)

const (
	DefaultTimeStep    = nbody.DefaultTimeStep
	DefaultDuration    = 60.0
	DefaultMethod      = "rk4"
	DefaultHistorySize = body.DefaultHistorySize
	DefaultCentralName = "Sagittarius A*"
)

type Config struct {
	CompactBody CompactBodyConfig `yaml:"compact_body"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Bodies      []BodyConfig      `yaml:"bodies,omitempty"`
	Duration    float64           `yaml:"duration"`
}

type CompactBodyConfig struct {
	Name     string    `yaml:"name"`
	Position []float64 `yaml:"position"`
	Mass     float64   `yaml:"mass"`
	// Preset names an entry of horizon.MassPresets and overrides Mass.
	Preset string `yaml:"preset,omitempty"`
}

type PhysicsConfig struct {
	EnableGravity     bool    `yaml:"enable_gravity"`
	TimeStep          float64 `yaml:"time_step"`
	GravityConstant   float64 `yaml:"gravity_constant"`
	IntegrationMethod string  `yaml:"integration_method"`
	HistorySize       int     `yaml:"history_size"`
}

type BodyConfig struct {
	Name          string    `yaml:"name"`
	Kind          string    `yaml:"kind,omitempty"`
	Position      []float64 `yaml:"position"`
	Velocity      []float64 `yaml:"velocity,omitempty"`
	Mass          float64   `yaml:"mass"`
	Radius        float64   `yaml:"radius"`
	Color         []float64 `yaml:"color,omitempty"`
	CircularOrbit bool      `yaml:"circular_orbit,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		CompactBody: CompactBodyConfig{
			Name:     DefaultCentralName,
			Position: []float64{0, 0, 0},
			Mass:     horizon.SagittariusAStar,
		},
		Physics: PhysicsConfig{
			EnableGravity:     false,
			TimeStep:          DefaultTimeStep,
			GravityConstant:   horizon.G,
			IntegrationMethod: DefaultMethod,
			HistorySize:       DefaultHistorySize,
		},
		Duration: DefaultDuration,
	}
}

// DefaultBodies are used when a configuration lists no bodies.
func DefaultBodies() []BodyConfig {
	return []BodyConfig{
		{
			Name:     "Test Star 1",
			Kind:     "star",
			Position: []float64{4e11, 0, 0},
			Velocity: []float64{0, 0, 0},
			Mass:     horizon.SolarMass,
			Radius:   4e10,
			Color:    []float64{1, 1, 0, 1},
		},
		{
			Name:     "Test Planet 1",
			Kind:     "planet",
			Position: []float64{0, 0, 4e11},
			Velocity: []float64{0, 0, 0},
			Mass:     5.972e24,
			Radius:   4e10,
			Color:    []float64{1, 0, 0, 1},
		},
	}
}

// Load reads a YAML file over DefaultConfig, so omitted fields keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Method is the configured integration scheme.
func (c *Config) Method() nbody.Method {
	return nbody.ParseMethod(c.Physics.IntegrationMethod)
}

// CentralMass resolves the compact body mass, honouring a named preset.
func (c *Config) CentralMass() (float64, error) {
	if c.CompactBody.Preset == "" {
		return c.CompactBody.Mass, nil
	}
	m, ok := horizon.MassPresets[c.CompactBody.Preset]
	if !ok {
		return 0, fmt.Errorf("unknown mass preset: %s", c.CompactBody.Preset)
	}
	return m, nil
}

// Validate reports every problem found, joined.
func (c *Config) Validate() error {
	var errs []error

	if m, err := c.CentralMass(); err != nil {
		errs = append(errs, err)
	} else if !(m > 0) {
		errs = append(errs, fmt.Errorf("compact_body.mass must be positive, got %g", m))
	}
	if len(c.CompactBody.Position) != 0 && len(c.CompactBody.Position) != 3 {
		errs = append(errs, fmt.Errorf("compact_body.position needs 3 components, got %d", len(c.CompactBody.Position)))
	}
	if !(c.Physics.TimeStep > 0) {
		errs = append(errs, fmt.Errorf("physics.time_step must be positive, got %g", c.Physics.TimeStep))
	}
	if !(c.Physics.GravityConstant > 0) {
		errs = append(errs, fmt.Errorf("physics.gravity_constant must be positive, got %g", c.Physics.GravityConstant))
	}
	if c.Physics.HistorySize < 1 {
		errs = append(errs, fmt.Errorf("physics.history_size must be at least 1, got %d", c.Physics.HistorySize))
	}
	if c.Duration < 0 {
		errs = append(errs, fmt.Errorf("duration must not be negative, got %g", c.Duration))
	}
	if len(c.Bodies) > nbody.MaxBodies {
		errs = append(errs, fmt.Errorf("%d bodies configured, at most %d supported", len(c.Bodies), nbody.MaxBodies))
	}
	for i, b := range c.Bodies {
		if _, err := body.ParseKind(b.Kind); err != nil {
			errs = append(errs, fmt.Errorf("bodies[%d]: %w", i, err))
		}
		if len(b.Position) != 3 {
			errs = append(errs, fmt.Errorf("bodies[%d]: position needs 3 components, got %d", i, len(b.Position)))
		}
		if len(b.Velocity) != 0 && len(b.Velocity) != 3 {
			errs = append(errs, fmt.Errorf("bodies[%d]: velocity needs 3 components, got %d", i, len(b.Velocity)))
		}
		if b.Mass < 0 {
			errs = append(errs, fmt.Errorf("bodies[%d]: mass must not be negative, got %g", i, b.Mass))
		}
		if b.Radius < 0 {
			errs = append(errs, fmt.Errorf("bodies[%d]: radius must not be negative, got %g", i, b.Radius))
		}
	}
	return errors.Join(errs...)
}

// Steps is the number of time steps covering Duration.
func (c *Config) Steps() int {
	if !(c.Physics.TimeStep > 0) {
		return 0
	}
	return int(c.Duration / c.Physics.TimeStep)
}

// Build validates the configuration and assembles a ready simulation.
func (c *Config) Build(log logr.Logger, opts ...nbody.Option) (*nbody.Simulation, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	mass, _ := c.CentralMass()

	central, err := horizon.New(c.CompactBody.Name, vec3(c.CompactBody.Position), mass, horizon.WithLogger(log))
	if err != nil {
		return nil, err
	}

	simOpts := []nbody.Option{
		nbody.WithGravity(c.Physics.EnableGravity),
		nbody.WithMethod(c.Method()),
		nbody.WithGravitationalConstant(c.Physics.GravityConstant),
		nbody.WithTimeStep(c.Physics.TimeStep),
		nbody.WithLogger(log),
	}
	sim := nbody.New(central, append(simOpts, opts...)...)

	bodies := c.Bodies
	if len(bodies) == 0 {
		bodies = DefaultBodies()
	}
	for i, bc := range bodies {
		b, err := bc.build(c.Physics.HistorySize)
		if err != nil {
			return nil, fmt.Errorf("bodies[%d]: %w", i, err)
		}
		if bc.CircularOrbit {
			b.SetCircularOrbit(sim.GravitationalConstant(), central.Mass(), central.Position())
		}
		if err := sim.Add(b); err != nil {
			return nil, err
		}
	}
	return sim, nil
}

func (bc BodyConfig) build(history int) (*body.Body, error) {
	kind, err := body.ParseKind(bc.Kind)
	if err != nil {
		return nil, err
	}
	b := body.FromSlices(bc.Position, bc.Velocity, bc.Mass, bc.Radius, bc.Color, bc.Name)
	b.Kind = kind
	if len(bc.Color) < 3 {
		b.Color = kind.DefaultColor()
	}
	b.SetHistory(history)
	return b, nil
}

func vec3(v []float64) mgl64.Vec3 {
	if len(v) < 3 {
		return mgl64.Vec3{}
	}
	return mgl64.Vec3{v[0], v[1], v[2]}
}
