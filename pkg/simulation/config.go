package simulation

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/lao-tseu-is-alive/go-swarm-contagion/pkg/spatial"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/multierr"
)

// FlockStrategy selects which flocking rule the simulation registers.
type FlockStrategy string

const (
	StrategyRadius  FlockStrategy = "radius"
	StrategyCluster FlockStrategy = "cluster"
)

// RuleOrder decides whether boundary physics runs before or after flocking.
// Infection always runs last.
type RuleOrder string

const (
	OrderPhysicsFirst RuleOrder = "physics_first"
	OrderFlockFirst   RuleOrder = "flock_first"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	// Field Dimensions
	FieldWidth  float64 `json:"field_width"`
	FieldHeight float64 `json:"field_height"`

	// Population
	PopulationSize int `json:"population_size"`
	NStartInfected int `json:"n_start_infected"`

	// Physics
	MaxVelocity float64 `json:"max_velocity"`

	// Flocking
	FlockStrategy          FlockStrategy `json:"flock_strategy"`
	FlockRadius            float64       `json:"flock_radius"`
	RadiusAlignmentFactor  float64       `json:"radius_alignment_factor"`
	RadiusCohesionFactor   float64       `json:"radius_cohesion_factor"`
	NClusters              int           `json:"n_clusters"`
	ClusterAlignmentFactor float64       `json:"cluster_alignment_factor"`
	ClusterCohesionFactor  float64       `json:"cluster_cohesion_factor"`
	ClusterDriveSigma      float64       `json:"cluster_drive_sigma"` // std dev of the per-cluster random push
	KMeansRestarts         int           `json:"kmeans_restarts"`
	KMeansMaxIterations    int           `json:"kmeans_max_iterations"`

	// Infection
	InfectionRadius float64 `json:"infection_radius"`

	// Engine
	SpatialIndex spatial.Kind `json:"spatial_index"`
	RuleOrder    RuleOrder    `json:"rule_order"`
}

func DefaultConfig() *Config {
	return &Config{
		FieldWidth:             1000,
		FieldHeight:            1000,
		PopulationSize:         100,
		NStartInfected:         1,
		MaxVelocity:            20,
		FlockStrategy:          StrategyCluster,
		FlockRadius:            10,
		RadiusAlignmentFactor:  0.1,
		RadiusCohesionFactor:   0.1,
		NClusters:              8,
		ClusterAlignmentFactor: 0.1,
		ClusterCohesionFactor:  0.05,
		ClusterDriveSigma:      5,
		KMeansRestarts:         4,
		KMeansMaxIterations:    300,
		InfectionRadius:        100,
		SpatialIndex:           spatial.KindKDTree,
		RuleOrder:              OrderPhysicsFirst,
	}
}

// Validate reports every violated constraint at once. Each reported error
// wraps ErrInvalidConfig. Values are never adjusted.
func (c *Config) Validate() error {
	var errs error
	fail := func(format string, args ...any) {
		errs = multierr.Append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	positive := []struct {
		name  string
		value float64
	}{
		{"field_width", c.FieldWidth},
		{"field_height", c.FieldHeight},
		{"max_velocity", c.MaxVelocity},
		{"flock_radius", c.FlockRadius},
		{"infection_radius", c.InfectionRadius},
	}
	for _, p := range positive {
		if !(p.value > 0) {
			fail("%s must be positive, got %v", p.name, p.value)
		}
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"radius_alignment_factor", c.RadiusAlignmentFactor},
		{"radius_cohesion_factor", c.RadiusCohesionFactor},
		{"cluster_alignment_factor", c.ClusterAlignmentFactor},
		{"cluster_cohesion_factor", c.ClusterCohesionFactor},
		{"cluster_drive_sigma", c.ClusterDriveSigma},
	}
	for _, p := range nonNegative {
		if !(p.value >= 0) {
			fail("%s must not be negative, got %v", p.name, p.value)
		}
	}

	if c.PopulationSize < 1 {
		fail("population_size must be at least 1, got %d", c.PopulationSize)
	}
	if c.NClusters < 1 || c.NClusters > c.PopulationSize {
		fail("n_clusters must be in [1, %d], got %d", c.PopulationSize, c.NClusters)
	}
	if c.NStartInfected < 0 || c.NStartInfected > c.PopulationSize {
		fail("n_start_infected must be in [0, %d], got %d", c.PopulationSize, c.NStartInfected)
	}
	if c.KMeansRestarts < 1 {
		fail("kmeans_restarts must be at least 1, got %d", c.KMeansRestarts)
	}
	if c.KMeansMaxIterations < 1 {
		fail("kmeans_max_iterations must be at least 1, got %d", c.KMeansMaxIterations)
	}

	switch c.FlockStrategy {
	case StrategyRadius, StrategyCluster:
	default:
		fail("flock_strategy must be %q or %q, got %q", StrategyRadius, StrategyCluster, c.FlockStrategy)
	}
	switch c.RuleOrder {
	case OrderPhysicsFirst, OrderFlockFirst:
	default:
		fail("rule_order must be %q or %q, got %q", OrderPhysicsFirst, OrderFlockFirst, c.RuleOrder)
	}
	if _, err := spatial.BuilderFor(c.SpatialIndex); err != nil {
		fail("spatial_index: %v", err)
	}
	return errs
}

// LoadConfig loads configuration from a JSON file, validates it against the schema,
// then overlays it on DefaultConfig and checks the result with Validate.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
