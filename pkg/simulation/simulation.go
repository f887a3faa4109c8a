package simulation

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-swarm-contagion/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-contagion/pkg/spatial"
	golog "github.com/tochemey/goakt/v3/log"
	"gonum.org/v1/gonum/stat/distuv"
)

var ErrPopulationTooSmall = errors.New("population smaller than n_clusters")

// Simulation owns the configuration, the random source and the ordered
// rule pipeline. It advances one population snapshot per call and is not
// safe for concurrent use.
type Simulation struct {
	cfg    *Config
	src    *rand.Rand
	rules  []Rule
	tick   uint64
	logger golog.Logger
}

type Option func(*Simulation)

// WithLogger routes engine logs to logger instead of discarding them.
func WithLogger(logger golog.Logger) Option {
	return func(s *Simulation) {
		s.logger = logger
	}
}

// WithSource replaces the seeded random source.
func WithSource(src *rand.Rand) Option {
	return func(s *Simulation) {
		s.src = src
	}
}

// New validates cfg and assembles the rule pipeline. Every random draw the
// simulation makes comes from a PCG source seeded with seed.
func New(cfg *Config, seed uint64, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	build, err := spatial.BuilderFor(cfg.SpatialIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	s := &Simulation{
		cfg:    cfg,
		src:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		logger: golog.DiscardLogger,
	}
	for _, opt := range opts {
		opt(s)
	}

	physics := NewBoundaryPhysics(cfg)
	var flock Rule
	switch cfg.FlockStrategy {
	case StrategyRadius:
		flock = NewRadiusFlock(cfg, build)
	default:
		flock = NewClusterFlock(cfg, s.src)
	}
	if cfg.RuleOrder == OrderFlockFirst {
		s.rules = []Rule{flock, physics}
	} else {
		s.rules = []Rule{physics, flock}
	}
	s.rules = append(s.rules, NewInfection(cfg, build))
	return s, nil
}

// Initialize is New followed by Simulation.Initialize.
func Initialize(cfg *Config, seed uint64, opts ...Option) (*Simulation, *Population, error) {
	s, err := New(cfg, seed, opts...)
	if err != nil {
		return nil, nil, err
	}
	return s, s.Initialize(), nil
}

// Initialize draws a fresh population: uniform positions over the field,
// normal velocities scaled by max_velocity and n_start_infected agents infected.
func (s *Simulation) Initialize() *Population {
	var (
		xs  = distuv.Uniform{Min: 0, Max: s.cfg.FieldWidth, Src: s.src}
		ys  = distuv.Uniform{Min: 0, Max: s.cfg.FieldHeight, Src: s.src}
		vel = distuv.Normal{Mu: 0, Sigma: s.cfg.MaxVelocity, Src: s.src}
	)
	agents := make([]Agent, s.cfg.PopulationSize)
	for i := range agents {
		agents[i] = Agent{
			Pos:     geometry.Vector2D{X: xs.Rand(), Y: ys.Rand()},
			Vel:     geometry.Vector2D{X: vel.Rand(), Y: vel.Rand()},
			Cluster: UnassignedCluster,
		}
	}
	pop := NewPopulation(agents)
	SeedInfections(pop, s.cfg.NStartInfected, s.src)
	pop.Tick = s.tick

	s.logger.Infof("population of %d initialized, %d infected, rules %v",
		pop.Len(), pop.InfectedCount(), s.RuleNames())
	return pop
}

// Advance runs every rule once, in order, over pop and returns it. The
// agent count and IDs are never changed.
func (s *Simulation) Advance(pop *Population) (*Population, error) {
	if s.cfg.FlockStrategy == StrategyCluster && pop.Len() < s.cfg.NClusters {
		return nil, fmt.Errorf("%w: %w: %d agents for %d clusters",
			ErrInvalidConfig, ErrPopulationTooSmall, pop.Len(), s.cfg.NClusters)
	}
	for _, rule := range s.rules {
		rule.Apply(pop, s.tick)
		s.logger.Debugf("tick %d: %s applied", s.tick, rule.Name())
	}
	s.tick++
	pop.Tick = s.tick
	s.logger.Debugf("tick %d done, %d/%d infected", s.tick, pop.InfectedCount(), pop.Len())
	return pop, nil
}

// Tick is the number of completed ticks.
func (s *Simulation) Tick() uint64 { return s.tick }

func (s *Simulation) Config() *Config { return s.cfg }

// RuleNames lists the pipeline in execution order.
func (s *Simulation) RuleNames() []string {
	names := make([]string, len(s.rules))
	for i, r := range s.rules {
		names[i] = r.Name()
	}
	return names
}
