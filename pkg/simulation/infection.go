package simulation

import (
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-swarm-contagion/pkg/spatial"
)

// Infection spreads the infected flag across every pair of agents closer
// than Radius. Only agents infected before the tick can pass it on, so the
// disease advances at most one hop per tick. Nobody recovers.
type Infection struct {
	Radius float64
	build  spatial.Builder
}

func NewInfection(cfg *Config, build spatial.Builder) *Infection {
	return &Infection{Radius: cfg.InfectionRadius, build: build}
}

func (inf *Infection) Name() string { return "infection" }

func (inf *Infection) Apply(pop *Population, _ uint64) {
	sources := make([]bool, pop.Len())
	anyInfected := false
	for i := range pop.Agents {
		sources[i] = pop.Agents[i].Infected
		anyInfected = anyInfected || sources[i]
	}
	if !anyInfected {
		return
	}

	pending := make([]bool, pop.Len())
	for _, p := range inf.build(pop.Positions()).PairsWithin(inf.Radius) {
		if sources[p.A] || sources[p.B] {
			pending[p.A] = true
			pending[p.B] = true
		}
	}
	for i, infect := range pending {
		if infect {
			pop.Agents[i].Infected = true
		}
	}
}

// SeedInfections marks n distinct agents, chosen uniformly at random, as infected.
func SeedInfections(pop *Population, n int, src *rand.Rand) {
	n = max(0, min(n, pop.Len()))
	for _, i := range src.Perm(pop.Len())[:n] {
		pop.Agents[i].Infected = true
	}
}
