package simulation

import "github.com/lao-tseu-is-alive/go-swarm-contagion/pkg/geometry"

// Population is the full set of agents at one tick boundary.
type Population struct {
	Tick   uint64  `json:"tick"`
	Agents []Agent `json:"agents"`
}

// NewPopulation wraps agents, renumbering IDs to match their index.
func NewPopulation(agents []Agent) *Population {
	for i := range agents {
		agents[i].ID = i
	}
	return &Population{Agents: agents}
}

func (p *Population) Len() int { return len(p.Agents) }

// Clone returns a deep copy that shares nothing with p.
func (p *Population) Clone() *Population {
	agents := make([]Agent, len(p.Agents))
	copy(agents, p.Agents)
	return &Population{Tick: p.Tick, Agents: agents}
}

// Positions returns agent positions in ID order.
func (p *Population) Positions() []geometry.Vector2D {
	out := make([]geometry.Vector2D, len(p.Agents))
	for i := range p.Agents {
		out[i] = p.Agents[i].Pos
	}
	return out
}

func (p *Population) InfectedCount() int {
	n := 0
	for i := range p.Agents {
		if p.Agents[i].Infected {
			n++
		}
	}
	return n
}

// InfectedIDs lists infected agents in ascending ID order.
func (p *Population) InfectedIDs() []int {
	var ids []int
	for i := range p.Agents {
		if p.Agents[i].Infected {
			ids = append(ids, p.Agents[i].ID)
		}
	}
	return ids
}

// Snapshot is what the world publishes after each tick.
type Snapshot struct {
	Tick             uint64      `json:"tick"`
	InfectedCount    int         `json:"infected_count"`
	SusceptibleCount int         `json:"susceptible_count"`
	Population       *Population `json:"population"`
}

// NewSnapshot copies pop so the consumer can keep it while ticks continue.
func NewSnapshot(pop *Population) *Snapshot {
	infected := pop.InfectedCount()
	return &Snapshot{
		Tick:             pop.Tick,
		InfectedCount:    infected,
		SusceptibleCount: pop.Len() - infected,
		Population:       pop.Clone(),
	}
}
