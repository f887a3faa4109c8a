package simulation

import (
	"github.com/lao-tseu-is-alive/go-swarm-contagion/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-contagion/pkg/spatial"
)

// RadiusFlock steers each agent towards the mean velocity and the centre of
// mass of the agents within Radius of it.
type RadiusFlock struct {
	Radius          float64
	AlignmentFactor float64
	CohesionFactor  float64
	build           spatial.Builder
}

func NewRadiusFlock(cfg *Config, build spatial.Builder) *RadiusFlock {
	return &RadiusFlock{
		Radius:          cfg.FlockRadius,
		AlignmentFactor: cfg.RadiusAlignmentFactor,
		CohesionFactor:  cfg.RadiusCohesionFactor,
		build:           build,
	}
}

func (f *RadiusFlock) Name() string { return "radius_flock" }

func (f *RadiusFlock) Apply(pop *Population, _ uint64) {
	neighbors := spatial.Neighbors(f.build(pop.Positions()).PairsWithin(f.Radius), pop.Len())

	// every delta is computed against the untouched population before any is applied
	deltas := make([]geometry.Vector2D, pop.Len())
	for i, ids := range neighbors {
		deltas[i] = f.steer(pop, i, ids)
	}
	for i := range pop.Agents {
		pop.Agents[i].Vel = pop.Agents[i].Vel.Add(deltas[i])
	}
}

// steer returns the velocity change for agent i given its neighbour ids.
func (f *RadiusFlock) steer(pop *Population, i int, ids []int) geometry.Vector2D {
	if len(ids) == 0 {
		return geometry.Vector2D{}
	}
	var velSum, posSum geometry.Vector2D
	for _, j := range ids {
		velSum = velSum.Add(pop.Agents[j].Vel)
		posSum = posSum.Add(pop.Agents[j].Pos)
	}
	n := 1 / float64(len(ids))
	alignment := velSum.Mul(n).Mul(f.AlignmentFactor)
	cohesion := posSum.Mul(n).Sub(pop.Agents[i].Pos).Mul(f.CohesionFactor)
	return alignment.Add(cohesion)
}
