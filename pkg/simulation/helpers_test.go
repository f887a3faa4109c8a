package simulation

import (
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-swarm-contagion/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-contagion/pkg/spatial"
)

// smallConfig is a valid configuration sized for hand-built populations.
func smallConfig(size int, strategy FlockStrategy) *Config {
	cfg := DefaultConfig()
	cfg.PopulationSize = size
	cfg.NClusters = min(cfg.NClusters, size)
	cfg.FlockStrategy = strategy
	return cfg
}

// still builds a population of motionless agents at the given positions.
func still(positions ...geometry.Vector2D) *Population {
	agents := make([]Agent, len(positions))
	for i, p := range positions {
		agents[i] = Agent{Pos: p, Cluster: UnassignedCluster}
	}
	return NewPopulation(agents)
}

func kdBuilder() spatial.Builder {
	b, err := spatial.BuilderFor(spatial.KindKDTree)
	if err != nil {
		panic(err)
	}
	return b
}

func testSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func infectedSet(pop *Population) map[int]bool {
	set := make(map[int]bool)
	for _, id := range pop.InfectedIDs() {
		set[id] = true
	}
	return set
}
