package simulation

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-swarm-contagion/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

func TestRadiusFlock_NoNeighborsIsNoOp(t *testing.T) {
	cfg := smallConfig(2, StrategyRadius)
	flock := NewRadiusFlock(cfg, kdBuilder())

	pop := NewPopulation([]Agent{
		{Pos: geometry.Vector2D{X: 100, Y: 100}, Vel: geometry.Vector2D{X: 3, Y: -2}},
		{Pos: geometry.Vector2D{X: 600, Y: 600}, Vel: geometry.Vector2D{X: -1, Y: 7}},
	})
	flock.Apply(pop, 0)

	assert.Equal(t, geometry.Vector2D{X: 3, Y: -2}, pop.Agents[0].Vel)
	assert.Equal(t, geometry.Vector2D{X: -1, Y: 7}, pop.Agents[1].Vel)
}

func TestRadiusFlock_SynchronousUpdate(t *testing.T) {
	cfg := smallConfig(2, StrategyRadius)
	flock := NewRadiusFlock(cfg, kdBuilder())

	pop := NewPopulation([]Agent{
		{Pos: geometry.Vector2D{X: 100, Y: 100}, Vel: geometry.Vector2D{X: 1, Y: 0}},
		{Pos: geometry.Vector2D{X: 105, Y: 100}, Vel: geometry.Vector2D{X: 3, Y: 0}},
	})
	flock.Apply(pop, 0)

	// A: 1 + 0.1*3 + 0.1*(105-100); B reads A's velocity from before the pass
	assert.InDelta(t, 1.8, pop.Agents[0].Vel.X, 1e-12)
	assert.InDelta(t, 2.6, pop.Agents[1].Vel.X, 1e-12)
	assert.InDelta(t, 0, pop.Agents[0].Vel.Y, 1e-12)
	assert.InDelta(t, 0, pop.Agents[1].Vel.Y, 1e-12)
	// positions are left to boundary physics
	assert.Equal(t, geometry.Vector2D{X: 100, Y: 100}, pop.Agents[0].Pos)
}

func TestRadiusFlock_OnlyNeighborsWithinRadiusCount(t *testing.T) {
	cfg := smallConfig(3, StrategyRadius)
	cfg.FlockRadius = 10
	flock := NewRadiusFlock(cfg, kdBuilder())

	pop := still(
		geometry.Vector2D{X: 100, Y: 100},
		geometry.Vector2D{X: 110, Y: 100}, // exactly on the radius
		geometry.Vector2D{X: 125, Y: 100}, // 15 from the second agent
	)
	flock.Apply(pop, 0)

	assert.InDelta(t, 1.0, pop.Agents[0].Vel.X, 1e-12)
	assert.InDelta(t, -1.0, pop.Agents[1].Vel.X, 1e-12)
	assert.Equal(t, geometry.Vector2D{}, pop.Agents[2].Vel)
}
