package simulation

import "github.com/lao-tseu-is-alive/go-swarm-contagion/pkg/geometry"

// UnassignedCluster is the label an agent carries until a cluster pass runs.
const UnassignedCluster = -1

// Agent is one boid. ID equals its index in Population.Agents and never changes.
type Agent struct {
	ID       int               `json:"id"`
	Pos      geometry.Vector2D `json:"pos"`
	Vel      geometry.Vector2D `json:"vel"`
	Infected bool              `json:"infected"`
	// Cluster is rewritten by every cluster pass; labels carry no meaning across ticks.
	Cluster int `json:"cluster"`
}
