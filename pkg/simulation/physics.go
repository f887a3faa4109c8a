package simulation

// Rule is one step of the per-tick pipeline. Apply reads the population as
// left by the previous rule and writes its result in place.
type Rule interface {
	Name() string
	Apply(pop *Population, tick uint64)
}

// BoundaryPhysics clamps velocities and moves agents, bouncing off the walls.
type BoundaryPhysics struct {
	Width, Height float64
	MaxVelocity   float64
}

func NewBoundaryPhysics(cfg *Config) *BoundaryPhysics {
	return &BoundaryPhysics{
		Width:       cfg.FieldWidth,
		Height:      cfg.FieldHeight,
		MaxVelocity: cfg.MaxVelocity,
	}
}

func (b *BoundaryPhysics) Name() string { return "boundary_physics" }

// Apply treats each axis on its own: a move that would reach or cross a wall
// is dropped for this tick and the velocity on that axis is reversed.
func (b *BoundaryPhysics) Apply(pop *Population, _ uint64) {
	for i := range pop.Agents {
		a := &pop.Agents[i]
		a.Vel = a.Vel.ClampAxes(b.MaxVelocity)
		a.Pos.X, a.Vel.X = moveAxis(a.Pos.X, a.Vel.X, b.Width)
		a.Pos.Y, a.Vel.Y = moveAxis(a.Pos.Y, a.Vel.Y, b.Height)
	}
}

func moveAxis(position, velocity, limit float64) (float64, float64) {
	next := position + velocity
	if next > 0 && next < limit {
		return next, velocity
	}
	return position, -velocity
}
