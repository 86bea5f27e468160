package game

// Snapshot is a render-ready copy of a round. Entity IDs are stable for an entity's
// lifetime, so a renderer can diff consecutive snapshots to create and destroy visuals.
type Snapshot struct {
	Tick        uint64           `json:"tick" msgpack:"tick"`
	Status      RoundStatus      `json:"status" msgpack:"status"`
	Running     bool             `json:"running" msgpack:"running"`
	Score       int              `json:"score" msgpack:"score"`
	ThrowsLeft  int              `json:"throws_left" msgpack:"throws_left"`
	Rank        int              `json:"rank,omitempty" msgpack:"rank,omitempty"`
	Projectiles []ProjectileView `json:"projectiles" msgpack:"projectiles"`
	Targets     []TargetView     `json:"targets" msgpack:"targets"`
	Particles   []ParticleView   `json:"particles" msgpack:"particles"`
}

type ProjectileView struct {
	ID       int  `json:"id" msgpack:"id"`
	Position Vec3 `json:"position" msgpack:"position"`
}

type TargetView struct {
	ID       int  `json:"id" msgpack:"id"`
	Position Vec3 `json:"position" msgpack:"position"`
	Tier     Tier `json:"tier" msgpack:"tier"`
	Points   int  `json:"points" msgpack:"points"`
	Color    int  `json:"color" msgpack:"color"`
}

type ParticleView struct {
	ID       int     `json:"id" msgpack:"id"`
	Position Vec3    `json:"position" msgpack:"position"`
	Scale    float64 `json:"scale" msgpack:"scale"`
	Color    int     `json:"color" msgpack:"color"`
}

// Snapshot copies the current round state.
func (r *Round) Snapshot() Snapshot {
	s := Snapshot{
		Tick:        r.tick,
		Status:      r.state.Status,
		Running:     r.state.Running,
		Score:       r.state.Score,
		ThrowsLeft:  r.state.ThrowsLeft,
		Projectiles: make([]ProjectileView, 0, len(r.state.Projectiles)),
		Targets:     make([]TargetView, 0, len(r.state.Targets)),
		Particles:   make([]ParticleView, 0, len(r.state.Effects.Particles)),
	}
	if r.state.Revealed {
		s.Rank = r.state.Rank
	}
	for _, p := range r.state.Projectiles {
		s.Projectiles = append(s.Projectiles, ProjectileView{ID: p.ID, Position: p.Position})
	}
	for _, t := range r.state.Targets {
		s.Targets = append(s.Targets, TargetView{
			ID:       t.ID,
			Position: t.Position,
			Tier:     t.Tier,
			Points:   t.Points(),
			Color:    t.Color,
		})
	}
	for _, p := range r.state.Effects.Particles {
		s.Particles = append(s.Particles, ParticleView{
			ID:       p.ID,
			Position: p.Position,
			Scale:    p.Scale,
			Color:    p.Color,
		})
	}
	return s
}
