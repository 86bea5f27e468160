package game

import "math/rand"

// Particle is one spark of a scoring burst. Purely cosmetic.
type Particle struct {
	ID       int     `json:"id"`
	Position Vec3    `json:"position"`
	Velocity Vec3    `json:"velocity"`
	Life     float64 `json:"life"`
	Scale    float64 `json:"scale"`
	Color    int     `json:"color"`
}

// Effects owns the live particles of a round.
type Effects struct {
	Particles []Particle
	rng       *rand.Rand
	nextID    int
}

func NewEffects(rng *rand.Rand) *Effects {
	return &Effects{rng: rng}
}

// Emit spawns a burst of BurstSize particles at pos. Overflow past MaxParticles is dropped.
func (e *Effects) Emit(pos Vec3, color int) {
	for i := 0; i < BurstSize; i++ {
		if len(e.Particles) >= MaxParticles {
			return
		}
		e.nextID++
		e.Particles = append(e.Particles, Particle{
			ID:       e.nextID,
			Position: pos,
			Velocity: Vec3{
				X: (e.rng.Float64() - 0.5) * 0.2,
				Y: e.rng.Float64() * 0.3,
				Z: (e.rng.Float64() - 0.5) * 0.2,
			},
			Life:  1,
			Scale: 1,
			Color: color,
		})
	}
}

// Tick moves every particle and fades it; spent particles are removed in place.
func (e *Effects) Tick(dt float64) {
	live := e.Particles[:0]
	for _, p := range e.Particles {
		p.Position = p.Position.Plus(p.Velocity.Times(dt))
		p.Life -= ParticleDecay * dt
		p.Scale = p.Life
		if p.Life <= 0 {
			continue
		}
		live = append(live, p)
	}
	e.Particles = live
}

func (e *Effects) Clear() {
	e.Particles = e.Particles[:0]
}
