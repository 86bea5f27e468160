package game

// Projectile is a ball in flight. Radius is always BallRadius.
type Projectile struct {
	ID       int  `json:"id"`
	Position Vec3 `json:"position"`
	Velocity Vec3 `json:"velocity"`
	Bounces  int  `json:"bounces"`
}

// StepProjectile advances p by dt nominal frames and reports whether it bounced off the table.
// dt == 1 is the calibrated step; other values scale gravity and travel linearly.
func StepProjectile(p *Projectile, dt float64) bool {
	p.Velocity.Y += Gravity * dt
	p.Position = p.Position.Plus(p.Velocity.Times(dt))

	if p.Position.Y > BallRadius {
		return false
	}

	// Table bounce
	p.Position.Y = BallRadius
	p.Velocity.Y = -p.Velocity.Y * Restitution
	p.Velocity.X *= Friction
	p.Velocity.Z *= Friction
	p.Bounces++
	return true
}
