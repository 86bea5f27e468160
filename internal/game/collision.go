package game

// Outcome classifies a projectile after one frame of collision checks.
type Outcome uint8

const (
	Continuing Outcome = iota
	Scored
	OutOfBounds
)

func (o Outcome) String() string {
	switch o {
	case Scored:
		return "scored"
	case OutOfBounds:
		return "out_of_bounds"
	default:
		return "continuing"
	}
}

// Resolution is the result of Resolve. Target indexes the targets slice when Outcome is Scored,
// and is -1 otherwise.
type Resolution struct {
	Outcome Outcome
	Target  int
}

// Hit describes a scoring event, carrying the target's data after it leaves the live set.
type Hit struct {
	ProjectileID int  `json:"projectile_id" msgpack:"projectile_id"`
	TargetID     int  `json:"target_id" msgpack:"target_id"`
	Tier         Tier `json:"tier" msgpack:"tier"`
	Points       int  `json:"points" msgpack:"points"`
	Position     Vec3 `json:"position" msgpack:"position"`
	Color        int  `json:"color" msgpack:"color"`
}

// Resolve checks p against the live targets, then against the play volume.
//
// The first target in slice order whose capture window contains p wins, even when a later
// target is closer. The hit check runs before the settle check, so a ball resting inside a
// cup scores rather than being discarded.
func Resolve(p Projectile, targets []Target) Resolution {
	// A ball whose state has overflowed can never be scored or settle on its own.
	if !p.Position.IsFinite() || !p.Velocity.IsFinite() {
		return Resolution{Outcome: OutOfBounds, Target: -1}
	}

	for i, t := range targets {
		if inCaptureWindow(p.Position, t.Position) {
			return Resolution{Outcome: Scored, Target: i}
		}
	}

	if p.Position.Z < FarBoundaryZ || p.Position.Y < FloorY || p.Velocity.Magnitude() < SettleSpeed {
		return Resolution{Outcome: OutOfBounds, Target: -1}
	}
	return Resolution{Outcome: Continuing, Target: -1}
}

func inCaptureWindow(ball, cup Vec3) bool {
	return ball.PlanarDistance(cup) < CaptureRadius &&
		ball.Y > CaptureBandLow && ball.Y < CaptureBandHigh
}
