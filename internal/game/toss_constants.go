package game

import "time"

// Physics and table constants for the cup toss table.
// Values are calibrated per nominal 60 Hz frame; StepProjectile scales them by dt.

const (
	NominalFrameHz = 60
	Gravity        = -0.005 // units/frame², applied to vy
	Restitution    = 0.6    // vertical energy kept on a table bounce
	Friction       = 0.96   // horizontal damping on a table bounce
	BallRadius     = 0.16

	CaptureRadius   = 0.32 // planar distance to a cup centre
	CaptureBandLow  = 0.3  // exclusive
	CaptureBandHigh = 0.8  // exclusive
	FarBoundaryZ    = -15.0
	FloorY          = -5.0
	SettleSpeed     = 0.002

	MaxLaunchSpeed  = 5.0 // units/frame; faster throws are rejected
	ThrowBudget     = 10
	RankRevealDelay = 800 * time.Millisecond

	NormalPoints = 30
	BonusPoints  = 100

	BurstSize     = 12
	ParticleDecay = 0.02
	MaxParticles  = 240

	// Table layout
	CupHeight  = 0.35
	CupSpacing = 1.4
	FrontRowZ  = 2.0
)

// LaunchOrigin is where every throw leaves the hand.
var LaunchOrigin = Vec3{X: 0, Y: BallRadius + 0.1, Z: 6}
