package game

import "math"

// Aim gains, per unit of table distance between the launch point and the aim point.
const (
	aimGainX    = 0.045
	aimGainZ    = 0.048
	aimLift     = 0.18
	aimLiftGain = 0.018
)

// AimVelocity converts a point on the table into a launch velocity from origin. Farther
// points get a proportionally higher lob.
func AimVelocity(origin, ground Vec3) Vec3 {
	dx := ground.X - origin.X
	dz := ground.Z - origin.Z
	dist := math.Sqrt(dx*dx + dz*dz)
	return Vec3{
		X: dx * aimGainX,
		Y: aimLift + dist*aimLiftGain,
		Z: dz * aimGainZ,
	}
}

// IntersectGround intersects the ray origin+t*dir (t >= 0) with the table plane y=0.
func IntersectGround(origin, dir Vec3) (Vec3, bool) {
	if dir.Y == 0 {
		return Vec3{}, false
	}
	t := -origin.Y / dir.Y
	if t < 0 {
		return Vec3{}, false
	}
	p := origin.Plus(dir.Times(t))
	p.Y = 0
	return p, true
}
