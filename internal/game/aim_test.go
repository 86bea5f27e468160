package game

import (
	"math"
	"testing"
)

func TestAimVelocity(t *testing.T) {
	near := AimVelocity(LaunchOrigin, NewVec3(0, 0, 2))
	far := AimVelocity(LaunchOrigin, NewVec3(0, 0, -3))

	if near.X != 0 || near.Z >= 0 {
		t.Errorf("straight shot has velocity %+v", near)
	}
	if far.Y <= near.Y {
		t.Errorf("far lob vy=%.3f not above near lob vy=%.3f", far.Y, near.Y)
	}

	left := AimVelocity(LaunchOrigin, NewVec3(-2, 0, 0))
	if left.X >= 0 {
		t.Errorf("aim to the left gave vx=%.3f", left.X)
	}
}

func TestIntersectGround(t *testing.T) {
	p, ok := IntersectGround(NewVec3(0, 10, 0), NewVec3(0, -1, 1))
	if !ok || math.Abs(p.Z-10) > 1e-9 || p.Y != 0 {
		t.Errorf("got %+v ok=%v, want (0,0,10)", p, ok)
	}

	if _, ok := IntersectGround(NewVec3(0, 10, 0), NewVec3(0, 1, 0)); ok {
		t.Error("ray pointing away from the table should miss")
	}
	if _, ok := IntersectGround(NewVec3(0, 10, 0), NewVec3(1, 0, 0)); ok {
		t.Error("ray parallel to the table should miss")
	}
}

func TestVec3IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() || NewVec3(0, math.Inf(-1), 0).IsFinite() {
		t.Error("NaN/Inf vector reported finite")
	}
}

func TestVec3Arithmetic(t *testing.T) {
	a := NewVec3(3, 4, 12)
	b := NewVec3(1, 2, 3)

	if got := a.Minus(b); got != NewVec3(2, 2, 9) {
		t.Errorf("Minus = %+v", got)
	}
	if got := a.Dot(b); got != 47 {
		t.Errorf("Dot = %v, want 47", got)
	}
	if got := a.Magnitude(); got != 13 {
		t.Errorf("Magnitude = %v, want 13", got)
	}
	if got := NewVec3(3, 100, 4).PlanarDistance(Vec3{}); got != 5 {
		t.Errorf("PlanarDistance = %v, want 5 regardless of height", got)
	}
}
