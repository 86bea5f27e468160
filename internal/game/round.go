package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"
)

// ErrInvalidInput is returned for launch velocities that would corrupt the simulation.
var ErrInvalidInput = errors.New("invalid input")

// Presenter receives round lifecycle events for display.
type Presenter interface {
	Present(event string, payload any)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(event string, payload any)

func (f PresenterFunc) Present(event string, payload any) { f(event, payload) }

type nopPresenter struct{}

func (nopPresenter) Present(string, any) {}

// Scheduler runs fn once after d. It must not run fn synchronously inside the call.
type Scheduler func(d time.Duration, fn func())

func afterFunc(d time.Duration, fn func()) { time.AfterFunc(d, fn) }

// ScoreUpdate is sent whenever the score or remaining throws change.
type ScoreUpdate struct {
	Score      int `json:"score" msgpack:"score"`
	ThrowsLeft int `json:"throws_left" msgpack:"throws_left"`
}

// Result is the final outcome of a round.
type Result struct {
	Score  int `json:"score" msgpack:"score"`
	Rank   int `json:"rank" msgpack:"rank"`
	Hits   int `json:"hits" msgpack:"hits"`
	Throws int `json:"throws" msgpack:"throws"`
}

// RoundOptions configures a Round. Zero fields take defaults.
type RoundOptions struct {
	ThrowBudget int
	Layout      func() []Target
	Rand        *rand.Rand // particle bursts; also rank draws unless RankSource is set
	RankSource  RandSource
	Schedule    Scheduler
	RevealDelay time.Duration
	Presenter   Presenter
}

// RoundState is everything a round owns. Only Round mutates it.
type RoundState struct {
	Status      RoundStatus
	Running     bool
	Score       int
	ThrowsLeft  int
	Hits        int
	Rank        int
	Revealed    bool
	Projectiles []*Projectile
	Targets     []Target
	Effects     *Effects
}

// FrameReport summarises one FrameTick.
type FrameReport struct {
	Hits      []Hit
	Dropped   []int // projectile IDs that left play without scoring
	Bounces   int
	Completed bool
}

// Round is the single-player game state machine: Idle -> Active -> Complete -> Idle.
// It is not safe for concurrent use; Session serialises access.
type Round struct {
	state      RoundState
	opts       RoundOptions
	generation uint64
	tick       uint64
	nextID     int
}

// NewRound creates an idle round with the layout already on the table.
func NewRound(opts RoundOptions) *Round {
	if opts.ThrowBudget <= 0 {
		opts.ThrowBudget = ThrowBudget
	}
	if opts.Layout == nil {
		opts.Layout = StandardTable
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.RankSource == nil {
		opts.RankSource = opts.Rand
	}
	if opts.Schedule == nil {
		opts.Schedule = afterFunc
	}
	if opts.RevealDelay <= 0 {
		opts.RevealDelay = RankRevealDelay
	}
	if opts.Presenter == nil {
		opts.Presenter = nopPresenter{}
	}

	r := &Round{opts: opts}
	r.state = RoundState{
		Status:     StatusIdle,
		ThrowsLeft: opts.ThrowBudget,
		Targets:    opts.Layout(),
		Effects:    NewEffects(opts.Rand),
	}
	return r
}

func (r *Round) Status() RoundStatus {
	return r.state.Status
}

func (r *Round) Score() int {
	return r.state.Score
}

func (r *Round) ThrowsLeft() int {
	return r.state.ThrowsLeft
}

func (r *Round) Running() bool {
	return r.state.Running
}

func (r *Round) LiveProjectiles() int {
	return len(r.state.Projectiles)
}

func (r *Round) LiveTargets() int {
	return len(r.state.Targets)
}

func (r *Round) ParticleCount() int {
	return len(r.state.Effects.Particles)
}

// Rank returns the revealed rank; ok is false until the deferred reveal has run.
func (r *Round) Rank() (rank int, ok bool) {
	return r.state.Rank, r.state.Revealed
}

// Targets returns a copy of the live targets in iteration order.
func (r *Round) Targets() []Target {
	out := make([]Target, len(r.state.Targets))
	copy(out, r.state.Targets)
	return out
}

// StartRound begins a round. Ignored unless the round is idle.
func (r *Round) StartRound() {
	if r.state.Status != StatusIdle {
		return
	}
	r.clearLive()
	r.state.Score = 0
	r.state.Hits = 0
	r.state.Rank = 0
	r.state.Revealed = false
	r.state.ThrowsLeft = r.opts.ThrowBudget
	r.state.Targets = r.opts.Layout()
	r.state.Running = true
	r.state.Status = StatusActive

	r.opts.Presenter.Present(EventRoundStarted, r.Snapshot())
}

// checkLaunch rejects velocities that are non-finite or fast enough to overflow the
// projectile state within a few frames.
func checkLaunch(v Vec3) error {
	if !v.IsFinite() {
		return fmt.Errorf("%w: launch velocity %+v", ErrInvalidInput, v)
	}
	if speed := v.Magnitude(); speed > MaxLaunchSpeed {
		return fmt.Errorf("%w: launch speed %.3g exceeds %.3g", ErrInvalidInput, speed, MaxLaunchSpeed)
	}
	return nil
}

// Launch throws a ball from LaunchOrigin with velocity v. Non-finite or over-fast velocities
// are rejected with ErrInvalidInput; launches outside an active round or with no throws left
// are ignored.
func (r *Round) Launch(v Vec3) error {
	if err := checkLaunch(v); err != nil {
		return err
	}
	if r.state.Status != StatusActive || r.state.ThrowsLeft <= 0 {
		return nil
	}

	r.nextID++
	r.state.Projectiles = append(r.state.Projectiles, &Projectile{
		ID:       r.nextID,
		Position: LaunchOrigin,
		Velocity: v,
	})
	r.state.ThrowsLeft--

	r.opts.Presenter.Present(EventScore, ScoreUpdate{Score: r.state.Score, ThrowsLeft: r.state.ThrowsLeft})
	return nil
}

// FrameTick advances the simulation by dt nominal frames: physics for every live projectile,
// then collision resolution in launch order, then particle decay, then the completion check.
func (r *Round) FrameTick(dt float64) FrameReport {
	r.tick++
	var report FrameReport

	for _, p := range r.state.Projectiles {
		if StepProjectile(p, dt) {
			report.Bounces++
		}
	}

	live := r.state.Projectiles[:0]
	for _, p := range r.state.Projectiles {
		res := Resolve(*p, r.state.Targets)
		switch res.Outcome {
		case Scored:
			report.Hits = append(report.Hits, r.applyHit(p, res.Target))
		case OutOfBounds:
			report.Dropped = append(report.Dropped, p.ID)
		default:
			live = append(live, p)
		}
	}
	for i := len(live); i < len(r.state.Projectiles); i++ {
		r.state.Projectiles[i] = nil
	}
	r.state.Projectiles = live

	r.state.Effects.Tick(dt)

	if r.state.Running && r.state.ThrowsLeft == 0 && len(r.state.Projectiles) == 0 {
		r.complete()
		report.Completed = true
	}
	return report
}

func (r *Round) applyHit(p *Projectile, idx int) Hit {
	t := r.state.Targets[idx]
	r.state.Targets = append(r.state.Targets[:idx], r.state.Targets[idx+1:]...)
	r.state.Score += t.Points()
	r.state.Hits++
	r.state.Effects.Emit(t.Position, t.Color)

	hit := Hit{
		ProjectileID: p.ID,
		TargetID:     t.ID,
		Tier:         t.Tier,
		Points:       t.Points(),
		Position:     t.Position,
		Color:        t.Color,
	}
	r.opts.Presenter.Present(EventTargetHit, hit)
	r.opts.Presenter.Present(EventScore, ScoreUpdate{Score: r.state.Score, ThrowsLeft: r.state.ThrowsLeft})
	return hit
}

func (r *Round) complete() {
	r.state.Running = false
	r.state.Status = StatusComplete
	gen := r.generation
	r.opts.Schedule(r.opts.RevealDelay, func() { r.reveal(gen) })
}

// reveal computes the rank for the round that completed under gen. A reveal for a round
// that has since been reset or aborted is discarded.
func (r *Round) reveal(gen uint64) {
	if gen != r.generation || r.state.Status != StatusComplete || r.state.Revealed {
		log.Printf("[ROUND] discarding stale rank reveal (gen=%d current=%d status=%s)", gen, r.generation, r.state.Status)
		return
	}
	r.state.Rank = Rank(r.state.Score, r.opts.RankSource)
	r.state.Revealed = true

	r.opts.Presenter.Present(EventRoundComplete, Result{
		Score:  r.state.Score,
		Rank:   r.state.Rank,
		Hits:   r.state.Hits,
		Throws: r.opts.ThrowBudget,
	})
}

// Reset returns a completed round to idle. Ignored in any other state.
func (r *Round) Reset() {
	if r.state.Status != StatusComplete {
		return
	}
	r.toIdle()
	r.opts.Presenter.Present(EventRoundReset, r.Snapshot())
}

// Abort forces the round to idle from any state ("exit to menu").
func (r *Round) Abort() {
	r.toIdle()
	r.opts.Presenter.Present(EventRoundAborted, r.Snapshot())
}

func (r *Round) toIdle() {
	r.generation++
	r.clearLive()
	r.state.Running = false
	r.state.Score = 0
	r.state.Hits = 0
	r.state.Rank = 0
	r.state.Revealed = false
	r.state.ThrowsLeft = r.opts.ThrowBudget
	r.state.Status = StatusIdle
}

func (r *Round) clearLive() {
	for i := range r.state.Projectiles {
		r.state.Projectiles[i] = nil
	}
	r.state.Projectiles = r.state.Projectiles[:0]
	r.state.Effects.Clear()
}
