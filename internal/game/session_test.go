package game

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"
)

// chanPresenter forwards events without ever blocking the session loop.
type chanPresenter chan string

func (c chanPresenter) Present(event string, _ any) {
	select {
	case c <- event:
	default:
	}
}

func testSession() *Session {
	return NewSession("sess_test", "Tester", SessionOptions{
		Round: RoundOptions{Rand: rand.New(rand.NewSource(3))},
	})
}

func TestNormalizeNickname(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"  Ace ", "Ace", false},
		{"", "", true},
		{"   ", "", true},
		{"ÄÖÜäöüßÄÖÜäöüßÄÖÜäöüßÄÖÜä", "", true},
		{"ÄÖÜäöüßÄÖÜäöüßÄÖÜäöüßÄÖÜ", "ÄÖÜäöüßÄÖÜäöüßÄÖÜäöüßÄÖÜ", false},
	}
	for _, tt := range tests {
		got, err := NormalizeNickname(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidNickname) {
				t.Errorf("NormalizeNickname(%q) err=%v, want ErrInvalidNickname", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("NormalizeNickname(%q)=%q, %v", tt.in, got, err)
		}
	}
}

func TestLaunchQueuedUntilNextStep(t *testing.T) {
	s := testSession()
	s.handleCommand(StartRoundCmd{})

	reply := make(chan error, 1)
	s.handleCommand(LaunchCmd{Velocity: missVelocity, Reply: reply})
	if err := <-reply; err != nil {
		t.Fatalf("launch reply: %v", err)
	}
	if s.round.LiveProjectiles() != 0 {
		t.Fatal("launch applied before the frame boundary")
	}

	s.step()
	if s.round.LiveProjectiles() != 1 || s.round.ThrowsLeft() != ThrowBudget-1 {
		t.Errorf("after step: projectiles=%d throws=%d", s.round.LiveProjectiles(), s.round.ThrowsLeft())
	}
}

func TestInvalidLaunchRejected(t *testing.T) {
	s := testSession()
	s.handleCommand(StartRoundCmd{})

	reply := make(chan error, 1)
	s.handleCommand(LaunchCmd{Velocity: NewVec3(math.NaN(), 0, 0), Reply: reply})
	if err := <-reply; !errors.Is(err, ErrInvalidInput) {
		t.Errorf("reply=%v, want ErrInvalidInput", err)
	}

	s.handleCommand(LaunchCmd{Velocity: NewVec3(0, 1e308, 1e308), Reply: reply})
	if err := <-reply; !errors.Is(err, ErrInvalidInput) {
		t.Errorf("over-fast reply=%v, want ErrInvalidInput", err)
	}

	s.handleCommand(AimCmd{Point: NewVec3(1e300, 0, 0), Reply: reply})
	if err := <-reply; !errors.Is(err, ErrInvalidInput) {
		t.Errorf("far aim reply=%v, want ErrInvalidInput", err)
	}

	s.handleCommand(AimCmd{Point: NewVec3(math.Inf(1), 0, 0), Reply: reply})
	if err := <-reply; !errors.Is(err, ErrInvalidInput) {
		t.Errorf("aim reply=%v, want ErrInvalidInput", err)
	}

	s.step()
	if s.round.LiveProjectiles() != 0 {
		t.Error("invalid input reached the simulation")
	}
}

func TestAbortDropsQueuedLaunches(t *testing.T) {
	s := testSession()
	s.handleCommand(StartRoundCmd{})
	s.handleCommand(LaunchCmd{Velocity: missVelocity})
	s.handleCommand(AbortCmd{})
	s.handleCommand(StartRoundCmd{})
	s.step()

	if s.round.LiveProjectiles() != 0 {
		t.Error("launch queued before abort was applied to the next round")
	}
}

func TestAttachAndDetach(t *testing.T) {
	s := testSession()
	events := make(chanPresenter, 16)

	s.handleCommand(AttachCmd{ID: "a", Presenter: events})
	if got := <-events; got != EventState {
		t.Fatalf("first event %q, want state", got)
	}

	s.handleCommand(DetachCmd{ID: "someone-else"})
	s.handleCommand(StartRoundCmd{})
	if got := <-events; got != EventRoundStarted {
		t.Fatalf("got %q, want round_started", got)
	}

	s.handleCommand(DetachCmd{ID: "a"})
	s.handleCommand(AbortCmd{})
	select {
	case got := <-events:
		t.Errorf("detached presenter received %q", got)
	default:
	}
}

func TestSessionRunsRoundToCompletion(t *testing.T) {
	results := make(chan Result, 1)
	s := NewSession("sess_run", "Runner", SessionOptions{
		FrameHz:     120,
		BroadcastHz: 30,
		Round: RoundOptions{
			Rand:        rand.New(rand.NewSource(5)),
			RevealDelay: 10 * time.Millisecond,
		},
		OnComplete: func(_ *Session, res Result) { results <- res },
	})
	go s.Run()
	defer s.Stop()

	s.Send(StartRoundCmd{})
	for i := 0; i < ThrowBudget; i++ {
		s.Send(LaunchCmd{Velocity: missVelocity})
	}

	select {
	case res := <-results:
		if res.Score != 0 || res.Rank < 10 || res.Rank > 99 {
			t.Errorf("result %+v", res)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("round did not complete")
	}

	snap := make(chan Snapshot, 1)
	s.Send(SnapshotCmd{Reply: snap})
	select {
	case got := <-snap:
		if got.Status != StatusComplete || got.ThrowsLeft != 0 {
			t.Errorf("snapshot status=%s throws=%d", got.Status, got.ThrowsLeft)
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot")
	}
}

func TestSessionDtFollowsFrameRate(t *testing.T) {
	s := NewSession("sess_dt", "Dt", SessionOptions{FrameHz: 120})
	if s.dt != 0.5 {
		t.Errorf("dt=%.2f at 120 Hz, want 0.5", s.dt)
	}
}
