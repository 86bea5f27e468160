package game

import (
	"errors"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"
)

// ErrInvalidNickname is returned for empty or over-long player names.
var ErrInvalidNickname = errors.New("invalid nickname")

const maxNicknameRunes = 24

// NormalizeNickname trims name and checks it is usable on the leaderboard.
func NormalizeNickname(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNicknameRunes {
		return "", ErrInvalidNickname
	}
	return name, nil
}

// Session commands, sent on Session.Inbox.

type StartRoundCmd struct{}

// LaunchCmd queues a throw for the start of the next frame. Reply, if set, receives
// ErrInvalidInput for non-finite or over-fast velocities and nil otherwise.
type LaunchCmd struct {
	Velocity Vec3
	Reply    chan<- error
}

// AimCmd launches toward a point on the table.
type AimCmd struct {
	Point Vec3
	Reply chan<- error
}

type ResetCmd struct{}

// AbortCmd is "exit to menu": the round is cleared and forced idle.
type AbortCmd struct{}

type SnapshotCmd struct {
	Reply chan<- Snapshot
}

// AttachCmd replaces the session's presenter (a new connection for the player).
type AttachCmd struct {
	ID        string
	Presenter Presenter
}

// DetachCmd removes the presenter attached under ID, if it is still the current one.
type DetachCmd struct {
	ID string
}

type revealCmd struct {
	fn func()
}

// SessionOptions configures a Session.
type SessionOptions struct {
	FrameHz     int
	BroadcastHz int
	Round       RoundOptions
	OnComplete  func(s *Session, res Result)
}

// Session drives one player's Round from a single goroutine. Every mutation of the round
// happens inside Run, so launch requests from the network never touch the live projectile
// set mid-frame.
type Session struct {
	ID        string
	Nickname  string
	Inbox     chan any
	CreatedAt time.Time

	round          *Round
	presenter      Presenter
	presenterID    string
	pending        []Vec3
	frameHz        int
	broadcastEvery int
	dt             float64
	frames         uint64
	onComplete     func(*Session, Result)
	lastActive     atomic.Int64
	quit           chan struct{}
	stopOnce       sync.Once
}

// NewSession builds a session; call Run in its own goroutine.
func NewSession(id, nickname string, opts SessionOptions) *Session {
	if opts.FrameHz <= 0 {
		opts.FrameHz = NominalFrameHz
	}
	if opts.BroadcastHz <= 0 || opts.BroadcastHz > opts.FrameHz {
		opts.BroadcastHz = opts.FrameHz
	}
	broadcastEvery := opts.FrameHz / opts.BroadcastHz
	if broadcastEvery <= 0 {
		broadcastEvery = 1
	}

	s := &Session{
		ID:             id,
		Nickname:       nickname,
		Inbox:          make(chan any, 256),
		CreatedAt:      time.Now(),
		presenter:      nopPresenter{},
		frameHz:        opts.FrameHz,
		broadcastEvery: broadcastEvery,
		dt:             float64(NominalFrameHz) / float64(opts.FrameHz),
		onComplete:     opts.OnComplete,
		quit:           make(chan struct{}),
	}
	s.touch()

	ro := opts.Round
	ro.Presenter = PresenterFunc(s.present)
	ro.Schedule = s.schedule
	s.round = NewRound(ro)
	return s
}

func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
}

// Done is closed once the session is stopped.
func (s *Session) Done() <-chan struct{} {
	return s.quit
}

// LastActive is the time of the last command from the player.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// Send posts cmd to the session loop. It returns false if the session has stopped.
func (s *Session) Send(cmd any) bool {
	select {
	case s.Inbox <- cmd:
		return true
	case <-s.quit:
		return false
	}
}

func (s *Session) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(s.frameHz))
	defer ticker.Stop()

	for {
		select {
		case <-s.quit:
			return
		case cmd := <-s.Inbox:
			s.handleCommand(cmd)
		case <-ticker.C:
			s.step()
		}
	}
}

func (s *Session) handleCommand(cmd any) {
	if _, internal := cmd.(revealCmd); !internal {
		s.touch()
	}

	switch c := cmd.(type) {
	case StartRoundCmd:
		s.pending = s.pending[:0]
		s.round.StartRound()
	case LaunchCmd:
		reply(c.Reply, s.queueLaunch(c.Velocity))
	case AimCmd:
		if !c.Point.IsFinite() {
			reply(c.Reply, ErrInvalidInput)
			return
		}
		reply(c.Reply, s.queueLaunch(AimVelocity(LaunchOrigin, c.Point)))
	case ResetCmd:
		s.pending = s.pending[:0]
		s.round.Reset()
	case AbortCmd:
		s.pending = s.pending[:0]
		s.round.Abort()
	case SnapshotCmd:
		if c.Reply != nil {
			c.Reply <- s.round.Snapshot()
		}
	case AttachCmd:
		if c.Presenter == nil {
			return
		}
		s.presenter = c.Presenter
		s.presenterID = c.ID
		s.presenter.Present(EventState, s.round.Snapshot())
	case DetachCmd:
		if s.presenterID == c.ID {
			s.presenter = nopPresenter{}
			s.presenterID = ""
		}
	case revealCmd:
		c.fn()
	default:
		log.Printf("[SESSION] %s: unknown command %T", s.ID, cmd)
	}
}

func (s *Session) queueLaunch(v Vec3) error {
	if err := checkLaunch(v); err != nil {
		return err
	}
	s.pending = append(s.pending, v)
	return nil
}

// step runs one frame: queued launches first, then the simulation.
func (s *Session) step() {
	for _, v := range s.pending {
		if err := s.round.Launch(v); err != nil {
			log.Printf("[SESSION] %s: dropped queued launch: %v", s.ID, err)
		}
	}
	s.pending = s.pending[:0]

	s.round.FrameTick(s.dt)
	s.frames++

	if s.frames%uint64(s.broadcastEvery) != 0 {
		return
	}
	if s.round.Running() || s.round.LiveProjectiles() > 0 || s.round.ParticleCount() > 0 {
		s.presenter.Present(EventState, s.round.Snapshot())
	}
}

func (s *Session) present(event string, payload any) {
	s.presenter.Present(event, payload)
	if event == EventRoundComplete && s.onComplete != nil {
		if res, ok := payload.(Result); ok {
			s.onComplete(s, res)
		}
	}
}

// schedule defers fn and then runs it inside the session loop.
func (s *Session) schedule(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		s.Send(revealCmd{fn: fn})
	})
}

func reply(ch chan<- error, err error) {
	if ch == nil {
		return
	}
	select {
	case ch <- err:
	default:
	}
}
