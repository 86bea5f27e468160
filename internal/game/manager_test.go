package game

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/playmatatu/cuptoss/internal/config"
	"github.com/playmatatu/cuptoss/internal/leaderboard"
)

func testManager(t *testing.T, sink ScoreSink) *SessionManager {
	t.Helper()
	m := NewSessionManager(sink, &config.Config{
		FrameHz:           60,
		BroadcastHz:       30,
		ThrowBudget:       5,
		RankRevealDelayMs: 800,
		SessionTimeoutMin: 30,
	})
	t.Cleanup(m.Shutdown)
	return m
}

func TestCreateSession(t *testing.T) {
	m := testManager(t, nil)

	s, err := m.CreateSession(" Ace ")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if !strings.HasPrefix(s.ID, "sess_") || s.Nickname != "Ace" {
		t.Errorf("session id=%q nickname=%q", s.ID, s.Nickname)
	}
	if s.round.ThrowsLeft() != 5 {
		t.Errorf("throw budget %d, want configured 5", s.round.ThrowsLeft())
	}

	got, err := m.GetSession(s.ID)
	if err != nil || got != s {
		t.Errorf("GetSession = %v, %v", got, err)
	}

	if _, err := m.CreateSession(""); !errors.Is(err, ErrInvalidNickname) {
		t.Errorf("empty nickname err=%v", err)
	}
	if m.Count() != 1 {
		t.Errorf("count=%d, want 1", m.Count())
	}
}

func TestRemoveSession(t *testing.T) {
	m := testManager(t, nil)
	s, _ := m.CreateSession("Bye")

	if err := m.RemoveSession(s.ID); err != nil {
		t.Fatalf("RemoveSession: %v", err)
	}
	select {
	case <-s.Done():
	default:
		t.Error("removed session still running")
	}
	if _, err := m.GetSession(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetSession after remove err=%v", err)
	}
	if err := m.RemoveSession(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second remove err=%v", err)
	}
}

func TestReapIdle(t *testing.T) {
	m := testManager(t, nil)
	m.CreateSession("Idle")
	m.CreateSession("AlsoIdle")

	if n := m.reapIdle(time.Now(), 30*time.Minute); n != 0 {
		t.Errorf("reaped %d fresh sessions", n)
	}
	if n := m.reapIdle(time.Now().Add(time.Hour), 30*time.Minute); n != 2 {
		t.Errorf("reaped %d, want 2", n)
	}
	if m.Count() != 0 {
		t.Errorf("count=%d after reaping", m.Count())
	}
}

func TestHandoffSubmitsToLeaderboard(t *testing.T) {
	board := leaderboard.NewMemoryBoard()
	m := testManager(t, board)
	s, _ := m.CreateSession("Closer")

	m.handoff(s, Result{Score: 340, Rank: 42})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		top, _ := board.Top(context.Background(), 1)
		if len(top) == 1 {
			if top[0].Name != "Closer" || top[0].Score != 340 {
				t.Errorf("entry %+v", top[0])
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("score never reached the leaderboard")
}
