package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"math/big"
	mrand "math/rand"
	"sync"
	"time"

	"github.com/playmatatu/cuptoss/internal/config"
	"github.com/playmatatu/cuptoss/internal/leaderboard"
)

// ErrSessionNotFound is returned for unknown or expired session IDs.
var ErrSessionNotFound = errors.New("session not found")

const handoffTimeout = 3 * time.Second

// ScoreSink receives final scores. The simulation never reads it back.
type ScoreSink interface {
	Submit(ctx context.Context, e leaderboard.Entry) error
}

// SessionManager owns all live sessions
type SessionManager struct {
	sessions map[string]*Session
	sink     ScoreSink
	config   *config.Config
	mu       sync.RWMutex
}

// NewSessionManager creates a manager. sink may be nil to discard final scores.
func NewSessionManager(sink ScoreSink, cfg *config.Config) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		sink:     sink,
		config:   cfg,
	}
}

// generateToken generates a secure random token
func generateToken(length int) string {
	bytes := make([]byte, length)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// generateSessionID generates a unique session ID
func generateSessionID() string {
	return "sess_" + generateToken(8)
}

// CreateSession validates the nickname, then starts a new session loop.
func (m *SessionManager) CreateSession(nickname string) (*Session, error) {
	name, err := NormalizeNickname(nickname)
	if err != nil {
		return nil, err
	}

	seed, _ := rand.Int(rand.Reader, big.NewInt(1<<62))
	opts := SessionOptions{
		Round: RoundOptions{
			Rand: mrand.New(mrand.NewSource(seed.Int64())),
		},
		OnComplete: m.handoff,
	}
	if m.config != nil {
		opts.FrameHz = m.config.FrameHz
		opts.BroadcastHz = m.config.BroadcastHz
		opts.Round.ThrowBudget = m.config.ThrowBudget
		opts.Round.RevealDelay = m.config.RankRevealDelay()
	}

	m.mu.Lock()
	id := generateSessionID()
	for m.sessions[id] != nil {
		id = generateSessionID()
	}
	s := NewSession(id, name, opts)
	m.sessions[id] = s
	m.mu.Unlock()

	go s.Run()
	log.Printf("[SESSION] created %s for %q", id, name)
	return s, nil
}

func (m *SessionManager) GetSession(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// RemoveSession stops the session loop and forgets the session.
func (m *SessionManager) RemoveSession(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.Stop()
	log.Printf("[SESSION] removed %s", id)
	return nil
}

func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartExpiryChecker reaps sessions idle longer than the configured timeout until ctx ends.
func (m *SessionManager) StartExpiryChecker(ctx context.Context) {
	interval := time.Minute
	timeout := 30 * time.Minute
	if m.config != nil {
		if m.config.ExpiryCheckIntervalSeconds > 0 {
			interval = time.Duration(m.config.ExpiryCheckIntervalSeconds) * time.Second
		}
		if m.config.SessionTimeoutMin > 0 {
			timeout = m.config.SessionTimeout()
		}
	}

	log.Println("[EXPIRY] Session expiry checker started")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[EXPIRY] Session expiry checker stopping")
			return
		case now := <-ticker.C:
			m.reapIdle(now, timeout)
		}
	}
}

func (m *SessionManager) reapIdle(now time.Time, timeout time.Duration) int {
	m.mu.RLock()
	var expired []string
	for id, s := range m.sessions {
		if now.Sub(s.LastActive()) >= timeout {
			expired = append(expired, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range expired {
		log.Printf("[EXPIRY] session %s idle for %s, removing", id, timeout)
		m.RemoveSession(id)
	}
	return len(expired)
}

// handoff runs inside the session loop, so the sink call is moved off it.
func (m *SessionManager) handoff(s *Session, res Result) {
	log.Printf("[SESSION] %s round complete: player=%q score=%d rank=%d", s.ID, s.Nickname, res.Score, res.Rank)
	if m.sink == nil {
		return
	}
	entry := leaderboard.Entry{Name: s.Nickname, Score: res.Score}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), handoffTimeout)
		defer cancel()
		if err := m.sink.Submit(ctx, entry); err != nil {
			log.Printf("[LEADERBOARD] failed to record %q=%d: %v", entry.Name, entry.Score, err)
		}
	}()
}

// Shutdown stops every session.
func (m *SessionManager) Shutdown() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Stop()
	}
}
