package leaderboard

import (
	"context"
	"sort"
	"sync"
)

// Entry is one nickname/score pair.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Board stores the best score per nickname and lists the top entries.
type Board interface {
	Submit(ctx context.Context, e Entry) error
	Top(ctx context.Context, n int) ([]Entry, error)
}

// DefaultSeed is shown on a fresh board so the first player has something to beat.
var DefaultSeed = []Entry{
	{Name: "BouncerX", Score: 850},
	{Name: "ProShot", Score: 520},
}

// MemoryBoard is an in-process Board. It lives as long as the server process.
type MemoryBoard struct {
	best map[string]int
	mu   sync.RWMutex
}

func NewMemoryBoard(seed ...Entry) *MemoryBoard {
	b := &MemoryBoard{best: make(map[string]int)}
	for _, e := range seed {
		b.keepBest(e)
	}
	return b
}

func (b *MemoryBoard) Submit(_ context.Context, e Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.keepBest(e)
	return nil
}

func (b *MemoryBoard) keepBest(e Entry) {
	if cur, ok := b.best[e.Name]; ok && cur >= e.Score {
		return
	}
	b.best[e.Name] = e.Score
}

// Top returns up to n entries by descending score; n <= 0 returns all of them.
func (b *MemoryBoard) Top(_ context.Context, n int) ([]Entry, error) {
	b.mu.RLock()
	entries := make([]Entry, 0, len(b.best))
	for name, score := range b.best {
		entries = append(entries, Entry{Name: name, Score: score})
	}
	b.mu.RUnlock()

	sortEntries(entries)
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// sortEntries orders by score descending, then name ascending for stable ties.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})
}
