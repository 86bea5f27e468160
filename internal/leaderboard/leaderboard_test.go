package leaderboard

import (
	"context"
	"testing"
)

func TestMemoryBoardKeepsBestPerName(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBoard(DefaultSeed...)

	b.Submit(ctx, Entry{Name: "Ace", Score: 300})
	b.Submit(ctx, Entry{Name: "Ace", Score: 120})
	b.Submit(ctx, Entry{Name: "ProShot", Score: 600})

	top, err := b.Top(ctx, 0)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	want := []Entry{
		{Name: "BouncerX", Score: 850},
		{Name: "ProShot", Score: 600},
		{Name: "Ace", Score: 300},
	}
	if len(top) != len(want) {
		t.Fatalf("got %v, want %v", top, want)
	}
	for i := range want {
		if top[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, top[i], want[i])
		}
	}
}

func TestMemoryBoardTopLimitAndTies(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBoard()
	for _, name := range []string{"Zed", "Amy", "Kim"} {
		b.Submit(ctx, Entry{Name: name, Score: 90})
	}

	top, _ := b.Top(ctx, 2)
	if len(top) != 2 || top[0].Name != "Amy" || top[1].Name != "Kim" {
		t.Errorf("got %v, want Amy then Kim", top)
	}
}
