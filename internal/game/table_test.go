package game

import "testing"

func TestStandardTable(t *testing.T) {
	targets := StandardTable()

	if len(targets) != 15 {
		t.Fatalf("got %d cups, want 15", len(targets))
	}

	ids := make(map[int]bool)
	bonus := 0
	for _, c := range targets {
		if ids[c.ID] {
			t.Errorf("duplicate cup id %d", c.ID)
		}
		ids[c.ID] = true
		if c.Tier == TierBonus {
			bonus++
			if c.Color != ColorGold {
				t.Errorf("bonus cup color %#x, want gold", c.Color)
			}
			if c.Position.Z != FrontRowZ-4*CupSpacing || c.Position.X != 0 {
				t.Errorf("bonus cup at %+v, want back centre", c.Position)
			}
		}
		if c.Position.Y != CupHeight {
			t.Errorf("cup %d at height %.2f", c.ID, c.Position.Y)
		}
	}
	if bonus != 1 {
		t.Errorf("got %d bonus cups, want 1", bonus)
	}

	if got := MaxScore(targets); got != 14*NormalPoints+BonusPoints {
		t.Errorf("MaxScore=%d, want %d", got, 14*NormalPoints+BonusPoints)
	}
}

func TestTierText(t *testing.T) {
	b, _ := TierBonus.MarshalText()
	var tier Tier
	if err := tier.UnmarshalText(b); err != nil || tier != TierBonus {
		t.Errorf("round trip gave %v, %v", tier, err)
	}
	if err := tier.UnmarshalText([]byte("golden")); err == nil {
		t.Error("expected error for unknown tier")
	}
}
