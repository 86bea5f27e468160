package game

import "fmt"

// Tier is the scoring class of a cup.
type Tier uint8

const (
	TierNormal Tier = iota
	TierBonus
)

// Points is the score awarded for landing in a cup of this tier.
func (t Tier) Points() int {
	if t == TierBonus {
		return BonusPoints
	}
	return NormalPoints
}

func (t Tier) String() string {
	if t == TierBonus {
		return "bonus"
	}
	return "normal"
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(b []byte) error {
	switch string(b) {
	case "normal":
		*t = TierNormal
	case "bonus":
		*t = TierBonus
	default:
		return fmt.Errorf("unknown tier %q", string(b))
	}
	return nil
}

// Cup colors (0xRRGGBB)
const (
	ColorGreen = 0x22c55e
	ColorRed   = 0xef4444
	ColorGold  = 0xfacc15
)

// Target is a stationary cup on the table.
type Target struct {
	ID       int  `json:"id"`
	Position Vec3 `json:"position"`
	Tier     Tier `json:"tier"`
	Color    int  `json:"color"`
}

// Points is the target's score value.
func (t Target) Points() int {
	return t.Tier.Points()
}

// StandardRows is the number of cups per row, front (nearest the thrower) to back.
var StandardRows = []int{5, 4, 3, 2, 1}

// StandardTable builds the pyramid of cups: rows of 5,4,3,2,1 receding from z=2,
// centred on x=0. The single back cup is the gold bonus cup.
func StandardTable() []Target {
	targets := make([]Target, 0, 15)
	id := 0
	for row, count := range StandardRows {
		z := FrontRowZ - float64(row)*CupSpacing
		startX := -float64(count-1) * CupSpacing / 2

		tier := TierNormal
		color := ColorGreen
		switch {
		case row == len(StandardRows)-1:
			tier, color = TierBonus, ColorGold
		case row > 1:
			color = ColorRed
		}

		for i := 0; i < count; i++ {
			targets = append(targets, Target{
				ID:       id,
				Position: NewVec3(startX+float64(i)*CupSpacing, CupHeight, z),
				Tier:     tier,
				Color:    color,
			})
			id++
		}
	}
	return targets
}

// MaxScore is the score of hitting every target once.
func MaxScore(targets []Target) int {
	total := 0
	for _, t := range targets {
		total += t.Points()
	}
	return total
}
