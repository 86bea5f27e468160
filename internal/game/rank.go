package game

// RandSource is the subset of *rand.Rand used for rank draws.
type RandSource interface {
	Intn(n int) int
}

const (
	minUnrankedPlace = 10
	maxUnrankedPlace = 99
)

// rankThresholds lists the minimum score for places 1..5.
var rankThresholds = []int{1000, 800, 650, 550, 450}

// Rank maps a final score to a leaderboard place. Scores below 450 get a random place in
// [10, 99] so weak rounds don't all collapse onto one number.
func Rank(score int, rng RandSource) int {
	for i, min := range rankThresholds {
		if score >= min {
			return i + 1
		}
	}
	return minUnrankedPlace + rng.Intn(maxUnrankedPlace-minUnrankedPlace+1)
}
