package main

import (
	"flag"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/playmatatu/cuptoss/internal/game"
)

const maxFramesPerThrow = 2000

type runStats struct {
	runIndex int
	seed     int64

	score     int
	rank      int
	hits      int
	bonusHit  bool
	bounces   int
	dropped   int
	frames    int
	completed bool
}

// deferred collects rank reveals so they can be run after the round ends.
type deferred struct {
	fns []func()
}

func (d *deferred) schedule(_ time.Duration, fn func()) {
	d.fns = append(d.fns, fn)
}

func (d *deferred) flush() {
	fns := d.fns
	d.fns = nil
	for _, fn := range fns {
		fn()
	}
}

func main() {
	var runs int
	var seedBase int64
	var seedStep int64
	var spread float64

	flag.IntVar(&runs, "runs", 20, "number of simulated rounds")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.Float64Var(&spread, "spread", 0.6, "aim error in table units around the chosen cup")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if spread < 0 {
		fmt.Println("error: -spread must be >= 0")
		return
	}

	fmt.Printf("=== Headless Cup Toss Report ===\n")
	fmt.Printf("runs=%d seed_base=%d seed_step=%d spread=%.2f\n\n", runs, seedBase, seedStep, spread)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runRound(i+1, seed, spread)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// runRound plays one round with a thrower that picks a random live cup and misses by up
// to spread units.
func runRound(runIndex int, seed int64, spread float64) runStats {
	rng := rand.New(rand.NewSource(seed))
	reveals := &deferred{}

	var result *game.Result
	round := game.NewRound(game.RoundOptions{
		Rand:     rng,
		Schedule: reveals.schedule,
		Presenter: game.PresenterFunc(func(event string, payload any) {
			if event == game.EventRoundComplete {
				if res, ok := payload.(game.Result); ok {
					result = &res
				}
			}
		}),
	})
	round.StartRound()

	stats := runStats{runIndex: runIndex, seed: seed}
	for round.ThrowsLeft() > 0 {
		targets := round.Targets()
		aim := game.NewVec3(0, 0, game.FrontRowZ)
		if len(targets) > 0 {
			aim = targets[rng.Intn(len(targets))].Position
		}
		aim.X += (rng.Float64()*2 - 1) * spread
		aim.Z += (rng.Float64()*2 - 1) * spread

		if err := round.Launch(game.AimVelocity(game.LaunchOrigin, aim)); err != nil {
			fmt.Printf("run %d: launch rejected: %v\n", runIndex, err)
			return stats
		}
		for f := 0; f < maxFramesPerThrow && round.LiveProjectiles() > 0; f++ {
			rep := round.FrameTick(1)
			stats.frames++
			stats.bounces += rep.Bounces
			stats.dropped += len(rep.Dropped)
			for _, h := range rep.Hits {
				if h.Tier == game.TierBonus {
					stats.bonusHit = true
				}
			}
		}
	}

	// Let the last particles fade; the completion check runs on the next tick at the latest.
	for f := 0; f < 60 && round.Status() == game.StatusActive; f++ {
		round.FrameTick(1)
		stats.frames++
	}
	reveals.flush()

	stats.completed = result != nil
	if result != nil {
		stats.score = result.Score
		stats.rank = result.Rank
		stats.hits = result.Hits
	}
	return stats
}

func printRun(s runStats) {
	bonus := "-"
	if s.bonusHit {
		bonus = "yes"
	}
	status := "complete"
	if !s.completed {
		status = "INCOMPLETE"
	}
	fmt.Printf("run %2d seed=%-6d score=%4d rank=%2d hits=%2d bonus=%-3s bounces=%3d dropped=%2d frames=%5d %s\n",
		s.runIndex, s.seed, s.score, s.rank, s.hits, bonus, s.bounces, s.dropped, s.frames, status)
}

type aggregate struct {
	meanScore   float64
	medianScore int
	minScore    int
	maxScore    int
	hitRate     float64
	bonusRate   float64
	ranked      int
	incomplete  int
}

func summarize(all []runStats) aggregate {
	if len(all) == 0 {
		return aggregate{}
	}
	scores := make([]int, 0, len(all))
	var agg aggregate
	totalHits := 0
	bonus := 0
	for _, s := range all {
		scores = append(scores, s.score)
		totalHits += s.hits
		if s.bonusHit {
			bonus++
		}
		if s.completed && s.rank <= 5 {
			agg.ranked++
		}
		if !s.completed {
			agg.incomplete++
		}
	}
	sort.Ints(scores)

	sum := 0
	for _, v := range scores {
		sum += v
	}
	agg.meanScore = float64(sum) / float64(len(scores))
	agg.medianScore = scores[len(scores)/2]
	agg.minScore = scores[0]
	agg.maxScore = scores[len(scores)-1]
	agg.hitRate = float64(totalHits) / float64(len(all)*game.ThrowBudget)
	agg.bonusRate = float64(bonus) / float64(len(all))
	return agg
}

func printAggregate(all []runStats) {
	agg := summarize(all)
	fmt.Printf("\n=== Aggregate ===\n")
	fmt.Printf("score: mean=%.1f median=%d min=%d max=%d (table max %d)\n",
		agg.meanScore, agg.medianScore, agg.minScore, agg.maxScore, game.MaxScore(game.StandardTable()))
	fmt.Printf("hit_rate=%.1f%% bonus_rounds=%.1f%% top5_ranks=%d incomplete=%d\n",
		agg.hitRate*100, agg.bonusRate*100, agg.ranked, agg.incomplete)
}
