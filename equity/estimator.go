// Package equity implements unbiased Monte-Carlo equity estimation for
// hero-vs-random or hero-vs-specified-opponent rollouts (spec.md §4.2).
// The rollout loop and range-sampling shape are grounded on the
// reference pack's equity.go (lox-pokerforbots/internal/evaluator),
// reworked over this module's cards/handeval types and parallelized
// with golang.org/x/sync/errgroup the same way.
package equity

import (
	"context"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"holdem-engine/cards"
	"holdem-engine/handeval"
)

// Bounds clamp trial counts per spec.md §4.2.
const (
	MinTrials      = 100
	MaxTrainTrials = 300
	MaxEvalTrials  = 2000

	DefaultTrainTrials = 180
	DefaultEvalTrials  = 600
)

// ClampTrain clamps n to the training trial range [100, 300].
func ClampTrain(n int) int { return clamp(n, MinTrials, MaxTrainTrials) }

// ClampEval clamps n to the decision-time trial range [100, 2000].
func ClampEval(n int) int { return clamp(n, MinTrials, MaxEvalTrials) }

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// Result is the outcome of a rollout.
type Result struct {
	Equity  float64
	Samples int
}

// Estimate runs a Monte-Carlo rollout for hero against either a
// specific opponent hand (len(opp)==2) or a uniformly random one
// (opp==nil), filling the board out to five cards from the remaining
// deck. It is the single-goroutine workhorse; EstimateParallel splits
// trials across goroutines.
func Estimate(rng *rand.Rand, hero, board, opp []cards.Card, trials int) Result {
	if len(hero) != 2 {
		return Result{Equity: 0.5, Samples: 0}
	}

	used := make([]cards.Card, 0, 9)
	used = append(used, hero...)
	used = append(used, board...)
	used = append(used, opp...)
	avail := cards.Remove(cards.All(), used...)

	knownOpp := len(opp) == 2
	needBoard := 5 - len(board)

	wins, ties := 0.0, 0
	for t := 0; t < trials; t++ {
		pool := make([]cards.Card, len(avail))
		copy(pool, avail)
		rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

		idx := 0
		oppHand := opp
		if !knownOpp {
			oppHand = []cards.Card{pool[idx], pool[idx+1]}
			idx += 2
		}
		fullBoard := make([]cards.Card, 0, 5)
		fullBoard = append(fullBoard, board...)
		fullBoard = append(fullBoard, pool[idx:idx+needBoard]...)

		heroRank := handeval.Evaluate(hero, fullBoard)
		oppRank := handeval.Evaluate(oppHand, fullBoard)
		switch cmp := handeval.Compare(heroRank, oppRank); {
		case cmp > 0:
			wins++
		case cmp == 0:
			wins += 0.5
			ties++
		}
	}

	if trials == 0 {
		return Result{Equity: 0.5, Samples: 0}
	}
	return Result{Equity: wins / float64(trials), Samples: trials}
}

// EstimateParallel splits trials across GOMAXPROCS workers and combines
// their win/tie counts, following the worker/errgroup shape used for
// equity rollouts in the reference pack.
func EstimateParallel(seed int64, hero, board, opp []cards.Card, trials int) Result {
	if len(hero) != 2 {
		return Result{Equity: 0.5, Samples: 0}
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > trials {
		workers = trials
	}
	if workers < 1 {
		workers = 1
	}
	per := trials / workers
	extra := trials % workers

	g, _ := errgroup.WithContext(context.Background())
	type partial struct {
		wins    float64
		samples int
	}
	results := make([]partial, workers)
	for w := 0; w < workers; w++ {
		w := w
		n := per
		if w < extra {
			n++
		}
		g.Go(func() error {
			if n == 0 {
				return nil
			}
			rng := rand.New(rand.NewSource(seed + int64(w) + 1))
			r := Estimate(rng, hero, board, opp, n)
			results[w] = partial{wins: r.Equity * float64(n), samples: n}
			return nil
		})
	}
	_ = g.Wait()

	totalWins, totalSamples := 0.0, 0
	for _, p := range results {
		totalWins += p.wins
		totalSamples += p.samples
	}
	if totalSamples == 0 {
		return Result{Equity: 0.5, Samples: 0}
	}
	return Result{Equity: totalWins / float64(totalSamples), Samples: totalSamples}
}
