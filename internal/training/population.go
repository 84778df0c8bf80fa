package training

import (
	"context"
	"math"
	"math/rand/v2"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/oxidris/tetrisai/internal/boardfeature"
	"github.com/oxidris/tetrisai/internal/engine"
	"github.com/oxidris/tetrisai/internal/evaluator"
)

// Population owns a fixed board-feature set and a vector of Individuals
// competing over that feature space.
type Population struct {
	Features []*boardfeature.Feature
	Windows  map[string]boardfeature.Window
	Members  []Individual
}

// NewPopulation builds a population of size individuals, each weight drawn
// Uniform[0, maxWeight] and L1-normalized, fitness initialized to the
// lowest representable value so an unevaluated individual never wins a
// tournament by default.
func NewPopulation(features []*boardfeature.Feature, windows map[string]boardfeature.Window, size int, maxWeight float32, rng *rand.Rand) *Population {
	members := make([]Individual, size)
	for i := range members {
		members[i] = Individual{
			Weights: randomWeights(len(features), maxWeight, rng),
			Fitness: -math.MaxFloat32,
		}
	}
	return &Population{Features: features, Windows: windows, Members: members}
}

// SessionFitnessFunc reduces one individual's played-out sessions to a
// scalar fitness (e.g. evaluator.AggroFitness or evaluator.DefensiveFitness).
type SessionFitnessFunc func(stats evaluator.SessionStats, turnLimit int) float32

// Evaluate scores every individual by playing turnLimit-bounded sessions
// from a fresh clone of each of fields, averaging the resulting session
// fitness, then sorts Members descending by fitness. Individuals are
// evaluated concurrently, one goroutine per individual.
func (p *Population) Evaluate(ctx context.Context, fields []*engine.GameField, fitnessFn SessionFitnessFunc, turnLimit int) error {
	g, _ := errgroup.WithContext(ctx)
	for i := range p.Members {
		i := i
		g.Go(func() error {
			evalr := evaluator.NewWeightedSumEvaluator(p.Features, p.Windows, p.Members[i].Weights)
			var total float32
			for _, field := range fields {
				session := field.Clone()
				stats := evaluator.PlaySession(session, evalr, turnLimit)
				total += fitnessFn(stats, turnLimit)
			}
			p.Members[i].Fitness = total / float32(len(fields))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	sort.Slice(p.Members, func(a, b int) bool {
		return p.Members[a].Fitness > p.Members[b].Fitness
	})
	return nil
}

// Best returns the highest-fitness individual; Evaluate (or a prior Step)
// must have run first.
func (p *Population) Best() Individual {
	return p.Members[0]
}
