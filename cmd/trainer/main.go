// Command trainer runs the genetic board-feature trainer: it builds a
// population of weight vectors, plays sessions against the bitboard
// engine to score each one, evolves the population across generations, and
// saves the fittest individual as an AI model.
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/oxidris/tetrisai/internal/boardfeature"
	"github.com/oxidris/tetrisai/internal/engine"
	"github.com/oxidris/tetrisai/internal/evaluator"
	"github.com/oxidris/tetrisai/internal/modelio"
	"github.com/oxidris/tetrisai/internal/parameters"
	"github.com/oxidris/tetrisai/internal/stats"
	"github.com/oxidris/tetrisai/internal/training"
)

// config holds every trainer knob pulled out of the Params configuration
// string, with the defaults used when a key is omitted.
type config struct {
	popSize        int
	generations    int
	eliteCount     int
	tournamentSize int
	maxWeight      float32
	mutationSigma  float32
	blxAlpha       float32
	mutationRate   float32
	turnLimit      int
	fieldsPerEval  int
	fitnessName    string
	modelFile      string
	gaSeed1        int
	gaSeed2        int
}

func configFromParams(params parameters.Params) config {
	c := config{}
	c.popSize = must.M1(parameters.PopParamOr(params, "pop_size", 30))
	c.generations = must.M1(parameters.PopParamOr(params, "generations", 50))
	c.eliteCount = must.M1(parameters.PopParamOr(params, "elite_count", 2))
	c.tournamentSize = must.M1(parameters.PopParamOr(params, "tournament_size", 2))
	c.maxWeight = must.M1(parameters.PopParamOr(params, "max_weight", float32(1.0)))
	c.mutationSigma = must.M1(parameters.PopParamOr(params, "mutation_sigma", float32(0.1)))
	c.blxAlpha = must.M1(parameters.PopParamOr(params, "blx_alpha", float32(0.2)))
	c.mutationRate = must.M1(parameters.PopParamOr(params, "mutation_rate", float32(0.3)))
	c.turnLimit = must.M1(parameters.PopParamOr(params, "turn_limit", 200))
	c.fieldsPerEval = must.M1(parameters.PopParamOr(params, "fields_per_eval", 4))
	c.fitnessName = must.M1(parameters.PopParamOr(params, "fitness", "aggro"))
	c.modelFile = must.M1(parameters.PopParamOr(params, "model_file", "model.txt"))
	c.gaSeed1 = must.M1(parameters.PopParamOr(params, "ga_seed1", 1))
	c.gaSeed2 = must.M1(parameters.PopParamOr(params, "ga_seed2", 2))
	return c
}

func fitnessFuncFor(name string) training.SessionFitnessFunc {
	switch name {
	case "defensive":
		return evaluator.DefensiveFitness
	case "aggro":
		return evaluator.AggroFitness
	default:
		klog.Fatalf("unknown fitness %q, want \"aggro\" or \"defensive\"", name)
		return nil
	}
}

// newPieceSeed derives a reproducible PieceSeed from two uint64 halves,
// mirroring how internal/engine.PieceSeed is encoded for recorded sessions.
func newPieceSeed(a, b uint64) engine.PieceSeed {
	var seed engine.PieceSeed
	binary.BigEndian.PutUint64(seed[:8], a)
	binary.BigEndian.PutUint64(seed[8:], b)
	return seed
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		klog.Info("interrupt received, finishing current generation then saving")
		cancel()
	}()

	params := parameters.Params(parameters.NewFromConfigString(flag.Arg(0)))
	c := configFromParams(params)
	fitnessFn := fitnessFuncFor(c.fitnessName)

	features := boardfeature.AllBoardFeatures()
	windows := defaultWindows(features, c.maxWeight)

	gaRNG := rand.New(rand.NewPCG(uint64(c.gaSeed1), uint64(c.gaSeed2)))
	pop := training.NewPopulation(features, windows, c.popSize, c.maxWeight, gaRNG)

	fields := make([]*engine.GameField, c.fieldsPerEval)
	for i := range fields {
		fields[i] = engine.NewGameField(newPieceSeed(uint64(c.gaSeed1), uint64(i+1)))
	}

	var best training.Individual
	for gen := 0; gen < c.generations; gen++ {
		select {
		case <-ctx.Done():
			klog.Infof("stopping at generation %d", gen)
			goto done
		default:
		}
		if err := pop.Evaluate(ctx, fields, fitnessFn, c.turnLimit); err != nil {
			klog.Fatalf("generation %d: fitness evaluation failed: %+v", gen, err)
		}
		best = pop.Best()
		logGeneration(gen, pop)
		if gen < c.generations-1 {
			pop.Step(training.Params{
				EliteCount:     c.eliteCount,
				TournamentSize: c.tournamentSize,
				MaxWeight:      c.maxWeight,
				MutationSigma:  c.mutationSigma,
				BLXAlpha:       c.blxAlpha,
				MutationRate:   c.mutationRate,
			}, gaRNG)
		}
	}
done:
	if best.Weights == nil {
		best = pop.Best()
	}
	saveModel(c.modelFile, features, windows, best)
}

// logGeneration reports the population's fitness distribution with the
// descriptive-statistics pipeline, the same way the teacher's trainer loop
// logs per-epoch loss summaries.
func logGeneration(gen int, pop *training.Population) {
	fitnesses := make([]float64, len(pop.Members))
	for i, ind := range pop.Members {
		fitnesses[i] = float64(ind.Fitness)
	}
	klog.Infof("generation %d: best=%.4f mean=%.4f stddev=%.4f worst=%.4f",
		gen, fitnesses[0], stats.Mean(fitnesses), stats.StdDev(fitnesses), fitnesses[len(fitnesses)-1])
}

// defaultWindows seeds every feature's normalization window with
// [0, maxWeight*4] as a bootstrap range. The trainer uses these windows as
// they are; it does not load internal/normparams output.
func defaultWindows(features []*boardfeature.Feature, maxWeight float32) map[string]boardfeature.Window {
	windows := make(map[string]boardfeature.Window, len(features))
	for _, f := range features {
		windows[f.ID()] = boardfeature.Window{Min: 0, Max: maxWeight * 4}
	}
	return windows
}

func saveModel(fileName string, features []*boardfeature.Feature, windows map[string]boardfeature.Window, best training.Individual) {
	records := make([]modelio.FeatureRecord, len(features))
	for i, f := range features {
		w := windows[f.ID()]
		records[i] = modelio.FeatureRecord{
			ID:       f.ID(),
			Name:     f.ID(),
			SourceID: f.SourceID(),
			Weight:   best.Weights[i],
			Processing: modelio.Processing{
				Kind:     modelio.Linear,
				Min:      w.Min,
				Max:      w.Max,
				Negative: f.Negative(),
			},
		}
	}
	m := &modelio.Model{
		Name:         "tetrisai-trained",
		FinalFitness: best.Fitness,
		Features:     records,
		FileName:     fileName,
	}
	if err := m.Save(); err != nil {
		klog.Fatalf("failed to save model to %s: %+v", fileName, err)
	}
	fmt.Printf("saved model to %s (fitness=%.4f)\n", fileName, best.Fitness)
}
