package training

import "math/rand/v2"

// Params bundles the knobs of one evolution step (spec §4.10).
type Params struct {
	EliteCount     int
	TournamentSize int
	MaxWeight      float32
	MutationSigma  float32
	BLXAlpha       float32
	MutationRate   float32
}

// Step produces the next generation: the top EliteCount individuals are
// copied verbatim, and the rest are filled by tournament selection, BLX-α
// crossover, Gaussian mutation, and L1-normalization, until the population
// size is restored. p.Members must already be sorted descending by fitness
// (Evaluate does this).
func (p *Population) Step(params Params, rng *rand.Rand) {
	size := len(p.Members)
	next := make([]Individual, 0, size)
	for i := 0; i < params.EliteCount && i < size; i++ {
		next = append(next, p.Members[i].clone())
	}
	for len(next) < size {
		parent1 := tournamentSelect(p.Members, params.TournamentSize, rng)
		parent2 := tournamentSelect(p.Members, params.TournamentSize, rng)
		childWeights := blxAlpha(parent1.Weights, parent2.Weights, params.BLXAlpha, params.MaxWeight, rng)
		mutate(childWeights, params.MutationRate, params.MutationSigma, params.MaxWeight, rng)
		normalizeL1(childWeights)
		next = append(next, Individual{Weights: childWeights, Fitness: 0})
	}
	p.Members = next
}

// tournamentSelect samples tournamentSize individuals uniformly without
// replacement from pool and returns the one with the highest fitness.
func tournamentSelect(pool []Individual, tournamentSize int, rng *rand.Rand) Individual {
	if tournamentSize > len(pool) {
		tournamentSize = len(pool)
	}
	perm := rng.Perm(len(pool))
	best := pool[perm[0]]
	for _, idx := range perm[1:tournamentSize] {
		if pool[idx].Fitness > best.Fitness {
			best = pool[idx]
		}
	}
	return best
}
