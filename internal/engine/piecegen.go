package engine

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
)

// PieceSeed is the 128-bit deterministic seed for a Generator, serialized
// as a 32-character lowercase hex string (spec §6).
type PieceSeed [16]byte

// String renders the seed as 32 lowercase hex characters.
func (s PieceSeed) String() string {
	return hex.EncodeToString(s[:])
}

// ParsePieceSeed parses the 32-hex-character encoding produced by String.
func ParsePieceSeed(s string) (PieceSeed, error) {
	var seed PieceSeed
	if len(s) != 32 {
		return seed, fmt.Errorf("malformed piece seed %q: want 32 hex characters, got %d", s, len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return seed, fmt.Errorf("malformed piece seed %q: %w", s, err)
	}
	copy(seed[:], raw)
	return seed, nil
}

// minBagSize is the threshold at which the generator refills the bag: a bag
// holding minBagSize or fewer entries is refilled, so the ring always holds
// more than numKinds entries.
const minBagSize = numKinds

// Generator produces an infinite 7-bag-randomized stream of piece kinds and
// implements the hold system. It is deterministic given its seed.
type Generator struct {
	seed PieceSeed
	pcg  rand.PCG
	bag  []Kind
	hold *Kind
}

// NewGenerator creates a generator from a 128-bit seed, derived as two
// big-endian uint64 halves feeding a stdlib PCG source (see DESIGN.md for
// why this uses the standard library rather than a third-party PRNG).
func NewGenerator(seed PieceSeed) *Generator {
	s1 := binary.BigEndian.Uint64(seed[0:8])
	s2 := binary.BigEndian.Uint64(seed[8:16])
	g := &Generator{
		seed: seed,
		pcg:  *rand.NewPCG(s1, s2),
	}
	g.refill()
	return g
}

// Seed returns the generator's seed.
func (g *Generator) Seed() PieceSeed {
	return g.seed
}

// refill pushes shuffled 7-kind permutations until the bag holds more than
// numKinds entries.
func (g *Generator) refill() {
	for len(g.bag) <= minBagSize {
		perm := AllKinds()
		rand.New(&g.pcg).Shuffle(len(perm), func(i, j int) {
			perm[i], perm[j] = perm[j], perm[i]
		})
		g.bag = append(g.bag, perm[:]...)
	}
}

// PopNext removes and returns the head of the bag, refilling as needed.
func (g *Generator) PopNext() Kind {
	k := g.bag[0]
	g.bag = g.bag[1:]
	g.refill()
	return k
}

// PeekNext returns the head of the bag without removing it.
func (g *Generator) PeekNext() Kind {
	return g.bag[0]
}

// PeekHoldResult returns the kind that would become the falling piece if
// hold were used right now, without mutating any state: the held kind if
// one exists, otherwise the bag head.
func (g *Generator) PeekHoldResult(current Kind) Kind {
	if g.hold != nil {
		return *g.hold
	}
	return g.PeekNext()
}

// Hold performs the hold swap: if no kind is currently held, current is
// installed as held and the popped next kind is returned; otherwise
// current is swapped with the held kind and the previously held kind is
// returned.
func (g *Generator) Hold(current Kind) Kind {
	if g.hold == nil {
		next := g.PopNext()
		held := current
		g.hold = &held
		return next
	}
	prev := *g.hold
	held := current
	g.hold = &held
	return prev
}
