package seqio

import (
	"math/rand/v2"
	"time"

	"github.com/agbru/rnafold/internal/nussinov"
)

// Alphabet is the set random sequences are drawn from.
const Alphabet = "AUGC"

// NewRand returns a PCG generator. A zero seed picks one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Random draws a sequence of the given length uniformly from Alphabet.
func Random(length int, rng *rand.Rand) nussinov.Sequence {
	if length <= 0 {
		return nussinov.Sequence{}
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = Alphabet[rng.IntN(len(Alphabet))]
	}
	return nussinov.Sequence(b)
}

// RandomRecord wraps Random with a descriptive ID.
func RandomRecord(length int, rng *rand.Rand) Record {
	return Record{ID: "random", Seq: Random(length, rng)}
}
