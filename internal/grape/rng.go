package grape

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource is the only randomness the draw needs: uniform index picks.
type RandomSource interface {
	IntN(n int) int // [0, n)
}

// crypto random : default for interactive play
type cryptoRNG struct{}

func (cryptoRNG) IntN(n int) int {
	if n <= 0 {
		panic("grape: IntN called with n <= 0")
	}
	// rejection sampling keeps the result unbiased
	un := uint64(n)
	limit := ^uint64(0) - (^uint64(0) % un)
	for {
		v := cryptoUint64()
		if v < limit {
			return int(v % un)
		}
	}
}

func cryptoUint64() uint64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		// back to math/rand/v2
		return rand.Uint64()
	}
	return binary.BigEndian.Uint64(buf[:])
}

func DefaultRNG() RandomSource { return cryptoRNG{} }

// NewSeed returns a fresh 64-bit seed for runs where the caller supplied none.
func NewSeed() uint64 { return cryptoUint64() }

// Replicable RNG (e.g. Monte Carlo)
type seededRNG struct{ r *rand.Rand }

func NewSeededRNG(seed uint64) RandomSource {
	return NewStreamRNG(seed, 0)
}

// NewStreamRNG returns an independent PCG stream; trials of one run share the seed
// and differ by stream.
func NewStreamRNG(seed, stream uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, stream))}
}

func (s *seededRNG) IntN(n int) int { return s.r.IntN(n) }
