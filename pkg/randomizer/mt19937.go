package randomizer

import (
	"errors"
)

const (
	stateWords  = 624
	twistOffset = 397
	matrixA     = 0x9908B0DF
	upperMask   = 0x80000000
	lowerMask   = 0x7FFFFFFF
	initMult    = 1812433253

	temperMaskB = 0x9D2C5680
	temperMaskC = 0xEFC60000

	// DefaultSeed is used whenever a zero seed is requested.
	DefaultSeed uint32 = 5489

	// StateLen is the length of the raw state vector: 624 words plus the index word.
	StateLen = stateWords + 1
)

// ErrInvalidState is returned when a uniform draw detects a corrupted generator.
var ErrInvalidState = errors.New("randomizer: invalid twister state")

// Source is the uniform stream consumed by the normal samplers.
type Source interface {
	Uint32() uint32
	Float64() (float64, error)
}

// Twister is a 32-bit Mersenne Twister (MT19937). The last state word holds
// the number of words already consumed from the current block.
type Twister struct {
	seed  uint32
	state [StateLen]uint32
}

// NewTwister creates a generator seeded with seed.
func NewTwister(seed uint32) *Twister {
	t := &Twister{}
	t.Seed(seed)
	return t
}

// Seed reinitializes the state from seed. The seed is stored verbatim; callers
// that map zero to DefaultSeed do so before calling.
func (t *Twister) Seed(seed uint32) {
	t.seed = seed
	r := seed
	t.state[0] = r
	for i := 1; i < stateWords; i++ {
		r = (r^(r>>30))*initMult + uint32(i)
		t.state[i] = r
	}
	t.state[stateWords] = stateWords
}

// SeedValue returns the seed last passed to Seed.
func (t *Twister) SeedValue() uint32 {
	return t.seed
}

func (t *Twister) twist() {
	mt := &t.state
	var y uint32
	for kk := 0; kk < stateWords-twistOffset; kk++ {
		y = (mt[kk] & upperMask) | (mt[kk+1] & lowerMask)
		mt[kk] = mt[kk+twistOffset] ^ mix(y)
	}
	for kk := stateWords - twistOffset; kk < stateWords-1; kk++ {
		y = (mt[kk] & upperMask) | (mt[kk+1] & lowerMask)
		mt[kk] = mt[kk+twistOffset-stateWords] ^ mix(y)
	}
	y = (mt[stateWords-1] & upperMask) | (mt[0] & lowerMask)
	mt[stateWords-1] = mt[twistOffset-1] ^ mix(y)
}

func mix(y uint32) uint32 {
	if y&1 == 0 {
		return y >> 1
	}
	return (y >> 1) ^ matrixA
}

// Uint32 returns the next tempered 32-bit output.
func (t *Twister) Uint32() uint32 {
	// Widened so an injected index of 0xFFFFFFFF cannot wrap to zero.
	next := uint64(t.state[stateWords]) + 1
	if next >= StateLen {
		t.twist()
		next = 1
	}
	y := t.state[next-1]
	t.state[stateWords] = uint32(next)

	y ^= y >> 11
	y ^= (y << 7) & temperMaskB
	y ^= (y << 15) & temperMaskC
	y ^= y >> 18
	return y
}

// Float64 returns a uniform double in (0,1) with 53 bits of precision built
// from two consecutive outputs. A zero draw is retried unless the state is
// invalid, in which case ErrInvalidState is returned.
func (t *Twister) Float64() (float64, error) {
	for {
		a := t.Uint32() >> 5
		b := t.Uint32() >> 6
		r := 1.1102230246251565e-16 * (float64(a)*67108864.0 + float64(b))
		if r != 0 {
			return r, nil
		}
		if !t.Valid() {
			return 0, ErrInvalidState
		}
	}
}

// Valid reports whether the index word is in [1,624] and at least one state
// word is non-zero.
func (t *Twister) Valid() bool {
	return ValidState(t.state)
}

// ValidState applies the Valid check to a raw state vector.
func ValidState(state [StateLen]uint32) bool {
	if idx := state[stateWords]; idx < 1 || idx > stateWords {
		return false
	}
	for _, w := range state[:stateWords] {
		if w != 0 {
			return true
		}
	}
	return false
}

// State returns a copy of the raw state vector.
func (t *Twister) State() [StateLen]uint32 {
	return t.state
}

// SetState overwrites the raw state vector. No validation is performed so
// that corrupted states can be injected and detected by Float64. Any index
// word at or past the end of the state forces a twist on the next draw.
func (t *Twister) SetState(state [StateLen]uint32) {
	t.state = state
}
