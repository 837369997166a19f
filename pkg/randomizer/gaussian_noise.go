package randomizer

import (
	"math"
)

// GaussianNoise provides unit-power complex gaussian noise
type GaussianNoise struct {
	sampler *NormalSampler
	stdDev  float64
}

// NewGaussianNoise creates a new gaussian noise generator seeded with seed.
// A zero seed selects DefaultSeed.
func NewGaussianNoise(seed uint32, stdDev float64, method NormalMethod) *GaussianNoise {
	if seed == 0 {
		seed = DefaultSeed
	}
	return NewGaussianNoiseFromSampler(NewNormalSampler(NewTwister(seed), method), stdDev)
}

// NewGaussianNoiseFromSampler wraps an existing sampler
func NewGaussianNoiseFromSampler(sampler *NormalSampler, stdDev float64) *GaussianNoise {
	return &GaussianNoise{sampler: sampler, stdDev: stdDev}
}

// Sampler returns the underlying normal sampler
func (g *GaussianNoise) Sampler() *NormalSampler {
	return g.sampler
}

// Complex draws the real part then the imaginary part and scales both by
// 1/sqrt(2), giving E|n|² = 1.
func (g *GaussianNoise) Complex() (complex128, error) {
	re, err := g.sampler.Next()
	if err != nil {
		return 0, err
	}
	im, err := g.sampler.Next()
	if err != nil {
		return 0, err
	}
	return complex(re/math.Sqrt2, im/math.Sqrt2), nil
}

// AddNoise returns x plus complex noise scaled by stdDev
func (g *GaussianNoise) AddNoise(x complex128, stdDev float64) (complex128, error) {
	n, err := g.Complex()
	if err != nil {
		return 0, err
	}
	return complex(real(x)+stdDev*real(n), imag(x)+stdDev*imag(n)), nil
}

// AddRandomness adds noise at the generator's own standard deviation
func (g *GaussianNoise) AddRandomness(x complex128) (complex128, error) {
	if g.stdDev == 0 {
		return x, nil
	}
	return g.AddNoise(x, g.stdDev)
}
