package randomizer

// BurstRandomizer adds impulsive noise bursts on top of a sample stream.
// Outside a burst samples pass through unchanged.
type BurstRandomizer struct {
	noise *GaussianNoise

	// Config
	burstProbability float64
	burstDurationMin int
	burstDurationMax int
	burstIntensity   float64

	// State
	inBurstMode      bool
	burstSamplesLeft int
}

func NewBurstRandomizer(seed uint32, burstProbability float64, burstDurationMin int, burstDurationMax int, burstIntensity float64) *BurstRandomizer {
	// An inverted range collapses to the minimum.
	if burstDurationMax < burstDurationMin {
		burstDurationMax = burstDurationMin
	}
	return &BurstRandomizer{
		noise:            NewGaussianNoise(seed, burstIntensity, NormalMethodZiggurat),
		burstProbability: burstProbability,
		burstDurationMin: burstDurationMin,
		burstDurationMax: burstDurationMax,
		burstIntensity:   burstIntensity,
		inBurstMode:      false,
		burstSamplesLeft: 0,
	}
}

func (s *BurstRandomizer) Reset() {
	s.inBurstMode = false
	s.burstSamplesLeft = 0
}

// InBurst reports whether the last sample was inside a burst
func (s *BurstRandomizer) InBurst() bool {
	return s.inBurstMode
}

func (s *BurstRandomizer) AddRandomness(x complex128) (complex128, error) {
	if s.burstProbability == 0 {
		return x, nil
	}

	if s.inBurstMode {
		s.burstSamplesLeft--
		if s.burstSamplesLeft <= 0 {
			s.inBurstMode = false
		}
	} else {
		u, err := s.noise.Sampler().Source().Float64()
		if err != nil {
			return 0, err
		}
		if u < s.burstProbability {
			s.inBurstMode = true
			span := uint32(s.burstDurationMax - s.burstDurationMin + 1)
			s.burstSamplesLeft = s.burstDurationMin + int(s.noise.Sampler().Source().Uint32()%span)
		}
	}

	if s.inBurstMode {
		return s.noise.AddNoise(x, s.burstIntensity)
	}
	return x, nil
}
