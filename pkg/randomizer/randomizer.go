package randomizer

// Randomizer perturbs a single complex sample
type Randomizer interface {
	AddRandomness(x complex128) (complex128, error)
}

// CompoundRandomizer applies several randomizers in order
type CompoundRandomizer struct {
	randomizers []Randomizer
}

func NewCompoundRandomizer(randomizers ...Randomizer) *CompoundRandomizer {
	return &CompoundRandomizer{randomizers: randomizers}
}

func (r *CompoundRandomizer) AddRandomness(x complex128) (complex128, error) {
	var err error
	for _, randomizer := range r.randomizers {
		x, err = randomizer.AddRandomness(x)
		if err != nil {
			return 0, err
		}
	}
	return x, nil
}
