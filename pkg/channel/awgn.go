package channel

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/brianbland/awgnsim/pkg/randomizer"
)

// State is the lifecycle phase of a Channel
type State int

const (
	StateUnconfigured State = iota
	StateConfigured
	StateLocked
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateConfigured:
		return "configured"
	case StateLocked:
		return "locked"
	case StateReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Channel adds white gaussian noise to complex samples. Eb/N0 and signal
// power are tunable while locked; the generator, sampler and input width are
// fixed by Setup. A Channel is not safe for concurrent use.
type Channel struct {
	log     zerolog.Logger
	clock   func() time.Time
	method  randomizer.NormalMethod
	seed    uint32
	hasSeed bool
	width   int

	state          State
	ebN0           []float64
	signalPower    float64
	tunableChanged bool

	noise      *randomizer.GaussianNoise
	std        []float64
	varChannel bool
}

// New creates an unconfigured channel
func New(opts ...Option) *Channel {
	c := &Channel{
		log:    zerolog.Nop(),
		clock:  time.Now,
		method: randomizer.NormalMethodZiggurat,
		width:  DefaultChannels,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configure validates and stores Eb/N0 (dB, one value or one per channel) and
// the signal power (linear, watts). While locked the values take effect on
// the next Step.
func (c *Channel) Configure(ebN0 []float64, signalPower float64) error {
	if c.state == StateReleased {
		return fmt.Errorf("configure: %w", ErrCalledWhenReleased)
	}
	if err := validateEbN0(ebN0); err != nil {
		return fmt.Errorf("configure: EbNo: %w", err)
	}
	if err := validateSignalPower(signalPower); err != nil {
		return fmt.Errorf("configure: SignalPower: %w", err)
	}

	if c.state == StateLocked {
		if len(ebN0) != len(c.ebN0) {
			return fmt.Errorf("configure: cannot change Eb/N0 length from %d to %d while locked: %w",
				len(c.ebN0), len(ebN0), ErrBadChannelCount)
		}
		if !slices.Equal(ebN0, c.ebN0) || signalPower != c.signalPower {
			c.tunableChanged = true
		}
	}

	c.ebN0 = slices.Clone(ebN0)
	c.signalPower = signalPower
	if c.state == StateUnconfigured {
		c.state = StateConfigured
	}
	return nil
}

func validateEbN0(ebN0 []float64) error {
	if len(ebN0) == 0 {
		return ErrEmptyEbN0
	}
	for _, v := range ebN0 {
		if math.IsNaN(v) {
			return ErrNonNaNExpected
		}
		if math.IsInf(v, 0) {
			return ErrFiniteExpected
		}
	}
	return nil
}

func validateSignalPower(p float64) error {
	// NaN fails the positivity check first.
	if !(p > 0) {
		return ErrPositiveExpected
	}
	if math.IsNaN(p) {
		return ErrNonNaNExpected
	}
	if math.IsInf(p, 0) {
		return ErrFiniteExpected
	}
	return nil
}

// StandardDeviation returns sqrt(P / (2 * 10^(EbN0/10))) for each Eb/N0 value.
func StandardDeviation(ebN0 []float64, signalPower float64) ([]float64, error) {
	std := make([]float64, len(ebN0))
	for i, v := range ebN0 {
		std[i] = signalPower / (math.Pow(10, v/10) * 2)
	}
	for _, variance := range std {
		if variance < 0 {
			return nil, ErrNegativeSqrt
		}
	}
	for i := range std {
		std[i] = math.Sqrt(std[i])
	}
	return std, nil
}

// Setup locks the channel: it seeds the generator, selects the sampler,
// derives the per-channel standard deviation and fixes the input width.
func (c *Channel) Setup() error {
	switch c.state {
	case StateUnconfigured:
		return fmt.Errorf("setup: %w", ErrNotConfigured)
	case StateLocked, StateReleased:
		return fmt.Errorf("setup: %w", ErrAlreadyLocked)
	}

	if c.width < 1 {
		return fmt.Errorf("setup: input width %d: %w", c.width, ErrBadChannelCount)
	}
	if n := len(c.ebN0); n != 1 && n != c.width {
		return fmt.Errorf("setup: %d Eb/N0 values for %d channels: %w", n, c.width, ErrBadChannelCount)
	}
	std, err := StandardDeviation(c.ebN0, c.signalPower)
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	if c.tunableChanged {
		return fmt.Errorf("setup: %w", ErrTunablePropMismatch)
	}

	seed := c.seed
	if !c.hasSeed {
		seed = TimeSeed(c.clock())
	}

	c.seed = seed
	c.noise = randomizer.NewGaussianNoise(seed, 0, c.method)
	c.std = std
	c.varChannel = false
	c.state = StateLocked

	c.log.Debug().
		Uint32("seed", seed).
		Str("method", string(c.method)).
		Int("channels", c.width).
		Floats64("std", std).
		Msg("channel locked")
	return nil
}

// Reset reseeds the generator from the stored seed and drops the polar
// cache. It is a no-op on a configured channel that has not been set up.
func (c *Channel) Reset() error {
	switch c.state {
	case StateUnconfigured, StateReleased:
		return fmt.Errorf("reset: %w", ErrCalledWhenReleased)
	case StateConfigured:
		return nil
	}

	flag := c.tunableChanged
	c.reseed()
	if c.tunableChanged != flag {
		return fmt.Errorf("reset: %w", ErrTunablePropMismatch)
	}

	c.log.Debug().Uint32("seed", c.seed).Msg("channel reset")
	return nil
}

func (c *Channel) reseed() {
	seed := c.seed
	if seed == 0 {
		seed = randomizer.DefaultSeed
	}
	sampler := c.noise.Sampler()
	sampler.Source().Seed(seed)
	sampler.Reset()
}

// Step adds one complex noise sample to each input channel. A configured
// channel is set up and reset implicitly on the first call.
func (c *Channel) Step(input []complex128) ([]complex128, error) {
	switch c.state {
	case StateReleased:
		return nil, fmt.Errorf("step: %w", ErrCalledWhenReleased)
	case StateUnconfigured:
		return nil, fmt.Errorf("step: %w", ErrNotConfigured)
	}

	varChannel, err := c.checkInput(len(input))
	if err != nil {
		return nil, fmt.Errorf("step: %w", err)
	}

	std := c.std
	if c.state == StateLocked && c.tunableChanged {
		if std, err = StandardDeviation(c.ebN0, c.signalPower); err != nil {
			return nil, fmt.Errorf("step: %w", err)
		}
	}

	if c.state != StateLocked {
		if err := c.Setup(); err != nil {
			return nil, fmt.Errorf("step: %w", err)
		}
		if err := c.Reset(); err != nil {
			return nil, fmt.Errorf("step: %w", err)
		}
		std = c.std
	}

	if c.tunableChanged {
		c.tunableChanged = false
		c.std = std
		c.log.Debug().Floats64("std", std).Msg("tunable properties applied")
	}
	c.varChannel = varChannel

	out := make([]complex128, len(input))
	for k, x := range input {
		s := c.std[0]
		if len(c.std) > 1 {
			s = c.std[k]
		}
		y, err := c.noise.AddNoise(x, s)
		if err != nil {
			return nil, fmt.Errorf("step: %w: %w", ErrInvalidGeneratorState, err)
		}
		out[k] = y
	}
	return out, nil
}

// checkInput validates an input width without mutating the channel and
// reports whether the channel is now in variable-width mode.
func (c *Channel) checkInput(n int) (bool, error) {
	if n == 0 {
		return false, fmt.Errorf("empty input: %w", ErrBadChannelCount)
	}
	varChannel := c.state == StateLocked && c.varChannel
	if varChannel || n != c.width {
		if len(c.ebN0) != 1 {
			return false, fmt.Errorf("input width %d, expected %d: %w", n, c.width, ErrNonScalarForVarChannels)
		}
		return true, nil
	}
	return false, nil
}

// StepWithParams applies Eb/N0 and signal power when they differ from the
// stored values and then steps.
func (c *Channel) StepWithParams(ebN0 []float64, signalPower float64, input []complex128) ([]complex128, error) {
	if c.state == StateUnconfigured || !slices.Equal(ebN0, c.ebN0) || signalPower != c.signalPower {
		if err := c.Configure(ebN0, signalPower); err != nil {
			return nil, fmt.Errorf("step: %w", err)
		}
	}
	return c.Step(input)
}

// Release unlocks the channel for good. Only a locked channel changes state.
func (c *Channel) Release() error {
	if c.state == StateLocked {
		c.state = StateReleased
		c.log.Debug().Msg("channel released")
	}
	return nil
}

// State returns the lifecycle phase
func (c *Channel) State() State {
	return c.state
}

// Seed returns the seed in use. Before setup it is the explicit seed, if any.
func (c *Channel) Seed() uint32 {
	return c.seed
}

// StdDev returns the per-channel noise standard deviation fixed at the last
// setup or applied step.
func (c *Channel) StdDev() []float64 {
	return slices.Clone(c.std)
}

func (c *Channel) EbN0() []float64 {
	return slices.Clone(c.ebN0)
}

func (c *Channel) SignalPower() float64 {
	return c.signalPower
}

func (c *Channel) NormalMethod() randomizer.NormalMethod {
	return c.method
}

// Channels returns the expected input width
func (c *Channel) Channels() int {
	return c.width
}

// TunableChanged reports whether property changes are pending
func (c *Channel) TunableChanged() bool {
	return c.tunableChanged
}

// GeneratorState returns a copy of the generator state, or false before setup
func (c *Channel) GeneratorState() ([randomizer.StateLen]uint32, bool) {
	if c.noise == nil {
		return [randomizer.StateLen]uint32{}, false
	}
	return c.noise.Sampler().Source().State(), true
}
