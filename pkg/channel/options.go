package channel

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/brianbland/awgnsim/pkg/randomizer"
)

// DefaultChannels is the input width used when WithChannels is not given.
const DefaultChannels = 3

// Option configures a Channel at construction.
type Option func(*Channel)

// WithSeed fixes the generator seed. Without it the seed is derived from the
// clock at setup.
func WithSeed(seed uint32) Option {
	return func(c *Channel) {
		c.seed = seed
		c.hasSeed = true
	}
}

// WithNormalMethod selects the normal sampler.
func WithNormalMethod(m randomizer.NormalMethod) Option {
	return func(c *Channel) {
		c.method = m
	}
}

// WithChannels sets the expected input width.
func WithChannels(n int) Option {
	return func(c *Channel) {
		c.width = n
	}
}

// WithClock replaces time.Now for time-derived seeding.
func WithClock(clock func() time.Time) Option {
	return func(c *Channel) {
		c.clock = clock
	}
}

// WithLogger attaches a logger for lifecycle events.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Channel) {
		c.log = log
	}
}
