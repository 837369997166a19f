package channel_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianbland/awgnsim/pkg/channel"
	"github.com/brianbland/awgnsim/pkg/randomizer"
)

var ones = []complex128{1, 1, 1}

func newLocked(t *testing.T, opts ...channel.Option) *channel.Channel {
	t.Helper()
	c := channel.New(append([]channel.Option{channel.WithSeed(randomizer.DefaultSeed)}, opts...)...)
	require.NoError(t, c.Configure([]float64{3, 3, 3}, 1))
	require.NoError(t, c.Setup())
	return c
}

func TestGoldenFirstStep(t *testing.T) {
	c := newLocked(t)
	std := c.StdDev()
	require.Len(t, std, 3)
	for _, s := range std {
		assert.InDelta(t, 0.5005932648504534, s, 1e-15)
	}

	out, err := c.Step(ones)
	require.NoError(t, err)

	want := []complex128{
		complex(1.1903195924217698, 0.6491455825639174),
		complex(0.20042944359156223, 0.3051859837815429),
		complex(1.112834253883182, -0.4628862083288969),
	}
	for k := range want {
		assert.InDelta(t, real(want[k]), real(out[k]), 1e-12, "channel %d re", k)
		assert.InDelta(t, imag(want[k]), imag(out[k]), 1e-12, "channel %d im", k)
	}
}

func TestImplicitSetupMatchesExplicit(t *testing.T) {
	explicit := newLocked(t)
	want, err := explicit.Step(ones)
	require.NoError(t, err)

	implicit := channel.New(channel.WithSeed(randomizer.DefaultSeed))
	require.NoError(t, implicit.Configure([]float64{3, 3, 3}, 1))
	got, err := implicit.Step(ones)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, channel.StateLocked, implicit.State())
}

func TestResetIsIdempotent(t *testing.T) {
	for _, method := range []randomizer.NormalMethod{
		randomizer.NormalMethodZiggurat,
		randomizer.NormalMethodPolar,
		randomizer.NormalMethodInversion,
	} {
		t.Run(string(method), func(t *testing.T) {
			c := newLocked(t, channel.WithNormalMethod(method))
			_, err := c.Step(ones)
			require.NoError(t, err)

			require.NoError(t, c.Reset())
			once := stepN(t, c, 5)

			require.NoError(t, c.Reset())
			require.NoError(t, c.Reset())
			twice := stepN(t, c, 5)

			assert.Equal(t, once, twice)
		})
	}
}

func stepN(t *testing.T, c *channel.Channel, n int) [][]complex128 {
	t.Helper()
	out := make([][]complex128, n)
	for i := range out {
		y, err := c.Step(ones)
		require.NoError(t, err)
		out[i] = y
	}
	return out
}

func TestZeroSeedUsesDefault(t *testing.T) {
	a := channel.New(channel.WithSeed(0))
	require.NoError(t, a.Configure([]float64{3}, 1))
	b := channel.New(channel.WithSeed(randomizer.DefaultSeed))
	require.NoError(t, b.Configure([]float64{3}, 1))

	ya, err := a.Step(ones)
	require.NoError(t, err)
	yb, err := b.Step(ones)
	require.NoError(t, err)
	assert.Equal(t, yb, ya)
}

func TestTimeDerivedSeed(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 34, 56, 0, time.UTC)
	c := channel.New(channel.WithClock(func() time.Time { return now }))
	require.NoError(t, c.Configure([]float64{10}, 1))
	require.NoError(t, c.Setup())
	assert.Equal(t, uint32(1043843422), c.Seed())
}

func TestNoisePower(t *testing.T) {
	c := channel.New(channel.WithSeed(77))
	ebN0 := []float64{0, 3, 10}
	require.NoError(t, c.Configure(ebN0, 2))
	require.NoError(t, c.Setup())
	std := c.StdDev()

	const n = 40000
	in := []complex128{complex(1, 1), complex(-1, 1), 0}
	power := make([]float64, 3)
	for i := 0; i < n; i++ {
		out, err := c.Step(in)
		require.NoError(t, err)
		for k := range out {
			d := out[k] - in[k]
			power[k] += real(d)*real(d) + imag(d)*imag(d)
		}
	}
	for k := range power {
		want := std[k] * std[k]
		assert.InDelta(t, want, power[k]/n, 0.03*want, "channel %d", k)
	}
}

func TestConfigureValidation(t *testing.T) {
	tests := []struct {
		name  string
		ebN0  []float64
		power float64
		want  error
	}{
		{"zero power", []float64{3}, 0, channel.ErrPositiveExpected},
		{"negative power", []float64{3}, -1, channel.ErrPositiveExpected},
		{"nan power", []float64{3}, math.NaN(), channel.ErrPositiveExpected},
		{"infinite power", []float64{3}, math.Inf(1), channel.ErrFiniteExpected},
		{"nan ebn0", []float64{3, math.NaN(), 3}, 1, channel.ErrNonNaNExpected},
		{"empty ebn0", nil, 1, channel.ErrEmptyEbN0},
		{"+inf ebn0", []float64{3, math.Inf(1), 3}, 1, channel.ErrFiniteExpected},
		{"-inf ebn0", []float64{math.Inf(-1)}, 1, channel.ErrFiniteExpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := channel.New()
			err := c.Configure(tt.ebN0, tt.power)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, channel.KindInvalidArgument, channel.KindOf(err))
			assert.Equal(t, channel.StateUnconfigured, c.State())
		})
	}
}

func TestConfigureFailureLeavesStateUnchanged(t *testing.T) {
	c := newLocked(t)
	err := c.Configure([]float64{1, 2, 3}, -2)
	require.ErrorIs(t, err, channel.ErrPositiveExpected)
	assert.Equal(t, []float64{3, 3, 3}, c.EbN0())
	assert.Equal(t, 1.0, c.SignalPower())
	assert.False(t, c.TunableChanged())
}

func TestLifecycleErrors(t *testing.T) {
	c := channel.New(channel.WithSeed(1))

	err := c.Setup()
	assert.ErrorIs(t, err, channel.ErrNotConfigured)
	err = c.Reset()
	assert.ErrorIs(t, err, channel.ErrCalledWhenReleased)
	_, err = c.Step(ones)
	assert.ErrorIs(t, err, channel.ErrNotConfigured)

	require.NoError(t, c.Configure([]float64{3}, 1))
	require.NoError(t, c.Reset(), "reset before setup is a no-op")
	assert.Equal(t, channel.StateConfigured, c.State())

	require.NoError(t, c.Setup())
	err = c.Setup()
	assert.ErrorIs(t, err, channel.ErrAlreadyLocked)
	assert.Equal(t, channel.KindInvalidState, channel.KindOf(err))

	require.NoError(t, c.Release())
	assert.Equal(t, channel.StateReleased, c.State())

	_, err = c.Step(ones)
	assert.ErrorIs(t, err, channel.ErrCalledWhenReleased)
	assert.ErrorIs(t, c.Reset(), channel.ErrCalledWhenReleased)
	assert.ErrorIs(t, c.Setup(), channel.ErrAlreadyLocked)
	assert.ErrorIs(t, c.Configure([]float64{3}, 1), channel.ErrCalledWhenReleased)
	assert.NoError(t, c.Release())
}

func TestChannelCountValidation(t *testing.T) {
	c := channel.New(channel.WithSeed(1))
	require.NoError(t, c.Configure([]float64{3, 3}, 1))
	err := c.Setup()
	require.ErrorIs(t, err, channel.ErrBadChannelCount)
	assert.Equal(t, channel.KindInvalidConfig, channel.KindOf(err))
	assert.Equal(t, "awgn:invalidSignalInputNumChan", channel.IDOf(err))
	assert.Equal(t, channel.StateConfigured, c.State())

	_, err = c.Step(ones)
	require.Error(t, err)
	assert.Equal(t, channel.StateConfigured, c.State())

	narrow := channel.New(channel.WithSeed(1), channel.WithChannels(2))
	require.NoError(t, narrow.Configure([]float64{3, 6}, 1))
	out, err := narrow.Step([]complex128{1, 1})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestVariableWidthRequiresScalarEbN0(t *testing.T) {
	c := newLocked(t)
	_, err := c.Step([]complex128{1, 1})
	require.ErrorIs(t, err, channel.ErrNonScalarForVarChannels)

	_, err = c.Step(nil)
	require.ErrorIs(t, err, channel.ErrBadChannelCount)

	scalar := channel.New(channel.WithSeed(1))
	require.NoError(t, scalar.Configure([]float64{3}, 1))
	out, err := scalar.Step([]complex128{1, 1, 1, 1, 1})
	require.NoError(t, err)
	assert.Len(t, out, 5)
	out, err = scalar.Step(ones)
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

func TestTunablePropertiesApplyOnStep(t *testing.T) {
	c := newLocked(t)
	before := c.StdDev()

	require.NoError(t, c.Configure([]float64{10, 10, 10}, 1))
	assert.True(t, c.TunableChanged())
	assert.Equal(t, before, c.StdDev(), "std is re-derived on the next step")

	_, err := c.Step(ones)
	require.NoError(t, err)
	assert.False(t, c.TunableChanged())

	want, err := channel.StandardDeviation([]float64{10, 10, 10}, 1)
	require.NoError(t, err)
	assert.Equal(t, want, c.StdDev())

	err = c.Configure([]float64{10}, 1)
	assert.ErrorIs(t, err, channel.ErrBadChannelCount)
}

func TestResetKeepsPendingTunableChange(t *testing.T) {
	c := newLocked(t)
	require.NoError(t, c.Configure([]float64{6, 6, 6}, 1))
	require.NoError(t, c.Reset())
	assert.True(t, c.TunableChanged())
}

func TestStepWithParams(t *testing.T) {
	c := channel.New(channel.WithSeed(randomizer.DefaultSeed))
	out, err := c.StepWithParams([]float64{3, 3, 3}, 1, ones)
	require.NoError(t, err)

	ref := newLocked(t)
	want, err := ref.Step(ones)
	require.NoError(t, err)
	assert.Equal(t, want, out)

	_, err = c.StepWithParams([]float64{3, 3, 3}, 1, ones)
	require.NoError(t, err)
	assert.False(t, c.TunableChanged())

	_, err = c.StepWithParams([]float64{3, 3, 3}, 4, ones)
	require.NoError(t, err)
	assert.Equal(t, 4.0, c.SignalPower())
	assert.InDelta(t, 2*0.5005932648504534, c.StdDev()[0], 1e-12)

	_, err = c.StepWithParams([]float64{3, 3, 3}, 0, ones)
	assert.ErrorIs(t, err, channel.ErrPositiveExpected)
}

func TestGeneratorStateAccessor(t *testing.T) {
	c := newLocked(t, channel.WithNormalMethod(randomizer.NormalMethodInversion))
	state, ok := c.GeneratorState()
	require.True(t, ok)
	assert.True(t, randomizer.ValidState(state))

	fresh := channel.New()
	_, ok = fresh.GeneratorState()
	assert.False(t, ok)
}

func TestStandardDeviation(t *testing.T) {
	std, err := channel.StandardDeviation([]float64{0, 3, math.Inf(1)}, 1)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(0.5), std[0], 1e-15)
	assert.InDelta(t, 0.5005932648504534, std[1], 1e-15)
	assert.Equal(t, 0.0, std[2])

	_, err = channel.StandardDeviation([]float64{3}, -1)
	assert.ErrorIs(t, err, channel.ErrNegativeSqrt)
	assert.Equal(t, channel.KindDomain, channel.KindOf(err))
}
