package sweep

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianbland/awgnsim/pkg/config"
	"github.com/brianbland/awgnsim/pkg/modem"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.EbN0 = []float64{0}
	cfg.Steps = 3000
	return cfg
}

func TestOptionsPoints(t *testing.T) {
	o := Options{Start: 0, Stop: 2, StepDB: 0.5, Modulation: modem.ModQPSK}
	assert.Equal(t, []float64{0, 0.5, 1, 1.5, 2}, o.Points())

	o = Options{Start: 3, Stop: 3, StepDB: 1, Modulation: modem.ModBPSK}
	assert.Equal(t, []float64{3}, o.Points())
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		options Options
		wantErr bool
	}{
		{"default", DefaultOptions(), false},
		{"zero step", Options{Stop: 1, Modulation: modem.ModQPSK}, true},
		{"reversed", Options{Start: 5, Stop: 1, StepDB: 1, Modulation: modem.ModQPSK}, true},
		{"no modulation", Options{Stop: 1, StepDB: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.options.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSweepTracksTheory(t *testing.T) {
	options := Options{Start: 0, Stop: 6, StepDB: 2, Modulation: modem.ModQPSK, Workers: 3}

	var calls atomic.Int32
	points, err := NewRunner(testConfig(), options, zerolog.Nop()).Run(context.Background(), func(p Progress) {
		calls.Add(1)
		assert.Equal(t, 4, p.Total)
	})
	require.NoError(t, err)
	require.Len(t, points, 4)
	assert.Equal(t, int32(4), calls.Load())

	for i, p := range points {
		assert.Equal(t, options.Points()[i], p.EbN0)
		assert.Equal(t, 3000*3*2, p.Bits)
		assert.InDelta(t, p.TheoreticalBER, p.BER, 0.2*p.TheoreticalBER+0.001, "%.1f dB", p.EbN0)
		if i > 0 {
			assert.Less(t, p.BER, points[i-1].BER)
		}
	}
}

func TestSweepIndependentOfWorkers(t *testing.T) {
	cfg := testConfig()
	cfg.Steps = 200
	options := Options{Start: 0, Stop: 4, StepDB: 1, Modulation: modem.ModBPSK, Workers: 1}

	serial, err := NewRunner(cfg, options, zerolog.Nop()).Run(context.Background(), nil)
	require.NoError(t, err)

	options.Workers = 4
	parallel, err := NewRunner(cfg, options, zerolog.Nop()).Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestSweepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	options := Options{Start: 0, Stop: 100, StepDB: 1, Modulation: modem.ModQPSK, Workers: 2}
	_, err := NewRunner(testConfig(), options, zerolog.Nop()).Run(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPointSeed(t *testing.T) {
	assert.Equal(t, uint32(5489), pointSeed(0, 0))
	assert.Equal(t, uint32(42+7919), pointSeed(42, 1))
	assert.NotEqual(t, pointSeed(1, 2), pointSeed(1, 3))
}
