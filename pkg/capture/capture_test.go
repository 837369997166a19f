package capture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianbland/awgnsim/pkg/config"
	"github.com/brianbland/awgnsim/pkg/randomizer"
	"github.com/brianbland/awgnsim/pkg/scenarios"
)

func record(t *testing.T, cfg config.Config, name string) *Recording {
	t.Helper()
	s, ok := scenarios.NewGenerator(5).GetByName(name, cfg)
	require.True(t, ok)
	rec, err := Record(cfg, s, zerolog.Nop())
	require.NoError(t, err)
	return rec
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Steps = 64
	return cfg
}

func TestRecordCapturesRun(t *testing.T) {
	cfg := testConfig()
	rec := record(t, cfg, "constant")

	assert.NotEqual(t, [16]byte{}, [16]byte(rec.ID))
	assert.Equal(t, cfg.Seed, rec.Seed)
	assert.Equal(t, "ziggurat", rec.Method)
	require.Len(t, rec.Frames, cfg.Steps)
	assert.Len(t, rec.FinalState, randomizer.StateLen)

	first := rec.Frames[0].Output
	assert.InDelta(t, 1.1903195924217698, first[0][0], 1e-12)
	assert.InDelta(t, 0.6491455825639174, first[0][1], 1e-12)
	require.NoError(t, Validate(rec))
}

func TestSaveLoadVerify(t *testing.T) {
	for _, name := range []string{"qpsk", "ramp"} {
		t.Run(name, func(t *testing.T) {
			rec := record(t, testConfig(), name)
			filename := filepath.Join(t.TempDir(), "rec.json")
			require.NoError(t, SaveToFile(rec, filename))

			loaded, err := LoadFromFile(filename)
			require.NoError(t, err)
			assert.Equal(t, rec.ID, loaded.ID)

			mismatch, err := Verify(loaded, zerolog.Nop())
			require.NoError(t, err)
			assert.Nil(t, mismatch)
		})
	}
}

func TestVerifyReportsTampering(t *testing.T) {
	rec := record(t, testConfig(), "qpsk")
	rec.Frames[10].Output[2][1] += 1e-9

	mismatch, err := Verify(rec, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, mismatch)
	assert.Equal(t, 10, mismatch.Frame)
	assert.Equal(t, 2, mismatch.Channel)
}

func TestVerifyDetectsSeedChange(t *testing.T) {
	rec := record(t, testConfig(), "constant")
	rec.Seed++

	mismatch, err := Verify(rec, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, mismatch)
	assert.Equal(t, 0, mismatch.Frame)
}

func TestClockSeedIsResolved(t *testing.T) {
	cfg := testConfig()
	cfg.Seed = 0
	rec := record(t, cfg, "constant")
	assert.NotZero(t, rec.Seed)

	mismatch, err := Verify(rec, zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, mismatch)
}

func TestValidate(t *testing.T) {
	valid := func() *Recording {
		return &Recording{
			EbN0:     []float64{3},
			Channels: 1,
			Frames:   []Frame{{Input: []Sample{{1, 0}}, Output: []Sample{{1.1, 0.2}}}},
		}
	}

	tests := []struct {
		name   string
		mutate func(r *Recording)
	}{
		{"no frames", func(r *Recording) { r.Frames = nil }},
		{"bad channels", func(r *Recording) { r.Channels = 0 }},
		{"no ebn0", func(r *Recording) { r.EbN0 = nil }},
		{"short state", func(r *Recording) { r.FinalState = []uint32{1, 2, 3} }},
		{"length mismatch", func(r *Recording) { r.Frames[0].Output = nil }},
	}

	require.NoError(t, Validate(valid()))
	assert.Error(t, Validate(nil))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(r)
			assert.Error(t, Validate(r))
		})
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	_, err = LoadFromFile(bad)
	assert.Error(t, err)
}
