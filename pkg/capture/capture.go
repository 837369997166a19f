package capture

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/brianbland/awgnsim/pkg/analysis"
	"github.com/brianbland/awgnsim/pkg/channel"
	"github.com/brianbland/awgnsim/pkg/config"
	"github.com/brianbland/awgnsim/pkg/randomizer"
	"github.com/brianbland/awgnsim/pkg/scenarios"
)

// Record runs scenario through a channel built from cfg and captures every
// input and output sample. A zero seed is resolved from the clock and the
// resolved value is stored.
func Record(cfg config.Config, scenario scenarios.Scenario, log zerolog.Logger) (*Recording, error) {
	ebN0 := cfg.EbN0
	if len(scenario.EbN0) > 0 {
		ebN0 = scenario.EbN0[0]
	}
	ch, err := analysis.NewChannel(cfg, ebN0, log)
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	defer ch.Release()

	rec := &Recording{
		ID:          NewRecordingID(),
		Scenario:    scenario.Name,
		Method:      string(ch.NormalMethod()),
		EbN0:        slices.Clone(ebN0),
		SignalPower: cfg.SignalPower,
		Channels:    ch.Channels(),
		Frames:      make([]Frame, 0, len(scenario.Frames)),
		CreatedAt:   time.Now().Unix(),
	}

	for i, in := range scenario.Frames {
		frame := Frame{Input: toSamples(in)}
		var out []complex128
		if len(scenario.EbN0) > 0 {
			frame.EbN0 = slices.Clone(scenario.EbN0[i])
			out, err = ch.StepWithParams(scenario.EbN0[i], cfg.SignalPower, in)
		} else {
			out, err = ch.Step(in)
		}
		if err != nil {
			return nil, fmt.Errorf("record: frame %d: %w", i, err)
		}
		frame.Output = toSamples(out)
		rec.Frames = append(rec.Frames, frame)
	}

	rec.Seed = ch.Seed()
	if state, ok := ch.GeneratorState(); ok {
		rec.FinalState = state[:]
	}

	log.Info().
		Str("id", rec.ID.String()).
		Uint32("seed", rec.Seed).
		Int("frames", len(rec.Frames)).
		Msg("recording captured")
	return rec, nil
}

// Verify replays a recording on a fresh channel. It returns nil when every
// output matches exactly, and the first difference otherwise.
func Verify(rec *Recording, log zerolog.Logger) (*Mismatch, error) {
	if err := Validate(rec); err != nil {
		return nil, err
	}
	method, err := randomizer.ParseNormalMethod(rec.Method)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}

	ch := channel.New(
		channel.WithSeed(rec.Seed),
		channel.WithNormalMethod(method),
		channel.WithChannels(rec.Channels),
		channel.WithLogger(log),
	)
	if err := ch.Configure(rec.EbN0, rec.SignalPower); err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	defer ch.Release()

	for i, frame := range rec.Frames {
		var out []complex128
		if frame.EbN0 != nil {
			out, err = ch.StepWithParams(frame.EbN0, rec.SignalPower, fromSamples(frame.Input))
		} else {
			out, err = ch.Step(fromSamples(frame.Input))
		}
		if err != nil {
			return nil, fmt.Errorf("verify: frame %d: %w", i, err)
		}

		want := fromSamples(frame.Output)
		for k := range want {
			if want[k] != out[k] {
				return &Mismatch{Frame: i, Channel: k, Want: want[k], Got: out[k]}, nil
			}
		}
	}

	if len(rec.FinalState) > 0 {
		state, _ := ch.GeneratorState()
		if !slices.Equal(rec.FinalState, state[:]) {
			return nil, fmt.Errorf("verify: generator state differs after %d frames", len(rec.Frames))
		}
	}

	log.Info().Str("id", rec.ID.String()).Int("frames", len(rec.Frames)).Msg("recording verified")
	return nil, nil
}

// SaveToFile saves a recording to a JSON file
func SaveToFile(rec *Recording, filename string) error {
	jsonData, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recording: %w", err)
	}

	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// LoadFromFile loads a recording from a JSON file
func LoadFromFile(filename string) (*Recording, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var rec Recording
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recording: %w", err)
	}
	return &rec, nil
}

// Validate performs consistency checks on a recording
func Validate(rec *Recording) error {
	if rec == nil {
		return fmt.Errorf("recording is nil")
	}
	if len(rec.Frames) == 0 {
		return fmt.Errorf("recording contains no frames")
	}
	if rec.Channels <= 0 {
		return fmt.Errorf("recording has invalid channel count %d", rec.Channels)
	}
	if len(rec.EbN0) == 0 {
		return fmt.Errorf("recording has no Eb/N0")
	}
	if n := len(rec.FinalState); n != 0 && n != randomizer.StateLen {
		return fmt.Errorf("generator state has %d words, expected %d", n, randomizer.StateLen)
	}

	for i, frame := range rec.Frames {
		if len(frame.Input) != len(frame.Output) {
			return fmt.Errorf("frame %d: %d inputs but %d outputs", i, len(frame.Input), len(frame.Output))
		}
		if len(frame.Input) == 0 {
			return fmt.Errorf("frame %d is empty", i)
		}
	}
	return nil
}
