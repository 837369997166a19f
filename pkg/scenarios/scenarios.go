package scenarios

import (
	"fmt"
	"sort"

	"github.com/brianbland/awgnsim/pkg/config"
	"github.com/brianbland/awgnsim/pkg/modem"
	"github.com/brianbland/awgnsim/pkg/randomizer"
)

// Scenario is a sequence of input frames, one sample per channel per frame
type Scenario struct {
	Name        string
	Description string
	Modulation  modem.Modulation // zero for unmodulated input
	Bits        [][]byte         // transmitted bits per frame, nil for unmodulated input
	Frames      [][]complex128
	// EbN0 optionally overrides the configured Eb/N0 per frame.
	EbN0 [][]float64
}

// Generator handles scenario generation. Data bits come from a dedicated
// twister so scenario content does not depend on the channel seed.
type Generator struct {
	seed uint32
}

// NewGenerator creates a new scenario generator
func NewGenerator(seed uint32) *Generator {
	if seed == 0 {
		seed = randomizer.DefaultSeed
	}
	return &Generator{seed: seed}
}

// GenerateAll generates all available scenarios
func (g *Generator) GenerateAll(cfg config.Config) (map[string]Scenario, error) {
	burst, err := g.generateBurst(cfg)
	if err != nil {
		return nil, err
	}
	return map[string]Scenario{
		"constant": g.generateConstant(cfg),
		"bpsk":     g.generateModulated(cfg, modem.ModBPSK),
		"qpsk":     g.generateModulated(cfg, modem.ModQPSK),
		"ramp":     g.generateRamp(cfg),
		"burst":    burst,
	}, nil
}

// GetByName returns a specific scenario by name
func (g *Generator) GetByName(name string, cfg config.Config) (Scenario, bool) {
	scenarios, err := g.GenerateAll(cfg)
	if err != nil {
		return Scenario{}, false
	}
	scenario, exists := scenarios[name]
	return scenario, exists
}

// GetValidScenarioNames returns all scenario names in sorted order
func GetValidScenarioNames() []string {
	names := []string{"constant", "bpsk", "qpsk", "ramp", "burst"}
	sort.Strings(names)
	return names
}

// Validate reports whether name is a scenario or "all"
func Validate(name string) error {
	if name == "all" {
		return nil
	}
	for _, n := range GetValidScenarioNames() {
		if n == name {
			return nil
		}
	}
	return fmt.Errorf("invalid scenario '%s', must be one of: %v or all", name, GetValidScenarioNames())
}

// generateConstant feeds 1+0i on every channel
func (g *Generator) generateConstant(cfg config.Config) Scenario {
	frames := make([][]complex128, cfg.Steps)
	for i := range frames {
		frame := make([]complex128, cfg.Channels)
		for k := range frame {
			frame[k] = 1
		}
		frames[i] = frame
	}
	return Scenario{
		Name:        "Constant Carrier",
		Description: "Unmodulated 1+0i on every channel, the noise is the whole output deviation",
		Frames:      frames,
	}
}

func (g *Generator) generateModulated(cfg config.Config, mod modem.Modulation) Scenario {
	bits, frames := g.modulatedFrames(cfg.Steps, cfg.Channels, mod)
	return Scenario{
		Name:        fmt.Sprintf("%s Random Data", mod),
		Description: fmt.Sprintf("Uniform random %s symbols on every channel", mod),
		Modulation:  mod,
		Bits:        bits,
		Frames:      frames,
	}
}

// generateRamp sweeps a scalar Eb/N0 from 0 to 12 dB across the run
func (g *Generator) generateRamp(cfg config.Config) Scenario {
	bits, frames := g.modulatedFrames(cfg.Steps, cfg.Channels, modem.ModQPSK)
	ebN0 := make([][]float64, cfg.Steps)
	for i := range ebN0 {
		v := 0.0
		if cfg.Steps > 1 {
			v = 12 * float64(i) / float64(cfg.Steps-1)
		}
		ebN0[i] = []float64{v}
	}
	return Scenario{
		Name:        "Eb/N0 Ramp",
		Description: "QPSK while Eb/N0 is tuned from 0 dB to 12 dB mid-stream",
		Modulation:  modem.ModQPSK,
		Bits:        bits,
		Frames:      frames,
		EbN0:        ebN0,
	}
}

// generateBurst applies impulsive bursts to QPSK frames before the channel
func (g *Generator) generateBurst(cfg config.Config) (Scenario, error) {
	base := g.generateModulated(cfg, modem.ModQPSK)
	impairment := randomizer.NewCompoundRandomizer(
		randomizer.NewBurstRandomizer(g.seed+1, 0.02, 5, 20, 1.0),
	)

	frames, err := applyRandomness(base.Frames, impairment)
	if err != nil {
		return Scenario{}, fmt.Errorf("burst scenario: %w", err)
	}
	return Scenario{
		Name:        "QPSK With Impulsive Bursts",
		Description: base.Description + " - includes impulsive noise bursts ahead of the channel",
		Modulation:  base.Modulation,
		Bits:        base.Bits,
		Frames:      frames,
	}, nil
}

func (g *Generator) modulatedFrames(steps, channels int, mod modem.Modulation) ([][]byte, [][]complex128) {
	tw := randomizer.NewTwister(g.seed)
	c := modem.NewConstellation(mod)
	bps := mod.BitsPerSymbol()

	bits := make([][]byte, steps)
	frames := make([][]complex128, steps)
	for i := 0; i < steps; i++ {
		b := make([]byte, channels*bps)
		for j := range b {
			b[j] = byte(tw.Uint32() >> 31)
		}
		bits[i] = b
		frames[i] = c.MapBits(b)
	}
	return bits, frames
}

// applyRandomness passes every sample through r
func applyRandomness(frames [][]complex128, r randomizer.Randomizer) ([][]complex128, error) {
	out := make([][]complex128, len(frames))
	for i, frame := range frames {
		noisy := make([]complex128, len(frame))
		for k, x := range frame {
			y, err := r.AddRandomness(x)
			if err != nil {
				return nil, err
			}
			noisy[k] = y
		}
		out[i] = noisy
	}
	return out, nil
}
