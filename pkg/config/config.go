package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/brianbland/awgnsim/pkg/randomizer"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "AWGNSIM_"

// Config holds the channel parameters
type Config struct {
	Seed        uint32    // Generator seed (0 = derive from the clock)
	EbN0        []float64 // Eb/N0 in dB, one value or one per channel
	SignalPower float64   // Input signal power in watts
	Method      string    // Normal sampler: ziggurat, polar or inversion
	Channels    int       // Input width
	Steps       int       // Number of step calls per run
}

// SimulationConfig holds runtime configuration for simulations
type SimulationConfig struct {
	Scenario     string
	EnableGraphs bool
	OutputDir    string
	LogLevel     string
	LogFormat    string
	ShowHelp     bool
}

// Default returns a configuration with sensible defaults
func Default() Config {
	return Config{
		Seed:        randomizer.DefaultSeed,
		EbN0:        []float64{3, 3, 3},
		SignalPower: 1.0,
		Method:      string(randomizer.NormalMethodZiggurat),
		Channels:    3,
		Steps:       1000,
	}
}

// DefaultSimulation returns the default runtime configuration
func DefaultSimulation() SimulationConfig {
	return SimulationConfig{
		Scenario:     "all",
		EnableGraphs: false,
		OutputDir:    ".",
		LogLevel:     "info",
		LogFormat:    "console",
		ShowHelp:     false,
	}
}

// Parser handles command-line flag parsing
type Parser struct {
	config    *Config
	simConfig *SimulationConfig
	flagSet   *pflag.FlagSet
}

// NewParser creates a new configuration parser
func NewParser() *Parser {
	config := Default()
	simConfig := DefaultSimulation()

	return &Parser{
		config:    &config,
		simConfig: &simConfig,
		flagSet:   pflag.NewFlagSet("awgnsim", pflag.ContinueOnError),
	}
}

// Config returns the configuration being populated
func (p *Parser) Config() *Config {
	return p.config
}

// SimulationConfig returns the runtime configuration being populated
func (p *Parser) SimulationConfig() *SimulationConfig {
	return p.simConfig
}

// LoadEnv reads .env files (missing files are ignored) and applies AWGNSIM_*
// overrides on top of the defaults. Flags registered afterwards use the
// overridden values as their defaults.
func (p *Parser) LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return p.applyEnv(os.LookupEnv)
}

func (p *Parser) applyEnv(lookup func(string) (string, bool)) error {
	c := p.config
	s := p.simConfig

	if v, ok := lookup(EnvPrefix + "SEED"); ok {
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
		if err != nil {
			return fmt.Errorf("invalid %sSEED %q: %w", EnvPrefix, v, err)
		}
		c.Seed = uint32(seed)
	}
	if v, ok := lookup(EnvPrefix + "EBN0"); ok {
		ebN0, err := ParseFloatList(v)
		if err != nil {
			return fmt.Errorf("invalid %sEBN0: %w", EnvPrefix, err)
		}
		c.EbN0 = ebN0
	}
	if v, ok := lookup(EnvPrefix + "SIGNAL_POWER"); ok {
		power, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid %sSIGNAL_POWER %q: %w", EnvPrefix, v, err)
		}
		c.SignalPower = power
	}
	if v, ok := lookup(EnvPrefix + "METHOD"); ok {
		c.Method = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvPrefix + "CHANNELS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %sCHANNELS %q: %w", EnvPrefix, v, err)
		}
		c.Channels = n
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		s.LogLevel = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvPrefix + "LOG_FORMAT"); ok {
		s.LogFormat = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvPrefix + "OUTPUT_DIR"); ok {
		s.OutputDir = strings.TrimSpace(v)
	}
	return nil
}

// ParseFloatList parses a comma separated list such as "3,3,3"
func ParseFloatList(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", part, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list %q", s)
	}
	return out, nil
}

// RegisterChannelFlags registers the channel parameter flags on flags
func (p *Parser) RegisterChannelFlags(flags *pflag.FlagSet) {
	flags.Uint32Var(&p.config.Seed, "seed", p.config.Seed, "Generator seed (0 derives the seed from the clock)")
	flags.Float64SliceVar(&p.config.EbN0, "ebn0", p.config.EbN0, "Eb/N0 in dB, one value or one per channel")
	flags.Float64Var(&p.config.SignalPower, "signal-power", p.config.SignalPower, "Input signal power in watts")
	flags.StringVar(&p.config.Method, "method", p.config.Method, "Normal sampler: "+strings.Join(randomizer.GetAvailableMethods(), ", "))
	flags.IntVar(&p.config.Channels, "channels", p.config.Channels, "Number of input channels")
	flags.IntVar(&p.config.Steps, "steps", p.config.Steps, "Number of step calls")
}

// RegisterSimulationFlags registers the runtime flags on flags
func (p *Parser) RegisterSimulationFlags(flags *pflag.FlagSet) {
	flags.StringVar(&p.simConfig.Scenario, "scenario", p.simConfig.Scenario, "Scenario to run, or all")
	flags.BoolVar(&p.simConfig.EnableGraphs, "graph", p.simConfig.EnableGraphs, "Generate charts")
	flags.StringVar(&p.simConfig.OutputDir, "output-dir", p.simConfig.OutputDir, "Directory for generated files")
	flags.StringVar(&p.simConfig.LogLevel, "log-level", p.simConfig.LogLevel, "Log level: trace, debug, info, warn, error")
	flags.StringVar(&p.simConfig.LogFormat, "log-format", p.simConfig.LogFormat, "Log format: console or json")
	flags.BoolVar(&p.simConfig.ShowHelp, "help-detailed", p.simConfig.ShowHelp, "Show detailed help and parameter explanations")
}

// RegisterFlags registers all command-line flags on the parser's own set
func (p *Parser) RegisterFlags() {
	p.RegisterChannelFlags(p.flagSet)
	p.RegisterSimulationFlags(p.flagSet)
}

// Parse parses command-line arguments and returns configuration
func (p *Parser) Parse(args []string) (*Config, *SimulationConfig, error) {
	p.RegisterFlags()

	if err := p.flagSet.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if p.simConfig.ShowHelp {
		p.ShowDetailedHelp(os.Stdout)
		return p.config, p.simConfig, nil
	}

	if err := p.Validate(); err != nil {
		return nil, nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return p.config, p.simConfig, nil
}

// Validate validates the configuration parameters
func (p *Parser) Validate() error {
	return p.config.Validate()
}

// Validate checks the parameters before they reach the channel
func (c *Config) Validate() error {
	if len(c.EbN0) == 0 {
		return fmt.Errorf("at least one Eb/N0 value is required")
	}
	for i, v := range c.EbN0 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("ebn0[%d] (%v) must be finite", i, v)
		}
	}

	if !(c.SignalPower > 0) || math.IsInf(c.SignalPower, 0) {
		return fmt.Errorf("signal power (%.6f) must be positive and finite", c.SignalPower)
	}

	if c.Channels <= 0 {
		return fmt.Errorf("channels (%d) must be positive", c.Channels)
	}

	if len(c.EbN0) != 1 && len(c.EbN0) != c.Channels {
		return fmt.Errorf("got %d Eb/N0 values for %d channels, expected 1 or %d", len(c.EbN0), c.Channels, c.Channels)
	}

	if c.Steps <= 0 {
		return fmt.Errorf("steps (%d) must be positive", c.Steps)
	}

	if _, err := randomizer.ParseNormalMethod(c.Method); err != nil {
		return err
	}

	return nil
}

// NormalMethod returns the parsed sampler method
func (c *Config) NormalMethod() randomizer.NormalMethod {
	m, err := randomizer.ParseNormalMethod(c.Method)
	if err != nil {
		return randomizer.NormalMethodZiggurat
	}
	return m
}

// ShowDetailedHelp writes comprehensive help information to w
func (p *Parser) ShowDetailedHelp(w io.Writer) {
	fmt.Fprintln(w, "AWGN Channel Simulator - Complete CLI Reference")
	fmt.Fprintln(w, strings.Repeat("=", 80))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "COMMANDS:")
	fmt.Fprintln(w, "  awgnsim simulate [flags]        Run scenarios through the channel and report noise statistics")
	fmt.Fprintln(w, "  awgnsim sweep [flags]           Measure QPSK bit error rate over a range of Eb/N0")
	fmt.Fprintln(w, "  awgnsim record <file> [flags]   Capture inputs and outputs for later verification")
	fmt.Fprintln(w, "  awgnsim verify <file>           Replay a capture and compare bit for bit")
	fmt.Fprintln(w, "  awgnsim prng [flags]            Dump raw generator output")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "CHANNEL PARAMETERS:")
	fmt.Fprintf(w, "  --seed=%d                  Generator seed, 0 derives one from the clock\n", p.config.Seed)
	fmt.Fprintf(w, "  --ebn0=%s                Eb/N0 in dB per channel\n", formatFloats(p.config.EbN0))
	fmt.Fprintf(w, "  --signal-power=%g            Signal power in watts\n", p.config.SignalPower)
	fmt.Fprintf(w, "  --method=%s           Normal sampler\n", p.config.Method)
	for _, m := range randomizer.GetAvailableMethods() {
		fmt.Fprintf(w, "                               - %-10s %s\n", m+":", randomizer.GetMethodDescription(randomizer.NormalMethod(m)))
	}
	fmt.Fprintf(w, "  --channels=%d                 Input width\n", p.config.Channels)
	fmt.Fprintf(w, "  --steps=%d                 Step calls per run\n", p.config.Steps)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "ENVIRONMENT:")
	fmt.Fprintln(w, "  Values are read from .env and the environment before flags are applied:")
	for _, name := range []string{"SEED", "EBN0", "SIGNAL_POWER", "METHOD", "CHANNELS", "LOG_LEVEL", "LOG_FORMAT", "OUTPUT_DIR"} {
		fmt.Fprintf(w, "  %s%s\n", EnvPrefix, name)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "EXAMPLES:")
	fmt.Fprintln(w, "  awgnsim simulate --scenario=qpsk --ebn0=6")
	fmt.Fprintln(w, "  awgnsim sweep --from=0 --to=10 --step=1 --graph")
	fmt.Fprintln(w, "  awgnsim record golden.json --steps=16 && awgnsim verify golden.json")
}

func formatFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
