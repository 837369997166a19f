package analysis

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/montanaflynn/stats"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/brianbland/awgnsim/pkg/channel"
	"github.com/brianbland/awgnsim/pkg/config"
	"github.com/brianbland/awgnsim/pkg/modem"
	"github.com/brianbland/awgnsim/pkg/scenarios"
)

// ChannelStats summarizes the noise added on one channel
type ChannelStats struct {
	Channel       int
	StdDev        float64 // configured standard deviation at the end of the run
	ExpectedPower float64 // StdDev²
	MeasuredPower float64 // mean |out-in|²
	MeanRe        float64
	MeanIm        float64
	StdRe         float64
	StdIm         float64
	Skewness      float64 // of the real component
	ExKurtosis    float64 // of the real component
	P99Magnitude  float64 // 99th percentile of |out-in|
}

// Result contains detailed analysis of a simulation run
type Result struct {
	ScenarioName   string
	Method         string
	Seed           uint32
	TotalSteps     int
	Channels       []ChannelStats
	Modulation     modem.Modulation
	TotalBits      int
	BitErrors      int
	BER            float64
	TheoreticalBER float64 // zero when the Eb/N0 varies during the run
	Outputs        [][]complex128
}

// Analyzer handles analysis operations
type Analyzer struct {
	config config.Config
	log    zerolog.Logger
}

// NewAnalyzer creates a new analyzer
func NewAnalyzer(cfg config.Config, log zerolog.Logger) *Analyzer {
	return &Analyzer{config: cfg, log: log}
}

// NewChannel builds and configures a channel from cfg. A zero seed leaves
// seeding to the clock.
func NewChannel(cfg config.Config, ebN0 []float64, log zerolog.Logger) (*channel.Channel, error) {
	opts := []channel.Option{
		channel.WithNormalMethod(cfg.NormalMethod()),
		channel.WithChannels(cfg.Channels),
		channel.WithLogger(log),
	}
	if cfg.Seed != 0 {
		opts = append(opts, channel.WithSeed(cfg.Seed))
	}

	ch := channel.New(opts...)
	if err := ch.Configure(ebN0, cfg.SignalPower); err != nil {
		return nil, err
	}
	return ch, nil
}

// RunDetailedAnalysis runs a scenario through a fresh channel and measures
// the added noise and, for modulated scenarios, the bit error rate.
func (a *Analyzer) RunDetailedAnalysis(scenario scenarios.Scenario) (Result, error) {
	ebN0 := a.config.EbN0
	if len(scenario.EbN0) > 0 {
		ebN0 = scenario.EbN0[0]
	}
	ch, err := NewChannel(a.config, ebN0, a.log)
	if err != nil {
		return Result{}, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	defer ch.Release()

	nch := a.config.Channels
	noiseRe := make([][]float64, nch)
	noiseIm := make([][]float64, nch)
	magnitude := make([][]float64, nch)
	outputs := make([][]complex128, 0, len(scenario.Frames))

	for i, frame := range scenario.Frames {
		var out []complex128
		if len(scenario.EbN0) > 0 {
			out, err = ch.StepWithParams(scenario.EbN0[i], a.config.SignalPower, frame)
		} else {
			out, err = ch.Step(frame)
		}
		if err != nil {
			return Result{}, fmt.Errorf("scenario %s: step %d: %w", scenario.Name, i, err)
		}
		outputs = append(outputs, out)

		for k := range out {
			d := out[k] - frame[k]
			noiseRe[k] = append(noiseRe[k], real(d))
			noiseIm[k] = append(noiseIm[k], imag(d))
			magnitude[k] = append(magnitude[k], math.Hypot(real(d), imag(d)))
		}
	}

	result := Result{
		ScenarioName: scenario.Name,
		Method:       string(ch.NormalMethod()),
		Seed:         ch.Seed(),
		TotalSteps:   len(scenario.Frames),
		Modulation:   scenario.Modulation,
		Outputs:      outputs,
	}

	std := ch.StdDev()
	for k := 0; k < nch; k++ {
		s := std[0]
		if len(std) > 1 {
			s = std[k]
		}
		cs, err := channelStats(k, s, noiseRe[k], noiseIm[k], magnitude[k])
		if err != nil {
			return Result{}, fmt.Errorf("scenario %s: channel %d: %w", scenario.Name, k, err)
		}
		result.Channels = append(result.Channels, cs)
	}

	if scenario.Bits != nil {
		c := modem.NewConstellation(scenario.Modulation)
		for i, out := range outputs {
			result.BitErrors += modem.CountBitErrors(scenario.Bits[i], c.DemapSymbols(out))
			result.TotalBits += len(scenario.Bits[i])
		}
		if result.TotalBits > 0 {
			result.BER = float64(result.BitErrors) / float64(result.TotalBits)
		}
		if len(scenario.EbN0) == 0 {
			result.TheoreticalBER = averageTheoreticalBER(scenario.Modulation, a.config.EbN0, nch)
		}
	}

	a.log.Debug().
		Str("scenario", scenario.Name).
		Int("steps", result.TotalSteps).
		Float64("ber", result.BER).
		Msg("analysis complete")
	return result, nil
}

func channelStats(k int, std float64, re, im, mag []float64) (ChannelStats, error) {
	cs := ChannelStats{
		Channel:       k,
		StdDev:        std,
		ExpectedPower: std * std,
	}
	if len(re) == 0 {
		return cs, nil
	}

	var err error
	if cs.MeanRe, err = stats.Mean(re); err != nil {
		return cs, err
	}
	if cs.MeanIm, err = stats.Mean(im); err != nil {
		return cs, err
	}
	if cs.StdRe, err = stats.StandardDeviation(re); err != nil {
		return cs, err
	}
	if cs.StdIm, err = stats.StandardDeviation(im); err != nil {
		return cs, err
	}
	if cs.P99Magnitude, err = stats.Percentile(mag, 99); err != nil {
		return cs, err
	}

	var power float64
	for _, m := range mag {
		power += m * m
	}
	cs.MeasuredPower = power / float64(len(mag))

	if len(re) > 2 {
		cs.Skewness = stat.Skew(re, nil)
		cs.ExKurtosis = stat.ExKurtosis(re, nil)
	}
	return cs, nil
}

func averageTheoreticalBER(mod modem.Modulation, ebN0 []float64, channels int) float64 {
	if len(ebN0) == 1 {
		return mod.TheoreticalBER(ebN0[0])
	}
	var sum float64
	for _, v := range ebN0 {
		sum += mod.TheoreticalBER(v)
	}
	return sum / float64(channels)
}

// PrintResults writes formatted analysis results to out
func PrintResults(out io.Writer, results []Result) {
	fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 80))
	fmt.Fprintf(out, "AWGN CHANNEL ANALYSIS SUMMARY\n")
	fmt.Fprintf(out, "%s\n", strings.Repeat("=", 80))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Scenario\tMethod\tSteps\tBER\tTheory BER\tPower Ratio")
	for _, result := range results {
		berStr, theoryStr := "-", "-"
		if result.TotalBits > 0 {
			berStr = fmt.Sprintf("%.3e", result.BER)
		}
		if result.TheoreticalBER > 0 {
			theoryStr = fmt.Sprintf("%.3e", result.TheoreticalBER)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%.3f\n",
			result.ScenarioName,
			result.Method,
			result.TotalSteps,
			berStr,
			theoryStr,
			powerRatio(result.Channels),
		)
	}
	w.Flush()

	for _, result := range results {
		fmt.Fprintf(out, "\n%s\n", strings.Repeat("-", 60))
		fmt.Fprintf(out, "DETAILED ANALYSIS: %s\n", result.ScenarioName)
		fmt.Fprintf(out, "%s\n", strings.Repeat("-", 60))
		fmt.Fprintf(out, "Seed: %d  Method: %s  Steps: %d\n", result.Seed, result.Method, result.TotalSteps)

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Ch\tStd\tExpected P\tMeasured P\tMean (re, im)\tStd (re, im)\tSkew\tExKurt\tP99 |n|")
		for _, c := range result.Channels {
			fmt.Fprintf(w, "%d\t%.5f\t%.5f\t%.5f\t%+.4f, %+.4f\t%.4f, %.4f\t%+.3f\t%+.3f\t%.4f\n",
				c.Channel, c.StdDev, c.ExpectedPower, c.MeasuredPower,
				c.MeanRe, c.MeanIm, c.StdRe, c.StdIm,
				c.Skewness, c.ExKurtosis, c.P99Magnitude)
		}
		w.Flush()

		if result.TotalBits > 0 {
			fmt.Fprintf(out, "\nBit Errors (%s): %d / %d (BER %.3e)\n",
				result.Modulation, result.BitErrors, result.TotalBits, result.BER)
		}
	}
}

// powerRatio averages measured over expected noise power across channels
func powerRatio(channels []ChannelStats) float64 {
	var sum float64
	n := 0
	for _, c := range channels {
		if c.ExpectedPower > 0 {
			sum += c.MeasuredPower / c.ExpectedPower
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
