package main

import (
	"fmt"
	"os"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/brianbland/awgnsim/pkg/capture"
	"github.com/brianbland/awgnsim/pkg/config"
	"github.com/brianbland/awgnsim/pkg/logger"
	"github.com/brianbland/awgnsim/pkg/modem"
	"github.com/brianbland/awgnsim/pkg/randomizer"
	"github.com/brianbland/awgnsim/pkg/scenarios"
	"github.com/brianbland/awgnsim/pkg/sweep"
	"github.com/brianbland/awgnsim/pkg/visualization"
)

func newSweepCmd(parser *config.Parser) *cobra.Command {
	options := sweep.DefaultOptions()
	var modulation string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Measure bit error rate over a range of Eb/N0",
		Long: `Measure the hard-decision bit error rate of a Gray-coded constellation over a
range of Eb/N0 values and compare it with theory. Points run concurrently, each
on its own channel with a seed derived from --seed and the point index.

Example: awgnsim sweep --from=0 --to=10 --step=1 --steps=20000 --graph`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mod, err := modem.ParseModulation(modulation)
			if err != nil {
				return err
			}
			options.Modulation = mod
			return runSweep(cmd, parser, options)
		},
	}

	cmd.Flags().Float64Var(&options.Start, "from", options.Start, "First Eb/N0 in dB")
	cmd.Flags().Float64Var(&options.Stop, "to", options.Stop, "Last Eb/N0 in dB")
	cmd.Flags().Float64Var(&options.StepDB, "step", options.StepDB, "Eb/N0 increment in dB")
	cmd.Flags().StringVar(&modulation, "modulation", "qpsk", "Modulation: bpsk or qpsk")
	cmd.Flags().IntVar(&options.Workers, "workers", runtime.NumCPU(), "Concurrent sweep points")

	return cmd
}

func runSweep(cmd *cobra.Command, parser *config.Parser, options sweep.Options) error {
	cfg, sim := parser.Config(), parser.SimulationConfig()
	out := cmd.OutOrStdout()
	log := logger.Component("sweep")

	progressCallback := func(progress sweep.Progress) {
		elapsed := time.Since(progress.StartTime)
		log.Info().
			Int("completed", progress.Completed).
			Int("total", progress.Total).
			Dur("elapsed", elapsed).
			Msg("sweep progress")
	}

	points, err := sweep.NewRunner(*cfg, options, log).Run(cmd.Context(), progressCallback)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	fmt.Fprintf(out, "\n=== %s Bit Error Rate (%d symbols per channel per point) ===\n", options.Modulation, cfg.Steps)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Eb/N0 (dB)\tSeed\tBits\tErrors\tBER\tTheory\tRatio")
	for _, p := range points {
		ratio := "-"
		if p.TheoreticalBER > 0 {
			ratio = fmt.Sprintf("%.3f", p.BER/p.TheoreticalBER)
		}
		fmt.Fprintf(w, "%.2f\t%d\t%d\t%d\t%.3e\t%.3e\t%s\n",
			p.EbN0, p.Seed, p.Bits, p.BitErrors, p.BER, p.TheoreticalBER, ratio)
	}
	w.Flush()

	if sim.EnableGraphs {
		if err := os.MkdirAll(sim.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		chartGenerator := visualization.NewGenerator(sim.OutputDir, logger.Component("charts"))
		data := visualization.NewBERData(points)
		title := fmt.Sprintf("%s over AWGN", options.Modulation)
		if err := chartGenerator.GenerateBERChart(data, title, "ber.png"); err != nil {
			log.Warn().Err(err).Msg("failed to generate BER chart")
		}
		if err := chartGenerator.GenerateBERChartHTML(data, title, "ber.html"); err != nil {
			log.Warn().Err(err).Msg("failed to generate interactive BER chart")
		}
	}
	return nil
}

func newRecordCmd(parser *config.Parser) *cobra.Command {
	return &cobra.Command{
		Use:   "record <output-file>",
		Short: "Capture channel inputs and outputs for later verification",
		Long: `Run a scenario through the channel and save every input and output sample,
the resolved seed and the final generator state as JSON. With --scenario=all
the constant carrier scenario is recorded.

Example: awgnsim record golden.json --scenario=qpsk --steps=16`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, sim := parser.Config(), parser.SimulationConfig()
			name := sim.Scenario
			if name == "all" {
				name = "constant"
			}
			scenario, ok := scenarios.NewGenerator(cfg.Seed).GetByName(name, *cfg)
			if !ok {
				return fmt.Errorf("unknown scenario: %s", name)
			}

			rec, err := capture.Record(*cfg, scenario, logger.Component("capture"))
			if err != nil {
				return err
			}
			if err := capture.SaveToFile(rec, args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Recording %s saved to %s\n", rec.ID, args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "  - Scenario: %s\n", rec.Scenario)
			fmt.Fprintf(cmd.OutOrStdout(), "  - Seed: %d\n", rec.Seed)
			fmt.Fprintf(cmd.OutOrStdout(), "  - Frames: %d x %d channels\n", len(rec.Frames), rec.Channels)
			return nil
		},
	}
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <recording-file>",
		Short: "Replay a recording and compare outputs bit for bit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := capture.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if err := capture.Validate(rec); err != nil {
				return fmt.Errorf("recording validation failed: %w", err)
			}

			mismatch, err := capture.Verify(rec, logger.Component("capture"))
			if err != nil {
				return err
			}
			if mismatch != nil {
				return fmt.Errorf("frame %d channel %d: recorded %v, replayed %v",
					mismatch.Frame, mismatch.Channel, mismatch.Want, mismatch.Got)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Recording %s verified: %d frames match\n", rec.ID, len(rec.Frames))
			return nil
		},
	}
}

func newPrngCmd(parser *config.Parser) *cobra.Command {
	var count int
	var uniform bool

	cmd := &cobra.Command{
		Use:   "prng",
		Short: "Dump raw generator output",
		Long: `Print the first values of the MT19937 generator seeded with --seed (0 selects
the default seed 5489).

Example: awgnsim prng --seed=5489 --count=3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed := parser.Config().Seed
			if seed == 0 {
				seed = randomizer.DefaultSeed
			}
			tw := randomizer.NewTwister(seed)

			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				if uniform {
					u, err := tw.Float64()
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%.17g\n", u)
				} else {
					fmt.Fprintf(out, "%d\n", tw.Uint32())
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 10, "Number of values")
	cmd.Flags().BoolVar(&uniform, "uniform", false, "Print 53-bit uniform doubles instead of 32-bit words")

	return cmd
}
