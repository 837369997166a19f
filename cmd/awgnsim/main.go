package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brianbland/awgnsim/pkg/analysis"
	"github.com/brianbland/awgnsim/pkg/config"
	"github.com/brianbland/awgnsim/pkg/logger"
	"github.com/brianbland/awgnsim/pkg/scenarios"
	"github.com/brianbland/awgnsim/pkg/visualization"
)

func main() {
	parser := config.NewParser()
	if err := parser.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(parser).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(parser *config.Parser) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "awgnsim",
		Short:         "Additive white gaussian noise channel simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			sim := parser.SimulationConfig()
			if err := logger.Configure(os.Stderr, sim.LogFormat, sim.LogLevel); err != nil {
				return err
			}
			if sim.ShowHelp {
				return nil
			}
			if err := parser.Validate(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if parser.SimulationConfig().ShowHelp {
				parser.ShowDetailedHelp(cmd.OutOrStdout())
				return nil
			}
			return runSimulate(cmd, parser)
		},
	}

	parser.RegisterChannelFlags(rootCmd.PersistentFlags())
	parser.RegisterSimulationFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newSimulateCmd(parser),
		newSweepCmd(parser),
		newRecordCmd(parser),
		newVerifyCmd(),
		newPrngCmd(parser),
	)
	return rootCmd
}

func newSimulateCmd(parser *config.Parser) *cobra.Command {
	return &cobra.Command{
		Use:   "simulate",
		Short: "Run scenarios through the channel and report noise statistics",
		Long: `Run one scenario (or all of them) through a freshly seeded channel and print
per-channel noise statistics and, for modulated scenarios, the bit error rate.

Example: awgnsim simulate --scenario=qpsk --ebn0=6 --graph`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, parser)
		},
	}
}

func runSimulate(cmd *cobra.Command, parser *config.Parser) error {
	cfg, sim := parser.Config(), parser.SimulationConfig()
	if sim.ShowHelp {
		parser.ShowDetailedHelp(cmd.OutOrStdout())
		return nil
	}
	if err := scenarios.Validate(sim.Scenario); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printConfigSummary(cmd, *cfg, *sim)

	scenarioGenerator := scenarios.NewGenerator(cfg.Seed)
	var scenariosToRun []scenarios.Scenario
	if sim.Scenario == "all" {
		all, err := scenarioGenerator.GenerateAll(*cfg)
		if err != nil {
			return err
		}
		for _, name := range scenarios.GetValidScenarioNames() {
			scenariosToRun = append(scenariosToRun, all[name])
		}
	} else {
		scenario, exists := scenarioGenerator.GetByName(sim.Scenario, *cfg)
		if !exists {
			return fmt.Errorf("unknown scenario: %s", sim.Scenario)
		}
		scenariosToRun = []scenarios.Scenario{scenario}
	}

	var chartGenerator visualization.ChartGenerator
	if sim.EnableGraphs {
		if err := os.MkdirAll(sim.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		chartGenerator = visualization.NewGenerator(sim.OutputDir, logger.Component("charts"))
	}

	analyzer := analysis.NewAnalyzer(*cfg, logger.Component("analysis"))
	var analysisResults []analysis.Result
	for _, scenario := range scenariosToRun {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n=== Simulation: %s ===\n", scenario.Name)
		fmt.Fprintf(out, "Description: %s\n", scenario.Description)

		result, err := analyzer.RunDetailedAnalysis(scenario)
		if err != nil {
			return err
		}
		analysisResults = append(analysisResults, result)

		if chartGenerator != nil {
			chartGenerator.GenerateChartsForResult(scenario, result)
		}
	}

	analysis.PrintResults(out, analysisResults)
	return nil
}

// printConfigSummary prints the configuration being used
func printConfigSummary(cmd *cobra.Command, cfg config.Config, sim config.SimulationConfig) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Running AWGN Channel Simulation with configuration:\n")
	if cfg.Seed == 0 {
		fmt.Fprintf(out, "  Seed: derived from the clock\n")
	} else {
		fmt.Fprintf(out, "  Seed: %d\n", cfg.Seed)
	}
	fmt.Fprintf(out, "  Eb/N0: %s dB\n", strings.Trim(fmt.Sprint(cfg.EbN0), "[]"))
	fmt.Fprintf(out, "  Signal Power: %g W\n", cfg.SignalPower)
	fmt.Fprintf(out, "  Normal Sampler: %s\n", cfg.NormalMethod())
	fmt.Fprintf(out, "  Channels: %d\n", cfg.Channels)
	fmt.Fprintf(out, "  Steps: %d\n", cfg.Steps)
	fmt.Fprintf(out, "  Scenario: %s\n", sim.Scenario)
	fmt.Fprintf(out, "  Generate Charts: %t\n", sim.EnableGraphs)
	if sim.EnableGraphs {
		fmt.Fprintf(out, "  Output Directory: %s\n", sim.OutputDir)
	}
}
