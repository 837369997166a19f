package visualization

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/brianbland/awgnsim/pkg/analysis"
	"github.com/brianbland/awgnsim/pkg/modem"
	"github.com/brianbland/awgnsim/pkg/scenarios"
)

// maxScatterPoints caps the received symbols drawn per channel
const maxScatterPoints = 2000

// GenerateConstellationChart plots received samples per channel against the
// ideal constellation points
func (g *Generator) GenerateConstellationChart(scenario scenarios.Scenario, result analysis.Result, filename string) error {
	if len(result.Outputs) == 0 {
		return fmt.Errorf("result for %s has no outputs", scenario.Name)
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  DefaultChartOptions.widthPx(),
			Height: DefaultChartOptions.heightPx(),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Received Constellation: %s", scenario.Name),
			Subtitle: fmt.Sprintf("Seed %d, %s sampler", result.Seed, result.Method),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "In-phase",
			Type: "value",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Quadrature",
			Type: "value",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "10%",
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  opts.Bool(true),
					Type:  "png",
					Title: "Save as Image",
				},
			},
		}),
	)

	channels := len(result.Outputs[0])
	for k := 0; k < channels; k++ {
		points := make([]opts.ScatterData, 0, min(len(result.Outputs), maxScatterPoints))
		for i, out := range result.Outputs {
			if i == maxScatterPoints {
				break
			}
			points = append(points, opts.ScatterData{
				Value:      []interface{}{real(out[k]), imag(out[k])},
				SymbolSize: 3,
			})
		}
		scatter.AddSeries(fmt.Sprintf("Channel %d", k), points)
	}

	if scenario.Modulation != 0 {
		ideal := modem.NewConstellation(scenario.Modulation).Points()
		points := make([]opts.ScatterData, len(ideal))
		for i, p := range ideal {
			points[i] = opts.ScatterData{
				Value:      []interface{}{real(p), imag(p)},
				Symbol:     "diamond",
				SymbolSize: 14,
			}
		}
		scatter.AddSeries(fmt.Sprintf("Ideal %s", scenario.Modulation), points)
	}

	if !strings.HasSuffix(filename, ".html") {
		filename += ".html"
	}

	file, err := os.Create(g.path(filename))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := scatter.Render(file); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	g.log.Info().Str("file", file.Name()).Msg("constellation chart saved")
	return nil
}

// GenerateNoiseChart draws the noise added on channel 0 as a PNG trace
func (g *Generator) GenerateNoiseChart(scenario scenarios.Scenario, result analysis.Result, filename string) error {
	n := min(len(result.Outputs), len(scenario.Frames))
	if n < 2 {
		return fmt.Errorf("need at least two steps to draw a trace, got %d", n)
	}

	steps := make([]float64, n)
	noiseRe := make([]float64, n)
	noiseIm := make([]float64, n)
	for i := 0; i < n; i++ {
		d := result.Outputs[i][0] - scenario.Frames[i][0]
		steps[i] = float64(i + 1)
		noiseRe[i] = real(d)
		noiseIm[i] = imag(d)
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Channel 0 Noise: %s", scenario.Name),
		Width:  DefaultChartOptions.Width,
		Height: DefaultChartOptions.Height,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   40,
				Right:  40,
				Bottom: 40,
			},
		},
		XAxis: chart.XAxis{
			Name: "Step",
		},
		YAxis: chart.YAxis{
			Name: "Noise",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "In-phase",
				XValues: steps,
				YValues: noiseRe,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 1,
				},
			},
			chart.ContinuousSeries{
				Name:    "Quadrature",
				XValues: steps,
				YValues: noiseIm,
				Style: chart.Style{
					StrokeColor:     chart.ColorBlue,
					StrokeWidth:     1,
					StrokeDashArray: []float64{5, 5},
				},
			},
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendThin(&graph),
	}

	file, err := os.Create(g.path(filename))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	g.log.Info().Str("file", file.Name()).Msg("noise chart saved")
	return nil
}

// GenerateChartsForResult writes the constellation and noise charts for a
// scenario, logging failures instead of returning them
func (g *Generator) GenerateChartsForResult(scenario scenarios.Scenario, result analysis.Result) {
	name := slug(scenario.Name)

	if err := g.GenerateConstellationChart(scenario, result, fmt.Sprintf("constellation_%s.html", name)); err != nil {
		g.log.Warn().Err(err).Str("scenario", scenario.Name).Msg("failed to generate constellation chart")
	}
	if err := g.GenerateNoiseChart(scenario, result, fmt.Sprintf("noise_%s.png", name)); err != nil {
		g.log.Warn().Err(err).Str("scenario", scenario.Name).Msg("failed to generate noise chart")
	}
}
