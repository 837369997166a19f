package visualization

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/wcharczuk/go-chart/v2"
)

// berFloor replaces zero error rates so they stay on a log axis
const berFloor = 1e-7

// GenerateBERChart renders measured and theoretical bit error rate as a PNG.
// The Y axis is log10(BER).
func (g *Generator) GenerateBERChart(data BERData, title, filename string) error {
	if len(data.EbN0) < 2 {
		return fmt.Errorf("need at least two points to draw a curve, got %d", len(data.EbN0))
	}

	graph := chart.Chart{
		Title:  title,
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
			Name: "Eb/N0 (dB)",
		},
		YAxis: chart.YAxis{
			Name: "log10(BER)",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Measured",
				XValues: data.EbN0,
				YValues: log10All(data.Measured),
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 2,
					DotColor:    chart.ColorRed,
					DotWidth:    3,
				},
			},
			chart.ContinuousSeries{
				Name:    "Theory",
				XValues: data.EbN0,
				YValues: log10All(data.Theoretical),
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

	g.log.Info().Str("file", file.Name()).Msg("BER chart saved")
	return nil
}

// GenerateBERChartHTML renders the same curves as an interactive chart with a
// logarithmic Y axis
func (g *Generator) GenerateBERChartHTML(data BERData, title, filename string) error {
	line := charts.NewLine()

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  DefaultChartOptions.widthPx(),
			Height: DefaultChartOptions.heightPx(),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "Measured vs theoretical bit error rate - Logarithmic Scale",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Eb/N0 (dB)",
			Type: "value",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "BER",
			Type: "log",
			Min:  berFloor,
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
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show:  opts.Bool(true),
					Title: map[string]string{"zoom": "Zoom", "back": "Back"},
				},
			},
		}),
	)

	line.AddSeries("Measured", lineData(data.EbN0, data.Measured),
		charts.WithLineStyleOpts(opts.LineStyle{
			Width: 2,
		}),
	).
		AddSeries("Theory", lineData(data.EbN0, data.Theoretical),
			charts.WithLineChartOpts(opts.LineChart{
				Smooth: opts.Bool(true),
			}),
			charts.WithLineStyleOpts(opts.LineStyle{
				Width: 1,
				Type:  "dashed",
			}),
		)

	if !strings.HasSuffix(filename, ".html") {
		filename = strings.TrimSuffix(filename, ".png") + ".html"
	}

	file, err := os.Create(g.path(filename))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := line.Render(file); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	g.log.Info().Str("file", file.Name()).Msg("interactive BER chart saved")
	return nil
}

func lineData(xs, ys []float64) []opts.LineData {
	items := make([]opts.LineData, len(ys))
	for i, y := range ys {
		items[i] = opts.LineData{Value: []interface{}{xs[i], math.Max(y, berFloor)}}
	}
	return items
}

func log10All(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = math.Log10(math.Max(v, berFloor))
	}
	return out
}
