package visualization

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/brianbland/awgnsim/pkg/analysis"
	"github.com/brianbland/awgnsim/pkg/scenarios"
	"github.com/brianbland/awgnsim/pkg/sweep"
)

// BERData holds one bit error rate curve
type BERData struct {
	EbN0        []float64
	Measured    []float64
	Theoretical []float64
}

// NewBERData collects sweep points into chart series
func NewBERData(points []sweep.Point) BERData {
	var data BERData
	for _, p := range points {
		data.EbN0 = append(data.EbN0, p.EbN0)
		data.Measured = append(data.Measured, p.BER)
		data.Theoretical = append(data.Theoretical, p.TheoreticalBER)
	}
	return data
}

// ChartGenerator defines the interface for generating charts
type ChartGenerator interface {
	GenerateBERChart(data BERData, title, filename string) error
	GenerateBERChartHTML(data BERData, title, filename string) error
	GenerateConstellationChart(scenario scenarios.Scenario, result analysis.Result, filename string) error
	GenerateNoiseChart(scenario scenarios.Scenario, result analysis.Result, filename string) error
	GenerateChartsForResult(scenario scenarios.Scenario, result analysis.Result)
}

// Generator implements ChartGenerator. Relative file names are placed under
// the output directory.
type Generator struct {
	outputDir string
	log       zerolog.Logger
}

// NewGenerator creates a new chart generator
func NewGenerator(outputDir string, log zerolog.Logger) ChartGenerator {
	if outputDir == "" {
		outputDir = "."
	}
	return &Generator{outputDir: outputDir, log: log}
}

// ChartOptions contains styling and size options for charts
type ChartOptions struct {
	Width  int
	Height int
}

// DefaultChartOptions matches the size used by every chart
var DefaultChartOptions = ChartOptions{Width: 1200, Height: 800}

func (o ChartOptions) widthPx() string  { return fmt.Sprintf("%dpx", o.Width) }
func (o ChartOptions) heightPx() string { return fmt.Sprintf("%dpx", o.Height) }

func (g *Generator) path(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(g.outputDir, filename)
}

// slug turns a scenario name into a file name fragment
func slug(name string) string {
	s := strings.ToLower(name)
	s = strings.NewReplacer(" ", "_", "/", "", "(", "", ")", "").Replace(s)
	return s
}
