package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/brianbland/awgnsim/pkg/analysis"
	"github.com/brianbland/awgnsim/pkg/config"
	"github.com/brianbland/awgnsim/pkg/modem"
	"github.com/brianbland/awgnsim/pkg/randomizer"
)

// Options controls a bit error rate sweep
type Options struct {
	Start      float64 // first Eb/N0 in dB
	Stop       float64 // last Eb/N0 in dB, inclusive
	StepDB     float64
	Modulation modem.Modulation
	Workers    int
}

// DefaultOptions sweeps QPSK from 0 to 10 dB in 1 dB steps
func DefaultOptions() Options {
	return Options{
		Start:      0,
		Stop:       10,
		StepDB:     1,
		Modulation: modem.ModQPSK,
		Workers:    runtime.NumCPU(),
	}
}

// Validate checks the sweep range
func (o Options) Validate() error {
	if !(o.StepDB > 0) {
		return fmt.Errorf("sweep step (%.3f dB) must be positive", o.StepDB)
	}
	if o.Stop < o.Start {
		return fmt.Errorf("sweep stop (%.3f dB) is below start (%.3f dB)", o.Stop, o.Start)
	}
	if o.Modulation != modem.ModBPSK && o.Modulation != modem.ModQPSK {
		return fmt.Errorf("unsupported modulation %d", o.Modulation)
	}
	return nil
}

// Points returns the Eb/N0 values covered by the sweep
func (o Options) Points() []float64 {
	n := int((o.Stop-o.Start)/o.StepDB+1e-9) + 1
	points := make([]float64, n)
	for i := range points {
		points[i] = o.Start + float64(i)*o.StepDB
	}
	return points
}

// Point is the measured and predicted bit error rate at one Eb/N0
type Point struct {
	EbN0           float64
	Seed           uint32
	Bits           int
	BitErrors      int
	BER            float64
	TheoreticalBER float64
}

// Progress reports how far a sweep has come
type Progress struct {
	Total     int
	Completed int
	StartTime time.Time
}

// ProgressCallback is called after each completed point
type ProgressCallback func(progress Progress)

type job struct {
	index int
	ebN0  float64
}

// Runner measures bit error rate over a range of Eb/N0 values. Every point
// runs on its own channel, seeded from the base seed and the point index, so
// the result does not depend on the number of workers.
type Runner struct {
	config  config.Config
	options Options
	log     zerolog.Logger
}

// NewRunner creates a sweep runner
func NewRunner(cfg config.Config, options Options, log zerolog.Logger) *Runner {
	if options.Workers <= 0 {
		options.Workers = 1
	}
	return &Runner{config: cfg, options: options, log: log}
}

// Run executes the sweep and returns the points ordered by Eb/N0
func (r *Runner) Run(ctx context.Context, progressCallback ProgressCallback) ([]Point, error) {
	if err := r.options.Validate(); err != nil {
		return nil, err
	}

	ebN0s := r.options.Points()
	r.log.Info().
		Int("points", len(ebN0s)).
		Int("workers", r.options.Workers).
		Str("modulation", r.options.Modulation.String()).
		Msg("starting sweep")

	jobs := make(chan job)
	results := make([]Point, len(ebN0s))

	var mu sync.Mutex
	progress := Progress{Total: len(ebN0s), StartTime: time.Now()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i, v := range ebN0s {
			select {
			case jobs <- job{index: i, ebN0: v}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < r.options.Workers; w++ {
		g.Go(func() error {
			for j := range jobs {
				point, err := r.measure(j)
				if err != nil {
					return fmt.Errorf("eb/n0 %.2f dB: %w", j.ebN0, err)
				}
				results[j.index] = point

				mu.Lock()
				progress.Completed++
				p := progress
				mu.Unlock()
				if progressCallback != nil {
					progressCallback(p)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// measure runs Steps frames of random symbols at one Eb/N0
func (r *Runner) measure(j job) (Point, error) {
	cfg := r.config
	cfg.Seed = pointSeed(r.config.Seed, j.index)
	// Constellations have unit average power.
	cfg.SignalPower = 1

	ch, err := analysis.NewChannel(cfg, []float64{j.ebN0}, r.log)
	if err != nil {
		return Point{}, err
	}
	defer ch.Release()

	bitSource := randomizer.NewTwister(cfg.Seed ^ 0x9e3779b9)
	c := modem.NewConstellation(r.options.Modulation)
	bits := make([]byte, cfg.Channels*r.options.Modulation.BitsPerSymbol())

	point := Point{
		EbN0:           j.ebN0,
		Seed:           cfg.Seed,
		TheoreticalBER: r.options.Modulation.TheoreticalBER(j.ebN0),
	}
	for step := 0; step < cfg.Steps; step++ {
		for i := range bits {
			bits[i] = byte(bitSource.Uint32() >> 31)
		}
		out, err := ch.Step(c.MapBits(bits))
		if err != nil {
			return Point{}, err
		}
		point.BitErrors += modem.CountBitErrors(bits, c.DemapSymbols(out))
		point.Bits += len(bits)
	}
	point.BER = float64(point.BitErrors) / float64(point.Bits)

	r.log.Debug().
		Float64("ebn0", j.ebN0).
		Int("errors", point.BitErrors).
		Float64("ber", point.BER).
		Msg("sweep point done")
	return point, nil
}

// pointSeed derives a nonzero per-point seed
func pointSeed(base uint32, index int) uint32 {
	if base == 0 {
		base = randomizer.DefaultSeed
	}
	seed := base + uint32(index)*7919
	if seed == 0 {
		seed = randomizer.DefaultSeed
	}
	return seed
}
