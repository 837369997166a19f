package modem

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// Modulation is a Gray-coded PSK scheme with unit average symbol power
type Modulation int

const (
	ModBPSK Modulation = 1 // 1 bit per symbol
	ModQPSK Modulation = 2 // 2 bits per symbol
)

// BitsPerSymbol returns the number of bits per constellation symbol.
func (m Modulation) BitsPerSymbol() int {
	return int(m)
}

// String returns the modulation name.
func (m Modulation) String() string {
	switch m {
	case ModBPSK:
		return "BPSK"
	case ModQPSK:
		return "QPSK"
	default:
		return "Unknown"
	}
}

// ParseModulation parses a modulation name
func ParseModulation(s string) (Modulation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bpsk":
		return ModBPSK, nil
	case "qpsk":
		return ModQPSK, nil
	default:
		return 0, fmt.Errorf("unknown modulation: %s", s)
	}
}

// Constellation holds the symbol points of a modulation.
type Constellation struct {
	Mod    Modulation
	points []complex128
}

// NewConstellation creates a new constellation for the given modulation.
func NewConstellation(mod Modulation) *Constellation {
	c := &Constellation{Mod: mod}
	switch mod {
	case ModBPSK:
		c.points = []complex128{1, -1}
	default:
		c.Mod = ModQPSK
		// Gray-coded QPSK: 00, 01, 11, 10
		a := 1 / math.Sqrt2
		c.points = []complex128{
			complex(a, a),
			complex(-a, a),
			complex(-a, -a),
			complex(a, -a),
		}
	}
	return c
}

// Points returns a copy of the constellation points
func (c *Constellation) Points() []complex128 {
	return append([]complex128(nil), c.points...)
}

// Map maps bits to a constellation point.
func (c *Constellation) Map(bits []byte) complex128 {
	idx := bitsToIndex(bits)
	if c.Mod == ModQPSK {
		// index order follows the Gray sequence 00, 01, 11, 10
		idx = [4]int{0, 1, 3, 2}[idx&3]
	}
	return c.points[idx%len(c.points)]
}

// Demap returns the bits of the closest constellation point.
func (c *Constellation) Demap(symbol complex128) []byte {
	minDist := math.MaxFloat64
	minIdx := 0
	for i, p := range c.points {
		d := real(symbol-p)*real(symbol-p) + imag(symbol-p)*imag(symbol-p)
		if d < minDist {
			minDist = d
			minIdx = i
		}
	}
	if c.Mod == ModQPSK {
		minIdx = [4]int{0, 1, 3, 2}[minIdx]
	}
	return indexToBits(minIdx, c.Mod.BitsPerSymbol())
}

// MapBits maps a bit slice to constellation symbols.
// bits are packed as bytes (0 or 1 each).
func (c *Constellation) MapBits(bits []byte) []complex128 {
	bps := c.Mod.BitsPerSymbol()
	numSymbols := len(bits) / bps
	symbols := make([]complex128, numSymbols)
	for i := 0; i < numSymbols; i++ {
		symbols[i] = c.Map(bits[i*bps : (i+1)*bps])
	}
	return symbols
}

// DemapSymbols demaps constellation symbols back to bits.
func (c *Constellation) DemapSymbols(symbols []complex128) []byte {
	bits := make([]byte, 0, len(symbols)*c.Mod.BitsPerSymbol())
	for _, s := range symbols {
		bits = append(bits, c.Demap(s)...)
	}
	return bits
}

// TheoreticalBER returns the hard-decision bit error rate for a unit-power
// constellation through a channel whose total complex noise power is
// 1/(2*10^(ebN0/10)). Each quadrature then sees variance 1/(4*10^(ebN0/10)).
func (m Modulation) TheoreticalBER(ebN0dB float64) float64 {
	gamma := math.Pow(10, ebN0dB/10)
	sigma := math.Sqrt(1 / (4 * gamma))
	amplitude := 1.0
	if m == ModQPSK {
		amplitude = 1 / math.Sqrt2
	}
	return distuv.UnitNormal.Survival(amplitude / sigma)
}

// CountBitErrors returns the number of positions where a and b differ
func CountBitErrors(a, b []byte) int {
	n := min(len(a), len(b))
	errs := 0
	for i := 0; i < n; i++ {
		if a[i]&1 != b[i]&1 {
			errs++
		}
	}
	return errs
}

func bitsToIndex(bits []byte) int {
	idx := 0
	for _, b := range bits {
		idx = (idx << 1) | int(b&1)
	}
	return idx
}

func indexToBits(idx, numBits int) []byte {
	bits := make([]byte, numBits)
	for i := numBits - 1; i >= 0; i-- {
		bits[i] = byte(idx & 1)
		idx >>= 1
	}
	return bits
}
