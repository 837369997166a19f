package randomizer

import (
	"fmt"
	"math"
	"strings"
)

// NormalMethod selects the algorithm used to turn uniform draws into
// standard normal variates.
type NormalMethod string

const (
	NormalMethodZiggurat  NormalMethod = "ziggurat"
	NormalMethodPolar     NormalMethod = "polar"
	NormalMethodInversion NormalMethod = "inversion"
)

const (
	zigguratTailStart = 3.65415288536101
	zigguratTailScale = 0.273661237329758
)

// ParseNormalMethod parses a string into a NormalMethod
func ParseNormalMethod(s string) (NormalMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ziggurat", "zig", "":
		return NormalMethodZiggurat, nil
	case "polar", "box-muller":
		return NormalMethodPolar, nil
	case "inversion", "inverse", "as241":
		return NormalMethodInversion, nil
	default:
		return "", fmt.Errorf("unknown normal method: %s (valid options: %s)", s, strings.Join(GetAvailableMethods(), ", "))
	}
}

// GetAvailableMethods returns all supported normal methods
func GetAvailableMethods() []string {
	return []string{
		string(NormalMethodZiggurat),
		string(NormalMethodPolar),
		string(NormalMethodInversion),
	}
}

// GetMethodDescription returns a description for the given method
func GetMethodDescription(m NormalMethod) string {
	switch m {
	case NormalMethodZiggurat:
		return "Table-driven ziggurat rejection sampler (256 layers)"
	case NormalMethodPolar:
		return "Marsaglia polar method, caches the second variate of each pair"
	case NormalMethodInversion:
		return "Inverse normal CDF via Wichura's AS241 rational approximation"
	default:
		return "Unknown method"
	}
}

// NormalSampler draws standard normal variates from a twister. The polar
// spare value is owned by the sampler, so two samplers never share it.
type NormalSampler struct {
	src    *Twister
	method NormalMethod

	haveSaved bool
	saved     float64
}

// NewNormalSampler creates a sampler over src using method.
func NewNormalSampler(src *Twister, method NormalMethod) *NormalSampler {
	if method == "" {
		method = NormalMethodZiggurat
	}
	return &NormalSampler{src: src, method: method}
}

// Method returns the active method.
func (s *NormalSampler) Method() NormalMethod {
	return s.method
}

// Source returns the underlying generator.
func (s *NormalSampler) Source() *Twister {
	return s.src
}

// Reset drops any cached polar value.
func (s *NormalSampler) Reset() {
	s.haveSaved = false
	s.saved = 0
}

// Next returns one standard normal variate.
func (s *NormalSampler) Next() (float64, error) {
	switch s.method {
	case NormalMethodZiggurat:
		return ziggurat(s.src)
	case NormalMethodPolar:
		return s.polar()
	case NormalMethodInversion:
		u, err := s.src.Float64()
		if err != nil {
			return 0, err
		}
		return InverseNormal(u), nil
	default:
		return 0, fmt.Errorf("unsupported normal method: %s", s.method)
	}
}

// ziggurat draws with the 256-layer table. Layer and abscissa come from the
// raw bits of two consecutive words.
func ziggurat(src Source) (float64, error) {
	for {
		u0 := src.Uint32()
		u1 := src.Uint32()
		i := int(u1>>24) + 1
		x := (float64(u0>>3)*16777216.0+float64(u1&0xFFFFFF))*2.2204460492503131e-16 - 1.0
		z := x * zigguratX[i]
		if math.Abs(z) <= zigguratX[i-1] {
			return z, nil
		}

		if i < zigguratLayers {
			u, err := src.Float64()
			if err != nil {
				return 0, err
			}
			if zigguratF[i]+u*(zigguratF[i-1]-zigguratF[i]) < math.Exp(-0.5*z*z) {
				return z, nil
			}
			continue
		}

		// Tail beyond the last layer.
		var t float64
		for {
			u, err := src.Float64()
			if err != nil {
				return 0, err
			}
			t = math.Log(u) * zigguratTailScale
			u, err = src.Float64()
			if err != nil {
				return 0, err
			}
			if -2.0*math.Log(u) > t*t {
				break
			}
		}
		if z < 0 {
			return t - zigguratTailStart, nil
		}
		return zigguratTailStart - t, nil
	}
}

func (s *NormalSampler) polar() (float64, error) {
	if s.haveSaved {
		s.haveSaved = false
		return s.saved, nil
	}

	var r, v, t float64
	for {
		u0, err := s.src.Float64()
		if err != nil {
			return 0, err
		}
		u1, err := s.src.Float64()
		if err != nil {
			return 0, err
		}
		r = 2.0*u0 - 1.0
		v = 2.0*u1 - 1.0
		t = r*r + v*v
		if t <= 1.0 && t != 0 {
			break
		}
	}

	t = math.Sqrt(-2.0 * math.Log(t) / t)
	s.saved = v * t
	s.haveSaved = true
	return r * t, nil
}

// InverseNormal returns the standard normal quantile of u using AS241
// (PPND16). u must lie in (0,1).
func InverseNormal(u float64) float64 {
	q := u - 0.5
	if math.Abs(q) <= 0.425 {
		r := 0.180625 - q*q
		return q * (((((((2509.0809287301227*r+33430.575583588128)*r+
			67265.7709270087)*r+45921.95393154987)*r+
			13731.693765509461)*r+1971.5909503065513)*r+
			133.14166789178438)*r + 3.3871328727963665) /
			(((((((5226.4952788528544*r+28729.085735721943)*r+
				39307.895800092709)*r+21213.794301586597)*r+
				5394.1960214247511)*r+687.18700749205789)*r+
				42.313330701600911)*r + 1.0)
	}

	var r float64
	if q < 0 {
		r = math.Sqrt(-math.Log(u))
	} else {
		r = math.Sqrt(-math.Log(1.0 - u))
	}

	var z float64
	if r <= 5.0 {
		r -= 1.6
		z = (((((((0.00077454501427834139*r+0.022723844989269184)*r+
			0.24178072517745061)*r+1.2704582524523684)*r+
			3.6478483247632045)*r+5.769497221460691)*r+
			4.6303378461565456)*r + 1.4234371107496835) /
			(((((((1.0507500716444169e-9*r+0.00054759380849953455)*r+
				0.015198666563616457)*r+0.14810397642748008)*r+
				0.6897673349851)*r+1.6763848301838038)*r+
				2.053191626637759)*r + 1.0)
	} else {
		r -= 5.0
		z = (((((((2.0103343992922881e-7*r+2.7115555687434876e-5)*r+
			0.0012426609473880784)*r+0.026532189526576124)*r+
			0.29656057182850487)*r+1.7848265399172913)*r+
			5.4637849111641144)*r + 6.6579046435011033) /
			(((((((2.0442631033899397e-15*r+1.4215117583164459e-7)*r+
				1.8463183175100548e-5)*r+0.00078686913114561329)*r+
				0.014875361290850615)*r+0.13692988092273581)*r+
				0.599832206555888)*r + 1.0)
	}

	if q < 0 {
		z = -z
	}
	return z
}
