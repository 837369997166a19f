package capture

import "github.com/google/uuid"

// Sample is a complex value stored as [re, im]
type Sample [2]float64

// Frame is one step through the channel
type Frame struct {
	EbN0   []float64 `json:"ebN0,omitempty"` // set when Eb/N0 was tuned for this step
	Input  []Sample  `json:"input"`
	Output []Sample  `json:"output"`
}

// Recording captures everything needed to replay a channel run bit for bit
type Recording struct {
	ID          uuid.UUID `json:"id"`
	Scenario    string    `json:"scenario"`
	Seed        uint32    `json:"seed"`
	Method      string    `json:"method"`
	EbN0        []float64 `json:"ebN0"`
	SignalPower float64   `json:"signalPower"`
	Channels    int       `json:"channels"`
	Frames      []Frame   `json:"frames"`
	// FinalState is the generator state after the last step.
	FinalState []uint32 `json:"finalState"`
	CreatedAt  int64    `json:"createdAt"`
}

// Mismatch describes the first difference found by Verify
type Mismatch struct {
	Frame   int
	Channel int
	Want    complex128
	Got     complex128
}

// NewRecordingID returns a fresh recording identifier
func NewRecordingID() uuid.UUID {
	return uuid.New()
}

func toSamples(xs []complex128) []Sample {
	out := make([]Sample, len(xs))
	for i, x := range xs {
		out[i] = Sample{real(x), imag(x)}
	}
	return out
}

func fromSamples(ss []Sample) []complex128 {
	out := make([]complex128, len(ss))
	for i, s := range ss {
		out[i] = complex(s[0], s[1])
	}
	return out
}
