package channel

import (
	"errors"
	"fmt"
)

// Kind classifies channel errors
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindInvalidConfig
	KindInvalidState
	KindDomain
	KindInvalidGeneratorState
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindInvalidConfig:
		return "InvalidConfig"
	case KindInvalidState:
		return "InvalidState"
	case KindDomain:
		return "DomainError"
	case KindInvalidGeneratorState:
		return "InvalidGeneratorState"
	case KindInternal:
		return "InternalInvariantViolation"
	default:
		return "Unknown"
	}
}

// Error is a classified channel error carrying a stable message identifier
type Error struct {
	Kind    Kind
	ID      string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.ID, e.Message)
}

var (
	ErrNonNaNExpected   = &Error{KindInvalidArgument, "awgn:expectedNonNaN", "expected input to be non-NaN"}
	ErrPositiveExpected = &Error{KindInvalidArgument, "awgn:expectedPositive", "expected input to be positive"}
	ErrFiniteExpected   = &Error{KindInvalidArgument, "awgn:expectedFinite", "expected input to be finite"}
	ErrEmptyEbN0        = &Error{KindInvalidArgument, "awgn:expectedNonempty", "expected at least one Eb/N0 value"}

	ErrBadChannelCount         = &Error{KindInvalidConfig, "awgn:invalidSignalInputNumChan", "number of Eb/N0 values must be 1 or equal to the number of input channels"}
	ErrNonScalarForVarChannels = &Error{KindInvalidConfig, "awgn:propsNotScalarsForVarChannels", "Eb/N0 must be scalar when the number of input channels changes"}

	ErrNotConfigured      = &Error{KindInvalidState, "awgn:methodCalledWhenUnconfigured", "channel must be configured first"}
	ErrAlreadyLocked      = &Error{KindInvalidState, "awgn:methodCalledWhenLockedReleased", "setup cannot be called when the channel is locked or released"}
	ErrCalledWhenReleased = &Error{KindInvalidState, "awgn:methodCalledWhenReleased", "method cannot be called when the channel is released"}

	ErrNegativeSqrt = &Error{KindDomain, "awgn:elFunDomainError", "noise variance is negative"}

	ErrInvalidGeneratorState = &Error{KindInvalidGeneratorState, "awgn:invalidTwisterState", "random number generator state is invalid"}

	ErrTunablePropMismatch = &Error{KindInternal, "awgn:invalidTunableModAccess", "tunable property change flag modified during reset"}
)

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IDOf returns the message identifier of the first *Error in err's chain
func IDOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.ID
	}
	return ""
}
