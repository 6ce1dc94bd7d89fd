package service

import (
	"errors"
	"fmt"
)

var (
	// ErrContractViolation is the class of errors caused by a missing
	// argument or dependency.
	ErrContractViolation = errors.New("contract violation")

	// ErrInvalidArgument is the class of errors caused by an argument that is
	// present but unusable.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoTransport is returned when the service has no transport.
	ErrNoTransport = fmt.Errorf("%w: transport not set", ErrContractViolation)

	// ErrNoServerDetails is returned when there is no server to send to.
	ErrNoServerDetails = fmt.Errorf("%w: server details not set", ErrContractViolation)

	// ErrNilParameters is returned for a nil parameter set.
	ErrNilParameters = fmt.Errorf("%w: nil parameters", ErrContractViolation)

	// ErrNilDecoder is returned when no decoder is given.
	ErrNilDecoder = fmt.Errorf("%w: nil decoder", ErrContractViolation)

	// ErrEmptyParameters is returned for a parameter set with no parameters.
	ErrEmptyParameters = fmt.Errorf("%w: empty parameters", ErrInvalidArgument)
)

// Kind tells which step of an action failed.
type Kind int

// These are the steps an Error can come from.
const (
	// KindTransport is a network or I/O failure while sending the action.
	KindTransport Kind = iota + 1

	// KindProtocol is a failure of the exchange itself, signalled by the
	// transport with a *transport.ProtocolError.
	KindProtocol

	// KindDecode is a failure to turn the response into a result, including
	// an error reported by the server inside the response.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "Transport"
	case KindProtocol:
		return "Protocol"
	case KindDecode:
		return "Decode"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is returned by Execute and ExecuteOn for every failure after
// argument validation.
type Error struct {
	// Kind is the step the error came from.
	Kind Kind

	// Err is the error returned by the transport or decoder, as is.
	Err error
}

// Error implements the error interface.
func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Err)
}

func (e Error) Unwrap() error { return e.Err }

// Retryable reports whether the action may succeed if sent again. Only
// transport failures are.
func (e Error) Retryable() bool { return e.Kind == KindTransport }

// PanicError is the decode failure reported when a Decoder panics.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("decoder panic: %v", e.Value)
}

// Unwrap returns the panic value if it was an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
