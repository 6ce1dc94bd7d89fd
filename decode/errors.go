package decode

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code distinguishes decode failures.
type Code int

const (
	// CodeRead means the response stream could not be read.
	CodeRead Code = iota + 1

	// CodeMalformed means the payload is not what the decoder expects.
	CodeMalformed

	// CodeServerError means the server answered with an ACI error response.
	CodeServerError
)

func (c Code) String() string {
	switch c {
	case CodeRead:
		return "read"
	case CodeMalformed:
		return "malformed"
	case CodeServerError:
		return "server error"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// Error is returned by the decoders in this package.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("decode (%s): %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ServerError is the error block of an ACI error response.
type ServerError struct {
	ID          string `xml:"errorid"`
	RawID       string `xml:"rawerrorid"`
	ErrorString string `xml:"errorstring"`
	Description string `xml:"errordescription"`
	Code        string `xml:"errorcode"`
	Time        string `xml:"errortime"`
}

func (e *ServerError) Error() string {
	switch {
	case e.ID != "" && e.Description != "":
		return e.ID + ": " + e.Description
	case e.Description != "":
		return e.Description
	case e.ID != "":
		return e.ID
	default:
		return "server reported an error"
	}
}

// AsServerError returns the ServerError inside err, if there is one.
func AsServerError(err error) (*ServerError, bool) {
	var se *ServerError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
