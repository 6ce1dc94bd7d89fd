package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/acikit/aci/action"
	"github.com/acikit/aci/server"
)

// Transport sends an action to a server. Implementations must be safe for
// concurrent use.
//
// Errors that are not *ProtocolError are treated as I/O failures, which
// callers may consider retryable. When Send returns an error it should not
// return a stream; if it does, the caller closes it.
type Transport interface {
	Send(ctx context.Context, details *server.Details, params *action.Parameters) (ResponseStream, error)
}

// TransportFunc is an adapter to allow the use of ordinary functions as
// Transports.
type TransportFunc func(ctx context.Context, details *server.Details, params *action.Parameters) (ResponseStream, error)

// Send calls f(ctx, details, params).
func (f TransportFunc) Send(ctx context.Context, details *server.Details, params *action.Parameters) (ResponseStream, error) {
	return f(ctx, details, params)
}

// ResponseStream is the raw reply to one action. It must be closed exactly
// once.
type ResponseStream interface {
	io.ReadCloser

	StatusCode() int
	ContentType() string

	// ContentEncoding returns the charset parameter of the content type, or
	// "" if the server did not send one.
	ContentEncoding() string

	Header(name string) string
}

// ErrNoResponse is returned when a Transport reports success without a
// stream.
var ErrNoResponse = &ProtocolError{Err: errors.New("transport returned no response")}

// ErrBadRequest marks a ProtocolError raised before anything was sent,
// because the request could not be built from the server details and
// parameters.
var ErrBadRequest = errors.New("unable to build request")

// ProtocolError is a failure of the exchange itself rather than of the
// network, for example an unexpected HTTP status. It is generally not worth
// retrying.
type ProtocolError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *ProtocolError) Error() string {
	switch {
	case e.Err != nil && e.Status != "":
		return fmt.Sprintf("protocol error: %s: %v", e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("protocol error: %v", e.Err)
	default:
		return fmt.Sprintf("protocol error: %s", e.Status)
	}
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// Stream is a ResponseStream over any io.ReadCloser.
type Stream struct {
	io.ReadCloser
	Status  int
	Headers http.Header
}

// NewStream returns a Stream with the given body, status and headers. A nil
// header is treated as empty.
func NewStream(body io.ReadCloser, status int, header http.Header) *Stream {
	if header == nil {
		header = http.Header{}
	}
	return &Stream{ReadCloser: body, Status: status, Headers: header}
}

// StatusCode implements ResponseStream.
func (s *Stream) StatusCode() int { return s.Status }

// ContentType implements ResponseStream.
func (s *Stream) ContentType() string { return s.Headers.Get("Content-Type") }

// ContentEncoding implements ResponseStream.
func (s *Stream) ContentEncoding() string {
	ct := s.ContentType()
	if ct == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return params["charset"]
}

// Header implements ResponseStream.
func (s *Stream) Header(name string) string { return s.Headers.Get(name) }
