package service

import (
	"context"
	"errors"

	"github.com/acikit/aci/action"
	"github.com/acikit/aci/server"
	"github.com/acikit/aci/transport"
)

// Service executes actions through a Transport.
type Service struct {
	transport transport.Transport
	details   *server.Details
}

// Option sets an optional parameter for services.
type Option func(*Service)

// WithTransport sets the Transport actions are sent through.
func WithTransport(t transport.Transport) Option {
	return func(s *Service) { s.transport = t }
}

// WithServerDetails sets the server Execute sends actions to.
func WithServerDetails(d *server.Details) Option {
	return func(s *Service) { s.details = d }
}

// New returns a Service. Without options it has neither a Transport nor a
// default server and every call fails until they are set.
func New(options ...Option) *Service {
	s := &Service{}
	for _, option := range options {
		option(s)
	}
	return s
}

// Transport returns the configured Transport, or nil.
func (s *Service) Transport() transport.Transport {
	if s == nil {
		return nil
	}
	return s.transport
}

// SetTransport replaces the Transport. nil is allowed.
func (s *Service) SetTransport(t transport.Transport) { s.transport = t }

// ServerDetails returns the default server, or nil.
func (s *Service) ServerDetails() *server.Details {
	if s == nil {
		return nil
	}
	return s.details
}

// SetServerDetails replaces the default server. nil is allowed.
func (s *Service) SetServerDetails(d *server.Details) { s.details = d }

// Execute runs an action against the service's default server. See
// ExecuteOn.
func Execute[T any](ctx context.Context, s *Service, params *action.Parameters, dec Decoder[T]) (T, error) {
	return ExecuteOn(ctx, s, s.ServerDetails(), params, dec)
}

// ExecuteOn runs an action against details, leaving the service's default
// server alone.
//
// Arguments are checked in this order, stopping at the first problem:
// transport, server details, parameters (nil, then empty), decoder. The
// action is then sent exactly once and the response stream decoded with dec.
// The stream is closed exactly once on every path, including a panicking
// decoder.
func ExecuteOn[T any](ctx context.Context, s *Service, details *server.Details, params *action.Parameters, dec Decoder[T]) (T, error) {
	var zero T

	t := s.Transport()
	switch {
	case noTransport(t):
		return zero, ErrNoTransport
	case details == nil:
		return zero, ErrNoServerDetails
	case params == nil:
		return zero, ErrNilParameters
	case params.Len() == 0:
		return zero, ErrEmptyParameters
	case noDecoder(dec):
		return zero, ErrNilDecoder
	}

	stream, err := t.Send(ctx, details, params)
	if err != nil {
		if stream != nil {
			stream.Close()
		}
		return zero, Error{Kind: kindOf(err), Err: err}
	}
	if stream == nil {
		return zero, Error{Kind: KindProtocol, Err: transport.ErrNoResponse}
	}
	defer stream.Close()

	response, err := decode(ctx, dec, stream)
	if err != nil {
		return zero, Error{Kind: KindDecode, Err: err}
	}
	return response, nil
}

// A nil func adapter wrapped in its interface is as missing as a nil
// interface.
func noTransport(t transport.Transport) bool {
	f, ok := t.(transport.TransportFunc)
	return t == nil || (ok && f == nil)
}

func noDecoder[T any](dec Decoder[T]) bool {
	f, ok := dec.(DecoderFunc[T])
	return dec == nil || (ok && f == nil)
}

func decode[T any](ctx context.Context, dec Decoder[T], stream transport.ResponseStream) (response T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return dec.Decode(ctx, stream)
}

func kindOf(err error) Kind {
	var pe *transport.ProtocolError
	if errors.As(err, &pe) {
		return KindProtocol
	}
	return KindTransport
}
