package circuitbreaker

import (
	"context"

	"github.com/sony/gobreaker"

	"github.com/acikit/aci/action"
	"github.com/acikit/aci/server"
	"github.com/acikit/aci/transport"
)

// Gobreaker returns a transport.Middleware that implements the circuit
// breaker pattern using the sony/gobreaker package. Only errors returned by
// the wrapped transport count against the circuit breaker's error count.
//
// See http://godoc.org/github.com/sony/gobreaker for more information.
func Gobreaker(cb *gobreaker.CircuitBreaker) transport.Middleware {
	return func(next transport.Transport) transport.Transport {
		return transport.TransportFunc(func(ctx context.Context, details *server.Details, params *action.Parameters) (transport.ResponseStream, error) {
			res, err := cb.Execute(func() (interface{}, error) { return next.Send(ctx, details, params) })
			stream, _ := res.(transport.ResponseStream)
			return stream, err
		})
	}
}
