package circuitbreaker

import (
	"context"
	"time"

	"github.com/streadway/handy/breaker"

	"github.com/acikit/aci/action"
	"github.com/acikit/aci/server"
	"github.com/acikit/aci/transport"
)

// HandyBreaker returns a transport.Middleware that implements the circuit
// breaker pattern using the streadway/handy/breaker package. Only errors
// returned by the wrapped transport count against the circuit breaker's error
// count.
//
// See http://godoc.org/github.com/streadway/handy/breaker for more
// information.
func HandyBreaker(cb breaker.Breaker) transport.Middleware {
	return func(next transport.Transport) transport.Transport {
		return transport.TransportFunc(func(ctx context.Context, details *server.Details, params *action.Parameters) (stream transport.ResponseStream, err error) {
			if !cb.Allow() {
				return nil, breaker.ErrCircuitOpen
			}

			defer func(begin time.Time) {
				if err == nil {
					cb.Success(time.Since(begin))
				} else {
					cb.Failure(time.Since(begin))
				}
			}(time.Now())

			return next.Send(ctx, details, params)
		})
	}
}
