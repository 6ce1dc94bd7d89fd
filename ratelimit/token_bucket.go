// Package ratelimit limits how fast actions are sent.
package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/juju/ratelimit"

	"github.com/acikit/aci/action"
	"github.com/acikit/aci/server"
	"github.com/acikit/aci/transport"
)

// ErrLimited is returned in the request path when the rate limiter is
// triggered and the request is rejected.
var ErrLimited = errors.New("rate limit exceeded")

// NewTokenBucketLimiter returns a transport.Middleware that acts as a rate
// limiter based on a token-bucket algorithm. Requests that would exceed the
// maximum request rate are simply rejected with an error.
func NewTokenBucketLimiter(tb *ratelimit.Bucket) transport.Middleware {
	return NewErroringLimiter(NewAllower(tb))
}

// NewTokenBucketThrottler returns a transport.Middleware that acts as a
// request throttler based on a token-bucket algorithm. Requests that would
// exceed the maximum request rate are delayed.
func NewTokenBucketThrottler(tb *ratelimit.Bucket) transport.Middleware {
	return NewDelayingLimiter(NewWaiter(tb))
}

// Allower dictates whether or not a request is acceptable to run.
// The Limiter from "golang.org/x/time/rate" already implements this interface,
// one is able to use that in NewErroringLimiter without any modifications.
type Allower interface {
	Allow() bool
}

// NewErroringLimiter returns a transport.Middleware that acts as a rate
// limiter. Requests that would exceed the
// maximum request rate are simply rejected with an error.
func NewErroringLimiter(limit Allower) transport.Middleware {
	return func(next transport.Transport) transport.Transport {
		return transport.TransportFunc(func(ctx context.Context, details *server.Details, params *action.Parameters) (transport.ResponseStream, error) {
			if !limit.Allow() {
				return nil, ErrLimited
			}
			return next.Send(ctx, details, params)
		})
	}
}

// Waiter dictates how long a request must be delayed.
// The Limiter from "golang.org/x/time/rate" already implements this interface,
// one is able to use that in NewDelayingLimiter without any modifications.
type Waiter interface {
	Wait(ctx context.Context) error
}

// NewDelayingLimiter returns a transport.Middleware that acts as a
// request throttler. Requests that would
// exceed the maximum request rate are delayed via the Waiter function
func NewDelayingLimiter(limit Waiter) transport.Middleware {
	return func(next transport.Transport) transport.Transport {
		return transport.TransportFunc(func(ctx context.Context, details *server.Details, params *action.Parameters) (transport.ResponseStream, error) {
			if err := limit.Wait(ctx); err != nil {
				return nil, err
			}
			return next.Send(ctx, details, params)
		})
	}
}

// AllowerFunc is an adapter that lets a function operate as if
// it implements Allower
type AllowerFunc func() bool

// Allow makes the adapter implement Allower
func (f AllowerFunc) Allow() bool {
	return f()
}

// NewAllower turns an existing ratelimit.Bucket into an API-compatible form
func NewAllower(tb *ratelimit.Bucket) Allower {
	return AllowerFunc(func() bool {
		return (tb.TakeAvailable(1) != 0)
	})
}

// WaiterFunc is an adapter that lets a function operate as if
// it implements Waiter
type WaiterFunc func(ctx context.Context) error

// Wait makes the adapter implement Waiter
func (f WaiterFunc) Wait(ctx context.Context) error {
	return f(ctx)
}

// NewWaiter turns an existing ratelimit.Bucket into an API-compatible form
func NewWaiter(tb *ratelimit.Bucket) Waiter {
	return WaiterFunc(func(ctx context.Context) error {
		dur := tb.Take(1)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			// happy path
		}
		return nil
	})
}
