package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries the ID set by SetRequestID.
const RequestIDHeader = "X-Request-ID"

// RequestFunc may take information from an HTTP request and put it into a
// request context. In Clients, RequestFuncs are executed after creating the
// request but prior to invoking the HTTP client.
type RequestFunc func(context.Context, *http.Request) context.Context

// ClientResponseFunc may take information from an HTTP request and make the
// response available for consumption. ClientResponseFuncs are only executed in
// clients, after a request has been made, but prior to its status being
// checked.
type ClientResponseFunc func(context.Context, *http.Response) context.Context

type contextKey int

const (
	contextKeyRequestID contextKey = iota
)

// SetRequestHeader returns a RequestFunc that sets the specified header.
func SetRequestHeader(key, val string) RequestFunc {
	return func(ctx context.Context, r *http.Request) context.Context {
		r.Header.Set(key, val)
		return ctx
	}
}

// SetRequestID returns a RequestFunc that tags each request with a random
// UUID in the X-Request-ID header and stores it in the context.
func SetRequestID() RequestFunc {
	return func(ctx context.Context, r *http.Request) context.Context {
		id := uuid.NewString()
		r.Header.Set(RequestIDHeader, id)
		return context.WithValue(ctx, contextKeyRequestID, id)
	}
}

// RequestID returns the ID stored by SetRequestID, if any.
func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKeyRequestID).(string)
	return id, ok
}
