package service

import (
	"context"

	"github.com/acikit/aci/transport"
)

// Decoder turns a response stream into a value of type T. The stream belongs
// to the decoder only for the duration of Decode; the caller closes it.
type Decoder[T any] interface {
	Decode(ctx context.Context, stream transport.ResponseStream) (T, error)
}

// DecoderFunc is an adapter to allow the use of ordinary functions as
// Decoders.
type DecoderFunc[T any] func(ctx context.Context, stream transport.ResponseStream) (T, error)

// Decode calls f(ctx, stream).
func (f DecoderFunc[T]) Decode(ctx context.Context, stream transport.ResponseStream) (T, error) {
	return f(ctx, stream)
}
