package circuitbreaker_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/acikit/aci/action"
	"github.com/acikit/aci/server"
	"github.com/acikit/aci/transport"
)

var details = server.New("localhost", 9000)

func testFailingTransport(t *testing.T, breaker transport.Middleware, primeWith int, shouldPass func(int) bool, openCircuitError string) {
	// Create a mock transport and wrap it with the breaker.
	m := mock{}
	var tr transport.Transport = transport.TransportFunc(m.send)
	tr = breaker(tr)

	// Prime the transport with successful requests.
	for i := 0; i < primeWith; i++ {
		stream, err := tr.Send(context.Background(), details, action.New("GetStatus"))
		if err != nil {
			t.Fatalf("during priming, got error: %v", err)
		}
		if stream == nil {
			t.Fatal("during priming, got no stream")
		}
		stream.Close()
	}

	// Switch the transport to start throwing errors.
	m.err = errors.New("tragedy+disaster")
	m.thru = 0

	// The first several should be allowed through and yield our error.
	for i := 0; shouldPass(i); i++ {
		if _, err := tr.Send(context.Background(), details, action.New("GetStatus")); err != m.err {
			t.Fatalf("want %v, have %v", m.err, err)
		}
	}
	thru := m.thru

	// But the rest should be blocked by an open circuit.
	for i := 0; i < 10; i++ {
		stream, err := tr.Send(context.Background(), details, action.New("GetStatus"))
		if err == nil || err.Error() != openCircuitError {
			t.Fatalf("want %q, have %v", openCircuitError, err)
		}
		if stream != nil {
			t.Fatal("open circuit returned a stream")
		}
	}

	// Make sure none of those got through.
	if want, have := thru, m.thru; want != have {
		t.Errorf("want %d, have %d", want, have)
	}
}

type mock struct {
	thru int
	err  error
}

func (m *mock) send(context.Context, *server.Details, *action.Parameters) (transport.ResponseStream, error) {
	m.thru++
	if m.err != nil {
		return nil, m.err
	}
	return transport.NewStream(io.NopCloser(strings.NewReader("")), 200, nil), nil
}
