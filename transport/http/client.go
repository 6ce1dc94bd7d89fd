package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/acikit/aci/action"
	"github.com/acikit/aci/server"
	"github.com/acikit/aci/transport"
)

// HTTPClient is an interface that models *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a transport.Transport that talks HTTP.
type Client struct {
	client       HTTPClient
	method       string
	before       []RequestFunc
	after        []ClientResponseFunc
	errorHandler transport.ErrorHandler
	logger       log.Logger
}

// NewClient constructs a usable Client. By default it uses
// http.DefaultClient and sends actions with GET.
func NewClient(options ...ClientOption) *Client {
	c := &Client{
		client:       http.DefaultClient,
		method:       http.MethodGet,
		errorHandler: transport.NewLogErrorHandler(log.NewNopLogger()),
		logger:       log.NewNopLogger(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// ClientOption sets an optional parameter for clients.
type ClientOption func(*Client)

// SetClient sets the underlying HTTP client used for requests.
// By default, http.DefaultClient is used.
func SetClient(client HTTPClient) ClientOption {
	return func(c *Client) { c.client = client }
}

// SetMethod sets the HTTP method, GET or POST.
func SetMethod(method string) ClientOption {
	return func(c *Client) { c.method = strings.ToUpper(method) }
}

// SetClientBefore adds RequestFuncs that are applied to the outgoing HTTP
// request before it's invoked.
func SetClientBefore(before ...RequestFunc) ClientOption {
	return func(c *Client) { c.before = append(c.before, before...) }
}

// SetClientAfter adds ClientResponseFuncs applied to the incoming HTTP
// response prior to its status being checked.
func SetClientAfter(after ...ClientResponseFunc) ClientOption {
	return func(c *Client) { c.after = append(c.after, after...) }
}

// SetErrorHandler is used to handle failed round trips and protocol errors.
// By default, they are ignored.
func SetErrorHandler(errorHandler transport.ErrorHandler) ClientOption {
	return func(c *Client) { c.errorHandler = errorHandler }
}

// SetLogger is used to log requests at debug level.
func SetLogger(logger log.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// Send implements transport.Transport. Failures to build the request and
// non-2xx responses are reported as *transport.ProtocolError, the former
// also matching transport.ErrBadRequest. Anything the HTTP client returns is
// passed through unchanged.
func (c *Client) Send(ctx context.Context, details *server.Details, params *action.Parameters) (transport.ResponseStream, error) {
	req, err := c.newRequest(ctx, details, params)
	if err != nil {
		return nil, &transport.ProtocolError{Err: fmt.Errorf("%w: %w", transport.ErrBadRequest, err)}
	}

	for _, f := range c.before {
		ctx = f(ctx, req)
	}

	level.Debug(c.logger).Log("method", req.Method, "url", req.URL.Redacted(), "action", params.Action())

	resp, err := c.client.Do(req.WithContext(ctx))
	if err != nil {
		c.errorHandler.Handle(ctx, err)
		return nil, err
	}

	for _, f := range c.after {
		ctx = f(ctx, resp)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		err := &transport.ProtocolError{StatusCode: resp.StatusCode, Status: resp.Status}
		c.errorHandler.Handle(ctx, err)
		return nil, err
	}

	return transport.NewStream(resp.Body, resp.StatusCode, resp.Header), nil
}

func (c *Client) newRequest(ctx context.Context, details *server.Details, params *action.Parameters) (*http.Request, error) {
	if details == nil {
		return nil, ErrNoServerDetails
	}
	u, err := details.URL()
	if err != nil {
		return nil, err
	}
	cs := details.CharsetName()
	query, err := EncodeParameters(params, cs)
	if err != nil {
		return nil, err
	}

	switch c.method {
	case http.MethodGet:
		u.RawQuery = query
		return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	case http.MethodPost:
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), strings.NewReader(query))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset="+cs)
		return req, nil
	default:
		return nil, UnsupportedMethodError(c.method)
	}
}
