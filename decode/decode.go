package decode

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/acikit/aci/charset"
	"github.com/acikit/aci/service"
	"github.com/acikit/aci/transport"
)

// Bytes returns the response verbatim. It does not look at the content type
// or for ACI errors.
func Bytes() service.Decoder[[]byte] {
	return service.DecoderFunc[[]byte](func(_ context.Context, stream transport.ResponseStream) ([]byte, error) {
		return read(stream, "unable to copy ACI response to a byte array")
	})
}

// String returns the response as text, decoded with the charset named in the
// response's content type or, if there is none, defaultCharset. An empty
// defaultCharset means UTF-8.
func String(defaultCharset string) service.Decoder[string] {
	return service.DecoderFunc[string](func(_ context.Context, stream transport.ResponseStream) (string, error) {
		b, err := read(stream, "unable to read ACI response")
		if err != nil {
			return "", err
		}
		name := stream.ContentEncoding()
		if name == "" {
			name = defaultCharset
		}
		if name == "" {
			name = "UTF-8"
		}
		s, err := charset.BytesToString(b, name)
		if err != nil {
			return "", &Error{Code: CodeMalformed, Err: err}
		}
		return s, nil
	})
}

// Response is the envelope shared by all ACI XML responses.
type Response struct {
	XMLName  xml.Name     `xml:"autnresponse"`
	Action   string       `xml:"action"`
	Response string       `xml:"response"`
	Data     ResponseData `xml:"responsedata"`
}

// ResponseData holds the raw contents of the responsedata element.
type ResponseData struct {
	Inner []byte `xml:",innerxml"`
}

// Succeeded reports whether the server answered SUCCESS.
func (r *Response) Succeeded() bool {
	return strings.EqualFold(r.Response, "SUCCESS")
}

type errorResponse struct {
	XMLName  xml.Name     `xml:"autnresponse"`
	Response string       `xml:"response"`
	Error    *ServerError `xml:"responsedata>error"`
}

// XML parses an ACI XML response into T. If the server answered with an
// error response, the *Error has CodeServerError and wraps a *ServerError.
// T is unmarshalled from the whole document, so its root must match
// autnresponse.
func XML[T any]() service.Decoder[T] {
	return service.DecoderFunc[T](func(_ context.Context, stream transport.ResponseStream) (T, error) {
		var v T
		b, err := read(stream, "unable to read ACI response")
		if err != nil {
			return v, err
		}
		if err := checkResponse(b); err != nil {
			return v, err
		}
		if err := unmarshal(b, &v); err != nil {
			return v, &Error{Code: CodeMalformed, Err: errors.Wrap(err, "unable to parse ACI response")}
		}
		return v, nil
	})
}

// Envelope parses the response into a *Response, failing on ACI error
// responses like XML does.
func Envelope() service.Decoder[*Response] {
	return XML[*Response]()
}

func checkResponse(b []byte) error {
	var r errorResponse
	if err := unmarshal(b, &r); err != nil {
		return &Error{Code: CodeMalformed, Err: errors.Wrap(err, "unable to parse ACI response")}
	}
	if !strings.EqualFold(r.Response, "ERROR") {
		return nil
	}
	if r.Error == nil {
		r.Error = &ServerError{}
	}
	return &Error{Code: CodeServerError, Err: r.Error}
}

// unmarshal is xml.Unmarshal that also accepts documents declared in any
// charset known to the charset package.
func unmarshal(b []byte, v interface{}) error {
	d := xml.NewDecoder(bytes.NewReader(b))
	d.CharsetReader = func(label string, r io.Reader) (io.Reader, error) {
		enc, err := charset.Lookup(label)
		if err != nil {
			return nil, err
		}
		return enc.NewDecoder().Reader(r), nil
	}
	return d.Decode(v)
}

func read(r io.Reader, msg string) ([]byte, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{Code: CodeRead, Err: errors.Wrap(err, msg)}
	}
	return b, nil
}
