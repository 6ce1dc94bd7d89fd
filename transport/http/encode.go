package http

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/acikit/aci/action"
	"github.com/acikit/aci/charset"
)

// ErrNoServerDetails is returned by Client.Send when called without a server.
var ErrNoServerDetails = errors.New("no server details")

// UnsupportedMethodError is returned for methods other than GET and POST.
type UnsupportedMethodError string

func (e UnsupportedMethodError) Error() string {
	return fmt.Sprintf("unsupported method %q", string(e))
}

// EncodeParameters renders params as an application/x-www-form-urlencoded
// string, in order, with names and values encoded in the named charset
// before being percent-escaped.
func EncodeParameters(params *action.Parameters, charsetName string) (string, error) {
	var b strings.Builder
	for i, p := range params.All() {
		name, err := charset.StringToBytes(p.Name, charsetName)
		if err != nil {
			return "", fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		value, err := charset.StringToBytes(p.Value, charsetName)
		if err != nil {
			return "", fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(string(name)))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(string(value)))
	}
	return b.String(), nil
}
