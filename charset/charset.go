// Package charset converts between bytes and text using character sets
// named the way ACI servers and HTTP content types name them.
//
// All functions are stateless and safe for concurrent use.
package charset

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

var (
	// ErrContractViolation is the class of errors returned for missing
	// arguments.
	ErrContractViolation = errors.New("charset: contract violation")

	// ErrNilBytes is returned when BytesToString is given nil.
	ErrNilBytes = fmt.Errorf("%w: nil bytes", ErrContractViolation)

	// ErrNoCharset is returned when the charset name is empty.
	ErrNoCharset = fmt.Errorf("%w: empty charset name", ErrContractViolation)

	// ErrUnsupportedCharset matches every *UnsupportedCharsetError.
	ErrUnsupportedCharset = errors.New("charset: unsupported charset")
)

// UnsupportedCharsetError reports a charset name that could not be resolved.
type UnsupportedCharsetError struct {
	Name string
}

func (e *UnsupportedCharsetError) Error() string {
	return fmt.Sprintf("charset: unsupported charset %q", e.Name)
}

// Is makes errors.Is(err, ErrUnsupportedCharset) hold.
func (e *UnsupportedCharsetError) Is(target error) bool {
	return target == ErrUnsupportedCharset
}

// Lookup resolves an IANA charset name or alias, e.g. "UTF-8", "latin1" or
// "windows-1252".
func Lookup(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNoCharset
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		// nil, nil means the name is registered but x/text has no codec for it
		return nil, &UnsupportedCharsetError{Name: name}
	}
	return enc, nil
}

// BytesToString decodes b using the named charset.
func BytesToString(b []byte, name string) (string, error) {
	if b == nil {
		return "", ErrNilBytes
	}
	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("charset: decode %s: %w", name, err)
	}
	return string(out), nil
}

// StringToBytes encodes s using the named charset. Runes the charset cannot
// represent make it fail.
func StringToBytes(s string, name string) ([]byte, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	out, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("charset: encode %s: %w", name, err)
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}
