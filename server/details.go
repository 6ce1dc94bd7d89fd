package server

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// Protocols understood by Details.
const (
	ProtocolHTTP  = "http"
	ProtocolHTTPS = "https"
)

// DefaultPort is the ACI port most servers listen on out of the box.
const DefaultPort = 9000

// DefaultCharset is used to encode action parameters when Details.Charset is
// empty.
const DefaultCharset = "UTF-8"

var (
	// ErrNoHost is returned by Validate when Host is empty.
	ErrNoHost = errors.New("server: host not set")

	// ErrBadPort is returned by Validate when Port is outside 1-65535.
	ErrBadPort = errors.New("server: port out of range")

	// ErrBadProtocol is returned by Validate for protocols other than http
	// and https.
	ErrBadProtocol = errors.New("server: unsupported protocol")
)

// Details identifies a single ACI server. A Details value is never modified
// by the packages that consume it; build a new one to point somewhere else.
type Details struct {
	// Protocol is either "http" or "https". Empty means "http".
	Protocol string `yaml:"protocol"`

	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// Charset names the character set action parameters are encoded with.
	// Empty means DefaultCharset.
	Charset string `yaml:"charset"`
}

// New returns Details for a plain HTTP server on host:port.
func New(host string, port int) *Details {
	return &Details{Protocol: ProtocolHTTP, Host: host, Port: port}
}

// Validate checks host, port and protocol.
func (d Details) Validate() error {
	if strings.TrimSpace(d.Host) == "" {
		return ErrNoHost
	}
	if d.Port < 1 || d.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrBadPort, d.Port)
	}
	switch strings.ToLower(d.Protocol) {
	case "", ProtocolHTTP, ProtocolHTTPS:
	default:
		return fmt.Errorf("%w: %q", ErrBadProtocol, d.Protocol)
	}
	return nil
}

// Scheme returns the URL scheme, defaulting to http.
func (d Details) Scheme() string {
	if p := strings.ToLower(d.Protocol); p != "" {
		return p
	}
	return ProtocolHTTP
}

// CharsetName returns Charset, or DefaultCharset if it is empty.
func (d Details) CharsetName() string {
	if d.Charset == "" {
		return DefaultCharset
	}
	return d.Charset
}

// URL returns the base URL actions are sent to.
func (d Details) URL() (*url.URL, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &url.URL{
		Scheme: d.Scheme(),
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/",
	}, nil
}

func (d Details) String() string {
	return d.Scheme() + "://" + net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}
