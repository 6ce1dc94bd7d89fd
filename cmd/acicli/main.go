// Command acicli sends a single ACI action and writes the response to stdout.
//
//	acicli -host idol -port 9000 -action Query Text=cats MaxResults=5
//
// Settings come from an optional YAML file (-config) and are overridden by
// flags. Extra arguments of the form name=value become action parameters.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/acikit/aci/action"
	"github.com/acikit/aci/circuitbreaker"
	"github.com/acikit/aci/decode"
	"github.com/acikit/aci/ratelimit"
	"github.com/acikit/aci/service"
	"github.com/acikit/aci/transport"
	httptransport "github.com/acikit/aci/transport/http"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "acicli: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("acicli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configFile = fs.String("config", "", "YAML config file")
		host       = fs.String("host", "", "ACI server host")
		port       = fs.Int("port", 0, "ACI server port")
		https      = fs.Bool("https", false, "use HTTPS")
		charset    = fs.String("charset", "", "charset used to encode parameters")
		method     = fs.String("method", "", "GET or POST")
		timeout    = fs.Duration("timeout", 0, "per-action timeout")
		logLevel   = fs.String("log.level", "", "debug, info, warn, error or none")
		actionName = fs.String("action", action.ActionGetStatus, "action to send")
		as         = fs.String("decode", "bytes", "bytes, text or xml")
		repeat     = fs.Int("n", 1, "number of times to send the action")
		metrics    = fs.Bool("metrics", false, "write Prometheus metrics to stderr when done")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Server.Host = *host
		case "port":
			cfg.Server.Port = *port
		case "https":
			if *https {
				cfg.Server.Protocol = "https"
			} else {
				cfg.Server.Protocol = "http"
			}
		case "charset":
			cfg.Server.Charset = *charset
		case "method":
			cfg.Transport.Method = *method
		case "timeout":
			cfg.Transport.Timeout = *timeout
		case "log.level":
			cfg.Log.Level = *logLevel
		}
	})
	if err := cfg.validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	if *repeat < 1 {
		return errors.New("-n must be at least 1")
	}

	params, err := parseParameters(*actionName, fs.Args())
	if err != nil {
		return err
	}

	var logger log.Logger
	{
		logger = log.NewLogfmtLogger(log.NewSyncWriter(stderr))
		logger = level.NewFilter(logger, levelOption(cfg.Log.Level))
		logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	}

	registry := prometheus.NewRegistry()
	m := transport.NewMetrics("aci", "client")
	m.MustRegister(registry)

	svc := service.New(
		service.WithTransport(newTransport(cfg, logger, m)),
		service.WithServerDetails(&cfg.Server),
	)

	ctx := context.Background()
	for i := 0; i < *repeat; i++ {
		if err := execute(ctx, svc, params, *as, stdout); err != nil {
			level.Error(logger).Log("action", params.Action(), "err", err)
			return err
		}
	}

	if *metrics {
		return writeMetrics(registry, stderr)
	}
	return nil
}

func newTransport(cfg config, logger log.Logger, m *transport.Metrics) transport.Transport {
	var t transport.Transport = httptransport.NewClient(
		httptransport.SetClient(&http.Client{Timeout: cfg.Transport.Timeout}),
		httptransport.SetMethod(cfg.Transport.Method),
		httptransport.SetClientBefore(httptransport.SetRequestID()),
		httptransport.SetErrorHandler(transport.NewLogErrorHandler(level.Warn(logger))),
		httptransport.SetLogger(logger),
	)

	middlewares := []transport.Middleware{
		transport.LoggingMiddleware(logger),
		m.Middleware(),
	}
	if cfg.Breaker.Enabled {
		maxFailures := cfg.Breaker.MaxFailures
		middlewares = append(middlewares, circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "aci",
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
		})))
	}
	if cfg.Transport.Rate > 0 {
		limiter := rate.NewLimiter(rate.Limit(cfg.Transport.Rate), cfg.Transport.Burst)
		middlewares = append(middlewares, ratelimit.NewDelayingLimiter(limiter))
	}
	return transport.Chain(middlewares[0], middlewares[1:]...)(t)
}

func execute(ctx context.Context, svc *service.Service, params *action.Parameters, as string, w io.Writer) error {
	switch as {
	case "bytes":
		b, err := service.Execute(ctx, svc, params, decode.Bytes())
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err

	case "text":
		s, err := service.Execute(ctx, svc, params, decode.String(""))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s)
		return err

	case "xml":
		r, err := service.Execute(ctx, svc, params, decode.Envelope())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s %s\n%s\n", r.Action, r.Response, strings.TrimSpace(string(r.Data.Inner)))
		return err

	default:
		return errors.Errorf("unknown -decode %q", as)
	}
}

// parseParameters builds the parameter set from the action name and
// name=value arguments.
func parseParameters(name string, args []string) (*action.Parameters, error) {
	params := &action.Parameters{}
	if name != "" {
		params.Put(action.ParamAction, name)
	}
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, errors.Errorf("bad parameter %q, want name=value", arg)
		}
		params.Put(k, v)
	}
	return params, nil
}

func levelOption(lvl string) level.Option {
	switch strings.ToLower(lvl) {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	case "none":
		return level.AllowNone()
	default:
		return level.AllowInfo()
	}
}

func writeMetrics(g prometheus.Gatherer, w io.Writer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
