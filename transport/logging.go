package transport

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/acikit/aci/action"
	"github.com/acikit/aci/server"
)

// LoggingMiddleware logs every Send: successful ones at debug level, failed
// ones at error level. It only observes; errors pass through untouched.
func LoggingMiddleware(logger log.Logger) Middleware {
	return func(next Transport) Transport {
		return TransportFunc(func(ctx context.Context, details *server.Details, params *action.Parameters) (stream ResponseStream, err error) {
			defer func(begin time.Time) {
				l := level.Debug(logger)
				if err != nil {
					l = level.Error(logger)
				}
				l.Log(
					"action", params.Action(),
					"server", details,
					"took", time.Since(begin),
					"err", err,
				)
			}(time.Now())
			return next.Send(ctx, details, params)
		})
	}
}
