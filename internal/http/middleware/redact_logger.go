package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RedactOptions configures the redacting access logger.
type RedactOptions struct {
	// HeaderAllowlist enumerates request headers logged verbatim (lowercase).
	// Everything else is either masked or skipped.
	HeaderAllowlist map[string]bool

	// MaskedHeaders are logged with a fixed placeholder rather than dropped,
	// so their presence remains visible (lowercase).
	MaskedHeaders map[string]bool

	// MaxQueryLength bounds the logged raw query string.
	MaxQueryLength int
}

// DefaultRedactOptions keeps benign request headers and masks credentials.
// The session cookie and Authorization header never reach the logs.
func DefaultRedactOptions() RedactOptions {
	return RedactOptions{
		HeaderAllowlist: map[string]bool{
			"accept":           true,
			"accept-encoding":  true,
			"content-type":     true,
			"content-length":   true,
			"user-agent":       true,
			"x-request-id":     true,
			"origin":           true,
			"referer":          true,
			"if-none-match":    true,
			"idempotency-key":  true,
			"x-forwarded-for":  true,
			"x-forwarded-host": true,
		},
		MaskedHeaders: map[string]bool{
			"authorization": true,
			"cookie":        true,
			"set-cookie":    true,
			"x-api-key":     true,
		},
		MaxQueryLength: maxQueryLogLength,
	}
}

// RedactingLogger behaves like Logger but additionally records a sanitized
// view of the request headers. Allowlisted headers are logged as-is, masked
// headers as "[REDACTED]", and anything else is dropped. Use instead of
// Logger, not in addition to it.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid, _ := c.Get(requestIDKey)
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		headers := map[string]string{}
		for name, values := range c.Request.Header {
			key := strings.ToLower(name)
			switch {
			case opts.MaskedHeaders[key]:
				headers[key] = "[REDACTED]"
			case opts.HeaderAllowlist[key]:
				headers[key] = strings.Join(values, ",")
			}
		}

		l := log.With().
			Str("request_id", asString(rid)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("remote_ip", c.ClientIP()).
			Str("query", truncate(c.Request.URL.RawQuery, opts.MaxQueryLength)).
			Interface("headers", headers).
			Logger()
		c.Set("logger", &l)

		c.Next()

		uid, _ := c.Get("userID")
		ev := l.With().
			Str("user_id", asString(uid)).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Int64("bytes_in", c.Request.ContentLength).
			Int("bytes_out", c.Writer.Size()).
			Logger()

		switch status := c.Writer.Status(); {
		case len(c.Errors) > 0:
			ev.Error().Str("errors", c.Errors.String()).Msg("http_request")
		case status >= 500:
			ev.Error().Msg("http_request")
		case status >= 400:
			ev.Warn().Msg("http_request")
		default:
			ev.Info().Msg("http_request")
		}
	}
}
