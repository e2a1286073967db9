package telemetry

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
)

// NewHTTPTransport wraps base (http.DefaultTransport when nil) so every
// outgoing request starts a client span and carries trace headers.
// Without a configured provider the spans are no-ops.
func NewHTTPTransport(base http.RoundTripper, opts ...otelhttp.Option) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}

	defaults := []otelhttp.Option{
		otelhttp.WithSpanOptions(trace.WithSpanKind(trace.SpanKindClient)),
	}
	return otelhttp.NewTransport(base, append(defaults, opts...)...)
}
