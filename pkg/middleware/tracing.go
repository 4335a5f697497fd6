package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Tracing wraps the handler with OpenTelemetry server spans
func Tracing(serviceName string, next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, serviceName)
}
