package observe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RequestIDHeader is the header carrying the per-request identifier. Inbound
// values are trusted; absent ones are generated.
const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestIDFromContext returns the request ID attached by HTTPMiddleware.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}

// WithRequestID returns a context carrying the given request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// HTTPMiddleware instruments every request with a server span, request
// metrics, and one access-log line, and contains handler panics.
//
// Contract:
//   - Concurrency: Wrap() returns a handler safe for concurrent use.
//   - Context: the request context is extended with the request ID and span.
//   - Errors: a panicking handler yields a 500 response, never a crash.
type HTTPMiddleware struct {
	tracer  trace.Tracer
	metrics *httpMetrics
	logger  Logger
}

// NewHTTPMiddleware creates middleware from an Observer's telemetry primitives.
func NewHTTPMiddleware(obs Observer) (*HTTPMiddleware, error) {
	metrics, err := newHTTPMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return &HTTPMiddleware{
		tracer:  obs.Tracer(),
		metrics: metrics,
		logger:  obs.Logger(),
	}, nil
}

// Wrap wraps an http.Handler with tracing, metrics, logging, and panic
// containment.
func (m *HTTPMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		ctx := WithRequestID(r.Context(), reqID)
		ctx, span := m.tracer.Start(ctx, "http.server "+r.Method,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			),
		)

		w.Header().Set(RequestIDHeader, reqID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		req := r.WithContext(ctx)

		start := time.Now()
		panicked := m.serve(ctx, rec, req, next)
		duration := time.Since(start)

		// The mux stamps the matched pattern on the request during dispatch.
		route := req.Pattern
		if route == "" {
			route = "unmatched"
		}

		status := rec.status
		if panicked {
			status = http.StatusInternalServerError
		}

		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()

		m.metrics.Record(ctx, r.Method, route, status, duration)

		fields := []Field{
			{Key: "method", Value: r.Method},
			{Key: "path", Value: r.URL.Path},
			{Key: "route", Value: route},
			{Key: "status", Value: status},
			{Key: "duration_ms", Value: duration.Seconds() * 1000},
		}
		if status >= http.StatusInternalServerError {
			m.logger.Error(ctx, "request failed", fields...)
		} else {
			m.logger.Info(ctx, "request completed", fields...)
		}
	})
}

// serve dispatches to the next handler, converting a panic into a 500.
func (m *HTTPMiddleware) serve(ctx context.Context, rec *statusRecorder, r *http.Request, next http.Handler) (panicked bool) {
	defer func() {
		if v := recover(); v != nil {
			panicked = true
			m.logger.Error(ctx, "handler panic", Field{Key: "panic", Value: fmt.Sprint(v)})
			if !rec.wrote {
				http.Error(rec, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}
	}()

	next.ServeHTTP(rec, r)
	return false
}

// statusRecorder captures the response status code for telemetry.
type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wrote {
		r.status = status
		r.wrote = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wrote {
		r.status = http.StatusOK
		r.wrote = true
	}
	return r.ResponseWriter.Write(b)
}
