package middleware

import (
	"net"
	"strconv"
	"time"

	"ems/config"
	"ems/internal/core"
	"ems/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TraceEntry opens the server span, assigns the request id and records request metrics.
type TraceEntry struct {
	trace  *telemetry.Trace
	metric *telemetry.Metric
	conf   *config.Configuration
}

func NewTraceEntry(trace *telemetry.Trace, metric *telemetry.Metric, conf *config.Configuration) *TraceEntry {
	return &TraceEntry{trace: trace, metric: metric, conf: conf}
}

func (m *TraceEntry) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Set(contextRequestStart, start)
		requestID := newRequestID()
		c.Set(contextRequestID, requestID)
		c.Request = c.Request.WithContext(core.WithRequestID(c.Request.Context(), requestID))

		endpoint := c.FullPath()
		if isUntracedPath(endpoint) {
			c.Next()
			return
		}

		carrier := propagation.HeaderCarrier(c.Request.Header)
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), carrier)
		spanName := c.Request.Method + " " + c.Request.URL.Path
		ctx, span := m.trace.StartSpanForLayer(ctx, core.TraceSpanName(spanName), trace.WithSpanKind(trace.SpanKindServer))
		c.Request = c.Request.WithContext(ctx)
		c.Set(core.ContextTraceKey, ctx)

		peerAddr, peerPort := "", 0
		if host, port, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
			peerAddr = host
			if p, err2 := strconv.Atoi(port); err2 == nil {
				peerPort = p
			}
		} else {
			peerAddr = c.ClientIP()
		}

		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		meta := core.TraceHttpServerMeta{
			ClientAddr:        c.ClientIP(),
			HttpRequestMethod: c.Request.Method,
			HttpRoute:         endpoint,
			UrlPath:           c.Request.URL.Path,
			UrlScheme:         scheme,
			UserAgent:         c.Request.UserAgent(),
			ServerAddress:     m.conf.App.Name,
			NetworkPeerAddr:   peerAddr,
			NetworkPeerPort:   peerPort,
			NetworkProtoVer:   c.Request.Proto,
		}
		m.trace.ApplyTraceAttributes(span, &meta)

		c.Next()

		statusCode := c.Writer.Status()
		meta.HttpStatusCode = statusCode
		m.trace.ApplyTraceAttributes(span, &meta)

		var cause error
		if statusCode >= 500 && len(c.Errors) > 0 {
			cause = c.Errors.Last().Err
		}

		if m.metric.HttpRequestsTotal != nil && m.metric.HttpRequestDuration != nil {
			label := metricEndpoint(c.FullPath())
			m.metric.HttpRequestsTotal.WithLabelValues(label, strconv.Itoa(statusCode)).Inc()
			m.metric.HttpRequestDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
		}
		m.trace.EndSpan(span, cause)
	}
}

func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

// requestIDFrom returns the id assigned by TraceEntry, or a fresh one.
func requestIDFrom(c *gin.Context) string {
	if v, ok := c.Get(contextRequestID); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	id := newRequestID()
	c.Set(contextRequestID, id)
	return id
}

func requestStartFrom(c *gin.Context) time.Time {
	if v, ok := c.Get(contextRequestStart); ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Now().UTC()
}
