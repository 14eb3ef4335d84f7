package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/url"
	"strings"
	"unicode/utf8"

	"ems/internal/core"
	"ems/internal/database/fluentd/model"
	"ems/internal/database/fluentd/repository"
	"ems/internal/pkg/response"
	"ems/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// redactedFields never reach logs or the log pipeline.
var redactedFields = map[string]struct{}{
	"firstName": {},
	"lastName":  {},
	"salary":    {},
}

type Logger struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	fluentdRepository *repository.LogRepository
}

func NewLogger(
	logger *zap.Logger,
	trace *telemetry.Trace,
	fluentdRepository *repository.LogRepository,
) *Logger {
	return &Logger{
		logger:            logger,
		trace:             trace,
		fluentdRepository: fluentdRepository,
	}
}

// LoggerHandler logs every request with a redacted body preview and ships it to Fluentd.
func (m *Logger) LoggerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if isUntracedPath(endpoint) {
			c.Next()
			return
		}

		ctx, span, end := m.trace.WithSpan(m.trace.GetTraceContext(c), string(core.SpanLoggerMiddleware))

		mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
		var bodyPreview string
		if isBinaryContent(mediaType) {
			bodyPreview = fmt.Sprintf("(binary %s)", mediaType)
		} else if c.Request.Body != nil && c.Request.ContentLength != 0 {
			// read the whole body and put it back for binding
			data, err := io.ReadAll(c.Request.Body)
			if err != nil {
				appErr := bodyReadError(err)
				end(appErr)
				response.AbortWithError(c, appErr)
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(data))
			bodyPreview = toSafePreview(redactBody(mediaType, data), 2000)
		}

		headerMap := make(map[string]string, len(c.Request.Header))
		for k, v := range c.Request.Header {
			headerMap[strings.ToLower(k)] = strings.Join(v, ",")
		}

		m.trace.ApplyTraceAttributes(span, core.LoggerRequestMeta{
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			FullPath:   endpoint,
			Query:      c.Request.URL.RawQuery,
			Body:       bodyPreview,
			Host:       c.Request.Host,
			UserAgent:  c.Request.UserAgent(),
			ContentLen: c.Request.ContentLength,
			Proto:      c.Request.Proto,
			ClientIP:   c.ClientIP(),
			Headers:    headerMap,
		})

		spanCtx := span.SpanContext()
		requestID := requestIDFrom(c)
		logFields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("headers", headerMap),
			zap.String("requestId", requestID),
			zap.String("spanId", spanCtx.SpanID().String()),
			zap.String("traceId", spanCtx.TraceID().String()),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			logFields = append(logFields, zap.String("query", q))
		}
		if bodyPreview != "" {
			logFields = append(logFields, zap.String("body", bodyPreview))
		}
		m.logger.Info("[Request] logging middleware message", logFields...)

		if err := m.fluentdRepository.LogRequest(ctx, model.RequestLog{
			RequestID: requestID,
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			RequestTS: requestStartFrom(c).Format(repository.TimestampLayout),
			Body:      bodyPreview,
			IPHash:    hashIP(c.ClientIP()),
			UserAgent: c.Request.UserAgent(),
		}); err != nil {
			m.logger.Debug("ship request log failed", zap.Error(err))
		}
		end(nil)
		c.Next()
	}
}

// redactBody masks personal fields of form and JSON bodies.
func redactBody(mediaType string, data []byte) []byte {
	switch mediaType {
	case "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(data))
		if err != nil {
			return data
		}
		for key := range values {
			if _, ok := redactedFields[key]; ok {
				values.Set(key, "***")
			}
		}
		return []byte(values.Encode())
	case "application/json":
		var fields map[string]any
		if err := json.Unmarshal(data, &fields); err != nil {
			return data
		}
		for key := range fields {
			if _, ok := redactedFields[key]; ok {
				fields[key] = "***"
			}
		}
		out, err := json.Marshal(fields)
		if err != nil {
			return data
		}
		return out
	}
	return data
}

func hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:8])
}

// toSafePreview truncates UTF-8 text and base64-encodes anything else.
func toSafePreview(b []byte, max int) string {
	if len(b) == 0 {
		return ""
	}
	if utf8.Valid(b) {
		if len(b) > max {
			cut := max
			for cut > 0 && !utf8.RuneStart(b[cut]) {
				cut--
			}
			return string(b[:cut]) + "…"
		}
		return string(b)
	}
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

func isBinaryContent(mediaType string) bool {
	return strings.HasPrefix(mediaType, "multipart/") ||
		strings.HasPrefix(mediaType, "image/") ||
		strings.HasPrefix(mediaType, "audio/") ||
		strings.HasPrefix(mediaType, "video/") ||
		mediaType == "application/octet-stream"
}
