package middleware

import (
	"net/http"
	"time"

	"ems/internal/core"
	"ems/internal/database/fluentd/model"
	"ems/internal/database/fluentd/repository"
	cErr "ems/internal/pkg/error"
	"ems/internal/pkg/response"
	"ems/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response logs successful responses and hands unwritten error statuses to Recovery.
type Response struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	fluentdRepository *repository.LogRepository
}

func NewResponse(
	logger *zap.Logger,
	trace *telemetry.Trace,
	fluentdRepository *repository.LogRepository,
) *Response {
	return &Response{
		logger:            logger,
		trace:             trace,
		fluentdRepository: fluentdRepository,
	}
}

func (middleware *Response) FormatHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isUntracedPath(c.FullPath()) {
			c.Next()
			return
		}

		requestTime := requestStartFrom(c)

		c.Next()

		// Recovery renders errors
		if len(c.Errors) > 0 {
			return
		}

		statusCode := c.Writer.Status()
		if statusCode >= http.StatusBadRequest && !c.Writer.Written() {
			response.AbortWithError(c, cErr.MapHttpStatusToError(statusCode, http.StatusText(statusCode)))
			return
		}

		ctx, span, end := middleware.trace.WithSpan(middleware.trace.GetTraceContext(c), string(core.SpanResponseMiddleware))
		defer end(nil)

		duration := time.Since(requestTime)
		location := c.Writer.Header().Get("Location")
		middleware.trace.ApplyTraceAttributes(span, core.TraceResponseMeta{
			Path:       c.Request.URL.Path,
			Method:     c.Request.Method,
			Status:     statusCode,
			Location:   location,
			DurationMs: float64(duration.Milliseconds()),
		})

		spanCtx := span.SpanContext()
		requestID := requestIDFrom(c)
		fields := []zap.Field{
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Int("status", statusCode),
			zap.Duration("duration", duration),
			zap.String("requestId", requestID),
			zap.String("spanId", spanCtx.SpanID().String()),
			zap.String("traceId", spanCtx.TraceID().String()),
		}
		if location != "" {
			fields = append(fields, zap.String("location", location))
		}
		middleware.logger.Info("[Response] "+http.StatusText(statusCode), fields...)

		if err := middleware.fluentdRepository.LogResponse(ctx, model.ResponseLog{
			RequestID:  requestID,
			Code:       cErr.SUCCESS,
			StatusCode: statusCode,
			Location:   location,
			ResponseTS: time.Now().UTC().Format(repository.TimestampLayout),
		}); err != nil {
			middleware.logger.Debug("ship response log failed", zap.Error(err))
		}
	}
}
