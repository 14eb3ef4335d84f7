package middleware

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"
	"unicode/utf8"

	"ems/internal/core"
	"ems/internal/database/fluentd/model"
	"ems/internal/database/fluentd/repository"
	cErr "ems/internal/pkg/error"
	res "ems/internal/pkg/response"
	"ems/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery renders panics and gin errors as the JSON error envelope.
type Recovery struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	fluentdRepository *repository.LogRepository
}

func NewRecovery(
	logger *zap.Logger,
	trace *telemetry.Trace,
	fluentdRepository *repository.LogRepository,
) *Recovery {
	return &Recovery{
		logger:            logger,
		trace:             trace,
		fluentdRepository: fluentdRepository,
	}
}

func (middleware *Recovery) ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestTime := requestStartFrom(c)
		requestID := requestIDFrom(c)

		// must be registered before c.Next()
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			duration := time.Since(requestTime)
			ctx, span, end := middleware.trace.WithSpan(middleware.trace.GetTraceContext(c), string(core.SpanRecoveryMiddleware))
			spanCtx := span.SpanContext()

			meta := core.TracePanicMeta{
				Path:       c.Request.URL.Path,
				Method:     c.Request.Method,
				ClientIP:   c.ClientIP(),
				UserAgent:  c.Request.UserAgent(),
				DurationMs: float64(duration.Milliseconds()),
				Message:    toSafeString(fmt.Sprint(rec)),
				Stack:      toSafeStack(debug.Stack()),
				Status:     http.StatusInternalServerError,
			}
			middleware.trace.ApplyTraceAttributes(span, meta)

			middleware.logger.Error("[PANIC] Recovered",
				zap.String("path", meta.Path),
				zap.String("method", meta.Method),
				zap.String("client_ip", meta.ClientIP),
				zap.Duration("duration", duration),
				zap.String("panic", meta.Message),
				zap.String("stacktrace", meta.Stack),
				zap.String("requestId", requestID),
				zap.String("spanId", spanCtx.SpanID().String()),
				zap.String("traceId", spanCtx.TraceID().String()),
			)

			appErr := cErr.InternalServer("unexpected panic")
			end(appErr)
			if !c.Writer.Written() {
				res.FailByErr(c, requestID, appErr)
			}
			middleware.shipResponse(ctx, requestID, appErr.ErrorCode(), http.StatusInternalServerError, meta.Message)
			c.Abort()
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		duration := time.Since(requestTime)
		ctx, span, end := middleware.trace.WithSpan(middleware.trace.GetTraceContext(c), string(core.SpanRecoveryMiddleware))
		spanCtx := span.SpanContext()

		appErr := cErr.From(c.Errors.Last().Err)
		middleware.trace.ApplyTraceAttributes(span, core.TraceErrorMeta{
			Code:       appErr.ErrorCode(),
			Message:    appErr.Error(),
			Detail:     appErr.ErrorDesc(),
			Status:     appErr.HttpCode(),
			DurationMs: float64(duration.Milliseconds()),
		})

		fields := []zap.Field{
			zap.Int("code", appErr.ErrorCode()),
			zap.Int("status", appErr.HttpCode()),
			zap.String("data", appErr.ErrorDesc()),
			zap.String("path", c.Request.URL.Path),
			zap.Duration("duration", duration),
			zap.String("requestId", requestID),
			zap.String("spanId", spanCtx.SpanID().String()),
			zap.String("traceId", spanCtx.TraceID().String()),
		}
		if appErr.HttpCode() >= http.StatusInternalServerError {
			middleware.logger.Error(appErr.Error(), fields...)
			end(appErr)
		} else {
			middleware.logger.Warn(appErr.Error(), fields...)
			end(nil)
		}

		res.FailByErr(c, requestID, appErr)
		middleware.shipResponse(ctx, requestID, appErr.ErrorCode(), appErr.HttpCode(), appErr.Error())
		c.Abort()
	}
}

func (middleware *Recovery) shipResponse(ctx context.Context, requestID string, code, status int, errMsg string) {
	err := middleware.fluentdRepository.LogResponse(ctx, model.ResponseLog{
		RequestID:  requestID,
		Code:       code,
		StatusCode: status,
		Error:      errMsg,
		ResponseTS: time.Now().UTC().Format(repository.TimestampLayout),
	})
	if err != nil {
		middleware.logger.Debug("ship response log failed", zap.Error(err))
	}
}

// ---- helpers ----

func toSafeString(s string) string {
	const max = 8000
	if utf8.ValidString(s) {
		if len(s) > max {
			return s[:max] + "…"
		}
		return s
	}
	b := []byte(s)
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

func toSafeStack(b []byte) string {
	const max = 16000
	if utf8.Valid(b) {
		if len(b) > max {
			return string(b[:max]) + "…"
		}
		return string(b)
	}
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}
