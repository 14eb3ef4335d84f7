package middleware

import (
	"ems/internal/core"
	"ems/internal/telemetry"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Cors struct {
	trace *telemetry.Trace
}

func NewCors(trace *telemetry.Trace) *Cors {
	return &Cors{trace: trace}
}

// CorsHandler lets browser forms on other origins post submissions.
func (m *Cors) CorsHandler() gin.HandlerFunc {
	cfg := cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Content-Encoding", "X-Requested-With"},
		ExposeHeaders:   []string{"Location", "Retry-After"},
	}
	corsHandler := cors.New(cfg)

	type corsMeta struct {
		AllowMethods []string `trace:"http.cors.allow_methods"`
		AllowHeaders []string `trace:"http.cors.allow_headers"`
	}

	return func(c *gin.Context) {
		if isUntracedPath(c.FullPath()) || c.GetHeader("Origin") == "" {
			corsHandler(c)
			return
		}

		_, span, end := m.trace.WithSpan(m.trace.GetTraceContext(c), string(core.SpanCorsMiddleware))
		m.trace.ApplyTraceAttributes(span, corsMeta{
			AllowMethods: cfg.AllowMethods,
			AllowHeaders: cfg.AllowHeaders,
		})
		end(nil)

		corsHandler(c)
	}
}
