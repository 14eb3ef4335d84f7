package middleware

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"ems/internal/core"
	cErr "ems/internal/pkg/error"
	"ems/internal/pkg/response"
	"ems/internal/telemetry"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// maxRequestBody caps every request body, measured after inflation.
const maxRequestBody = 1 << 20

// Decode inflates compressed request bodies before they reach binding.
type Decode struct {
	trace *telemetry.Trace
}

func NewDecode(trace *telemetry.Trace) *Decode {
	return &Decode{trace: trace}
}

func (m *Decode) Handler() gin.HandlerFunc {
	type decodeMeta struct {
		Encoding string `trace:"http.request.content_encoding"`
	}

	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}
		encoding := strings.ToLower(strings.TrimSpace(c.GetHeader("Content-Encoding")))
		if encoding == "" || encoding == "identity" {
			if c.Request.ContentLength > maxRequestBody {
				response.AbortWithError(c, cErr.PayloadTooLarge(bodyLimitDesc))
				return
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBody)
			c.Next()
			return
		}

		_, span, end := m.trace.WithSpan(m.trace.GetTraceContext(c), string(core.SpanDecodeMiddleware))
		m.trace.ApplyTraceAttributes(span, decodeMeta{Encoding: encoding})

		reader, err := newBodyDecoder(encoding, c.Request.Body)
		if err != nil {
			var appErr *cErr.Error
			var unsupported *unsupportedEncodingError
			if errors.As(err, &unsupported) {
				appErr = cErr.BadRequestHeaders(err.Error())
			} else {
				appErr = cErr.ValidateErr(err.Error())
			}
			end(appErr)
			response.AbortWithError(c, appErr)
			return
		}
		end(nil)

		c.Request.Body = http.MaxBytesReader(c.Writer, reader, maxRequestBody)
		c.Request.Header.Del("Content-Encoding")
		c.Request.Header.Del("Content-Length")
		c.Request.ContentLength = -1
		c.Next()
	}
}

func newBodyDecoder(encoding string, body io.ReadCloser) (io.ReadCloser, error) {
	switch encoding {
	case "gzip", "x-gzip":
		return gzip.NewReader(body)
	case "deflate":
		return zlib.NewReader(body)
	case "br":
		return io.NopCloser(brotli.NewReader(body)), nil
	case "zstd":
		decoder, err := zstd.NewReader(body)
		if err != nil {
			return nil, err
		}
		return decoder.IOReadCloser(), nil
	default:
		return nil, &unsupportedEncodingError{encoding: encoding}
	}
}

var bodyLimitDesc = "request body exceeds " + strconv.Itoa(maxRequestBody) + " bytes"

// bodyReadError maps a failed body read: over the cap is 413, anything else is an
// unreadable body.
func bodyReadError(err error) *cErr.Error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return cErr.PayloadTooLarge(bodyLimitDesc)
	}
	return cErr.ValidateErr(err.Error())
}

type unsupportedEncodingError struct {
	encoding string
}

func (e *unsupportedEncodingError) Error() string {
	return "unsupported Content-Encoding: " + e.encoding
}
