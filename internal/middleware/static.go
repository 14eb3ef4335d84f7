package middleware

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"ems/config"
	"ems/internal/core"
	"ems/internal/telemetry"
	rootPath "ems/utils/path"

	"github.com/gin-gonic/gin"
)

// Static serves regular files from the public directory and falls through for
// everything else, directories included.
type Static struct {
	trace *telemetry.Trace
	root  string
}

func NewStatic(trace *telemetry.Trace, config *config.Configuration) *Static {
	dir := config.Static.Dir
	if dir == "" {
		dir = "public"
	}
	return &Static{trace: trace, root: rootPath.Resolve(dir)}
}

func (m *Static) Handler() gin.HandlerFunc {
	type staticMeta struct {
		File string `trace:"static.file"`
		Size int64  `trace:"static.size"`
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Next()
			return
		}

		// rooted clean keeps the lookup inside m.root
		name := path.Clean("/" + c.Request.URL.Path)
		file, err := os.Open(filepath.Join(m.root, filepath.FromSlash(name)))
		if err != nil {
			c.Next()
			return
		}
		defer file.Close()

		info, err := file.Stat()
		if err != nil || !info.Mode().IsRegular() {
			c.Next()
			return
		}

		_, span, end := m.trace.WithSpan(m.trace.GetTraceContext(c), string(core.SpanStaticMiddleware))
		m.trace.ApplyTraceAttributes(span, staticMeta{File: name, Size: info.Size()})

		// ServeContent, unlike ServeFile, does not redirect /index.html to the directory
		http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), file)
		end(nil)
		c.Abort()
	}
}
