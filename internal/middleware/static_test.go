package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"ems/config"
	"ems/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStaticRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>form</h1>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style.css"), []byte("body{}"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "img"), 0o700))

	conf := &config.Configuration{}
	conf.Static.Dir = dir
	tr, _, err := telemetry.NewTrace(conf)
	require.NoError(t, err)

	r := gin.New()
	r.Use(NewStatic(tr, conf).Handler())
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/index.html") })
	r.POST("/index.html", func(c *gin.Context) { c.String(http.StatusTeapot, "post") })
	return r
}

func TestStaticServesFiles(t *testing.T) {
	r := newStaticRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/index.html", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<h1>form</h1>", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/style.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/css")
}

func TestStaticFallsThroughForRootAndDirectories(t *testing.T) {
	r := newStaticRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/img", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStaticIgnoresOtherMethods(t *testing.T) {
	r := newStaticRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/index.html", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestStaticStaysInsideRoot(t *testing.T) {
	r := newStaticRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/index.html", nil)
	req.URL.Path = "/../../../../etc/passwd"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
