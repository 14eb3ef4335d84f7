package handler

import (
	"net/http"

	"ems/config"

	"github.com/gin-gonic/gin"
)

// PageHandler sends browsers to the static pages.
type PageHandler struct {
	indexPath string
}

func NewPageHandler(config *config.Configuration) *PageHandler {
	indexPath := config.Static.IndexPath
	if indexPath == "" {
		indexPath = "/index.html"
	}
	return &PageHandler{indexPath: indexPath}
}

// Root redirects to the form page; the query string is dropped.
// @Summary Redirect to the form
// @Tags Page
// @Success 302 {string} string "redirect to /index.html"
// @Router / [get]
func (h *PageHandler) Root(c *gin.Context) {
	c.Redirect(http.StatusFound, h.indexPath)
}
