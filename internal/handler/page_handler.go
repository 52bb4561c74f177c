package handler

import (
	"errors"
	"log/slog"
	"munsite/internal/loader"
	"munsite/internal/router"
	"munsite/internal/site"
	"munsite/internal/view"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const htmlContentType = "text/html; charset=utf-8"

// PageHandler serves full pages with path links and bare fragments with hash
// links for the client-side router.
type PageHandler struct {
	pages     *site.Service
	fragments *site.Service
}

func NewPageHandler(l *loader.Loader, loc *time.Location) *PageHandler {
	return &PageHandler{
		pages:     site.NewService(l, view.New(view.PathLinks), loc),
		fragments: site.NewService(l, view.New(view.HashLinks), loc),
	}
}

func (h *PageHandler) GetHome(c *gin.Context) {
	h.renderPage(c, router.Route{Kind: router.Home})
}

func (h *PageHandler) GetTopics(c *gin.Context) {
	h.renderPage(c, router.Route{Kind: router.Topics})
}

func (h *PageHandler) GetBoard(c *gin.Context) {
	h.renderPage(c, router.Route{Kind: router.Board})
}

func (h *PageHandler) GetTopic(c *gin.Context) {
	h.renderPage(c, router.TopicRoute(c.Param("slug")))
}

func (h *PageHandler) renderPage(c *gin.Context, route router.Route) {
	page, err := h.pages.Render(c.Request.Context(), route)

	status := http.StatusOK
	switch {
	case errors.Is(err, site.ErrTopicNotFound):
		status = http.StatusNotFound
	case err != nil:
		slog.Error("error rendering page", "route", route.Kind.String(), "error", err)
		doc, docErr := h.pages.ErrorDocument(route, err)
		if docErr != nil {
			slog.Error("error rendering error page", "error", docErr)
			c.String(http.StatusInternalServerError, "Data load failed")
			return
		}
		c.Data(http.StatusBadGateway, htmlContentType, []byte(doc))
		return
	}

	doc, err := h.pages.Document(page)
	if err != nil {
		slog.Error("error rendering document", "route", route.Kind.String(), "error", err)
		c.String(http.StatusInternalServerError, "Render error")
		return
	}
	c.Data(status, htmlContentType, []byte(doc))
}

// GetFragment renders only the main content for ?route=#/..., the same
// fragment the hash router swaps into #app.
func (h *PageHandler) GetFragment(c *gin.Context) {
	route := router.Resolve(c.Query("route"))
	page, err := h.fragments.Render(c.Request.Context(), route)

	status := http.StatusOK
	switch {
	case errors.Is(err, site.ErrTopicNotFound):
		status = http.StatusNotFound
	case err != nil:
		slog.Error("error rendering fragment", "route", route.Fragment(), "error", err)
		panel, panelErr := h.fragments.Renderer().Error(err)
		if panelErr != nil {
			c.String(http.StatusInternalServerError, "Data load failed")
			return
		}
		c.Data(http.StatusBadGateway, htmlContentType, []byte(panel))
		return
	}

	c.Data(status, htmlContentType, []byte(page.Banner+page.Main))
}

// GetHealth checks that the data source can serve site.json.
func (h *PageHandler) GetHealth(c *gin.Context) {
	src := h.pages.Loader().Source()
	if _, err := src.Fetch(c.Request.Context(), loader.SitePath); err != nil {
		slog.Warn("health check failed", "source", src.Name(), "error", err)
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Source: src.Name()})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Source: src.Name()})
}
