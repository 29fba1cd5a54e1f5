package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"evidencija/adapters/ors"
	"evidencija/internal"
	"evidencija/ports"
)

// RouteClient is the slice of the openrouteservice client the proxy needs
type RouteClient interface {
	Configured() bool
	SearchRaw(ctx context.Context, text string) ([]byte, error)
	Directions(ctx context.Context, start, end ports.Coordinates, profile string) (*ports.Route, error)
}

// ORSHandler proxies geocoding and routing so the API key stays on the server
type ORSHandler struct {
	client RouteClient
	logger *internal.Logger
}

// NewORSHandler creates a new proxy handler
func NewORSHandler(client RouteClient, logger *internal.Logger) *ORSHandler {
	return &ORSHandler{client: client, logger: logger.With("ors-proxy")}
}

type directionsRequest struct {
	Start   *ports.Coordinates `json:"start"`
	End     *ports.Coordinates `json:"end"`
	Profile string             `json:"profile"`
}

// Geocode handles GET /api/ors/geocode?text=
func (h *ORSHandler) Geocode(c *gin.Context) {
	if !h.client.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ors.ErrMissingKey.Error()})
		return
	}

	text := strings.TrimSpace(c.Query("text"))
	if text == "" {
		c.JSON(http.StatusOK, gin.H{"features": []interface{}{}})
		return
	}

	body, err := h.client.SearchRaw(c.Request.Context(), text)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

// Directions handles POST /api/ors/directions
func (h *ORSHandler) Directions(c *gin.Context) {
	if !h.client.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ors.ErrMissingKey.Error()})
		return
	}

	var req directionsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Start == nil || req.End == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start/end required"})
		return
	}

	route, err := h.client.Directions(c.Request.Context(), *req.Start, *req.End, req.Profile)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", route.GeoJSON)
}

func (h *ORSHandler) fail(c *gin.Context, err error) {
	var upstream *ors.UpstreamError
	if errors.As(err, &upstream) {
		h.logger.Warn("upstream answered %d on %s", upstream.Status, c.Request.URL.Path)
		c.Data(upstream.Status, "application/json", upstream.Body)
		return
	}
	h.logger.Error("request to openrouteservice failed: %v", err)
	c.JSON(http.StatusBadGateway, gin.H{"error": gin.H{"message": err.Error()}})
}
