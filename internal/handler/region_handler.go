package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gopalt/burnscar-backend-go/internal/regions"
	"github.com/gopalt/burnscar-backend-go/pkg/response"
)

// RegionHandler serves the static region reference data.
type RegionHandler struct{}

// NewRegionHandler creates a region handler.
func NewRegionHandler() *RegionHandler {
	return &RegionHandler{}
}

// ListStates handles GET /api/v1/regions.
func (h *RegionHandler) ListStates(c *gin.Context) {
	response.Success(c, gin.H{"states": regions.States()})
}

// ListDistricts handles GET /api/v1/regions/:state/districts.
func (h *RegionHandler) ListDistricts(c *gin.Context) {
	state := c.Param("state")
	districts, ok := regions.Districts(state)
	if !ok {
		response.Error(c, http.StatusNotFound, "unknown state", nil)
		return
	}
	response.Success(c, gin.H{"districts": districts})
}
