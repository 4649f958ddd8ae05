package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gopalt/burnscar-backend-go/internal/models"
	"github.com/gopalt/burnscar-backend-go/internal/repository"
	"github.com/gopalt/burnscar-backend-go/internal/service"
	"github.com/gopalt/burnscar-backend-go/internal/spatial"
	"github.com/gopalt/burnscar-backend-go/pkg/response"
)

const dateLayout = "2006-01-02"

// DetectionHandler handles detection runs and their exports.
type DetectionHandler struct {
	service *service.DetectionService
	results *repository.ResultRepository
}

// NewDetectionHandler creates a detection handler.
func NewDetectionHandler(svc *service.DetectionService, results *repository.ResultRepository) *DetectionHandler {
	return &DetectionHandler{service: svc, results: results}
}

// Detect handles POST /api/v1/detect.
func (h *DetectionHandler) Detect(c *gin.Context) {
	var req models.DetectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	params, err := parseParams(req)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	result, err := h.service.Detect(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, service.ErrRegionNotFound) {
			response.Error(c, http.StatusNotFound, "district not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "detection failed", err)
		return
	}

	h.results.Save(result)

	payload := detectionPayload(result)
	if result.Outcome == models.OutcomeRemoteFault {
		response.Fail(c, http.StatusBadGateway, "remote compute fault, returning empty result", payload)
		return
	}
	response.Success(c, payload)
}

// parseParams validates the request: parseable dates in order, and exactly
// one of a custom ROI or a (state, district) pair.
func parseParams(req models.DetectionRequest) (service.DetectParams, error) {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return service.DetectParams{}, fmt.Errorf("invalid start_date %q, want YYYY-MM-DD", req.StartDate)
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return service.DetectParams{}, fmt.Errorf("invalid end_date %q, want YYYY-MM-DD", req.EndDate)
	}
	if end.Before(start) {
		return service.DetectParams{}, fmt.Errorf("end_date must not be before start_date")
	}

	roiSet := req.ROI != nil
	lookupSet := req.State != "" && req.District != ""
	if roiSet && lookupSet {
		return service.DetectParams{}, fmt.Errorf("provide either a custom ROI or a state/district pair, not both")
	}
	if !roiSet && !lookupSet {
		return service.DetectParams{}, fmt.Errorf("either a state/district or a custom ROI must be provided")
	}

	return service.DetectParams{
		Start:    start,
		End:      end,
		State:    req.State,
		District: req.District,
		ROI:      req.ROI,
	}, nil
}

func detectionPayload(r *models.DetectionResult) gin.H {
	return gin.H{
		"run_id":             r.RunID,
		"outcome":            r.Outcome,
		"degraded":           r.Degraded,
		"state":              r.State,
		"district":           r.District,
		"fire_hotspots":      len(r.Hotspots),
		"fire_area_hectares": r.AreaHectares,
		"max_dnbr":           r.MaxDNBR,
		"hotspots_geojson":   r.HotspotsGeoJSON(),
		"boundary_geojson":   r.Boundary,
		"roi_area_hectares":  models.Round(spatial.AreaHectares(r.Boundary), 2),
		"map_center":         spatial.Center(r.Boundary),
		"pre_fire_window":    r.PreFireWindow,
		"post_fire_window":   r.PostFireWindow,
	}
}
