package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gopalt/burnscar-backend-go/pkg/response"
)

var exportHeader = []string{"ID", "Latitude", "Longitude", "Severity", "dNBR", "BAI", "dNDVI"}

// ExportCSV handles GET /api/v1/export/:run_id. One row per hotspot of the
// referenced run; unknown, expired, and empty runs are all not-found.
func (h *DetectionHandler) ExportCSV(c *gin.Context) {
	result, err := h.results.Get(c.Param("run_id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "no detection result for run", nil)
		return
	}
	if len(result.Hotspots) == 0 {
		response.Error(c, http.StatusNotFound, "no data available to export", nil)
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to write CSV", err)
		return
	}
	for _, spot := range result.Hotspots {
		row := []string{
			strconv.Itoa(spot.ID),
			strconv.FormatFloat(spot.Latitude, 'f', -1, 64),
			strconv.FormatFloat(spot.Longitude, 'f', -1, 64),
			string(spot.Severity),
			strconv.FormatFloat(spot.DNBR, 'f', -1, 64),
			strconv.FormatFloat(spot.BAI, 'f', -1, 64),
			strconv.FormatFloat(spot.DNDVI, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			response.Error(c, http.StatusInternalServerError, "failed to write CSV", err)
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to write CSV", err)
		return
	}

	filename := fmt.Sprintf("burn_scars_%s_%s_%s_to_%s.csv",
		slug(result.State), slug(result.District), result.StartDate, result.EndDate)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func slug(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}
