package models

import (
	"math"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Outcome distinguishes "no fire found" from "not enough data" and from
// "remote compute layer failed". Data-insufficiency and remote faults both
// yield empty detection sets, never errors raised to the caller.
type Outcome string

const (
	OutcomeSuccess          Outcome = "success"
	OutcomeInsufficientData Outcome = "insufficient_data"
	OutcomeRemoteFault      Outcome = "remote_fault"
)

// DetectionRequest is the inbound analysis request. Exactly one of ROI or
// the (State, District) pair must be set; dates are ISO YYYY-MM-DD and bound
// the post-fire window inclusively.
type DetectionRequest struct {
	StartDate string            `json:"start_date" binding:"required"`
	EndDate   string            `json:"end_date" binding:"required"`
	State     string            `json:"state"`
	District  string            `json:"district"`
	ROI       *geojson.Geometry `json:"roi"`
}

// Hotspot is one sampled burn-scar pixel. Severity derives from DNBR and is
// stored only for serialization convenience.
type Hotspot struct {
	ID        int      `json:"id"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	DNBR      float64  `json:"dnbr"`
	BAI       float64  `json:"bai"`
	DNDVI     float64  `json:"dndvi"`
	Severity  Severity `json:"severity"`
}

// DateWindow is a closed date interval.
type DateWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DetectionResult is one completed pipeline run. Results are held in a
// per-run store keyed by RunID until they expire; there is no history.
type DetectionResult struct {
	RunID          string            `json:"run_id"`
	Outcome        Outcome           `json:"outcome"`
	Degraded       bool              `json:"degraded"` // agricultural mask unavailable, spectral-only result
	State          string            `json:"state"`
	District       string            `json:"district"`
	StartDate      string            `json:"start_date"`
	EndDate        string            `json:"end_date"`
	PreFireWindow  DateWindow        `json:"pre_fire_window"`
	PostFireWindow DateWindow        `json:"post_fire_window"`
	Hotspots       []Hotspot         `json:"hotspots"`
	AreaHectares   float64           `json:"fire_area_hectares"`
	MaxDNBR        float64           `json:"max_dnbr"`
	Boundary       *geojson.Geometry `json:"boundary_geojson"`
	CreatedAt      time.Time         `json:"created_at"`
}

// HotspotsGeoJSON renders the detections as a point feature collection for
// map display.
func (r *DetectionResult) HotspotsGeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, h := range r.Hotspots {
		f := geojson.NewFeature(orb.Point{h.Longitude, h.Latitude})
		f.Properties = geojson.Properties{
			"id":       h.ID,
			"severity": string(h.Severity),
			"dnbr":     h.DNBR,
			"bai":      h.BAI,
			"dndvi":    h.DNDVI,
		}
		fc.Append(f)
	}
	return fc
}

// Round truncates v to the given number of decimal places, half away from
// zero. Index values carry documented precisions: dNBR and dNDVI 3 decimals,
// BAI 2 decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
