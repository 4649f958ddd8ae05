package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/gopalt/burnscar-backend-go/internal/ee"
	"github.com/gopalt/burnscar-backend-go/internal/models"
)

// Triple-check burn mask thresholds. A pixel is a candidate detection iff
// all three spectral criteria and the land-cover criterion hold at once.
const (
	dnbrThreshold  = 0.10
	baiThreshold   = 89.0
	dndviThreshold = 0.2
)

// Spatial sampling parameters. Sampling is capped, not exhaustive: for
// large regions the result is a statistical sample, trading completeness
// for bounded remote compute cost.
const (
	sampleScale     = 20.0 // meters of ground resolution
	samplePixels    = 20000
	sampleTileScale = 4.0

	// areaPerPixelHectares converts sampled 20 m pixels to hectares.
	areaPerPixelHectares = 0.04
)

// Pre-fire window offsets relative to the post-fire start: a 45-day window
// ending 15 days before the fire period avoids contamination from the event
// itself while keeping enough scenes for a cloud-free composite.
const (
	preFireStartOffsetDays = -60
	preFireEndOffsetDays   = -15
)

// Windows are the two compositing date ranges of a run. All bounds are
// inclusive.
type Windows struct {
	PreStart  time.Time
	PreEnd    time.Time
	PostStart time.Time
	PostEnd   time.Time
}

// AnalysisWindows derives the pre- and post-fire compositing windows from
// the requested post-fire date range.
func AnalysisWindows(start, end time.Time) Windows {
	return Windows{
		PreStart:  start.AddDate(0, 0, preFireStartOffsetDays),
		PreEnd:    start.AddDate(0, 0, preFireEndOffsetDays),
		PostStart: start,
		PostEnd:   end,
	}
}

// DetectParams is a validated detection request: dates parsed, exactly one
// region mode set.
type DetectParams struct {
	Start    time.Time
	End      time.Time
	State    string
	District string
	ROI      *geojson.Geometry
}

// DetectionService orchestrates one burn-scar pipeline run: boundary
// resolution, composites, indices, masking, sampling, classification.
type DetectionService struct {
	eval            ee.Evaluator
	boundary        *BoundaryService
	landcover       *LandcoverService
	requireAgriMask bool
	logger          *slog.Logger
}

// NewDetectionService wires the pipeline. requireAgriMask controls the
// degraded mode: false (the default deployment) proceeds with the
// spectral-only mask when no land-cover data exists for the year, true turns
// that into an insufficient-data outcome.
func NewDetectionService(eval ee.Evaluator, boundary *BoundaryService, landcover *LandcoverService, requireAgriMask bool) *DetectionService {
	return &DetectionService{
		eval:            eval,
		boundary:        boundary,
		landcover:       landcover,
		requireAgriMask: requireAgriMask,
		logger:          slog.With("component", "detection"),
	}
}

// Detect runs the full pipeline. The only errors returned are caller errors
// (ErrRegionNotFound); remote compute faults are caught here, logged, and
// downgraded to an empty result with a remote_fault outcome so transient
// service trouble never crashes the caller.
func (s *DetectionService) Detect(ctx context.Context, p DetectParams) (*models.DetectionResult, error) {
	var roi *geojson.Geometry
	state, district := p.State, p.District

	if p.ROI != nil {
		roi = p.ROI
		state, district = "Custom", "ROI"
	} else {
		geom, err := s.boundary.DistrictBoundary(ctx, state, district)
		if err != nil {
			if errors.Is(err, ErrRegionNotFound) {
				return nil, err
			}
			s.logger.Error("boundary resolution failed", "error", err)
			return s.newResult(p, state, district, nil, nil, models.OutcomeRemoteFault, false), nil
		}
		roi = geom
	}

	hotspots, outcome, degraded := s.extractBurnScars(ctx, roi, p.Start, p.End)
	return s.newResult(p, state, district, roi, hotspots, outcome, degraded), nil
}

// extractBurnScars is the core algorithm. It never returns an error: remote
// faults and data insufficiency are folded into the outcome.
func (s *DetectionService) extractBurnScars(ctx context.Context, roi *geojson.Geometry, start, end time.Time) ([]models.Hotspot, models.Outcome, bool) {
	w := AnalysisWindows(start, end)
	archive := sentinelArchive(roi)

	// The remote date filter is exclusive of its upper bound; both windows
	// here are inclusive, hence the extra day.
	pre := archive.FilterDate(w.PreStart, w.PreEnd.AddDate(0, 0, 1))
	post := archive.FilterDate(w.PostStart, w.PostEnd.AddDate(0, 0, 1))

	preCount, err := ee.ComputeInt(ctx, s.eval, pre.Size())
	if err != nil {
		return s.remoteFault("pre-fire image count", err)
	}
	postCount, err := ee.ComputeInt(ctx, s.eval, post.Size())
	if err != nil {
		return s.remoteFault("post-fire image count", err)
	}
	s.logger.Info("archive query complete", "pre_images", preCount, "post_images", postCount)

	if preCount == 0 || postCount == 0 {
		// Designed outcome, not a fault: no partial analysis.
		s.logger.Info("insufficient cloud-free imagery, skipping analysis")
		return nil, models.OutcomeInsufficientData, false
	}

	preImg := medianComposite(pre)
	postImg := medianComposite(post)

	dnbrImg := dNBR(preImg, postImg)
	dndviImg := dNDVI(preImg, postImg)
	baiImg := bai(postImg)

	burnMask := dnbrImg.Gt(dnbrThreshold).
		And(baiImg.Gt(baiThreshold)).
		And(dndviImg.Gt(dndviThreshold))

	degraded := false
	finalMask := burnMask
	agriMask, err := s.landcover.AgriculturalMask(ctx, start.Year())
	switch {
	case err == nil:
		finalMask = burnMask.And(agriMask)
	case errors.Is(err, ErrMaskUnavailable):
		if s.requireAgriMask {
			s.logger.Warn("agricultural mask required but unavailable", "error", err)
			return nil, models.OutcomeInsufficientData, false
		}
		s.logger.Warn("proceeding without agricultural mask, results may include non-agricultural burns", "error", err)
		degraded = true
	default:
		return s.remoteFault("agricultural mask", err)
	}

	analysis := dnbrImg.AddBands(baiImg).AddBands(dndviImg).UpdateMask(finalMask)

	fc, err := s.eval.ComputeFeatures(ctx, analysis.Sample(ee.SampleParams{
		Region:     roi,
		Scale:      sampleScale,
		NumPixels:  samplePixels,
		Geometries: true,
		DropNulls:  true,
		TileScale:  sampleTileScale,
	}))
	if err != nil {
		return s.remoteFault("sampling", err)
	}

	hotspots := make([]models.Hotspot, 0, len(fc.Features))
	for _, f := range fc.Features {
		point, ok := f.Geometry.(orb.Point)
		if !ok {
			continue
		}
		dnbrVal := propFloat(f.Properties, "dNBR")
		hotspots = append(hotspots, models.Hotspot{
			ID:        len(hotspots) + 1,
			Latitude:  point.Lat(),
			Longitude: point.Lon(),
			DNBR:      models.Round(dnbrVal, 3),
			BAI:       models.Round(propFloat(f.Properties, "BAI"), 2),
			DNDVI:     models.Round(propFloat(f.Properties, "dNDVI"), 3),
			Severity:  models.ClassifySeverity(dnbrVal),
		})
	}

	s.logger.Info("burn scar extraction complete", "hotspots", len(hotspots), "degraded", degraded)
	return hotspots, models.OutcomeSuccess, degraded
}

func (s *DetectionService) remoteFault(stage string, err error) ([]models.Hotspot, models.Outcome, bool) {
	s.logger.Error("remote compute fault", "stage", stage, "error", err)
	return nil, models.OutcomeRemoteFault, false
}

func (s *DetectionService) newResult(p DetectParams, state, district string, boundary *geojson.Geometry, hotspots []models.Hotspot, outcome models.Outcome, degraded bool) *models.DetectionResult {
	w := AnalysisWindows(p.Start, p.End)

	maxDNBR := 0.0
	for _, h := range hotspots {
		if h.DNBR > maxDNBR {
			maxDNBR = h.DNBR
		}
	}

	const layout = "2006-01-02"
	return &models.DetectionResult{
		RunID:          uuid.NewString(),
		Outcome:        outcome,
		Degraded:       degraded,
		State:          state,
		District:       district,
		StartDate:      p.Start.Format(layout),
		EndDate:        p.End.Format(layout),
		PreFireWindow:  models.DateWindow{Start: w.PreStart.Format(layout), End: w.PreEnd.Format(layout)},
		PostFireWindow: models.DateWindow{Start: w.PostStart.Format(layout), End: w.PostEnd.Format(layout)},
		Hotspots:       hotspots,
		AreaHectares:   models.Round(float64(len(hotspots))*areaPerPixelHectares, 2),
		MaxDNBR:        maxDNBR,
		Boundary:       boundary,
		CreatedAt:      time.Now().UTC(),
	}
}

// propFloat reads a numeric feature property, tolerating the numeric types
// a JSON decoder may produce. Missing or non-numeric values read as 0.
func propFloat(props geojson.Properties, key string) float64 {
	switch v := props[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	default:
		return 0
	}
}
