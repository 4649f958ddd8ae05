package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/paulmach/orb/geojson"

	"github.com/gopalt/burnscar-backend-go/internal/ee"
)

// gaulDataset is the administrative boundary reference dataset (level 2 =
// districts).
const gaulDataset = "FAO/GAUL/2015/level2"

// ErrRegionNotFound means no boundary feature matched the requested state
// and district names. Name mismatches are caller errors; there is no fuzzy
// matching or retry.
var ErrRegionNotFound = errors.New("region not found")

// BoundaryService resolves district boundaries from the reference dataset.
type BoundaryService struct {
	eval   ee.Evaluator
	logger *slog.Logger
}

// NewBoundaryService creates a boundary resolver over the given evaluator.
func NewBoundaryService(eval ee.Evaluator) *BoundaryService {
	return &BoundaryService{
		eval:   eval,
		logger: slog.With("component", "boundary"),
	}
}

// DistrictBoundary looks up a district polygon by exact (state, district)
// name match. The returned geometry serves both as the pipeline ROI and as
// the display boundary.
func (s *BoundaryService) DistrictBoundary(ctx context.Context, state, district string) (*geojson.Geometry, error) {
	s.logger.Info("resolving district boundary", "state", state, "district", district)

	matches := ee.NewFeatureCollection(gaulDataset).
		Filter(ee.And(
			ee.Eq("ADM1_NAME", state),
			ee.Eq("ADM2_NAME", district),
		))

	fc, err := s.eval.ComputeFeatures(ctx, matches.Expression())
	if err != nil {
		return nil, fmt.Errorf("boundary query for %s/%s: %w", state, district, err)
	}
	if len(fc.Features) == 0 {
		return nil, ErrRegionNotFound
	}

	return geojson.NewGeometry(fc.Features[0].Geometry), nil
}
