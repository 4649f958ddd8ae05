package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gopalt/burnscar-backend-go/internal/ee"
)

const (
	// landcoverDataset is the annual land classification product.
	landcoverDataset = "MODIS/061/MCD12Q1"
	landcoverBand    = "LC_Type1"

	// Cropland category codes in the classification scheme.
	croplandCode       = 12
	croplandMosaicCode = 14

	// DefaultLatestLandcoverYear is the newest year the dataset is known to
	// cover; requests beyond it clamp down to this year.
	DefaultLatestLandcoverYear = 2023
)

// ErrMaskUnavailable means the land-cover dataset has no record for the
// resolved year. It is a designed signal, not a fault: callers may proceed
// without agricultural filtering.
var ErrMaskUnavailable = errors.New("agricultural mask unavailable for year")

// LandcoverService resolves annual agricultural land masks.
type LandcoverService struct {
	eval       ee.Evaluator
	latestYear int
	logger     *slog.Logger
}

// NewLandcoverService creates a mask provider. latestYear caps the usable
// dataset years; zero or negative selects the default.
func NewLandcoverService(eval ee.Evaluator, latestYear int) *LandcoverService {
	if latestYear <= 0 {
		latestYear = DefaultLatestLandcoverYear
	}
	return &LandcoverService{
		eval:       eval,
		latestYear: latestYear,
		logger:     slog.With("component", "landcover"),
	}
}

// ClampYear applies the "most recent available year" fallback policy.
func (s *LandcoverService) ClampYear(year int) int {
	if year > s.latestYear {
		return s.latestYear
	}
	return year
}

// AgriculturalMask builds the cropland presence mask for a year. Matching
// pixels survive self-masked; everything else is excluded outright, so the
// mask intersects cleanly with the spectral burn mask. Returns
// ErrMaskUnavailable when the dataset has no record for the clamped year.
func (s *LandcoverService) AgriculturalMask(ctx context.Context, year int) (*ee.Image, error) {
	year = s.ClampYear(year)

	annual := ee.NewImageCollection(landcoverDataset).
		Filter(ee.CalendarRange(year, year, "year"))

	n, err := ee.ComputeInt(ctx, s.eval, annual.Size())
	if err != nil {
		return nil, fmt.Errorf("land-cover availability check for %d: %w", year, err)
	}
	if n == 0 {
		s.logger.Warn("no land-cover record for year", "year", year)
		return nil, fmt.Errorf("%w: %d", ErrMaskUnavailable, year)
	}

	classes := annual.First().Select(landcoverBand)
	mask := classes.Eq(croplandCode).
		Or(classes.Eq(croplandMosaicCode)).
		SelfMask()

	s.logger.Info("agricultural mask resolved", "year", year)
	return mask, nil
}
