package repository

import (
	"errors"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/gopalt/burnscar-backend-go/internal/models"
)

// ErrNoResult means no detection run exists for the given id: it was never
// created, or it expired.
var ErrNoResult = errors.New("no result for run id")

// DefaultResultTTL bounds how long a finished run stays exportable.
const DefaultResultTTL = time.Hour

// ResultRepository holds recent detection runs in process memory, keyed by
// run id. Runs expire after the TTL; nothing is persisted. Safe for
// concurrent use.
type ResultRepository struct {
	store *cache.Cache
}

// NewResultRepository creates a store with the given TTL (zero or negative
// selects the default).
func NewResultRepository(ttl time.Duration) *ResultRepository {
	if ttl <= 0 {
		ttl = DefaultResultTTL
	}
	return &ResultRepository{store: cache.New(ttl, 2*ttl)}
}

// Save stores a finished run under its run id, replacing any previous entry
// with the same id.
func (r *ResultRepository) Save(result *models.DetectionResult) {
	r.store.Set(result.RunID, result, cache.DefaultExpiration)
}

// Get retrieves a run by id.
func (r *ResultRepository) Get(runID string) (*models.DetectionResult, error) {
	v, found := r.store.Get(runID)
	if !found {
		return nil, ErrNoResult
	}
	return v.(*models.DetectionResult), nil
}
