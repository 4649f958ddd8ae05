package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopalt/burnscar-backend-go/internal/models"
)

func TestSaveAndGet(t *testing.T) {
	repo := NewResultRepository(time.Minute)
	result := &models.DetectionResult{RunID: "run-1", Outcome: models.OutcomeSuccess}

	repo.Save(result)

	got, err := repo.Get("run-1")
	require.NoError(t, err)
	assert.Same(t, result, got)
}

func TestGetUnknownRun(t *testing.T) {
	repo := NewResultRepository(time.Minute)

	_, err := repo.Get("missing")
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestSaveReplacesExisting(t *testing.T) {
	repo := NewResultRepository(time.Minute)
	repo.Save(&models.DetectionResult{RunID: "run-1", Outcome: models.OutcomeRemoteFault})
	repo.Save(&models.DetectionResult{RunID: "run-1", Outcome: models.OutcomeSuccess})

	got, err := repo.Get("run-1")
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeSuccess, got.Outcome)
}

func TestExpiry(t *testing.T) {
	repo := NewResultRepository(10 * time.Millisecond)
	repo.Save(&models.DetectionResult{RunID: "run-1"})

	time.Sleep(30 * time.Millisecond)

	_, err := repo.Get("run-1")
	assert.ErrorIs(t, err, ErrNoResult)
}
