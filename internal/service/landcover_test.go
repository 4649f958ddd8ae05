package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gopalt/burnscar-backend-go/internal/ee"
)

func TestClampYear(t *testing.T) {
	svc := NewLandcoverService(nil, 2023)

	assert.Equal(t, 2020, svc.ClampYear(2020))
	assert.Equal(t, 2023, svc.ClampYear(2023))
	assert.Equal(t, 2023, svc.ClampYear(2025))
}

func TestNewLandcoverServiceDefaultYear(t *testing.T) {
	svc := NewLandcoverService(nil, 0)
	assert.Equal(t, DefaultLatestLandcoverYear, svc.ClampYear(9999))
}

func TestAgriculturalMask(t *testing.T) {
	var queried string
	eval := &fakeEvaluator{
		valueFn: func(expr string) (json.RawMessage, error) {
			queried = expr
			return json.RawMessage(`1`), nil
		},
	}
	svc := NewLandcoverService(eval, 2023)

	mask, err := svc.AgriculturalMask(context.Background(), 2022)
	require.NoError(t, err)
	require.NotNil(t, mask)

	assert.Contains(t, queried, landcoverDataset)
	assert.Contains(t, queried, `"start":2022`)
	assert.Contains(t, queried, `"end":2022`)

	graph := exprJSON(mask.Expression())
	assert.Contains(t, graph, `"functionName":"Image.selfMask"`)
	assert.Contains(t, graph, `"functionName":"Image.or"`)
	assert.Contains(t, graph, `"bands":["LC_Type1"]`)
}

func TestAgriculturalMaskClampsFutureYear(t *testing.T) {
	var queried string
	eval := &fakeEvaluator{
		valueFn: func(expr string) (json.RawMessage, error) {
			queried = expr
			return json.RawMessage(`1`), nil
		},
	}
	svc := NewLandcoverService(eval, 2023)

	_, err := svc.AgriculturalMask(context.Background(), 2026)
	require.NoError(t, err)
	assert.Contains(t, queried, `"start":2023`)
}

func TestAgriculturalMaskUnavailable(t *testing.T) {
	eval := &fakeEvaluator{
		valueFn: func(expr string) (json.RawMessage, error) {
			return json.RawMessage(`0`), nil
		},
	}
	svc := NewLandcoverService(eval, 2023)

	_, err := svc.AgriculturalMask(context.Background(), 2023)
	assert.ErrorIs(t, err, ErrMaskUnavailable)
}

func TestAgriculturalMaskRemoteFault(t *testing.T) {
	eval := &fakeEvaluator{
		valueFn: func(expr string) (json.RawMessage, error) {
			return nil, &ee.APIError{Code: 500, Status: "INTERNAL", Message: "boom"}
		},
	}
	svc := NewLandcoverService(eval, 2023)

	_, err := svc.AgriculturalMask(context.Background(), 2023)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMaskUnavailable)

	var apiErr *ee.APIError
	assert.ErrorAs(t, err, &apiErr)
}
