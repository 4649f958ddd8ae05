package ee

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testComputeURL = "https://ee.test/v1/projects/test-project/value:compute"

func newTestClient() *Client {
	return NewClientWithHTTPClient(http.DefaultClient, "test-project", "https://ee.test")
}

func TestComputeValueSuccess(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, testComputeURL,
		httpmock.NewStringResponder(http.StatusOK, `{"result": 42}`))

	raw, err := newTestClient().ComputeValue(context.Background(),
		Call("Collection.size", map[string]any{"collection": "x"}))
	require.NoError(t, err)
	assert.JSONEq(t, `42`, string(raw))
}

func TestComputeValuePostsExpression(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	var posted string
	httpmock.RegisterResponder(http.MethodPost, testComputeURL,
		func(req *http.Request) (*http.Response, error) {
			var body struct {
				Expression json.RawMessage `json:"expression"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				return nil, err
			}
			posted = string(body.Expression)
			return httpmock.NewStringResponse(http.StatusOK, `{"result": 1}`), nil
		})

	_, err := newTestClient().ComputeValue(context.Background(),
		NewImageCollection("SOME/DATASET").Size())
	require.NoError(t, err)
	assert.Contains(t, posted, `"functionName":"Collection.size"`)
	assert.Contains(t, posted, `"id":"SOME/DATASET"`)
}

func TestComputeValueAPIError(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, testComputeURL,
		httpmock.NewStringResponder(http.StatusForbidden,
			`{"error": {"code": 403, "message": "permission denied on project", "status": "PERMISSION_DENIED"}}`))

	_, err := newTestClient().ComputeValue(context.Background(),
		NewImageCollection("SOME/DATASET").Size())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Code)
	assert.Equal(t, "PERMISSION_DENIED", apiErr.Status)
	assert.Equal(t, "permission denied on project", apiErr.Message)
}

func TestComputeFeatures(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, testComputeURL,
		httpmock.NewStringResponder(http.StatusOK, `{"result": {
			"type": "FeatureCollection",
			"features": [{
				"type": "Feature",
				"geometry": {"type": "Point", "coordinates": [75.8, 30.9]},
				"properties": {"dNBR": 0.5}
			}]
		}}`))

	fc, err := newTestClient().ComputeFeatures(context.Background(),
		NewFeatureCollection("SOME/VECTORS").Expression())
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.InDelta(t, 0.5, fc.Features[0].Properties["dNBR"], 1e-9)
}

func TestComputeInt(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, testComputeURL,
		httpmock.NewStringResponder(http.StatusOK, `{"result": 17}`))

	n, err := ComputeInt(context.Background(), newTestClient(),
		NewImageCollection("SOME/DATASET").Size())
	require.NoError(t, err)
	assert.Equal(t, 17, n)
}
