package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regionRouter() *gin.Engine {
	h := NewRegionHandler()
	r := gin.New()
	r.GET("/api/v1/regions", h.ListStates)
	r.GET("/api/v1/regions/:state/districts", h.ListDistricts)
	return r
}

func TestListStates(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/regions", nil)
	w := httptest.NewRecorder()
	regionRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			States []string `json:"states"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Punjab", "Haryana", "Uttar Pradesh", "Delhi"}, resp.Data.States)
}

func TestListDistricts(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/regions/Punjab/districts", nil)
	w := httptest.NewRecorder()
	regionRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Districts []string `json:"districts"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Data.Districts, "Ludhiana")
}

func TestListDistrictsUnknownState(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/regions/Atlantis/districts", nil)
	w := httptest.NewRecorder()
	regionRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
