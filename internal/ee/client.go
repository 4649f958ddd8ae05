package ee

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/paulmach/orb/geojson"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// DefaultBaseURL is the production compute endpoint.
	DefaultBaseURL = "https://earthengine.googleapis.com"

	authScope = "https://www.googleapis.com/auth/earthengine"
)

// Evaluator triggers remote evaluation of a deferred expression graph.
// Services depend on this interface so tests can substitute a fake.
type Evaluator interface {
	// ComputeValue evaluates the expression and returns the raw JSON result.
	ComputeValue(ctx context.Context, expr *Expression) (json.RawMessage, error)
	// ComputeFeatures evaluates an expression whose result is a GeoJSON
	// feature collection (samples, boundary queries).
	ComputeFeatures(ctx context.Context, expr *Expression) (*geojson.FeatureCollection, error)
}

// APIError is a non-2xx response from the compute service.
type APIError struct {
	Code    int
	Status  string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("compute service error %d (%s): %s", e.Code, e.Status, e.Message)
}

// ClientConfig configures the remote compute client.
type ClientConfig struct {
	Project         string
	BaseURL         string        // defaults to DefaultBaseURL
	CredentialsFile string        // service-account JSON; empty = application default credentials
	Timeout         time.Duration // zero = no client-side timeout
}

// Client talks to the managed geospatial compute service. All heavy raster
// work happens remotely; the client only posts expression graphs and decodes
// results. Calls are synchronous with no retry layer.
type Client struct {
	httpClient *http.Client
	baseURL    string
	project    string
	logger     *slog.Logger
}

var _ Evaluator = (*Client)(nil)

// NewClient builds an authenticated client from service-account or
// application-default credentials.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	if cfg.Project == "" {
		return nil, fmt.Errorf("compute project is required")
	}

	var source oauth2.TokenSource
	if cfg.CredentialsFile != "" {
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, authScope)
		if err != nil {
			return nil, fmt.Errorf("parse credentials: %w", err)
		}
		source = creds.TokenSource
	} else {
		creds, err := google.FindDefaultCredentials(ctx, authScope)
		if err != nil {
			return nil, fmt.Errorf("find default credentials: %w", err)
		}
		source = creds.TokenSource
	}

	httpClient := oauth2.NewClient(ctx, source)
	httpClient.Timeout = cfg.Timeout

	c := NewClientWithHTTPClient(httpClient, cfg.Project, cfg.BaseURL)
	c.logger.Info("compute client initialized",
		"project", cfg.Project,
		"base_url", c.baseURL,
		"timeout", cfg.Timeout)
	return c, nil
}

// NewClientWithHTTPClient builds a client over a caller-supplied HTTP
// client. Used by tests and by callers managing their own transport.
func NewClientWithHTTPClient(httpClient *http.Client, project, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		project:    project,
		logger:     slog.With("component", "ee"),
	}
}

// ComputeValue posts the expression graph for evaluation and returns the raw
// JSON result value.
func (c *Client) ComputeValue(ctx context.Context, expr *Expression) (json.RawMessage, error) {
	payload, err := json.Marshal(map[string]any{"expression": expr})
	if err != nil {
		return nil, fmt.Errorf("encode expression: %w", err)
	}

	url := fmt.Sprintf("%s/v1/projects/%s/value:compute", c.baseURL, c.project)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create compute request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("compute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read compute response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Code: resp.StatusCode, Status: resp.Status, Message: string(body)}
		var wire struct {
			Error struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
				Status  string `json:"status"`
			} `json:"error"`
		}
		if json.Unmarshal(body, &wire) == nil && wire.Error.Message != "" {
			apiErr.Message = wire.Error.Message
			apiErr.Status = wire.Error.Status
		}
		c.logger.Error("compute request failed",
			"status_code", resp.StatusCode,
			"message", apiErr.Message)
		return nil, apiErr
	}

	var result struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode compute response: %w", err)
	}

	c.logger.Debug("compute request done",
		"duration_ms", time.Since(start).Milliseconds(),
		"response_bytes", len(body))
	return result.Result, nil
}

// ComputeFeatures evaluates an expression into a GeoJSON feature collection.
func (c *Client) ComputeFeatures(ctx context.Context, expr *Expression) (*geojson.FeatureCollection, error) {
	raw, err := c.ComputeValue(ctx, expr)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}
	return fc, nil
}

// ComputeInt evaluates an expression whose result is a number, e.g. a
// collection size query.
func ComputeInt(ctx context.Context, ev Evaluator, expr *Expression) (int, error) {
	raw, err := ev.ComputeValue(ctx, expr)
	if err != nil {
		return 0, err
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("decode numeric result: %w", err)
	}
	return int(n), nil
}
