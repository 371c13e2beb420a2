package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sweetshop-web/internal/config"
	"sweetshop-web/internal/models"
	"sweetshop-web/pkg/middleware"

	"go.uber.org/zap"
)

// HTTPClient implements Client over the sweets service's JSON API
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPClient creates a new HTTP client for the sweets API
func NewHTTPClient(cfg *config.Config, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: cfg.SweetsAPIURL,
		client: &http.Client{
			Timeout: time.Duration(cfg.APITimeoutSeconds) * time.Second,
		},
		logger: logger,
	}
}

func (c *HTTPClient) ListSweets(ctx context.Context, token string) ([]models.Sweet, error) {
	var sweets []models.Sweet
	if err := c.do(ctx, http.MethodGet, "/sweets", token, nil, &sweets); err != nil {
		return nil, err
	}
	return sweets, nil
}

func (c *HTTPClient) CreateSweet(ctx context.Context, token string, fields models.SweetFields) (*models.Sweet, error) {
	var sweet models.Sweet
	if err := c.do(ctx, http.MethodPost, "/sweets", token, fields, &sweet); err != nil {
		return nil, err
	}
	return &sweet, nil
}

func (c *HTTPClient) UpdateSweet(ctx context.Context, token, id string, fields models.SweetFields) (*models.Sweet, error) {
	var sweet models.Sweet
	if err := c.do(ctx, http.MethodPut, "/sweets/"+id, token, fields, &sweet); err != nil {
		return nil, err
	}
	return &sweet, nil
}

func (c *HTTPClient) DeleteSweet(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/sweets/"+id, token, nil, nil)
}

func (c *HTTPClient) PurchaseSweet(ctx context.Context, token, id string, quantity int) error {
	body := map[string]int{"quantity": quantity}
	return c.do(ctx, http.MethodPost, "/sweets/"+id+"/purchase", token, body, nil)
}

func (c *HTTPClient) RestockSweet(ctx context.Context, token, id string, quantity int) error {
	body := map[string]int{"quantity": quantity}
	return c.do(ctx, http.MethodPost, "/sweets/"+id+"/restock", token, body, nil)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// errorBody is the shape of a failure response from the sweets service.
// The message field is optional.
type errorBody struct {
	Message string `json:"message"`
}

// do performs one JSON round trip against the sweets API. A non-2xx status
// becomes an *APIError carrying the optional server message.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.RequestIDHeader, requestID)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("Sweets API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("sweets api: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Sweets API request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody errorBody
		// Best effort: the message field is optional
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errBody.Message,
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
