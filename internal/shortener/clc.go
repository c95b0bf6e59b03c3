package shortener

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrNoResult means the service answered but produced no short link:
// either its error field was set or no known response shape carried one.
// Distinct from transport failures, which surface as wrapped errors.
var ErrNoResult = errors.New("shortener returned no result")

const defaultEndpoint = "https://clc.li/api/url/add"

// Shortener turns a long URL into a short one
type Shortener interface {
	Shorten(longURL string) (string, error)
}

// Client calls the clc.li shortening API
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a clc.li client with a request timeout; the shortening
// call is the only network hop inside a flow and must not hang it.
func NewClient(apiKey string, logger *zap.Logger) *Client {
	return &Client{
		endpoint: defaultEndpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// response covers the shapes the API has been seen returning. The short
// link arrives in one of: short, shorturl, data.short, url.shorturl.
type response struct {
	Error    json.Number `json:"error"`
	Short    string      `json:"short"`
	ShortURL string      `json:"shorturl"`
	Data     struct {
		Short string `json:"short"`
	} `json:"data"`
	URL struct {
		ShortURL string `json:"shorturl"`
	} `json:"url"`
}

// Shorten submits the long URL and extracts the short one
func (c *Client) Shorten(longURL string) (string, error) {
	body, err := json.Marshal(map[string]string{"url": longURL})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("shortener request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Shortener returned non-200 status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", payload),
		)
		return "", fmt.Errorf("shortener returned status %d", resp.StatusCode)
	}

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode shortener response: %w", err)
	}

	if result.Error != "" && result.Error != "0" {
		c.logger.Error("Shortener reported a logical error", zap.String("error", result.Error.String()))
		return "", ErrNoResult
	}

	switch {
	case result.Short != "":
		return result.Short, nil
	case result.ShortURL != "":
		return result.ShortURL, nil
	case result.Data.Short != "":
		return result.Data.Short, nil
	case result.URL.ShortURL != "":
		return result.URL.ShortURL, nil
	}

	c.logger.Error("Shortener response carried no short link", zap.String("long_url", longURL))
	return "", ErrNoResult
}
