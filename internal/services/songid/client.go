package songid

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://api.audd.io"
	defaultHTTPTimeout = 30 * time.Second
)

// Match is the structured track metadata returned for a confident
// fingerprint match. Album is best-effort and may be empty.
type Match struct {
	Title  string
	Artist string
	Album  string
}

// Client wraps the acoustic-fingerprint identification API.
type Client struct {
	apiToken   string
	baseURL    string
	httpClient *http.Client
}

// Option customizes the fingerprint client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithTimeout bounds the identification call.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient constructs a fingerprint API client.
func NewClient(apiToken string, opts ...Option) *Client {
	client := &Client{
		apiToken:   strings.TrimSpace(apiToken),
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type apiResponse struct {
	Status string     `json:"status"`
	Error  *apiError  `json:"error"`
	Result *apiResult `json:"result"`
}

type apiError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_message"`
}

type apiResult struct {
	Title    string       `json:"title"`
	Artist   string       `json:"artist"`
	Album    string       `json:"album"`
	Sections []apiSection `json:"sections"`
}

type apiSection struct {
	Metadata []apiMetadataItem `json:"metadata"`
}

type apiMetadataItem struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Recognize submits the file's raw bytes for identification. The second
// return value reports whether the service produced a confident match; a
// clean no-match is not an error.
func (c *Client) Recognize(ctx context.Context, path string) (Match, bool, error) {
	var empty Match
	if c.apiToken == "" {
		return empty, false, errors.New("songid recognize: api token required")
	}

	body, contentType, err := buildRequestBody(c.apiToken, path)
	if err != nil {
		return empty, false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", body)
	if err != nil {
		return empty, false, fmt.Errorf("songid recognize: request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return empty, false, fmt.Errorf("songid recognize: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return empty, false, fmt.Errorf("songid recognize: unexpected status %s", resp.Status)
	}

	var decoded apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return empty, false, fmt.Errorf("songid recognize: decode response: %w", err)
	}
	if decoded.Error != nil {
		return empty, false, fmt.Errorf("songid recognize: api error %d: %s", decoded.Error.Code, decoded.Error.Message)
	}
	if decoded.Status != "success" || decoded.Result == nil || strings.TrimSpace(decoded.Result.Title) == "" {
		return empty, false, nil
	}

	return Match{
		Title:  strings.TrimSpace(decoded.Result.Title),
		Artist: strings.TrimSpace(decoded.Result.Artist),
		Album:  resolveAlbum(decoded.Result),
	}, true, nil
}

// resolveAlbum prefers the top-level album field, then the first structured
// metadata section entry labeled "Album".
func resolveAlbum(result *apiResult) string {
	if album := strings.TrimSpace(result.Album); album != "" {
		return album
	}
	for _, section := range result.Sections {
		for _, item := range section.Metadata {
			if item.Title == "Album" {
				return strings.TrimSpace(item.Text)
			}
		}
	}
	return ""
}

func buildRequestBody(apiToken, path string) (*bytes.Buffer, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("songid recognize: open file: %w", err)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("api_token", apiToken); err != nil {
		return nil, "", fmt.Errorf("songid recognize: encode request: %w", err)
	}
	if err := writer.WriteField("return", "timecode"); err != nil {
		return nil, "", fmt.Errorf("songid recognize: encode request: %w", err)
	}
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, "", fmt.Errorf("songid recognize: encode request: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("songid recognize: read file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("songid recognize: encode request: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}
