package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultURL is the public lists endpoint.
const DefaultURL = "https://apis.ccbp.in/list-creation/lists"

// Fetcher retrieves the full set of records in one call.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Record, error)
}

// HTTP fetches the lists payload from a JSON endpoint.
type HTTP struct {
	URL  string
	HTTP *http.Client
}

func NewHTTP(url string, timeout time.Duration) *HTTP {
	return &HTTP{URL: url, HTTP: &http.Client{Timeout: timeout}}
}

func (c *HTTP) Fetch(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("get %s: %w: %s", c.URL, ErrStatus, resp.Status)
	}
	var payload Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("get %s: %w: %v", c.URL, ErrDecode, err)
	}
	return payload.Lists, nil
}

// File reads a lists payload from disk. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
type File struct {
	Path string
}

func (f File) Fetch(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	var payload Payload
	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &payload)
	default:
		err = json.Unmarshal(data, &payload)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %v", f.Path, ErrDecode, err)
	}
	return payload.Lists, nil
}

// New returns the fetcher for location: HTTP for http(s) URLs, File
// otherwise.
func New(location string, timeout time.Duration) (Fetcher, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, ErrLocation
	}
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewHTTP(location, timeout), nil
	}
	if strings.Contains(location, "://") {
		return nil, fmt.Errorf("%w: unsupported scheme in %q", ErrLocation, location)
	}
	return File{Path: location}, nil
}
