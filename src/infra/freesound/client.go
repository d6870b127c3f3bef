package freesound

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/contre95/soundsort/src/features/downloading"
	"github.com/contre95/soundsort/src/sound"
)

const (
	DefaultBaseURL = "https://freesound.org/apiv2"
	searchFields   = "id,name,license,username,tags,previews,images"
)

var ErrMissingToken = errors.New("freesound API token is not set")

// Freesound API response structures
type searchResponse struct {
	Count   int           `json:"count"`
	Next    string        `json:"next"`
	Results []soundResult `json:"results"`
}

type soundResult struct {
	ID       int               `json:"id"`
	Name     string            `json:"name"`
	License  string            `json:"license"`
	Username string            `json:"username"`
	Tags     []string          `json:"tags"`
	Previews map[string]string `json:"previews"`
	Images   map[string]string `json:"images"`
}

var previewKeys = map[string]sound.PreviewQuality{
	"preview-lq-mp3": sound.PreviewLQMP3,
	"preview-hq-mp3": sound.PreviewHQMP3,
	"preview-lq-ogg": sound.PreviewLQOGG,
	"preview-hq-ogg": sound.PreviewHQOGG,
}

// Client talks to the Freesound search API and downloads previews.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a Freesound client. An empty baseURL uses the public API.
func NewClient(baseURL, token string, httpClient *http.Client) downloading.Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
}

func (c *Client) Name() string { return "freesound" }

// Search runs a text search and maps every result to a Sound.
func (c *Client) Search(ctx context.Context, query string, pageSize int) ([]sound.Sound, error) {
	if strings.TrimSpace(c.token) == "" {
		return nil, ErrMissingToken
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page_size", strconv.Itoa(pageSize))
	params.Set("fields", searchFields)
	searchURL := fmt.Sprintf("%s/search/text/?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("freesound search failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	slog.Debug("Freesound search done", "query", query, "count", searchResp.Count, "returned", len(searchResp.Results))

	sounds := make([]sound.Sound, 0, len(searchResp.Results))
	for _, r := range searchResp.Results {
		sounds = append(sounds, r.toSound())
	}
	return sounds, nil
}

// Fetch streams the resource at rawURL into w. Previews are public, the token is sent anyway.
func (c *Client) Fetch(ctx context.Context, rawURL string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to read body: %w", err)
	}
	return n, nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("User-Agent", "Soundsort/1.0")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}
}

func (r soundResult) toSound() sound.Sound {
	previews := make(map[sound.PreviewQuality]string, len(r.Previews))
	for key, link := range r.Previews {
		if q, ok := previewKeys[key]; ok && link != "" {
			previews[q] = link
		}
	}
	return sound.Sound{
		ID:          strconv.Itoa(r.ID),
		Name:        r.Name,
		Title:       r.Name,
		Author:      r.Username,
		License:     r.License,
		Tags:        r.Tags,
		Previews:    previews,
		WaveformURL: r.Images["waveform_m"],
	}
}
