package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vmunix/mpplugins/internal/audiobook"
	"github.com/vmunix/mpplugins/internal/download"
	"github.com/vmunix/mpplugins/internal/events"
	"github.com/vmunix/mpplugins/internal/handlers"
	"github.com/vmunix/mpplugins/internal/subscribe"
)

// Client wraps HTTP calls to the mpplugd server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Minute, // /ab runs synchronously
		},
	}
}

// apiError is the error body the server sends.
type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func readError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var e apiError
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return fmt.Errorf("server error %d: %s", resp.StatusCode, e.Error)
	}
	return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return readError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) post(path string, body any, result any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
	default:
		return readError(resp)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) delete(path string) error {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return readError(resp)
	}

	return nil
}

// API response types (mirror server types)

type HealthResponse struct {
	Status  string `json:"status"`
	Plugins int    `json:"plugins"`
}

type PluginsResponse struct {
	Items []handlers.PluginInfo `json:"items"`
}

type CommandsResponse struct {
	Items []handlers.Command `json:"items"`
}

type AcceptedResponse struct {
	Event  string `json:"event"`
	Hash   string `json:"hash,omitempty"`
	Action string `json:"action,omitempty"`
}

type HistoryResponse struct {
	Items []string `json:"items"`
	Total int      `json:"total"`
}

type SubscriptionsResponse struct {
	Items []*subscribe.Subscription `json:"items"`
	Total int                       `json:"total"`
}

type DownloadsResponse struct {
	Items []*download.Record `json:"items"`
	Total int                `json:"total"`
}

type EventResponse struct {
	ID         int64  `json:"id"`
	EventType  string `json:"event_type"`
	EntityType string `json:"entity_type"`
	EntityID   int64  `json:"entity_id"`
	Payload    string `json:"payload,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

type EventsResponse struct {
	Items []EventResponse `json:"items"`
	Total int             `json:"total"`
	Limit int             `json:"limit"`
}

func (c *Client) Health() (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.get("/api/v1/health", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Plugins() (*PluginsResponse, error) {
	var resp PluginsResponse
	if err := c.get("/api/v1/plugins", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Commands() (*CommandsResponse, error) {
	var resp CommandsResponse
	if err := c.get("/api/v1/commands", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendCommand posts command text such as "/ab book 3".
func (c *Client) SendCommand(text, channel, user string) (*AcceptedResponse, error) {
	body := map[string]string{"text": text, "channel": channel, "user": user}
	var resp AcceptedResponse
	if err := c.post("/api/v1/commands", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) History() (*HistoryResponse, error) {
	var resp HistoryResponse
	if err := c.get("/api/v1/plugins/subscribegroup/history", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ClearHistory() error {
	return c.delete("/api/v1/plugins/subscribegroup/history")
}

// RunAudiobook runs /ab synchronously and returns the report.
func (c *Client) RunAudiobook(args, user string) (*audiobook.Report, error) {
	body := map[string]string{"args": args, "user": user}
	var resp audiobook.Report
	if err := c.post("/api/v1/plugins/audiobook/run", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Subscriptions(tmdbID int64, season int) (*SubscriptionsResponse, error) {
	q := url.Values{}
	if tmdbID > 0 {
		q.Set("tmdbid", strconv.FormatInt(tmdbID, 10))
	}
	if season >= 0 {
		q.Set("season", strconv.Itoa(season))
	}
	path := "/api/v1/subscriptions"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var resp SubscriptionsResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AddSubscription(sub *subscribe.Subscription) (*subscribe.Subscription, error) {
	var resp subscribe.Subscription
	if err := c.post("/api/v1/subscriptions", sub, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Downloads(limit int) (*DownloadsResponse, error) {
	var resp DownloadsResponse
	if err := c.get(fmt.Sprintf("/api/v1/downloads?limit=%d", limit), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AddDownload(rec *download.Record) (*download.Record, error) {
	var resp download.Record
	if err := c.post("/api/v1/downloads", rec, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DownloadAdded reports a download to the plugins.
func (c *Client) DownloadAdded(hash string, dctx *events.DownloadContext) (*AcceptedResponse, error) {
	var resp AcceptedResponse
	if err := c.post("/api/v1/downloads/"+url.PathEscape(hash)+"/added", dctx, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Events lists recent events, newest first. An empty eventType means all.
func (c *Client) Events(limit int, eventType string) (*EventsResponse, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if eventType != "" {
		q.Set("type", eventType)
	}
	var resp EventsResponse
	if err := c.get("/api/v1/events?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
