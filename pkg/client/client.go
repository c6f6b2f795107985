package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Saksham932007/Attendance/internal/api"
	"github.com/Saksham932007/Attendance/internal/types"
	"github.com/gorilla/websocket"
)

// DefaultTimeout bounds every request except analysis runs, which wait on narrative generation
const DefaultTimeout = 10 * time.Second

// APIError is a non-2xx response from the server
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// SampleOptions controls sample data generation. Zero values use the server defaults.
type SampleOptions struct {
	Employees int
	Days      int
	Seed      *int64
}

// Event is one progress event streamed over the websocket
type Event struct {
	Type string
	Raw  json.RawMessage
}

// Client talks to the attendance analyzer HTTP API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new client for the server at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, DefaultTimeout, http.MethodGet, "/api/health", nil, nil)
}

// GenerateSample replaces the server's dataset with generated sample data
func (c *Client) GenerateSample(ctx context.Context, opts SampleOptions) (*api.DatasetResponse, error) {
	q := url.Values{}
	if opts.Employees > 0 {
		q.Set("employees", strconv.Itoa(opts.Employees))
	}
	if opts.Days > 0 {
		q.Set("days", strconv.Itoa(opts.Days))
	}
	if opts.Seed != nil {
		q.Set("seed", strconv.FormatInt(*opts.Seed, 10))
	}

	path := "/api/sample-data"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp api.DatasetResponse
	if err := c.do(ctx, DefaultTimeout, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Upload replaces the server's dataset with data
func (c *Client) Upload(ctx context.Context, data *types.AttendanceData) (*api.DatasetResponse, error) {
	var resp api.DatasetResponse
	if err := c.do(ctx, DefaultTimeout, http.MethodPost, "/api/upload-attendance", data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Analyze runs an analysis and waits for its results. Bound it with ctx.
func (c *Client) Analyze(ctx context.Context) (*api.AnalyzeResponse, error) {
	var resp api.AnalyzeResponse
	if err := c.do(ctx, 0, http.MethodPost, "/api/analyze-attendance", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Report retrieves the stored analysis report
func (c *Client) Report(ctx context.Context) (*api.ReportResponse, error) {
	var resp api.ReportResponse
	if err := c.do(ctx, DefaultTimeout, http.MethodGet, "/api/attendance-report", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Employees retrieves the employee overview
func (c *Client) Employees(ctx context.Context) (*api.EmployeesResponse, error) {
	var resp api.EmployeesResponse
	if err := c.do(ctx, DefaultTimeout, http.MethodGet, "/api/employees", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Employee retrieves one employee with their records
func (c *Client) Employee(ctx context.Context, employeeID string) (*api.EmployeeDetailResponse, error) {
	var resp api.EmployeeDetailResponse
	if err := c.do(ctx, DefaultTimeout, http.MethodGet, "/api/employees/"+url.PathEscape(employeeID), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DashboardStats retrieves the dashboard statistics
func (c *Client) DashboardStats(ctx context.Context) (*types.DashboardStats, error) {
	var resp types.DashboardStats
	if err := c.do(ctx, DefaultTimeout, http.MethodGet, "/api/dashboard-stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResetDataset clears the server's dataset and results
func (c *Client) ResetDataset(ctx context.Context) error {
	return c.do(ctx, DefaultTimeout, http.MethodDelete, "/api/dataset", nil, nil)
}

// Watch streams progress events to fn until ctx is done, the connection drops,
// or fn returns an error.
func (c *Client) Watch(ctx context.Context, fn func(Event) error) error {
	wsURL, err := c.websocketURL()
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", wsURL, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		var head struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(message, &head); err != nil {
			continue
		}
		if err := fn(Event{Type: head.Type, Raw: message}); err != nil {
			return err
		}
	}
}

func (c *Client) websocketURL() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String(), nil
}

func (c *Client) do(ctx context.Context, timeout time.Duration, method, path string, in, out any) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		var apiErr api.ErrorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
