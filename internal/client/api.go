package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

// APIError is a non-2xx response of the task API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// API talks to the task endpoints over HTTP.
type API struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPI(baseURL string, httpClient *http.Client) *API {
	return &API{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// NewAuthenticatedHTTPClient wraps base so that every request carries
// a bearer token taken from ts.
func NewAuthenticatedHTTPClient(base *http.Client, ts oauth2.TokenSource) *http.Client {
	if base == nil {
		base = http.DefaultClient
	}
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.ReuseTokenSource(nil, ts),
			Base:   base.Transport,
		},
		Timeout: base.Timeout,
	}
}

func (a *API) ListTasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	err := a.do(ctx, http.MethodGet, "/api/todos", nil, &tasks)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = make([]Task, 0)
	}
	return tasks, nil
}

func (a *API) CreateTask(ctx context.Context, text string) (Task, error) {
	var task Task
	err := a.do(ctx, http.MethodPost, "/api/todos", map[string]string{"text": text}, &task)
	return task, err
}

func (a *API) UpdateTask(ctx context.Context, id string, completed bool) (Task, error) {
	var task Task
	err := a.do(ctx, http.MethodPut, "/api/todos/"+url.PathEscape(id), map[string]bool{"completed": completed}, &task)
	return task, err
}

func (a *API) DeleteTask(ctx context.Context, id string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := a.do(ctx, http.MethodDelete, "/api/todos/"+url.PathEscape(id), nil, &resp)
	return resp.Message, err
}

func (a *API) Health(ctx context.Context) (Health, error) {
	var health Health
	err := a.do(ctx, http.MethodGet, "/health", nil, &health)
	return health, err
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
