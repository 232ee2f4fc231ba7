package client

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/oauth2"
)

var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrTaskNotFound    = errors.New("task not found in local state")
)

// Controller owns the local task state. Every action issues one
// request and merges the single returned record; the full list is only
// fetched by Load. Failed requests leave the state untouched.
//
// Rapid duplicate actions are not deduplicated.
type Controller struct {
	mu      sync.Mutex
	baseURL string
	base    *http.Client
	api     *API
	state   State
}

func NewController(baseURL string, base *http.Client) *Controller {
	return &Controller{
		baseURL: baseURL,
		base:    base,
		state:   State{Status: StatusUnauthenticated, Tasks: make([]Task, 0)},
	}
}

// Authenticate attaches the token source to all further requests and
// performs the initial load.
func (c *Controller) Authenticate(ctx context.Context, ts oauth2.TokenSource) error {
	c.mu.Lock()
	c.api = NewAPI(c.baseURL, NewAuthenticatedHTTPClient(c.base, ts))
	c.mu.Unlock()

	return c.Load(ctx)
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State{
		Status: c.state.Status,
		Tasks:  append(make([]Task, 0, len(c.state.Tasks)), c.state.Tasks...),
	}
}

func (c *Controller) Load(ctx context.Context) error {
	api, err := c.authenticatedAPI()
	if err != nil {
		return err
	}

	c.mu.Lock()
	prev := c.state.Status
	c.state.Status = StatusLoading
	c.mu.Unlock()

	tasks, err := api.ListTasks(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state.Status = prev
		return err
	}
	c.state = Reduce(c.state, Action{Type: ActionReplaceAll, Tasks: tasks})
	return nil
}

// Add creates a task. Blank input is ignored and returns nil.
func (c *Controller) Add(ctx context.Context, text string) (*Task, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	api, err := c.authenticatedAPI()
	if err != nil {
		return nil, err
	}

	task, err := api.CreateTask(ctx, text)
	if err != nil {
		return nil, err
	}

	c.dispatch(Action{Type: ActionCreated, Task: task})
	return &task, nil
}

// Toggle flips the completed flag of the task as currently mirrored.
func (c *Controller) Toggle(ctx context.Context, id string) (*Task, error) {
	api, err := c.authenticatedAPI()
	if err != nil {
		return nil, err
	}

	current, ok := c.find(id)
	if !ok {
		return nil, ErrTaskNotFound
	}

	task, err := api.UpdateTask(ctx, id, !current.Completed)
	if err != nil {
		return nil, err
	}

	c.dispatch(Action{Type: ActionUpdated, Task: task})
	return &task, nil
}

func (c *Controller) Remove(ctx context.Context, id string) error {
	api, err := c.authenticatedAPI()
	if err != nil {
		return err
	}

	_, err = api.DeleteTask(ctx, id)
	if err != nil {
		return err
	}

	c.dispatch(Action{Type: ActionDeleted, ID: id})
	return nil
}

func (c *Controller) Stats() Stats {
	return c.State().Stats()
}

func (c *Controller) dispatch(action Action) {
	c.mu.Lock()
	c.state = Reduce(c.state, action)
	c.mu.Unlock()
}

func (c *Controller) find(id string) (Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, t := range c.state.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

func (c *Controller) authenticatedAPI() (*API, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.api == nil {
		return nil, ErrUnauthenticated
	}
	return c.api, nil
}
