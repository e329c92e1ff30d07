// Package client provides a Go client for the kanban API plus an in-memory
// board state controller with optimistic mutations.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// APIError is the error envelope returned by the server for non-2xx
// responses.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// Session is the client-side identity. It replaces ambient global auth
// state: hydrate it from wherever the token was persisted, inject it into
// the client, and clear it on logout. Logout is purely a token discard;
// the server keeps no session state.
type Session struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Client is an HTTP client for the kanban API.
type Client struct {
	baseURL string
	httpc   *http.Client
	session Session
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// New creates a client for the API served at baseURL (no trailing slash).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetSession injects the session used for protected requests.
func (c *Client) SetSession(s Session) {
	c.session = s
}

// Session returns the current session.
func (c *Client) Session() Session {
	return c.session
}

// ClearSession discards the session (client-side logout).
func (c *Client) ClearSession() {
	c.session = Session{}
}

// View types mirroring the server's response shapes.

type Task struct {
	ID          string     `json:"id"`
	Content     string     `json:"content"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Tasks []Task `json:"tasks"`
}

type Board struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Background string   `json:"background"`
	Columns    []Column `json:"columns"`
}

type BoardSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type CreatedBoard struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Background  string   `json:"background"`
	ColumnOrder []string `json:"column_order"`
}

type createdColumn struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	TaskIDs []string `json:"task_ids"`
}

// BoardUpdate is a partial board update; nil fields are left unchanged.
type BoardUpdate struct {
	Title      *string `json:"title,omitempty"`
	Background *string `json:"background,omitempty"`
}

// TaskUpdate is a partial task update; nil fields are left unchanged.
type TaskUpdate struct {
	Content     *string    `json:"content,omitempty"`
	Description *string    `json:"description,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Register creates an account and returns the established session.
func (c *Client) Register(ctx context.Context, name, email, password string) (Session, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var session Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Login verifies credentials and returns the established session.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	body := map[string]string{"email": email, "password": password}
	var session Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// ListBoards returns summaries of the caller's boards.
func (c *Client) ListBoards(ctx context.Context) ([]BoardSummary, error) {
	var summaries []BoardSummary
	if err := c.do(ctx, http.MethodGet, "/api/boards", nil, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// CreateBoard creates a board seeded with the default columns.
func (c *Client) CreateBoard(ctx context.Context, title string) (CreatedBoard, error) {
	var board CreatedBoard
	err := c.do(ctx, http.MethodPost, "/api/boards", map[string]string{"title": title}, &board)
	return board, err
}

// GetBoard returns a board with columns and tasks populated.
func (c *Client) GetBoard(ctx context.Context, boardID string) (*Board, error) {
	var board Board
	if err := c.do(ctx, http.MethodGet, "/api/boards/"+boardID, nil, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// UpdateBoard applies a partial update to a board.
func (c *Client) UpdateBoard(ctx context.Context, boardID string, update BoardUpdate) (CreatedBoard, error) {
	var board CreatedBoard
	err := c.do(ctx, http.MethodPut, "/api/boards/"+boardID, update, &board)
	return board, err
}

// DeleteBoard deletes a board and everything it contains.
func (c *Client) DeleteBoard(ctx context.Context, boardID string) error {
	return c.do(ctx, http.MethodDelete, "/api/boards/"+boardID, nil, nil)
}

// ReorderColumns submits a complete replacement column order for a board.
func (c *Client) ReorderColumns(ctx context.Context, boardID string, order []string) error {
	body := map[string][]string{"new_column_order": order}
	return c.do(ctx, http.MethodPut, "/api/boards/"+boardID+"/reorder", body, nil)
}

// CreateColumn creates a column on a board.
func (c *Client) CreateColumn(ctx context.Context, boardID, title string) (Column, error) {
	var created createdColumn
	err := c.do(ctx, http.MethodPost, "/api/boards/"+boardID+"/columns", map[string]string{"title": title}, &created)
	if err != nil {
		return Column{}, err
	}
	return Column{ID: created.ID, Title: created.Title, Tasks: []Task{}}, nil
}

// UpdateColumn renames a column.
func (c *Client) UpdateColumn(ctx context.Context, columnID, title string) error {
	return c.do(ctx, http.MethodPut, "/api/columns/"+columnID, map[string]string{"title": title}, nil)
}

// DeleteColumn deletes a column and every task it references.
func (c *Client) DeleteColumn(ctx context.Context, columnID string) error {
	return c.do(ctx, http.MethodDelete, "/api/columns/"+columnID, nil, nil)
}

// AddTask creates a task inside a column and returns the canonical record.
func (c *Client) AddTask(ctx context.Context, columnID, content string) (Task, error) {
	var task Task
	err := c.do(ctx, http.MethodPost, "/api/columns/"+columnID+"/tasks", map[string]string{"content": content}, &task)
	return task, err
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, taskID string, update TaskUpdate) (Task, error) {
	var task Task
	err := c.do(ctx, http.MethodPut, "/api/tasks/"+taskID, update, &task)
	return task, err
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+taskID, nil, nil)
}

// MoveTask commits a task's final column and index after a drag.
func (c *Client) MoveTask(ctx context.Context, taskID, targetColumnID string, newIndex int) error {
	body := map[string]interface{}{
		"task_id":          taskID,
		"target_column_id": targetColumnID,
		"new_index":        newIndex,
	}
	return c.do(ctx, http.MethodPut, "/api/tasks/move", body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
