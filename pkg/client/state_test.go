package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkanban/kanban/pkg/client"
)

// faultTransport fails requests matching a method/path prefix pair and
// forwards everything else. It simulates the server becoming unreachable
// mid-session.
type faultTransport struct {
	next       http.RoundTripper
	failMethod string
	failPath   string
}

func (t *faultTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method == t.failMethod && strings.HasPrefix(req.URL.Path, t.failPath) {
		return nil, errors.New("connection refused")
	}
	return t.next.RoundTrip(req)
}

// stateFixture is a loaded BoardState backed by a real server.
type stateFixture struct {
	api   *client.Client
	state *client.BoardState
	board client.CreatedBoard
}

func setupBoardState(t *testing.T, server *httptest.Server) stateFixture {
	t.Helper()

	api := newSignedInClient(t, server, "state@example.com")
	ctx := context.Background()

	board, err := api.CreateBoard(ctx, "State")
	require.NoError(t, err)

	state := client.NewBoardState(api, nil)
	require.NoError(t, state.Load(ctx, board.ID))

	return stateFixture{api: api, state: state, board: board}
}

func TestLoadPopulatesColumns(t *testing.T) {
	server := startTestServer(t)
	fixture := setupBoardState(t, server)

	columns := fixture.state.Columns()
	require.Len(t, columns, 3)
	assert.Equal(t, "To Do", columns[0].Title)
	assert.Equal(t, "State", fixture.state.Title())
}

func TestLoadFailureClearsViewAndNotifies(t *testing.T) {
	server := startTestServer(t)
	api := newSignedInClient(t, server, "state@example.com")

	var messages []string
	state := client.NewBoardState(api, func(message string) {
		messages = append(messages, message)
	})

	err := state.Load(context.Background(), "no-such-board")
	require.Error(t, err)
	assert.Empty(t, state.Columns())
	assert.Equal(t, []string{"Failed to load board"}, messages)
}

func TestColumnsReturnsACopy(t *testing.T) {
	server := startTestServer(t)
	fixture := setupBoardState(t, server)

	columns := fixture.state.Columns()
	columns[0].Title = "Clobbered"

	assert.Equal(t, "To Do", fixture.state.Columns()[0].Title)
}

func TestAddColumnIsServerFirst(t *testing.T) {
	server := startTestServer(t)
	fixture := setupBoardState(t, server)
	ctx := context.Background()

	require.NoError(t, fixture.state.AddColumn(ctx, "Blocked"))

	columns := fixture.state.Columns()
	require.Len(t, columns, 4)
	assert.Equal(t, "Blocked", columns[3].Title)
	// The view holds the server-assigned id, not a placeholder.
	assert.NotEmpty(t, columns[3].ID)

	board, err := fixture.api.GetBoard(ctx, fixture.board.ID)
	require.NoError(t, err)
	assert.Equal(t, columns[3].ID, board.Columns[3].ID)
}

func TestAddColumnFailureLeavesViewUntouched(t *testing.T) {
	server := startTestServer(t)
	fixture := setupBoardState(t, server)

	api := client.New(server.URL, client.WithHTTPClient(&http.Client{Transport: &faultTransport{
		next:       http.DefaultTransport,
		failMethod: http.MethodPost,
		failPath:   "/api/boards",
	}}))
	api.SetSession(fixture.api.Session())

	var messages []string
	state := client.NewBoardState(api, func(message string) {
		messages = append(messages, message)
	})
	// Load still works; only column creation is cut off.
	require.NoError(t, state.Load(context.Background(), fixture.board.ID))

	err := state.AddColumn(context.Background(), "Blocked")
	require.Error(t, err)
	assert.Len(t, state.Columns(), 3)
	assert.Equal(t, []string{"Failed to create column"}, messages)
}

func TestAddTaskAppendsCanonicalRecord(t *testing.T) {
	server := startTestServer(t)
	fixture := setupBoardState(t, server)
	ctx := context.Background()

	todo := fixture.state.Columns()[0]
	require.NoError(t, fixture.state.AddTask(ctx, todo.ID, "write docs"))

	columns := fixture.state.Columns()
	require.Len(t, columns[0].Tasks, 1)
	assert.Equal(t, "write docs", columns[0].Tasks[0].Content)
	assert.NotEmpty(t, columns[0].Tasks[0].ID)
	assert.Equal(t, "Low", columns[0].Tasks[0].Priority)
}

func TestRenameColumnOptimistic(t *testing.T) {
	server := startTestServer(t)
	fixture := setupBoardState(t, server)
	ctx := context.Background()

	todo := fixture.state.Columns()[0]
	require.NoError(t, fixture.state.RenameColumn(ctx, todo.ID, "Backlog"))
	assert.Equal(t, "Backlog", fixture.state.Columns()[0].Title)

	board, err := fixture.api.GetBoard(ctx, fixture.board.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backlog", board.Columns[0].Title)
}

func TestRenameColumnRollsBackOnFailure(t *testing.T) {
	server := startTestServer(t)
	fixture := setupBoardState(t, server)

	api := client.New(server.URL, client.WithHTTPClient(&http.Client{Transport: &faultTransport{
		next:       http.DefaultTransport,
		failMethod: http.MethodPut,
		failPath:   "/api/columns/",
	}}))
	api.SetSession(fixture.api.Session())

	var messages []string
	state := client.NewBoardState(api, func(message string) {
		messages = append(messages, message)
	})
	require.NoError(t, state.Load(context.Background(), fixture.board.ID))

	todo := state.Columns()[0]
	err := state.RenameColumn(context.Background(), todo.ID, "Backlog")
	require.Error(t, err)

	// Rolled back to the pre-mutation view.
	assert.Equal(t, "To Do", state.Columns()[0].Title)
	assert.Equal(t, []string{"Failed to rename column"}, messages)
}

func TestMoveTaskOptimisticAndPersisted(t *testing.T) {
	server := startTestServer(t)
	fixture := setupBoardState(t, server)
	ctx := context.Background()

	columns := fixture.state.Columns()
	todo, done := columns[0], columns[2]
	require.NoError(t, fixture.state.AddTask(ctx, todo.ID, "first"))
	require.NoError(t, fixture.state.AddTask(ctx, todo.ID, "second"))

	second := fixture.state.Columns()[0].Tasks[1]
	require.NoError(t, fixture.state.MoveTask(ctx, second.ID, done.ID, 0))

	columns = fixture.state.Columns()
	require.Len(t, columns[0].Tasks, 1)
	assert.Equal(t, "first", columns[0].Tasks[0].Content)
	require.Len(t, columns[2].Tasks, 1)
	assert.Equal(t, "second", columns[2].Tasks[0].Content)

	// The server agrees with the local view.
	board, err := fixture.api.GetBoard(ctx, fixture.board.ID)
	require.NoError(t, err)
	require.Len(t, board.Columns[2].Tasks, 1)
	assert.Equal(t, second.ID, board.Columns[2].Tasks[0].ID)
}

func TestMoveTaskRollsBackOnFailure(t *testing.T) {
	server := startTestServer(t)
	fixture := setupBoardState(t, server)
	ctx := context.Background()

	todo := fixture.state.Columns()[0]
	require.NoError(t, fixture.state.AddTask(ctx, todo.ID, "stuck"))

	api := client.New(server.URL, client.WithHTTPClient(&http.Client{Transport: &faultTransport{
		next:       http.DefaultTransport,
		failMethod: http.MethodPut,
		failPath:   "/api/tasks/move",
	}}))
	api.SetSession(fixture.api.Session())

	var messages []string
	state := client.NewBoardState(api, func(message string) {
		messages = append(messages, message)
	})
	require.NoError(t, state.Load(ctx, fixture.board.ID))

	task := state.Columns()[0].Tasks[0]
	done := state.Columns()[2]
	err := state.MoveTask(ctx, task.ID, done.ID, 0)
	require.Error(t, err)

	columns := state.Columns()
	require.Len(t, columns[0].Tasks, 1)
	assert.Equal(t, task.ID, columns[0].Tasks[0].ID)
	assert.Empty(t, columns[2].Tasks)
	assert.Equal(t, []string{"Failed to move task"}, messages)

	// The server never saw the move either.
	board, err := fixture.api.GetBoard(ctx, fixture.board.ID)
	require.NoError(t, err)
	require.Len(t, board.Columns[0].Tasks, 1)
}

func TestMoveColumnSubmitsFullOrder(t *testing.T) {
	server := startTestServer(t)
	fixture := setupBoardState(t, server)
	ctx := context.Background()

	require.NoError(t, fixture.state.MoveColumn(ctx, 0, 2))

	columns := fixture.state.Columns()
	assert.Equal(t, "In Progress", columns[0].Title)
	assert.Equal(t, "To Do", columns[2].Title)

	board, err := fixture.api.GetBoard(ctx, fixture.board.ID)
	require.NoError(t, err)
	assert.Equal(t, "In Progress", board.Columns[0].Title)
	assert.Equal(t, "To Do", board.Columns[2].Title)
}

func TestDeleteColumnOptimistic(t *testing.T) {
	server := startTestServer(t)
	fixture := setupBoardState(t, server)
	ctx := context.Background()

	todo := fixture.state.Columns()[0]
	require.NoError(t, fixture.state.DeleteColumn(ctx, todo.ID))

	columns := fixture.state.Columns()
	require.Len(t, columns, 2)
	assert.Equal(t, "In Progress", columns[0].Title)
}

func TestDeleteTaskOptimistic(t *testing.T) {
	server := startTestServer(t)
	fixture := setupBoardState(t, server)
	ctx := context.Background()

	todo := fixture.state.Columns()[0]
	require.NoError(t, fixture.state.AddTask(ctx, todo.ID, "short-lived"))

	task := fixture.state.Columns()[0].Tasks[0]
	require.NoError(t, fixture.state.DeleteTask(ctx, task.ID))
	assert.Empty(t, fixture.state.Columns()[0].Tasks)
}

func TestUpdateTaskAppliesPartialFields(t *testing.T) {
	server := startTestServer(t)
	fixture := setupBoardState(t, server)
	ctx := context.Background()

	todo := fixture.state.Columns()[0]
	require.NoError(t, fixture.state.AddTask(ctx, todo.ID, "tune cache"))
	task := fixture.state.Columns()[0].Tasks[0]

	priority := "Medium"
	require.NoError(t, fixture.state.UpdateTask(ctx, task.ID, client.TaskUpdate{Priority: &priority}))

	updated := fixture.state.Columns()[0].Tasks[0]
	assert.Equal(t, "Medium", updated.Priority)
	assert.Equal(t, "tune cache", updated.Content)
}
