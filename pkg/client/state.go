package client

import (
	"context"
	"sync"
)

// Notifier receives user-visible error notifications from failed mutations.
type Notifier func(message string)

// BoardState holds the board view (columns with embedded, ordered task
// lists) as the single source of view truth, and mirrors every mutation to
// the API. Mutations are optimistic: the local state changes first, and a
// failed request restores the pre-mutation snapshot and emits a
// notification. In-flight mutations are not serialized or cancelled; the
// last response to arrive wins.
type BoardState struct {
	api     *Client
	onError Notifier
	mu      sync.Mutex
	boardID string
	title   string
	columns []Column
}

// NewBoardState creates a controller over the given API client. onError may
// be nil.
func NewBoardState(api *Client, onError Notifier) *BoardState {
	return &BoardState{
		api:     api,
		onError: onError,
	}
}

// Load fetches the board and replaces the local view. A load failure leaves
// the view empty.
func (s *BoardState) Load(ctx context.Context, boardID string) error {
	board, err := s.api.GetBoard(ctx, boardID)
	if err != nil {
		s.mu.Lock()
		s.boardID = boardID
		s.columns = nil
		s.mu.Unlock()
		s.notify("Failed to load board")
		return err
	}

	s.mu.Lock()
	s.boardID = boardID
	s.title = board.Title
	s.columns = cloneColumns(board.Columns)
	s.mu.Unlock()
	return nil
}

// Title returns the loaded board's title.
func (s *BoardState) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// Columns returns a copy of the current view state.
func (s *BoardState) Columns() []Column {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneColumns(s.columns)
}

// AddColumn creates a column and appends it to the view. Creation is
// server-first: the canonical column (with its server-assigned id) is
// appended once the request succeeds.
func (s *BoardState) AddColumn(ctx context.Context, title string) error {
	s.mu.Lock()
	boardID := s.boardID
	s.mu.Unlock()

	column, err := s.api.CreateColumn(ctx, boardID, title)
	if err != nil {
		s.notify("Failed to create column")
		return err
	}

	s.mu.Lock()
	s.columns = append(s.columns, column)
	s.mu.Unlock()
	return nil
}

// AddTask creates a task in a column. Server-first, so the task appears
// with its canonical id.
func (s *BoardState) AddTask(ctx context.Context, columnID, content string) error {
	task, err := s.api.AddTask(ctx, columnID, content)
	if err != nil {
		s.notify("Failed to create task")
		return err
	}

	s.mu.Lock()
	for i := range s.columns {
		if s.columns[i].ID == columnID {
			s.columns[i].Tasks = append(s.columns[i].Tasks, task)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// RenameColumn optimistically renames a column.
func (s *BoardState) RenameColumn(ctx context.Context, columnID, title string) error {
	return s.mutate(ctx, "Failed to rename column",
		func() {
			for i := range s.columns {
				if s.columns[i].ID == columnID {
					s.columns[i].Title = title
					break
				}
			}
		},
		func(ctx context.Context) error {
			return s.api.UpdateColumn(ctx, columnID, title)
		},
	)
}

// DeleteColumn optimistically removes a column and its tasks from the view.
func (s *BoardState) DeleteColumn(ctx context.Context, columnID string) error {
	return s.mutate(ctx, "Failed to delete column",
		func() {
			filtered := s.columns[:0]
			for _, column := range s.columns {
				if column.ID != columnID {
					filtered = append(filtered, column)
				}
			}
			s.columns = filtered
		},
		func(ctx context.Context) error {
			return s.api.DeleteColumn(ctx, columnID)
		},
	)
}

// MoveColumn optimistically moves the column at fromIndex to toIndex and
// submits the complete resulting order.
func (s *BoardState) MoveColumn(ctx context.Context, fromIndex, toIndex int) error {
	var order []string
	return s.mutate(ctx, "Failed to reorder board",
		func() {
			s.columns = arrayMove(s.columns, fromIndex, toIndex)
			order = make([]string, len(s.columns))
			for i, column := range s.columns {
				order[i] = column.ID
			}
		},
		func(ctx context.Context) error {
			return s.api.ReorderColumns(ctx, s.boardID, order)
		},
	)
}

// UpdateTask optimistically applies a partial task update.
func (s *BoardState) UpdateTask(ctx context.Context, taskID string, update TaskUpdate) error {
	return s.mutate(ctx, "Failed to update task",
		func() {
			for i := range s.columns {
				for j := range s.columns[i].Tasks {
					if s.columns[i].Tasks[j].ID != taskID {
						continue
					}
					task := &s.columns[i].Tasks[j]
					if update.Content != nil {
						task.Content = *update.Content
					}
					if update.Description != nil {
						task.Description = *update.Description
					}
					if update.Priority != nil {
						task.Priority = *update.Priority
					}
					if update.DueDate != nil {
						task.DueDate = update.DueDate
					}
				}
			}
		},
		func(ctx context.Context) error {
			_, err := s.api.UpdateTask(ctx, taskID, update)
			return err
		},
	)
}

// DeleteTask optimistically removes a task from whichever column holds it.
func (s *BoardState) DeleteTask(ctx context.Context, taskID string) error {
	return s.mutate(ctx, "Failed to delete task",
		func() {
			for i := range s.columns {
				tasks := s.columns[i].Tasks[:0]
				for _, task := range s.columns[i].Tasks {
					if task.ID != taskID {
						tasks = append(tasks, task)
					}
				}
				s.columns[i].Tasks = tasks
			}
		},
		func(ctx context.Context) error {
			return s.api.DeleteTask(ctx, taskID)
		},
	)
}

// MoveTask optimistically migrates a task between the in-memory task lists
// and commits the final column/index pair.
func (s *BoardState) MoveTask(ctx context.Context, taskID, targetColumnID string, newIndex int) error {
	return s.mutate(ctx, "Failed to move task",
		func() {
			var moved *Task
			for i := range s.columns {
				tasks := s.columns[i].Tasks[:0]
				for _, task := range s.columns[i].Tasks {
					if task.ID == taskID {
						t := task
						moved = &t
						continue
					}
					tasks = append(tasks, task)
				}
				s.columns[i].Tasks = tasks
			}
			if moved == nil {
				return
			}
			for i := range s.columns {
				if s.columns[i].ID != targetColumnID {
					continue
				}
				index := newIndex
				if index < 0 {
					index = 0
				}
				if index > len(s.columns[i].Tasks) {
					index = len(s.columns[i].Tasks)
				}
				tasks := make([]Task, 0, len(s.columns[i].Tasks)+1)
				tasks = append(tasks, s.columns[i].Tasks[:index]...)
				tasks = append(tasks, *moved)
				tasks = append(tasks, s.columns[i].Tasks[index:]...)
				s.columns[i].Tasks = tasks
				break
			}
		},
		func(ctx context.Context) error {
			return s.api.MoveTask(ctx, taskID, targetColumnID, newIndex)
		},
	)
}

// mutate runs an optimistic mutation: snapshot, apply locally, fire the
// request, and roll back to the snapshot if the request fails.
func (s *BoardState) mutate(ctx context.Context, failureMessage string, apply func(), call func(context.Context) error) error {
	s.mu.Lock()
	snapshot := cloneColumns(s.columns)
	apply()
	s.mu.Unlock()

	if err := call(ctx); err != nil {
		s.mu.Lock()
		s.columns = snapshot
		s.mu.Unlock()
		s.notify(failureMessage)
		return err
	}
	return nil
}

func (s *BoardState) notify(message string) {
	if s.onError != nil {
		s.onError(message)
	}
}

func cloneColumns(columns []Column) []Column {
	cloned := make([]Column, len(columns))
	for i, column := range columns {
		cloned[i] = column
		cloned[i].Tasks = append([]Task(nil), column.Tasks...)
	}
	return cloned
}

func arrayMove(columns []Column, from, to int) []Column {
	if from < 0 || from >= len(columns) {
		return columns
	}
	if to < 0 {
		to = 0
	}
	if to >= len(columns) {
		to = len(columns) - 1
	}
	moved := columns[from]
	rest := append(append([]Column{}, columns[:from]...), columns[from+1:]...)
	result := make([]Column, 0, len(columns))
	result = append(result, rest[:to]...)
	result = append(result, moved)
	result = append(result, rest[to:]...)
	return result
}
