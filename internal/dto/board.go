package dto

import (
	"time"

	"github.com/openkanban/kanban/internal/models"
	"github.com/openkanban/kanban/internal/services"
)

// BoardSummaryDTO is the dashboard listing shape.
type BoardSummaryDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          string              `json:"id"`
	Content     string              `json:"content"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"due_date"`
}

// ColumnDTO represents a column in API responses. Tasks are embedded in
// display order when the column is returned as part of a populated board.
type ColumnDTO struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Tasks []TaskDTO `json:"tasks"`
}

// BoardDTO represents a board with populated columns in API responses.
type BoardDTO struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Background string      `json:"background"`
	Columns    []ColumnDTO `json:"columns"`
}

// CreatedBoardDTO is the shape returned by board creation, before the
// columns are populated.
type CreatedBoardDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Background  string   `json:"background"`
	ColumnOrder []string `json:"column_order"`
}

// Conversion functions

// ToBoardSummaryDTOs converts board summaries for the dashboard listing.
func ToBoardSummaryDTOs(summaries []services.BoardSummary) []BoardSummaryDTO {
	dtos := make([]BoardSummaryDTO, len(summaries))
	for i, summary := range summaries {
		dtos[i] = BoardSummaryDTO{ID: summary.ID, Title: summary.Title}
	}
	return dtos
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Content:     task.Content,
		Description: task.Description,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
	}
}

// ToColumnDTO converts a column and its ordered tasks to ColumnDTO
func ToColumnDTO(column models.Column, tasks []models.Task) ColumnDTO {
	dto := ColumnDTO{
		ID:    column.ID,
		Title: column.Title,
		Tasks: make([]TaskDTO, len(tasks)),
	}
	for i, task := range tasks {
		dto.Tasks[i] = ToTaskDTO(task)
	}
	return dto
}

// ToBoardDTO converts a populated board to BoardDTO
func ToBoardDTO(board *services.PopulatedBoard) BoardDTO {
	dto := BoardDTO{
		ID:         board.Board.ID,
		Title:      board.Board.Title,
		Background: board.Board.Background,
		Columns:    make([]ColumnDTO, len(board.Columns)),
	}
	for i, column := range board.Columns {
		dto.Columns[i] = ToColumnDTO(column.Column, column.Tasks)
	}
	return dto
}

// ToCreatedBoardDTO converts a freshly created board to CreatedBoardDTO
func ToCreatedBoardDTO(board *models.Board) CreatedBoardDTO {
	return CreatedBoardDTO{
		ID:          board.ID,
		Title:       board.Title,
		Background:  board.Background,
		ColumnOrder: board.ColumnOrder,
	}
}
