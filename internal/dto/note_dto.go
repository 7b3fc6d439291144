package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title    string      `json:"title" validate:"max=256"`
	Content  string      `json:"content"`
	Pinned   bool        `json:"pinned"`
	LabelIds []uuid.UUID `json:"label_ids"`
}

type CreateNoteResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateNoteRequest struct {
	Id      uuid.UUID
	Title   string `json:"title" validate:"max=256"`
	Content string `json:"content"`
}

type UpdateNoteResponse struct {
	Id uuid.UUID `json:"id"`
}

type TogglePinRequest struct {
	Id     uuid.UUID
	Pinned bool `json:"pinned"`
}

type SetLabelsRequest struct {
	Id       uuid.UUID
	LabelIds []uuid.UUID `json:"label_ids"`
}

type ShowNoteResponse struct {
	Id        uuid.UUID        `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	Pinned    bool             `json:"pinned"`
	Encrypted bool             `json:"encrypted"`
	Labels    []*LabelResponse `json:"labels"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt *time.Time       `json:"updated_at"`
	DeletedAt *time.Time       `json:"deleted_at,omitempty"`
}

// ListNotesQuery carries the list filters bound from query params. Sort
// fields left unset fall back to the stored preferences.
type ListNotesQuery struct {
	Trash     bool
	Pinned    *bool
	Label     string
	Search    string
	SortKey   string `validate:"omitempty,oneof=created_date edited_date title"`
	Ascending *bool
	Limit     int
	Offset    int
}

// NoteListItem is a list row: content is flattened to a bounded preview,
// labels to their visible names.
type NoteListItem struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Preview   string     `json:"preview"`
	Pinned    bool       `json:"pinned"`
	Encrypted bool       `json:"encrypted"`
	Labels    []string   `json:"labels"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

type ListNotesResponse struct {
	Items []*NoteListItem `json:"items"`
	Total int64           `json:"total"`
}

type ExportNoteResponse struct {
	Id     uuid.UUID `json:"id"`
	Format string    `json:"format"`
	Body   string    `json:"body"`
}

type ImportNoteRequest struct {
	Title    string `json:"title" validate:"max=256"`
	Markdown string `json:"markdown" validate:"required"`
	Pinned   bool   `json:"pinned"`
}
