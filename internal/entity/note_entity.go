package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"keepnotes-be/pkg/delta"
)

type Note struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string
	Content   string
	Pinned    bool
	Encrypted bool
	Labels    []*Label
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

// EditedAt is the instant used for edited-date ordering. A note that has
// never been edited sorts by its creation instant.
func (n *Note) EditedAt() time.Time {
	if n.UpdatedAt != nil {
		return *n.UpdatedAt
	}
	return n.CreatedAt
}

// Document parses the note content. Empty content is treated as the
// canonical empty document.
func (n *Note) Document() (*delta.Document, error) {
	content := n.Content
	if content == "" {
		content = delta.EmptyDocument
	}
	return delta.Parse(content)
}

// IsEmpty reports whether both the title and the flattened content are
// empty. Such notes are discarded instead of persisted.
func (n *Note) IsEmpty() (bool, error) {
	if strings.TrimSpace(n.Title) != "" {
		return false, nil
	}
	doc, err := n.Document()
	if err != nil {
		return false, err
	}
	return doc.IsEmpty(), nil
}

// VisibleLabelNames returns the names of the note's visible labels, sorted
// lexicographically. Hidden labels never surface here.
func (n *Note) VisibleLabelNames() []string {
	names := make([]string, 0, len(n.Labels))
	for _, label := range n.Labels {
		if label == nil || !label.Visible {
			continue
		}
		names = append(names, label.Name)
	}
	sort.Strings(names)
	return names
}
