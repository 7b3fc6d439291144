package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// SortKey selects which note field drives ordering. The values are what the
// preferences row persists.
type SortKey string

const (
	SortByCreatedDate SortKey = "created_date"
	SortByEditedDate  SortKey = "edited_date"
	SortByTitle       SortKey = "title"
)

// ErrInvalidSortKey marks a sort key outside the known set. Construction
// fails immediately rather than falling back to a default ordering.
var ErrInvalidSortKey = errors.New("invalid sort key")

// NewNoteComparator builds a three-way comparator from an explicit sort key
// and direction. The comparator orders pinned notes before unpinned ones
// regardless of direction, then compares the selected field, flipping the
// sign when descending. Equal notes yield 0 so a stable sort preserves
// insertion order.
func NewNoteComparator(key SortKey, ascending bool) (func(a, b *Note) int, error) {
	var compare func(a, b *Note) int
	switch key {
	case SortByCreatedDate:
		compare = func(a, b *Note) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortByEditedDate:
		compare = func(a, b *Note) int { return a.EditedAt().Compare(b.EditedAt()) }
	case SortByTitle:
		compare = func(a, b *Note) int { return strings.Compare(a.Title, b.Title) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortKey, key)
	}

	return func(a, b *Note) int {
		// 1. Pin partition: pinned first, in both directions.
		if a.Pinned != b.Pinned {
			if a.Pinned {
				return -1
			}
			return 1
		}

		// 2. Selected field; descending flips the sign.
		result := compare(a, b)
		if !ascending {
			result = -result
		}
		return result
	}, nil
}

// SortNotes orders notes in place. The sort is stable, so notes the
// comparator considers equal keep their relative positions.
func SortNotes(notes []*Note, key SortKey, ascending bool) error {
	comparator, err := NewNoteComparator(key, ascending)
	if err != nil {
		return err
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return comparator(notes[i], notes[j]) < 0
	})
	return nil
}
