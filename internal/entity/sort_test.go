package entity

import (
	"errors"
	"testing"
	"time"
)

var sortBase = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func noteAt(title string, pinned bool, createdOffset time.Duration) *Note {
	return &Note{
		Title:     title,
		Pinned:    pinned,
		CreatedAt: sortBase.Add(createdOffset),
	}
}

func editedAt(n *Note, offset time.Duration) *Note {
	edited := sortBase.Add(offset)
	n.UpdatedAt = &edited
	return n
}

func titles(notes []*Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}

func equalTitles(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewNoteComparatorInvalidKey(t *testing.T) {
	for _, key := range []SortKey{"", "color", "CREATED_DATE"} {
		if _, err := NewNoteComparator(key, true); !errors.Is(err, ErrInvalidSortKey) {
			t.Errorf("NewNoteComparator(%q) error = %v, want ErrInvalidSortKey", key, err)
		}
	}
}

func TestSortNotes(t *testing.T) {
	tests := []struct {
		name      string
		notes     []*Note
		key       SortKey
		ascending bool
		want      []string
	}{
		{
			name: "created date ascending",
			notes: []*Note{
				noteAt("c", false, 2*time.Hour),
				noteAt("a", false, 0),
				noteAt("b", false, time.Hour),
			},
			key:       SortByCreatedDate,
			ascending: true,
			want:      []string{"a", "b", "c"},
		},
		{
			name: "created date descending",
			notes: []*Note{
				noteAt("a", false, 0),
				noteAt("c", false, 2*time.Hour),
				noteAt("b", false, time.Hour),
			},
			key:       SortByCreatedDate,
			ascending: false,
			want:      []string{"c", "b", "a"},
		},
		{
			name: "pinned first ascending",
			notes: []*Note{
				noteAt("old", false, 0),
				noteAt("pinned-late", true, 3*time.Hour),
				noteAt("mid", false, time.Hour),
			},
			key:       SortByCreatedDate,
			ascending: true,
			want:      []string{"pinned-late", "old", "mid"},
		},
		{
			name: "pinned first descending",
			notes: []*Note{
				noteAt("new", false, 3*time.Hour),
				noteAt("pinned-old", true, 0),
			},
			key:       SortByCreatedDate,
			ascending: false,
			want:      []string{"pinned-old", "new"},
		},
		{
			name: "title ascending",
			notes: []*Note{
				noteAt("pear", false, 0),
				noteAt("apple", false, time.Hour),
				noteAt("mango", false, 2*time.Hour),
			},
			key:       SortByTitle,
			ascending: true,
			want:      []string{"apple", "mango", "pear"},
		},
		{
			name: "edited date falls back to creation when never edited",
			notes: []*Note{
				editedAt(noteAt("edited-early", false, 0), time.Hour),
				noteAt("created-late", false, 2*time.Hour),
			},
			key:       SortByEditedDate,
			ascending: true,
			want:      []string{"edited-early", "created-late"},
		},
		{
			name: "edited date descending prefers fresh edits",
			notes: []*Note{
				noteAt("untouched", false, 0),
				editedAt(noteAt("reworked", false, 0), 5*time.Hour),
			},
			key:       SortByEditedDate,
			ascending: false,
			want:      []string{"reworked", "untouched"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := SortNotes(tt.notes, tt.key, tt.ascending); err != nil {
				t.Fatalf("SortNotes error = %v, want nil", err)
			}
			if got := titles(tt.notes); !equalTitles(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortNotesInvalidKeyFailsFast(t *testing.T) {
	notes := []*Note{noteAt("b", false, time.Hour), noteAt("a", false, 0)}
	err := SortNotes(notes, "modified", true)
	if !errors.Is(err, ErrInvalidSortKey) {
		t.Fatalf("SortNotes error = %v, want ErrInvalidSortKey", err)
	}
	// The slice must be untouched on failure.
	if got := titles(notes); !equalTitles(got, []string{"b", "a"}) {
		t.Errorf("order after failed sort = %v, want unchanged", got)
	}
}

func TestSortNotesStableOnTies(t *testing.T) {
	same := 2 * time.Hour
	notes := []*Note{
		noteAt("first", false, same),
		noteAt("second", false, same),
		noteAt("third", false, same),
	}
	if err := SortNotes(notes, SortByCreatedDate, true); err != nil {
		t.Fatalf("SortNotes error = %v, want nil", err)
	}
	if got := titles(notes); !equalTitles(got, []string{"first", "second", "third"}) {
		t.Errorf("tied notes reordered: %v", got)
	}
}

func TestComparatorContract(t *testing.T) {
	a := noteAt("a", false, 0)
	b := noteAt("b", false, time.Hour)
	pinned := noteAt("p", true, 2*time.Hour)

	asc, err := NewNoteComparator(SortByCreatedDate, true)
	if err != nil {
		t.Fatalf("NewNoteComparator error = %v, want nil", err)
	}
	desc, err := NewNoteComparator(SortByCreatedDate, false)
	if err != nil {
		t.Fatalf("NewNoteComparator error = %v, want nil", err)
	}

	if got := asc(a, a); got != 0 {
		t.Errorf("asc(a, a) = %d, want 0", got)
	}
	if asc(a, b) != -asc(b, a) {
		t.Error("comparator is not antisymmetric")
	}
	// Reversing the direction negates the result for equal pin state.
	if asc(a, b) != -desc(a, b) {
		t.Error("descending does not mirror ascending")
	}
	// The pin partition ignores direction.
	if asc(pinned, a) != -1 || desc(pinned, a) != -1 {
		t.Error("pinned note must sort first in both directions")
	}
}
