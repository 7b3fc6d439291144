package main

import (
	"testing"

	"keepnotes-be/internal/model"
	"keepnotes-be/pkg/database"
	"keepnotes-be/pkg/delta"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewGormDB(database.GormConfig{Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Note{}, &model.Label{}, &model.Preference{}))
	return db
}

func TestSeedIsIdempotent(t *testing.T) {
	db := newSeedTestDB(t)

	labels := seedLabels(db)
	seedPreferences(db)
	seedNotes(db, labels)

	// A second run must not duplicate anything.
	labels = seedLabels(db)
	seedNotes(db, labels)

	var labelCount, noteCount int64
	require.NoError(t, db.Model(&model.Label{}).Count(&labelCount).Error)
	require.NoError(t, db.Model(&model.Note{}).Count(&noteCount).Error)
	assert.Equal(t, int64(3), labelCount)
	assert.Equal(t, int64(4), noteCount)
}

func TestSeededContentParses(t *testing.T) {
	db := newSeedTestDB(t)
	seedNotes(db, seedLabels(db))

	var notes []model.Note
	require.NoError(t, db.Find(&notes).Error)
	require.Len(t, notes, 4)

	headings := map[string]int{}
	for _, note := range notes {
		doc, err := delta.Parse(note.Content)
		require.NoError(t, err, "note %q", note.Title)

		for _, line := range doc.Lines() {
			if line.Attributes.Heading > 0 {
				headings[note.Title] = line.Attributes.Heading
			}
		}
	}

	// Heading attributes ride the newline sentinel, so the parsed lines
	// must carry them.
	assert.Equal(t, 1, headings["Welcome to KeepNotes"])
	assert.Equal(t, 2, headings["Sprint planning"])
}
