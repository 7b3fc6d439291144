package main

import (
	"log"
	"time"

	"keepnotes-be/internal/config"
	"keepnotes-be/internal/model"
	"keepnotes-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Demo corpus: a handful of notes showing off the content format, plus the
// labels they hang from. Seeding is idempotent, keyed on title/name.
func main() {
	cfg := config.Load()

	db, err := database.NewGormDB(database.GormConfig{Path: cfg.Database.Path})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("🌱 Seeding demo notes\n")

	labels := seedLabels(db)
	seedPreferences(db)
	seedNotes(db, labels)

	color.Cyan("\nSeeding completed!")
}

func seedLabels(db *gorm.DB) map[string]*model.Label {
	color.Yellow("\n[1] Labels")

	seeded := map[string]*model.Label{}
	for _, name := range []string{"personal", "work", "ideas"} {
		var existing model.Label
		if err := db.Where("name = ?", name).First(&existing).Error; err == nil {
			color.White("Label '%s' already exists, skipping", name)
			seeded[name] = &existing
			continue
		}

		label := model.Label{Id: uuid.New(), Name: name, Visible: true}
		if err := db.Create(&label).Error; err != nil {
			color.Red("Failed to create label '%s': %v", name, err)
			continue
		}
		color.Green("Created label: %s", name)
		seeded[name] = &label
	}
	return seeded
}

func seedPreferences(db *gorm.DB) {
	color.Yellow("\n[2] Preferences")

	var existing model.Preference
	if err := db.First(&existing, 1).Error; err == nil {
		color.White("Preference row already exists, skipping")
		return
	}

	prefs := model.Preference{
		Id:            1,
		SortKey:       "edited_date",
		SortAscending: false,
		Interface:     []byte(`{"swipe_left":"trash","swipe_right":"pin","layout":"list"}`),
	}
	if err := db.Create(&prefs).Error; err != nil {
		color.Red("Failed to create preference row: %v", err)
		return
	}
	color.Green("Created default preference row")
}

func seedNotes(db *gorm.DB, labels map[string]*model.Label) {
	color.Yellow("\n[3] Notes")

	notes := []struct {
		title   string
		content string
		pinned  bool
		labels  []string
	}{
		{
			title: "Welcome to KeepNotes",
			content: `[{"insert":"Getting started"},{"insert":"\n","attributes":{"heading":1}},` +
				`{"insert":"Notes hold rich text: "},{"insert":"bold","attributes":{"b":true}},` +
				`{"insert":", "},{"insert":"italic","attributes":{"i":true}},` +
				`{"insert":" and "},{"insert":"links","attributes":{"a":"https://example.com"}},{"insert":".\n"},` +
				`{"insert":{"_type":"hr"}},` +
				`{"insert":"Pin what matters, swipe the rest.\n"}]`,
			pinned: true,
			labels: []string{"personal"},
		},
		{
			title: "Groceries",
			content: `[{"insert":"Milk"},{"insert":"\n","attributes":{"block":"cl","checked":true}},` +
				`{"insert":"Eggs"},{"insert":"\n","attributes":{"block":"cl"}},` +
				`{"insert":"Coffee beans"},{"insert":"\n","attributes":{"block":"cl"}}]`,
			labels: []string{"personal"},
		},
		{
			title: "Sprint planning",
			content: `[{"insert":"This week"},{"insert":"\n","attributes":{"heading":2}},` +
				`{"insert":"Ship the export flow"},{"insert":"\n","attributes":{"block":"ol"}},` +
				`{"insert":"Fix the sync bug"},{"insert":"\n","attributes":{"block":"ol"}},` +
				`{"insert":"Measure twice, cut once.","attributes":{"i":true}},{"insert":"\n","attributes":{"block":"quote"}}]`,
			labels: []string{"work"},
		},
		{
			title: "Snippets",
			content: `[{"insert":"go test ./..."},{"insert":"\n","attributes":{"block":"code"}},` +
				`{"insert":"go vet ./..."},{"insert":"\n","attributes":{"block":"code"}}]`,
			labels: []string{"work", "ideas"},
		},
	}

	for _, n := range notes {
		var existing model.Note
		if err := db.Where("title = ?", n.title).First(&existing).Error; err == nil {
			color.White("Note '%s' already exists, skipping", n.title)
			continue
		}

		note := model.Note{
			Id:        uuid.New(),
			Title:     n.title,
			Content:   n.content,
			Pinned:    n.pinned,
			CreatedAt: time.Now(),
		}
		for _, name := range n.labels {
			if label, ok := labels[name]; ok {
				note.Labels = append(note.Labels, label)
			}
		}

		if err := db.Create(&note).Error; err != nil {
			color.Red("Failed to create note '%s': %v", n.title, err)
			continue
		}
		color.Green("Created note: %s", n.title)
	}
}
