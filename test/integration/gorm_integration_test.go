package integration

import (
	"context"
	"testing"
	"time"

	"keepnotes-be/internal/entity"
	"keepnotes-be/internal/model"
	"keepnotes-be/internal/repository/specification"
	"keepnotes-be/internal/repository/unitofwork"
	"keepnotes-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory store with the full schema. Every test
// gets its own database, so they can run in parallel.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewGormDB(database.GormConfig{Path: ":memory:"})
	require.NoError(t, err, "Failed to open in-memory DB")

	err = db.AutoMigrate(&model.Note{}, &model.Label{}, &model.Preference{})
	require.NoError(t, err, "AutoMigrate failed")

	return db
}

func TestGormConnection(t *testing.T) {
	gormDB := newTestDB(t)

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.NoteRepository())
	assert.NotNil(t, uow.LabelRepository())
	assert.NotNil(t, uow.PreferenceRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err := sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Preference Default Row", func(t *testing.T) {
		prefs, err := uow.PreferenceRepository().Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, entity.SortByEditedDate, prefs.SortKey)
		assert.False(t, prefs.SortAscending)
		assert.Equal(t, entity.SwipeTrash, prefs.SwipeLeft)
		assert.Equal(t, entity.LayoutList, prefs.Layout)
		assert.False(t, prefs.VaultEnabled)
	})

	t.Run("Check Note Repository", func(t *testing.T) {
		count, err := uow.NoteRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Note count: %d", count)
	})
}

func TestNoteTrashLifecycle(t *testing.T) {
	gormDB := newTestDB(t)
	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(context.Background())
	ctx := context.Background()

	note := &entity.Note{
		Id:        uuid.New(),
		Title:     "Lifecycle",
		Content:   `[{"insert":"Hello\n"}]`,
		CreatedAt: time.Now(),
	}
	require.NoError(t, uow.NoteRepository().Create(ctx, note))

	// Trash hides the note from default queries.
	require.NoError(t, uow.NoteRepository().Delete(ctx, note.Id))

	found, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: note.Id})
	require.NoError(t, err)
	assert.Nil(t, found, "trashed note must be hidden from default queries")

	trashed, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: note.Id},
		specification.InTrash{},
	)
	require.NoError(t, err)
	require.NotNil(t, trashed)
	assert.True(t, trashed.IsDeleted)

	// Restore brings it back.
	require.NoError(t, uow.NoteRepository().Restore(ctx, note.Id))

	found, err = uow.NoteRepository().FindOne(ctx, specification.ByID{ID: note.Id})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.False(t, found.IsDeleted)

	// Purge removes it for good.
	require.NoError(t, uow.NoteRepository().Delete(ctx, note.Id))
	require.NoError(t, uow.NoteRepository().Purge(ctx, note.Id))

	gone, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: note.Id},
		specification.IncludeTrashed{},
	)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestPurgeTrashedBefore(t *testing.T) {
	gormDB := newTestDB(t)
	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(context.Background())
	ctx := context.Background()

	old := &entity.Note{Id: uuid.New(), Title: "Old", CreatedAt: time.Now()}
	fresh := &entity.Note{Id: uuid.New(), Title: "Fresh", CreatedAt: time.Now()}
	require.NoError(t, uow.NoteRepository().Create(ctx, old))
	require.NoError(t, uow.NoteRepository().Create(ctx, fresh))

	require.NoError(t, uow.NoteRepository().Delete(ctx, old.Id))
	require.NoError(t, uow.NoteRepository().Delete(ctx, fresh.Id))

	// Backdate the old note's trash timestamp past the cutoff.
	backdated := time.Now().AddDate(0, 0, -60)
	require.NoError(t, gormDB.Exec(
		"UPDATE notes SET deleted_at = ? WHERE id = ?", backdated, old.Id,
	).Error)

	purged, err := uow.NoteRepository().PurgeTrashedBefore(ctx, time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	remaining, err := uow.NoteRepository().Count(ctx, specification.InTrash{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), remaining, "the freshly trashed note must survive the sweep")
}

func TestNoteLabelAssociation(t *testing.T) {
	gormDB := newTestDB(t)
	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(context.Background())
	ctx := context.Background()

	work := &entity.Label{Id: uuid.New(), Name: "work", Visible: true, CreatedAt: time.Now()}
	hidden := &entity.Label{Id: uuid.New(), Name: "archive", Visible: false, CreatedAt: time.Now()}
	require.NoError(t, uow.LabelRepository().Create(ctx, work))
	require.NoError(t, uow.LabelRepository().Create(ctx, hidden))

	note := &entity.Note{Id: uuid.New(), Title: "Tagged", CreatedAt: time.Now()}
	require.NoError(t, uow.NoteRepository().Create(ctx, note))
	require.NoError(t, uow.NoteRepository().ReplaceLabels(ctx, note, []*entity.Label{work, hidden}))

	t.Run("HasLabel specification", func(t *testing.T) {
		notes, err := uow.NoteRepository().FindAll(ctx, specification.HasLabel{Name: "work"})
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, note.Id, notes[0].Id)

		none, err := uow.NoteRepository().FindAll(ctx, specification.HasLabel{Name: "missing"})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("Visible label names", func(t *testing.T) {
		found, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: note.Id})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, []string{"work"}, found.VisibleLabelNames())
	})

	t.Run("Replace detaches", func(t *testing.T) {
		require.NoError(t, uow.NoteRepository().ReplaceLabels(ctx, note, []*entity.Label{work}))
		found, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: note.Id})
		require.NoError(t, err)
		require.Len(t, found.Labels, 1)
		assert.Equal(t, "work", found.Labels[0].Name)
	})

	t.Run("Unique label name", func(t *testing.T) {
		dup := &entity.Label{Id: uuid.New(), Name: "work", Visible: true, CreatedAt: time.Now()}
		err := uow.LabelRepository().Create(ctx, dup)
		assert.Error(t, err, "the unique index must reject a duplicate name")
	})
}

func TestUnitOfWorkTransaction(t *testing.T) {
	gormDB := newTestDB(t)
	factory := unitofwork.NewRepositoryFactory(gormDB)
	ctx := context.Background()

	t.Run("Rollback discards writes", func(t *testing.T) {
		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))

		note := &entity.Note{Id: uuid.New(), Title: "Ephemeral", CreatedAt: time.Now()}
		require.NoError(t, uow.NoteRepository().Create(ctx, note))
		require.NoError(t, uow.Rollback())

		check := factory.NewUnitOfWork(ctx)
		found, err := check.NoteRepository().FindOne(ctx, specification.ByID{ID: note.Id})
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("Commit persists writes", func(t *testing.T) {
		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))

		note := &entity.Note{Id: uuid.New(), Title: "Durable", CreatedAt: time.Now()}
		require.NoError(t, uow.NoteRepository().Create(ctx, note))
		require.NoError(t, uow.Commit())

		check := factory.NewUnitOfWork(ctx)
		found, err := check.NoteRepository().FindOne(ctx, specification.ByID{ID: note.Id})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Durable", found.Title)
	})
}

func TestFindAllNewestFirst(t *testing.T) {
	gormDB := newTestDB(t)
	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(context.Background())
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"oldest", "middle", "newest"} {
		note := &entity.Note{
			Id:        uuid.New(),
			Title:     title,
			Content:   `[{"insert":"body\n"}]`,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, uow.NoteRepository().Create(ctx, note))
	}

	notes, err := uow.NoteRepository().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "newest", notes[0].Title)
	assert.Equal(t, "middle", notes[1].Title)
	assert.Equal(t, "oldest", notes[2].Title)
}
