package integration

import (
	"context"
	"strings"
	"testing"
	"time"

	"keepnotes-be/internal/dto"
	"keepnotes-be/internal/repository/memory"
	"keepnotes-be/internal/repository/specification"
	"keepnotes-be/internal/repository/unitofwork"
	"keepnotes-be/internal/service"
	"keepnotes-be/pkg/delta"
	"keepnotes-be/pkg/markdown"
	"keepnotes-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "integration-test-secret"

type testServices struct {
	notes       service.INoteService
	labels      service.ILabelService
	preferences service.IPreferenceService
	vault       service.IVaultService
	factory     unitofwork.RepositoryFactory
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	db := newTestDB(t)
	factory := unitofwork.NewRepositoryFactory(db)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	publisher := service.NewPublisherService("test-note-events", pubSub)
	sessions := memory.NewVaultSessionRepository(15 * time.Minute)
	importer := markdown.NewImporter()

	return &testServices{
		notes:       service.NewNoteService(factory, publisher, sessions, importer, 300, 30),
		labels:      service.NewLabelService(factory, publisher),
		preferences: service.NewPreferenceService(factory, publisher),
		vault:       service.NewVaultService(factory, sessions, publisher, testJWTSecret, 15*time.Minute),
		factory:     factory,
	}
}

// sessionIdFromToken pulls the session id out of a vault token the way the
// HTTP middleware does.
func sessionIdFromToken(t *testing.T, token string) string {
	t.Helper()

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	sessionId, ok := claims["session_id"].(string)
	require.True(t, ok)
	return sessionId
}

func TestNoteServiceFlow(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	t.Run("Create and list with checklist preview", func(t *testing.T) {
		created, err := s.notes.Create(ctx, "", &dto.CreateNoteRequest{
			Title: "Shopping",
			Content: `[{"insert":"Buy milk"},{"insert":"\n","attributes":{"block":"cl","checked":true}},` +
				`{"insert":"Buy bread"},{"insert":"\n","attributes":{"block":"cl"}}]`,
		})
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, created.Id)

		list, err := s.notes.List(ctx, "", &dto.ListNotesQuery{})
		require.NoError(t, err)
		require.Len(t, list.Items, 1)
		assert.Contains(t, list.Items[0].Preview, "✅ Buy milk")
		assert.Contains(t, list.Items[0].Preview, "⬜ Buy bread")
	})

	t.Run("Empty note is discarded", func(t *testing.T) {
		_, err := s.notes.Create(ctx, "", &dto.CreateNoteRequest{
			Title:   "   ",
			Content: `[{"insert":"\n"}]`,
		})
		assert.ErrorIs(t, err, service.ErrEmptyNote)
	})

	t.Run("Malformed content is rejected", func(t *testing.T) {
		_, err := s.notes.Create(ctx, "", &dto.CreateNoteRequest{
			Title:   "Broken",
			Content: `{"not":"an array"}`,
		})
		assert.ErrorIs(t, err, delta.ErrMalformedDocument)
	})

	t.Run("Pinned notes sort first", func(t *testing.T) {
		pinned, err := s.notes.Create(ctx, "", &dto.CreateNoteRequest{
			Title:   "Pinned note",
			Content: `[{"insert":"pinned\n"}]`,
			Pinned:  true,
		})
		require.NoError(t, err)

		list, err := s.notes.List(ctx, "", &dto.ListNotesQuery{})
		require.NoError(t, err)
		require.NotEmpty(t, list.Items)
		assert.Equal(t, pinned.Id, list.Items[0].Id)
	})

	t.Run("Pinned filter narrows the list", func(t *testing.T) {
		pinned := true
		list, err := s.notes.List(ctx, "", &dto.ListNotesQuery{Pinned: &pinned})
		require.NoError(t, err)
		require.Len(t, list.Items, 1)
		assert.Equal(t, "Pinned note", list.Items[0].Title)

		pinned = false
		list, err = s.notes.List(ctx, "", &dto.ListNotesQuery{Pinned: &pinned})
		require.NoError(t, err)
		require.Len(t, list.Items, 1)
		assert.Equal(t, "Shopping", list.Items[0].Title)
	})

	t.Run("Per-request sort override", func(t *testing.T) {
		asc := true
		list, err := s.notes.List(ctx, "", &dto.ListNotesQuery{
			SortKey:   "title",
			Ascending: &asc,
		})
		require.NoError(t, err)
		require.Len(t, list.Items, 2)
		// Pin partition still wins over the title order.
		assert.Equal(t, "Pinned note", list.Items[0].Title)
		assert.Equal(t, "Shopping", list.Items[1].Title)
	})

	t.Run("Export as markdown", func(t *testing.T) {
		list, err := s.notes.List(ctx, "", &dto.ListNotesQuery{})
		require.NoError(t, err)
		var shoppingId uuid.UUID
		for _, item := range list.Items {
			if item.Title == "Shopping" {
				shoppingId = item.Id
			}
		}
		require.NotEqual(t, uuid.Nil, shoppingId)

		export, err := s.notes.Export(ctx, "", shoppingId, service.ExportFormatMarkdown)
		require.NoError(t, err)
		assert.Contains(t, export.Body, "- [x] Buy milk")
		assert.Contains(t, export.Body, "- [ ] Buy bread")
	})

	t.Run("Import markdown", func(t *testing.T) {
		created, err := s.notes.Import(ctx, "", &dto.ImportNoteRequest{
			Title:    "Imported",
			Markdown: "# Heading\n\nSome **bold** text\n",
		})
		require.NoError(t, err)

		shown, err := s.notes.Show(ctx, "", created.Id)
		require.NoError(t, err)

		doc, err := delta.Parse(shown.Content)
		require.NoError(t, err)
		md := doc.Markdown()
		assert.Contains(t, md, "# Heading")
		assert.Contains(t, md, "**bold**")
	})
}

func TestLabelServiceFlow(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	created, err := s.labels.Create(ctx, &dto.CreateLabelRequest{Name: "work"})
	require.NoError(t, err)
	assert.True(t, created.Visible)

	t.Run("Duplicate name rejected", func(t *testing.T) {
		_, err := s.labels.Create(ctx, &dto.CreateLabelRequest{Name: "work"})
		assert.ErrorIs(t, err, service.ErrDuplicateLabel)
	})

	t.Run("Attach to note and filter", func(t *testing.T) {
		note, err := s.notes.Create(ctx, "", &dto.CreateNoteRequest{
			Title:    "Tagged",
			Content:  `[{"insert":"body\n"}]`,
			LabelIds: []uuid.UUID{created.Id},
		})
		require.NoError(t, err)

		list, err := s.notes.List(ctx, "", &dto.ListNotesQuery{Label: "work"})
		require.NoError(t, err)
		require.Len(t, list.Items, 1)
		assert.Equal(t, note.Id, list.Items[0].Id)
		assert.Equal(t, []string{"work"}, list.Items[0].Labels)
	})

	t.Run("Delete detaches from notes", func(t *testing.T) {
		require.NoError(t, s.labels.Delete(ctx, created.Id))

		list, err := s.notes.List(ctx, "", &dto.ListNotesQuery{})
		require.NoError(t, err)
		for _, item := range list.Items {
			assert.Empty(t, item.Labels)
		}
	})
}

func TestVaultFlow(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	note, err := s.notes.Create(ctx, "", &dto.CreateNoteRequest{
		Title:   "Secret plans",
		Content: `[{"insert":"Top secret\n"}]`,
	})
	require.NoError(t, err)

	session, err := s.vault.Enable(ctx, &dto.EnableVaultRequest{Password: "hunter2"})
	require.NoError(t, err)
	sessionId := sessionIdFromToken(t, session.Token)

	t.Run("Content is ciphertext at rest", func(t *testing.T) {
		uow := s.factory.NewUnitOfWork(ctx)
		stored, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: note.Id})
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.True(t, stored.Encrypted)
		assert.NotContains(t, stored.Title, "Secret")
		assert.False(t, strings.Contains(stored.Content, "Top secret"))
	})

	t.Run("Unlocked session reads plaintext", func(t *testing.T) {
		shown, err := s.notes.Show(ctx, sessionId, note.Id)
		require.NoError(t, err)
		assert.Equal(t, "Secret plans", shown.Title)
		assert.Contains(t, shown.Content, "Top secret")
		assert.True(t, shown.Encrypted)
	})

	t.Run("Locked vault blocks reads", func(t *testing.T) {
		_, err := s.notes.Show(ctx, "", note.Id)
		assert.ErrorIs(t, err, service.ErrVaultLocked)
	})

	t.Run("Locked list shows placeholders", func(t *testing.T) {
		list, err := s.notes.List(ctx, "", &dto.ListNotesQuery{})
		require.NoError(t, err)
		require.Len(t, list.Items, 1)
		assert.True(t, list.Items[0].Encrypted)
		assert.Empty(t, list.Items[0].Title)
		assert.Empty(t, list.Items[0].Preview)
	})

	t.Run("Creates seal transparently", func(t *testing.T) {
		second, err := s.notes.Create(ctx, sessionId, &dto.CreateNoteRequest{
			Title:   "Also secret",
			Content: `[{"insert":"more\n"}]`,
		})
		require.NoError(t, err)

		uow := s.factory.NewUnitOfWork(ctx)
		stored, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: second.Id})
		require.NoError(t, err)
		assert.True(t, stored.Encrypted)
	})

	t.Run("Wrong password rejected", func(t *testing.T) {
		_, err := s.vault.Unlock(ctx, &dto.UnlockVaultRequest{Password: "wrong"})
		assert.ErrorIs(t, err, service.ErrWrongPassword)
	})

	t.Run("Unlock then lock", func(t *testing.T) {
		fresh, err := s.vault.Unlock(ctx, &dto.UnlockVaultRequest{Password: "hunter2"})
		require.NoError(t, err)
		freshId := sessionIdFromToken(t, fresh.Token)

		status, err := s.vault.Status(ctx, freshId)
		require.NoError(t, err)
		assert.True(t, status.Enabled)
		assert.False(t, status.Locked)
		assert.Equal(t, store.StateUnlocked, status.State)

		require.NoError(t, s.vault.Lock(ctx, freshId))

		status, err = s.vault.Status(ctx, freshId)
		require.NoError(t, err)
		assert.True(t, status.Locked)
		assert.Equal(t, store.StateLocked, status.State)
	})

	t.Run("Disable restores plaintext", func(t *testing.T) {
		require.NoError(t, s.vault.Disable(ctx, sessionId, &dto.DisableVaultRequest{Password: "hunter2"}))

		uow := s.factory.NewUnitOfWork(ctx)
		stored, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: note.Id})
		require.NoError(t, err)
		assert.False(t, stored.Encrypted)
		assert.Equal(t, "Secret plans", stored.Title)

		shown, err := s.notes.Show(ctx, "", note.Id)
		require.NoError(t, err)
		assert.Contains(t, shown.Content, "Top secret")
	})
}

func TestVaultListSortedByDecryptedTitle(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	for _, title := range []string{"bravo", "alpha", "foxtrot", "delta", "charlie", "echo"} {
		_, err := s.notes.Create(ctx, "", &dto.CreateNoteRequest{
			Title:   title,
			Content: `[{"insert":"body\n"}]`,
		})
		require.NoError(t, err)
	}

	session, err := s.vault.Enable(ctx, &dto.EnableVaultRequest{Password: "hunter2"})
	require.NoError(t, err)
	sessionId := sessionIdFromToken(t, session.Token)

	// A title order over sealed rows must follow the plaintext titles, not
	// whatever their ciphertext happens to collate as.
	asc := true
	list, err := s.notes.List(ctx, sessionId, &dto.ListNotesQuery{
		SortKey:   "title",
		Ascending: &asc,
	})
	require.NoError(t, err)
	require.Len(t, list.Items, 6)

	titles := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		assert.True(t, item.Encrypted)
		titles = append(titles, item.Title)
	}
	assert.Equal(t, []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot"}, titles)
}
