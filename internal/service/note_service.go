package service

import (
	"context"
	"log"
	"time"

	"keepnotes-be/internal/dto"
	"keepnotes-be/internal/entity"
	"keepnotes-be/internal/repository/memory"
	"keepnotes-be/internal/repository/specification"
	"keepnotes-be/internal/repository/unitofwork"
	"keepnotes-be/pkg/events"
	"keepnotes-be/pkg/markdown"

	"github.com/google/uuid"
)

// Export body formats.
const (
	ExportFormatMarkdown = "markdown"
	ExportFormatText     = "text"
)

type INoteService interface {
	Create(ctx context.Context, sessionId string, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error)
	Show(ctx context.Context, sessionId string, id uuid.UUID) (*dto.ShowNoteResponse, error)
	Update(ctx context.Context, sessionId string, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error)
	List(ctx context.Context, sessionId string, query *dto.ListNotesQuery) (*dto.ListNotesResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	Purge(ctx context.Context, id uuid.UUID) error
	PurgeExpired(ctx context.Context) (int64, error)
	TogglePin(ctx context.Context, req *dto.TogglePinRequest) error
	SetLabels(ctx context.Context, req *dto.SetLabelsRequest) error
	Export(ctx context.Context, sessionId string, id uuid.UUID, format string) (*dto.ExportNoteResponse, error)
	Import(ctx context.Context, sessionId string, req *dto.ImportNoteRequest) (*dto.CreateNoteResponse, error)
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	sessions         *memory.VaultSessionRepository
	importer         *markdown.Importer
	previewMaxRunes  int
	retentionDays    int
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	sessions *memory.VaultSessionRepository,
	importer *markdown.Importer,
	previewMaxRunes int,
	retentionDays int,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		sessions:         sessions,
		importer:         importer,
		previewMaxRunes:  previewMaxRunes,
		retentionDays:    retentionDays,
	}
}

func (s *noteService) Create(ctx context.Context, sessionId string, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note := entity.Note{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		Pinned:    req.Pinned,
		CreatedAt: time.Now(),
	}

	// Malformed content never reaches the store.
	if _, err := note.Document(); err != nil {
		return nil, err
	}
	empty, err := note.IsEmpty()
	if err != nil {
		return nil, err
	}
	if empty {
		return nil, ErrEmptyNote
	}

	labels, err := s.resolveLabels(ctx, uow, req.LabelIds)
	if err != nil {
		return nil, err
	}

	key, vaultOn, err := s.resolveKey(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}
	if vaultOn {
		if err := sealNote(&note, key); err != nil {
			return nil, err
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}
	if len(labels) > 0 {
		if err := uow.NoteRepository().ReplaceLabels(ctx, &note, labels); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishNoteEvent(ctx, events.NoteCreated, note.Id)

	return &dto.CreateNoteResponse{Id: note.Id}, nil
}

func (s *noteService) Show(ctx context.Context, sessionId string, id uuid.UUID) (*dto.ShowNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.IncludeTrashed{},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	wasEncrypted := note.Encrypted
	if note.Encrypted {
		key, _, err := s.resolveKey(ctx, uow, sessionId)
		if err != nil {
			return nil, err
		}
		if err := openNote(note, key); err != nil {
			return nil, err
		}
	}

	labels := make([]*dto.LabelResponse, 0, len(note.Labels))
	for _, label := range note.Labels {
		labels = append(labels, toLabelResponse(label))
	}

	return &dto.ShowNoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		Pinned:    note.Pinned,
		Encrypted: wasEncrypted,
		Labels:    labels,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
		DeletedAt: note.DeletedAt,
	}, nil
}

func (s *noteService) Update(ctx context.Context, sessionId string, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	draft := entity.Note{Title: req.Title, Content: req.Content}
	if _, err := draft.Document(); err != nil {
		return nil, err
	}
	empty, err := draft.IsEmpty()
	if err != nil {
		return nil, err
	}
	if empty {
		// Saving a note as empty removes it, the way the editor does.
		if err := uow.NoteRepository().Delete(ctx, note.Id); err != nil {
			return nil, err
		}
		s.publishNoteEvent(ctx, events.NoteTrashed, note.Id)
		return nil, ErrEmptyNote
	}

	key, vaultOn, err := s.resolveKey(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	note.Title = req.Title
	note.Content = req.Content
	note.Encrypted = false
	note.UpdatedAt = &now
	if vaultOn {
		if err := sealNote(note, key); err != nil {
			return nil, err
		}
	}

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	s.publishNoteEvent(ctx, events.NoteUpdated, note.Id)

	return &dto.UpdateNoteResponse{Id: note.Id}, nil
}

func (s *noteService) List(ctx context.Context, sessionId string, query *dto.ListNotesQuery) (*dto.ListNotesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	prefs, err := uow.PreferenceRepository().Get(ctx)
	if err != nil {
		return nil, err
	}

	// Per-request sort parameters win over the stored preference pair.
	sortKey := prefs.SortKey
	if query.SortKey != "" {
		sortKey = entity.SortKey(query.SortKey)
	}
	ascending := prefs.SortAscending
	if query.Ascending != nil {
		ascending = *query.Ascending
	}

	specs := make([]specification.Specification, 0, 4)
	if query.Trash {
		specs = append(specs, specification.InTrash{})
	}
	if query.Pinned != nil {
		specs = append(specs, specification.Pinned{Value: *query.Pinned})
	}
	if query.Label != "" {
		specs = append(specs, specification.HasLabel{Name: query.Label})
	}
	if query.Search != "" {
		specs = append(specs, specification.TitleContains{Query: query.Search})
	}

	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	// A locked vault does not fail the list; sealed rows render as
	// placeholders carrying only their metadata.
	var key []byte
	if prefs.VaultEnabled && sessionId != "" {
		if sess, ok := s.sessions.Get(sessionId); ok {
			key = sess.Key
		}
	}

	// With a live key, sealed rows are opened before sorting so a title
	// order follows the decrypted titles, not their ciphertext.
	wasSealed := make(map[uuid.UUID]bool, len(notes))
	if key != nil {
		for _, note := range notes {
			if note.Encrypted {
				if err := openNote(note, key); err != nil {
					return nil, err
				}
				wasSealed[note.Id] = true
			}
		}
	}

	if err := entity.SortNotes(notes, sortKey, ascending); err != nil {
		return nil, err
	}

	total := int64(len(notes))
	window := pageWindow(notes, query.Limit, query.Offset)

	items := make([]*dto.NoteListItem, 0, len(window))
	for _, note := range window {
		item, err := s.buildListItem(note, wasSealed[note.Id])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return &dto.ListNotesResponse{
		Items: items,
		Total: total,
	}, nil
}

func (s *noteService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if note == nil {
		return ErrNoteNotFound
	}

	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.publishNoteEvent(ctx, events.NoteTrashed, id)
	return nil
}

func (s *noteService) Restore(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.InTrash{},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return ErrNoteNotFound
	}

	if err := uow.NoteRepository().Restore(ctx, id); err != nil {
		return err
	}

	s.publishNoteEvent(ctx, events.NoteRestored, id)
	return nil
}

func (s *noteService) Purge(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Only trashed notes can be deleted forever.
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.InTrash{},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return ErrNoteNotFound
	}

	if err := uow.NoteRepository().Purge(ctx, id); err != nil {
		return err
	}

	s.publishNoteEvent(ctx, events.NotePurged, id)
	return nil
}

// PurgeExpired hard-deletes notes that have sat in the trash longer than the
// retention window. A non-positive retention disables the sweep.
func (s *noteService) PurgeExpired(ctx context.Context) (int64, error) {
	if s.retentionDays <= 0 {
		return 0, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)

	purged, err := uow.NoteRepository().PurgeTrashedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if purged > 0 {
		evt := events.BaseEvent{
			Type:       events.NotePurged,
			Data:       map[string]interface{}{"count": purged},
			OccurredAt: time.Now(),
		}
		if err := s.publisherService.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish %s event: %v", events.NotePurged, err)
		}
	}
	return purged, nil
}

func (s *noteService) TogglePin(ctx context.Context, req *dto.TogglePinRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return err
	}
	if note == nil {
		return ErrNoteNotFound
	}
	if note.Pinned == req.Pinned {
		return nil
	}

	// Pinning is metadata: the edited instant stays untouched.
	note.Pinned = req.Pinned
	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return err
	}

	s.publishNoteEvent(ctx, events.NotePinned, note.Id)
	return nil
}

func (s *noteService) SetLabels(ctx context.Context, req *dto.SetLabelsRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return err
	}
	if note == nil {
		return ErrNoteNotFound
	}

	labels, err := s.resolveLabels(ctx, uow, req.LabelIds)
	if err != nil {
		return err
	}

	if err := uow.NoteRepository().ReplaceLabels(ctx, note, labels); err != nil {
		return err
	}

	s.publishNoteEvent(ctx, events.NoteUpdated, note.Id)
	return nil
}

func (s *noteService) Export(ctx context.Context, sessionId string, id uuid.UUID, format string) (*dto.ExportNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.IncludeTrashed{},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}

	if note.Encrypted {
		key, _, err := s.resolveKey(ctx, uow, sessionId)
		if err != nil {
			return nil, err
		}
		if err := openNote(note, key); err != nil {
			return nil, err
		}
	}

	doc, err := note.Document()
	if err != nil {
		return nil, err
	}

	var body string
	switch format {
	case ExportFormatText:
		body = doc.PlainText()
	default:
		format = ExportFormatMarkdown
		body = doc.Markdown()
	}

	return &dto.ExportNoteResponse{
		Id:     note.Id,
		Format: format,
		Body:   body,
	}, nil
}

func (s *noteService) Import(ctx context.Context, sessionId string, req *dto.ImportNoteRequest) (*dto.CreateNoteResponse, error) {
	doc := s.importer.Import(req.Markdown)
	content, err := doc.Encode()
	if err != nil {
		return nil, err
	}

	return s.Create(ctx, sessionId, &dto.CreateNoteRequest{
		Title:   req.Title,
		Content: content,
		Pinned:  req.Pinned,
	})
}

// resolveKey returns the live session key when the vault is enabled. With
// the vault disabled it returns (nil, false, nil): plaintext mode. Enabled
// but no live session is a locked vault.
func (s *noteService) resolveKey(ctx context.Context, uow unitofwork.UnitOfWork, sessionId string) ([]byte, bool, error) {
	prefs, err := uow.PreferenceRepository().Get(ctx)
	if err != nil {
		return nil, false, err
	}
	if !prefs.VaultEnabled {
		return nil, false, nil
	}
	if sessionId != "" {
		if sess, ok := s.sessions.Get(sessionId); ok {
			return sess.Key, true, nil
		}
	}
	return nil, true, ErrVaultLocked
}

func (s *noteService) resolveLabels(ctx context.Context, uow unitofwork.UnitOfWork, ids []uuid.UUID) ([]*entity.Label, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	labels, err := uow.LabelRepository().FindAll(ctx, specification.ByIDs{IDs: unique})
	if err != nil {
		return nil, err
	}
	if len(labels) != len(unique) {
		return nil, ErrLabelNotFound
	}
	return labels, nil
}

func (s *noteService) buildListItem(note *entity.Note, wasSealed bool) (*dto.NoteListItem, error) {
	item := &dto.NoteListItem{
		Id:        note.Id,
		Pinned:    note.Pinned,
		Encrypted: wasSealed || note.Encrypted,
		Labels:    note.VisibleLabelNames(),
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
		DeletedAt: note.DeletedAt,
	}

	if note.Encrypted {
		// Locked: the tile shows nothing but its lock state.
		return item, nil
	}

	doc, err := note.Document()
	if err != nil {
		return nil, err
	}
	item.Title = note.Title
	item.Preview = doc.PreviewN(s.previewMaxRunes)
	return item, nil
}

func (s *noteService) publishNoteEvent(ctx context.Context, eventType string, id uuid.UUID) {
	evt := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"note_id": id,
		},
		OccurredAt: time.Now(),
	}
	// The feed is auxiliary, a publish failure never fails the request.
	if err := s.publisherService.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish %s event: %v", eventType, err)
	}
}

func pageWindow[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
