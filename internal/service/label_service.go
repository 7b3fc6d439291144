package service

import (
	"context"
	"log"
	"time"

	"keepnotes-be/internal/dto"
	"keepnotes-be/internal/entity"
	"keepnotes-be/internal/repository/specification"
	"keepnotes-be/internal/repository/unitofwork"
	"keepnotes-be/pkg/events"

	"github.com/google/uuid"
)

type ILabelService interface {
	Create(ctx context.Context, req *dto.CreateLabelRequest) (*dto.LabelResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.LabelResponse, error)
	Update(ctx context.Context, req *dto.UpdateLabelRequest) (*dto.LabelResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*dto.LabelResponse, error)
}

type labelService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewLabelService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
) ILabelService {
	return &labelService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *labelService) Create(ctx context.Context, req *dto.CreateLabelRequest) (*dto.LabelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.LabelRepository().FindOne(ctx, specification.ByName{Name: req.Name})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateLabel
	}

	label := entity.Label{
		Id:        uuid.New(),
		Name:      req.Name,
		Visible:   true,
		CreatedAt: time.Now(),
	}
	if req.Visible != nil {
		label.Visible = *req.Visible
	}

	if err := uow.LabelRepository().Create(ctx, &label); err != nil {
		return nil, err
	}

	s.publishLabelEvent(ctx, events.LabelCreated, &label)

	return toLabelResponse(&label), nil
}

func (s *labelService) Show(ctx context.Context, id uuid.UUID) (*dto.LabelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	label, err := uow.LabelRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, ErrLabelNotFound
	}
	return toLabelResponse(label), nil
}

func (s *labelService) Update(ctx context.Context, req *dto.UpdateLabelRequest) (*dto.LabelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	label, err := uow.LabelRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, ErrLabelNotFound
	}

	if req.Name != label.Name {
		conflict, err := uow.LabelRepository().FindOne(ctx, specification.ByName{Name: req.Name})
		if err != nil {
			return nil, err
		}
		if conflict != nil && conflict.Id != label.Id {
			return nil, ErrDuplicateLabel
		}
	}

	now := time.Now()
	label.Name = req.Name
	if req.Visible != nil {
		label.Visible = *req.Visible
	}
	label.UpdatedAt = &now

	if err := uow.LabelRepository().Update(ctx, label); err != nil {
		return nil, err
	}

	s.publishLabelEvent(ctx, events.LabelUpdated, label)

	return toLabelResponse(label), nil
}

func (s *labelService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	label, err := uow.LabelRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if label == nil {
		return ErrLabelNotFound
	}

	// Detaching from notes and dropping the label happen atomically.
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.LabelRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.publishLabelEvent(ctx, events.LabelDeleted, label)
	return nil
}

func (s *labelService) List(ctx context.Context) ([]*dto.LabelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	labels, err := uow.LabelRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.LabelResponse, 0, len(labels))
	for _, label := range labels {
		res = append(res, toLabelResponse(label))
	}
	return res, nil
}

func (s *labelService) publishLabelEvent(ctx context.Context, eventType string, label *entity.Label) {
	evt := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"label_id": label.Id,
			"name":     label.Name,
		},
		OccurredAt: time.Now(),
	}
	if err := s.publisherService.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish %s event: %v", eventType, err)
	}
}

func toLabelResponse(label *entity.Label) *dto.LabelResponse {
	return &dto.LabelResponse{
		Id:        label.Id,
		Name:      label.Name,
		Visible:   label.Visible,
		CreatedAt: label.CreatedAt,
		UpdatedAt: label.UpdatedAt,
	}
}
