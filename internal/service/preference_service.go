package service

import (
	"context"
	"log"
	"time"

	"keepnotes-be/internal/dto"
	"keepnotes-be/internal/entity"
	"keepnotes-be/internal/repository/unitofwork"
	"keepnotes-be/pkg/events"
)

type IPreferenceService interface {
	Get(ctx context.Context) (*dto.PreferenceResponse, error)
	Update(ctx context.Context, req *dto.UpdatePreferenceRequest) (*dto.PreferenceResponse, error)
}

type preferenceService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewPreferenceService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
) IPreferenceService {
	return &preferenceService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (s *preferenceService) Get(ctx context.Context) (*dto.PreferenceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	prefs, err := uow.PreferenceRepository().Get(ctx)
	if err != nil {
		return nil, err
	}
	return toPreferenceResponse(prefs), nil
}

func (s *preferenceService) Update(ctx context.Context, req *dto.UpdatePreferenceRequest) (*dto.PreferenceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	prefs, err := uow.PreferenceRepository().Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.SortKey != nil {
		prefs.SortKey = entity.SortKey(*req.SortKey)
	}
	if req.SortAscending != nil {
		prefs.SortAscending = *req.SortAscending
	}
	if req.SwipeLeft != nil {
		prefs.SwipeLeft = entity.SwipeAction(*req.SwipeLeft)
	}
	if req.SwipeRight != nil {
		prefs.SwipeRight = entity.SwipeAction(*req.SwipeRight)
	}
	if req.Layout != nil {
		prefs.Layout = entity.Layout(*req.Layout)
	}

	if err := uow.PreferenceRepository().Save(ctx, prefs); err != nil {
		return nil, err
	}

	evt := events.BaseEvent{
		Type: events.PreferencesUpdated,
		Data: map[string]interface{}{
			"sort_key":       string(prefs.SortKey),
			"sort_ascending": prefs.SortAscending,
			"layout":         string(prefs.Layout),
		},
		OccurredAt: time.Now(),
	}
	if err := s.publisherService.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish %s event: %v", events.PreferencesUpdated, err)
	}

	return toPreferenceResponse(prefs), nil
}

func toPreferenceResponse(prefs *entity.Preferences) *dto.PreferenceResponse {
	return &dto.PreferenceResponse{
		SortKey:       string(prefs.SortKey),
		SortAscending: prefs.SortAscending,
		SwipeLeft:     string(prefs.SwipeLeft),
		SwipeRight:    string(prefs.SwipeRight),
		Layout:        string(prefs.Layout),
		VaultEnabled:  prefs.VaultEnabled,
	}
}
