package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jeddaiwtf/EventRS/internal/models"
	"github.com/jeddaiwtf/EventRS/internal/repository"
	"github.com/jeddaiwtf/EventRS/pkg/rabbitmq"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrInvalidEventTimes = errors.New("event end time must not be before its start time")
)

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
}

type eventService struct {
	repo      repository.EventRepository
	publisher *rabbitmq.Publisher
}

func NewEventService(repo repository.EventRepository, publisher *rabbitmq.Publisher) EventService {
	return &eventService{repo: repo, publisher: publisher}
}

func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.EndAt != nil && event.EndAt.Before(event.StartAt) {
		return ErrInvalidEventTimes
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event.created", event)
	}

	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.repo.FindAll(ctx)
}
