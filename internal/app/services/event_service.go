package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/alumniconnect/internal/app/auth"
	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/app/models/dto"
	"github.com/yigit/alumniconnect/internal/app/repositories"
	"github.com/yigit/alumniconnect/internal/db"
	"github.com/yigit/alumniconnect/internal/pkg/apperrors"
)

// Event reason strings
const (
	MsgEventNotFound        = "Event not found"
	MsgEventFull            = "Event is full"
	MsgAlreadyRegistered    = "Already registered"
	MsgRegistrationNotFound = "Registration not found"
	MsgInvalidDate          = "Invalid event_date, expected YYYY-MM-DD"
)

// EventService defines event and registration operations
type EventService interface {
	List(ctx context.Context) ([]*models.Event, error)
	Get(ctx context.Context, id int64) (*models.Event, error)
	Create(ctx context.Context, caller auth.Caller, req *dto.CreateEventRequest) (*models.Event, error)
	Update(ctx context.Context, caller auth.Caller, id int64, req *dto.UpdateEventRequest) (*models.Event, error)
	Delete(ctx context.Context, caller auth.Caller, id int64) error
	Register(ctx context.Context, caller auth.Caller, id int64) error
	Unregister(ctx context.Context, caller auth.Caller, id int64) error
}

type eventServiceImpl struct {
	eventRepo repositories.IEventRepository
	tx        db.TxRunner
	authz     *auth.AuthorizationService
	logger    zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo repositories.IEventRepository,
	tx db.TxRunner,
	authz *auth.AuthorizationService,
	logger zerolog.Logger,
) EventService {
	return &eventServiceImpl{
		eventRepo: eventRepo,
		tx:        tx,
		authz:     authz,
		logger:    logger,
	}
}

func (s *eventServiceImpl) List(ctx context.Context) ([]*models.Event, error) {
	return s.eventRepo.List(ctx)
}

func (s *eventServiceImpl) Get(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, MsgEventNotFound)
	}
	return event, nil
}

// Create records the caller as creator; the organizer field stays free text
func (s *eventServiceImpl) Create(ctx context.Context, caller auth.Caller, req *dto.CreateEventRequest) (*models.Event, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if err := s.authz.Authorize(caller, auth.ActionCreate, auth.Resource{Kind: auth.ResourceEvent}); err != nil {
		return nil, err
	}

	date, err := dto.ParseDate(req.EventDate)
	if err != nil {
		return nil, apperrors.NewValidationError(MsgInvalidDate)
	}

	creator := caller.ID
	event := &models.Event{
		Title:       strings.TrimSpace(req.Title),
		Date:        date,
		Time:        req.EventTime,
		Location:    req.Location,
		Description: req.Description,
		Type:        req.Type,
		MaxCapacity: req.MaxCapacity,
		Organizer:   req.Organizer,
		CreatedByID: &creator,
		Status:      models.EventUpcoming,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("eventID", event.ID).Int64("userID", caller.ID).Msg("Event created")
	return event, nil
}

func (s *eventServiceImpl) Update(ctx context.Context, caller auth.Caller, id int64, req *dto.UpdateEventRequest) (*models.Event, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if err := s.authz.Authorize(caller, auth.ActionUpdate, auth.Resource{Kind: auth.ResourceEvent}); err != nil {
		return nil, err
	}
	update, err := req.ToModel()
	if err != nil {
		return nil, apperrors.NewValidationError(MsgInvalidDate)
	}

	var updated *models.Event
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.eventRepo.GetForUpdate(ctx, id); err != nil {
			return notFound(err, MsgEventNotFound)
		}
		updated, err = s.eventRepo.Update(ctx, id, update)
		return notFound(err, MsgEventNotFound)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *eventServiceImpl) Delete(ctx context.Context, caller auth.Caller, id int64) error {
	if err := s.authz.Authorize(caller, auth.ActionDelete, auth.Resource{Kind: auth.ResourceEvent}); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return notFound(err, MsgEventNotFound)
	}
	s.logger.Info().Int64("eventID", id).Int64("userID", caller.ID).Msg("Event deleted")
	return nil
}

// Register adds the caller to the attendee list. The event row is locked for
// the duration of the count-and-insert so concurrent registrations cannot
// overshoot the capacity.
func (s *eventServiceImpl) Register(ctx context.Context, caller auth.Caller, id int64) error {
	if err := s.authz.CheckApproval(caller); err != nil {
		return err
	}

	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		event, err := s.eventRepo.GetForUpdate(ctx, id)
		if err != nil {
			return notFound(err, MsgEventNotFound)
		}

		count, err := s.eventRepo.CountRegistrations(ctx, id)
		if err != nil {
			return err
		}
		if event.Full(count) {
			return apperrors.NewValidationError(MsgEventFull)
		}

		if err := s.eventRepo.Register(ctx, id, caller.ID); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return apperrors.NewConflictError(MsgAlreadyRegistered)
			}
			return err
		}
		return nil
	})
}

func (s *eventServiceImpl) Unregister(ctx context.Context, caller auth.Caller, id int64) error {
	if _, err := s.eventRepo.GetByID(ctx, id); err != nil {
		return notFound(err, MsgEventNotFound)
	}
	if err := s.eventRepo.Unregister(ctx, id, caller.ID); err != nil {
		return notFound(err, MsgRegistrationNotFound)
	}
	return nil
}
