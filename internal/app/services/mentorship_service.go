package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/alumniconnect/internal/app/auth"
	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/app/models/dto"
	"github.com/yigit/alumniconnect/internal/app/repositories"
	"github.com/yigit/alumniconnect/internal/db"
	"github.com/yigit/alumniconnect/internal/pkg/apperrors"
	"github.com/yigit/alumniconnect/internal/pkg/events"
	"github.com/yigit/alumniconnect/internal/pkg/helpers"
)

// Mentorship reason strings
const (
	MsgMentorNotFound       = "Mentor not found"
	MsgRequestNotFound      = "Request not found"
	MsgInvalidMentorshipAns = "Status must be accepted or rejected"
)

// MentorshipService defines mentorship request operations
type MentorshipService interface {
	List(ctx context.Context, caller auth.Caller) ([]*models.MentorshipRequest, error)
	Create(ctx context.Context, caller auth.Caller, req *dto.CreateMentorshipRequest) (*models.MentorshipRequest, error)
	UpdateStatus(ctx context.Context, caller auth.Caller, id int64, status string) (*models.MentorshipRequest, error)
}

type mentorshipServiceImpl struct {
	mentorshipRepo repositories.IMentorshipRepository
	userRepo       repositories.IUserRepository
	tx             db.TxRunner
	authz          *auth.AuthorizationService
	publisher      events.Publisher
	logger         zerolog.Logger
}

// NewMentorshipService creates a new MentorshipService
func NewMentorshipService(
	mentorshipRepo repositories.IMentorshipRepository,
	userRepo repositories.IUserRepository,
	tx db.TxRunner,
	authz *auth.AuthorizationService,
	publisher events.Publisher,
	logger zerolog.Logger,
) MentorshipService {
	return &mentorshipServiceImpl{
		mentorshipRepo: mentorshipRepo,
		userRepo:       userRepo,
		tx:             tx,
		authz:          authz,
		publisher:      publisher,
		logger:         logger,
	}
}

func (s *mentorshipServiceImpl) List(ctx context.Context, caller auth.Caller) ([]*models.MentorshipRequest, error) {
	return s.mentorshipRepo.List(ctx, s.authz.Scope(caller, auth.ResourceMentorship))
}

func (s *mentorshipServiceImpl) Create(ctx context.Context, caller auth.Caller, req *dto.CreateMentorshipRequest) (*models.MentorshipRequest, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if err := s.authz.Authorize(caller, auth.ActionCreate, auth.Resource{Kind: auth.ResourceMentorship}); err != nil {
		return nil, err
	}

	mentor, err := s.userRepo.GetByID(ctx, int64(req.MentorID))
	if err != nil {
		return nil, notFound(err, MsgMentorNotFound)
	}
	if mentor.Role != models.RoleAlumni {
		return nil, apperrors.NewResourceNotFoundError(MsgMentorNotFound)
	}

	request := &models.MentorshipRequest{
		StudentID:   caller.ID,
		MentorID:    mentor.ID,
		Domain:      strings.TrimSpace(req.Domain),
		Message:     req.Message,
		Status:      models.MentorshipPending,
		StudentName: caller.Name,
		MentorName:  mentor.Name,
	}
	if err := s.mentorshipRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("requestID", request.ID).Int64("studentID", caller.ID).Int64("mentorID", mentor.ID).Msg("Mentorship requested")
	return request, nil
}

// UpdateStatus records the mentor's answer on the locked request row
func (s *mentorshipServiceImpl) UpdateStatus(ctx context.Context, caller auth.Caller, id int64, status string) (*models.MentorshipRequest, error) {
	answer := models.MentorshipStatus(status)
	if !answer.Answer() {
		return nil, apperrors.NewValidationError(MsgInvalidMentorshipAns)
	}

	var updated *models.MentorshipRequest
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		request, err := s.mentorshipRepo.GetForUpdate(ctx, id)
		if err != nil {
			return notFound(err, MsgRequestNotFound)
		}
		if err := s.authz.Authorize(caller, auth.ActionUpdateStatus, auth.Resource{Kind: auth.ResourceMentorship, OwnerID: request.MentorID}); err != nil {
			return err
		}

		updated, err = s.mentorshipRepo.UpdateStatus(ctx, id, answer)
		return notFound(err, MsgRequestNotFound)
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, events.New(events.TypeMentorshipStatusChanged, helpers.FormatID(updated.ID), map[string]any{
		"requestId": helpers.FormatID(updated.ID),
		"studentId": helpers.FormatID(updated.StudentID),
		"mentorId":  helpers.FormatID(updated.MentorID),
		"status":    updated.Status,
	}))
	return updated, nil
}
