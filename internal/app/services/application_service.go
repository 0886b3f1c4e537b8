package services

import (
	"context"
	"errors"

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

// Application reason strings
const (
	MsgApplicationNotFound = "Application not found"
	MsgAlreadyApplied      = "Already applied"
	MsgInvalidStatus       = "Invalid status"
)

// ApplicationService defines job application operations
type ApplicationService interface {
	// List returns the caller's visible applications; jobID > 0 narrows to one job
	// and requires ownership of it
	List(ctx context.Context, caller auth.Caller, jobID int64) ([]*models.Application, error)
	Create(ctx context.Context, caller auth.Caller, req *dto.CreateApplicationRequest) (*models.Application, error)
	UpdateStatus(ctx context.Context, caller auth.Caller, id int64, status string) (*models.Application, error)
}

type applicationServiceImpl struct {
	appRepo   repositories.IApplicationRepository
	jobRepo   repositories.IJobRepository
	tx        db.TxRunner
	authz     *auth.AuthorizationService
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	appRepo repositories.IApplicationRepository,
	jobRepo repositories.IJobRepository,
	tx db.TxRunner,
	authz *auth.AuthorizationService,
	publisher events.Publisher,
	logger zerolog.Logger,
) ApplicationService {
	return &applicationServiceImpl{
		appRepo:   appRepo,
		jobRepo:   jobRepo,
		tx:        tx,
		authz:     authz,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *applicationServiceImpl) List(ctx context.Context, caller auth.Caller, jobID int64) ([]*models.Application, error) {
	if jobID <= 0 {
		return s.appRepo.List(ctx, s.authz.Scope(caller, auth.ResourceApplication), 0)
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, notFound(err, MsgJobNotFound)
	}
	if err := s.authz.Authorize(caller, auth.ActionListByParent, auth.Resource{Kind: auth.ResourceApplication, OwnerID: job.PostedByID}); err != nil {
		return nil, err
	}
	return s.appRepo.List(ctx, auth.ListScope{All: true}, jobID)
}

// Create files an application. The (job, student) unique constraint decides
// duplicates, so concurrent submissions cannot both succeed.
func (s *applicationServiceImpl) Create(ctx context.Context, caller auth.Caller, req *dto.CreateApplicationRequest) (*models.Application, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if err := s.authz.Authorize(caller, auth.ActionCreate, auth.Resource{Kind: auth.ResourceApplication}); err != nil {
		return nil, err
	}

	app := &models.Application{
		JobID:       int64(req.JobID),
		StudentID:   caller.ID,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
		Status:      models.ApplicationPending,
		StudentName: caller.Name,
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		job, err := s.jobRepo.GetByID(ctx, app.JobID)
		if err != nil {
			return notFound(err, MsgJobNotFound)
		}
		app.JobTitle = job.Title
		app.Company = job.Company

		if err := s.appRepo.Create(ctx, app); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return apperrors.NewConflictError(MsgAlreadyApplied)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("applicationID", app.ID).Int64("jobID", app.JobID).Int64("studentID", caller.ID).Msg("Application submitted")
	return app, nil
}

func (s *applicationServiceImpl) UpdateStatus(ctx context.Context, caller auth.Caller, id int64, status string) (*models.Application, error) {
	var updated *models.Application
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		app, err := s.appRepo.GetByID(ctx, id)
		if err != nil {
			return notFound(err, MsgApplicationNotFound)
		}
		job, err := s.jobRepo.GetForUpdate(ctx, app.JobID)
		if err != nil {
			return notFound(err, MsgJobNotFound)
		}
		if err := s.authz.Authorize(caller, auth.ActionUpdateStatus, auth.Resource{Kind: auth.ResourceApplication, OwnerID: job.PostedByID}); err != nil {
			return err
		}

		next := models.ApplicationStatus(status)
		if !next.Valid() {
			return apperrors.NewValidationError(MsgInvalidStatus)
		}

		updated, err = s.appRepo.UpdateStatus(ctx, id, next)
		return notFound(err, MsgApplicationNotFound)
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, events.New(events.TypeApplicationStatusChanged, helpers.FormatID(updated.ID), map[string]any{
		"applicationId": helpers.FormatID(updated.ID),
		"jobId":         helpers.FormatID(updated.JobID),
		"studentId":     helpers.FormatID(updated.StudentID),
		"status":        updated.Status,
	}))
	return updated, nil
}
