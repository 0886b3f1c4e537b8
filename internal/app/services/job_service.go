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
)

// MsgJobNotFound is returned for unknown job ids
const MsgJobNotFound = "Job not found"

// JobService defines job board operations
type JobService interface {
	List(ctx context.Context) ([]*models.Job, error)
	Get(ctx context.Context, id int64) (*models.Job, error)
	Create(ctx context.Context, caller auth.Caller, req *dto.CreateJobRequest) (*models.Job, error)
	Update(ctx context.Context, caller auth.Caller, id int64, req *dto.UpdateJobRequest) (*models.Job, error)
	Delete(ctx context.Context, caller auth.Caller, id int64) error
}

type jobServiceImpl struct {
	jobRepo repositories.IJobRepository
	tx      db.TxRunner
	authz   *auth.AuthorizationService
	logger  zerolog.Logger
}

// NewJobService creates a new JobService
func NewJobService(
	jobRepo repositories.IJobRepository,
	tx db.TxRunner,
	authz *auth.AuthorizationService,
	logger zerolog.Logger,
) JobService {
	return &jobServiceImpl{
		jobRepo: jobRepo,
		tx:      tx,
		authz:   authz,
		logger:  logger,
	}
}

func (s *jobServiceImpl) List(ctx context.Context) ([]*models.Job, error) {
	return s.jobRepo.List(ctx)
}

func (s *jobServiceImpl) Get(ctx context.Context, id int64) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, MsgJobNotFound)
	}
	return job, nil
}

func (s *jobServiceImpl) Create(ctx context.Context, caller auth.Caller, req *dto.CreateJobRequest) (*models.Job, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if err := s.authz.Authorize(caller, auth.ActionCreate, auth.Resource{Kind: auth.ResourceJob}); err != nil {
		return nil, err
	}

	job := &models.Job{
		Title:        strings.TrimSpace(req.Title),
		Company:      strings.TrimSpace(req.Company),
		Location:     req.Location,
		Type:         req.Type,
		Description:  req.Description,
		Requirements: req.Requirements,
		PostedByID:   caller.ID,
		PostedByName: caller.Name,
		Status:       models.JobStatusOpen,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("jobID", job.ID).Int64("userID", caller.ID).Msg("Job posted")
	return job, nil
}

// Update applies the patch after checking ownership on the locked row
func (s *jobServiceImpl) Update(ctx context.Context, caller auth.Caller, id int64, req *dto.UpdateJobRequest) (*models.Job, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	var updated *models.Job
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		job, err := s.jobRepo.GetForUpdate(ctx, id)
		if err != nil {
			return notFound(err, MsgJobNotFound)
		}
		if err := s.authz.Authorize(caller, auth.ActionUpdate, auth.Resource{Kind: auth.ResourceJob, OwnerID: job.PostedByID}); err != nil {
			return err
		}

		updated, err = s.jobRepo.Update(ctx, id, req.ToModel())
		return notFound(err, MsgJobNotFound)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *jobServiceImpl) Delete(ctx context.Context, caller auth.Caller, id int64) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		job, err := s.jobRepo.GetForUpdate(ctx, id)
		if err != nil {
			return notFound(err, MsgJobNotFound)
		}
		if err := s.authz.Authorize(caller, auth.ActionDelete, auth.Resource{Kind: auth.ResourceJob, OwnerID: job.PostedByID}); err != nil {
			return err
		}

		if err := s.jobRepo.Delete(ctx, id); err != nil {
			return notFound(err, MsgJobNotFound)
		}
		s.logger.Info().Int64("jobID", id).Int64("userID", caller.ID).Msg("Job deleted")
		return nil
	})
}
