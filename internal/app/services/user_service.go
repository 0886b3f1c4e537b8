package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/alumniconnect/internal/app/auth"
	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/app/models/dto"
	"github.com/yigit/alumniconnect/internal/app/repositories"
	"github.com/yigit/alumniconnect/internal/pkg/events"
	"github.com/yigit/alumniconnect/internal/pkg/helpers"
)

// User reason strings
const (
	MsgNothingToUpdate = "Nothing to update"
	MsgUserNotFound    = "User not found"
	MsgNotAlumni       = "User not found or not alumni"
	MsgAlreadyApproved = "User not found or already approved"
	MsgUserApproved    = "User approved"
	MsgUserRejected    = "User rejected"
)

// UserService defines profile and account administration operations
type UserService interface {
	GetProfile(ctx context.Context, caller auth.Caller) (*models.User, error)
	// UpdateProfile reports updated=false when the request carries no field
	UpdateProfile(ctx context.Context, caller auth.Caller, req *dto.UpdateProfileRequest) (user *models.User, updated bool, err error)
	ListAlumni(ctx context.Context) ([]*models.User, error)
	ListStudents(ctx context.Context) ([]*models.User, error)
	ListPending(ctx context.Context, caller auth.Caller) ([]*models.User, error)
	Approve(ctx context.Context, caller auth.Caller, userID int64) error
	Reject(ctx context.Context, caller auth.Caller, userID int64) error
}

type userServiceImpl struct {
	userRepo  repositories.IUserRepository
	authz     *auth.AuthorizationService
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.IUserRepository,
	authz *auth.AuthorizationService,
	publisher events.Publisher,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		userRepo:  userRepo,
		authz:     authz,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *userServiceImpl) GetProfile(ctx context.Context, caller auth.Caller) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, notFound(err, MsgUserNotFound)
	}
	return user, nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, caller auth.Caller, req *dto.UpdateProfileRequest) (*models.User, bool, error) {
	if err := validate.Struct(req); err != nil {
		return nil, false, err
	}

	update := req.ToModel()
	if len(update.Columns()) == 0 {
		return nil, false, nil
	}

	user, err := s.userRepo.UpdateProfile(ctx, caller.ID, update)
	if err != nil {
		return nil, false, notFound(err, MsgUserNotFound)
	}
	return user, true, nil
}

func (s *userServiceImpl) ListAlumni(ctx context.Context) ([]*models.User, error) {
	role, approved := models.RoleAlumni, true
	return s.userRepo.List(ctx, repositories.UserFilter{Role: &role, Approved: &approved})
}

func (s *userServiceImpl) ListStudents(ctx context.Context) ([]*models.User, error) {
	role := models.RoleStudent
	return s.userRepo.List(ctx, repositories.UserFilter{Role: &role})
}

func (s *userServiceImpl) ListPending(ctx context.Context, caller auth.Caller) ([]*models.User, error) {
	if err := s.authz.Authorize(caller, auth.ActionAdminister, auth.Resource{Kind: auth.ResourceUser}); err != nil {
		return nil, err
	}
	role, approved := models.RoleAlumni, false
	return s.userRepo.List(ctx, repositories.UserFilter{Role: &role, Approved: &approved})
}

func (s *userServiceImpl) Approve(ctx context.Context, caller auth.Caller, userID int64) error {
	if err := s.authz.Authorize(caller, auth.ActionAdminister, auth.Resource{Kind: auth.ResourceUser}); err != nil {
		return err
	}
	if err := s.userRepo.ApproveAlumni(ctx, userID); err != nil {
		return notFound(err, MsgNotAlumni)
	}

	s.logger.Info().Int64("userID", userID).Int64("adminID", caller.ID).Msg("Alumni approved")
	publish(ctx, s.publisher, s.logger, events.New(events.TypeAlumniApproved, helpers.FormatID(userID), map[string]any{
		"userId":     helpers.FormatID(userID),
		"approvedBy": helpers.FormatID(caller.ID),
	}))
	return nil
}

func (s *userServiceImpl) Reject(ctx context.Context, caller auth.Caller, userID int64) error {
	if err := s.authz.Authorize(caller, auth.ActionAdminister, auth.Resource{Kind: auth.ResourceUser}); err != nil {
		return err
	}
	if err := s.userRepo.DeleteUnapprovedAlumni(ctx, userID); err != nil {
		return notFound(err, MsgAlreadyApproved)
	}

	s.logger.Info().Int64("userID", userID).Int64("adminID", caller.ID).Msg("Alumni rejected")
	return nil
}
