package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/alumniconnect/internal/app/auth"
	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/app/models/dto"
	"github.com/yigit/alumniconnect/internal/app/repositories"
	"github.com/yigit/alumniconnect/internal/pkg/apperrors"
	"github.com/yigit/alumniconnect/internal/pkg/events"
	jwtauth "github.com/yigit/alumniconnect/internal/pkg/auth"
	"github.com/yigit/alumniconnect/internal/pkg/helpers"
	"github.com/yigit/alumniconnect/internal/pkg/validation"
)

// Auth reason strings
const (
	MsgRegistered         = "Registered successfully"
	MsgUserExists         = "User already exists"
	MsgInvalidCredentials = "Invalid credentials"
)

// AuthService handles registration and login
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authServiceImpl struct {
	userRepo   repositories.IUserRepository
	jwtService *jwtauth.JWTService
	authz      *auth.AuthorizationService
	publisher  events.Publisher
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	jwtService *jwtauth.JWTService,
	authz *auth.AuthorizationService,
	publisher events.Publisher,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		authz:      authz,
		publisher:  publisher,
		logger:     logger,
	}
}

// Register creates an account. Students and admins are approved at once;
// alumni wait for an admin.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	email := validation.NormalizeEmail(req.Email)
	if !validation.IsValidEmail(email) {
		return nil, apperrors.NewValidationError("Invalid email format")
	}
	if !validation.IsValidPassword(req.Password) {
		return nil, apperrors.NewValidationError("Password must be at least 8 characters")
	}
	name := strings.TrimSpace(req.Name)
	if !validation.IsValidName(name) {
		return nil, apperrors.NewValidationError("Invalid name")
	}
	role := models.RoleType(req.Role)
	if !role.Valid() {
		return nil, apperrors.NewValidationError("Invalid role")
	}

	hash, err := jwtauth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:                name,
		Email:               email,
		PasswordHash:        hash,
		Role:                role,
		IsApproved:          role.ApprovedAtCreation(),
		GraduationYear:      req.GraduationYear,
		CurrentOrganization: req.CurrentOrganization,
		CurrentTitle:        req.CurrentRole,
		Department:          req.Department,
		Batch:               req.Batch,
		Phone:               req.Phone,
		Location:            req.Location,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.NewConflictError(MsgUserExists)
		}
		return nil, err
	}

	token, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User registered")
	publish(ctx, s.publisher, s.logger, events.New(events.TypeUserRegistered, helpers.FormatID(user.ID), map[string]any{
		"userId":   helpers.FormatID(user.ID),
		"role":     user.Role,
		"approved": user.IsApproved,
	}))

	return &dto.RegisterResponse{
		Message:          MsgRegistered,
		ApprovalRequired: !user.IsApproved,
		User:             dto.NewUserResponse(user),
		AccessToken:      token,
	}, nil
}

// Login verifies credentials and issues an access token
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, validation.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, MsgInvalidCredentials)
		}
		return nil, err
	}
	if !jwtauth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, MsgInvalidCredentials)
	}

	if err := s.authz.CheckApproval(auth.NewCaller(user)); err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Int64("userID", user.ID).Msg("User logged in")
	return &dto.LoginResponse{
		AccessToken: token,
		Role:        string(user.Role),
		User:        dto.NewUserResponse(user),
	}, nil
}
