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
	"github.com/yigit/alumniconnect/internal/pkg/apperrors"
)

// Donation amount errors
const (
	MsgAmountNotPositive = "Amount must be positive"
	MsgAmountTooLarge    = "Amount exceeds the maximum of 9999999999.99"
	MsgInvalidDonation   = "Invalid donation"
)

// DonationService defines donation operations. Responses are rendered here
// because donor visibility depends on the caller.
type DonationService interface {
	Create(ctx context.Context, caller auth.Caller, req *dto.CreateDonationRequest) (dto.DonationResponse, error)
	List(ctx context.Context, caller auth.Caller) ([]dto.DonationResponse, error)
	Stats(ctx context.Context, caller auth.Caller) (dto.DonationStatsResponse, error)
}

type donationServiceImpl struct {
	donationRepo repositories.IDonationRepository
	authz        *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewDonationService creates a new DonationService
func NewDonationService(
	donationRepo repositories.IDonationRepository,
	authz *auth.AuthorizationService,
	logger zerolog.Logger,
) DonationService {
	return &donationServiceImpl{
		donationRepo: donationRepo,
		authz:        authz,
		logger:       logger,
	}
}

func (s *donationServiceImpl) Create(ctx context.Context, caller auth.Caller, req *dto.CreateDonationRequest) (dto.DonationResponse, error) {
	if err := validate.Struct(req); err != nil {
		return dto.DonationResponse{}, err
	}
	if err := s.authz.Authorize(caller, auth.ActionCreate, auth.Resource{Kind: auth.ResourceDonation}); err != nil {
		return dto.DonationResponse{}, err
	}
	// amounts are stored in cents; anything that rounds to zero is not a gift
	amount := models.RoundAmount(req.Amount)
	if !(amount > 0) {
		return dto.DonationResponse{}, apperrors.NewValidationError(MsgAmountNotPositive)
	}
	if amount > models.MaxDonationAmount {
		return dto.DonationResponse{}, apperrors.NewValidationError(MsgAmountTooLarge)
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = models.DefaultCurrency
	}

	donation := &models.Donation{
		UserID:      caller.ID,
		Amount:      amount,
		Currency:    currency,
		Message:     req.Message,
		IsAnonymous: req.IsAnonymous,
	}
	if err := s.donationRepo.Create(ctx, donation); err != nil {
		if errors.Is(err, repositories.ErrInvalidValue) {
			return dto.DonationResponse{}, apperrors.NewValidationError(MsgInvalidDonation)
		}
		return dto.DonationResponse{}, err
	}

	s.logger.Info().Int64("donationID", donation.ID).Int64("userID", caller.ID).Bool("anonymous", donation.IsAnonymous).Msg("Donation recorded")
	return dto.NewDonationResponse(donation, s.authz.ShowDonor(caller, donation)), nil
}

func (s *donationServiceImpl) List(ctx context.Context, caller auth.Caller) ([]dto.DonationResponse, error) {
	donations, err := s.donationRepo.List(ctx, s.authz.Scope(caller, auth.ResourceDonation))
	if err != nil {
		return nil, err
	}

	out := make([]dto.DonationResponse, 0, len(donations))
	for _, d := range donations {
		out = append(out, dto.NewDonationResponse(d, s.authz.ShowDonor(caller, d)))
	}
	return out, nil
}

func (s *donationServiceImpl) Stats(ctx context.Context, caller auth.Caller) (dto.DonationStatsResponse, error) {
	if err := s.authz.Authorize(caller, auth.ActionStats, auth.Resource{Kind: auth.ResourceDonation}); err != nil {
		return dto.DonationStatsResponse{}, err
	}

	stats, err := s.donationRepo.Stats(ctx)
	if err != nil {
		return dto.DonationStatsResponse{}, err
	}
	return dto.DonationStatsResponse{
		TotalDonations: stats.TotalDonations,
		TotalAmount:    stats.TotalAmount,
	}, nil
}
