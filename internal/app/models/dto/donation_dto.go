package dto

import (
	"time"

	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/pkg/helpers"
)

// CreateDonationRequest represents a new donation. The service rounds Amount
// to cents and rejects values outside (0, 9999999999.99].
type CreateDonationRequest struct {
	Amount      float64 `json:"amount" example:"250.00"`
	Currency    string  `json:"currency" binding:"omitempty,len=3" example:"USD"`
	Message     *string `json:"message"`
	IsAnonymous bool    `json:"is_anonymous"`
}

// DonationResponse is the public view of a donation
type DonationResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	DonorName   *string   `json:"donorName"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency" example:"USD"`
	Message     *string   `json:"message"`
	IsAnonymous bool      `json:"isAnonymous"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewDonationResponse maps a donation row. showDonor false drops the donor name.
func NewDonationResponse(d *models.Donation, showDonor bool) DonationResponse {
	resp := DonationResponse{
		ID:          helpers.FormatID(d.ID),
		UserID:      helpers.FormatID(d.UserID),
		Amount:      d.Amount,
		Currency:    d.Currency,
		Message:     d.Message,
		IsAnonymous: d.IsAnonymous,
		CreatedAt:   d.CreatedAt,
	}
	if showDonor {
		resp.DonorName = helpers.StringPtr(d.DonorName)
	}
	return resp
}

// DonationStatsResponse aggregates all donations
type DonationStatsResponse struct {
	TotalDonations int64   `json:"totalDonations" example:"42"`
	TotalAmount    float64 `json:"totalAmount" example:"12500.5"`
}
