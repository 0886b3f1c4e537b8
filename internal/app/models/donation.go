package models

import (
	"math"
	"time"
)

// DefaultCurrency applies when a donation names none
const DefaultCurrency = "USD"

// MaxDonationAmount is the largest value a NUMERIC(12,2) amount column holds
const MaxDonationAmount = 9999999999.99

// RoundAmount rounds a to whole cents, the precision amounts are stored at
func RoundAmount(a float64) float64 {
	return math.Round(a*100) / 100
}

// Donation is a monetary gift recorded by a user
type Donation struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	Amount      float64   `db:"amount"`
	Currency    string    `db:"currency"`
	Message     *string   `db:"message"`
	IsAnonymous bool      `db:"is_anonymous"`
	CreatedAt   time.Time `db:"created_at"`

	DonorName string `db:"donor_name"`
}

// DonationStats aggregates all donations
type DonationStats struct {
	TotalDonations int64
	TotalAmount    float64
}
