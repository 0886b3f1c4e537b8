package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/alumniconnect/internal/app/auth"
	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/db"
	"github.com/yigit/alumniconnect/internal/pkg/dberrors"
)

// IDonationRepository defines donation persistence
type IDonationRepository interface {
	Create(ctx context.Context, donation *models.Donation) error
	List(ctx context.Context, scope auth.ListScope) ([]*models.Donation, error)
	Stats(ctx context.Context) (models.DonationStats, error)
}

// DonationRepository handles database operations for donations
type DonationRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewDonationRepository creates a new DonationRepository
func NewDonationRepository(q db.Querier) *DonationRepository {
	return &DonationRepository{db: q, sb: newBuilder()}
}

// Create inserts a donation and fills in the donor name
func (r *DonationRepository) Create(ctx context.Context, donation *models.Donation) error {
	if donation.Currency == "" {
		donation.Currency = models.DefaultCurrency
	}

	query := `
		WITH inserted AS (
			INSERT INTO donations (user_id, amount, currency, message, is_anonymous)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, user_id, created_at
		)
		SELECT i.id, i.created_at, u.name FROM inserted i JOIN users u ON u.id = i.user_id`

	err := db.Conn(ctx, r.db).QueryRow(ctx, query,
		donation.UserID, donation.Amount, donation.Currency, donation.Message, donation.IsAnonymous,
	).Scan(&donation.ID, &donation.CreatedAt, &donation.DonorName)
	if err != nil {
		if dberrors.IsInvalidValue(err) {
			return ErrInvalidValue
		}
		return fmt.Errorf("error creating donation: %w", err)
	}
	return nil
}

// List returns donations visible under scope, newest first
func (r *DonationRepository) List(ctx context.Context, scope auth.ListScope) ([]*models.Donation, error) {
	if scope.Empty() {
		return []*models.Donation{}, nil
	}

	q := r.sb.Select(
		"d.id", "d.user_id", "d.amount::float8", "d.currency", "d.message", "d.is_anonymous", "d.created_at", "u.name",
	).From("donations d").
		Join("users u ON u.id = d.user_id").
		OrderBy("d.created_at DESC", "d.id DESC")
	if !scope.All && scope.DonorID != 0 {
		q = q.Where(squirrel.Eq{"d.user_id": scope.DonorID})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building donation list: %w", err)
	}

	rows, err := db.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing donations: %w", err)
	}
	defer rows.Close()

	donations := []*models.Donation{}
	for rows.Next() {
		var d models.Donation
		if err := rows.Scan(&d.ID, &d.UserID, &d.Amount, &d.Currency, &d.Message, &d.IsAnonymous, &d.CreatedAt, &d.DonorName); err != nil {
			return nil, err
		}
		donations = append(donations, &d)
	}
	return donations, rows.Err()
}

// Stats returns the number and sum of all donations
func (r *DonationRepository) Stats(ctx context.Context) (models.DonationStats, error) {
	var s models.DonationStats
	err := db.Conn(ctx, r.db).QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(amount), 0)::float8 FROM donations`).Scan(&s.TotalDonations, &s.TotalAmount)
	if err != nil {
		return s, fmt.Errorf("error computing donation stats: %w", err)
	}
	return s, nil
}
