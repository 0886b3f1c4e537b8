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

// IMentorshipRepository defines mentorship request persistence
type IMentorshipRepository interface {
	Create(ctx context.Context, req *models.MentorshipRequest) error
	GetByID(ctx context.Context, id int64) (*models.MentorshipRequest, error)
	GetForUpdate(ctx context.Context, id int64) (*models.MentorshipRequest, error)
	List(ctx context.Context, scope auth.ListScope) ([]*models.MentorshipRequest, error)
	UpdateStatus(ctx context.Context, id int64, status models.MentorshipStatus) (*models.MentorshipRequest, error)
}

// MentorshipRepository handles database operations for mentorship requests
type MentorshipRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewMentorshipRepository creates a new MentorshipRepository
func NewMentorshipRepository(q db.Querier) *MentorshipRepository {
	return &MentorshipRepository{db: q, sb: newBuilder()}
}

func (r *MentorshipRepository) selectRequests() squirrel.SelectBuilder {
	return r.sb.Select(
		"m.id", "m.student_id", "m.mentor_id", "m.domain", "m.message", "m.status", "m.created_at",
		"s.name AS student_name", "t.name AS mentor_name",
	).From("mentorship_requests m").
		Join("users s ON s.id = m.student_id").
		Join("users t ON t.id = m.mentor_id")
}

func scanMentorship(row scanner) (*models.MentorshipRequest, error) {
	var m models.MentorshipRequest
	var status string
	err := row.Scan(
		&m.ID, &m.StudentID, &m.MentorID, &m.Domain, &m.Message, &status, &m.CreatedAt,
		&m.StudentName, &m.MentorName,
	)
	if err != nil {
		return nil, err
	}
	m.Status = models.MentorshipStatus(status)
	return &m, nil
}

// Create inserts a pending mentorship request
func (r *MentorshipRepository) Create(ctx context.Context, req *models.MentorshipRequest) error {
	if req.Status == "" {
		req.Status = models.MentorshipPending
	}

	query := `
		INSERT INTO mentorship_requests (student_id, mentor_id, domain, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := db.Conn(ctx, r.db).QueryRow(ctx, query,
		req.StudentID, req.MentorID, req.Domain, req.Message, string(req.Status),
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating mentorship request: %w", err)
	}
	return nil
}

func (r *MentorshipRepository) getOne(ctx context.Context, id int64, lock bool) (*models.MentorshipRequest, error) {
	q := r.selectRequests().Where(squirrel.Eq{"m.id": id})
	if lock {
		q = q.Suffix("FOR UPDATE OF m")
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building mentorship query: %w", err)
	}

	req, err := scanMentorship(db.Conn(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving mentorship request: %w", err)
	}
	return req, nil
}

// GetByID retrieves a mentorship request with both names
func (r *MentorshipRepository) GetByID(ctx context.Context, id int64) (*models.MentorshipRequest, error) {
	return r.getOne(ctx, id, false)
}

// GetForUpdate is GetByID holding a row lock until the surrounding transaction ends
func (r *MentorshipRepository) GetForUpdate(ctx context.Context, id int64) (*models.MentorshipRequest, error) {
	return r.getOne(ctx, id, true)
}

// List returns requests visible under scope, newest first
func (r *MentorshipRepository) List(ctx context.Context, scope auth.ListScope) ([]*models.MentorshipRequest, error) {
	if scope.Empty() {
		return []*models.MentorshipRequest{}, nil
	}

	q := r.selectRequests().OrderBy("m.created_at DESC", "m.id DESC")
	if !scope.All {
		if scope.MentorID != 0 {
			q = q.Where(squirrel.Eq{"m.mentor_id": scope.MentorID})
		}
		if scope.StudentID != 0 {
			q = q.Where(squirrel.Eq{"m.student_id": scope.StudentID})
		}
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building mentorship list: %w", err)
	}

	rows, err := db.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing mentorship requests: %w", err)
	}
	defer rows.Close()

	reqs := []*models.MentorshipRequest{}
	for rows.Next() {
		req, err := scanMentorship(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

// UpdateStatus records the mentor's answer
func (r *MentorshipRepository) UpdateStatus(ctx context.Context, id int64, status models.MentorshipStatus) (*models.MentorshipRequest, error) {
	tag, err := db.Conn(ctx, r.db).Exec(ctx, `UPDATE mentorship_requests SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return nil, fmt.Errorf("error updating mentorship status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}
