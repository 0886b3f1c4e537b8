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

// IApplicationRepository defines job application persistence
type IApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	List(ctx context.Context, scope auth.ListScope, jobID int64) ([]*models.Application, error)
	UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) (*models.Application, error)
}

// ApplicationRepository handles database operations for applications
type ApplicationRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(q db.Querier) *ApplicationRepository {
	return &ApplicationRepository{db: q, sb: newBuilder()}
}

func (r *ApplicationRepository) selectApplications() squirrel.SelectBuilder {
	return r.sb.Select(
		"a.id", "a.job_id", "a.student_id", "a.cover_letter", "a.resume_url", "a.status", "a.created_at",
		"u.name AS student_name", "j.title AS job_title", "j.company",
	).From("applications a").
		Join("users u ON u.id = a.student_id").
		Join("jobs j ON j.id = a.job_id")
}

func scanApplication(row scanner) (*models.Application, error) {
	var a models.Application
	var status string
	err := row.Scan(
		&a.ID, &a.JobID, &a.StudentID, &a.CoverLetter, &a.ResumeURL, &status, &a.CreatedAt,
		&a.StudentName, &a.JobTitle, &a.Company,
	)
	if err != nil {
		return nil, err
	}
	a.Status = models.ApplicationStatus(status)
	return &a, nil
}

// Create inserts an application. A second application for the same
// (job, student) pair yields ErrDuplicate.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	if app.Status == "" {
		app.Status = models.ApplicationPending
	}

	query := `
		INSERT INTO applications (job_id, student_id, cover_letter, resume_url, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := db.Conn(ctx, r.db).QueryRow(ctx, query,
		app.JobID, app.StudentID, app.CoverLetter, app.ResumeURL, string(app.Status),
	).Scan(&app.ID, &app.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("error creating application: %w", err)
	}
	return nil
}

// GetByID retrieves an application with display joins
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	query, args, err := r.selectApplications().Where(squirrel.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building application query: %w", err)
	}

	app, err := scanApplication(db.Conn(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}
	return app, nil
}

// List returns applications visible under scope, optionally for one job, newest first
func (r *ApplicationRepository) List(ctx context.Context, scope auth.ListScope, jobID int64) ([]*models.Application, error) {
	if scope.Empty() {
		return []*models.Application{}, nil
	}

	q := r.selectApplications().OrderBy("a.created_at DESC", "a.id DESC")
	if !scope.All {
		if scope.StudentID != 0 {
			q = q.Where(squirrel.Eq{"a.student_id": scope.StudentID})
		}
		if scope.JobOwnerID != 0 {
			q = q.Where(squirrel.Eq{"j.posted_by_id": scope.JobOwnerID})
		}
	}
	if jobID != 0 {
		q = q.Where(squirrel.Eq{"a.job_id": jobID})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building application list: %w", err)
	}

	rows, err := db.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	apps := []*models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// UpdateStatus sets the review status of an application
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) (*models.Application, error) {
	tag, err := db.Conn(ctx, r.db).Exec(ctx, `UPDATE applications SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return nil, fmt.Errorf("error updating application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}
