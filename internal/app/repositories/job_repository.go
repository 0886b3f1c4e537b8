package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/db"
	"github.com/yigit/alumniconnect/internal/pkg/dberrors"
)

// IJobRepository defines job board persistence
type IJobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	GetForUpdate(ctx context.Context, id int64) (*models.Job, error)
	List(ctx context.Context) ([]*models.Job, error)
	Update(ctx context.Context, id int64, update models.JobUpdate) (*models.Job, error)
	Delete(ctx context.Context, id int64) error
}

// JobRepository handles database operations for jobs
type JobRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(q db.Querier) *JobRepository {
	return &JobRepository{db: q, sb: newBuilder()}
}

func (r *JobRepository) selectJobs() squirrel.SelectBuilder {
	return r.sb.Select(
		"j.id", "j.title", "j.company", "j.location", "j.type", "j.description", "j.requirements",
		"j.posted_by_id", "j.posted_by_name", "j.status", "j.created_at",
		"(SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id) AS applicants",
	).From("jobs j")
}

func scanJob(row scanner) (*models.Job, error) {
	var j models.Job
	var status string
	err := row.Scan(
		&j.ID, &j.Title, &j.Company, &j.Location, &j.Type, &j.Description, &j.Requirements,
		&j.PostedByID, &j.PostedByName, &status, &j.CreatedAt, &j.Applicants,
	)
	if err != nil {
		return nil, err
	}
	j.Status = models.JobStatus(status)
	return &j, nil
}

// Create inserts a job posting
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	if job.Requirements == nil {
		job.Requirements = []string{}
	}
	if job.Status == "" {
		job.Status = models.JobStatusOpen
	}

	query := `
		INSERT INTO jobs (title, company, location, type, description, requirements, posted_by_id, posted_by_name, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := db.Conn(ctx, r.db).QueryRow(ctx, query,
		job.Title, job.Company, job.Location, job.Type, job.Description, job.Requirements,
		job.PostedByID, job.PostedByName, string(job.Status),
	).Scan(&job.ID, &job.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating job: %w", err)
	}
	return nil
}

func (r *JobRepository) getOne(ctx context.Context, id int64, lock bool) (*models.Job, error) {
	q := r.selectJobs().Where(squirrel.Eq{"j.id": id})
	if lock {
		q = q.Suffix("FOR UPDATE OF j")
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building job query: %w", err)
	}

	job, err := scanJob(db.Conn(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving job: %w", err)
	}
	return job, nil
}

// GetByID retrieves a job with its applicant count
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	return r.getOne(ctx, id, false)
}

// GetForUpdate retrieves and row-locks a job. Only meaningful inside a transaction.
func (r *JobRepository) GetForUpdate(ctx context.Context, id int64) (*models.Job, error) {
	return r.getOne(ctx, id, true)
}

// List returns all jobs, newest first
func (r *JobRepository) List(ctx context.Context) ([]*models.Job, error) {
	query, args, err := r.selectJobs().OrderBy("j.created_at DESC", "j.id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building job list: %w", err)
	}

	rows, err := db.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Update applies the non-nil fields of update
func (r *JobRepository) Update(ctx context.Context, id int64, update models.JobUpdate) (*models.Job, error) {
	cols := update.Columns()
	if len(cols) > 0 {
		query, args, err := r.sb.Update("jobs").SetMap(cols).Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return nil, fmt.Errorf("error building job update: %w", err)
		}
		tag, err := db.Conn(ctx, r.db).Exec(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("error updating job: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a job and, by cascade, its applications
func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	tag, err := db.Conn(ctx, r.db).Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
