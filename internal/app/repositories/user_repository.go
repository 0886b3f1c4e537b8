package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/db"
	"github.com/yigit/alumniconnect/internal/pkg/dberrors"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) (*models.User, error)
	List(ctx context.Context, filter UserFilter) ([]*models.User, error)
	ApproveAlumni(ctx context.Context, id int64) error
	DeleteUnapprovedAlumni(ctx context.Context, id int64) error
}

// UserFilter narrows user listings. Nil fields do not filter.
type UserFilter struct {
	Role     *models.RoleType
	Approved *bool
}

const userColumns = "id, name, email, password_hash, role, is_approved, graduation_year, " +
	"current_organization, current_title, department, batch, phone, location, bio, linkedin, avatar, " +
	"created_at, updated_at"

// UserRepository handles database operations for users
type UserRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(q db.Querier) *UserRepository {
	return &UserRepository{db: q, sb: newBuilder()}
}

func scanUser(row scanner) (*models.User, error) {
	var u models.User
	var role string
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.IsApproved, &u.GraduationYear,
		&u.CurrentOrganization, &u.CurrentTitle, &u.Department, &u.Batch, &u.Phone, &u.Location,
		&u.Bio, &u.LinkedIn, &u.Avatar, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Role = models.RoleType(role)
	return &u, nil
}

// Create inserts a user. A taken email yields ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role, is_approved, graduation_year,
			current_organization, current_title, department, batch, phone, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	err := db.Conn(ctx, r.db).QueryRow(ctx, query,
		user.Name, user.Email, user.PasswordHash, string(user.Role), user.IsApproved, user.GraduationYear,
		user.CurrentOrganization, user.CurrentTitle, user.Department, user.Batch, user.Phone, user.Location,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := db.Conn(ctx, r.db).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return u, nil
}

// GetByEmail retrieves a user by normalized email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := db.Conn(ctx, r.db).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}
	return u, nil
}

// UpdateProfile applies the non-nil profile fields and returns the updated row
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) (*models.User, error) {
	cols := update.Columns()
	if len(cols) == 0 {
		return r.GetByID(ctx, id)
	}

	query, args, err := r.sb.Update("users").
		SetMap(cols).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building profile update: %w", err)
	}

	u, err := scanUser(db.Conn(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return u, nil
}

// List returns users matching filter ordered by name
func (r *UserRepository) List(ctx context.Context, filter UserFilter) ([]*models.User, error) {
	q := r.sb.Select(userColumns).From("users").OrderBy("name ASC", "id ASC")
	if filter.Role != nil {
		q = q.Where(squirrel.Eq{"role": string(*filter.Role)})
	}
	if filter.Approved != nil {
		q = q.Where(squirrel.Eq{"is_approved": *filter.Approved})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building user list: %w", err)
	}

	rows, err := db.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ApproveAlumni flags an alumni account as approved. Non-alumni yield ErrNotFound.
func (r *UserRepository) ApproveAlumni(ctx context.Context, id int64) error {
	tag, err := db.Conn(ctx, r.db).Exec(ctx,
		`UPDATE users SET is_approved = TRUE, updated_at = NOW() WHERE id = $1 AND role = 'alumni'`, id)
	if err != nil {
		return fmt.Errorf("error approving user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUnapprovedAlumni removes a pending alumni account
func (r *UserRepository) DeleteUnapprovedAlumni(ctx context.Context, id int64) error {
	tag, err := db.Conn(ctx, r.db).Exec(ctx,
		`DELETE FROM users WHERE id = $1 AND role = 'alumni' AND NOT is_approved`, id)
	if err != nil {
		return fmt.Errorf("error rejecting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
