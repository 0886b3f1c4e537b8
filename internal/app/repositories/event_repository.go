package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/db"
	"github.com/yigit/alumniconnect/internal/pkg/dberrors"
)

// IEventRepository defines event and registration persistence
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetForUpdate(ctx context.Context, id int64) (*models.Event, error)
	List(ctx context.Context) ([]*models.Event, error)
	Update(ctx context.Context, id int64, update models.EventUpdate) (*models.Event, error)
	Delete(ctx context.Context, id int64) error
	CountRegistrations(ctx context.Context, eventID int64) (int, error)
	Register(ctx context.Context, eventID, userID int64) error
	Unregister(ctx context.Context, eventID, userID int64) error
}

// EventRepository handles database operations for events
type EventRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(q db.Querier) *EventRepository {
	return &EventRepository{db: q, sb: newBuilder()}
}

func (r *EventRepository) selectEvents() squirrel.SelectBuilder {
	return r.sb.Select(
		"e.id", "e.title", "e.event_date", "e.event_time", "e.location", "e.description", "e.type",
		"e.max_capacity", "e.organizer", "e.created_by_id", "e.status", "e.created_at",
		"(SELECT COUNT(*) FROM event_registrations er WHERE er.event_id = e.id) AS registered_count",
	).From("events e")
}

func scanEvent(row scanner) (*models.Event, error) {
	var e models.Event
	var status string
	err := row.Scan(
		&e.ID, &e.Title, &e.Date, &e.Time, &e.Location, &e.Description, &e.Type,
		&e.MaxCapacity, &e.Organizer, &e.CreatedByID, &status, &e.CreatedAt, &e.RegisteredCount,
	)
	if err != nil {
		return nil, err
	}
	e.Status = models.EventStatus(status)
	return &e, nil
}

// Create inserts an event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.Status == "" {
		event.Status = models.EventUpcoming
	}

	query := `
		INSERT INTO events (title, event_date, event_time, location, description, type, max_capacity, organizer, created_by_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	err := db.Conn(ctx, r.db).QueryRow(ctx, query,
		event.Title, event.Date, event.Time, event.Location, event.Description, event.Type,
		event.MaxCapacity, event.Organizer, event.CreatedByID, string(event.Status),
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating event: %w", err)
	}
	return nil
}

func (r *EventRepository) getOne(ctx context.Context, id int64, lock bool) (*models.Event, error) {
	q := r.selectEvents().Where(squirrel.Eq{"e.id": id})
	if lock {
		q = q.Suffix("FOR UPDATE OF e")
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building event query: %w", err)
	}

	event, err := scanEvent(db.Conn(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}
	return event, nil
}

// GetByID retrieves an event with its registration count
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	return r.getOne(ctx, id, false)
}

// GetForUpdate retrieves and row-locks an event. Registrations for the same
// event serialize on this lock.
func (r *EventRepository) GetForUpdate(ctx context.Context, id int64) (*models.Event, error) {
	return r.getOne(ctx, id, true)
}

// List returns all events ordered by date then time
func (r *EventRepository) List(ctx context.Context) ([]*models.Event, error) {
	query, args, err := r.selectEvents().OrderBy("e.event_date ASC", "e.event_time ASC NULLS LAST", "e.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building event list: %w", err)
	}

	rows, err := db.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// Update applies the non-nil fields of update
func (r *EventRepository) Update(ctx context.Context, id int64, update models.EventUpdate) (*models.Event, error) {
	cols := update.Columns()
	if len(cols) > 0 {
		query, args, err := r.sb.Update("events").SetMap(cols).Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return nil, fmt.Errorf("error building event update: %w", err)
		}
		tag, err := db.Conn(ctx, r.db).Exec(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("error updating event: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes an event and its registrations
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	tag, err := db.Conn(ctx, r.db).Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountRegistrations returns the number of registrations for an event
func (r *EventRepository) CountRegistrations(ctx context.Context, eventID int64) (int, error) {
	var n int
	err := db.Conn(ctx, r.db).QueryRow(ctx,
		`SELECT COUNT(*) FROM event_registrations WHERE event_id = $1`, eventID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting registrations: %w", err)
	}
	return n, nil
}

// Register records userID as attending. A repeat registration yields ErrDuplicate.
func (r *EventRepository) Register(ctx context.Context, eventID, userID int64) error {
	_, err := db.Conn(ctx, r.db).Exec(ctx,
		`INSERT INTO event_registrations (event_id, user_id) VALUES ($1, $2)`, eventID, userID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("error registering for event: %w", err)
	}
	return nil
}

// Unregister removes a registration
func (r *EventRepository) Unregister(ctx context.Context, eventID, userID int64) error {
	tag, err := db.Conn(ctx, r.db).Exec(ctx,
		`DELETE FROM event_registrations WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return fmt.Errorf("error unregistering from event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
