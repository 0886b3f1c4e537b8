package models

import "time"

// Event is a scheduled alumni event
type Event struct {
	ID          int64       `db:"id"`
	Title       string      `db:"title"`
	Date        time.Time   `db:"event_date"`
	Time        *string     `db:"event_time"`
	Location    *string     `db:"location"`
	Description *string     `db:"description"`
	Type        *string     `db:"type"`
	MaxCapacity *int        `db:"max_capacity"`
	Organizer   *string     `db:"organizer"`
	CreatedByID *int64      `db:"created_by_id"`
	Status      EventStatus `db:"status"`
	CreatedAt   time.Time   `db:"created_at"`

	// RegisteredCount is computed by read queries
	RegisteredCount int `db:"registered_count"`
}

// Full reports whether count registrations exhaust the capacity
func (e *Event) Full(count int) bool {
	return e.MaxCapacity != nil && count >= *e.MaxCapacity
}

// EventUpdate carries editable event columns. Nil fields are left untouched.
type EventUpdate struct {
	Title       *string
	Date        *time.Time
	Time        *string
	Location    *string
	Description *string
	Type        *string
	MaxCapacity *int
	Organizer   *string
	Status      *EventStatus
}

// Columns returns the non-nil fields keyed by column name
func (u EventUpdate) Columns() map[string]any {
	cols := map[string]any{}
	if u.Title != nil {
		cols["title"] = *u.Title
	}
	if u.Date != nil {
		cols["event_date"] = *u.Date
	}
	if u.Time != nil {
		cols["event_time"] = *u.Time
	}
	if u.Location != nil {
		cols["location"] = *u.Location
	}
	if u.Description != nil {
		cols["description"] = *u.Description
	}
	if u.Type != nil {
		cols["type"] = *u.Type
	}
	if u.MaxCapacity != nil {
		cols["max_capacity"] = *u.MaxCapacity
	}
	if u.Organizer != nil {
		cols["organizer"] = *u.Organizer
	}
	if u.Status != nil {
		cols["status"] = string(*u.Status)
	}
	return cols
}
