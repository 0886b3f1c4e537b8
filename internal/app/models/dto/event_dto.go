package dto

import (
	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/pkg/helpers"
)

// CreateEventRequest represents a new event
type CreateEventRequest struct {
	Title       string  `json:"title" binding:"required,max=255" example:"Alumni Meetup"`
	EventDate   string  `json:"event_date" binding:"required,datetime=2006-01-02" example:"2025-06-01"`
	EventTime   *string `json:"event_time" example:"18:00"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Type        *string `json:"type" example:"networking"`
	MaxCapacity *int    `json:"max_capacity" binding:"omitempty,gt=0" example:"50"`
	Organizer   *string `json:"organizer"`
}

// UpdateEventRequest lists the editable event fields
type UpdateEventRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	EventDate   *string `json:"event_date" binding:"omitempty,datetime=2006-01-02"`
	EventTime   *string `json:"event_time"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	MaxCapacity *int    `json:"max_capacity" binding:"omitempty,gt=0"`
	Organizer   *string `json:"organizer"`
	Status      *string `json:"status" binding:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

// ToModel converts the request into a typed event update
func (r UpdateEventRequest) ToModel() (models.EventUpdate, error) {
	u := models.EventUpdate{
		Title:       r.Title,
		Time:        r.EventTime,
		Location:    r.Location,
		Description: r.Description,
		Type:        r.Type,
		MaxCapacity: r.MaxCapacity,
		Organizer:   r.Organizer,
	}
	if r.EventDate != nil {
		d, err := ParseDate(*r.EventDate)
		if err != nil {
			return u, err
		}
		u.Date = &d
	}
	if r.Status != nil {
		s := models.EventStatus(*r.Status)
		u.Status = &s
	}
	return u, nil
}

// EventResponse is the public view of an event
type EventResponse struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Date            string  `json:"date" example:"2025-06-01"`
	Time            string  `json:"time" example:"18:00"`
	Location        *string `json:"location"`
	Description     *string `json:"description"`
	Type            *string `json:"type"`
	MaxCapacity     *int    `json:"maxCapacity"`
	RegisteredCount int     `json:"registeredCount"`
	Organizer       *string `json:"organizer"`
	Status          string  `json:"status" example:"upcoming"`
}

// NewEventResponse maps an event row
func NewEventResponse(e *models.Event) EventResponse {
	var at string
	if e.Time != nil {
		at = *e.Time
	}
	return EventResponse{
		ID:              helpers.FormatID(e.ID),
		Title:           e.Title,
		Date:            formatDate(e.Date),
		Time:            at,
		Location:        e.Location,
		Description:     e.Description,
		Type:            e.Type,
		MaxCapacity:     e.MaxCapacity,
		RegisteredCount: e.RegisteredCount,
		Organizer:       e.Organizer,
		Status:          string(e.Status),
	}
}

// NewEventResponses maps a slice of events
func NewEventResponses(events []*models.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, NewEventResponse(e))
	}
	return out
}
