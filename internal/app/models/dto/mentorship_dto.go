package dto

import (
	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/pkg/helpers"
)

// CreateMentorshipRequest is a student's request for a mentor
type CreateMentorshipRequest struct {
	MentorID ID      `json:"mentor_id" binding:"required,gt=0" swaggertype:"string" example:"12"`
	Domain   string  `json:"domain" binding:"required,max=255" example:"Distributed systems"`
	Message  *string `json:"message"`
}

// MentorshipResponse is the public view of a mentorship request
type MentorshipResponse struct {
	ID          string  `json:"id"`
	StudentID   string  `json:"studentId"`
	StudentName string  `json:"studentName"`
	MentorID    string  `json:"mentorId"`
	MentorName  string  `json:"mentorName"`
	Domain      string  `json:"domain"`
	Message     *string `json:"message"`
	Status      string  `json:"status" example:"pending"`
	RequestDate string  `json:"requestDate"`
}

// NewMentorshipResponse maps a mentorship row
func NewMentorshipResponse(m *models.MentorshipRequest) MentorshipResponse {
	return MentorshipResponse{
		ID:          helpers.FormatID(m.ID),
		StudentID:   helpers.FormatID(m.StudentID),
		StudentName: m.StudentName,
		MentorID:    helpers.FormatID(m.MentorID),
		MentorName:  m.MentorName,
		Domain:      m.Domain,
		Message:     m.Message,
		Status:      string(m.Status),
		RequestDate: formatDate(m.CreatedAt),
	}
}

// NewMentorshipResponses maps a slice of mentorship requests
func NewMentorshipResponses(reqs []*models.MentorshipRequest) []MentorshipResponse {
	out := make([]MentorshipResponse, 0, len(reqs))
	for _, m := range reqs {
		out = append(out, NewMentorshipResponse(m))
	}
	return out
}
