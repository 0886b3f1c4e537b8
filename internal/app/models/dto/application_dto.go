package dto

import (
	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/pkg/helpers"
)

// CreateApplicationRequest is a student's application to a job
type CreateApplicationRequest struct {
	JobID       ID      `json:"job_id" binding:"required,gt=0" swaggertype:"string" example:"7"`
	CoverLetter *string `json:"cover_letter"`
	ResumeURL   *string `json:"resume_url" binding:"omitempty,url"`
}

// UpdateStatusRequest carries a new status value
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required" example:"accepted"`
}

// ApplicationResponse is the public view of an application
type ApplicationResponse struct {
	ID          string  `json:"id"`
	JobID       string  `json:"jobId"`
	JobTitle    string  `json:"jobTitle,omitempty"`
	Company     string  `json:"company,omitempty"`
	StudentID   string  `json:"studentId"`
	StudentName string  `json:"studentName"`
	CoverLetter *string `json:"coverLetter"`
	Resume      *string `json:"resume"`
	AppliedDate string  `json:"appliedDate"`
	Status      string  `json:"status" example:"pending"`
}

// NewApplicationResponse maps an application row
func NewApplicationResponse(a *models.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          helpers.FormatID(a.ID),
		JobID:       helpers.FormatID(a.JobID),
		JobTitle:    a.JobTitle,
		Company:     a.Company,
		StudentID:   helpers.FormatID(a.StudentID),
		StudentName: a.StudentName,
		CoverLetter: a.CoverLetter,
		Resume:      a.ResumeURL,
		AppliedDate: formatDate(a.CreatedAt),
		Status:      string(a.Status),
	}
}

// NewApplicationResponses maps a slice of applications
func NewApplicationResponses(apps []*models.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}
