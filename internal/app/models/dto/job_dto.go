package dto

import (
	"github.com/yigit/alumniconnect/internal/app/models"
	"github.com/yigit/alumniconnect/internal/pkg/helpers"
)

// CreateJobRequest represents a new job posting
type CreateJobRequest struct {
	Title        string   `json:"title" binding:"required,max=255" example:"Backend Engineer"`
	Company      string   `json:"company" binding:"required,max=255" example:"Acme"`
	Location     *string  `json:"location" example:"Remote"`
	Type         *string  `json:"type" example:"full-time"`
	Description  *string  `json:"description"`
	Requirements []string `json:"requirements"`
}

// UpdateJobRequest lists the editable job fields
type UpdateJobRequest struct {
	Title        *string   `json:"title" binding:"omitempty,max=255"`
	Company      *string   `json:"company" binding:"omitempty,max=255"`
	Location     *string   `json:"location"`
	Type         *string   `json:"type"`
	Description  *string   `json:"description"`
	Requirements *[]string `json:"requirements"`
	Status       *string   `json:"status" binding:"omitempty,oneof=open closed"`
}

// ToModel converts the request into a typed job update
func (r UpdateJobRequest) ToModel() models.JobUpdate {
	u := models.JobUpdate{
		Title:        r.Title,
		Company:      r.Company,
		Location:     r.Location,
		Type:         r.Type,
		Description:  r.Description,
		Requirements: r.Requirements,
	}
	if r.Status != nil {
		s := models.JobStatus(*r.Status)
		u.Status = &s
	}
	return u
}

// JobResponse is the public view of a job posting
type JobResponse struct {
	ID           string   `json:"id" example:"7"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     *string  `json:"location"`
	Type         *string  `json:"type"`
	Description  *string  `json:"description"`
	Requirements []string `json:"requirements"`
	PostedBy     string   `json:"postedBy"`
	PostedByID   string   `json:"postedById"`
	PostedDate   string   `json:"postedDate" example:"2025-04-23"`
	Applicants   int      `json:"applicants"`
	Status       string   `json:"status" example:"open"`
}

// NewJobResponse maps a job row
func NewJobResponse(j *models.Job) JobResponse {
	reqs := j.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	return JobResponse{
		ID:           helpers.FormatID(j.ID),
		Title:        j.Title,
		Company:      j.Company,
		Location:     j.Location,
		Type:         j.Type,
		Description:  j.Description,
		Requirements: reqs,
		PostedBy:     j.PostedByName,
		PostedByID:   helpers.FormatID(j.PostedByID),
		PostedDate:   formatDate(j.CreatedAt),
		Applicants:   j.Applicants,
		Status:       string(j.Status),
	}
}

// NewJobResponses maps a slice of jobs
func NewJobResponses(jobs []*models.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, NewJobResponse(j))
	}
	return out
}
