package models

import "time"

// Job is a posting on the job board
type Job struct {
	ID           int64     `db:"id"`
	Title        string    `db:"title"`
	Company      string    `db:"company"`
	Location     *string   `db:"location"`
	Type         *string   `db:"type"`
	Description  *string   `db:"description"`
	Requirements []string  `db:"requirements"`
	PostedByID   int64     `db:"posted_by_id"`
	PostedByName string    `db:"posted_by_name"`
	Status       JobStatus `db:"status"`
	CreatedAt    time.Time `db:"created_at"`

	// Applicants is computed by list queries
	Applicants int `db:"applicants"`
}

// JobUpdate carries editable job columns. Nil fields are left untouched.
type JobUpdate struct {
	Title        *string
	Company      *string
	Location     *string
	Type         *string
	Description  *string
	Requirements *[]string
	Status       *JobStatus
}

// Columns returns the non-nil fields keyed by column name
func (u JobUpdate) Columns() map[string]any {
	cols := map[string]any{}
	if u.Title != nil {
		cols["title"] = *u.Title
	}
	if u.Company != nil {
		cols["company"] = *u.Company
	}
	if u.Location != nil {
		cols["location"] = *u.Location
	}
	if u.Type != nil {
		cols["type"] = *u.Type
	}
	if u.Description != nil {
		cols["description"] = *u.Description
	}
	if u.Requirements != nil {
		cols["requirements"] = *u.Requirements
	}
	if u.Status != nil {
		cols["status"] = string(*u.Status)
	}
	return cols
}

// Application is a student's application to a job
type Application struct {
	ID          int64             `db:"id"`
	JobID       int64             `db:"job_id"`
	StudentID   int64             `db:"student_id"`
	CoverLetter *string           `db:"cover_letter"`
	ResumeURL   *string           `db:"resume_url"`
	Status      ApplicationStatus `db:"status"`
	CreatedAt   time.Time         `db:"created_at"`

	// Joined for display
	StudentName string `db:"student_name"`
	JobTitle    string `db:"job_title"`
	Company     string `db:"company"`
}
