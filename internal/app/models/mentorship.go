package models

import "time"

// MentorshipRequest is a student's request for an alumni mentor
type MentorshipRequest struct {
	ID        int64            `db:"id"`
	StudentID int64            `db:"student_id"`
	MentorID  int64            `db:"mentor_id"`
	Domain    string           `db:"domain"`
	Message   *string          `db:"message"`
	Status    MentorshipStatus `db:"status"`
	CreatedAt time.Time        `db:"created_at"`

	StudentName string `db:"student_name"`
	MentorName  string `db:"mentor_name"`
}
