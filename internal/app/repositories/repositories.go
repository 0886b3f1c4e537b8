package repositories

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/alumniconnect/internal/db"
)

// Repository-level outcomes that services translate into user-facing errors
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("duplicate record")
	ErrInvalidValue = errors.New("value rejected by column constraint")
)

// scanner is satisfied by pgx.Row and pgx.Rows
type scanner interface {
	Scan(dest ...any) error
}

func newBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	JobRepository          *JobRepository
	ApplicationRepository  *ApplicationRepository
	EventRepository        *EventRepository
	DonationRepository     *DonationRepository
	MentorshipRepository   *MentorshipRepository
	ConversationRepository *ConversationRepository
}

// NewRepositories initializes all repositories over one pool
func NewRepositories(q db.Querier) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(q),
		JobRepository:          NewJobRepository(q),
		ApplicationRepository:  NewApplicationRepository(q),
		EventRepository:        NewEventRepository(q),
		DonationRepository:     NewDonationRepository(q),
		MentorshipRepository:   NewMentorshipRepository(q),
		ConversationRepository: NewConversationRepository(q),
	}
}
