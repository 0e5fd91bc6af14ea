package attendees

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("attendee not found")

var ErrDuplicateEmail = errors.New("email already registered")

var ErrAlreadyMarked = errors.New("attendance already marked for session")

var ErrNotMarked = errors.New("attendance not marked for session")

// Attendee is the sole persisted entity: one registrant for one program year.
type Attendee struct {
	ID           string
	FirstName    string
	LastName     string
	Phone        string
	Email        string
	Address      string
	Year         int
	Attendance   []int
	Unsubscribed bool
	CreatedAt    time.Time
}

// Attended reports whether the given session is in the attendance set.
func (a *Attendee) Attended(session SessionID) bool {
	for _, s := range a.Attendance {
		if s == int(session) {
			return true
		}
	}
	return false
}

type CreateParams struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Address   string
	Year      int
}

// Repository is the persistence contract for attendee records. The store owns
// the email uniqueness constraint and atomicity of individual record writes.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Attendee, error)
	FindByEmail(ctx context.Context, email string) (*Attendee, error)
	FindByEmailYear(ctx context.Context, email string, year int) (*Attendee, error)
	FindByID(ctx context.Context, id string) (*Attendee, error)
	FindBySessionYear(ctx context.Context, session int, year int) ([]Attendee, error)
	FindByYear(ctx context.Context, year int) ([]Attendee, error)
	FindNoAttendance(ctx context.Context, year int) ([]Attendee, error)
	FindSubscribed(ctx context.Context) ([]Attendee, error)
	AddSession(ctx context.Context, id string, session int) error
	RemoveSession(ctx context.Context, id string, session int) error
	Unsubscribe(ctx context.Context, id string) error
}
