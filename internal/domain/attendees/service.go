package attendees

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Service implements registration, attendance tracking, and subscription
// state transitions over the attendee store.
//
// The existence check on registration and the subsequent create are two
// separate operations; concurrent registrations racing on the same email rely
// on the store's unique index, whose duplicate-key error is mapped back to
// ErrDuplicateEmail.
type Service struct {
	repo      Repository
	logger    zerolog.Logger
	validator *validator.Validate
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		logger:    logger.With().Str("component", "attendees").Logger(),
		validator: validator.New(),
	}
}

type RegisterParams struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Phone     string `validate:"omitempty"`
	Email     string `validate:"required,email"`
	Address   string `validate:"omitempty"`
	Year      int    `validate:"omitempty,gte=2000"`
}

// Register creates a new attendee record. The year defaults to the current
// calendar year when absent. An existing record with the same email fails
// with ErrDuplicateEmail and causes no side effects.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*Attendee, error) {
	if err := s.validator.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid registration: %w", err)
	}
	if params.Year == 0 {
		params.Year = time.Now().Year()
	}

	existing, err := s.repo.FindByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check existing registration: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	attendee, err := s.repo.Create(ctx, CreateParams{
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Phone:     params.Phone,
		Email:     params.Email,
		Address:   params.Address,
		Year:      params.Year,
	})
	if err != nil {
		// The unique index on email is the backstop for registrations racing
		// between the existence check and the create.
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create attendee: %w", err)
	}

	s.logger.Info().
		Str("attendee_id", attendee.ID).
		Int("year", attendee.Year).
		Msg("attendee registered")
	return attendee, nil
}

// MarkAttendance appends a session to the attendance set of the record keyed
// by (email, year). A session already present fails with ErrAlreadyMarked;
// idempotency is surfaced as an error, not a no-op.
func (s *Service) MarkAttendance(ctx context.Context, email string, year int, session SessionID) error {
	attendee, err := s.repo.FindByEmailYear(ctx, email, year)
	if err != nil {
		return err
	}
	if attendee.Attended(session) {
		return ErrAlreadyMarked
	}
	if err := s.repo.AddSession(ctx, attendee.ID, int(session)); err != nil {
		return fmt.Errorf("add session: %w", err)
	}
	s.logger.Info().
		Str("attendee_id", attendee.ID).
		Int("session", int(session)).
		Msg("attendance marked")
	return nil
}

// RemoveAttendance removes a session from the attendance set. A session not
// present fails with ErrNotMarked.
func (s *Service) RemoveAttendance(ctx context.Context, email string, year int, session SessionID) error {
	attendee, err := s.repo.FindByEmailYear(ctx, email, year)
	if err != nil {
		return err
	}
	if !attendee.Attended(session) {
		return ErrNotMarked
	}
	if err := s.repo.RemoveSession(ctx, attendee.ID, int(session)); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	s.logger.Info().
		Str("attendee_id", attendee.ID).
		Int("session", int(session)).
		Msg("attendance removed")
	return nil
}

// CheckAttendance reports membership of a session in the attendance set for
// the record keyed by (email, year).
func (s *Service) CheckAttendance(ctx context.Context, email string, year int, session SessionID) (bool, error) {
	attendee, err := s.repo.FindByEmailYear(ctx, email, year)
	if err != nil {
		return false, err
	}
	return attendee.Attended(session), nil
}

// BySession lists attendees who attended the given session in the given year.
func (s *Service) BySession(ctx context.Context, session SessionID, year int) ([]Attendee, error) {
	return s.repo.FindBySessionYear(ctx, int(session), year)
}

// ByYear lists all attendees registered for the given year.
func (s *Service) ByYear(ctx context.Context, year int) ([]Attendee, error) {
	return s.repo.FindByYear(ctx, year)
}

// NoAttendance lists attendees of the given year whose attendance set is empty.
func (s *Service) NoAttendance(ctx context.Context, year int) ([]Attendee, error) {
	return s.repo.FindNoAttendance(ctx, year)
}

// Subscribed lists all attendees who have not unsubscribed, across years.
func (s *Service) Subscribed(ctx context.Context) ([]Attendee, error) {
	return s.repo.FindSubscribed(ctx)
}

// Unsubscribe flips the unsubscribed flag to true unconditionally. The
// transition is terminal; no re-subscribe operation exists.
func (s *Service) Unsubscribe(ctx context.Context, id string) error {
	if err := s.repo.Unsubscribe(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("attendee_id", id).Msg("attendee unsubscribed")
	return nil
}
