package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Philip-Ajayi/SHC/internal/api/respond"
	"github.com/Philip-Ajayi/SHC/internal/domain/attendees"
	"github.com/Philip-Ajayi/SHC/internal/metrics"
)

// ConfirmationSender sends the post-registration confirmation email.
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, to, firstName string, year int) error
}

type AttendeesHandler struct {
	Service *attendees.Service
	Email   ConfirmationSender
	Env     string
}

func NewAttendeesHandler(service *attendees.Service, email ConfirmationSender, env string) *AttendeesHandler {
	return &AttendeesHandler{Service: service, Email: email, Env: env}
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Year      int    `json:"year"`
}

// Register creates the attendee record, then attempts the confirmation
// email. Email failure is non-fatal: the record is already persisted, so the
// response degrades to a success with a warning rather than rolling back.
func (h *AttendeesHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, r, http.StatusBadRequest, "Invalid request body", err, h.Env)
		return
	}

	attendee, err := h.Service.Register(r.Context(), attendees.RegisterParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		Year:      req.Year,
	})
	if err != nil {
		if errors.Is(err, attendees.ErrDuplicateEmail) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			respond.Message(w, r, http.StatusBadRequest, "User already registered", err, h.Env)
			return
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		respond.Message(w, r, http.StatusInternalServerError, "Registration failed", err, h.Env)
		return
	}
	metrics.RegistrationsTotal.WithLabelValues("registered").Inc()

	if err := h.Email.SendConfirmation(r.Context(), attendee.Email, attendee.FirstName, attendee.Year); err != nil {
		respond.Message(w, r, http.StatusOK, "Registered successfully, but confirmation email could not be sent", err, h.Env)
		return
	}

	respond.Message(w, r, http.StatusOK, "Registered successfully", nil, h.Env)
}

type attendanceRequest struct {
	Email   string              `json:"email"`
	Session attendees.SessionID `json:"session"`
	Year    int                 `json:"year"`
}

func (req *attendanceRequest) normalize() {
	req.Email = strings.TrimSpace(req.Email)
	if req.Year == 0 {
		req.Year = time.Now().Year()
	}
}

func (h *AttendeesHandler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, r, http.StatusBadRequest, "Invalid request body", err, h.Env)
		return
	}
	req.normalize()

	err := h.Service.MarkAttendance(r.Context(), req.Email, req.Year, req.Session)
	switch {
	case errors.Is(err, attendees.ErrNotFound):
		respond.Message(w, r, http.StatusNotFound, "User not found", err, h.Env)
	case errors.Is(err, attendees.ErrAlreadyMarked):
		respond.Message(w, r, http.StatusBadRequest, "Attendance already marked for this session", err, h.Env)
	case err != nil:
		respond.Message(w, r, http.StatusInternalServerError, "Unable to mark attendance", err, h.Env)
	default:
		respond.Message(w, r, http.StatusOK, "Attendance marked", nil, h.Env)
	}
}

func (h *AttendeesHandler) RemoveAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, r, http.StatusBadRequest, "Invalid request body", err, h.Env)
		return
	}
	req.normalize()

	err := h.Service.RemoveAttendance(r.Context(), req.Email, req.Year, req.Session)
	switch {
	case errors.Is(err, attendees.ErrNotFound):
		respond.Message(w, r, http.StatusNotFound, "User not found", err, h.Env)
	case errors.Is(err, attendees.ErrNotMarked):
		respond.Message(w, r, http.StatusBadRequest, "Attendance not marked for this session", err, h.Env)
	case err != nil:
		respond.Message(w, r, http.StatusInternalServerError, "Unable to remove attendance", err, h.Env)
	default:
		respond.Message(w, r, http.StatusOK, "Attendance removed", nil, h.Env)
	}
}

// CheckAttendance is the read-only membership test. The session arrives as
// query-string text and goes through the same canonical normalization as the
// body-typed mark/remove paths.
func (h *AttendeesHandler) CheckAttendance(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	address := strings.TrimSpace(query.Get("email"))
	if address == "" {
		respond.Message(w, r, http.StatusBadRequest, "email is required", errors.New("missing email"), h.Env)
		return
	}

	session, err := attendees.ParseSessionID(query.Get("session"))
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, "Invalid session", err, h.Env)
		return
	}

	year, err := yearOrCurrent(query.Get("year"))
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, "Invalid year", err, h.Env)
		return
	}

	marked, err := h.Service.CheckAttendance(r.Context(), address, year, session)
	if err != nil {
		if errors.Is(err, attendees.ErrNotFound) {
			respond.Message(w, r, http.StatusNotFound, "User not found", err, h.Env)
			return
		}
		respond.Message(w, r, http.StatusInternalServerError, "Unable to check attendance", err, h.Env)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]bool{"attendanceMarked": marked})
}

type usersResponse struct {
	Users []userJSON `json:"users"`
}

type userJSON struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	Year         int    `json:"year"`
	Attendance   []int  `json:"attendance"`
	Unsubscribed bool   `json:"unsubscribed"`
}

func toUsersResponse(list []attendees.Attendee) usersResponse {
	users := make([]userJSON, 0, len(list))
	for _, a := range list {
		users = append(users, userJSON{
			ID:           a.ID,
			FirstName:    a.FirstName,
			LastName:     a.LastName,
			Phone:        a.Phone,
			Email:        a.Email,
			Address:      a.Address,
			Year:         a.Year,
			Attendance:   a.Attendance,
			Unsubscribed: a.Unsubscribed,
		})
	}
	return usersResponse{Users: users}
}

// BySession lists attendees who attended a session in a year. An empty result
// is a successful empty list.
func (h *AttendeesHandler) BySession(w http.ResponseWriter, r *http.Request) {
	session, err := attendees.ParseSessionID(r.PathValue("session"))
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, "Invalid session", err, h.Env)
		return
	}
	year, err := parseYear(r.PathValue("year"))
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, "Invalid year", err, h.Env)
		return
	}

	list, err := h.Service.BySession(r.Context(), session, year)
	if err != nil {
		respond.Message(w, r, http.StatusInternalServerError, "Unable to list attendees", err, h.Env)
		return
	}
	respond.JSON(w, http.StatusOK, toUsersResponse(list))
}

// ByYear lists all attendees of a year. Unlike the other two list endpoints,
// an empty result is a 404.
func (h *AttendeesHandler) ByYear(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(r.PathValue("year"))
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, "Invalid year", err, h.Env)
		return
	}

	list, err := h.Service.ByYear(r.Context(), year)
	if err != nil {
		respond.Message(w, r, http.StatusInternalServerError, "Unable to list attendees", err, h.Env)
		return
	}
	if len(list) == 0 {
		respond.Message(w, r, http.StatusNotFound, "No users found for this year", nil, h.Env)
		return
	}
	respond.JSON(w, http.StatusOK, toUsersResponse(list))
}

// NoAttendance lists attendees of a year whose attendance set is empty. An
// empty result is a successful empty list.
func (h *AttendeesHandler) NoAttendance(w http.ResponseWriter, r *http.Request) {
	year, err := parseYear(r.PathValue("year"))
	if err != nil {
		respond.Message(w, r, http.StatusBadRequest, "Invalid year", err, h.Env)
		return
	}

	list, err := h.Service.NoAttendance(r.Context(), year)
	if err != nil {
		respond.Message(w, r, http.StatusInternalServerError, "Unable to list attendees", err, h.Env)
		return
	}
	respond.JSON(w, http.StatusOK, toUsersResponse(list))
}

func parseYear(value string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errors.New("year must be numeric")
	}
	return year, nil
}

func yearOrCurrent(value string) (int, error) {
	if strings.TrimSpace(value) == "" {
		return time.Now().Year(), nil
	}
	return parseYear(value)
}
