package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// envelope is the uniform response wrapper; endpoint payloads embed it.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type userView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// taskView is the wire shape of a task. The owner id is included (it is the
// caller's own id by construction); the password-free user views above keep
// the hash out of every payload.
type taskView struct {
	ID          string     `json:"id"`
	Owner       string     `json:"owner"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type userResponse struct {
	envelope
	Token string    `json:"token,omitempty"`
	User  *userView `json:"user,omitempty"`
}

type taskResponse struct {
	envelope
	Task *taskView `json:"task,omitempty"`
}

type tasksResponse struct {
	envelope
	Tasks []*taskView `json:"tasks"`
}

func newUserView(u *models.User) *userView {
	return &userView{ID: u.ID, Name: u.Name, Email: u.Email}
}

func newTaskView(t *models.Task) *taskView {
	return &taskView{
		ID:          t.ID,
		Owner:       t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// newTaskViews never returns nil, so the list endpoint serializes "tasks": [].
func newTaskViews(ts []*models.Task) []*taskView {
	views := make([]*taskView, 0, len(ts))
	for _, t := range ts {
		views = append(views, newTaskView(t))
	}
	return views
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a service failure to the status table and the uniform
// envelope. Unexpected errors become a generic 500; the detail goes to the
// server log only.
func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrorValidation):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		status = http.StatusConflict
	}

	msg := common.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(ctx, "request failed", "error", err.Error())
		msg = "Server error. Please try again later."
	} else if msg == "" {
		msg = http.StatusText(status)
	}

	writeJSON(w, status, envelope{Success: false, Message: msg})
}
