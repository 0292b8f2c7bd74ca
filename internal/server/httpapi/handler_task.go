package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
)

// apiDate accepts either a full RFC 3339 timestamp or a bare YYYY-MM-DD date.
type apiDate struct {
	time.Time
}

func (d *apiDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

// createTaskRequest mirrors the client payload. Completed stays untyped so
// both the boolean and the "Yes" spelling reach the normalizer.
type createTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	DueDate     *apiDate `json:"dueDate"`
	Completed   any      `json:"completed"`
}

// updateTaskRequest is a partial update; absent fields stay nil.
type updateTaskRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Priority    *string  `json:"priority"`
	DueDate     *apiDate `json:"dueDate"`
	Completed   any      `json:"completed"`
}

func dueDateValue(d *apiDate) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		s.writeError(r.Context(), w, common.ErrorUnauthorized)
		return
	}

	tasks, err := s.tasks.List(r.Context(), principal.ID)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, tasksResponse{
		envelope: envelope{Success: true},
		Tasks:    newTaskViews(tasks),
	})
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		s.writeError(r.Context(), w, common.ErrorUnauthorized)
		return
	}

	var req createTaskRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	task, err := s.tasks.Create(r.Context(), principal.ID, services.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     dueDateValue(req.DueDate),
		Completed:   req.Completed,
	})
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, taskResponse{
		envelope: envelope{Success: true, Message: "Task created successfully."},
		Task:     newTaskView(task),
	})
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		s.writeError(r.Context(), w, common.ErrorUnauthorized)
		return
	}

	task, err := s.tasks.Get(r.Context(), r.PathValue("id"), principal.ID)
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, taskResponse{
		envelope: envelope{Success: true},
		Task:     newTaskView(task),
	})
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		s.writeError(r.Context(), w, common.ErrorUnauthorized)
		return
	}

	var req updateTaskRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	task, err := s.tasks.Update(r.Context(), r.PathValue("id"), principal.ID, services.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     dueDateValue(req.DueDate),
		Completed:   req.Completed,
	})
	if err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, taskResponse{
		envelope: envelope{Success: true, Message: "Task updated successfully."},
		Task:     newTaskView(task),
	})
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		s.writeError(r.Context(), w, common.ErrorUnauthorized)
		return
	}

	if err := s.tasks.Delete(r.Context(), r.PathValue("id"), principal.ID); err != nil {
		s.writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Task deleted successfully."})
}
