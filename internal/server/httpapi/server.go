// Package httpapi exposes the account and task operations over HTTP with a
// uniform JSON envelope. Routing uses net/http method patterns; the session
// gate in middleware.go guards everything below /api/v1 except register and
// login.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
)

// UserService is the slice of the account service the transport needs.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id, name, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, currentPassword, newPassword string) error
}

// TaskService is the slice of the task service the transport needs.
type TaskService interface {
	Create(ctx context.Context, ownerID string, p services.CreateTaskParams) (*models.Task, error)
	List(ctx context.Context, ownerID string) ([]*models.Task, error)
	Get(ctx context.Context, id, ownerID string) (*models.Task, error)
	Update(ctx context.Context, id, ownerID string, p services.UpdateTaskParams) (*models.Task, error)
	Delete(ctx context.Context, id, ownerID string) error
}

type Server struct {
	address   string
	logger    logging.Logger
	users     UserService
	tasks     TaskService
	jwtSecret []byte
}

func NewServer(address string, logger logging.Logger, users UserService, tasks TaskService, secretKey string) *Server {
	return &Server{
		address:   address,
		logger:    logger,
		users:     users,
		tasks:     tasks,
		jwtSecret: []byte(secretKey),
	}
}

// Handler builds the full route table wrapped in the request logger.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)

	mux.HandleFunc("POST /api/v1/user/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/user/login", s.handleLogin)
	mux.HandleFunc("GET /api/v1/user/me", s.requireAuth(s.handleCurrentUser))
	mux.HandleFunc("PUT /api/v1/user/profile", s.requireAuth(s.handleUpdateProfile))
	mux.HandleFunc("PUT /api/v1/user/password", s.requireAuth(s.handleUpdatePassword))

	mux.HandleFunc("GET /api/v1/tasks/gp", s.requireAuth(s.handleListTasks))
	mux.HandleFunc("POST /api/v1/tasks/gp", s.requireAuth(s.handleCreateTask))
	mux.HandleFunc("GET /api/v1/tasks/{id}/gp", s.requireAuth(s.handleGetTask))
	mux.HandleFunc("PUT /api/v1/tasks/{id}/gp", s.requireAuth(s.handleUpdateTask))
	mux.HandleFunc("DELETE /api/v1/tasks/{id}/gp", s.requireAuth(s.handleDeleteTask))

	return s.logRequests(mux)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "API is running..."})
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.address,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "http server shutdown", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "http server listening", "address", s.address)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
