package httpapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/stretchr/testify/require"
)

func TestRequireAuth_MissingHeader(t *testing.T) {
	s := newTestServer(&fakeUsers{}, &fakeTasks{})

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc"},
		{"no space after scheme", "Bearerabc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, payload := do(t, s, http.MethodGet, "/api/v1/user/me", tt.header, "")
			require.Equal(t, http.StatusUnauthorized, status)
			require.Equal(t, false, payload["success"])
			require.Equal(t, "Not authorized, token missing", payload["message"])
		})
	}
}

func TestRequireAuth_BadToken(t *testing.T) {
	s := newTestServer(&fakeUsers{}, &fakeTasks{})

	wrongKey, err := auth.GenerateToken("alice-id", []byte("other-secret"), time.Hour)
	require.NoError(t, err)
	expired, err := auth.GenerateToken("alice-id", []byte(testSecret), -time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong key", wrongKey},
		{"expired", expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, payload := do(t, s, http.MethodGet, "/api/v1/user/me", "Bearer "+tt.token, "")
			require.Equal(t, http.StatusUnauthorized, status)
			require.Equal(t, "Invalid or expired token", payload["message"])
		})
	}
}

// A token whose subject no longer exists must produce the same response as a
// bad token.
func TestRequireAuth_UnknownSubjectIndistinguishable(t *testing.T) {
	users := &fakeUsers{
		getByIDFn: func(ctx context.Context, id string) (*models.User, error) {
			return nil, common.ErrorNotFound
		},
	}
	s := newTestServer(users, &fakeTasks{})

	status, payload := do(t, s, http.MethodGet, "/api/v1/user/me", bearerFor(t, "ghost-id"), "")
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Invalid or expired token", payload["message"])
}

func TestRequireAuth_AttachesPrincipal(t *testing.T) {
	users := &fakeUsers{
		getByIDFn: func(ctx context.Context, id string) (*models.User, error) {
			return &models.User{ID: id, Name: "Alice", Email: "alice@example.com"}, nil
		},
	}
	tasks := &fakeTasks{
		listFn: func(ctx context.Context, ownerID string) ([]*models.Task, error) {
			require.Equal(t, "alice-id", ownerID)
			return nil, nil
		},
	}
	s := newTestServer(users, tasks)

	status, _ := do(t, s, http.MethodGet, "/api/v1/tasks/gp", bearerFor(t, "alice-id"), "")
	require.Equal(t, http.StatusOK, status)
}
