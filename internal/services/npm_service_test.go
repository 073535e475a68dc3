package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNPMService(t *testing.T, handler http.HandlerFunc) *NPMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewNPMService(server.URL + "/registry/_users/org.couchdb.user:")
}

func TestNPMEmail(t *testing.T) {
	t.Run("Email on file", func(t *testing.T) {
		service := newTestNPMService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/registry/_users/org.couchdb.user:octocat", r.URL.Path)
			assert.Empty(t, r.Header.Get("Authorization"), "registry calls are never authenticated")
			fmt.Fprint(w, `{"name":"octocat","email":"octo@example.com"}`)
		})

		email, err := service.Email(context.Background(), "octocat")
		require.NoError(t, err)
		require.NotNil(t, email)
		assert.Equal(t, "octo@example.com", *email)
	})

	t.Run("Unknown user yields absent", func(t *testing.T) {
		service := newTestNPMService(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		})

		email, err := service.Email(context.Background(), "ghost")
		require.NoError(t, err)
		assert.Nil(t, email)
	})

	t.Run("Missing email field yields absent", func(t *testing.T) {
		service := newTestNPMService(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"name":"octocat"}`)
		})

		email, err := service.Email(context.Background(), "octocat")
		require.NoError(t, err)
		assert.Nil(t, email)
	})

	t.Run("Malformed body yields absent", func(t *testing.T) {
		service := newTestNPMService(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `not json`)
		})

		email, err := service.Email(context.Background(), "octocat")
		require.NoError(t, err)
		assert.Nil(t, email)
	})

	t.Run("Server error propagates", func(t *testing.T) {
		service := newTestNPMService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := service.Email(context.Background(), "octocat")
		assert.Error(t, err)
	})
}
