package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alperakbas/emailscope/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, github http.Handler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	githubServer := httptest.NewServer(github)
	t.Cleanup(githubServer.Close)

	npmServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
	}))
	t.Cleanup(npmServer.Close)

	resolverService := services.NewResolverService(githubServer.URL, npmServer.URL+"/-/user/org.couchdb.user:")

	router := gin.New()
	router.GET("/api/v1/lookup", NewLookupHandler(resolverService, "").Lookup)
	return router
}

func TestLookupHandler(t *testing.T) {
	t.Run("Successful lookup", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/users/octocat/events", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[{"payload":{"email":"seen@example.com"}}]`)
		})
		mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[]`)
		})
		router := newTestRouter(t, mux)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/lookup?username=octocat", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "octocat", body["username"])
		assert.Nil(t, body["github"], "no token, no profile email")
		assert.Equal(t, []interface{}{"seen@example.com"}, body["recentActivity"])
		assert.Equal(t, []interface{}{}, body["recentCommits"])
	})

	t.Run("Unknown ID returns 404", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/user/999999", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
		})
		router := newTestRouter(t, mux)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/lookup?id=999999", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Parameter validation", func(t *testing.T) {
		router := newTestRouter(t, http.NewServeMux())

		cases := []struct {
			name  string
			query string
		}{
			{"Neither username nor id", ""},
			{"Both username and id", "?username=octocat&id=1"},
			{"Non-numeric id", "?id=abc"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				w := httptest.NewRecorder()
				req, _ := http.NewRequest(http.MethodGet, "/api/v1/lookup"+tc.query, nil)
				router.ServeHTTP(w, req)

				assert.Equal(t, http.StatusBadRequest, w.Code)
			})
		}
	})
}
