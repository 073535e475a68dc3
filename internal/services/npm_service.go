package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// NPMService looks up the email on file with the npm registry for a given
// username. Registry requests are never authenticated.
type NPMService struct {
	httpClient *http.Client
	baseURL    string
}

type npmUser struct {
	Email string `json:"email"`
}

// NewNPMService creates a registry lookup service. baseURL is the user-record
// endpoint prefix; the username is appended verbatim. The canonical
// registry.npmjs.org user endpoint stopped serving emails years ago, so the
// default configuration points at a CouchDB mirror with the same response
// shape.
func NewNPMService(baseURL string) *NPMService {
	return &NPMService{
		httpClient: http.DefaultClient,
		baseURL:    baseURL,
	}
}

// Email returns the registry email for the username, or nil when the user is
// unknown to the registry or has no email on file.
func (s *NPMService) Email(ctx context.Context, username string) (*string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+url.PathEscape(username), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry request for %s: %w", username, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registry user %s: %w", username, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d for %s", resp.StatusCode, username)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry response for %s: %w", username, err)
	}

	var user npmUser
	if err := json.Unmarshal(body, &user); err != nil {
		// Malformed bodies degrade to absent, same as a missing field.
		return nil, nil
	}

	if user.Email == "" {
		return nil, nil
	}
	return &user.Email, nil
}
