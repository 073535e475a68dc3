package services

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/alperakbas/emailscope/internal/models"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// defaultPageSize is the page size for list calls. Only the first page is
// ever fetched; recent data is enough for a best-effort lookup.
const defaultPageSize = 30

// emailKeyPattern matches `"email":"value"` anywhere in a raw JSON payload.
// Event objects come in too many shapes to model each one; scanning the
// serialized body for the key is intentionally imprecise but catches every
// occurrence regardless of nesting. Do not replace this with a structured
// event parser, the output order and duplicates are part of the contract.
var emailKeyPattern = regexp.MustCompile(`"email"\s*:\s*"([^"]+)"`)

// GitHubService performs all GitHub API lookups for a single token.
type GitHubService struct {
	client        *github.Client
	authenticated bool
}

// NewGitHubService creates a service backed by the given token. An empty
// token yields an unauthenticated client; the profile-email lookup is then
// skipped entirely since GitHub redacts the field anyway. baseURL overrides
// the API endpoint, mainly for tests; empty means api.github.com.
func NewGitHubService(token, baseURL string) (*GitHubService, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	if baseURL != "" {
		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API base URL %q: %w", baseURL, err)
		}
		if !strings.HasSuffix(parsed.Path, "/") {
			parsed.Path += "/"
		}
		client.BaseURL = parsed
	}

	return &GitHubService{
		client:        client,
		authenticated: token != "",
	}, nil
}

// ResolveUsername produces the concrete username for a lookup request.
// A request that already carries a username passes through without any
// network call. An ID-based request resolves via the profile-by-ID endpoint;
// an unknown ID is fatal for the whole lookup.
func (s *GitHubService) ResolveUsername(ctx context.Context, req *models.LookupRequest) (string, error) {
	if username, ok := req.Username(); ok {
		return username, nil
	}

	id, _ := req.UserID()
	user, resp, err := s.client.Users.GetByID(ctx, id)
	if isNotFound(resp, err) {
		return "", fmt.Errorf("user id %d: %w", id, models.ErrUserNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve user id %d: %w", id, err)
	}

	return user.GetLogin(), nil
}

// ProfileEmail returns the public email from the user's GitHub profile, or
// nil if unavailable. Without a token no request is made: the field is
// redacted from unauthenticated responses anyway.
func (s *GitHubService) ProfileEmail(ctx context.Context, username string) (*string, error) {
	if !s.authenticated {
		return nil, nil
	}

	user, resp, err := s.client.Users.Get(ctx, username)
	if isNotFound(resp, err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile for %s: %w", username, err)
	}

	if email := user.GetEmail(); email != "" {
		return &email, nil
	}
	return nil, nil
}

// EventEmails scans the user's recent public event feed and returns every
// email appearing under a literal "email" key, in payload order, duplicates
// preserved. The feed is fetched raw and never parsed as JSON.
func (s *GitHubService) EventEmails(ctx context.Context, username string) ([]string, error) {
	req, err := s.client.NewRequest(http.MethodGet, fmt.Sprintf("users/%s/events", username), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build events request for %s: %w", username, err)
	}

	var body bytes.Buffer
	resp, err := s.client.Do(ctx, req, &body)
	if isNotFound(resp, err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events for %s: %w", username, err)
	}

	emails := []string{}
	for _, match := range emailKeyPattern.FindAllSubmatch(body.Bytes(), -1) {
		emails = append(emails, string(match[1]))
	}
	return emails, nil
}

// MostRecentRepository returns the name of the user's most recently pushed
// owned repository, or "" when the user owns none. "" is not an error; the
// commit scan simply has nothing to mine.
func (s *GitHubService) MostRecentRepository(ctx context.Context, username string) (string, error) {
	opt := &github.RepositoryListOptions{
		Type:        "owner",
		Sort:        "pushed",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: defaultPageSize},
	}

	repos, resp, err := s.client.Repositories.List(ctx, username, opt)
	if isNotFound(resp, err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to list repositories for %s: %w", username, err)
	}
	if len(repos) == 0 {
		return "", nil
	}

	return repos[0].GetName(), nil
}

// CommitIdentities mines the repository's most recent commits (newest first)
// for distinct author/committer identities. Identities deduplicate by display
// name, first occurrence wins, so the newest commit's email is the one kept
// even when an older commit pairs the same name with a different address.
// Survivors are ordered by timestamp descending; the sort is stable, so
// insertion order (already newest-first) breaks ties.
func (s *GitHubService) CommitIdentities(ctx context.Context, owner, repo string) ([]models.CommitEntry, error) {
	opt := &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: defaultPageSize},
	}

	commits, resp, err := s.client.Repositories.ListCommits(ctx, owner, repo, opt)
	if isNotFound(resp, err) {
		return []models.CommitEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list commits for %s/%s: %w", owner, repo, err)
	}

	seen := make(map[string]struct{})
	identities := []models.CommitIdentity{}
	for _, repoCommit := range commits {
		commit := repoCommit.GetCommit()
		if commit == nil {
			continue
		}
		for _, author := range []*github.CommitAuthor{commit.GetAuthor(), commit.GetCommitter()} {
			if author == nil {
				continue
			}
			name := author.GetName()
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			identities = append(identities, models.CommitIdentity{
				Name:  name,
				Email: author.GetEmail(),
				Date:  author.GetDate().Time,
			})
		}
	}

	sort.SliceStable(identities, func(i, j int) bool {
		return identities[i].Date.After(identities[j].Date)
	})

	entries := make([]models.CommitEntry, 0, len(identities))
	for _, identity := range identities {
		entries = append(entries, models.CommitEntry{Name: identity.Name, Email: identity.Email})
	}
	return entries, nil
}

// isNotFound reports whether a GitHub API call failed with HTTP 404.
func isNotFound(resp *github.Response, err error) bool {
	return err != nil && resp != nil && resp.StatusCode == http.StatusNotFound
}
