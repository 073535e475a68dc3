package models

import (
	"errors"
	"time"
)

// ErrUserNotFound indicates the numeric user ID did not resolve to any
// GitHub account. It aborts the whole lookup; nothing partial is returned.
var ErrUserNotFound = errors.New("github user not found")

// LookupRequest identifies the user to resolve emails for. A request carries
// either a username or a numeric GitHub user ID, never both; use
// NewUsernameLookup or NewIDLookup so the invariant holds by construction.
type LookupRequest struct {
	username string
	userID   int64
	byID     bool

	// Token enables the authenticated profile-email lookup and raises API
	// rate limits. Optional.
	Token string

	// Repository overrides automatic repository selection for the commit
	// history scan. Accepts "owner/name" or a bare name owned by the
	// resolved user. Optional.
	Repository string
}

// NewUsernameLookup creates a request for a known username.
func NewUsernameLookup(username string) *LookupRequest {
	return &LookupRequest{username: username}
}

// NewIDLookup creates a request that resolves the username from a numeric
// GitHub user ID first.
func NewIDLookup(id int64) *LookupRequest {
	return &LookupRequest{userID: id, byID: true}
}

// Username returns the known username, or false if the request is ID-based.
func (r *LookupRequest) Username() (string, bool) {
	if r.byID {
		return "", false
	}
	return r.username, true
}

// UserID returns the numeric user ID, or false if the username is known.
func (r *LookupRequest) UserID() (int64, bool) {
	if !r.byID {
		return 0, false
	}
	return r.userID, true
}

// CommitIdentity is an author or committer identity as it appears on a
// commit. It only exists while aggregating commit history; the date is
// dropped before the identity reaches an EmailResult.
type CommitIdentity struct {
	Name  string
	Email string
	Date  time.Time
}

// CommitEntry is a deduplicated committer identity in an EmailResult.
type CommitEntry struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EmailResult is the aggregated outcome of one lookup. Pointer fields are
// nil when the source had nothing; slices are empty, not nil, so they
// serialize as [] rather than null.
type EmailResult struct {
	Username       string        `json:"username"`
	GitHub         *string       `json:"github"`
	NPM            *string       `json:"npm"`
	RecentActivity []string      `json:"recentActivity"`
	RecentCommits  []CommitEntry `json:"recentCommits"`
}

// NewEmailResult creates an empty result for a resolved username.
func NewEmailResult(username string) *EmailResult {
	return &EmailResult{
		Username:       username,
		RecentActivity: []string{},
		RecentCommits:  []CommitEntry{},
	}
}
