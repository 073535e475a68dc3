package services

import (
	"context"
	"strings"

	"github.com/alperakbas/emailscope/internal/models"
	"github.com/alperakbas/emailscope/pkg/logger"
)

// ResolverService orchestrates the four email lookups for one request.
// Each call builds its own GitHub client so the request token never leaks
// between lookups; the service itself carries only endpoint configuration
// and is safe for concurrent use.
type ResolverService struct {
	githubBaseURL string
	npmService    *NPMService
}

// NewResolverService creates a resolver. githubBaseURL overrides the GitHub
// API endpoint ("" means api.github.com); npmBaseURL is the registry
// user-record prefix.
func NewResolverService(githubBaseURL, npmBaseURL string) *ResolverService {
	return &ResolverService{
		githubBaseURL: githubBaseURL,
		npmService:    NewNPMService(npmBaseURL),
	}
}

// Resolve aggregates the profile, registry, event-stream and commit-history
// signals for the requested user. The call fails outright only when an
// ID-based request resolves to no account, or on a transport failure; every
// per-source 404 just empties that one field.
func (r *ResolverService) Resolve(ctx context.Context, req *models.LookupRequest) (*models.EmailResult, error) {
	githubService, err := NewGitHubService(req.Token, r.githubBaseURL)
	if err != nil {
		return nil, err
	}

	username, err := githubService.ResolveUsername(ctx, req)
	if err != nil {
		return nil, err
	}

	log := logger.WithField("username", username)
	result := models.NewEmailResult(username)

	result.GitHub, err = githubService.ProfileEmail(ctx, username)
	if err != nil {
		return nil, err
	}

	result.NPM, err = r.npmService.Email(ctx, username)
	if err != nil {
		return nil, err
	}

	result.RecentActivity, err = githubService.EventEmails(ctx, username)
	if err != nil {
		return nil, err
	}

	owner, repo, err := r.selectRepository(ctx, githubService, username, req.Repository)
	if err != nil {
		return nil, err
	}
	if repo == "" {
		log.Debug("no repository available, skipping commit scan")
		return result, nil
	}

	result.RecentCommits, err = githubService.CommitIdentities(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	log.WithField("repository", owner+"/"+repo).Debug("lookup complete")
	return result, nil
}

// selectRepository picks the repository to mine for commit identities. An
// explicit override is used verbatim, with bare names attributed to the
// resolved user; otherwise the user's most recently pushed owned repository
// is chosen. An empty repo return means "nothing to mine".
func (r *ResolverService) selectRepository(ctx context.Context, githubService *GitHubService, username, override string) (owner, repo string, err error) {
	repo = override
	if repo == "" {
		repo, err = githubService.MostRecentRepository(ctx, username)
		if err != nil {
			return "", "", err
		}
	}

	owner = username
	if slash := strings.IndexByte(repo, '/'); slash >= 0 {
		owner, repo = repo[:slash], repo[slash+1:]
	}
	return owner, repo, nil
}
