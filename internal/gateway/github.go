// Package gateway provides access to the external collaborators of the application:
// the GitHub API (GraphQL and REST) and the local filesystem.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/profile-stats/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchProfile(ctx context.Context, login string) (*domain.RawStats, error)
	FetchQuota(ctx context.Context) (*domain.Quota, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *zap.Logger
}

type countConnection struct {
	TotalCount int
}

// profileQuery fetches every count the stats card needs in a single round trip.
// Only the first 100 owned repositories, ordered by stars, contribute to the star total.
type profileQuery struct {
	User struct {
		Name                      string
		RepositoriesContributedTo countConnection `graphql:"repositoriesContributedTo(contributionTypes: [COMMIT, ISSUE, PULL_REQUEST, REPOSITORY])"`
		ContributionsCollection   struct {
			TotalCommitContributions            int
			RestrictedContributionsCount        int
			TotalPullRequestContributions       int
			TotalIssueContributions             int
			TotalPullRequestReviewContributions int
		}
		PullRequests countConnection `graphql:"pullRequests(first: 1)"`
		Issues       countConnection `graphql:"issues(first: 1)"`
		Followers    countConnection
		Repositories struct {
			TotalCount int
			Nodes      []struct {
				Stargazers countConnection
			}
		} `graphql:"repositories(first: 100, ownerAffiliations: OWNER, orderBy: {direction: DESC, field: STARGAZERS})"`
	} `graphql:"user(login: $login)"`
}

// Option configures a GitHubGateway.
type Option func(*options)

type options struct {
	rateLimitWait time.Duration
}

// WithRateLimitWait lets the transport sleep up to d when GitHub reports a secondary rate limit.
// The default of zero never sleeps, so a rate-limited request fails like any other.
func WithRateLimitWait(d time.Duration) Option {
	return func(o *options) {
		o.rateLimitWait = d
	}
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger *zap.Logger, opts ...Option) (*GitHubGateway, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	onLimit := func(cbCtx *github_ratelimit.CallbackContext) {
		logger.Warn("secondary rate limit exceeds the configured wait",
			zap.Duration("max_wait", o.rateLimitWait))
	}
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(o.rateLimitWait, onLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

// FetchProfile queries the contribution counts of login and aggregates them.
func (g *GitHubGateway) FetchProfile(ctx context.Context, login string) (*domain.RawStats, error) {
	g.logger.Debug("fetching profile", zap.String("login", login))
	var q profileQuery
	variables := map[string]interface{}{"login": githubv4.String(login)}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for user %q: %w", login, err)
	}

	u := q.User
	stars := 0
	for _, repo := range u.Repositories.Nodes {
		stars += repo.Stargazers.TotalCount
	}
	name := u.Name
	if name == "" {
		name = login
	}
	stats := &domain.RawStats{
		Name:          name,
		Stars:         stars,
		Commits:       u.ContributionsCollection.TotalCommitContributions + u.ContributionsCollection.RestrictedContributionsCount,
		PullRequests:  u.PullRequests.TotalCount,
		Issues:        u.Issues.TotalCount,
		ContributedTo: u.RepositoriesContributedTo.TotalCount,
		Reviews:       u.ContributionsCollection.TotalPullRequestReviewContributions,
		Followers:     u.Followers.TotalCount,
		Repositories:  u.Repositories.TotalCount,
	}
	g.logger.Debug("fetched profile",
		zap.String("login", login),
		zap.Int("repositories", stats.Repositories),
		zap.Int("stars", stats.Stars),
		zap.Int("commits", stats.Commits))
	return stats, nil
}

// FetchQuota reports the remaining GraphQL rate limit using the REST API.
func (g *GitHubGateway) FetchQuota(ctx context.Context) (*domain.Quota, error) {
	limits, _, err := g.restClient.RateLimit.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rate limits with REST API: %w", err)
	}
	if limits == nil || limits.GraphQL == nil {
		return nil, errors.New("rate limit response has no graphql resource")
	}
	rate := limits.GraphQL
	return &domain.Quota{
		Limit:     rate.Limit,
		Remaining: rate.Remaining,
		ResetAt:   rate.Reset.Time,
	}, nil
}
