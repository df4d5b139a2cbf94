package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const githubAPIBase = "https://api.github.com"

// GitHubUser represents the subset of the GitHub user payload the site shows
type GitHubUser struct {
	Login       string `json:"login"`
	AvatarURL   string `json:"avatar_url"`
	HTMLURL     string `json:"html_url"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	Bio         string `json:"bio"`
}

// GitHubRepo represents the subset of the GitHub repo payload the site shows
type GitHubRepo struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Stars       int      `json:"stargazers_count"`
	Forks       int      `json:"forks_count"`
	OpenIssues  int      `json:"open_issues_count"`
	Language    string   `json:"language"`
	PushedAt    string   `json:"pushed_at"`
	HTMLURL     string   `json:"html_url"`
	Topics      []string `json:"topics"`
}

// GitHubStats is the aggregated response for the stats endpoint
type GitHubStats struct {
	User   GitHubUser   `json:"user"`
	Repos  []GitHubRepo `json:"repos"`
	Totals struct {
		Stars int `json:"stars"`
		Forks int `json:"forks"`
		Repos int `json:"repos"`
	} `json:"totals"`
}

// GitHubClient fetches public profile statistics from the GitHub REST API.
// It is entirely independent of the content store.
type GitHubClient struct {
	httpClient *http.Client
	username   string
	token      string
	logger     zerolog.Logger
}

func NewGitHubClient(username, token string) *GitHubClient {
	logger := log.With().Str("serviceName", "githubClient").Logger()

	return &GitHubClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		username:   username,
		token:      token,
		logger:     logger,
	}
}

// Stats fetches the user profile and repositories and aggregates the totals.
func (c *GitHubClient) Stats(ctx context.Context) (*GitHubStats, error) {
	var stats GitHubStats

	if err := c.getJSON(ctx, fmt.Sprintf("/users/%s", c.username), &stats.User); err != nil {
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	if err := c.getJSON(ctx, fmt.Sprintf("/users/%s/repos?per_page=100&sort=pushed", c.username), &stats.Repos); err != nil {
		return nil, fmt.Errorf("fetching repos: %w", err)
	}

	for _, repo := range stats.Repos {
		stats.Totals.Stars += repo.Stars
		stats.Totals.Forks += repo.Forks
	}
	stats.Totals.Repos = len(stats.Repos)

	return &stats, nil
}

func (c *GitHubClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, githubAPIBase+path, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	} else {
		c.logger.Warn().Msg("GitHub token is not configured, requests may be rate-limited")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github api returned status %d for %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
