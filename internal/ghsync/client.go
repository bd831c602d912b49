package ghsync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// requestTimeout bounds each tracker API call.
const requestTimeout = 10 * time.Second

// Client is the authenticated GitHub API client for outbound calls. It is
// the only component that talks to the tracker.
type Client struct {
	gh *github.Client
}

// NewClient creates a GitHub client authenticated with a personal access
// token or app installation token.
func NewClient(token string) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	return &Client{gh: github.NewClient(tc)}
}

// SetIssueState patches one issue to the given open/closed state and returns
// the state GitHub reports back.
func (c *Client) SetIssueState(ctx context.Context, owner, repo string, number int, state string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	issue, _, err := c.gh.Issues.Edit(ctx, owner, repo, number, &github.IssueRequest{
		State: github.String(state),
	})
	if err != nil {
		return "", fmt.Errorf("ghsync: edit %s/%s#%d: %w", owner, repo, number, err)
	}
	return issue.GetState(), nil
}

// IssueState reads one issue's current open/closed state. Used by the drift
// sweep.
func (c *Client) IssueState(ctx context.Context, owner, repo string, number int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	issue, _, err := c.gh.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		return "", fmt.Errorf("ghsync: get %s/%s#%d: %w", owner, repo, number, err)
	}
	return issue.GetState(), nil
}
