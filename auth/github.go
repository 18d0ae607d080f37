// Package auth implements the GitHub OAuth callback that hands a user's
// token and profile back to the frontend.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

// GitHub OAuth constants.
const (
	defaultAuthURL = "https://github.com/login/oauth/authorize"
	//nolint:gosec // G101: Not credentials, OAuth endpoint URL
	defaultTokenURL = "https://github.com/login/oauth/access_token"

	DefaultTimeout = 15 * time.Second
)

var (
	ErrMissingCode      = errors.New("missing oauth code")
	ErrNotConfigured    = errors.New("github oauth is not configured")
	ErrEmptyAccessToken = errors.New("github returned an empty access token")
)

type GitHubAuth struct {
	oauth       *oauth2.Config
	frontendURL string
	apiBaseURL  string
	timeout     time.Duration
}

type Option func(*GitHubAuth)

// WithEndpoint overrides GitHub's OAuth endpoints.
func WithEndpoint(authURL, tokenURL string) Option {
	return func(a *GitHubAuth) {
		a.oauth.Endpoint.AuthURL = authURL
		a.oauth.Endpoint.TokenURL = tokenURL
	}
}

// WithAPIBaseURL overrides the GitHub REST API base url.
func WithAPIBaseURL(u string) Option {
	return func(a *GitHubAuth) {
		a.apiBaseURL = u
	}
}

func WithTimeout(d time.Duration) Option {
	return func(a *GitHubAuth) {
		a.timeout = d
	}
}

func NewGitHubAuth(clientID, clientSecret, frontendURL string, opts ...Option) *GitHubAuth {
	a := &GitHubAuth{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:   defaultAuthURL,
				TokenURL:  defaultTokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
			Scopes: []string{"read:user"},
		},
		frontendURL: strings.TrimRight(frontendURL, "/"),
		timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *GitHubAuth) Configured() bool {
	return a.oauth.ClientID != "" && a.oauth.ClientSecret != ""
}

// AuthURL is where the frontend sends users to start the flow.
func (a *GitHubAuth) AuthURL(state string) string {
	return a.oauth.AuthCodeURL(state)
}

func (a *GitHubAuth) client(ctx context.Context, token *oauth2.Token) (*gh.Client, error) {
	tc := a.oauth.Client(ctx, token)
	tc.Timeout = a.timeout
	client := gh.NewClient(tc)
	if a.apiBaseURL != "" {
		base, err := url.Parse(strings.TrimRight(a.apiBaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid github api url: %w", err)
		}
		client.BaseURL = base
	}
	return client, nil
}

// Callback exchanges code for an access token, loads the GitHub user and
// returns the frontend url carrying both.
func (a *GitHubAuth) Callback(ctx context.Context, code string) (string, error) {
	if !a.Configured() {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(code) == "" {
		return "", ErrMissingCode
	}

	token, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchange code: %w", err)
	}
	if token.AccessToken == "" {
		return "", ErrEmptyAccessToken
	}

	client, err := a.client(ctx, token)
	if err != nil {
		return "", err
	}
	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("get github user: %w", err)
	}
	data, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("marshal github user: %w", err)
	}

	q := url.Values{}
	q.Set("token", token.AccessToken)
	q.Set("data", string(data))
	return fmt.Sprintf("%s/github/callback?%s", a.frontendURL, q.Encode()), nil
}
