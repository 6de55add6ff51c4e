package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	userPathTemplate = "%s/api/users/%d"
	maxErrorBody     = 512
)

// TokenSource returns the bearer token for the current session.
type TokenSource func() string

type httpResolver struct {
	baseURL string
	token   TokenSource
	client  *http.Client
}

type userResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	FullName    string `json:"fullName"`
}

func (u userResponse) name() string {
	for _, n := range []string{u.DisplayName, u.FullName, u.Username} {
		if s := strings.TrimSpace(n); s != "" {
			return s
		}
	}
	return ""
}

// NewHTTPResolver resolves names with GET {baseURL}/api/users/{id}.
func NewHTTPResolver(baseURL string, timeout time.Duration, token TokenSource) Resolver {
	return &httpResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}
}

func (r *httpResolver) ResolveName(ctx context.Context, userID int64) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(userPathTemplate, r.baseURL, userID), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.token != nil {
		if tok := r.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("user %d: %w", userID, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("users api returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var u userResponse
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return "", fmt.Errorf("failed to decode user: %w", err)
	}
	name := u.name()
	if name == "" {
		return "", fmt.Errorf("user %d has no name: %w", userID, ErrNotFound)
	}
	return name, nil
}
