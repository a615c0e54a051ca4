package config

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNoToken indicates no map token could be obtained from any source.
// The map area stays unrendered; the rest of the dashboard is unaffected.
type ErrNoToken struct{}

func (e *ErrNoToken) Error() string {
	return "no map token available from token endpoint or environment"
}

// tokenResponse is the upstream token endpoint's body.
type tokenResponse struct {
	Token string `json:"token"`
}

// ResolveToken obtains the map token: the upstream token endpoint first,
// then the configured/env fallback. Returns *ErrNoToken when neither
// source yields one.
func (c Configuration) ResolveToken(ctx context.Context) (string, error) {
	if c.TokenURL != "" {
		if tok, err := fetchToken(ctx, c.TokenURL); err == nil && tok != "" {
			return tok, nil
		}
	}
	if c.MapboxToken != "" {
		return c.MapboxToken, nil
	}
	return "", &ErrNoToken{}
}

func fetchToken(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from token endpoint", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", err
	}
	return tr.Token, nil
}
