// Package descope fetches per-user outbound-application tokens from the
// Descope management API. Users connect third-party accounts (Google
// Calendar) through Descope; this broker retrieves the resulting OAuth
// access token on their behalf.
package descope

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var calendarScopes = []string{
	"https://www.googleapis.com/auth/calendar.app.created",
	"https://www.googleapis.com/auth/calendar.calendarlist.readonly",
}

// ErrNotConnected means the user has no outbound-app connection (or it can
// no longer be refreshed); the caller should instruct them to reconnect.
var ErrNotConnected = errors.New("calendar connection not found")

type TokenBroker struct {
	projectID     string
	managementKey string
	baseURL       string
	httpClient    *http.Client
}

func NewTokenBroker(projectID, managementKey, baseURL string) *TokenBroker {
	return &TokenBroker{
		projectID:     projectID,
		managementKey: managementKey,
		baseURL:       baseURL,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

// UserAccessToken fetches the latest stored token for the user and, when that
// fails, retries once with a forced refresh. The token member arrives either
// as a bare string or as an object exposing accessToken / access_token.
func (b *TokenBroker) UserAccessToken(ctx context.Context, appID, userID string) (string, error) {
	if b.projectID == "" || b.managementKey == "" {
		return "", errors.New("descope management credentials not configured")
	}

	token, err := b.fetchToken(ctx, "/v1/mgmt/outbound/app/user/token/latest", map[string]any{
		"appId":  appID,
		"userId": userID,
		"options": map[string]any{
			"withRefreshToken": false,
			"forceRefresh":     false,
		},
	})
	if err == nil {
		return token, nil
	}

	return b.fetchToken(ctx, "/v1/mgmt/outbound/app/user/token", map[string]any{
		"appId":  appID,
		"userId": userID,
		"scopes": calendarScopes,
		"options": map[string]any{
			"withRefreshToken": false,
			"forceRefresh":     true,
		},
	})
}

func (b *TokenBroker) fetchToken(ctx context.Context, path string, body map[string]any) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.projectID+":"+b.managementKey)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("descope token fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrNotConnected
	}
	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("descope token fetch: status %d: %s", resp.StatusCode, detail)
	}

	var response struct {
		Token json.RawMessage `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("descope token fetch: decode: %w", err)
	}

	token, err := normalizeToken(response.Token)
	if err != nil {
		return "", err
	}
	return token, nil
}

func normalizeToken(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", ErrNotConnected
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if strings.TrimSpace(asString) == "" {
			return "", ErrNotConnected
		}
		return asString, nil
	}

	var asObject struct {
		AccessToken      string `json:"accessToken"`
		AccessTokenSnake string `json:"access_token"`
	}
	if err := json.Unmarshal(raw, &asObject); err != nil {
		return "", fmt.Errorf("descope token fetch: unexpected token shape")
	}
	token := asObject.AccessToken
	if token == "" {
		token = asObject.AccessTokenSnake
	}
	if strings.TrimSpace(token) == "" {
		return "", ErrNotConnected
	}
	return token, nil
}
