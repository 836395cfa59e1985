package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AuthAdminClient talks to the GoTrue admin API with the service role key.
// Account provisioning is the only consumer; end-user authentication stays
// on the Supabase-issued JWTs verified by the middleware.
type AuthAdminClient struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

type AuthUser struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
}

type CreateUserRequest struct {
	Email        string                 `json:"email"`
	Password     string                 `json:"password"`
	EmailConfirm bool                   `json:"email_confirm"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
}

func NewAuthAdminClient(supabaseURL, serviceRoleKey string) *AuthAdminClient {
	return &AuthAdminClient{
		baseURL:    strings.TrimSuffix(supabaseURL, "/") + "/auth/v1",
		serviceKey: serviceRoleKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FindUserByEmail returns the matching user or nil when the email is
// unknown.
func (c *AuthAdminClient) FindUserByEmail(ctx context.Context, email string) (*AuthUser, error) {
	endpoint := c.baseURL + "/admin/users?filter=" + url.QueryEscape(email)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to list users: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Users []AuthUser `json:"users"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// The filter is a fuzzy match server-side; confirm the exact email.
	for i := range result.Users {
		if strings.EqualFold(result.Users[i].Email, email) {
			return &result.Users[i], nil
		}
	}
	return nil, nil
}

func (c *AuthAdminClient) CreateUser(ctx context.Context, createReq CreateUserRequest) (*AuthUser, error) {
	body, err := json.Marshal(createReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/users", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("failed to create user: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var user AuthUser
	if err := json.Unmarshal(respBody, &user); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("user id is empty in response, body: %s", string(respBody))
	}

	return &user, nil
}

func (c *AuthAdminClient) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
}
