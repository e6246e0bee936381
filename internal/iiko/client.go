// Package iiko talks to the iiko cloud API and flattens its nomenclature
// into storefront catalog items.
package iiko

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the public iiko cloud endpoint.
const DefaultBaseURL = "https://api-ru.iiko.services"

// Client is a thin iiko cloud API client. Every call chain starts with an
// access token exchange for the configured API login.
type Client struct {
	baseURL  string
	apiLogin string
	client   *http.Client
}

// New builds a client. An empty baseURL falls back to DefaultBaseURL.
func New(baseURL, apiLogin string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{baseURL: baseURL, apiLogin: apiLogin, client: client}
}

type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TerminalGroup struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organizationId"`
	Name           string `json:"name"`
	IsActive       bool   `json:"isActive"`
}

// AccessToken exchanges the API login for a bearer token.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	var resp struct {
		Token       string `json:"token"`
		AccessToken string `json:"accessToken"`
	}
	err := c.post(ctx, "/api/1/access_token", "", map[string]string{"apiLogin": c.apiLogin}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Token != "" {
		return resp.Token, nil
	}
	return resp.AccessToken, nil
}

// Organizations lists the organizations visible to the API login.
func (c *Client) Organizations(ctx context.Context, token string) ([]Organization, error) {
	var resp struct {
		Organizations []Organization `json:"organizations"`
	}
	if err := c.post(ctx, "/api/1/organizations", token, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return resp.Organizations, nil
}

// TerminalGroups lists terminal groups for the given organizations.
func (c *Client) TerminalGroups(ctx context.Context, token string, organizationIDs []string) ([]TerminalGroup, error) {
	body := map[string]interface{}{
		"organizationIds":        organizationIDs,
		"returnAdditionalInfo":   false,
		"includeExternalDeleted": false,
	}
	var resp struct {
		TerminalGroups []TerminalGroup `json:"terminalGroups"`
	}
	if err := c.post(ctx, "/api/1/terminal_groups", token, body, &resp); err != nil {
		return nil, err
	}
	return resp.TerminalGroups, nil
}

// Nomenclature fetches the raw menu for one organization.
func (c *Client) Nomenclature(ctx context.Context, token, organizationID string) (*Nomenclature, error) {
	var resp Nomenclature
	body := map[string]string{"organizationId": organizationID}
	if err := c.post(ctx, "/api/1/nomenclature", token, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path, token string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s failed with status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 8<<20)).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
