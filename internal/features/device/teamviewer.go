package device

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go-spear/internal/config"
)

// TeamViewerClient is the subset of the TeamViewer Web API the dashboards
// need. Kept as an interface so the sync service can be tested without
// network access.
type TeamViewerClient interface {
	ListDevices(ctx context.Context) ([]RemoteDevice, error)
	ConnectURL(remoteControlID string) string
}

type teamViewerClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

func NewTeamViewerClient(cfg *config.Config) TeamViewerClient {
	return &teamViewerClient{
		baseURL:      strings.TrimRight(cfg.TVBaseURL, "/"),
		clientID:     cfg.TVClientID,
		clientSecret: cfg.TVClientSecret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// token exchanges client credentials for a bearer token, caching it until
// shortly before expiry.
func (c *teamViewerClient) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.expiresAt) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("teamviewer token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("teamviewer token exchange returned %d: %s", resp.StatusCode, body)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	c.accessToken = tok.AccessToken
	// Refresh a minute early
	c.expiresAt = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)
	return c.accessToken, nil
}

type devicesResponse struct {
	Devices []RemoteDevice `json:"devices"`
}

func (c *teamViewerClient) ListDevices(ctx context.Context) ([]RemoteDevice, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/devices", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("teamviewer device list failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("teamviewer device list returned %d: %s", resp.StatusCode, body)
	}

	var out devicesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode device list: %w", err)
	}
	return out.Devices, nil
}

// ConnectURL builds the deep link the dashboard opens to start a remote
// control session.
func (c *teamViewerClient) ConnectURL(remoteControlID string) string {
	id := strings.TrimPrefix(remoteControlID, "r")
	return fmt.Sprintf("https://start.teamviewer.com/device/%s/mode/remotecontrol", id)
}
