package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pmurley/auction-bot/internal/metrics"
	"github.com/pmurley/auction-bot/internal/models"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20
)

// Client talks to the auction API. It holds no credentials; privileged calls
// take the secret key as an argument.
type Client struct {
	baseURL    string
	httpClient *http.Client
	recorder   *metrics.Recorder
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL string, timeout time.Duration, recorder *metrics.Recorder) (*Client, error) {
	base := strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("auction API base URL is required")
	}
	if u, err := url.Parse(base); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid auction API base URL %q", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		recorder: recorder,
	}, nil
}

type transferRequest struct {
	TeamID    string `json:"team_id"`
	Cost      int    `json:"cost"`
	SecretKey string `json:"secret_key"`
}

type removeRequest struct {
	SecretKey string `json:"secret_key"`
}

// GetTeams lists every team
func (c *Client) GetTeams(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := c.do(ctx, "get_teams", http.MethodGet, "/teams", nil, nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// GetTeam fetches a single team with its roster
func (c *Client) GetTeam(ctx context.Context, teamID string) (*models.Team, error) {
	var team *models.Team
	if err := c.do(ctx, "get_team", http.MethodGet, "/teams/"+url.PathEscape(teamID), nil, nil, &team); err != nil {
		return nil, err
	}
	if team == nil {
		return nil, fmt.Errorf("team %s not found", teamID)
	}
	return team, nil
}

// GetTeamFull fetches a team including privileged fields such as phone numbers
func (c *Client) GetTeamFull(ctx context.Context, teamID, secretKey string) (*models.Team, error) {
	query := url.Values{}
	query.Set("secret_key", secretKey)

	var team *models.Team
	if err := c.do(ctx, "get_team_full", http.MethodGet, "/teams/"+url.PathEscape(teamID)+"/full", query, nil, &team); err != nil {
		return nil, err
	}
	if team == nil {
		return nil, fmt.Errorf("team %s not found", teamID)
	}
	return team, nil
}

// GetPlayers lists players, filtered server-side by name when name is set
func (c *Client) GetPlayers(ctx context.Context, name string) ([]models.Player, error) {
	var query url.Values
	if name = strings.TrimSpace(name); name != "" {
		query = url.Values{}
		query.Set("name", name)
	}

	var players []models.Player
	if err := c.do(ctx, "get_players", http.MethodGet, "/players", query, nil, &players); err != nil {
		return nil, err
	}
	return players, nil
}

// TransferPlayer assigns a player to a team at the given cost
func (c *Client) TransferPlayer(ctx context.Context, playerID, teamID string, cost int, secretKey string) (*models.Player, error) {
	body := transferRequest{TeamID: teamID, Cost: cost, SecretKey: secretKey}

	var player *models.Player
	if err := c.do(ctx, "transfer_player", http.MethodPut, "/players/"+url.PathEscape(playerID), nil, body, &player); err != nil {
		return nil, err
	}
	if player == nil {
		return nil, errors.New("failed to transfer player")
	}
	return player, nil
}

// RemovePlayer clears a player's team assignment
func (c *Client) RemovePlayer(ctx context.Context, playerID, secretKey string) (*models.Player, error) {
	body := removeRequest{SecretKey: secretKey}

	var player *models.Player
	if err := c.do(ctx, "remove_player", http.MethodPut, "/players/"+url.PathEscape(playerID)+"/remove", nil, body, &player); err != nil {
		return nil, err
	}
	if player == nil {
		return nil, errors.New("failed to remove player")
	}
	return player, nil
}

func (c *Client) do(ctx context.Context, endpoint, method, path string, query url.Values, body any, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recorder.ObserveRequest(endpoint, 0, time.Since(start))
		return fmt.Errorf("performing request: %w", redact(err))
	}
	defer resp.Body.Close()
	c.recorder.ObserveRequest(endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseErrorResponse(resp)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// redact strips the query string from URL errors so secret keys never reach logs
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if u, parseErr := url.Parse(urlErr.URL); parseErr == nil && u.RawQuery != "" {
			u.RawQuery = ""
			return &url.Error{Op: urlErr.Op, URL: u.String(), Err: urlErr.Err}
		}
	}
	return err
}
