package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pmurley/auction-bot/internal/models"
)

const rosterLimit = 10

// AuctionAPI is an in-memory stand-in for the remote auction API.
// Team rosters and spend are derived from player assignments on every read.
type AuctionAPI struct {
	Server    *httptest.Server
	SecretKey string

	mu       sync.Mutex
	teams    []models.Team
	players  []models.Player
	calls    map[string]int
	failures map[string]failure
	delay    time.Duration
}

type failure struct {
	status      int
	contentType string
	body        string
}

// NewAuctionAPI starts a fake API seeded with teams and players. Rosters in
// the seed teams are ignored; ownership comes from each player's TeamID.
func NewAuctionAPI(t testing.TB, secretKey string, teams []models.Team, players []models.Player) *AuctionAPI {
	t.Helper()

	a := &AuctionAPI{
		SecretKey: secretKey,
		teams:     append([]models.Team(nil), teams...),
		players:   append([]models.Player(nil), players...),
		calls:     make(map[string]int),
		failures:  make(map[string]failure),
	}

	r := chi.NewRouter()
	r.Get("/teams", a.handle("GET /teams", a.listTeams))
	r.Get("/teams/{id}", a.handle("GET /teams/{id}", a.getTeam(false)))
	r.Get("/teams/{id}/full", a.handle("GET /teams/{id}/full", a.getTeam(true)))
	r.Get("/players", a.handle("GET /players", a.listPlayers))
	r.Put("/players/{id}", a.handle("PUT /players/{id}", a.transfer))
	r.Put("/players/{id}/remove", a.handle("PUT /players/{id}/remove", a.remove))

	a.Server = httptest.NewServer(r)
	t.Cleanup(a.Server.Close)
	return a
}

// URL returns the base URL of the fake
func (a *AuctionAPI) URL() string {
	return a.Server.URL
}

// Calls returns how many times a route ("PUT /players/{id}") was hit
func (a *AuctionAPI) Calls(route string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls[route]
}

// Fail makes every subsequent call to route answer with status and body
func (a *AuctionAPI) Fail(route string, status int, contentType, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures[route] = failure{status: status, contentType: contentType, body: body}
}

// SetDelay makes every handler wait d (or until the request is cancelled)
func (a *AuctionAPI) SetDelay(d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.delay = d
}

// SetTeamBudgetSpent overrides spend without touching rosters, to simulate a
// concurrent change the client has not seen yet.
func (a *AuctionAPI) SetTeamBudgetSpent(teamID string, spent int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.teams {
		if a.teams[i].ID == teamID {
			a.teams[i].BudgetSpent = spent
		}
	}
}

// Player returns the stored player
func (a *AuctionAPI) Player(id string) (models.Player, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, p := range a.players {
		if p.ID == id {
			return a.decorate(p, false), true
		}
	}
	return models.Player{}, false
}

func (a *AuctionAPI) handle(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.calls[route]++
		f, failing := a.failures[route]
		delay := a.delay
		a.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		if failing {
			if f.contentType != "" {
				w.Header().Set("Content-Type", f.contentType)
			}
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}
		next(w, r)
	}
}

func (a *AuctionAPI) listTeams(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	teams := make([]models.Team, 0, len(a.teams))
	for _, t := range a.teams {
		teams = append(teams, a.teamView(t, false))
	}
	writeJSON(w, http.StatusOK, teams)
}

func (a *AuctionAPI) getTeam(full bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		defer a.mu.Unlock()

		if full && r.URL.Query().Get("secret_key") != a.SecretKey {
			writeMessage(w, http.StatusUnauthorized, "Invalid secret key")
			return
		}
		team, ok := a.findTeam(chi.URLParam(r, "id"))
		if !ok {
			writeMessage(w, http.StatusNotFound, "Team not found")
			return
		}
		writeJSON(w, http.StatusOK, a.teamView(*team, full))
	}
}

func (a *AuctionAPI) listPlayers(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	name := strings.ToLower(r.URL.Query().Get("name"))
	players := make([]models.Player, 0, len(a.players))
	for _, p := range a.players {
		if name == "" || strings.Contains(strings.ToLower(p.Name), name) {
			players = append(players, a.decorate(p, false))
		}
	}
	writeJSON(w, http.StatusOK, players)
}

func (a *AuctionAPI) transfer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TeamID    string `json:"team_id"`
		Cost      int    `json:"cost"`
		SecretKey string `json:"secret_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if body.SecretKey != a.SecretKey {
		writeMessage(w, http.StatusUnauthorized, "Invalid secret key")
		return
	}
	idx := a.playerIndex(chi.URLParam(r, "id"))
	if idx < 0 {
		writeMessage(w, http.StatusNotFound, "Player not found")
		return
	}
	team, ok := a.findTeam(body.TeamID)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Team not found")
		return
	}
	view := a.teamView(*team, false)
	if body.Cost < a.players[idx].BasePrice {
		writeMessage(w, http.StatusBadRequest, "Cost cannot be less than base price")
		return
	}
	if body.Cost > view.Budget-view.BudgetSpent {
		writeMessage(w, http.StatusBadRequest, "Team does not have enough budget")
		return
	}
	if len(view.Players) >= rosterLimit {
		writeMessage(w, http.StatusBadRequest, "Team already has 10 players")
		return
	}

	cost := body.Cost
	teamID := body.TeamID
	a.players[idx].Cost = &cost
	a.players[idx].TeamID = &teamID
	writeJSON(w, http.StatusOK, a.decorate(a.players[idx], false))
}

func (a *AuctionAPI) remove(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SecretKey string `json:"secret_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if body.SecretKey != a.SecretKey {
		writeMessage(w, http.StatusUnauthorized, "Invalid secret key")
		return
	}
	idx := a.playerIndex(chi.URLParam(r, "id"))
	if idx < 0 {
		writeMessage(w, http.StatusNotFound, "Player not found")
		return
	}

	a.players[idx].Cost = nil
	a.players[idx].TeamID = nil
	writeJSON(w, http.StatusOK, a.decorate(a.players[idx], false))
}

// teamView must be called with mu held
func (a *AuctionAPI) teamView(t models.Team, full bool) models.Team {
	t.Players = []models.Player{}
	spent := 0
	for _, p := range a.players {
		if p.TeamID != nil && *p.TeamID == t.ID {
			t.Players = append(t.Players, a.decorate(p, full))
			if p.Cost != nil {
				spent += *p.Cost
			}
		}
	}
	if spent > t.BudgetSpent {
		t.BudgetSpent = spent
	}
	t.BudgetLeft = t.Budget - t.BudgetSpent
	return t
}

// decorate must be called with mu held
func (a *AuctionAPI) decorate(p models.Player, full bool) models.Player {
	if !full {
		p.PhoneNumber = ""
	}
	p.Team = nil
	if p.TeamID != nil {
		if t, ok := a.findTeam(*p.TeamID); ok {
			p.Team = &models.TeamRef{ID: t.ID, Name: t.Name, Owner: t.Owner}
		}
	}
	return p
}

func (a *AuctionAPI) findTeam(id string) (*models.Team, bool) {
	for i := range a.teams {
		if a.teams[i].ID == id {
			return &a.teams[i], true
		}
	}
	return nil, false
}

func (a *AuctionAPI) playerIndex(id string) int {
	for i := range a.players {
		if a.players[i].ID == id {
			return i
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
