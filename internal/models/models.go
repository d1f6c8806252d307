package models

import (
	"encoding/json"
	"strings"
)

// Team represents a fantasy team as returned by the auction API
type Team struct {
	ID              string   `json:"_id"`
	Name            string   `json:"name"`
	Owner           string   `json:"owner"`
	Budget          int      `json:"budget"`
	BudgetSpent     int      `json:"budget_spent"`
	BudgetLeft      int      `json:"budget_left"` // As reported; use Remaining() for computations
	FirstPlayer     string   `json:"first_player,omitempty"`
	FirstPlayerCost int      `json:"first_player_cost,omitempty"`
	CreatedAt       string   `json:"created_at,omitempty"`
	UpdatedAt       string   `json:"updated_at,omitempty"`
	Players         []Player `json:"players"`
}

// Remaining returns the unspent part of the team's budget
func (t *Team) Remaining() int {
	return t.Budget - t.BudgetSpent
}

// TeamRef is the denormalized team summary embedded in player responses.
// It is a read-only projection; the team's own roster is the source of truth.
type TeamRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

// Player represents a player in the auction pool
type Player struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Skill       string   `json:"skill"`
	Category    Category `json:"category"`
	BasePrice   int      `json:"base_price"`
	Cost        *int     `json:"cost"`                   // nil while unsold
	TeamID      *string  `json:"team_id,omitempty"`      // nil while unsold
	Team        *TeamRef `json:"team,omitempty"`         // Projection supplied by /players
	TeamName    string   `json:"team_name,omitempty"`    // Projection supplied by some endpoints
	PhoneNumber string   `json:"phone_number,omitempty"` // Only present on privileged views
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

// IsSold reports whether the player has been bought by a team
func (p *Player) IsSold() bool {
	return p.Cost != nil && p.OwnerID() != ""
}

// OwnerID returns the owning team's ID or "" when the player is unassigned
func (p *Player) OwnerID() string {
	if p.TeamID != nil {
		return *p.TeamID
	}
	if p.Team != nil {
		return p.Team.ID
	}
	return ""
}

// OwnerName returns the owning team's display name or "" when unknown
func (p *Player) OwnerName() string {
	if p.Team != nil && p.Team.Name != "" {
		return p.Team.Name
	}
	return p.TeamName
}

// CostValue returns the acquisition cost and whether one is recorded
func (p *Player) CostValue() (int, bool) {
	if p.Cost == nil {
		return 0, false
	}
	return *p.Cost, true
}

// Category is a player's tier in its canonical short form (A+, A, B, C, D)
type Category string

const (
	CategoryAPlus Category = "A+"
	CategoryA     Category = "A"
	CategoryB     Category = "B"
	CategoryC     Category = "C"
	CategoryD     Category = "D"
)

var categoryOrder = []Category{CategoryAPlus, CategoryA, CategoryB, CategoryC, CategoryD}

const categoryPrefix = "category"

// ParseCategory normalizes both "A+" and "Category A+" forms to the short code.
// Unknown values are returned trimmed with ok=false.
func ParseCategory(raw string) (Category, bool) {
	value := strings.TrimSpace(raw)
	if len(value) >= len(categoryPrefix) && strings.EqualFold(value[:len(categoryPrefix)], categoryPrefix) {
		value = strings.TrimSpace(value[len(categoryPrefix):])
	}
	code := Category(strings.ToUpper(strings.ReplaceAll(value, " ", "")))
	for _, c := range categoryOrder {
		if c == code {
			return c, true
		}
	}
	return Category(strings.TrimSpace(raw)), false
}

// Display renders the long form used in listings, e.g. "Category A+"
func (c Category) Display() string {
	if c == "" {
		return "Uncategorized"
	}
	if _, ok := ParseCategory(string(c)); !ok {
		return string(c)
	}
	return "Category " + string(c)
}

// Rank returns the tier position (A+ first). Unknown categories sort last.
func (c Category) Rank() int {
	for i, known := range categoryOrder {
		if known == c {
			return i
		}
	}
	return len(categoryOrder)
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*c = ""
		return nil
	}
	*c, _ = ParseCategory(*raw)
	return nil
}
