package auction

import (
	"errors"
	"strconv"
	"strings"

	"github.com/pmurley/auction-bot/internal/models"
)

// MaxRosterSize is the number of players that makes a team full
const MaxRosterSize = 10

var (
	ErrNoDestination  = errors.New("select a destination team")
	ErrInvalidCost    = errors.New("cost must be a positive whole number")
	ErrBelowBasePrice = errors.New("cost is below the player's base price")
	ErrExceedsBudget  = errors.New("cost exceeds the team's remaining budget")
	ErrTeamFull       = errors.New("team already has a full roster")
)

// TransferCheck is the outcome of validating a transfer. Every failed
// condition is recorded so callers can show all of them at once.
type TransferCheck struct {
	Cost       int
	Violations []error
}

// Valid reports whether every condition held
func (c TransferCheck) Valid() bool {
	return len(c.Violations) == 0
}

// Err joins the violations; errors.Is works against each sentinel.
func (c TransferCheck) Err() error {
	return errors.Join(c.Violations...)
}

// Has reports whether a specific condition failed
func (c TransferCheck) Has(target error) bool {
	for _, v := range c.Violations {
		if errors.Is(v, target) {
			return true
		}
	}
	return false
}

// IsValidTransfer is the boolean gate for a transfer of player to dest at cost
func IsValidTransfer(player models.Player, dest *models.Team, cost string) bool {
	return CheckTransfer(player, dest, cost).Valid()
}

// CheckTransfer evaluates every transfer condition without short-circuiting.
// Conditions that need a team or a parsed cost are skipped when those are missing.
func CheckTransfer(player models.Player, dest *models.Team, cost string) TransferCheck {
	var check TransferCheck

	if !HasDestination(dest) {
		check.Violations = append(check.Violations, ErrNoDestination)
	}

	parsed, err := ParseCost(cost)
	if err != nil {
		check.Violations = append(check.Violations, err)
	} else {
		check.Cost = parsed
		if !MeetsBasePrice(player, parsed) {
			check.Violations = append(check.Violations, ErrBelowBasePrice)
		}
		if dest != nil && !WithinBudget(*dest, parsed) {
			check.Violations = append(check.Violations, ErrExceedsBudget)
		}
	}

	if dest != nil && !HasRosterSpace(*dest) {
		check.Violations = append(check.Violations, ErrTeamFull)
	}

	return check
}

// HasDestination reports whether a destination team was chosen
func HasDestination(dest *models.Team) bool {
	return dest != nil
}

// ParseCost parses a cost entered by the operator. Only whole numbers > 0 are accepted.
func ParseCost(raw string) (int, error) {
	cost, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || cost <= 0 {
		return 0, ErrInvalidCost
	}
	return cost, nil
}

// MeetsBasePrice reports whether cost is at or above the player's price floor
func MeetsBasePrice(player models.Player, cost int) bool {
	return cost >= player.BasePrice
}

// WithinBudget reports whether the team can afford cost
func WithinBudget(team models.Team, cost int) bool {
	return cost <= team.Remaining()
}

// HasRosterSpace reports whether the team can take another player
func HasRosterSpace(team models.Team) bool {
	return len(team.Players) < MaxRosterSize
}

// EligibleDestinations returns the teams that may receive a transfer, in input order
func EligibleDestinations(teams []models.Team) []models.Team {
	eligible := make([]models.Team, 0, len(teams))
	for _, t := range teams {
		if HasRosterSpace(t) {
			eligible = append(eligible, t)
		}
	}
	return eligible
}

// CostRange returns the inclusive cost interval allowed for moving player to team.
// ok is false when no cost can satisfy both bounds or the team is full.
func CostRange(player models.Player, team models.Team) (minCost, maxCost int, ok bool) {
	minCost = player.BasePrice
	if minCost < 1 {
		minCost = 1
	}
	maxCost = team.Remaining()
	return minCost, maxCost, minCost <= maxCost && HasRosterSpace(team)
}
