package auction

import (
	"fmt"
	"strings"

	"github.com/pmurley/auction-bot/internal/models"
)

// CriticalUsagePercent is the budget usage from which a team is flagged
const CriticalUsagePercent = 75.0

// Severity classifies budget usage for display
type Severity string

const (
	SeverityNormal   Severity = "normal"
	SeverityCritical Severity = "critical"
)

// BudgetSummary holds the derived budget and roster figures for a team
type BudgetSummary struct {
	Budget       int
	Spent        int
	Left         int
	UsagePercent float64
	PlayerCount  int
	IsFull       bool
}

// Summarize derives a team's budget figures. A team without a positive budget
// reports 0% usage.
func Summarize(team models.Team) BudgetSummary {
	summary := BudgetSummary{
		Budget:      team.Budget,
		Spent:       team.BudgetSpent,
		Left:        team.Remaining(),
		PlayerCount: len(team.Players),
		IsFull:      len(team.Players) >= MaxRosterSize,
	}
	if team.Budget > 0 {
		summary.UsagePercent = float64(team.BudgetSpent) / float64(team.Budget) * 100
	}
	return summary
}

// Severity returns SeverityCritical once usage reaches CriticalUsagePercent
func (b BudgetSummary) Severity() Severity {
	if b.UsagePercent >= CriticalUsagePercent {
		return SeverityCritical
	}
	return SeverityNormal
}

// UsageLabel renders usage with one decimal place, e.g. "60.0%"
func (b BudgetSummary) UsageLabel() string {
	return fmt.Sprintf("%.1f%%", b.UsagePercent)
}

// RosterLabel renders roster fullness, e.g. "9/10"
func (b BudgetSummary) RosterLabel() string {
	return fmt.Sprintf("%d/%d", b.PlayerCount, MaxRosterSize)
}

// UsageBar renders a text progress bar of the given width, capped at 100%
func (b BudgetSummary) UsageBar(width int) string {
	if width <= 0 {
		return ""
	}
	pct := b.UsagePercent
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	filled := int(pct / 100 * float64(width))
	fill := "█"
	if b.Severity() == SeverityCritical {
		fill = "▓"
	}
	return strings.Repeat(fill, filled) + strings.Repeat("░", width-filled)
}
