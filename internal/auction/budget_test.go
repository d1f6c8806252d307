package auction

import (
	"math"
	"strings"
	"testing"
)

func TestSummarizeExample(t *testing.T) {
	team := teamWithPlayers(100, 60, 9)

	s := Summarize(team)
	if s.Left != 40 || s.Spent != 60 {
		t.Fatalf("expected spent 60 left 40, got %+v", s)
	}
	if s.UsageLabel() != "60.0%" {
		t.Fatalf("expected 60.0%%, got %s", s.UsageLabel())
	}
	if s.IsFull {
		t.Fatalf("expected 9 players not to be full")
	}
	if s.RosterLabel() != "9/10" {
		t.Fatalf("expected 9/10, got %s", s.RosterLabel())
	}

	team.Players = append(team.Players, teamWithPlayers(0, 0, 1).Players...)
	if !Summarize(team).IsFull {
		t.Fatalf("expected 10th player to fill the roster")
	}
}

func TestSummarizeFiguresAgree(t *testing.T) {
	for budget := 0; budget <= 120; budget += 30 {
		for spent := 0; spent <= budget; spent += 15 {
			for n := 0; n <= 11; n++ {
				team := teamWithPlayers(budget, spent, n)
				s := Summarize(team)
				if s.Left != budget-spent {
					t.Fatalf("left mismatch for %d/%d: %d", budget, spent, s.Left)
				}
				if s.IsFull != (n >= MaxRosterSize) {
					t.Fatalf("isFull mismatch for %d players", n)
				}
				if math.IsNaN(s.UsagePercent) || math.IsInf(s.UsagePercent, 0) {
					t.Fatalf("usage not finite for budget %d", budget)
				}
			}
		}
	}
}

func TestSummarizeZeroBudgetFallsBackToZeroUsage(t *testing.T) {
	s := Summarize(teamWithPlayers(0, 0, 0))
	if s.UsagePercent != 0 || s.UsageLabel() != "0.0%" {
		t.Fatalf("expected 0%% usage for zero budget, got %v", s.UsagePercent)
	}
	if s.Severity() != SeverityNormal {
		t.Fatalf("expected normal severity for zero budget")
	}
}

func TestSeverityThreshold(t *testing.T) {
	cases := []struct {
		spent int
		want  Severity
	}{
		{74, SeverityNormal},
		{75, SeverityCritical},
		{100, SeverityCritical},
	}
	for _, tc := range cases {
		if got := Summarize(teamWithPlayers(100, tc.spent, 0)).Severity(); got != tc.want {
			t.Fatalf("spent %d: expected %s, got %s", tc.spent, tc.want, got)
		}
	}
}

func TestUsageLabelRoundsToOneDecimal(t *testing.T) {
	if got := Summarize(teamWithPlayers(300, 100, 0)).UsageLabel(); got != "33.3%" {
		t.Fatalf("expected 33.3%%, got %s", got)
	}
}

func TestUsageBarCapsAtWidth(t *testing.T) {
	over := Summarize(teamWithPlayers(100, 150, 0))
	bar := over.UsageBar(10)
	if n := len([]rune(bar)); n != 10 {
		t.Fatalf("expected bar width 10, got %d", n)
	}
	if strings.Contains(bar, "░") {
		t.Fatalf("expected fully filled bar when over budget, got %q", bar)
	}

	half := Summarize(teamWithPlayers(100, 50, 0)).UsageBar(10)
	if strings.Count(half, "█") != 5 {
		t.Fatalf("expected half-filled bar, got %q", half)
	}
	if Summarize(teamWithPlayers(100, 50, 0)).UsageBar(0) != "" {
		t.Fatalf("expected empty bar for zero width")
	}
}
