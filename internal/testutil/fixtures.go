package testutil

import (
	"fmt"

	"github.com/pmurley/auction-bot/internal/models"
)

// IntPtr returns a pointer to v
func IntPtr(v int) *int { return &v }

// StrPtr returns a pointer to v
func StrPtr(v string) *string { return &v }

// SampleTeams returns two open teams and one full team
func SampleTeams() []models.Team {
	return []models.Team{
		{ID: "t1", Name: "Royal Strikers", Owner: "Meera", Budget: 100},
		{ID: "t2", Name: "Titans", Owner: "Dev", Budget: 50},
		{ID: "t3", Name: "Full House", Owner: "Asha", Budget: 1000},
	}
}

// SamplePlayers returns players consistent with SampleTeams: t1 has spent 60
// on one player, t3 holds a full roster, the rest are unsold.
func SamplePlayers() []models.Player {
	players := []models.Player{
		{ID: "p1", Name: "Ravi Kumar", Skill: "Batsman", Category: models.CategoryA, BasePrice: 15, PhoneNumber: "555-0101"},
		{ID: "p2", Name: "Zaheer", Skill: "Bowler", Category: models.CategoryB, BasePrice: 10},
		{ID: "p3", Name: "Arjun", Skill: "Keeper", Category: models.CategoryAPlus, BasePrice: 30, Cost: IntPtr(60), TeamID: StrPtr("t1"), PhoneNumber: "555-0103"},
		{ID: "p4", Name: "Ravi Shankar", Skill: "All-rounder", Category: models.CategoryC, BasePrice: 5},
	}
	for i := 0; i < 10; i++ {
		players = append(players, models.Player{
			ID:        fmt.Sprintf("f%d", i),
			Name:      fmt.Sprintf("Squad %02d", i),
			Skill:     "Bowler",
			Category:  models.CategoryD,
			BasePrice: 1,
			Cost:      IntPtr(1),
			TeamID:    StrPtr("t3"),
		})
	}
	return players
}
