package auction

import (
	"testing"

	"github.com/pmurley/auction-bot/internal/models"
)

func strPtr(v string) *string { return &v }

func TestApplyPlayerUpdateReplacesByID(t *testing.T) {
	players := samplePlayers()
	updated := players[1]
	updated.Cost = intPtr(35)
	updated.TeamID = strPtr("t1")

	got := ApplyPlayerUpdate(players, updated)
	if c, _ := got[1].CostValue(); c != 35 {
		t.Fatalf("expected updated cost, got %+v", got[1])
	}
	if players[1].Cost != nil {
		t.Fatalf("expected input slice untouched")
	}

	stranger := models.Player{ID: "zzz"}
	if len(ApplyPlayerUpdate(players, stranger)) != len(players) {
		t.Fatalf("expected unknown player not to be added")
	}
}

func TestReconcileRosterDropsRemovedPlayer(t *testing.T) {
	team := models.Team{ID: "t1", Players: []models.Player{{ID: "a", TeamID: strPtr("t1")}, {ID: "b", TeamID: strPtr("t1")}}}

	removed := models.Player{ID: "a"} // server cleared the team
	got := ReconcileRoster(team, removed)
	if len(got.Players) != 1 || got.Players[0].ID != "b" {
		t.Fatalf("expected only b to remain, got %+v", got.Players)
	}
	if len(team.Players) != 2 {
		t.Fatalf("expected original team untouched")
	}
}

func TestReconcileRosterAddsAndReplaces(t *testing.T) {
	team := models.Team{ID: "t1", Players: []models.Player{{ID: "a", TeamID: strPtr("t1"), Cost: intPtr(10)}}}

	moved := models.Player{ID: "n", TeamID: strPtr("t1"), Cost: intPtr(20)}
	got := ReconcileRoster(team, moved)
	if len(got.Players) != 2 || got.Players[1].ID != "n" {
		t.Fatalf("expected moved player appended, got %+v", got.Players)
	}

	repriced := models.Player{ID: "a", TeamID: strPtr("t1"), Cost: intPtr(12)}
	got = ReconcileRoster(got, repriced)
	if c, _ := got.Players[0].CostValue(); c != 12 || len(got.Players) != 2 {
		t.Fatalf("expected in-place replacement, got %+v", got.Players)
	}

	elsewhere := models.Player{ID: "a", TeamID: strPtr("t9")}
	got = ReconcileRoster(got, elsewhere)
	if len(got.Players) != 1 || got.Players[0].ID != "n" {
		t.Fatalf("expected player moved elsewhere to drop out, got %+v", got.Players)
	}
}
