package auction

import (
	"slices"

	"github.com/pmurley/auction-bot/internal/models"
)

// ApplyPlayerUpdate returns a copy of players with the entry matching updated.ID
// replaced by the server's version. Players not in the list are not added.
func ApplyPlayerUpdate(players []models.Player, updated models.Player) []models.Player {
	result := slices.Clone(players)
	for i := range result {
		if result[i].ID == updated.ID {
			result[i] = updated
		}
	}
	return result
}

// ReconcileRoster applies a player returned by a mutation to a team's local
// roster. The server response is authoritative: the player is dropped if it no
// longer belongs to the team, replaced if it still does, and appended if it was
// just moved in. Budget figures are left as fetched; they belong to the server.
func ReconcileRoster(team models.Team, updated models.Player) models.Team {
	reconciled := team
	onRoster := slices.ContainsFunc(team.Players, func(p models.Player) bool { return p.ID == updated.ID })

	switch {
	case updated.OwnerID() != team.ID:
		reconciled.Players = slices.DeleteFunc(slices.Clone(team.Players), func(p models.Player) bool {
			return p.ID == updated.ID
		})
	case onRoster:
		reconciled.Players = ApplyPlayerUpdate(team.Players, updated)
	default:
		reconciled.Players = append(slices.Clone(team.Players), updated)
	}
	return reconciled
}
