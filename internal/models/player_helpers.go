package models

import (
	"strings"
)

// PlayerList represents a slice of players with helper methods
type PlayerList []Player

// SearchByName returns players whose names contain the search string
func (pl PlayerList) SearchByName(search string) PlayerList {
	var matches PlayerList
	searchLower := strings.ToLower(strings.TrimSpace(search))

	for _, p := range pl {
		if strings.Contains(strings.ToLower(p.Name), searchLower) {
			matches = append(matches, p)
		}
	}
	return matches
}

// FindByExactName returns all players with an exact name match (case-insensitive)
func (pl PlayerList) FindByExactName(name string) []Player {
	nameLower := strings.ToLower(strings.TrimSpace(name))
	var matches []Player

	for _, p := range pl {
		if strings.ToLower(p.Name) == nameLower {
			matches = append(matches, p)
		}
	}
	return matches
}

// FilterByTeam returns players owned by the team with the given ID
func (pl PlayerList) FilterByTeam(teamID string) PlayerList {
	var filtered PlayerList
	for _, p := range pl {
		if p.OwnerID() == teamID {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Unsold returns players that have not been bought yet
func (pl PlayerList) Unsold() PlayerList {
	var unsold PlayerList
	for _, p := range pl {
		if !p.IsSold() {
			unsold = append(unsold, p)
		}
	}
	return unsold
}

// TotalCost sums the recorded costs of all sold players
func (pl PlayerList) TotalCost() int {
	total := 0
	for _, p := range pl {
		if cost, ok := p.CostValue(); ok {
			total += cost
		}
	}
	return total
}

// GroupByCategory returns a map of category to players
func (pl PlayerList) GroupByCategory() map[Category]PlayerList {
	grouped := make(map[Category]PlayerList)
	for _, p := range pl {
		grouped[p.Category] = append(grouped[p.Category], p)
	}
	return grouped
}

// TeamList represents a slice of teams with helper methods
type TeamList []Team

// FindByExactName returns teams whose name or owner equals the search (case-insensitive)
func (tl TeamList) FindByExactName(name string) []Team {
	nameLower := strings.ToLower(strings.TrimSpace(name))
	var matches []Team
	for _, t := range tl {
		if strings.ToLower(t.Name) == nameLower || strings.ToLower(t.Owner) == nameLower {
			matches = append(matches, t)
		}
	}
	return matches
}

// Search returns teams whose name or owner contains the search string
func (tl TeamList) Search(search string) []Team {
	searchLower := strings.ToLower(strings.TrimSpace(search))
	var matches []Team
	for _, t := range tl {
		if strings.Contains(strings.ToLower(t.Name), searchLower) ||
			strings.Contains(strings.ToLower(t.Owner), searchLower) {
			matches = append(matches, t)
		}
	}
	return matches
}
