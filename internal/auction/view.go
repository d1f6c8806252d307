package auction

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/pmurley/auction-bot/internal/models"
)

// SortField names a sortable column of the players table
type SortField string

const (
	SortByName      SortField = "name"
	SortBySkill     SortField = "skill"
	SortByCategory  SortField = "category"
	SortByCost      SortField = "cost"
	SortByBasePrice SortField = "base_price"
	SortByTeam      SortField = "team"
	SortByPhone     SortField = "phone"
)

// SortFields lists every supported field in display order
var SortFields = []SortField{SortByName, SortBySkill, SortByCategory, SortByCost, SortByBasePrice, SortByTeam, SortByPhone}

// SortDirection is ascending or descending
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// SortSpec is the current sort of the players table
type SortSpec struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort orders players by name, ascending
var DefaultSort = SortSpec{Field: SortByName, Direction: Ascending}

// Toggle returns the spec after selecting field: the same field flips the
// direction, a different field starts ascending.
func (s SortSpec) Toggle(field SortField) SortSpec {
	if field == s.Field {
		if s.Direction == Ascending {
			return SortSpec{Field: field, Direction: Descending}
		}
		return SortSpec{Field: field, Direction: Ascending}
	}
	return SortSpec{Field: field, Direction: Ascending}
}

func (s SortSpec) String() string {
	return fmt.Sprintf("%s %s", s.Field, s.Direction)
}

// ParseSortField resolves a user-supplied field name
func ParseSortField(raw string) (SortField, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	switch name {
	case "base-price", "baseprice", "price":
		return SortByBasePrice, nil
	case "phone_number", "phone-number":
		return SortByPhone, nil
	}
	for _, f := range SortFields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown sort field %q", raw)
}

// FilterByName keeps players whose name contains text, case-insensitively.
// An empty filter keeps everyone. The result is a new slice.
func FilterByName(players []models.Player, text string) []models.Player {
	query := strings.ToLower(strings.TrimSpace(text))
	filtered := make([]models.Player, 0, len(players))
	for _, p := range players {
		if query == "" || strings.Contains(strings.ToLower(p.Name), query) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Project filters and stably sorts players for display without touching the input
func Project(players []models.Player, filterText string, spec SortSpec) []models.Player {
	projected := FilterByName(players, filterText)
	SortPlayers(projected, spec)
	return projected
}

// SortPlayers stably sorts players in place. Equal keys keep their order.
func SortPlayers(players []models.Player, spec SortSpec) {
	if spec.Field == "" {
		spec.Field = SortByName
	}
	desc := spec.Direction == Descending
	slices.SortStableFunc(players, func(a, b models.Player) int {
		c := comparePlayers(a, b, spec.Field)
		if desc {
			return -c
		}
		return c
	})
}

func comparePlayers(a, b models.Player, field SortField) int {
	switch field {
	case SortByCost:
		return cmp.Compare(costKey(a), costKey(b))
	case SortByBasePrice:
		return cmp.Compare(a.BasePrice, b.BasePrice)
	default:
		return strings.Compare(stringKey(a, field), stringKey(b, field))
	}
}

// costKey treats an unsold player as cheaper than any real cost
func costKey(p models.Player) int {
	if cost, ok := p.CostValue(); ok {
		return cost
	}
	return -1
}

func stringKey(p models.Player, field SortField) string {
	var v string
	switch field {
	case SortBySkill:
		v = p.Skill
	case SortByCategory:
		v = string(p.Category)
	case SortByTeam:
		v = p.OwnerName()
	case SortByPhone:
		v = p.PhoneNumber
	default:
		v = p.Name
	}
	return strings.ToLower(v)
}
