package discord

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/pmurley/auction-bot/internal/auction"
	"github.com/pmurley/auction-bot/internal/models"
)

// Rows beyond this are summarized so the table fits in one embed description
const maxPlayerRows = 25

// handlePlayers shows the players table, filtered by name or team and sorted per channel
func (hm *HandlerManager) handlePlayers(ctx context.Context, m *discordgo.MessageCreate, args []string) *Response {
	var searchParts []string
	var sortArg, teamArg string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case strings.HasPrefix(arg, "--sort="):
			sortArg = strings.TrimPrefix(arg, "--sort=")
		case arg == "--sort" && i+1 < len(args):
			sortArg = args[i+1]
			i++
		case strings.HasPrefix(arg, "--team="):
			teamArg = strings.TrimPrefix(arg, "--team=")
		default:
			searchParts = append(searchParts, arg)
		}
	}
	search := strings.Join(searchParts, " ")
	privileged := hm.privileged()

	spec := hm.sorts.Get(m.ChannelID)
	storeSort := false
	switch {
	case strings.EqualFold(sortArg, "reset"):
		hm.sorts.Reset(m.ChannelID)
		spec = auction.DefaultSort
	case sortArg != "":
		field, err := auction.ParseSortField(sortArg)
		if err != nil {
			return textResponse("%s\nSort fields: %s", err, joinSortFields())
		}
		// The players endpoint never carries phone numbers
		if field == auction.SortByPhone {
			return textResponse("Phone numbers are not part of the players list. Use `%steam <name>` with the secret key to see them.", hm.config.CommandPrefix)
		}
		if !privileged && field == auction.SortByBasePrice {
			return textResponse("🔒 Sorting by %s requires the league secret key", field)
		}
		spec = hm.sorts.Next(m.ChannelID, field)
		storeSort = true
	}

	reqCtx, cancel := hm.requestContext(ctx)
	defer cancel()

	var team *models.Team
	if teamArg = strings.ReplaceAll(teamArg, "_", " "); teamArg != "" {
		teams, err := hm.client.GetTeams(reqCtx)
		if err != nil {
			hm.logger.Error("Failed to load teams: ", err)
			return requestFailed(err)
		}
		var resp *Response
		if team, resp = resolveTeam(teams, teamArg); resp != nil {
			return resp
		}
	}

	players, err := hm.client.GetPlayers(reqCtx, search)
	if err != nil {
		hm.logger.Error("Failed to load players: ", err)
		return requestFailed(err)
	}
	if storeSort {
		hm.sorts.Store(m.ChannelID, spec)
	}

	title := "Players"
	if team != nil {
		players = models.PlayerList(players).FilterByTeam(team.ID)
		title = fmt.Sprintf("Players on %s", team.Name)
	}
	if search != "" {
		title += fmt.Sprintf(" matching '%s'", search)
	}

	view := auction.Project(players, search, spec)
	if len(view) == 0 {
		if search != "" {
			return textResponse("No player found matching '%s'", search)
		}
		if team != nil {
			return textResponse("%s has no players yet", team.Name)
		}
		return textResponse("No players in the auction pool")
	}

	return &Response{Embeds: []*discordgo.MessageEmbed{buildPlayersEmbed(view, title, spec, privileged)}}
}

// buildPlayersEmbed renders the player table as a monospace block
func buildPlayersEmbed(players []models.Player, title string, spec auction.SortSpec, privileged bool) *discordgo.MessageEmbed {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 1, ' ', 0)

	header := "Name\tSkill\tCat\tCost\tTeam"
	if privileged {
		header = "Name\tSkill\tCat\tBase\tCost\tTeam"
	}
	fmt.Fprintln(w, header)

	shown := players
	if len(shown) > maxPlayerRows {
		shown = shown[:maxPlayerRows]
	}
	for _, p := range shown {
		cost := "-"
		if c, ok := p.CostValue(); ok {
			cost = formatNumber(c)
		}
		team := p.OwnerName()
		if team == "" {
			team = "Unsold"
		}
		cols := []string{clip(p.Name, 18), clip(p.Skill, 12), string(p.Category)}
		if privileged {
			cols = append(cols, formatNumber(p.BasePrice))
		}
		cols = append(cols, cost, clip(team, 16))
		fmt.Fprintln(w, strings.Join(cols, "\t"))
	}
	w.Flush()

	description := "```\n" + buf.String() + "```"
	if len(players) > maxPlayerRows {
		description += fmt.Sprintf("\n... and %d more. Narrow the search to see them.", len(players)-maxPlayerRows)
	}

	list := models.PlayerList(players)
	return &discordgo.MessageEmbed{
		Title:       title,
		Color:       colorNormal,
		Description: description,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d players | %d unsold | Sorted by %s (%s)",
				len(players), len(list.Unsold()), spec.Field, spec.Direction),
		},
	}
}

func joinSortFields() string {
	names := make([]string, 0, len(auction.SortFields))
	for _, f := range auction.SortFields {
		if f == auction.SortByPhone {
			continue
		}
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// clip shortens s to n runes so table columns stay narrow
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}

func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	result := ""
	for i, digit := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += ","
		}
		result += string(digit)
	}
	return result
}
