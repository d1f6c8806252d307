package discord

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pmurley/auction-bot/internal/auction"
	"github.com/pmurley/auction-bot/internal/credentials"
	"github.com/pmurley/auction-bot/internal/models"
)

const (
	colorNormal   = 0x3498db
	colorCritical = 0xe74c3c
	colorFull     = 0x95a5a6
	colorSuccess  = 0x2ecc71

	// Discord caps an embed at 25 fields
	maxEmbedFields = 25
	usageBarWidth  = 10
)

// handleTeams lists every team with its budget usage
func (hm *HandlerManager) handleTeams(ctx context.Context, m *discordgo.MessageCreate, args []string) *Response {
	reqCtx, cancel := hm.requestContext(ctx)
	defer cancel()

	teams, err := hm.client.GetTeams(reqCtx)
	if err != nil {
		hm.logger.Error("Failed to load teams: ", err)
		return requestFailed(err)
	}
	if len(teams) == 0 {
		return textResponse("No teams have been created yet")
	}

	return &Response{Embeds: []*discordgo.MessageEmbed{buildTeamsEmbed(teams)}}
}

// handleTeam shows one team's budget and roster. With a secret key the
// privileged view is used so base prices and phone numbers are included.
func (hm *HandlerManager) handleTeam(ctx context.Context, m *discordgo.MessageCreate, args []string) *Response {
	if len(args) == 0 {
		return textResponse("Usage: `%steam <team name or owner>`", hm.config.CommandPrefix)
	}
	search := strings.Join(args, " ")

	reqCtx, cancel := hm.requestContext(ctx)
	defer cancel()

	teams, err := hm.client.GetTeams(reqCtx)
	if err != nil {
		hm.logger.Error("Failed to load teams: ", err)
		return requestFailed(err)
	}

	match, resp := resolveTeam(teams, search)
	if resp != nil {
		return resp
	}

	var team *models.Team
	secret, err := credentials.Require(hm.secrets)
	privileged := err == nil
	if privileged {
		team, err = hm.client.GetTeamFull(reqCtx, match.ID, secret)
	} else {
		team, err = hm.client.GetTeam(reqCtx, match.ID)
	}
	if err != nil {
		hm.logger.Error("Failed to load team ", match.ID, ": ", err)
		return requestFailed(err)
	}

	return &Response{Embeds: []*discordgo.MessageEmbed{buildTeamEmbed(*team, privileged)}}
}

// buildTeamsEmbed creates the overview of every team's budget
func buildTeamsEmbed(teams []models.Team) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  "Teams",
		Color:  colorNormal,
		Fields: []*discordgo.MessageEmbedField{},
	}

	totalSpent := 0
	for i, team := range teams {
		summary := auction.Summarize(team)
		totalSpent += summary.Spent
		if i >= maxEmbedFields {
			continue
		}

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s%s (%s)", severityMarker(summary), team.Name, team.Owner),
			Value:  formatSummary(summary),
			Inline: true,
		})
	}

	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%d teams | Total spent: %s", len(teams), formatNumber(totalSpent)),
	}
	if len(teams) > maxEmbedFields {
		embed.Footer.Text += fmt.Sprintf(" | %d not shown", len(teams)-maxEmbedFields)
	}
	return embed
}

// buildTeamEmbed creates a rich embed for a team's budget and roster
func buildTeamEmbed(team models.Team, privileged bool) *discordgo.MessageEmbed {
	summary := auction.Summarize(team)

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s%s", severityMarker(summary), team.Name),
		Color:       getSeverityColor(summary),
		Description: fmt.Sprintf("Owner: **%s**\n%s", team.Owner, formatSummary(summary)),
		Fields:      []*discordgo.MessageEmbedField{},
	}

	roster := models.PlayerList(team.Players)
	if len(roster) == 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Roster",
			Value: "No players yet",
		})
	}

	// One field per category, best tier first, priciest player first within it
	groups := roster.GroupByCategory()
	categories := make([]models.Category, 0, len(groups))
	for c := range groups {
		categories = append(categories, c)
	}
	slices.SortFunc(categories, func(a, b models.Category) int {
		if c := cmp.Compare(a.Rank(), b.Rank()); c != 0 {
			return c
		}
		return strings.Compare(string(a), string(b))
	})

	for _, category := range categories {
		players := slices.Clone(groups[category])
		auction.SortPlayers(players, auction.SortSpec{Field: auction.SortByCost, Direction: auction.Descending})

		lines := make([]string, 0, len(players))
		for _, p := range players {
			lines = append(lines, formatRosterLine(p, privileged))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s (%d)", category.Display(), len(players)),
			Value: strings.Join(lines, "\n"),
		})
	}

	footer := fmt.Sprintf("Roster %s | Players cost: %s", summary.RosterLabel(), formatNumber(roster.TotalCost()))
	if team.FirstPlayer != "" {
		footer += fmt.Sprintf(" | First pick: %s for %s", team.FirstPlayer, formatNumber(team.FirstPlayerCost))
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: footer}
	return embed
}

func formatSummary(summary auction.BudgetSummary) string {
	roster := summary.RosterLabel()
	if summary.IsFull {
		roster += " FULL"
	}
	return fmt.Sprintf("Spent **%s** of %s | Left **%s**\n`%s` %s\nRoster: %s",
		formatNumber(summary.Spent), formatNumber(summary.Budget), formatNumber(summary.Left),
		summary.UsageBar(usageBarWidth), summary.UsageLabel(), roster)
}

func formatRosterLine(p models.Player, privileged bool) string {
	line := fmt.Sprintf("**%s** (%s)", p.Name, p.Skill)
	if cost, ok := p.CostValue(); ok {
		line += " - " + formatNumber(cost)
	}
	if privileged {
		line += fmt.Sprintf(" [base %s]", formatNumber(p.BasePrice))
		if p.PhoneNumber != "" {
			line += " 📞 " + p.PhoneNumber
		}
	}
	return line
}

func severityMarker(summary auction.BudgetSummary) string {
	if summary.Severity() == auction.SeverityCritical {
		return "⚠️ "
	}
	return ""
}

func getSeverityColor(summary auction.BudgetSummary) int {
	switch {
	case summary.IsFull:
		return colorFull
	case summary.Severity() == auction.SeverityCritical:
		return colorCritical
	default:
		return colorNormal
	}
}

// findSimilarTeams suggests teams when a search matched nothing
func findSimilarTeams(search string, teams models.TeamList) []string {
	searchLower := strings.ToLower(strings.TrimSpace(search))
	words := strings.Fields(searchLower)
	var matches []string

	for _, team := range teams {
		teamLower := strings.ToLower(team.Name)
		ownerLower := strings.ToLower(team.Owner)
		if (teamLower != "" && strings.Contains(searchLower, teamLower)) ||
			(ownerLower != "" && strings.Contains(searchLower, ownerLower)) {
			matches = append(matches, team.Name)
			continue
		}
		for _, word := range words {
			if len(word) >= 3 && (strings.Contains(teamLower, word) || strings.Contains(ownerLower, word)) {
				matches = append(matches, team.Name)
				break
			}
		}
	}

	// Limit to 5 suggestions
	if len(matches) > 5 {
		matches = matches[:5]
	}

	return matches
}
