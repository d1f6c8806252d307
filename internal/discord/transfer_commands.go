package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pmurley/auction-bot/internal/auction"
	"github.com/pmurley/auction-bot/internal/credentials"
	"github.com/pmurley/auction-bot/internal/models"
	"github.com/pmurley/auction-bot/internal/transfers"
)

// handleTransfer moves a player to a team at a cost
func (hm *HandlerManager) handleTransfer(ctx context.Context, m *discordgo.MessageCreate, args []string) *Response {
	usage := textResponse("Usage: `%stransfer <player> to <team> for <cost>`\nExample: `%stransfer Ravi Kumar to Titans for 25`",
		hm.config.CommandPrefix, hm.config.CommandPrefix)
	if len(args) == 0 {
		return usage
	}

	playerName, teamName, cost, ok := parseTransferArgs(strings.Join(args, " "))
	if !ok {
		return usage
	}

	// Checked before any lookup so an operator without a key gets no partial work
	if !hm.privileged() {
		return secretRequired()
	}

	player, resp := hm.resolvePlayer(ctx, playerName)
	if resp != nil {
		return resp
	}
	if hm.transfers.InFlight(player.ID) {
		return mutationFailed("transfer", player.Name, transfers.ErrSubmissionInFlight)
	}

	reqCtx, cancel := hm.requestContext(ctx)
	teams, err := hm.client.GetTeams(reqCtx)
	cancel()
	if err != nil {
		hm.logger.Error("Failed to load teams: ", err)
		return requestFailed(err)
	}
	dest, resp := resolveDestination(teams, teamName)
	if resp != nil {
		return resp
	}

	result, err := hm.transfers.Transfer(ctx, transfers.Request{
		Player: *player,
		TeamID: dest.ID,
		Cost:   cost,
	})
	if err != nil {
		return mutationFailed("transfer", player.Name, err)
	}

	hm.logger.Info("Transferred ", result.Player.Name, " to ", dest.Name)
	return &Response{Embeds: []*discordgo.MessageEmbed{hm.buildTransferEmbed(ctx, result)}}
}

// handleRemove clears a player's team
func (hm *HandlerManager) handleRemove(ctx context.Context, m *discordgo.MessageCreate, args []string) *Response {
	if len(args) == 0 {
		return textResponse("Usage: `%sremove <player>`", hm.config.CommandPrefix)
	}
	if !hm.privileged() {
		return secretRequired()
	}

	player, resp := hm.resolvePlayer(ctx, strings.Join(args, " "))
	if resp != nil {
		return resp
	}
	if player.OwnerID() == "" {
		return textResponse("%s is not on a team", player.Name)
	}
	formerTeam := player.OwnerName()

	result, err := hm.transfers.Remove(ctx, *player)
	if err != nil {
		return mutationFailed("remove", player.Name, err)
	}

	hm.logger.Info("Removed ", result.Player.Name, " from ", formerTeam)
	msg := fmt.Sprintf("✅ Removed **%s** from %s", result.Player.Name, formerTeam)
	if formerTeam == "" {
		msg = fmt.Sprintf("✅ Removed **%s** from their team", result.Player.Name)
	}
	return &Response{Content: msg}
}

// handleDestinations lists the teams a player can still join
func (hm *HandlerManager) handleDestinations(ctx context.Context, m *discordgo.MessageCreate, args []string) *Response {
	if len(args) == 0 {
		return textResponse("Usage: `%sdestinations <player>`", hm.config.CommandPrefix)
	}

	player, resp := hm.resolvePlayer(ctx, strings.Join(args, " "))
	if resp != nil {
		return resp
	}

	reqCtx, cancel := hm.requestContext(ctx)
	defer cancel()

	teams, err := hm.client.GetTeams(reqCtx)
	if err != nil {
		hm.logger.Error("Failed to load teams: ", err)
		return requestFailed(err)
	}

	eligible := auction.EligibleDestinations(teams)
	return &Response{Embeds: []*discordgo.MessageEmbed{buildDestinationsEmbed(*player, eligible, len(teams)-len(eligible), hm.privileged())}}
}

// parseTransferArgs splits "<player> to <team> for <cost>". The last " for "
// and the last " to " before it win so names may contain those words.
func parseTransferArgs(input string) (player, team, cost string, ok bool) {
	lower := strings.ToLower(input)

	forIdx := strings.LastIndex(lower, " for ")
	if forIdx < 0 {
		return "", "", "", false
	}
	toIdx := strings.LastIndex(lower[:forIdx], " to ")
	if toIdx < 0 {
		return "", "", "", false
	}

	player = strings.TrimSpace(input[:toIdx])
	team = strings.TrimSpace(input[toIdx+len(" to ") : forIdx])
	cost = strings.TrimSpace(input[forIdx+len(" for "):])
	if player == "" || team == "" || cost == "" {
		return "", "", "", false
	}
	return player, team, cost, true
}

// resolveDestination picks the transfer target among teams with roster space.
// A full team is only reported when nothing open matches.
func resolveDestination(teams models.TeamList, search string) (*models.Team, *Response) {
	if exact := teams.FindByExactName(search); len(exact) == 1 {
		if !auction.HasRosterSpace(exact[0]) {
			return nil, fullTeams(exact)
		}
		return &exact[0], nil
	}

	open := models.TeamList(auction.EligibleDestinations(teams))
	if len(open.Search(search)) > 0 {
		return resolveTeam(open, search)
	}
	if full := teams.Search(search); len(full) > 0 {
		return nil, fullTeams(full)
	}
	return resolveTeam(teams, search)
}

func fullTeams(teams []models.Team) *Response {
	names := make([]string, 0, len(teams))
	for _, t := range teams {
		names = append(names, t.Name)
	}
	return textResponse("%s already %s a full roster (%d/%d)", strings.Join(names, ", "),
		pluralize(len(names), "has", "have"), auction.MaxRosterSize, auction.MaxRosterSize)
}

func secretRequired() *Response {
	return textResponse("🔒 This action needs the league secret key. Ask an administrator to store it in the bot's key file.")
}

// mutationFailed renders every way a transfer or removal can fail
func mutationFailed(action, playerName string, err error) *Response {
	var vErr *transfers.ValidationError
	switch {
	case errors.Is(err, credentials.ErrMissingSecret):
		return secretRequired()
	case errors.Is(err, transfers.ErrSubmissionInFlight):
		return textResponse("⏳ A %s for %s is already in progress", action, playerName)
	case errors.As(err, &vErr):
		msg := fmt.Sprintf("Cannot %s %s:\n", action, playerName)
		for _, v := range vErr.Check.Violations {
			msg += fmt.Sprintf("• %s\n", v)
		}
		return &Response{Content: msg}
	default:
		return requestFailed(err)
	}
}

// buildTransferEmbed confirms a transfer and shows the team as the server now reports it
func (hm *HandlerManager) buildTransferEmbed(ctx context.Context, result *transfers.Result) *discordgo.MessageEmbed {
	team := *result.Team

	reqCtx, cancel := hm.requestContext(ctx)
	defer cancel()
	if fresh, err := hm.client.GetTeam(reqCtx, team.ID); err == nil {
		team = *fresh
	} else {
		hm.logger.Warn("Failed to refresh team ", team.ID, " after transfer: ", err)
	}

	cost, _ := result.Player.CostValue()
	summary := auction.Summarize(team)
	return &discordgo.MessageEmbed{
		Title:       "Transfer complete",
		Color:       colorSuccess,
		Description: fmt.Sprintf("**%s** joins **%s** for %s", result.Player.Name, team.Name, formatNumber(cost)),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  fmt.Sprintf("%s%s", severityMarker(summary), team.Name),
				Value: formatSummary(summary),
			},
		},
	}
}

// buildDestinationsEmbed lists eligible teams. Cost ranges reveal the base
// price, so they are only shown to privileged operators.
func buildDestinationsEmbed(player models.Player, eligible []models.Team, fullCount int, privileged bool) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("Destinations for %s", player.Name),
		Color:  colorNormal,
		Fields: []*discordgo.MessageEmbedField{},
	}
	if owner := player.OwnerName(); owner != "" {
		embed.Description = fmt.Sprintf("Currently on **%s**", owner)
	}

	for i, team := range eligible {
		if i >= maxEmbedFields {
			break
		}
		value := fmt.Sprintf("Left: %s | Roster: %s", formatNumber(team.Remaining()), auction.Summarize(team).RosterLabel())
		if privileged {
			if minCost, maxCost, ok := auction.CostRange(player, team); ok {
				value += fmt.Sprintf("\nCost: %s to %s", formatNumber(minCost), formatNumber(maxCost))
			} else {
				value += "\nCannot afford the base price"
			}
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s (%s)", team.Name, team.Owner),
			Value:  value,
			Inline: true,
		})
	}

	if len(eligible) == 0 {
		embed.Description = strings.TrimSpace(embed.Description + "\nEvery team has a full roster")
	}
	if fullCount > 0 {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d full %s hidden", fullCount, pluralize(fullCount, "team", "teams")),
		}
	}
	return embed
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
