package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pmurley/auction-bot/internal/api"
	"github.com/pmurley/auction-bot/internal/cache"
	"github.com/pmurley/auction-bot/internal/config"
	"github.com/pmurley/auction-bot/internal/credentials"
	"github.com/pmurley/auction-bot/internal/metrics"
	"github.com/pmurley/auction-bot/internal/models"
	"github.com/pmurley/auction-bot/internal/transfers"
	"github.com/pmurley/auction-bot/pkg/logger"
)

// Discord allows up to 10 embeds per message
const maxEmbedsPerMessage = 10

type HandlerManager struct {
	session   *discordgo.Session
	config    *config.Config
	logger    *logger.Logger
	client    *api.Client
	transfers *transfers.Service
	secrets   credentials.Source
	sorts     *cache.SortMemory
	recorder  *metrics.Recorder
	commands  map[string]CommandHandler
}

// Response is what a command replies with
type Response struct {
	Content string
	Embeds  []*discordgo.MessageEmbed
}

type CommandHandler func(ctx context.Context, m *discordgo.MessageCreate, args []string) *Response

func NewHandlerManager(
	session *discordgo.Session,
	config *config.Config,
	logger *logger.Logger,
	client *api.Client,
	transferService *transfers.Service,
	secrets credentials.Source,
	sorts *cache.SortMemory,
	recorder *metrics.Recorder,
) *HandlerManager {
	hm := &HandlerManager{
		session:   session,
		config:    config,
		logger:    logger,
		client:    client,
		transfers: transferService,
		secrets:   secrets,
		sorts:     sorts,
		recorder:  recorder,
		commands:  make(map[string]CommandHandler),
	}

	hm.registerCommands()

	return hm
}

func (hm *HandlerManager) RegisterHandlers() {
	hm.session.AddHandler(hm.messageCreate)
}

func (hm *HandlerManager) registerCommands() {
	hm.commands["help"] = hm.handleHelp
	hm.commands["teams"] = hm.handleTeams
	hm.commands["team"] = hm.handleTeam
	hm.commands["players"] = hm.handlePlayers
	hm.commands["transfer"] = hm.handleTransfer
	hm.commands["remove"] = hm.handleRemove
	hm.commands["destinations"] = hm.handleDestinations
}

func (hm *HandlerManager) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}

	resp, ok := hm.HandleMessage(context.Background(), m)
	if !ok || resp == nil {
		return
	}
	hm.send(s, m.ChannelID, resp)
}

// HandleMessage parses a prefixed command and runs it. ok is false when the
// message is not a known command.
func (hm *HandlerManager) HandleMessage(ctx context.Context, m *discordgo.MessageCreate) (*Response, bool) {
	if !strings.HasPrefix(m.Content, hm.config.CommandPrefix) {
		return nil, false
	}

	content := strings.TrimPrefix(m.Content, hm.config.CommandPrefix)
	parts := strings.Fields(content)
	if len(parts) == 0 {
		return nil, false
	}

	command := strings.ToLower(parts[0])
	args := parts[1:]

	handler, exists := hm.commands[command]
	if !exists {
		return nil, false
	}
	hm.recorder.RecordCommand(command)
	hm.logger.Debug("Handling !", command, " in channel ", m.ChannelID)
	return handler(ctx, m, args), true
}

func (hm *HandlerManager) send(s *discordgo.Session, channelID string, resp *Response) {
	embeds := resp.Embeds
	first := true
	for first || len(embeds) > 0 {
		end := min(len(embeds), maxEmbedsPerMessage)
		msg := &discordgo.MessageSend{Embeds: embeds[:end]}
		if first {
			msg.Content = resp.Content
		}
		if _, err := s.ChannelMessageSendComplex(channelID, msg); err != nil {
			hm.logger.Error("Failed to send message: ", err)
			return
		}
		embeds = embeds[end:]
		first = false
	}
}

// requestContext bounds a read by the configured request timeout
func (hm *HandlerManager) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, hm.config.RequestTimeout)
}

func (hm *HandlerManager) privileged() bool {
	return credentials.Privileged(hm.secrets)
}

func (hm *HandlerManager) handleHelp(ctx context.Context, m *discordgo.MessageCreate, args []string) *Response {
	p := hm.config.CommandPrefix
	helpMessage := `**Auction Bot Commands:**
` + "```" + `
` + p + `help                          - Show this help message
` + p + `teams                         - Budgets and roster sizes for every team
` + p + `team <name or owner>          - Team budget and roster
` + p + `players [search] [--sort=<f>] [--team=<team>] - Player table
   repeat a sort to flip it, --sort=reset to go back to name order
   sort fields: name, skill, category, cost, base_price, team
` + p + `destinations <player>         - Teams that can still take a player
` + p + `transfer <player> to <team> for <cost>
` + p + `remove <player>
` + "```" + `
Transfers and removals need the league secret key.`

	return &Response{Content: helpMessage}
}

func textResponse(format string, a ...interface{}) *Response {
	return &Response{Content: fmt.Sprintf(format, a...)}
}

// requestFailed renders an API failure; server messages are shown as sent
func requestFailed(err error) *Response {
	if apiErr, ok := api.AsError(err); ok {
		return textResponse("❌ %s", apiErr.Message)
	}
	return textResponse("Request failed: %s", err)
}

// resolvePlayer finds a single player by exact name, then by unique partial match
func (hm *HandlerManager) resolvePlayer(ctx context.Context, name string) (*models.Player, *Response) {
	reqCtx, cancel := hm.requestContext(ctx)
	defer cancel()

	found, err := hm.client.GetPlayers(reqCtx, name)
	if err != nil {
		hm.logger.Error("Failed to load players: ", err)
		return nil, requestFailed(err)
	}
	players := models.PlayerList(found)

	if exact := players.FindByExactName(name); len(exact) == 1 {
		return &exact[0], nil
	} else if len(exact) > 1 {
		return nil, ambiguousPlayers(name, exact)
	}

	matches := players.SearchByName(name)
	switch len(matches) {
	case 0:
		return nil, textResponse("No player found matching '%s'", name)
	case 1:
		return &matches[0], nil
	default:
		return nil, ambiguousPlayers(name, matches)
	}
}

func ambiguousPlayers(name string, matches []models.Player) *Response {
	msg := fmt.Sprintf("Multiple players found matching '%s':\n", name)
	for i, p := range matches {
		if i >= 10 {
			msg += fmt.Sprintf("... and %d more\n", len(matches)-10)
			break
		}
		msg += fmt.Sprintf("• %s (%s, %s)\n", p.Name, p.Skill, p.Category.Display())
	}
	msg += "\nPlease be more specific."
	return &Response{Content: msg}
}

// resolveTeam finds a single team by name or owner
func resolveTeam(teams models.TeamList, search string) (*models.Team, *Response) {
	if exact := teams.FindByExactName(search); len(exact) == 1 {
		return &exact[0], nil
	}

	matches := teams.Search(search)
	if len(matches) == 1 {
		return &matches[0], nil
	}

	if len(matches) == 0 {
		msg := fmt.Sprintf("No team found matching '%s'", search)
		if suggestions := findSimilarTeams(search, teams); len(suggestions) > 0 {
			msg += "\n\nDid you mean:\n"
			for _, team := range suggestions {
				msg += fmt.Sprintf("• %s\n", team)
			}
		}
		return nil, &Response{Content: msg}
	}

	msg := fmt.Sprintf("Multiple teams match '%s':\n", search)
	for _, t := range matches {
		msg += fmt.Sprintf("• %s (%s)\n", t.Name, t.Owner)
	}
	return nil, &Response{Content: msg}
}
