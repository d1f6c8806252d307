package transfers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pmurley/auction-bot/internal/api"
	"github.com/pmurley/auction-bot/internal/auction"
	"github.com/pmurley/auction-bot/internal/cache"
	"github.com/pmurley/auction-bot/internal/credentials"
	"github.com/pmurley/auction-bot/internal/metrics"
	"github.com/pmurley/auction-bot/internal/models"
	"github.com/pmurley/auction-bot/pkg/logger"
)

const (
	actionTransfer = "transfer"
	actionRemove   = "remove"
)

// ErrSubmissionInFlight is returned when the same player already has a pending mutation
var ErrSubmissionInFlight = cache.ErrInFlight

// AuctionAPI is the subset of the API client the service needs
type AuctionAPI interface {
	GetTeam(ctx context.Context, teamID string) (*models.Team, error)
	TransferPlayer(ctx context.Context, playerID, teamID string, cost int, secretKey string) (*models.Player, error)
	RemovePlayer(ctx context.Context, playerID, secretKey string) (*models.Player, error)
}

// ValidationError means the transfer failed local checks and nothing was sent
type ValidationError struct {
	Check auction.TransferCheck
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Check.Violations))
	for _, v := range e.Check.Violations {
		msgs = append(msgs, v.Error())
	}
	return "invalid transfer: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() []error {
	return e.Check.Violations
}

// Request describes a transfer. Cost is the raw text the operator entered.
type Request struct {
	Player models.Player
	TeamID string
	Cost   string
}

// Result is the server's view after a successful mutation
type Result struct {
	Player models.Player
	Team   *models.Team // destination as re-fetched before a transfer with the moved player applied; nil for removals
}

// Service gates every mutation behind the secret key, the in-flight guard and
// a fresh validation against the destination team.
type Service struct {
	api      AuctionAPI
	secrets  credentials.Source
	guard    *cache.SubmissionGuard
	timeout  time.Duration
	logger   *logger.Logger
	recorder *metrics.Recorder
}

func NewService(client AuctionAPI, secrets credentials.Source, timeout time.Duration, log *logger.Logger, recorder *metrics.Recorder) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		api:      client,
		secrets:  secrets,
		guard:    cache.NewSubmissionGuard(timeout),
		timeout:  timeout,
		logger:   log,
		recorder: recorder,
	}
}

// Transfer assigns req.Player to req.TeamID at req.Cost
func (s *Service) Transfer(ctx context.Context, req Request) (*Result, error) {
	secret, err := credentials.Require(s.secrets)
	if err != nil {
		s.recorder.RecordMutation(actionTransfer, metrics.OutcomeUnauthorized)
		return nil, err
	}

	release, err := s.guard.Acquire(req.Player.ID)
	if err != nil {
		s.recorder.RecordMutation(actionTransfer, metrics.OutcomeBusy)
		return nil, fmt.Errorf("transfer of %s: %w", req.Player.Name, err)
	}
	defer release()

	log := s.logger.With("player", req.Player.ID, "team", req.TeamID)
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var dest *models.Team
	if req.TeamID != "" {
		dest, err = s.api.GetTeam(ctx, req.TeamID)
		if err != nil {
			s.recorder.RecordMutation(actionTransfer, outcomeFor(err))
			return nil, fmt.Errorf("refreshing team %s: %w", req.TeamID, err)
		}
	}

	check := auction.CheckTransfer(req.Player, dest, req.Cost)
	if !check.Valid() {
		s.recorder.RecordMutation(actionTransfer, metrics.OutcomeInvalid)
		log.Debug("Rejected transfer of ", req.Player.Name, " locally: ", check.Err())
		return nil, &ValidationError{Check: check}
	}

	log.Info("Transferring ", req.Player.Name, " to ", dest.Name, " for ", check.Cost)
	updated, err := s.api.TransferPlayer(ctx, req.Player.ID, dest.ID, check.Cost, secret)
	if err != nil {
		outcome := outcomeFor(err)
		s.recorder.RecordMutation(actionTransfer, outcome)
		log.Warn("Transfer of ", req.Player.Name, " failed (", outcome, "): ", err)
		return nil, err
	}

	s.recorder.RecordMutation(actionTransfer, metrics.OutcomeOK)
	team := auction.ReconcileRoster(*dest, *updated)
	return &Result{Player: *updated, Team: &team}, nil
}

// Remove clears player's team assignment
func (s *Service) Remove(ctx context.Context, player models.Player) (*Result, error) {
	secret, err := credentials.Require(s.secrets)
	if err != nil {
		s.recorder.RecordMutation(actionRemove, metrics.OutcomeUnauthorized)
		return nil, err
	}

	release, err := s.guard.Acquire(player.ID)
	if err != nil {
		s.recorder.RecordMutation(actionRemove, metrics.OutcomeBusy)
		return nil, fmt.Errorf("removal of %s: %w", player.Name, err)
	}
	defer release()

	log := s.logger.With("player", player.ID)
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	log.Info("Removing ", player.Name, " from ", player.OwnerName())
	updated, err := s.api.RemovePlayer(ctx, player.ID, secret)
	if err != nil {
		outcome := outcomeFor(err)
		s.recorder.RecordMutation(actionRemove, outcome)
		log.Warn("Removal of ", player.Name, " failed (", outcome, "): ", err)
		return nil, err
	}

	s.recorder.RecordMutation(actionRemove, metrics.OutcomeOK)
	return &Result{Player: *updated}, nil
}

// InFlight reports whether a mutation for playerID is pending
func (s *Service) InFlight(playerID string) bool {
	return s.guard.InFlight(playerID)
}

func outcomeFor(err error) string {
	if _, ok := api.AsError(err); ok {
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeFailed
}
