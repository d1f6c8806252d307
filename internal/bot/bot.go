package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pmurley/auction-bot/internal/api"
	"github.com/pmurley/auction-bot/internal/cache"
	"github.com/pmurley/auction-bot/internal/config"
	"github.com/pmurley/auction-bot/internal/credentials"
	"github.com/pmurley/auction-bot/internal/discord"
	"github.com/pmurley/auction-bot/internal/metrics"
	"github.com/pmurley/auction-bot/internal/transfers"
	"github.com/pmurley/auction-bot/pkg/logger"
)

type Bot struct {
	session       *discordgo.Session
	config        *config.Config
	logger        *logger.Logger
	client        *api.Client
	secrets       *credentials.FileStore
	recorder      *metrics.Recorder
	handlers      *discord.HandlerManager
	metricsServer *http.Server
}

func New(cfg *config.Config, log *logger.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// Set intents - we need these for DMs and message content
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	recorder := metrics.NewRecorder()
	client, err := api.NewClient(cfg.AuctionAPIURL, cfg.RequestTimeout, recorder)
	if err != nil {
		return nil, fmt.Errorf("failed to create auction API client: %w", err)
	}

	secrets := credentials.NewFileStore(cfg.SecretKeyFile)
	service := transfers.NewService(client, secrets, cfg.RequestTimeout, log, recorder)

	b := &Bot{
		session:  session,
		config:   cfg,
		logger:   log,
		client:   client,
		secrets:  secrets,
		recorder: recorder,
	}

	b.handlers = discord.NewHandlerManager(b.session, cfg, log, client, service, secrets, cache.NewSortMemory(cfg.SortMemory), recorder)

	if cfg.MetricsAddr != "" {
		b.metricsServer = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           newMetricsRouter(recorder),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return b, nil
}

func newMetricsRouter(recorder *metrics.Recorder) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", recorder.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func (b *Bot) Start() error {
	b.handlers.RegisterHandlers()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	if b.metricsServer != nil {
		go func() {
			b.logger.Info("Serving metrics on ", b.metricsServer.Addr)
			if err := b.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				b.logger.Error("Metrics server stopped: ", err)
			}
		}()
	}

	if _, ok := b.secrets.SecretKey(); !ok {
		b.logger.Warn("No secret key in ", b.secrets.Path(), "; transfers and removals are disabled")
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.config.RequestTimeout)
	defer cancel()
	if teams, err := b.client.GetTeams(ctx); err != nil {
		b.logger.Error("Failed to reach auction API: ", err)
	} else {
		b.logger.Info("Connected to auction API (", len(teams), " teams)")
	}

	return nil
}

func (b *Bot) Stop() error {
	var errs []error
	if b.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := b.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop metrics server: %w", err))
		}
	}
	if err := b.session.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
