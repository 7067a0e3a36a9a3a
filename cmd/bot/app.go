package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/swig/pkg/config"
	"github.com/Jacobbrewer1/swig/pkg/dataaccess"
	"github.com/Jacobbrewer1/swig/pkg/dataaccess/connection"
	"github.com/Jacobbrewer1/swig/pkg/logging"
	"github.com/Jacobbrewer1/swig/pkg/platform"
	"github.com/Jacobbrewer1/swig/pkg/request"
	"github.com/Jacobbrewer1/swig/pkg/tickets"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	// PathMetrics is the path for metrics.
	PathMetrics = "/metrics"

	// PathHealth is the path for the health check.
	PathHealth = "/health"
)

// shutdownTimeout bounds how long the application waits for the monitoring server and stores to close.
const shutdownTimeout = 10 * time.Second

// IApp is the interface for the application.
type IApp interface {
	// Session returns the discord session.
	Session() *discordgo.Session

	// Log returns the logger.
	Log() *slog.Logger

	// Tickets returns the ticket lifecycle manager.
	Tickets() *tickets.Manager
}

type App struct {
	// is the logger.
	*slog.Logger

	// r is the router for the application.
	r *mux.Router

	// svr is the server for the application.
	svr *http.Server

	// cfg is the configuration. It is never modified.
	cfg *config.Config

	// s is the discord session.
	s *discordgo.Session

	// tickets is the ticket lifecycle manager.
	tickets *tickets.Manager

	// mongo is the audit database. It is nil when the audit ledger is disabled.
	mongo *mongo.Client

	// redis is the shared lock store. It is nil when locks are held in process.
	redis *redis.Client

	// eventNotifier is the channel for notifying of events.
	eventNotifier chan any
}

// NewApp creates a new instance of App.
func NewApp(l *slog.Logger, r *mux.Router, cfg *config.Config) *App {
	return &App{
		Logger: l,
		r:      r,
		cfg:    cfg,
	}
}

func (a *App) Run() error {
	// Register bot.
	if err := a.RegisterBot(); err != nil {
		return fmt.Errorf("error registering bot: %w", err)
	}

	if err := a.connectStores(context.Background()); err != nil {
		return fmt.Errorf("error connecting stores: %w", err)
	}

	a.tickets = tickets.NewManager(a.Logger, a.cfg, platform.NewDiscord(a.s), a.ticketOptions()...)

	a.s.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		a.Info(fmt.Sprintf("Logged in as %s#%s", r.User.Username, r.User.Discriminator))
	})

	// Handlers, the panel button included, must be in place before the gateway delivers the first interaction.
	if err := a.RegisterDiscordHandlers(); err != nil {
		return fmt.Errorf("error registering discord handlers: %w", err)
	}

	// Register slash commands.
	if err := a.registerSlashCommands(); err != nil {
		return fmt.Errorf("error registering slash commands: %w", err)
	}

	// Start event listener.
	go a.eventListener()

	// Open websocket.
	if err := a.s.Open(); err != nil {
		return fmt.Errorf("error opening connection to Discord: %w", err)
	}

	a.Info("Bot is now running.")

	a.generateServer()
	a.setupRoutes()
	a.runServer()

	// Register listener for shutdown signal.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	// Process shutdown signal.
	sig := <-c
	a.Info("Received shutdown signal", slog.String("signal", sig.String()))
	if err := a.ShutdownHook(); err != nil {
		return fmt.Errorf("error shutting down application: %w", err)
	}
	return nil
}

// ShutdownHook closes every connection the application holds. Slash commands are left registered so that panels
// keep working across restarts.
func (a *App) ShutdownHook() error {
	// Reset the total number of guilds to 0.
	TotalDiscordGuilds.Set(0)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error

	// Close the connection to Discord.
	if err := a.s.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing connection to Discord: %w", err))
	}

	if a.svr != nil {
		if err := a.svr.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("error shutting down monitoring server: %w", err))
		}
	}

	if a.mongo != nil {
		if err := a.mongo.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("error disconnecting from mongo: %w", err))
		}
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing redis: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (a *App) RegisterBot() error {
	// Default the number of guilds to 0.
	TotalDiscordGuilds.Set(0)

	dg, err := discordgo.New("Bot " + a.cfg.BotToken)
	if err != nil {
		return fmt.Errorf("error creating Discord session: %w", err)
	}

	// Interactions carry the member and their roles, so only guild events are needed.
	dg.Identify.Intents = discordgo.IntentsGuilds

	if a.eventNotifier == nil {
		// Create event notifier. It is buffered to prevent blocking.
		a.eventNotifier = make(chan any, 100)
	}

	dg.SetEventNotifier(a.eventNotifier)

	a.s = dg
	return nil
}

// connectStores connects to the optional audit database and lock store.
func (a *App) connectStores(ctx context.Context) error {
	if a.cfg.MongoURI != "" {
		mongoConn := &connection.MongoDB{ConnectionString: a.cfg.MongoURI}

		client, err := mongoConn.Connect(ctx)
		if err != nil {
			return fmt.Errorf("error connecting to mongo: %w", err)
		}
		a.mongo = client

		if err := dataaccess.NewTicketDal(a.Logger, a.mongo).EnsureIndexes(ctx); err != nil {
			// The ledger still works without the index, just slower.
			a.Warn("Error ensuring ticket event indexes", slog.String(logging.KeyError, err.Error()))
		}

		a.Info("Connected to MongoDB, ticket history is enabled")
	} else {
		a.Info("No MongoDB URI provided, ticket history is disabled", slog.String("key", config.EnvMongoUri))
	}

	if a.cfg.Redis.Enabled() {
		redisConn := &connection.Redis{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		}

		client, err := redisConn.Connect(ctx)
		if err != nil {
			return fmt.Errorf("error connecting to redis: %w", err)
		}
		a.redis = client

		a.Info("Connected to Redis, requester locks are shared")
	}
	return nil
}

func (a *App) ticketOptions() []tickets.Option {
	opts := make([]tickets.Option, 0, 2)

	if a.mongo != nil {
		opts = append(opts, tickets.WithRecorder(dataaccess.NewTicketDal(a.Logger, a.mongo)))
	}

	if a.redis != nil {
		opts = append(opts, tickets.WithLocker(dataaccess.NewRedisLocker(a.Logger, a.redis)))
	}
	return opts
}

func (a *App) runServer() {
	go func() {
		a.Info("Starting monitoring server", slog.String("addr", a.svr.Addr))
		if err := a.svr.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Error("Error starting monitoring server", slog.String(logging.KeyError, err.Error()))
			a.Warn("Monitoring server will not be available")
		}
	}()
}

func (a *App) setupRoutes() {
	// PathMetrics is the path for metrics.
	a.r.HandleFunc(PathMetrics, promhttp.Handler().ServeHTTP).Methods(http.MethodGet)

	// PathHealth is the path for health check.
	a.r.HandleFunc(PathHealth, middlewareHttp(a, a.healthCheck())).Methods(http.MethodGet)

	// NotFoundHandler is the handler for 404.
	a.r.NotFoundHandler = request.NotFoundHandler(a.Logger)

	// MethodNotAllowedHandler is the handler for 405.
	a.r.MethodNotAllowedHandler = request.MethodNotAllowedHandler(a.Logger)
}

func (a *App) generateServer() {
	a.svr = &http.Server{
		Addr:              ":" + a.cfg.MonitoringPort,
		Handler:           a.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func (a *App) RegisterDiscordHandlers() error {
	// Bot joined guild.
	a.s.AddHandler(guildJoinedHandler(a))

	// Bot left guild.
	a.s.AddHandler(guildLeaveHandler(a))

	// Interaction create handler.
	a.s.AddHandler(interactionHandler(a, slashProcessors(), buttonProcessors()))
	return nil
}

// slashProcessors maps slash command names to their processors.
func slashProcessors() map[string]interactionProcessor {
	return map[string]interactionProcessor{
		TicketSetupCmdName:   ticketSetupHandler,
		TicketClaimCmdName:   ticketClaimHandler,
		TicketCloseCmdName:   ticketCloseHandler,
		TicketReopenCmdName:  ticketReopenHandler,
		TicketPanelCmdName:   ticketPanelHandler,
		TicketHistoryCmdName: ticketHistoryHandler,
	}
}

// buttonProcessors maps button custom IDs to their processors. Panels posted before a restart route through here,
// so it is registered before the gateway is opened.
func buttonProcessors() map[string]interactionProcessor {
	return map[string]interactionProcessor{
		tickets.OpenTicketButtonID: openTicketHandler,
	}
}

func (a *App) eventListener() {
	for e := range a.eventNotifier {
		switch t := e.(type) {
		case *discordgo.Event:
			if t.Type != "" {
				TotalDiscordEvents.WithLabelValues(t.Type).Inc()
			} else {
				// If there is no type, then use the operation name.
				TotalDiscordEvents.WithLabelValues(strings.ToUpper(t.Operation.String())).Inc()
			}
		default:
			a.Error("Unknown event type", slog.String("type", fmt.Sprintf("%T", e)))
			TotalDiscordEvents.WithLabelValues("UNKNOWN").Inc()
		}
	}
}

func (a *App) Session() *discordgo.Session {
	return a.s
}

func (a *App) Log() *slog.Logger {
	return a.Logger
}

func (a *App) Tickets() *tickets.Manager {
	return a.tickets
}
