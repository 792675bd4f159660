package cli

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/storehub-console/internal/api"
	"github.com/angelmondragon/storehub-console/internal/audit"
	"github.com/angelmondragon/storehub-console/internal/guard"
	"github.com/angelmondragon/storehub-console/internal/payments"
	"github.com/angelmondragon/storehub-console/internal/posts"
	"github.com/angelmondragon/storehub-console/internal/rankings"
	"github.com/angelmondragon/storehub-console/internal/realtime"
	"github.com/angelmondragon/storehub-console/internal/session"
	"github.com/angelmondragon/storehub-console/internal/users"
	"github.com/angelmondragon/storehub-console/pkg/config"
	"github.com/angelmondragon/storehub-console/pkg/logger"
	"github.com/angelmondragon/storehub-console/pkg/metrics"
)

// App owns every wired dependency for one console invocation. The realtime
// client lives here rather than as a package singleton so its lifetime is
// bound to the session that created it.
type App struct {
	Cfg      *config.Config
	Logg     *logger.Logger
	Store    *session.Store
	Oracle   *session.Oracle
	Guard    *guard.Guard
	Users    *users.Client
	Audit    *audit.Client
	Rankings *rankings.Client
	Posts    *posts.Client
	Payments *payments.Client
	Realtime *realtime.Client
}

// NewApp bootstraps configuration, logging, the credential store, and the
// API clients.
func NewApp(ctx context.Context) (*App, error) {
	logg := logger.New(logger.Options{ServiceName: "console"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logg = logger.New(logger.Options{
		ServiceName: "console",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	m := metrics.NewClientMetrics(prometheus.NewRegistry())

	store := session.NewStore(cfg.Credentials.Path, logg)
	store.Migrate(ctx)
	oracle := session.NewOracle(store)

	apiClient, err := api.NewClient(cfg.API, store, logg, m)
	if err != nil {
		return nil, err
	}

	return &App{
		Cfg:      cfg,
		Logg:     logg,
		Store:    store,
		Oracle:   oracle,
		Guard:    guard.New(oracle, apiClient, logg),
		Users:    users.NewClient(apiClient),
		Audit:    audit.NewClient(apiClient),
		Rankings: rankings.NewClient(apiClient),
		Posts:    posts.NewClient(apiClient),
		Payments: payments.NewClient(apiClient),
		Realtime: realtime.NewClient(cfg.API.RealtimeURL(), cfg.Realtime, logg, m),
	}, nil
}

// requireAdmin runs the full admin gate before an admin command executes.
func (a *App) requireAdmin(ctx context.Context) error {
	decision := a.Guard.Authorize(ctx)
	if decision.Authorized() {
		return nil
	}
	return fmt.Errorf("not authorized (%s), go to %s", decision.Reason, decision.Route)
}

// requireCustomer resolves the customer id the session is bound to.
func (a *App) requireCustomer() (string, error) {
	if !a.Oracle.IsAuthenticated() {
		return "", fmt.Errorf("not logged in, go to %s", guard.LoginRoute)
	}
	id := a.Oracle.CurrentCustomerID()
	if id == "" {
		return "", fmt.Errorf("no customer is bound to this session")
	}
	return id, nil
}
