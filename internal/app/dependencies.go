package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/wealthdesk/onboarding/internal/amqp"
	"github.com/wealthdesk/onboarding/internal/config"
	"github.com/wealthdesk/onboarding/internal/database"
	"github.com/wealthdesk/onboarding/internal/event_bus"
	"github.com/wealthdesk/onboarding/internal/utils"
	"github.com/wealthdesk/onboarding/pkg/draft"
	"github.com/wealthdesk/onboarding/pkg/onboarding"
	"github.com/wealthdesk/onboarding/pkg/summary"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus

	DraftStore draft.Store

	Registry          *onboarding.Registry
	CsvTrendRenderer  *summary.CsvTrendRenderer
	OnboardingHandler *onboarding.Handler

	AmqpClient *amqp.Client

	closers []func()
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(ctx context.Context, cfg config.Application, clock utils.Clock) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Clock = clock
	deps.EventBus = event_bus.NewEventBus(deps.Clock)

	store, err := deps.openDraftStore(ctx, cfg)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.DraftStore = store

	deps.Registry = onboarding.NewRegistry(deps.DraftStore, deps.EventBus, deps.Clock, cfg.Session.IdleTtl)
	deps.CsvTrendRenderer = summary.NewCsvTrendRenderer()
	deps.OnboardingHandler = onboarding.NewHandler(deps.Registry, deps.DraftStore, deps.CsvTrendRenderer, deps.Clock)

	if cfg.Amqp.Enabled {
		client, err := amqp.NewClient(cfg.Amqp.Url, cfg.Amqp.Exchange, cfg.Amqp.RoutingKey)
		if err != nil {
			deps.Close()
			return nil, fmt.Errorf("failed to connect to AMQP broker: %w", err)
		}
		deps.AmqpClient = client
		deps.closers = append(deps.closers, func() { client.Close() })
		unsubscribe := amqp.ForwardSubmitted(deps.EventBus, client)
		deps.closers = append(deps.closers, unsubscribe)
		log.Infof("Forwarding submitted onboardings to exchange %s", cfg.Amqp.Exchange)
	}

	return deps, nil
}

func (deps *Dependencies) openDraftStore(ctx context.Context, cfg config.Application) (draft.Store, error) {
	switch cfg.Storage.Backend {
	case config.StoragePostgres:
		if err := database.Migrate(cfg.Database); err != nil {
			return nil, err
		}
		pool, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, pool.Close)
		log.Infof("Storing drafts in postgres %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
		return draft.NewPostgresStore(pool, deps.Clock), nil
	case config.StorageSQLite:
		db, err := database.OpenSQLite(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, func() { db.Close() })
		log.Infof("Storing drafts in sqlite %s", cfg.Storage.Path)
		return draft.NewSQLiteStore(db, deps.Clock), nil
	case config.StorageMemory, "":
		log.Infof("Storing drafts in memory with %s latency", cfg.Storage.Latency)
		return draft.NewMemoryStore(deps.Clock, cfg.Storage.Latency), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

// Close releases connections in reverse order of opening.
func (deps *Dependencies) Close() {
	for i := len(deps.closers) - 1; i >= 0; i-- {
		deps.closers[i]()
	}
	deps.closers = nil
}
