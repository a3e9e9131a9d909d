package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driven/api"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driven/cognito"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driven/storage/memory"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driven/storage/sqlite"
	"github.com/kameleon-labs/kameleon-cli/internal/adapters/driving/cli"
	"github.com/kameleon-labs/kameleon-cli/internal/config"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driven"
	"github.com/kameleon-labs/kameleon-cli/internal/core/services"
	"github.com/kameleon-labs/kameleon-cli/internal/logger"
)

const storageMemory = "memory"

// bootstrapper builds the backend services once flags have been applied
// to the settings.
type bootstrapper struct {
	env      *config.Env
	home     string
	settings *services.SettingsService

	store *sqlite.Store
}

// Services wires the stores, identity provider, API client and services.
func (b *bootstrapper) Services(ctx context.Context) (*cli.Services, error) {
	cfg, err := b.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if err := b.settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	sessions, activity, err := b.stores()
	if err != nil {
		return nil, err
	}

	provider, err := cognito.New(ctx, cognito.Config{
		Region:   cfg.Auth.Region,
		ClientID: cfg.Auth.ClientID,
		Endpoint: b.env.Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("creating identity provider: %w", err)
	}

	session := services.NewSessionManager(provider, sessions)
	if err := session.Initialize(ctx); err != nil {
		logger.Warn("restoring session: %v", err)
	}

	client, err := api.NewClient(api.Config{
		BaseURL:   cfg.API.URL,
		Timeout:   cfg.API.Timeout(),
		RateLimit: cfg.API.RateLimit,
		Burst:     cfg.API.Burst,
	}, session)
	if err != nil {
		return nil, err
	}
	logger.Debug("backend %s", client.BaseURL())

	documents := services.NewDocumentService(api.NewDocuments(client), activity)
	personas := services.NewPersonaService(api.NewPersonas(client), activity)
	templates := services.NewTemplateService(api.NewTemplates(client), activity)
	axioms := services.NewAxiomService(api.NewAxioms(client), activity)

	return &cli.Services{
		Session:   session,
		Auth:      services.NewAuthFlows(session),
		Axioms:    axioms,
		Templates: templates,
		Personas:  personas,
		Documents: documents,
		Reviews:   services.NewReviewService(api.NewReviews(client), activity),
		Profile:   services.NewProfileService(api.NewProfile(client)),
		Dashboard: services.NewDashboardService(session, documents, personas, templates, axioms, activity),
	}, nil
}

// stores opens the local session and activity stores.
func (b *bootstrapper) stores() (driven.SessionStore, driven.ActivityStore, error) {
	if strings.EqualFold(b.env.Storage, storageMemory) {
		logger.Debug("storage: memory")
		return memory.NewSessionStore(), memory.NewActivityStore(), nil
	}

	store, err := sqlite.NewStore(b.home)
	if err != nil {
		return nil, nil, fmt.Errorf("opening local store: %w", err)
	}
	b.store = store
	logger.Debug("storage: %s", store.Path())
	return store.SessionStore(), store.ActivityStore(), nil
}

// Close releases the local store.
func (b *bootstrapper) Close() {
	if b.store == nil {
		return
	}
	if err := b.store.Close(); err != nil {
		logger.Warn("closing local store: %v", err)
	}
}
