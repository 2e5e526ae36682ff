package cmd

import (
	"fmt"

	"github.com/tressa-sh/tressa/internal/api"
	"github.com/tressa-sh/tressa/internal/config"
	"github.com/tressa-sh/tressa/internal/history"
	"github.com/tressa-sh/tressa/internal/session"
)

// loadConfig loads and validates the config, applying the --server override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `tressa init` to create a config file", err)
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// clientDeps is the wiring every networked command needs: the config, the
// persisted session, the API client bound to it, and the auth manager.
type clientDeps struct {
	cfg      *config.Config
	store    *session.Store
	client   *api.Client
	sessions *session.Manager
}

// openClient builds the client wiring from config and the session file.
func openClient() (*clientDeps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	sessPath, err := session.DefaultPath()
	if err != nil {
		return nil, err
	}
	store, err := session.Open(sessPath)
	if err != nil {
		return nil, fmt.Errorf("opening session: %w", err)
	}

	client := api.New(cfg.ServerURL, store)
	return &clientDeps{
		cfg:      cfg,
		store:    store,
		client:   client,
		sessions: session.NewManager(store, client),
	}, nil
}

// openHistory opens the local history store.
func openHistory() (*history.Store, func(), error) {
	path, err := history.DefaultPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := history.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening local history: %w", err)
	}
	return history.NewStore(db), func() { db.Close() }, nil
}
