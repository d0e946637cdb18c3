package cmd

import (
	"context"
	"fmt"

	"catalog-reconciler/core/config"
	"catalog-reconciler/core/database"
	"catalog-reconciler/core/ingest"
	"catalog-reconciler/core/logger"
	"catalog-reconciler/core/storage"
	"catalog-reconciler/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app bundles the collaborators every command needs.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	profiles *catalog.Registry
	client   storage.Client
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	profiles := catalog.NewRegistry()
	profilesFile := cfg.Reconcile.ProfilesFile
	if f, _ := cmd.Flags().GetString("profiles"); f != "" {
		profilesFile = f
	}
	if profilesFile != "" {
		if err := profiles.LoadProfiles(profilesFile); err != nil {
			return nil, err
		}
		l.Debug("Loaded profiles file", zap.String("path", profilesFile))
	}

	// The MinIO client connects lazily, so it is cheap to build even when unused.
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}

	return &app{cfg: cfg, log: l, profiles: profiles, client: client}, nil
}

func (a *app) service() *catalog.Service {
	return catalog.NewService(&ingest.Opener{Storage: a.client}, a.profiles, a.log)
}

// store connects to the database and brings the products table up to date.
func (a *app) store(ctx context.Context) (*catalog.Store, error) {
	db, err := database.Connect(a.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := catalog.NewStore(db)
	added, err := store.Migrate(ctx)
	if err != nil {
		return nil, err
	}
	if len(added) > 0 {
		a.log.Info("Products table migrated", zap.Strings("added_columns", added))
	}
	return store, nil
}
