// Package cli provides the command-line interface for inkpad.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/bnema/inkpad/internal/application/usecase"
	"github.com/bnema/inkpad/internal/config"
	"github.com/bnema/inkpad/internal/infrastructure/documents"
	"github.com/bnema/inkpad/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/inkpad/internal/infrastructure/snapshot"
	"github.com/bnema/inkpad/internal/logging"
	"github.com/bnema/inkpad/internal/workspace"
)

// App holds the wired application components for CLI commands.
type App struct {
	Config  *config.Config
	DB      *sql.DB
	Store   *workspace.Store
	Saver   *snapshot.Service
	manager *config.Manager
}

// NewApp loads configuration, opens the layout database, and assembles the
// workspace engine with a restored layout.
func NewApp(ctx context.Context) (*App, error) {
	// Env-configured logger until the config file is loaded.
	ctx = logging.WithContext(ctx, logging.NewFromEnv())

	manager, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	if err := manager.Load(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := manager.Get()

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Logging.Level)
	if cfg.Logging.Format != "" {
		logCfg.Format = cfg.Logging.Format
	}
	logger := logging.New(logCfg)
	ctx = logging.WithContext(ctx, logger)

	db, err := sqlite.NewConnection(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout database: %w", err)
	}

	layoutRepo := sqlite.NewLayoutRepository(db)
	snapshotUC := usecase.NewSnapshotLayoutUseCase(layoutRepo)
	restoreUC := usecase.NewRestoreLayoutUseCase(layoutRepo)

	saver := snapshot.NewService(snapshotUC, cfg.Workspace.SaveDebounceMs)
	saver.Start(ctx)

	generateID := func() string { return uuid.NewString() }

	store := workspace.New(workspace.Config{
		PanesUC:    usecase.NewManagePanesUseCase(generateID),
		TabsUC:     usecase.NewManageTabsUseCase(generateID),
		NavUC:      usecase.NewNavigateUseCase(generateID),
		Saver:      saver,
		Documents:  documents.NewFilesystemProvider(cfg.Documents.NotesDir),
		GenerateID: generateID,
	})
	store.Load(ctx, restoreUC)

	// Live-reload the debounce interval when the config file changes.
	manager.OnConfigChange(func(updated *config.Config) {
		saver.SetInterval(updated.Workspace.SaveDebounceMs)
	})
	if err := manager.Watch(); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("config watch unavailable")
	}

	return &App{
		Config:  cfg,
		DB:      db,
		Store:   store,
		Saver:   saver,
		manager: manager,
	}, nil
}

// Close flushes pending saves and releases the database.
func (a *App) Close(ctx context.Context) error {
	if a.Saver != nil {
		a.Saver.Stop(ctx)
	}
	return sqlite.Close(a.DB)
}

func closeApp(ctx context.Context, app *App) {
	if closeErr := app.Close(ctx); closeErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close app: %v\n", closeErr)
	}
}
