// Package wire provides dependency injection for the pulse application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	cliadapter "github.com/example/pulse/internal/adapters/cli"
	"github.com/example/pulse/internal/adapters/persistence"
	"github.com/example/pulse/internal/adapters/sqlite"
	"github.com/example/pulse/internal/app"
	"github.com/example/pulse/internal/config"
	"github.com/example/pulse/internal/db"
	"github.com/example/pulse/internal/logging"
	"github.com/example/pulse/internal/ports/primary"
)

var (
	initiativeService primary.InitiativeService
	updateService     primary.UpdateService
	dashboardService  primary.DashboardService
	sessionService    primary.SessionService
	database          *sql.DB
	once              sync.Once

	configDir string
	cfg       *config.Config
	logger    *zap.Logger
)

// Setup loads the configuration and builds the logger. Commands call it
// before touching any service; verbose forces debug logging.
func Setup(verbose bool) error {
	dir, err := config.DefaultDir()
	if err != nil {
		return err
	}
	loaded, err := config.Load(dir)
	if err != nil {
		return err
	}

	level := loaded.LogLevel
	if verbose {
		level = "debug"
	}
	l, err := logging.New(level)
	if err != nil {
		return err
	}

	configDir, cfg, logger = dir, loaded, l
	return nil
}

// Logger returns the shared logger, or a no-op logger before Setup.
func Logger() *zap.Logger {
	return logging.OrNop(logger)
}

// Close flushes the logger and closes the database if it was opened.
func Close() {
	if logger != nil {
		_ = logger.Sync()
	}
	if database != nil {
		_ = database.Close()
	}
}

// InitiativeService returns the singleton InitiativeService instance.
func InitiativeService() primary.InitiativeService {
	once.Do(initServices)
	return initiativeService
}

// UpdateService returns the singleton UpdateService instance.
func UpdateService() primary.UpdateService {
	once.Do(initServices)
	return updateService
}

// DashboardService returns the singleton DashboardService instance.
func DashboardService() primary.DashboardService {
	once.Do(initServices)
	return dashboardService
}

// SessionService returns the singleton SessionService instance.
func SessionService() primary.SessionService {
	once.Do(initServices)
	return sessionService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	if cfg == nil {
		if err := Setup(false); err != nil {
			log.Fatalf("failed to load configuration: %v", err)
		}
	}

	var err error
	database, err = db.Open(cfg.DatabaseDriver, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	initiativeRepo := sqlite.NewInitiativeRepository(database)
	updateRepo := sqlite.NewUpdateRepository(database)
	taskRepo := sqlite.NewTaskRepository(database)
	tx := sqlite.NewTransactor(database, logger)
	identity := persistence.NewConfigIdentityProvider(configDir)

	// Create services (primary ports implementation)
	initiativeService = app.NewInitiativeService(initiativeRepo, updateRepo, taskRepo, identity, tx, cfg.ReservedName, logger)
	updateService = app.NewUpdateService(initiativeRepo, updateRepo, taskRepo, identity, tx, cfg.TimelineWindow, logger)
	dashboardService = app.NewDashboardService(initiativeRepo, updateRepo, taskRepo, identity, language.English, logger)
	sessionService = app.NewSessionService(identity, logger)

	Logger().Debug("services initialized",
		zap.String("driver", cfg.DatabaseDriver),
		zap.String("database", cfg.DatabasePath),
	)
}

// Config returns the loaded configuration and the directory it lives in.
func Config() (string, *config.Config, error) {
	if cfg == nil {
		if err := Setup(false); err != nil {
			return "", nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}
	return configDir, cfg, nil
}

// InitiativeAdapter returns a new InitiativeAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func InitiativeAdapter() *cliadapter.InitiativeAdapter {
	return InitiativeAdapterWithOutput(os.Stdout)
}

// InitiativeAdapterWithOutput returns a new InitiativeAdapter writing to the given output.
func InitiativeAdapterWithOutput(out io.Writer) *cliadapter.InitiativeAdapter {
	return cliadapter.NewInitiativeAdapter(InitiativeService(), out)
}

// UpdateAdapter returns a new UpdateAdapter writing to stdout.
func UpdateAdapter() *cliadapter.UpdateAdapter {
	return cliadapter.NewUpdateAdapter(UpdateService(), os.Stdout)
}

// DashboardAdapter returns a new DashboardAdapter writing to stdout.
func DashboardAdapter() *cliadapter.DashboardAdapter {
	return cliadapter.NewDashboardAdapter(DashboardService(), os.Stdout)
}

// ContainerAdapter returns a new ContainerAdapter writing to stdout.
func ContainerAdapter() *cliadapter.ContainerAdapter {
	return cliadapter.NewContainerAdapter(InitiativeService(), UpdateService(), os.Stdout)
}

// SessionAdapter returns a new SessionAdapter writing to stdout.
func SessionAdapter() *cliadapter.SessionAdapter {
	return cliadapter.NewSessionAdapter(SessionService(), os.Stdout)
}
