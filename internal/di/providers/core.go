package providers

import (
	"github.com/samber/do/v2"

	"bible-tui/internal/config"
	"bible-tui/internal/logger"
	"bible-tui/internal/storage"
	"bible-tui/internal/validation"
)

// LoggerHandle closes the log file on shutdown.
type LoggerHandle struct {
	*logger.Logger
}

// Shutdown implements do.Shutdownable.
func (h *LoggerHandle) Shutdown() error {
	return h.Close()
}

// ProvideLogger logs to stderr for the relay and to a file in the data
// directory for the terminal views, which own the screen.
func ProvideLogger(i do.Injector) (*LoggerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	lcfg := logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	}

	var log *logger.Logger
	if cfg.App.Mode == config.ModeServe {
		log = logger.New(lcfg)
	} else {
		var err error
		if log, err = logger.NewFile(cfg.Storage.DataDir, lcfg); err != nil {
			return nil, err
		}
	}

	log.Info("Starting bible-tui",
		"mode", cfg.App.Mode,
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_dir", cfg.Storage.DataDir,
	)
	return &LoggerHandle{Logger: log}, nil
}

// ProvideStorage opens the profile's key-value store.
func ProvideStorage(i do.Injector) (*storage.Store, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*LoggerHandle](i)

	store, err := storage.Open(cfg.Storage.DBPath(), log.Logger.Logger)
	if err != nil {
		return nil, err
	}
	log.Info("Storage opened", "path", store.Path())
	return store, nil
}

// ProvideValidator provides the shared struct validator.
func ProvideValidator(do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}
