package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/paleotools/fossilscan/internal/adapters/speciesdb"
	"github.com/paleotools/fossilscan/internal/config"
	"github.com/paleotools/fossilscan/internal/core"
	"github.com/paleotools/fossilscan/internal/factory"
	"github.com/paleotools/fossilscan/internal/logging"
)

// CLIFlags contains the command line options shared by the fossilscan commands
type CLIFlags struct {
	// Export flags
	Output string
	Format string

	// History flags
	HistoryType string

	// Batch flags
	SkipDuplicates bool

	// Species database flags
	DatabasePath string

	// Logging flags
	Verbose bool
	JSONLog bool

	ConfigFile string
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewHistoryFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewExporterFactory); err != nil {
		return nil, err
	}

	// Register history repository
	if err := container.Provide(func(f *factory.HistoryFactory) (core.HistoryRepository, error) {
		return f.CreateHistoryRepository()
	}); err != nil {
		return nil, err
	}

	// Register species repository
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.SpeciesRepository {
		return speciesdb.NewFileRepository(cfg.GetDatabase().Path, logger)
	}); err != nil {
		return nil, err
	}

	// Register analyzer service
	if err := container.Provide(func(
		repo core.HistoryRepository,
		cfg *config.Config,
		logger *zap.Logger,
	) *core.AnalyzerService {
		return core.NewAnalyzerService(repo, logger, cfg.GetBatch().SkipDuplicates)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	if flags.HistoryType != "" {
		v.Set("history.type", flags.HistoryType)
	}
	if flags.Format != "" {
		v.Set("export.format", flags.Format)
	}
	if flags.Output != "" {
		v.Set("export.output", flags.Output)
	}
	if flags.DatabasePath != "" {
		v.Set("database.path", flags.DatabasePath)
	}
	v.Set("batch.skip_duplicates", flags.SkipDuplicates)

	return config.NewFromViper(v)
}
