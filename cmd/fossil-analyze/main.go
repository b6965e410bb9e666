package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/paleotools/fossilscan/internal/config"
	"github.com/paleotools/fossilscan/internal/core"
	"github.com/paleotools/fossilscan/internal/factory"
	"github.com/paleotools/fossilscan/internal/logging"
)

var (
	// Input flags
	imagePath = flag.String("image", "", "Path to fossil image")
	directory = flag.String("directory", "", "Directory containing fossil images")

	// Export flags
	output = flag.String("output", "results.json", "Output file for results")
	format = flag.String("format", "json", "Output format (json, csv)")

	// History flags
	historyType = flag.String("history", "memory", "History backend (memory, sqlite, mysql)")

	// Batch flags
	skipDuplicates = flag.Bool("skip-duplicates", false, "Skip perceptual duplicates in batch mode")

	// Logging flags
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration from file if specified
	var cfg *config.Config
	if *configFile != "" {
		cfg, err = config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		cfg = createConfigFromFlags()
	}

	fmt.Println("============================================================")
	fmt.Println("Paleontology Analysis Tools")
	fmt.Println("Heuristic Fossil Identification System")
	fmt.Println("============================================================")
	fmt.Println()

	// Create history backend
	historyFactory := factory.NewHistoryFactory(cfg, logger)
	repo, err := historyFactory.CreateHistoryRepository()
	if err != nil {
		logger.Fatal("Failed to create history backend", zap.Error(err))
	}
	defer func() {
		if stopper, ok := repo.(interface{ Stop() }); ok {
			stopper.Stop()
		}
	}()

	svc := core.NewAnalyzerService(repo, logger, cfg.GetBatch().SkipDuplicates)
	ctx := context.Background()

	// Analyze single image or directory
	switch {
	case *imagePath != "":
		fmt.Printf("Analyzing single image: %s\n", *imagePath)
		result := svc.AnalyzeImage(ctx, *imagePath)
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			logger.Fatal("Failed to encode result", zap.Error(err))
		}
		fmt.Println(string(data))

	case *directory != "":
		fmt.Printf("Batch analyzing directory: %s\n", *directory)
		results := svc.BatchAnalyze(ctx, *directory)
		fmt.Printf("Analyzed %d images\n", len(results))

	default:
		fmt.Println("No image or directory specified. Use --help for usage information.")
		return
	}

	// Export results
	history, err := svc.History(ctx)
	if err != nil {
		logger.Fatal("Failed to load history", zap.Error(err))
	}
	if len(history) == 0 {
		return
	}

	exportCfg := cfg.GetExport()
	exporter, err := factory.NewExporterFactory(logger).CreateExporter(exportCfg.Format)
	if err != nil {
		logger.Fatal("Failed to create exporter", zap.Error(err))
	}
	if err := svc.Export(ctx, exporter, exportCfg.Output); err != nil {
		logger.Fatal("Failed to export results", zap.Error(err))
	}
	fmt.Printf("\nAnalysis complete! Results saved to %s\n", exportCfg.Output)
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	v.Set("history.type", *historyType)
	v.Set("export.format", *format)
	v.Set("export.output", *output)
	v.Set("batch.skip_duplicates", *skipDuplicates)

	return config.NewFromViper(v)
}
