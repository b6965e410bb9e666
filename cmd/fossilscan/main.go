package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/paleotools/fossilscan/internal/core"
	"github.com/paleotools/fossilscan/internal/di"
	"github.com/paleotools/fossilscan/internal/factory"
	"github.com/paleotools/fossilscan/internal/imaging"
	"github.com/paleotools/fossilscan/internal/logging"
	"github.com/paleotools/fossilscan/internal/meta"
)

// Version information - set by ldflags during build
var Version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	switch os.Args[1] {
	case "analyze":
		runAnalyze(os.Args[2:])
	case "info":
		runInfo()
	case "inspect":
		runInspect(os.Args[2:])
	case "database":
		runDatabase(os.Args[2:])
	case "--version", "-v", "version":
		fmt.Printf("fossilscan %s\n", Version)
	case "--help", "-h", "help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("fossilscan - heuristic fossil image analysis")
	fmt.Println()
	fmt.Println("Usage: fossilscan <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  analyze <path>            Analyze a fossil image or a directory of images")
	fmt.Println("  info                      Show system information")
	fmt.Println("  inspect <image>           Show image dimensions and EXIF provenance")
	fmt.Println("  database list             Print the species database")
	fmt.Println("  database search <query>   Search the species database")
	fmt.Println("  version                   Print version information")
}

func runAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	flags := &di.CLIFlags{}
	fs.StringVar(&flags.Output, "o", "results.json", "Output file for results")
	fs.StringVar(&flags.Format, "f", "json", "Output format (json, csv)")
	fs.StringVar(&flags.HistoryType, "history", "memory", "History backend (memory, sqlite, mysql)")
	fs.BoolVar(&flags.SkipDuplicates, "skip-duplicates", false, "Skip perceptual duplicates in batch mode")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	fs.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Println("Usage: fossilscan analyze <path> [-o out] [-f json|csv]")
		os.Exit(1)
	}
	path := fs.Arg(0)

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	err = container.Invoke(func(
		svc *core.AnalyzerService,
		repo core.HistoryRepository,
		exporters *factory.ExporterFactory,
		logger *zap.Logger,
	) error {
		defer logger.Sync()
		ctx := context.Background()

		stat, err := os.Stat(path)
		switch {
		case err == nil && stat.IsDir():
			results := svc.BatchAnalyze(ctx, path)
			fmt.Printf("Analyzed %d images\n", len(results))
		default:
			result := svc.AnalyzeImage(ctx, path)
			printJSON(result)
		}

		exporter, err := exporters.CreateExporter(flags.Format)
		if err != nil {
			return err
		}
		if err := svc.Export(ctx, exporter, flags.Output); err != nil {
			return err
		}
		fmt.Printf("Results saved to %s\n", flags.Output)

		// Close the history backend if it holds resources
		if stopper, ok := repo.(interface{ Stop() }); ok {
			stopper.Stop()
		}
		return nil
	})
	if err != nil {
		fmt.Printf("Analysis error: %v\n", err)
		os.Exit(1)
	}
}

func runInfo() {
	fmt.Printf("fossilscan %s\n", Version)
	fmt.Println("Supported formats: JPEG, PNG, BMP, TIFF")
	fmt.Println("Analysis features: Classification, Age Estimation, Preservation Assessment")
	fmt.Println("History backends: memory, sqlite, mysql")
}

func runInspect(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	verbose := fs.Bool("verbose", false, "Enable verbose logging")
	jsonLog := fs.Bool("json-log", false, "Output logs in JSON format")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Println("Usage: fossilscan inspect <image>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	buf, _, err := imaging.Load(path)
	if err != nil {
		logger.Fatal("Failed to load image", zap.Error(err))
	}

	fmt.Printf("Image: %s\n", path)
	fmt.Printf("Dimensions: %dx%d\n", buf.Width, buf.Height)

	prov, err := meta.ExtractFile(path)
	if err != nil {
		logger.Fatal("Failed to read metadata", zap.Error(err))
	}
	if prov == nil {
		fmt.Println("No EXIF metadata present")
		return
	}

	fmt.Println("EXIF:")
	printField("Artist", prov.Artist)
	printField("Copyright", prov.Copyright)
	printField("Camera make", prov.Make)
	printField("Camera model", prov.Model)
	printField("Captured at", prov.CapturedAt)
	printField("Description", prov.Description)
}

func printField(label, value string) {
	if value != "" {
		fmt.Printf("  %s: %s\n", label, value)
	}
}

func runDatabase(args []string) {
	fs := flag.NewFlagSet("database", flag.ExitOnError)
	flags := &di.CLIFlags{}
	fs.StringVar(&flags.DatabasePath, "db", "", "Path to the species database file")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	fs.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Println("Usage: fossilscan database {list|search} [query]")
		os.Exit(1)
	}
	action := fs.Arg(0)

	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	err = container.Invoke(func(repo core.SpeciesRepository, logger *zap.Logger) error {
		defer logger.Sync()
		ctx := context.Background()

		switch action {
		case "list":
			db, err := repo.List(ctx)
			if err != nil {
				return err
			}
			printJSON(db)
		case "search":
			if fs.NArg() < 2 {
				return fmt.Errorf("search requires a query")
			}
			query := fs.Arg(1)
			matches, err := repo.Search(ctx, query)
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Printf("No matches for: %s\n", query)
				return nil
			}
			printJSON(matches)
		default:
			return fmt.Errorf("unknown database action: %s", action)
		}
		return nil
	})
	if err != nil {
		fmt.Printf("Database error: %v\n", err)
		os.Exit(1)
	}
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to encode output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
