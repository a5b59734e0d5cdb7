// main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"babylon/courseloader/appcontext"
	"babylon/courseloader/config"
	"babylon/courseloader/course"
	"babylon/courseloader/datalake"
	"babylon/courseloader/extractor"
	"babylon/courseloader/storage"
	"babylon/courseloader/subject"
	"babylon/courseloader/synthetic"
)

const (
	minArgs     = 2
	envFilePath = ".env"
)

func main() {
	if err := config.LoadEnvFile(envFilePath); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	// Create the logger instance at the very beginning. Logs go to stderr so stdout
	// carries only the rendered report.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.LogLevel(),
	}))

	if len(os.Args) < minArgs {
		logger.Error("Usage: courseloader <extract|persist|generate-synthetic-data> [options]")
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	if err := run(logger, os.Stdout, command, args); err != nil {
		logger.Error("Application terminated with an error", "error", fmt.Sprintf("%+v", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, out io.Writer, command string, args []string) error {
	baseCtx := appcontext.WithLogger(context.Background(), logger)
	cfg := config.LoadConfig(baseCtx, logger)

	ctx, cancel := context.WithTimeout(baseCtx, cfg.Timeout)
	defer cancel()

	switch command {
	case "extract":
		return runExtract(ctx, logger, out, cfg, args)
	case "persist":
		return runPersist(ctx, logger, cfg, args)
	case "generate-synthetic-data":
		return synthetic.RunGenerateSyntheticData(ctx, args, cfg)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func runExtract(ctx context.Context, logger *slog.Logger, out io.Writer, cfg *config.Config, args []string) error {
	extractFlagSet := flag.NewFlagSet("extract", flag.ContinueOnError)
	extractFlagSet.StringVar(&cfg.InputPath, "input", cfg.InputPath, "Course document to scan")
	extractFlagSet.StringVar(&cfg.OutputPath, "output", cfg.OutputPath, "File to write the report to")
	extractFlagSet.BoolVar(&cfg.WriteOutput, "write", cfg.WriteOutput, "Write the report to -output")
	extractFlagSet.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "Optional YAML course catalog")
	extractFlagSet.StringVar(&cfg.Format, "format", cfg.Format, "Report format: json or csv")
	if err := extractFlagSet.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if err := config.ValidateFormat(cfg.Format); err != nil {
		return err
	}
	cfg.OutputPath = config.OutputPathForFormat(cfg.OutputPath, cfg.Format)

	ext, err := newExtractor(cfg)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "Parsing courses and subjects", "input", cfg.InputPath)
	rendered, err := ext.Run(ctx)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	logger.InfoContext(ctx, "Generated report")
	if _, err := fmt.Fprintln(out, rendered); err != nil {
		return fmt.Errorf("failed to print report: %w", err)
	}
	return nil
}

func runPersist(ctx context.Context, logger *slog.Logger, cfg *config.Config, args []string) error {
	persistFlagSet := flag.NewFlagSet("persist", flag.ContinueOnError)
	persistFlagSet.StringVar(&cfg.InputPath, "input", cfg.InputPath, "Course document to scan")
	persistFlagSet.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "Optional YAML course catalog")
	persistFlagSet.StringVar(&cfg.MongoURI, "mongo-uri", cfg.MongoURI, "MongoDB connection string")
	if err := persistFlagSet.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	ext, err := newExtractor(cfg)
	if err != nil {
		return err
	}

	client, err := storage.ConnectToMongoDB(ctx, cfg.MongoURI)
	if err != nil {
		return fmt.Errorf("connection to MongoDB failed: %w", err)
	}
	defer func() {
		if deferErr := client.Disconnect(ctx); deferErr != nil {
			logger.ErrorContext(ctx, "Error disconnecting from MongoDB", "error", deferErr)
		}
	}()

	repo := storage.NewMongoRepository(storage.NewMongoProvider(client))
	published, err := ext.Publish(ctx, datalake.NewClient(), repo)
	if err != nil {
		return fmt.Errorf("persisting report failed: %w", err)
	}

	logger.InfoContext(ctx, "Course report persisted successfully", "courses", published)
	return nil
}

func newExtractor(cfg *config.Config) (*extractor.Extractor, error) {
	catalog, err := course.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load course catalog: %w", err)
	}

	return extractor.New(extractor.Dependencies{
		Config:  cfg,
		Scanner: subject.NewLineScanner(),
		Catalog: catalog,
	})
}
