package synthetic

import (
	"context"
	"flag"
	"fmt"
	"time"

	"babylon/courseloader/appcontext"
	"babylon/courseloader/config"
	"babylon/courseloader/course"
)

// RunGenerateSyntheticData parses the generate-synthetic-data flags and writes a synthetic course handbook.
func RunGenerateSyntheticData(ctx context.Context, args []string, cfg *config.Config) error {
	logger := appcontext.LoggerFromContext(ctx)

	genFlagSet := flag.NewFlagSet("generate-synthetic-data", flag.ContinueOnError)
	dir := genFlagSet.String("dir", cfg.SyntheticDataDir, "Directory to write the synthetic document to")
	perPrefix := genFlagSet.Int("per-prefix", cfg.SyntheticSubjectsPerPrefix, "Number of distinct subjects per prefix")
	seed := genFlagSet.Int64("seed", time.Now().UnixNano(), "Random seed")
	catalogPath := genFlagSet.String("catalog", cfg.CatalogPath, "Optional YAML course catalog")
	if err := genFlagSet.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	if *perPrefix <= 0 {
		return fmt.Errorf("per-prefix must be positive, got %d", *perPrefix)
	}

	catalog, err := course.LoadCatalog(*catalogPath)
	if err != nil {
		return fmt.Errorf("failed to load course catalog: %w", err)
	}

	logger.InfoContext(ctx, "Generating synthetic course document",
		"dir", *dir,
		"prefixes", len(catalog.Prefixes()),
		"perPrefix", *perPrefix,
		"seed", *seed,
	)
	path, err := GenerateSyntheticDocument(catalog.Prefixes(), *perPrefix, *seed, *dir)
	if err != nil {
		return fmt.Errorf("failed to generate synthetic data: %w", err)
	}
	logger.InfoContext(ctx, "Synthetic document generated successfully", "path", path)
	return nil
}
