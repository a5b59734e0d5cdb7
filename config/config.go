package config

import (
	"time"
)

// Config holds the application configuration.
type Config struct {
	InputPath                  string
	OutputPath                 string
	WriteOutput                bool
	CatalogPath                string
	Format                     string
	MongoURI                   string
	SyntheticDataDir           string
	SyntheticSubjectsPerPrefix int
	Timeout                    time.Duration
}
