package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default values.
const (
	defaultTimeoutSeconds             = 30
	defaultInputPath                  = "./course_and_subject_list.md"
	defaultOutputPath                 = "./course_and_subject.json"
	defaultCSVOutputPath              = "./course_and_subject.csv"
	defaultWriteOutput                = true
	defaultFormat                     = FormatJSON
	defaultMongoHost                  = "localhost"
	defaultMongoPort                  = "27017"
	defaultSyntheticDataDir           = "tmp/synthetic"
	defaultSyntheticSubjectsPerPrefix = 6
	envInputPath                      = "INPUT_PATH"
	envOutputPath                     = "OUTPUT_PATH"
	envWriteOutput                    = "WRITE_OUTPUT"
	envCatalogPath                    = "CATALOG_PATH"
	envFormat                         = "OUTPUT_FORMAT"
	envLogLevel                       = "LOG_LEVEL"
	envMongoURI                       = "MONGO_URI"
	envMongoHost                      = "MONGO_HOST"
	envMongoUser                      = "MONGO_USER"
	envMongoPassword                  = "MONGO_PASSWORD"
	envSyntheticDataDir               = "SYNTHETIC_DATA_DIR"
	envSyntheticSubjectsPerPrefix     = "SYNTHETIC_SUBJECTS_PER_PREFIX"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

var errUnknownFormat = errors.New("unknown output format")

// UnknownFormatError wraps errUnknownFormat with the rejected value.
func UnknownFormatError(format string) error {
	return fmt.Errorf("%w, %s", errUnknownFormat, format)
}

// ValidateFormat returns an error unless format is json or csv.
func ValidateFormat(format string) error {
	switch format {
	case FormatJSON, FormatCSV:
		return nil
	default:
		return UnknownFormatError(format)
	}
}

// OutputPathForFormat returns the file a report in format should be written to. The built-in
// default path follows the format; any other path is returned unchanged.
func OutputPathForFormat(path, format string) string {
	if format == FormatCSV && path == defaultOutputPath {
		return defaultCSVOutputPath
	}
	return path
}

// LoadEnvFile loads variables from a .env file. A missing file is not an error.
// Variables already set in the environment win.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}

	return nil
}

// LogLevel returns the slog level named by LOG_LEVEL, defaulting to info.
func LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv(envLogLevel))); err != nil {
		return slog.LevelInfo
	}

	return level
}

// LoadConfig loads the application configuration from environment variables or uses default values.
func LoadConfig(ctx context.Context, logger *slog.Logger) *Config {
	mongoURI := formatMongoURI(ctx, os.Getenv(envMongoURI), logger)

	format := strings.ToLower(getEnvString(ctx, logger, envFormat, defaultFormat))
	if err := ValidateFormat(format); err != nil {
		logger.WarnContext(ctx, "Invalid value for OUTPUT_FORMAT, using default",
			"value", format,
			"default", defaultFormat,
			"error", err,
		)
		format = defaultFormat
	}

	return &Config{
		InputPath:                  getEnvString(ctx, logger, envInputPath, defaultInputPath),
		OutputPath:                 getEnvString(ctx, logger, envOutputPath, defaultOutputPath),
		WriteOutput:                getEnvBool(ctx, logger, envWriteOutput, defaultWriteOutput),
		CatalogPath:                getEnvString(ctx, logger, envCatalogPath, ""),
		Format:                     format,
		MongoURI:                   mongoURI,
		SyntheticDataDir:           getEnvString(ctx, logger, envSyntheticDataDir, defaultSyntheticDataDir),
		SyntheticSubjectsPerPrefix: getEnvInt(ctx, logger, envSyntheticSubjectsPerPrefix, defaultSyntheticSubjectsPerPrefix),
		Timeout:                    defaultTimeoutSeconds * time.Second,
	}
}

// Fetch a string env var or fall back to a default value.
func getEnvString(ctx context.Context, logger *slog.Logger, key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		logger.DebugContext(ctx, "Using default value", "key", key, "value", fallback)
		return fallback
	}

	logger.DebugContext(ctx, "Using value from environment variable", "key", key, "value", value)
	return value
}

func getEnvBool(ctx context.Context, logger *slog.Logger, key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		logger.DebugContext(ctx, "Using default value", "key", key, "value", fallback)
		return fallback
	}

	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		logger.WarnContext(ctx, "Invalid boolean in environment, using default",
			"key", key,
			"value", raw,
			"default", fallback,
			"error", err,
		)
		return fallback
	}

	logger.DebugContext(ctx, "Using value from environment variable", "key", key, "value", parsed)
	return parsed
}

func getEnvInt(ctx context.Context, logger *slog.Logger, key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		logger.DebugContext(ctx, "Using default value", "key", key, "value", fallback)
		return fallback
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		logger.WarnContext(ctx, "Invalid positive integer in environment, using default",
			"key", key,
			"value", raw,
			"default", fallback,
			"error", err,
		)
		return fallback
	}

	logger.DebugContext(ctx, "Using value from environment variable", "key", key, "value", parsed)
	return parsed
}

// formatMongoURI formats mongo settings to a url and return the result.
func formatMongoURI(
	ctx context.Context,
	mongoURI string,
	logger *slog.Logger,
) string {
	if mongoURI != "" {
		logger.DebugContext(ctx, "Using MongoDB URI from environment variable")
		return mongoURI
	}

	mongoHost := os.Getenv(envMongoHost)
	if mongoHost == "" {
		mongoHost = defaultMongoHost
		logger.DebugContext(ctx, "Using default MongoDB host", "host", mongoHost)
	} else {
		logger.DebugContext(ctx, "Using MongoDB host from environment variable", "host", mongoHost)
	}

	mongoUser := os.Getenv(envMongoUser)
	mongoPassword := os.Getenv(envMongoPassword)
	hostPort := net.JoinHostPort(mongoHost, defaultMongoPort)

	if mongoUser != "" && mongoPassword != "" {
		mongoURI = fmt.Sprintf(
			"mongodb://%s:%s@%s/datalake?authSource=admin",
			mongoUser,
			mongoPassword,
			hostPort,
		)
		logger.DebugContext(ctx, "Created MongoDB URI from user, password, and host", "host", hostPort)
	} else {
		mongoURI = fmt.Sprintf("mongodb://%s/datalake", hostPort)
		logger.DebugContext(ctx, "Created MongoDB URI from host", "uri", mongoURI)
	}
	return mongoURI
}
