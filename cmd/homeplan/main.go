package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmolina/homeplan/internal/config"
	"github.com/dmolina/homeplan/internal/report"
	"github.com/dmolina/homeplan/internal/server"
	"github.com/dmolina/homeplan/internal/storage"
	"github.com/dmolina/homeplan/pkg/constants"
	"github.com/dmolina/homeplan/pkg/output"
	"github.com/dmolina/homeplan/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "start the HTTP API server instead of a one-shot run")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	dbPath := flag.String("db", "", "path to a SQLite snapshot database (optional)")
	saveSnapshot := flag.Bool("save-snapshot", false, "save the loaded configuration as a snapshot in -db")
	snapshotID := flag.String("snapshot", "", "load a stored snapshot by id (or 'latest') instead of the config file")
	flag.Parse()

	// Environment files are optional and only ever supplement the environment.
	_ = godotenv.Load()

	if *serve {
		runServer(*serverConfigLocation, *logLevel)
		return
	}

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Snapshot handling replaces or persists the scenario/house collections.
	if *dbPath != "" {
		conf, err = applySnapshotFlags(logger, conf, *dbPath, *snapshotID, *saveSnapshot)
		if err != nil {
			logger.Fatal("snapshot handling failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	} else if *saveSnapshot || *snapshotID != "" {
		logger.Fatal("-save-snapshot and -snapshot require -db",
			zap.String("op", "main"),
		)
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Derive the effective net monthly income for every scenario.
	conf.Resolve(logger)

	// Compute the scenario by house affordability matrix.
	results := report.Build(logger, *conf)

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results)
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	}
}

// applySnapshotFlags loads a stored snapshot when requested and/or persists
// the current configuration as a new snapshot.
func applySnapshotFlags(logger *zap.Logger, conf *config.Configuration, dbPath, snapshotID string, save bool) (*config.Configuration, error) {
	repo, err := storage.NewRepository(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open snapshot database: %w", err)
	}
	defer func() {
		_ = repo.Close()
	}()

	ctx := context.Background()

	if snapshotID != "" {
		id := snapshotID
		if id == "latest" {
			id, err = repo.LatestSnapshotID(ctx)
			if err != nil {
				return nil, err
			}
		}
		stored, err := repo.LoadSnapshot(ctx, id)
		if err != nil {
			return nil, err
		}
		// Logging and output settings are not persisted; keep the file's.
		stored.Logging = conf.Logging
		stored.Output = conf.Output
		logger.Info("loaded configuration snapshot",
			zap.String("op", "main"),
			zap.String("snapshot", id),
		)
		conf = stored
	}

	if save {
		id, err := repo.SaveSnapshot(ctx, "cli", *conf)
		if err != nil {
			return nil, fmt.Errorf("save snapshot: %w", err)
		}
		logger.Info("saved configuration snapshot",
			zap.String("op", "main"),
			zap.String("snapshot", id),
		)
	}

	return conf, nil
}

// runServer starts the HTTP API server.
func runServer(serverConfigLocation, logLevelOverride string) {
	serverConf, err := server.LoadConfig(serverConfigLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration\", \"error\": \"%v\"}\n", err)
		return
	}

	logger, err := initializeLogger(serverConf.Logging, logLevelOverride)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	handler := server.NewHandler(logger, serverConf.UploadSizeBytes(), version)

	logger.Info("starting HTTP server",
		zap.String("op", "main"),
		zap.String("address", serverConf.Address),
	)
	if err := http.ListenAndServe(serverConf.Address, handler); err != nil {
		logger.Fatal("server stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
