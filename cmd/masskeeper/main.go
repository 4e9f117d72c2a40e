package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/masskeeper/masskeeper/internal/chart"
	"github.com/masskeeper/masskeeper/internal/csvio"
	"github.com/masskeeper/masskeeper/internal/flow"
	"github.com/masskeeper/masskeeper/internal/genai"
	"github.com/masskeeper/masskeeper/internal/lockfile"
	"github.com/masskeeper/masskeeper/internal/messaging"
	"github.com/masskeeper/masskeeper/internal/models"
	"github.com/masskeeper/masskeeper/internal/store"
	"github.com/masskeeper/masskeeper/internal/util"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for MassKeeper state data
	DefaultStateDir = "/var/lib/masskeeper"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "masskeeper.db"
	// tmpSubdir holds per-request artifacts (charts, CSV exports)
	tmpSubdir = "tmp"
)

func main() {
	// Initialize structured logger
	initializeLogger()

	// Load environment configuration
	config := loadEnvironmentConfig()

	// Parse command line flags
	flags := parseCommandLineFlags(config)

	// Ensure required directories exist
	if err := ensureDirectoriesExist(flags); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	slog.Info("Bootstrapping MassKeeper with configured modules")
	slog.Debug("Final configuration",
		"state_dir", *flags.stateDir,
		"dsn_set", *flags.dbDSN != "",
		"telegram_token_set", *flags.telegramToken != "",
		"openai_key_set", *flags.openaiKey != "")
	if err := run(flags); err != nil {
		slog.Error("MassKeeper failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("MassKeeper exited successfully")
}

// Config holds environment configuration
type Config struct {
	DatabaseURL          string
	StateDir             string
	TelegramToken        string
	OpenAIKey            string
	MaxBodyWeight        float64
	MaintenanceThreshold float64
	MaxFileSize          int64
}

// Flags holds command line flag values
type Flags struct {
	stateDir      *string
	dbDSN         *string
	telegramToken *string
	openaiKey     *string
	config        Config
}

// initializeLogger sets up structured logging with debug level
func initializeLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		StateDir:             os.Getenv("MASSKEEPER_STATE_DIR"),
		TelegramToken:        os.Getenv("TELEGRAM_TOKEN"),
		OpenAIKey:            os.Getenv("OPENAI_API_KEY"),
		MaxBodyWeight:        util.ParseFloatEnv("MAX_BODY_WEIGHT", models.DefaultMaxBodyWeight),
		MaintenanceThreshold: util.ParseFloatEnv("MAINTENANCE_THRESHOLD", models.DefaultMaintenanceThreshold),
		MaxFileSize:          util.ParseInt64Env("MAX_FILE_SIZE", models.DefaultMaxFileSize),
	}

	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No MASSKEEPER_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	}

	slog.Debug("environment variables loaded",
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"MASSKEEPER_STATE_DIR", config.StateDir,
		"TELEGRAM_TOKEN_SET", config.TelegramToken != "",
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"MAX_BODY_WEIGHT", config.MaxBodyWeight,
		"MAINTENANCE_THRESHOLD", config.MaintenanceThreshold,
		"MAX_FILE_SIZE", config.MaxFileSize)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	dbDSN := config.DatabaseURL
	if dbDSN == "" {
		dbDSN = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", dbDSN)
	}

	flags := Flags{
		stateDir:      flag.String("state-dir", config.StateDir, "state directory for MassKeeper data (overrides $MASSKEEPER_STATE_DIR)"),
		dbDSN:         flag.String("db-dsn", dbDSN, "database DSN (overrides $DATABASE_URL; a plain path selects SQLite)"),
		telegramToken: flag.String("telegram-token", config.TelegramToken, "Telegram bot token (overrides $TELEGRAM_TOKEN)"),
		openaiKey:     flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key (overrides $OPENAI_API_KEY)"),
		config:        config,
	}

	flag.Parse()

	// Follow a moved state directory when the DSN was derived from it.
	if *flags.dbDSN == dbDSN && config.DatabaseURL == "" && *flags.stateDir != config.StateDir {
		*flags.dbDSN = filepath.Join(*flags.stateDir, DefaultDBFileName)
		slog.Debug("Updated dbDSN based on state directory", "new_state_dir", *flags.stateDir)
	}

	slog.Debug("flags parsed",
		"stateDir", *flags.stateDir,
		"dbDSN_set", *flags.dbDSN != "",
		"telegramTokenSet", *flags.telegramToken != "",
		"openaiKeySet", *flags.openaiKey != "")

	return flags
}

// isPostgresDSN reports whether the DSN selects the Postgres store.
func isPostgresDSN(dsn string) bool {
	return strings.Contains(dsn, "postgres://") || strings.Contains(dsn, "host=")
}

// ensureDirectoriesExist creates necessary directories for file-based storage
func ensureDirectoriesExist(flags Flags) error {
	if !isPostgresDSN(*flags.dbDSN) {
		stateDir := filepath.Dir(*flags.dbDSN)
		slog.Debug("Creating state directory for file-based database", "state_dir", stateDir)
		if err := os.MkdirAll(stateDir, 0755); err != nil {
			return err
		}
	}
	return os.MkdirAll(filepath.Join(*flags.stateDir, tmpSubdir), 0755)
}

// buildStore selects and opens the persistence backend.
func buildStore(flags Flags) (store.Store, error) {
	if isPostgresDSN(*flags.dbDSN) {
		slog.Info("Using Postgres store")
		return store.NewPostgresStore(store.WithDSN(*flags.dbDSN))
	}
	slog.Info("Using SQLite store", "path", *flags.dbDSN)
	return store.NewSQLiteStore(store.WithDSN(*flags.dbDSN))
}

// run wires the modules together and pumps inbound messages until a
// shutdown signal arrives.
func run(flags Flags) error {
	// Two instances polling with the same token steal each other's
	// updates; refuse to start on a locked state directory.
	lock, err := lockfile.Acquire(*flags.stateDir)
	if err != nil {
		return err
	}
	defer lock.Release()

	st, err := buildStore(flags)
	if err != nil {
		return err
	}
	defer st.Close()

	tmpDir := filepath.Join(*flags.stateDir, tmpSubdir)
	renderer, err := chart.NewRenderer(tmpDir)
	if err != nil {
		return err
	}
	exporter := csvio.NewExporter(st, tmpDir)
	importer := csvio.NewImporter(st, nil, flags.config.MaxBodyWeight)

	service, err := messaging.NewTelegramService(messaging.WithToken(*flags.telegramToken))
	if err != nil {
		return err
	}

	machineOpts := []flow.Option{
		flow.WithAttachmentResolver(service.AttachmentURL),
		flow.WithConfig(flow.Config{
			MaxBodyWeight:        flags.config.MaxBodyWeight,
			MaintenanceThreshold: flags.config.MaintenanceThreshold,
			MaxFileSize:          flags.config.MaxFileSize,
		}),
	}
	if *flags.openaiKey != "" {
		os.Setenv("OPENAI_API_KEY", *flags.openaiKey)
		genaiClient, err := genai.NewClient()
		if err != nil {
			slog.Error("GenAI client unavailable, continuing without it", "error", err)
		} else {
			machineOpts = append(machineOpts, flow.WithGenAI(genaiClient))
			slog.Info("GenAI motivational replies enabled")
		}
	}
	machine := flow.NewMachine(st, renderer, exporter, importer, machineOpts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := service.Start(ctx); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("Shutdown signal received", "signal", sig)
		if err := service.Stop(); err != nil {
			slog.Error("Failed to stop messaging service", "error", err)
		}
		cancel()
	}()

	// One goroutine per inbound message: users are independent and
	// same-user races are accepted as last-write-wins.
	var wg sync.WaitGroup
	for msg := range service.Messages() {
		wg.Add(1)
		go func(msg models.Message) {
			defer wg.Done()
			handleMessage(ctx, machine, service, msg)
		}(msg)
	}
	wg.Wait()
	return nil
}

// handleMessage runs one turn and delivers its replies, cleaning up
// per-request artifacts afterwards.
func handleMessage(ctx context.Context, machine *flow.Machine, service messaging.Service, msg models.Message) {
	replies := machine.HandleTurn(ctx, msg)
	for _, reply := range replies {
		if err := service.SendReply(ctx, msg.UserID, reply, msg.MessageID); err != nil {
			slog.Error("Failed to send reply", "userID", msg.UserID, "error", err)
		}
		removeArtifacts(reply)
	}
}

// removeArtifacts deletes a reply's temp files, tolerating a missing
// file on cleanup.
func removeArtifacts(reply models.Reply) {
	for _, path := range []string{reply.PhotoPath, reply.DocumentPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("Failed to remove temp artifact", "path", path, "error", err)
		}
	}
}
