package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gitlab.com/dirk.krummacker/contacts-assistant/internal/book"
	"gitlab.com/dirk.krummacker/contacts-assistant/internal/config"
	"gitlab.com/dirk.krummacker/contacts-assistant/internal/dispatch"
	"gitlab.com/dirk.krummacker/contacts-assistant/internal/storage"
	"gitlab.com/dirk.krummacker/contacts-assistant/internal/view"
)

var version = "dev"

// CLI holds the startup flags of the assistant. The interactive commands
// themselves are read from the prompt, not from flags.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Config  string           `help:"Path to the configuration file." default:"assistant.yaml"`
	Data    string           `help:"Override the data file path from the configuration."`
	Backend string           `help:"Override the storage backend." enum:",snapshot,sqlite" default:""`
}

// Usage example on the command line:
// > go run main.go --backend=sqlite --data=contacts.db
func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("assistant"),
		kong.Description("Personal contact-book assistant."),
		kong.Vars{"version": version},
	)
	if err := run(cli, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cli CLI, in io.Reader, out io.Writer) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if cli.Data != "" {
		cfg.Storage.Path = cli.Data
	}
	if cli.Backend != "" {
		cfg.Storage.Backend = cli.Backend
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := buildLogger(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}

	b, err := store.Load()
	if err != nil {
		logger.Warn("loading address book failed, starting empty", zap.Error(err))
		b = book.New()
	}

	v := view.NewConsole(out)
	v.Message("Welcome to the assistant bot!")
	dispatch.New(b, store, v, logger).Run(in)
	return nil
}

// buildLogger creates a logger that writes to stderr only, keeping the
// prompt on stdout free of log lines.
func buildLogger(level string) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func openStore(cfg *config.Config, logger *zap.Logger) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return storage.OpenSQLite(cfg.Storage.Path, logger)
	default:
		return storage.NewSnapshotStore(cfg.Storage.Path, logger), nil
	}
}
