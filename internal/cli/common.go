package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/roomview-sql/roomview/internal/config"
	"github.com/roomview-sql/roomview/internal/db"
	"github.com/roomview-sql/roomview/internal/files/scanner"
	"github.com/roomview-sql/roomview/internal/graph"
	"github.com/roomview-sql/roomview/internal/logging"
	"github.com/roomview-sql/roomview/internal/services"
	"github.com/roomview-sql/roomview/internal/ui"
	"github.com/roomview-sql/roomview/pkg/roomview"
)

// passwordEnvVar overrides a missing password in settings.yaml so
// credentials can stay out of committed configuration.
const passwordEnvVar = "ROOMVIEW_PASSWORD"

// targetFlags are the flags shared by every command that reads the SQL
// corpus: which settings file, which named connection, and which named
// source directories.
type targetFlags struct {
	settings    string
	connection  string
	directories []string
	timeout     time.Duration
}

func registerTargetFlags(cmd *cobra.Command, flags *targetFlags) {
	cmd.Flags().StringVar(&flags.settings, "settings", config.DefaultFileName,
		"Path to the settings file naming connections and directories")
	cmd.Flags().StringVarP(&flags.connection, "connection", "c", config.DefaultName,
		"Named connection from settings.yaml to execute against")
	cmd.Flags().StringSliceVarP(&flags.directories, "directories", "d", []string{config.DefaultName},
		"Named directory entries from settings.yaml to scan for .sql files\n"+
			"(can be specified multiple times or comma-separated)")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 3*time.Minute,
		"Catastrophic failure protection timeout\n"+
			"Prevents indefinite hangs from network issues; not a per-statement limit")
}

// environment is everything a command needs before touching the
// warehouse: parsed settings, the dependency graph built from the
// configured directories, and the shared logger and scanner.
type environment struct {
	settings *config.Settings
	graph    *graph.Graph
	logger   roomview.Logger
	scanner  *scanner.Scanner
}

// buildEnvironment loads .env and settings.yaml, scans the configured
// directories, and builds the dependency graph. No SQL is issued here;
// selector and graph errors surface before any connection is made.
func buildEnvironment(flags *targetFlags, verbose bool) (*environment, error) {
	// Optional .env in the working directory; absence is not an error.
	_ = godotenv.Load()

	logger := logging.NewConsoleLogger(verbose)

	settings, err := config.Load(flags.settings)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	roots, err := settings.ResolveDirectories(flags.directories)
	if err != nil {
		return nil, err
	}

	fileScanner := scanner.NewScanner()
	sources, err := fileScanner.ScanDirectories(roots)
	if err != nil {
		return nil, err
	}
	logger.Verbose("Scanned %d source files under %d directories", len(sources), len(roots))

	g, err := graph.Build(sources)
	if err != nil {
		return nil, err
	}
	logger.Verbose("Dependency graph holds %d statements", g.Len())

	return &environment{
		settings: settings,
		graph:    g,
		logger:   logger,
		scanner:  fileScanner,
	}, nil
}

// connect resolves the named connection and opens a pooled executor.
// The returned cleanup closes the pool.
func (e *environment) connect(ctx context.Context, connectionName string) (roomview.Executor, func(), error) {
	connCfg, err := e.settings.Connection(connectionName)
	if err != nil {
		return nil, nil, err
	}

	if err := resolvePassword(&connCfg); err != nil {
		return nil, nil, err
	}

	connector, err := db.NewConnector(connCfg)
	if err != nil {
		return nil, nil, err
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, nil, err
	}

	e.logger.Verbose("Connected to %s:%d/%s", connCfg.Host, connCfg.Port, connCfg.Database)
	return db.NewPoolExecutor(pool), pool.Close, nil
}

// syncService assembles the orchestrator. force selects the
// non-interactive approver for bulk operations.
func (e *environment) syncService(executor roomview.Executor, force bool) *services.SyncService {
	var approver roomview.Approver
	if force {
		approver = ui.NewForcedApprover()
	} else {
		approver = ui.NewInteractiveApprover()
	}
	return services.NewSyncService(executor, approver, e.logger, e.scanner)
}

// resolvePassword fills in a missing password for standard auth:
// $ROOMVIEW_PASSWORD, then $PGPASSWORD, then an interactive prompt when
// stdin is a terminal. Token-based auth needs no password.
func resolvePassword(cfg *config.ConnectionConfig) error {
	if cfg.AuthMethod == db.AuthMethodAWSIAM || cfg.Password != "" {
		return nil
	}

	if pw := os.Getenv(passwordEnvVar); pw != "" {
		cfg.Password = pw
		return nil
	}
	if pw := os.Getenv("PGPASSWORD"); pw != "" {
		cfg.Password = pw
		return nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintf(os.Stderr, "Password for %s@%s: ", cfg.Username, cfg.Host)
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		cfg.Password = string(raw)
	}

	return nil
}

// signalContext returns a context cancelled by SIGINT/SIGTERM or the
// timeout, whichever comes first.
func signalContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
