// Package db establishes warehouse connections and adapts the pgx pool
// to the executor interface the sync service consumes.
package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roomview-sql/roomview/internal/config"
	"github.com/roomview-sql/roomview/pkg/roomview"
)

// Supported auth_method values in settings.yaml.
const (
	AuthMethodStandard = "standard"
	AuthMethodAWSIAM   = "aws-iam"
)

// Connection pool configuration constants
const (
	// DefaultMaxConns limits concurrent connections; a sync run issues
	// statements sequentially, so the pool stays small.
	DefaultMaxConns = 5

	// DefaultMinConns maintains at least one connection in the pool.
	DefaultMinConns = 1

	// DefaultMaxConnIdleTime keeps connections alive across a long
	// drop-and-recreate pass to avoid reconnection overhead.
	DefaultMaxConnIdleTime = 30 * time.Minute
)

// Connector abstracts how a connection pool is established, so standard
// and token-based authentication share the same call site.
type Connector interface {
	Connect(ctx context.Context) (*pgxpool.Pool, error)
}

func configurePool(poolConfig *pgxpool.Config) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		fmt.Println(notice.Message)
	}
}

// StandardConnector implements Connector for username/password
// authentication.
type StandardConnector struct {
	config config.ConnectionConfig
}

// NewStandardConnector creates a new StandardConnector with the given
// configuration.
func NewStandardConnector(cfg config.ConnectionConfig) *StandardConnector {
	return &StandardConnector{config: cfg}
}

// Connect establishes a connection pool and verifies it with a ping.
func (c *StandardConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	return connectPool(ctx, c.config)
}

func connectPool(ctx context.Context, cfg config.ConnectionConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(BuildConnectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}

	configurePool(poolConfig)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err, cfg.Host, cfg.Port, cfg.Database)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, cfg.Host, cfg.Port, cfg.Database)
	}

	return pool, nil
}

// NewConnector is a factory function that creates the appropriate
// Connector based on the ConnectionConfig's auth_method.
func NewConnector(cfg config.ConnectionConfig) (Connector, error) {
	switch cfg.AuthMethod {
	case "", AuthMethodStandard:
		return NewStandardConnector(cfg), nil
	case AuthMethodAWSIAM:
		return newAWSConnector(cfg)
	default:
		return nil, fmt.Errorf("unsupported auth_method %q (expected %q or %q)",
			cfg.AuthMethod, AuthMethodStandard, AuthMethodAWSIAM)
	}
}

// newAWSConnector creates a token-based connector with the AWS IAM token
// provider.
func newAWSConnector(cfg config.ConnectionConfig) (Connector, error) {
	endpoint := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	tokenProvider, err := NewAWSIAMTokenProvider(endpoint, cfg.AWSRegion, cfg.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS IAM token provider: %w", err)
	}

	return NewTokenBasedConnector(cfg, tokenProvider, "AWS IAM"), nil
}

// wrapConnectionError wraps raw pgx connection errors with actionable
// guidance, tagged so callers can map them to a connection exit code.
func wrapConnectionError(err error, host string, port int, database string) error {
	return fmt.Errorf("%w: %w", roomview.ErrConnectionFailed, describeConnectionError(err, host, port, database))
}

func describeConnectionError(err error, host string, port int, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - The warehouse is not accepting connections
  - Wrong host or port in settings.yaml
  - Firewall blocking the connection

Original error: %w`, addr, err)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled in settings.yaml
  - DNS is not configured or reachable
  - Network connection issue

Original error: %w`, host, err)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`password authentication failed for database "%s"

Possible causes:
  - Wrong password (check settings.yaml or $ROOMVIEW_PASSWORD)
  - Wrong username
  - User does not have access to the database

Original error: %w`, database, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Network latency or packet loss
  - Firewall silently dropping packets

Original error: %w`, addr, err)

	case strings.Contains(errStr, "ssl") || strings.Contains(errStr, "tls"):
		return fmt.Errorf(`SSL/TLS connection error

Possible causes:
  - Server requires SSL but sslmode is wrong (try sslmode: require)
  - Certificate verification failed

Original error: %w`, err)

	default:
		return fmt.Errorf("failed to connect to database: %w", err)
	}
}
