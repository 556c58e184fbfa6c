package db

import (
	"fmt"
	"net/url"

	"github.com/roomview-sql/roomview/internal/config"
)

// appName identifies roomview sessions in pg_stat_activity.
const appName = "roomview"

// BuildConnectionString renders a ConnectionConfig as a PostgreSQL URI
// suitable for pgxpool.ParseConfig.
func BuildConnectionString(cfg config.ConnectionConfig) string {
	u := &url.URL{
		Scheme: "postgresql",
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   "/" + cfg.Database,
	}

	if cfg.Username != "" {
		if cfg.Password != "" {
			u.User = url.UserPassword(cfg.Username, cfg.Password)
		} else {
			u.User = url.User(cfg.Username)
		}
	}

	query := url.Values{}
	if cfg.SSLMode != "" {
		query.Set("sslmode", cfg.SSLMode)
	}
	query.Set("application_name", appName)

	u.RawQuery = query.Encode()
	return u.String()
}
