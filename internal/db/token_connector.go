package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roomview-sql/roomview/internal/config"
)

// TokenBasedConnector implements Connector for providers that
// authenticate via short-lived tokens. The token is acquired from a
// TokenProvider and used as the password.
type TokenBasedConnector struct {
	config        config.ConnectionConfig
	tokenProvider TokenProvider
	providerName  string
}

// NewTokenBasedConnector creates a connector that uses a TokenProvider
// for authentication. providerName is used in error and warning messages
// (e.g., "AWS IAM").
func NewTokenBasedConnector(cfg config.ConnectionConfig, tokenProvider TokenProvider, providerName string) *TokenBasedConnector {
	return &TokenBasedConnector{
		config:        cfg,
		tokenProvider: tokenProvider,
		providerName:  providerName,
	}
}

func (c *TokenBasedConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	token, expiresOn, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire %s token: %w", c.providerName, err)
	}

	if time.Until(expiresOn) < 5*time.Minute {
		fmt.Printf("Warning: %s token expires in %v\n", c.providerName, time.Until(expiresOn).Round(time.Second))
	}

	cfgWithToken := c.config
	cfgWithToken.Password = token

	return connectPool(ctx, cfgWithToken)
}
