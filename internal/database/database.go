// Package database connects to the configured SurrealDB instance. It is
// a thin consumer of the loaded settings; query building and schema
// management live with the callers.
package database

import (
	"fmt"
	"strings"

	surrealdb "github.com/surrealdb/surrealdb.go"

	"opennotebook/internal/config"
)

// Service wraps an authenticated SurrealDB connection scoped to the
// configured namespace and database.
type Service struct {
	db *surrealdb.DB
}

// Connect dials the configured address, signs in and selects the
// configured namespace and database.
func Connect(settings *config.Settings) (*Service, error) {
	db, err := surrealdb.New(RPCEndpoint(settings.SurrealAddress))
	if err != nil {
		return nil, fmt.Errorf("connect surrealdb: %w", err)
	}

	if _, err := db.Signin(map[string]interface{}{
		"user": settings.SurrealUser,
		"pass": settings.SurrealPass,
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("signin surrealdb: %w", err)
	}

	if _, err := db.Use(settings.SurrealNamespace, settings.SurrealDatabase); err != nil {
		db.Close()
		return nil, fmt.Errorf("use %s/%s: %w", settings.SurrealNamespace, settings.SurrealDatabase, err)
	}

	return &Service{db: db}, nil
}

// DB exposes the underlying connection for query callers.
func (s *Service) DB() *surrealdb.DB {
	return s.db
}

// Close tears down the websocket connection.
func (s *Service) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// RPCEndpoint derives the driver endpoint from the configured address.
// SurrealDB serves its websocket RPC under /rpc; addresses from the
// environment usually stop at the port.
func RPCEndpoint(address string) string {
	trimmed := strings.TrimRight(address, "/")
	if strings.HasSuffix(trimmed, "/rpc") {
		return trimmed
	}
	return trimmed + "/rpc"
}
