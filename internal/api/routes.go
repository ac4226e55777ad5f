// Package api provides the HTTP surface of the service: router setup,
// middleware and route registration.
package api

import (
	"fmt"

	"go.uber.org/zap"

	apigraphql "github.com/mlukashov/usergraph/internal/api/graphql"
	"github.com/mlukashov/usergraph/internal/api/graphql/schema"
	"github.com/mlukashov/usergraph/internal/core/config"
	"github.com/mlukashov/usergraph/internal/core/logger"
	"github.com/mlukashov/usergraph/internal/core/store"

	"github.com/gin-gonic/gin"
)

// routesLog returns a named logger for the api.routes package.
func routesLog() *zap.Logger {
	return logger.Named("api.routes")
}

// RegisterRoutes composes the schema once over the given store and mounts
// the endpoint.
func RegisterRoutes(r *gin.Engine, s store.Store) error {
	composed, err := schema.New(s)
	if err != nil {
		routesLog().Error("Failed to compose schema", zap.Error(err))
		return fmt.Errorf("failed to compose schema: %w", err)
	}

	r.POST("/graphql", apigraphql.Handler(composed, config.Cfg.GraphQL.DepthLimit))

	return nil
}
