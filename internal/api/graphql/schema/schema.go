// Package schema composes the GraphQL schema: entity object types, the
// query and mutation roots, and the wiring that threads the data-access
// handle into every resolver. Composition performs no store I/O and the
// returned schema is immutable; build it once at process start and reuse it
// for every request.
package schema

import (
	"github.com/graphql-go/graphql"

	"github.com/mlukashov/usergraph/internal/core/store"
)

// builder holds the store handle the schema closes over and the object types
// that reference each other.
type builder struct {
	store store.Store

	memberType *graphql.Object
	post       *graphql.Object
	profile    *graphql.Object
	user       *graphql.Object
}

// New composes the schema over the given data-access handle. Resolvers
// prefer the request-scoped (batching) handle from the context and fall back
// to the composed one, so the same schema serves both the HTTP path and
// direct execution in tests.
func New(s store.Store) (graphql.Schema, error) {
	b := &builder{store: s}
	b.buildTypes()
	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    b.queryType(),
		Mutation: b.mutationType(),
	})
}
