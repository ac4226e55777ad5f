// Package scalar defines the custom leaf types of the schema. The scalar
// singletons are process-wide: they are created once at package init and
// shared by every schema composition and request.
package scalar

import (
	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// UUID is the opaque identifier scalar. Values must be RFC 4122 formatted
// strings; anything else is rejected at both the serialize and parse
// boundaries.
var UUID = graphql.NewScalar(graphql.ScalarConfig{
	Name:         "UUID",
	Description:  "An RFC 4122 UUID encoded as a string.",
	Serialize:    coerceUUID,
	ParseValue:   coerceUUID,
	ParseLiteral: parseUUIDLiteral,
})

// coerceUUID passes a stored identifier through unchanged when it is
// lexically a valid UUID, and yields nil (a coercion failure) otherwise.
func coerceUUID(value interface{}) interface{} {
	switch v := value.(type) {
	case string:
		if uuid.Validate(v) == nil {
			return v
		}
	case *string:
		if v != nil && uuid.Validate(*v) == nil {
			return *v
		}
	case uuid.UUID:
		return v.String()
	case *uuid.UUID:
		if v != nil {
			return v.String()
		}
	}
	return nil
}

// parseUUIDLiteral accepts only string literals holding a valid UUID.
func parseUUIDLiteral(valueAST ast.Value) interface{} {
	if lit, ok := valueAST.(*ast.StringValue); ok {
		if uuid.Validate(lit.Value) == nil {
			return lit.Value
		}
	}
	return nil
}
