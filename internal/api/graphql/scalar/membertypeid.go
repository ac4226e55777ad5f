package scalar

import (
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"github.com/mlukashov/usergraph/internal/core/model"
)

// MemberTypeID is the closed-enumeration scalar for membership tier
// identifiers. Variable-supplied values outside the set are rejected during
// input coercion; an inline literal outside the set is simply not
// representable as this type, which surfaces through the normal
// coercion-failure channel rather than as a thrown error.
var MemberTypeID = graphql.NewScalar(graphql.ScalarConfig{
	Name:         "MemberTypeId",
	Description:  "One of the fixed membership tier identifiers.",
	Serialize:    coerceMemberTypeID,
	ParseValue:   coerceMemberTypeID,
	ParseLiteral: parseMemberTypeIDLiteral,
})

// coerceMemberTypeID yields the identifier when it belongs to the closed set
// and nil (a coercion failure) otherwise.
func coerceMemberTypeID(value interface{}) interface{} {
	switch v := value.(type) {
	case model.MemberTypeID:
		if v.Valid() {
			return string(v)
		}
	case string:
		if model.MemberTypeID(v).Valid() {
			return v
		}
	case *string:
		if v != nil && model.MemberTypeID(*v).Valid() {
			return *v
		}
	}
	return nil
}

// parseMemberTypeIDLiteral accepts only string literals naming a member of
// the closed set; any other literal kind or unknown value is unresolved.
func parseMemberTypeIDLiteral(valueAST ast.Value) interface{} {
	if lit, ok := valueAST.(*ast.StringValue); ok {
		if model.MemberTypeID(lit.Value).Valid() {
			return lit.Value
		}
	}
	return nil
}
