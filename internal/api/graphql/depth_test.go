package graphql

import (
	"testing"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/graphql/language/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseQuery(t *testing.T, query string) (*ast.Document, *source.Source) {
	t.Helper()
	src := source.NewSource(&source.Source{Body: []byte(query)})
	doc, err := parser.Parse(parser.ParseParams{Source: src})
	require.NoError(t, err)
	return doc, src
}

func TestCheckDepth_WithinLimit(t *testing.T) {
	doc, src := parseQuery(t, `query {
		users {
			posts {
				id
			}
		}
	}`)

	assert.Empty(t, checkDepth(doc, src, 5))
}

func TestCheckDepth_AtLimit(t *testing.T) {
	doc, src := parseQuery(t, `query {
		users { userSubscribedTo { profile { memberType { id } } } }
	}`)

	assert.Empty(t, checkDepth(doc, src, 5))
}

func TestCheckDepth_OverLimit(t *testing.T) {
	doc, src := parseQuery(t, `query Deep {
		users { userSubscribedTo { userSubscribedTo { profile { memberType { id } } } } }
	}`)

	errs := checkDepth(doc, src, 5)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, `operation "Deep"`)
	assert.Contains(t, errs[0].Message, "maximum depth of 5")
	assert.NotEmpty(t, errs[0].Locations)
}

func TestCheckDepth_AnonymousOperation(t *testing.T) {
	doc, src := parseQuery(t, `{ a { b { c } } }`)

	errs := checkDepth(doc, src, 2)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "anonymous operation")
}

func TestCheckDepth_FragmentsAreTransparent(t *testing.T) {
	doc, src := parseQuery(t, `query {
		users {
			...userFields
		}
	}
	fragment userFields on User {
		posts { id }
	}`)

	// users -> posts -> id is depth 3 whether spelled inline or via spread.
	assert.Empty(t, checkDepth(doc, src, 3))
	assert.Len(t, checkDepth(doc, src, 2), 1)
}

func TestCheckDepth_InlineFragmentsAreTransparent(t *testing.T) {
	doc, src := parseQuery(t, `query {
		users {
			... on User {
				posts { id }
			}
		}
	}`)

	assert.Empty(t, checkDepth(doc, src, 3))
	assert.Len(t, checkDepth(doc, src, 2), 1)
}

func TestCheckDepth_FragmentCycle(t *testing.T) {
	// Cyclic spreads are a validation error anyway; the depth walk must just
	// not recurse forever.
	doc, src := parseQuery(t, `query {
		users { ...a }
	}
	fragment a on User { userSubscribedTo { ...b } }
	fragment b on User { subscribedToUser { ...a } }`)

	assert.NotPanics(t, func() {
		checkDepth(doc, src, 100)
	})
}

func TestCheckDepth_MultipleOperations(t *testing.T) {
	doc, src := parseQuery(t, `query Shallow { users { id } }
	query Deep { users { posts { author { posts { author { id } } } } } }`)

	errs := checkDepth(doc, src, 3)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, `operation "Deep"`)
}
