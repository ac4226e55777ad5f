package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/location"
	"github.com/graphql-go/graphql/language/source"
)

// checkDepth walks every operation in the document and reports those whose
// selection nesting exceeds limit. The root selection set counts as depth
// zero, each nested field adds one, and fragment spreads are expanded in
// place. Depth is checked before execution so an over-deep operation never
// touches a resolver.
func checkDepth(doc *ast.Document, src *source.Source, limit int) []gqlerrors.FormattedError {
	fragments := map[string]*ast.FragmentDefinition{}
	for _, def := range doc.Definitions {
		if frag, ok := def.(*ast.FragmentDefinition); ok && frag.Name != nil {
			fragments[frag.Name.Value] = frag
		}
	}

	var errors []gqlerrors.FormattedError
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		depth := selectionSetDepth(op.SelectionSet, fragments, map[string]bool{})
		if depth <= limit {
			continue
		}
		name := "anonymous operation"
		if op.Name != nil && op.Name.Value != "" {
			name = fmt.Sprintf("operation %q", op.Name.Value)
		}
		formatted := gqlerrors.FormattedError{
			Message: fmt.Sprintf("%s exceeds maximum depth of %d", name, limit),
		}
		if op.Loc != nil && src != nil {
			formatted.Locations = []location.SourceLocation{
				location.GetLocation(src, op.Loc.Start),
			}
		}
		errors = append(errors, formatted)
	}
	return errors
}

// selectionSetDepth returns the deepest field nesting within set. Inline
// fragments and fragment spreads are transparent: they contribute the depth
// of their selections without adding a level. expanding guards against
// fragment cycles; a spread already on the expansion path contributes
// nothing.
func selectionSetDepth(set *ast.SelectionSet, fragments map[string]*ast.FragmentDefinition, expanding map[string]bool) int {
	if set == nil {
		return 0
	}
	max := 0
	for _, selection := range set.Selections {
		depth := 0
		switch sel := selection.(type) {
		case *ast.Field:
			depth = 1 + selectionSetDepth(sel.SelectionSet, fragments, expanding)
		case *ast.InlineFragment:
			depth = selectionSetDepth(sel.SelectionSet, fragments, expanding)
		case *ast.FragmentSpread:
			if sel.Name == nil || expanding[sel.Name.Value] {
				continue
			}
			frag, ok := fragments[sel.Name.Value]
			if !ok {
				continue
			}
			expanding[sel.Name.Value] = true
			depth = selectionSetDepth(frag.SelectionSet, fragments, expanding)
			delete(expanding, sel.Name.Value)
		}
		if depth > max {
			max = depth
		}
	}
	return max
}
