package extract

import (
	"context"
	"sort"

	"gettext-extractor/internal/jsast"
)

// Match is a keyword call found in normalized source: the line it starts on
// and its source text with every argument deferred.
type Match struct {
	Line int
	Src  string

	start int
}

// Gather parses normalized source with locations enabled and returns every
// keyword call in document order, each rewritten for evaluation.
func Gather(ctx context.Context, src, keyword string, opts jsast.Options) ([]Match, error) {
	opts.Locations = true

	var found []Match
	_, err := jsast.Transform(ctx, src, opts, func(t *jsast.Tree, id jsast.NodeID) {
		if !match(t, id, keyword) {
			return
		}
		n := t.Node(id)
		m := Match{Line: n.Line, start: n.Start}
		deferArguments(t, id)
		m.Src = t.Source(id)
		found = append(found, m)
	})
	if err != nil {
		return nil, err
	}

	// The walk is post-order; nested calls are reported before their parent.
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].start < found[j].start
	})
	return found, nil
}

// match reports whether id is a call whose callee resolves to the keyword:
// keyword(), keyword.fn(), keyword.fn.call() or keyword.fn.apply().
func match(t *jsast.Tree, id jsast.NodeID, keyword string) bool {
	if !t.Is(id, jsast.KindCallExpression) || !t.Is(t.Field(id, jsast.FieldArguments), jsast.KindArguments) {
		return false
	}

	callee := unparen(t, t.Field(id, jsast.FieldFunction))
	if t.Is(callee, jsast.KindIdentifier) {
		return t.Name(callee) == keyword
	}
	if !t.Is(callee, jsast.KindMemberExpression) {
		return false
	}

	object := unparen(t, t.Field(callee, jsast.FieldObject))
	if t.Is(object, jsast.KindIdentifier) {
		return t.Name(object) == keyword
	}

	if isIndirectCall(t, id) || isApply(t, id) {
		if !t.Is(object, jsast.KindMemberExpression) {
			return false
		}
		inner := unparen(t, t.Field(object, jsast.FieldObject))
		return t.Is(inner, jsast.KindIdentifier) && t.Name(inner) == keyword
	}

	return false
}

func calleeProperty(t *jsast.Tree, id jsast.NodeID) string {
	if !t.Is(id, jsast.KindCallExpression) {
		return ""
	}
	callee := unparen(t, t.Field(id, jsast.FieldFunction))
	if !t.Is(callee, jsast.KindMemberExpression) {
		return ""
	}
	return t.Name(t.Field(callee, jsast.FieldProperty))
}

func isIndirectCall(t *jsast.Tree, id jsast.NodeID) bool {
	return calleeProperty(t, id) == "call"
}

func isApply(t *jsast.Tree, id jsast.NodeID) bool {
	return calleeProperty(t, id) == "apply"
}

// unparen strips grouping parentheses: (gettext)('x') calls gettext.
func unparen(t *jsast.Tree, id jsast.NodeID) jsast.NodeID {
	for t.Is(id, jsast.KindParenthesized) {
		elems := t.Elements(id)
		if len(elems) != 1 {
			return jsast.NoNode
		}
		id = elems[0]
	}
	return id
}
