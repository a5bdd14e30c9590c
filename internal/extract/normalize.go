package extract

import (
	"context"
	"regexp"
	"strings"

	"gettext-extractor/internal/jsast"
)

var templateLiteralRE = regexp.MustCompile("^`(.*)`$")

func transform(ctx context.Context, src string, opts jsast.Options, fn func(*jsast.Tree, jsast.NodeID)) (string, error) {
	tree, err := jsast.Transform(ctx, src, opts, fn)
	if err != nil {
		return "", err
	}
	return tree.String(), nil
}

// NormalizeAliases rewrites member expressions whose property is the keyword
// (this.gettext, i18n.gettext) to the bare keyword. Newlines dropped with the
// object part are kept so line numbers do not move.
func NormalizeAliases(ctx context.Context, src, keyword string, opts jsast.Options) (string, error) {
	return transform(ctx, src, opts, func(t *jsast.Tree, id jsast.NodeID) {
		if !isMember(t, id, keyword) {
			return
		}
		parent := t.Parent(id)
		lines := strings.Count(t.Source(parent), "\n")
		t.Update(parent, t.Source(id)+strings.Repeat("\n", lines))
	})
}

// FoldTemplates rewrites single-line template literals without substitutions
// into single-quoted string literals.
func FoldTemplates(ctx context.Context, src string, opts jsast.Options) (string, error) {
	return transform(ctx, src, opts, func(t *jsast.Tree, id jsast.NodeID) {
		if !t.Is(id, jsast.KindTemplateLiteral) || hasSubstitution(t, id) || isTagged(t, id) {
			return
		}
		m := templateLiteralRE.FindStringSubmatch(t.Source(id))
		if m == nil || m[1] == "" {
			return
		}
		t.Update(id, "'"+escapeQuotes(m[1])+"'")
	})
}

// isMember reports whether id is the keyword used as the property of a
// member expression.
func isMember(t *jsast.Tree, id jsast.NodeID, keyword string) bool {
	if !t.Is(id, jsast.KindIdentifier) || t.Name(id) != keyword {
		return false
	}
	parent := t.Parent(id)
	return t.Is(parent, jsast.KindMemberExpression) && t.Field(parent, jsast.FieldProperty) == id
}

func hasSubstitution(t *jsast.Tree, id jsast.NodeID) bool {
	for _, c := range t.Node(id).Children {
		if t.Is(c, jsast.KindTemplateSubstitution) {
			return true
		}
	}
	return false
}

// isTagged reports whether a template literal is the argument list of a
// tagged template, where a string literal would not be valid syntax.
func isTagged(t *jsast.Tree, id jsast.NodeID) bool {
	parent := t.Parent(id)
	return t.Is(parent, jsast.KindCallExpression) && t.Field(parent, jsast.FieldArguments) == id
}

// escapeQuotes escapes every ' that is not already escaped, that is, not
// preceded by an odd run of backslashes.
func escapeQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	backslashes := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\'' && backslashes%2 == 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
		if c == '\\' {
			backslashes++
		} else {
			backslashes = 0
		}
	}
	return b.String()
}
