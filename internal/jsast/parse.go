// Package jsast parses JavaScript into a flat, re-serializable node table.
//
// Parsing is done by tree-sitter. The resulting Tree keeps parent links as
// indexes and records text edits against node spans, so passes can rewrite
// source the way a token-preserving AST rewriter would and then serialize the
// edited document for the next pass.
package jsast

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ErrFileTooLarge is returned when the source exceeds Options.MaxFileSize.
var ErrFileTooLarge = errors.New("source exceeds maximum size")

// Dialect selects the grammar used for parsing.
type Dialect string

const (
	DialectJavaScript Dialect = "javascript"
	DialectTypeScript Dialect = "typescript"
	DialectTSX        Dialect = "tsx"
)

// Options configures parsing. The zero value parses JavaScript without
// location tracking and without a size limit.
type Options struct {
	Dialect Dialect
	// Locations fills Node.Line and Node.Column.
	Locations bool
	// MaxFileSize in bytes; zero means unlimited.
	MaxFileSize int
}

// ParseError reports the first syntax error found in a document.
type ParseError struct {
	Line   int
	Column int
	Near   string
}

func (e *ParseError) Error() string {
	if e.Near != "" {
		return fmt.Sprintf("syntax error at line %d, column %d near %q", e.Line, e.Column, e.Near)
	}
	return fmt.Sprintf("syntax error at line %d, column %d", e.Line, e.Column)
}

func language(d Dialect) (*sitter.Language, error) {
	switch d {
	case "", DialectJavaScript:
		return javascript.GetLanguage(), nil
	case DialectTypeScript:
		return typescript.GetLanguage(), nil
	case DialectTSX:
		return tsx.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("unknown dialect %q", d)
	}
}

// Parse builds a Tree for src.
func Parse(ctx context.Context, src string, opts Options) (*Tree, error) {
	if opts.MaxFileSize > 0 && len(src) > opts.MaxFileSize {
		return nil, ErrFileTooLarge
	}

	lang, err := language(opts.Dialect)
	if err != nil {
		return nil, err
	}

	content := []byte(src)

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	st, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer st.Close()

	root := st.RootNode()
	if root.HasError() {
		return nil, firstError(root, content)
	}

	t := &Tree{src: content}
	t.root = t.add(root, NoNode, opts.Locations)
	return t, nil
}

// Transform parses src, calls visit for every node in post-order and returns
// the edited tree. Callers serialize it with Tree.String.
func Transform(ctx context.Context, src string, opts Options, visit func(*Tree, NodeID)) (*Tree, error) {
	t, err := Parse(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	t.Walk(t.root, visit)
	return t, nil
}

func (t *Tree) add(sn *sitter.Node, parent NodeID, locations bool) NodeID {
	id := NodeID(len(t.nodes))
	typ := sn.Type()
	n := Node{
		Kind:   kindOf(typ),
		Type:   typ,
		Start:  int(sn.StartByte()),
		End:    int(sn.EndByte()),
		Parent: parent,
	}
	if locations {
		p := sn.StartPoint()
		n.Line = int(p.Row) + 1
		n.Column = int(p.Column)
	}
	t.nodes = append(t.nodes, n)

	count := int(sn.NamedChildCount())
	children := make([]NodeID, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, t.add(sn.NamedChild(i), id, locations))
	}
	t.nodes[id].Children = children

	if names, ok := fieldsByType[typ]; ok {
		t.nodes[id].fields = t.resolveFields(sn, children, names)
	}
	return id
}

// resolveFields maps field names to the arena ids of the matching named
// children.
func (t *Tree) resolveFields(sn *sitter.Node, children []NodeID, names map[string]string) map[string]NodeID {
	fields := make(map[string]NodeID, len(names))
	for name, grammar := range names {
		fc := sn.ChildByFieldName(grammar)
		if fc == nil {
			continue
		}
		start, end, typ := int(fc.StartByte()), int(fc.EndByte()), fc.Type()
		for _, c := range children {
			cn := &t.nodes[c]
			if cn.Start == start && cn.End == end && cn.Type == typ {
				fields[name] = c
				break
			}
		}
	}
	return fields
}

func firstError(root *sitter.Node, content []byte) *ParseError {
	bad := findError(root)
	if bad == nil {
		bad = root
	}
	p := bad.StartPoint()
	near := string(content[bad.StartByte():bad.EndByte()])
	if len(near) > 40 {
		near = near[:40]
	}
	return &ParseError{Line: int(p.Row) + 1, Column: int(p.Column) + 1, Near: near}
}

func findError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if found := findError(n.Child(i)); found != nil {
			return found
		}
	}
	return nil
}
