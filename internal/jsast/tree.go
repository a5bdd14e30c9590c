package jsast

import "strings"

// Tree is a parsed source document that supports in-place text replacement
// and re-serialization. Edits never touch the original bytes; they are applied
// when text is read back through Source or String.
type Tree struct {
	src   []byte
	nodes []Node
	root  NodeID
}

// Root returns the program node.
func (t *Tree) Root() NodeID {
	return t.root
}

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// Len returns the number of nodes in the table.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Parent returns the parent of id, or NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	if id == NoNode {
		return NoNode
	}
	return t.nodes[id].Parent
}

// Field returns the child stored under a grammar field name, or NoNode.
func (t *Tree) Field(id NodeID, name string) NodeID {
	if id == NoNode {
		return NoNode
	}
	if child, ok := t.nodes[id].fields[name]; ok {
		return child
	}
	return NoNode
}

// Is reports whether id refers to a node of kind k.
func (t *Tree) Is(id NodeID, k Kind) bool {
	return id != NoNode && t.nodes[id].Kind == k
}

// Name returns the original text of an identifier node.
func (t *Tree) Name(id NodeID) string {
	if !t.Is(id, KindIdentifier) {
		return ""
	}
	n := &t.nodes[id]
	return string(t.src[n.Start:n.End])
}

// Elements returns the named children of id, skipping comments.
func (t *Tree) Elements(id NodeID) []NodeID {
	if id == NoNode {
		return nil
	}
	var out []NodeID
	for _, c := range t.nodes[id].Children {
		if t.nodes[c].Kind != KindComment {
			out = append(out, c)
		}
	}
	return out
}

// Source returns the current text of id: its replacement when updated,
// otherwise its original span with the current text of its children.
func (t *Tree) Source(id NodeID) string {
	var b strings.Builder
	t.write(&b, id)
	return b.String()
}

func (t *Tree) write(b *strings.Builder, id NodeID) {
	n := &t.nodes[id]
	if n.replacement != nil {
		b.WriteString(*n.replacement)
		return
	}
	pos := n.Start
	for _, c := range n.Children {
		child := &t.nodes[c]
		b.Write(t.src[pos:child.Start])
		t.write(b, c)
		pos = child.End
	}
	b.Write(t.src[pos:n.End])
}

// Update replaces the whole text of id. Later reads of id or any ancestor see
// the new text; edits previously made below id are discarded.
func (t *Tree) Update(id NodeID, text string) {
	t.nodes[id].replacement = &text
}

// String serializes the whole document with every edit applied.
func (t *Tree) String() string {
	root := &t.nodes[t.root]
	var b strings.Builder
	b.Write(t.src[:root.Start])
	t.write(&b, t.root)
	b.Write(t.src[root.End:])
	return b.String()
}

// Walk visits every node below and including id in post-order, so children
// are seen before their parents.
func (t *Tree) Walk(id NodeID, visit func(*Tree, NodeID)) {
	for _, c := range t.nodes[id].Children {
		t.Walk(c, visit)
	}
	visit(t, id)
}
