// tree.go - Recursive scene hierarchy renderer with identity-keyed collapse state
package ui

import (
	"strings"

	"github.com/vanderheijden86/sceneview/pkg/collapse"
	"github.com/vanderheijden86/sceneview/pkg/identity"
	"github.com/vanderheijden86/sceneview/pkg/scene"
)

// Traversal selects how the tree renderer walks the hierarchy.
type Traversal int

const (
	TraversalRecursive Traversal = iota // call recursion (default)
	TraversalStack                      // explicit work stack, bounded call depth
)

// String returns the config name of the traversal.
func (t Traversal) String() string {
	if t == TraversalStack {
		return "stack"
	}
	return "recursive"
}

// ParseTraversal maps a config value to a Traversal. Unknown values fall
// back to TraversalRecursive.
func ParseTraversal(s string) Traversal {
	if s == "stack" {
		return TraversalStack
	}
	return TraversalRecursive
}

// TreeRenderer draws one row per visible scene node each frame.
//
// Identities are derived from the label path on every frame and never
// cached on nodes. Children are drawn in model order, and a visibility
// toggle touches only the node whose row received it.
type TreeRenderer struct {
	Store     *collapse.Store
	Traversal Traversal
	Indent    int // Cells per nesting level
}

// Render draws node and its expanded descendants into f. A nil parent means
// node is a root.
func (t TreeRenderer) Render(f *Frame, node *scene.Node, parent *identity.ID) {
	if node == nil {
		return
	}
	if t.Store == nil {
		t.Store = collapse.New()
	}
	g := newGuides(t.Indent)

	if t.Traversal == TraversalStack {
		t.renderStack(f, node, parent, g)
		return
	}
	t.render(f, node, parent, nil, nil, 0, "", "", g)
}

// render draws one node and recurses into its children when open.
// prefix is this row's guide; inherited is passed on to the children.
func (t TreeRenderer) render(f *Frame, node *scene.Node, parent *identity.ID,
	path []string, index []int, depth int, prefix, inherited string, g treeGuides) {

	id := identity.Resolve(parent, node.Label)
	path = append(path[:len(path):len(path)], node.Label)
	spec := RowSpec{ID: id, Path: path, Index: index, Depth: depth, Prefix: prefix, Label: node.Label}

	if node.IsLeaf() {
		f.Leaf(spec, &node.Visible)
		return
	}

	if !t.drawHeader(f, spec, node) {
		return
	}

	for i := range node.Children {
		last := i == len(node.Children)-1
		childPrefix, childGuides := g.child(inherited, last)
		childIndex := append(index[:len(index):len(index)], i)
		t.render(f, &node.Children[i], &id, path, childIndex, depth+1, childPrefix, childGuides, g)
	}
}

// drawHeader draws a branch row and stores any change to its open state.
// Returns whether the children should be drawn this frame.
func (t TreeRenderer) drawHeader(f *Frame, spec RowSpec, node *scene.Node) bool {
	was := t.Store.IsOpen(spec.ID)
	open := f.Header(spec, &node.Visible, was)
	if open != was {
		t.Store.SetOpen(spec.ID, open)
	}
	return open
}

// stackEntry is one pending node for renderStack.
type stackEntry struct {
	node      *scene.Node
	parent    identity.ID
	hasParent bool
	path      []string
	index     []int
	depth     int
	prefix    string
	inherited string
}

// renderStack produces the same frame as render using an explicit stack of
// (node, parent identity) pairs, so hierarchy depth does not grow the call
// stack.
func (t TreeRenderer) renderStack(f *Frame, root *scene.Node, parent *identity.ID, g treeGuides) {
	start := stackEntry{node: root}
	if parent != nil {
		start.parent, start.hasParent = *parent, true
	}
	stack := []stackEntry{start}

	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var id identity.ID
		if e.hasParent {
			id = identity.Resolve(&e.parent, e.node.Label)
		} else {
			id = identity.Resolve(nil, e.node.Label)
		}
		path := append(e.path[:len(e.path):len(e.path)], e.node.Label)
		spec := RowSpec{ID: id, Path: path, Index: e.index, Depth: e.depth, Prefix: e.prefix, Label: e.node.Label}

		if e.node.IsLeaf() {
			f.Leaf(spec, &e.node.Visible)
			continue
		}
		if !t.drawHeader(f, spec, e.node) {
			continue
		}

		// Push in reverse so the first child is drawn next
		for i := len(e.node.Children) - 1; i >= 0; i-- {
			last := i == len(e.node.Children)-1
			childPrefix, childGuides := g.child(e.inherited, last)
			stack = append(stack, stackEntry{
				node:      &e.node.Children[i],
				parent:    id,
				hasParent: true,
				path:      path,
				index:     append(e.index[:len(e.index):len(e.index)], i),
				depth:     e.depth + 1,
				prefix:    childPrefix,
				inherited: childGuides,
			})
		}
	}
}

// treeGuides holds the tree-drawing pieces for one indent width.
type treeGuides struct {
	tee, elbow, pipe, blank string
}

func newGuides(indent int) treeGuides {
	if indent < 1 {
		indent = 1
	}
	dash := strings.Repeat("─", indent-1)
	return treeGuides{
		tee:   "├" + dash + " ",
		elbow: "└" + dash + " ",
		pipe:  "│" + strings.Repeat(" ", indent),
		blank: strings.Repeat(" ", indent+1),
	}
}

// child returns the row prefix and the guides passed further down for a
// child whose parent handed it inherited.
func (g treeGuides) child(inherited string, last bool) (prefix, next string) {
	if last {
		return inherited + g.elbow, inherited + g.blank
	}
	return inherited + g.tee, inherited + g.pipe
}
