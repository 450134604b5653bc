// Package scene holds the scene hierarchy displayed by the inspector panel.
package scene

// RootLabel is the label of the root node of every panel tree.
const RootLabel = "Root"

// Node is one entry in the scene hierarchy.
// Children are owned by value, so a tree is finite and acyclic by construction.
type Node struct {
	Label    string // Display text, also an identity component
	Children []Node // Ordered children, exclusively owned
	Visible  bool   // Per-node visibility, never propagated
}

// Leaf returns a node with no children.
func Leaf(label string, visible bool) Node {
	return Node{Label: label, Visible: visible}
}

// Branch returns a node owning the given children in order.
func Branch(label string, visible bool, children ...Node) Node {
	return Node{Label: label, Visible: visible, Children: children}
}

// DemoTree returns the hardcoded hierarchy the panel starts with.
func DemoTree() Node {
	return Branch(RootLabel, true,
		Leaf("Player", true),
		Leaf("Obstacle", true),
		Branch("Aliens", true,
			Leaf("Alien 1", true),
			Leaf("Alien 2", false),
		),
	)
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Clone creates a deep copy of the node and its descendants.
func (n Node) Clone() Node {
	clone := n
	if n.Children != nil {
		clone.Children = make([]Node, len(n.Children))
		for i := range n.Children {
			clone.Children[i] = n.Children[i].Clone()
		}
	}
	return clone
}

// Find returns the node reached by following labels from n's children
// downward. The first sibling carrying a label wins. An empty path returns n.
// Returns nil when any label is missing.
func (n *Node) Find(path ...string) *Node {
	current := n
	for _, label := range path {
		var next *Node
		for i := range current.Children {
			if current.Children[i].Label == label {
				next = &current.Children[i]
				break
			}
		}
		if next == nil {
			return nil
		}
		current = next
	}
	return current
}

// Rename changes the label of the node at path (relative to n).
// Returns false if the path does not resolve.
func (n *Node) Rename(path []string, label string) bool {
	target := n.Find(path...)
	if target == nil {
		return false
	}
	target.Label = label
	return true
}

// At returns the node reached by following child positions from n. An
// empty index returns n. Returns nil when any position is out of range.
func (n *Node) At(index ...int) *Node {
	current := n
	for _, i := range index {
		if i < 0 || i >= len(current.Children) {
			return nil
		}
		current = &current.Children[i]
	}
	return current
}

// RenameAt changes the label of the node at the given child positions.
// Unlike Rename it tells apart siblings that share a label.
func (n *Node) RenameAt(index []int, label string) bool {
	target := n.At(index...)
	if target == nil {
		return false
	}
	target.Label = label
	return true
}

// Walk visits n and its descendants in pre-order. The path passed to fn
// starts with n's own label and must not be retained.
func (n *Node) Walk(fn func(path []string, node *Node)) {
	var walk func(path []string, node *Node)
	walk = func(path []string, node *Node) {
		path = append(path, node.Label)
		fn(path, node)
		for i := range node.Children {
			walk(path, &node.Children[i])
		}
	}
	walk(nil, n)
}

// Labels returns every label in pre-order.
func (n *Node) Labels() []string {
	var labels []string
	n.Walk(func(_ []string, node *Node) {
		labels = append(labels, node.Label)
	})
	return labels
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(_ []string, _ *Node) { count++ })
	return count
}
