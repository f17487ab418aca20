// Package entity contains domain entities representing core workspace concepts.
// These entities are pure Go types with no infrastructure dependencies.
package entity

// PaneID uniquely identifies a node in the pane tree.
type PaneID string

// SplitDirection indicates how a split pane arranges its children.
type SplitDirection int

const (
	SplitNone       SplitDirection = iota // Leaf node
	SplitHorizontal                       // Left/right split
	SplitVertical                         // Top/bottom split
)

// DefaultSplitRatio is recorded for every new split.
const DefaultSplitRatio = 0.5

// PaneNode represents a node in the workspace pane tree. It is either:
//   - Leaf node: holds an ordered tab list and an active tab pointer
//   - Split node: holds a direction, a divider ratio, and exactly two children
//
// Trees are treated as immutable snapshots: mutations build a new root and
// never write through a node the caller already holds.
type PaneNode struct {
	ID PaneID

	// Leaf fields
	Tabs        []*Tab
	ActiveTabID TabID // empty when no tab is active

	// Split fields
	SplitDir   SplitDirection
	SplitRatio float64 // 0.0-1.0, proportion allocated to the first child
	Children   []*PaneNode
}

// NewLeaf creates an empty leaf pane.
func NewLeaf(id PaneID) *PaneNode {
	return &PaneNode{ID: id}
}

// IsLeaf returns true if this node holds tabs (no children).
func (n *PaneNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// IsSplit returns true if this node splits into two children.
func (n *PaneNode) IsSplit() bool {
	return n.SplitDir != SplitNone && len(n.Children) == 2
}

// Left returns the left/top child in a split node.
func (n *PaneNode) Left() *PaneNode {
	if len(n.Children) > 0 {
		return n.Children[0]
	}
	return nil
}

// Right returns the right/bottom child in a split node.
func (n *PaneNode) Right() *PaneNode {
	if len(n.Children) > 1 {
		return n.Children[1]
	}
	return nil
}

// Walk traverses the tree in pre-order (split before its children), calling
// fn for each node. Returns early if fn returns false.
func (n *PaneNode) Walk(fn func(*PaneNode) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// FindNode searches the tree for a node with the given ID.
func (n *PaneNode) FindNode(id PaneID) *PaneNode {
	var found *PaneNode
	n.Walk(func(node *PaneNode) bool {
		if node.ID == id {
			found = node
			return false
		}
		return true
	})
	return found
}

// FirstLeaf returns the first leaf found in a pre-order traversal.
func (n *PaneNode) FirstLeaf() *PaneNode {
	var first *PaneNode
	n.Walk(func(node *PaneNode) bool {
		if node.IsLeaf() {
			first = node
			return false
		}
		return true
	})
	return first
}

// LeafCount returns the number of leaf panes in the tree.
func (n *PaneNode) LeafCount() int {
	count := 0
	n.Walk(func(node *PaneNode) bool {
		if node.IsLeaf() {
			count++
		}
		return true
	})
	return count
}

// ActiveTab returns the leaf's active tab, or nil if none is set.
func (n *PaneNode) ActiveTab() *Tab {
	if n.ActiveTabID == "" {
		return nil
	}
	return n.FindTab(n.ActiveTabID)
}

// FindTab returns the tab with the given id in this leaf, or nil.
func (n *PaneNode) FindTab(id TabID) *Tab {
	for _, tab := range n.Tabs {
		if tab.ID == id {
			return tab
		}
	}
	return nil
}

// TabIndex returns the position of the tab in this leaf, or -1.
func (n *PaneNode) TabIndex(id TabID) int {
	for i, tab := range n.Tabs {
		if tab.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the subtree, including tab records.
func (n *PaneNode) Clone() *PaneNode {
	if n == nil {
		return nil
	}
	clone := &PaneNode{
		ID:          n.ID,
		ActiveTabID: n.ActiveTabID,
		SplitDir:    n.SplitDir,
		SplitRatio:  n.SplitRatio,
	}
	if len(n.Tabs) > 0 {
		clone.Tabs = make([]*Tab, len(n.Tabs))
		for i, tab := range n.Tabs {
			clone.Tabs[i] = tab.Clone()
		}
	}
	if len(n.Children) > 0 {
		clone.Children = make([]*PaneNode, len(n.Children))
		for i, child := range n.Children {
			clone.Children[i] = child.Clone()
		}
	}
	return clone
}

// CloneShallow copies the node itself while sharing tab records and child
// subtrees. Transforms use it to rebuild only the path from the root to the
// node they change.
func (n *PaneNode) CloneShallow() *PaneNode {
	clone := &PaneNode{
		ID:          n.ID,
		ActiveTabID: n.ActiveTabID,
		SplitDir:    n.SplitDir,
		SplitRatio:  n.SplitRatio,
	}
	if len(n.Tabs) > 0 {
		clone.Tabs = append([]*Tab(nil), n.Tabs...)
	}
	if len(n.Children) > 0 {
		clone.Children = append([]*PaneNode(nil), n.Children...)
	}
	return clone
}
