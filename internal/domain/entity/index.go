package entity

// BuildIndex builds a flat id->node lookup map from a tree snapshot in a
// single pre-order traversal (split visited before its children). Every
// node, split or leaf, is inserted. The index is a derived cache: it is
// rebuilt from the root after every structural change and never mutated by
// hand. Trees hold tens of panes at most, so a full rebuild stays cheap.
func BuildIndex(root *PaneNode) map[PaneID]*PaneNode {
	index := make(map[PaneID]*PaneNode)
	root.Walk(func(node *PaneNode) bool {
		index[node.ID] = node
		return true
	})
	return index
}
