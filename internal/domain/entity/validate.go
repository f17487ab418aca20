package entity

import "fmt"

// ValidateTree checks the structural invariants of a pane tree:
//   - every split has exactly two children and a direction
//   - split ratios stay within [0, 1]
//   - node ids are unique across the whole tree
//   - tab ids are unique across all leaves
//   - a leaf's active tab, if set, is present in that leaf's tab list
//   - every tab's history is non-empty, its cursor is in bounds, and the
//     entry under the cursor matches the tab's current document
//
// A violation indicates an implementation bug, not a runtime condition; the
// store only runs this in strict mode and restore uses it to reject
// corrupted persisted layouts.
func ValidateTree(root *PaneNode) error {
	if root == nil {
		return fmt.Errorf("tree has no root")
	}

	nodeIDs := make(map[PaneID]struct{})
	tabIDs := make(map[TabID]struct{})
	var walkErr error

	root.Walk(func(node *PaneNode) bool {
		if _, dup := nodeIDs[node.ID]; dup {
			walkErr = fmt.Errorf("duplicate node id %q", node.ID)
			return false
		}
		nodeIDs[node.ID] = struct{}{}

		if node.IsLeaf() {
			walkErr = validateLeaf(node, tabIDs)
			return walkErr == nil
		}

		if node.SplitDir == SplitNone {
			walkErr = fmt.Errorf("split %q has no direction", node.ID)
			return false
		}
		if len(node.Children) != 2 {
			walkErr = fmt.Errorf("split %q has %d children, want 2", node.ID, len(node.Children))
			return false
		}
		if node.SplitRatio < 0 || node.SplitRatio > 1 {
			walkErr = fmt.Errorf("split %q has ratio %v out of range", node.ID, node.SplitRatio)
			return false
		}
		if len(node.Tabs) > 0 || node.ActiveTabID != "" {
			walkErr = fmt.Errorf("split %q carries leaf state", node.ID)
			return false
		}
		return true
	})

	return walkErr
}

func validateLeaf(node *PaneNode, tabIDs map[TabID]struct{}) error {
	for _, tab := range node.Tabs {
		if _, dup := tabIDs[tab.ID]; dup {
			return fmt.Errorf("duplicate tab id %q", tab.ID)
		}
		tabIDs[tab.ID] = struct{}{}

		if len(tab.History) == 0 {
			return fmt.Errorf("tab %q has empty history", tab.ID)
		}
		if tab.HistoryCursor < 0 || tab.HistoryCursor >= len(tab.History) {
			return fmt.Errorf("tab %q cursor %d out of bounds (history length %d)",
				tab.ID, tab.HistoryCursor, len(tab.History))
		}
		if tab.History[tab.HistoryCursor] != tab.DocumentID {
			return fmt.Errorf("tab %q shows %q but history cursor points at %q",
				tab.ID, tab.DocumentID, tab.History[tab.HistoryCursor])
		}
	}

	if node.ActiveTabID != "" && node.FindTab(node.ActiveTabID) == nil {
		return fmt.Errorf("leaf %q active tab %q not in tab list", node.ID, node.ActiveTabID)
	}
	return nil
}
