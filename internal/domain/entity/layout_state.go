package entity

import (
	"fmt"
	"time"
)

// LayoutStateVersion is the current schema version for persisted layouts.
// Increment when making breaking changes to the serialization format.
const LayoutStateVersion = 1

// LayoutState is a complete, serializable snapshot of the workspace layout:
// the pane tree plus the active pane id. It is stored as JSON and must
// round-trip every field losslessly (tab order, flags, history and cursor,
// split direction and ratio).
type LayoutState struct {
	Version      int            `json:"version"`
	Root         *PaneNodeState `json:"root"`
	ActivePaneID PaneID         `json:"active_pane_id"`
	SavedAt      time.Time      `json:"saved_at"`
}

// PaneNodeState captures one node of the pane tree.
type PaneNodeState struct {
	ID          PaneID           `json:"id"`
	Tabs        []TabState       `json:"tabs,omitempty"`
	ActiveTabID TabID            `json:"active_tab_id,omitempty"`
	SplitDir    SplitDirection   `json:"split_dir,omitempty"`
	SplitRatio  float64          `json:"split_ratio,omitempty"`
	Children    []*PaneNodeState `json:"children,omitempty"`
}

// TabState captures one tab, including its full navigation history.
type TabState struct {
	ID            TabID        `json:"id"`
	DocumentID    DocumentID   `json:"document_id"`
	IsDirty       bool         `json:"is_dirty,omitempty"`
	IsPinned      bool         `json:"is_pinned,omitempty"`
	IsPreview     bool         `json:"is_preview,omitempty"`
	History       []DocumentID `json:"history"`
	HistoryCursor int          `json:"history_cursor"`
}

// SnapshotLayout creates a LayoutState from a live tree and active pane id.
func SnapshotLayout(root *PaneNode, activePaneID PaneID) *LayoutState {
	return &LayoutState{
		Version:      LayoutStateVersion,
		Root:         snapshotNode(root),
		ActivePaneID: activePaneID,
		SavedAt:      time.Now(),
	}
}

func snapshotNode(node *PaneNode) *PaneNodeState {
	if node == nil {
		return nil
	}
	state := &PaneNodeState{
		ID:          node.ID,
		ActiveTabID: node.ActiveTabID,
		SplitDir:    node.SplitDir,
		SplitRatio:  node.SplitRatio,
	}
	if len(node.Tabs) > 0 {
		state.Tabs = make([]TabState, 0, len(node.Tabs))
		for _, tab := range node.Tabs {
			state.Tabs = append(state.Tabs, TabState{
				ID:            tab.ID,
				DocumentID:    tab.DocumentID,
				IsDirty:       tab.IsDirty,
				IsPinned:      tab.IsPinned,
				IsPreview:     tab.IsPreview,
				History:       append([]DocumentID(nil), tab.History...),
				HistoryCursor: tab.HistoryCursor,
			})
		}
	}
	if len(node.Children) > 0 {
		state.Children = make([]*PaneNodeState, 0, len(node.Children))
		for _, child := range node.Children {
			state.Children = append(state.Children, snapshotNode(child))
		}
	}
	return state
}

// RestoreTree rebuilds a pane tree from the state, preserving every
// persisted id so that save/load round-trips exactly. The rebuilt tree is
// validated; an invalid layout is rejected rather than repaired. If the
// persisted active pane id no longer resolves to a leaf, the first leaf in
// traversal order takes its place.
func (s *LayoutState) RestoreTree() (*PaneNode, PaneID, error) {
	if s.Root == nil {
		return nil, "", fmt.Errorf("layout state has no root")
	}

	root := restoreNode(s.Root)
	if err := ValidateTree(root); err != nil {
		return nil, "", fmt.Errorf("persisted layout is invalid: %w", err)
	}

	activePaneID := s.ActivePaneID
	if active := root.FindNode(activePaneID); active == nil || !active.IsLeaf() {
		activePaneID = root.FirstLeaf().ID
	}

	return root, activePaneID, nil
}

func restoreNode(state *PaneNodeState) *PaneNode {
	node := &PaneNode{
		ID:          state.ID,
		ActiveTabID: state.ActiveTabID,
		SplitDir:    state.SplitDir,
		SplitRatio:  state.SplitRatio,
	}
	if len(state.Tabs) > 0 {
		node.Tabs = make([]*Tab, 0, len(state.Tabs))
		for _, ts := range state.Tabs {
			node.Tabs = append(node.Tabs, &Tab{
				ID:            ts.ID,
				DocumentID:    ts.DocumentID,
				IsDirty:       ts.IsDirty,
				IsPinned:      ts.IsPinned,
				IsPreview:     ts.IsPreview,
				History:       append([]DocumentID(nil), ts.History...),
				HistoryCursor: ts.HistoryCursor,
			})
		}
	}
	if len(state.Children) > 0 {
		node.Children = make([]*PaneNode, 0, len(state.Children))
		for _, child := range state.Children {
			node.Children = append(node.Children, restoreNode(child))
		}
	}
	return node
}

// CountPanes returns the number of leaf panes in the state.
func (s *LayoutState) CountPanes() int {
	return countLeaves(s.Root)
}

func countLeaves(state *PaneNodeState) int {
	if state == nil {
		return 0
	}
	if len(state.Children) == 0 {
		return 1
	}
	count := 0
	for _, child := range state.Children {
		count += countLeaves(child)
	}
	return count
}

// CountTabs returns the total number of tabs across all leaves.
func (s *LayoutState) CountTabs() int {
	return countTabs(s.Root)
}

func countTabs(state *PaneNodeState) int {
	if state == nil {
		return 0
	}
	count := len(state.Tabs)
	for _, child := range state.Children {
		count += countTabs(child)
	}
	return count
}
