package usecase

import (
	"context"

	"github.com/bnema/inkpad/internal/domain/entity"
	"github.com/bnema/inkpad/internal/logging"
)

// ManageTabsUseCase handles tab lifecycle operations within leaf panes.
// Every method is a pure transform: it returns a new root and leaves the
// input tree untouched.
type ManageTabsUseCase struct {
	idGenerator IDGenerator
}

// NewManageTabsUseCase creates a new tab management use case.
func NewManageTabsUseCase(idGenerator IDGenerator) *ManageTabsUseCase {
	return &ManageTabsUseCase{
		idGenerator: idGenerator,
	}
}

// SetActiveTab sets the active tab of the given pane. Missing panes and
// missing tabs are tolerated as no-ops, so the operation is idempotent.
// An empty tabID clears the active tab.
//
//nolint:revive // receiver kept for interface consistency with the other use cases
func (uc *ManageTabsUseCase) SetActiveTab(ctx context.Context, root *entity.PaneNode, paneID entity.PaneID, tabID entity.TabID) (*entity.PaneNode, error) {
	log := logging.FromContext(ctx)

	leaf := root.FindNode(paneID)
	if leaf == nil || !leaf.IsLeaf() {
		log.Debug().Str("pane_id", string(paneID)).Msg("set active tab: pane not found, ignoring")
		return root, nil
	}
	if tabID != "" && leaf.FindTab(tabID) == nil {
		log.Debug().
			Str("pane_id", string(paneID)).
			Str("tab_id", string(tabID)).
			Msg("set active tab: tab not found, ignoring")
		return root, nil
	}
	if leaf.ActiveTabID == tabID {
		return root, nil
	}

	newRoot, _ := replaceNode(root, paneID, func(node *entity.PaneNode) *entity.PaneNode {
		updated := node.CloneShallow()
		updated.ActiveTabID = tabID
		return updated
	})

	log.Debug().
		Str("pane_id", string(paneID)).
		Str("tab_id", string(tabID)).
		Msg("active tab changed")

	return newRoot, nil
}

// AddTab appends the tab to the pane and makes it active. Adding a tab id
// that already exists in the pane only activates it (idempotent).
//
//nolint:revive // receiver kept for interface consistency with the other use cases
func (uc *ManageTabsUseCase) AddTab(ctx context.Context, root *entity.PaneNode, paneID entity.PaneID, tab *entity.Tab) (*entity.PaneNode, error) {
	log := logging.FromContext(ctx)

	leaf := root.FindNode(paneID)
	if leaf == nil {
		return nil, entity.ErrPaneNotFound
	}
	if !leaf.IsLeaf() {
		return nil, entity.ErrNotALeaf
	}

	newRoot, _ := replaceNode(root, paneID, func(node *entity.PaneNode) *entity.PaneNode {
		updated := node.CloneShallow()
		if node.FindTab(tab.ID) == nil {
			updated.Tabs = append(updated.Tabs, tab.Clone())
		}
		updated.ActiveTabID = tab.ID
		return updated
	})

	log.Info().
		Str("pane_id", string(paneID)).
		Str("tab_id", string(tab.ID)).
		Str("document_id", string(tab.DocumentID)).
		Msg("tab added")

	return newRoot, nil
}

// RemoveTab removes the tab from the pane. If the removed tab was active,
// the tab now at the end of the list becomes active (recency-biased), or
// none if the pane is empty. The pane itself is never auto-collapsed;
// closing an emptied pane is the caller's policy decision.
//
//nolint:revive // receiver kept for interface consistency with the other use cases
func (uc *ManageTabsUseCase) RemoveTab(ctx context.Context, root *entity.PaneNode, paneID entity.PaneID, tabID entity.TabID) (*entity.PaneNode, error) {
	ctx = logging.WithTabID(ctx, string(tabID))
	log := logging.FromContext(ctx)

	leaf := root.FindNode(paneID)
	if leaf == nil || !leaf.IsLeaf() {
		return nil, entity.ErrPaneNotFound
	}
	if leaf.FindTab(tabID) == nil {
		return nil, entity.ErrTabNotFound
	}

	newRoot, _ := replaceNode(root, paneID, func(node *entity.PaneNode) *entity.PaneNode {
		updated := node.CloneShallow()
		updated.Tabs = nil
		for _, tab := range node.Tabs {
			if tab.ID != tabID {
				updated.Tabs = append(updated.Tabs, tab)
			}
		}
		if node.ActiveTabID == tabID {
			updated.ActiveTabID = ""
			if len(updated.Tabs) > 0 {
				updated.ActiveTabID = updated.Tabs[len(updated.Tabs)-1].ID
			}
		}
		return updated
	})

	log.Info().
		Str("pane_id", string(paneID)).
		Msg("tab removed")

	return newRoot, nil
}

// UpdateTab merges a partial update into the matching tab. A missing pane
// or tab is a no-op.
//
//nolint:revive // receiver kept for interface consistency with the other use cases
func (uc *ManageTabsUseCase) UpdateTab(ctx context.Context, root *entity.PaneNode, paneID entity.PaneID, tabID entity.TabID, patch entity.TabPatch) (*entity.PaneNode, error) {
	log := logging.FromContext(ctx)

	leaf := root.FindNode(paneID)
	if leaf == nil || !leaf.IsLeaf() || leaf.FindTab(tabID) == nil {
		log.Debug().
			Str("pane_id", string(paneID)).
			Str("tab_id", string(tabID)).
			Msg("update tab: target not found, ignoring")
		return root, nil
	}

	newRoot, _ := replaceNode(root, paneID, func(node *entity.PaneNode) *entity.PaneNode {
		updated := node.CloneShallow()
		for i, tab := range updated.Tabs {
			if tab.ID == tabID {
				patched := tab.Clone()
				patch.Apply(patched)
				if patched.IsPinned != tab.IsPinned {
					// A pin change must keep pinned tabs a prefix of the
					// list, same repositioning as Pin.
					updated.Tabs = insertAtPinnedBoundary(tabsWithout(node.Tabs, tabID), patched)
				} else {
					updated.Tabs[i] = patched
				}
				break
			}
		}
		return updated
	})

	log.Debug().
		Str("pane_id", string(paneID)).
		Str("tab_id", string(tabID)).
		Msg("tab updated")

	return newRoot, nil
}

// tabsWithout returns the tab list minus the given tab.
func tabsWithout(tabs []*entity.Tab, tabID entity.TabID) []*entity.Tab {
	rest := make([]*entity.Tab, 0, len(tabs)-1)
	for _, tab := range tabs {
		if tab.ID != tabID {
			rest = append(rest, tab)
		}
	}
	return rest
}

// insertAtPinnedBoundary inserts the tab between the pinned prefix and the
// unpinned suffix: a pinned tab lands at the end of the prefix, an unpinned
// one at the front of the suffix.
func insertAtPinnedBoundary(rest []*entity.Tab, moved *entity.Tab) []*entity.Tab {
	boundary := 0
	for _, tab := range rest {
		if !tab.IsPinned {
			break
		}
		boundary++
	}

	tabs := make([]*entity.Tab, 0, len(rest)+1)
	tabs = append(tabs, rest[:boundary]...)
	tabs = append(tabs, moved)
	tabs = append(tabs, rest[boundary:]...)
	return tabs
}

// ReorderTabs replaces the pane's tab order. The request is rejected if
// newOrder is not a permutation of the existing tab ids, or if it would
// move a pinned tab across the pinned/unpinned boundary (pinned tabs
// always sort before unpinned tabs).
//
//nolint:revive // receiver kept for interface consistency with the other use cases
func (uc *ManageTabsUseCase) ReorderTabs(ctx context.Context, root *entity.PaneNode, paneID entity.PaneID, newOrder []entity.TabID) (*entity.PaneNode, error) {
	log := logging.FromContext(ctx)

	leaf := root.FindNode(paneID)
	if leaf == nil || !leaf.IsLeaf() {
		return nil, entity.ErrPaneNotFound
	}

	if len(newOrder) != len(leaf.Tabs) {
		return nil, entity.ErrInvalidPermutation
	}
	seen := make(map[entity.TabID]struct{}, len(newOrder))
	for _, id := range newOrder {
		if _, dup := seen[id]; dup {
			return nil, entity.ErrInvalidPermutation
		}
		if leaf.FindTab(id) == nil {
			return nil, entity.ErrInvalidPermutation
		}
		seen[id] = struct{}{}
	}

	// Pinned tabs must form a prefix of the new order.
	unpinnedSeen := false
	for _, id := range newOrder {
		tab := leaf.FindTab(id)
		if tab.IsPinned {
			if unpinnedSeen {
				return nil, entity.ErrPinnedBoundary
			}
		} else {
			unpinnedSeen = true
		}
	}

	newRoot, _ := replaceNode(root, paneID, func(node *entity.PaneNode) *entity.PaneNode {
		updated := node.CloneShallow()
		updated.Tabs = make([]*entity.Tab, 0, len(newOrder))
		for _, id := range newOrder {
			updated.Tabs = append(updated.Tabs, node.FindTab(id))
		}
		return updated
	})

	log.Debug().
		Str("pane_id", string(paneID)).
		Int("tab_count", len(newOrder)).
		Msg("tabs reordered")

	return newRoot, nil
}

// Pin sets the pinned flag and repositions the tab to respect the
// pinned-before-unpinned ordering: pinning appends to the end of the pinned
// prefix, unpinning places the tab at the front of the unpinned suffix.
//
//nolint:revive // receiver kept for interface consistency with the other use cases
func (uc *ManageTabsUseCase) Pin(ctx context.Context, root *entity.PaneNode, paneID entity.PaneID, tabID entity.TabID, pinned bool) (*entity.PaneNode, error) {
	log := logging.FromContext(ctx)

	leaf := root.FindNode(paneID)
	if leaf == nil || !leaf.IsLeaf() {
		return nil, entity.ErrPaneNotFound
	}
	target := leaf.FindTab(tabID)
	if target == nil {
		return nil, entity.ErrTabNotFound
	}
	if target.IsPinned == pinned {
		return root, nil
	}

	newRoot, _ := replaceNode(root, paneID, func(node *entity.PaneNode) *entity.PaneNode {
		updated := node.CloneShallow()

		moved := node.FindTab(tabID).Clone()
		moved.IsPinned = pinned

		updated.Tabs = insertAtPinnedBoundary(tabsWithout(node.Tabs, tabID), moved)
		return updated
	})

	log.Info().
		Str("pane_id", string(paneID)).
		Str("tab_id", string(tabID)).
		Bool("pinned", pinned).
		Msg("tab pin state changed")

	return newRoot, nil
}

// Duplicate clones the tab (fresh id, independent history) and inserts the
// copy immediately after the original, making it active.
func (uc *ManageTabsUseCase) Duplicate(ctx context.Context, root *entity.PaneNode, paneID entity.PaneID, tabID entity.TabID) (*entity.PaneNode, entity.TabID, error) {
	log := logging.FromContext(ctx)

	leaf := root.FindNode(paneID)
	if leaf == nil || !leaf.IsLeaf() {
		return nil, "", entity.ErrPaneNotFound
	}
	source := leaf.FindTab(tabID)
	if source == nil {
		return nil, "", entity.ErrTabNotFound
	}

	dupID := entity.TabID(uc.idGenerator())

	newRoot, _ := replaceNode(root, paneID, func(node *entity.PaneNode) *entity.PaneNode {
		updated := node.CloneShallow()
		dup := node.FindTab(tabID).Clone()
		dup.ID = dupID

		idx := node.TabIndex(tabID)
		updated.Tabs = make([]*entity.Tab, 0, len(node.Tabs)+1)
		updated.Tabs = append(updated.Tabs, node.Tabs[:idx+1]...)
		updated.Tabs = append(updated.Tabs, dup)
		updated.Tabs = append(updated.Tabs, node.Tabs[idx+1:]...)
		updated.ActiveTabID = dupID
		return updated
	})

	log.Info().
		Str("pane_id", string(paneID)).
		Str("source_tab_id", string(tabID)).
		Str("new_tab_id", string(dupID)).
		Msg("tab duplicated")

	return newRoot, dupID, nil
}

// CloseOthers removes every tab in the pane except the active tab and any
// pinned tabs.
//
//nolint:revive // receiver kept for interface consistency with the other use cases
func (uc *ManageTabsUseCase) CloseOthers(ctx context.Context, root *entity.PaneNode, paneID entity.PaneID) (*entity.PaneNode, error) {
	log := logging.FromContext(ctx)

	leaf := root.FindNode(paneID)
	if leaf == nil || !leaf.IsLeaf() {
		return nil, entity.ErrPaneNotFound
	}

	newRoot, _ := replaceNode(root, paneID, func(node *entity.PaneNode) *entity.PaneNode {
		updated := node.CloneShallow()
		updated.Tabs = nil
		for _, tab := range node.Tabs {
			if tab.ID == node.ActiveTabID || tab.IsPinned {
				updated.Tabs = append(updated.Tabs, tab)
			}
		}
		return updated
	})

	log.Info().
		Str("pane_id", string(paneID)).
		Int("remaining", len(newRoot.FindNode(paneID).Tabs)).
		Msg("other tabs closed")

	return newRoot, nil
}

// CloseAll removes every tab in the pane, pinned included, and clears the
// active tab. The emptied pane stays open.
//
//nolint:revive // receiver kept for interface consistency with the other use cases
func (uc *ManageTabsUseCase) CloseAll(ctx context.Context, root *entity.PaneNode, paneID entity.PaneID) (*entity.PaneNode, error) {
	log := logging.FromContext(ctx)

	leaf := root.FindNode(paneID)
	if leaf == nil || !leaf.IsLeaf() {
		return nil, entity.ErrPaneNotFound
	}

	newRoot, _ := replaceNode(root, paneID, func(node *entity.PaneNode) *entity.PaneNode {
		updated := node.CloneShallow()
		updated.Tabs = nil
		updated.ActiveTabID = ""
		return updated
	})

	log.Info().Str("pane_id", string(paneID)).Msg("all tabs closed")

	return newRoot, nil
}
