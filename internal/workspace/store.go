// Package workspace owns the live workspace snapshot: the pane tree, the
// derived id index, and the active pane pointer. All mutations are
// serialized through the Store; no other component touches the tree.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/inkpad/internal/application/port"
	"github.com/bnema/inkpad/internal/application/usecase"
	"github.com/bnema/inkpad/internal/domain/entity"
	"github.com/bnema/inkpad/internal/logging"
)

// Saver schedules debounced persistence of layout snapshots. The call must
// be fire-and-forget: it never blocks the mutating operation.
type Saver interface {
	Schedule(state *entity.LayoutState)
}

// Config wires the store's collaborators.
type Config struct {
	PanesUC    *usecase.ManagePanesUseCase
	TabsUC     *usecase.ManageTabsUseCase
	NavUC      *usecase.NavigateUseCase
	Saver      Saver                 // optional; nil disables persistence
	Documents  port.DocumentProvider // optional; used for tab titles only
	GenerateID usecase.IDGenerator

	// StrictValidate re-checks tree invariants after every commit and
	// panics on violation. Enabled in tests; an inconsistent snapshot is
	// an implementation bug, not a runtime condition.
	StrictValidate bool
}

// Store is the single owner of the current workspace snapshot. Mutations
// run a pure tree transform, rebuild the index, and commit both atomically
// under one lock; persistence is scheduled afterwards and never awaited.
// Failed operations commit nothing.
type Store struct {
	mu           sync.Mutex
	root         *entity.PaneNode
	activePaneID entity.PaneID
	index        map[entity.PaneID]*entity.PaneNode

	panes *usecase.ManagePanesUseCase
	tabs  *usecase.ManageTabsUseCase
	nav   *usecase.NavigateUseCase

	saver      Saver
	documents  port.DocumentProvider
	generateID usecase.IDGenerator
	strict     bool
}

// New creates a store holding a default single-leaf workspace.
func New(cfg Config) *Store {
	root := entity.NewLeaf(entity.PaneID(cfg.GenerateID()))
	return &Store{
		root:         root,
		activePaneID: root.ID,
		index:        entity.BuildIndex(root),
		panes:        cfg.PanesUC,
		tabs:         cfg.TabsUC,
		nav:          cfg.NavUC,
		saver:        cfg.Saver,
		documents:    cfg.Documents,
		generateID:   cfg.GenerateID,
		strict:       cfg.StrictValidate,
	}
}

// Load replaces the default workspace with a persisted layout. Any restore
// failure leaves the default single-leaf workspace in place and is reported
// as a recoverable warning, never an error. No save is scheduled: the
// restored state is what storage already holds.
func (s *Store) Load(ctx context.Context, restoreUC *usecase.RestoreLayoutUseCase) {
	log := logging.FromContext(ctx)

	out, err := restoreUC.Execute(ctx)
	if err != nil {
		if errors.Is(err, usecase.ErrNoSavedLayout) {
			log.Debug().Msg("no saved layout, starting with default workspace")
		} else {
			log.Warn().Err(err).Msg("layout restore failed, falling back to default workspace")
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = out.Root
	s.activePaneID = out.ActivePaneID
	s.index = entity.BuildIndex(out.Root)
	s.checkInvariants()
}

// SplitPane splits the target pane in the given direction. On success the
// active pane becomes the content-preserving child. Returns false on any
// structural error.
func (s *Store) SplitPane(ctx context.Context, paneID entity.PaneID, direction entity.SplitDirection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.panes.Split(ctx, usecase.SplitPaneInput{
		Root:      s.root,
		TargetID:  paneID,
		Direction: direction,
	})
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Str("pane_id", string(paneID)).Msg("split pane rejected")
		return false
	}

	s.commit(out.Root, out.ContentPaneID)
	return true
}

// ClosePane removes the target pane and promotes its sibling. If the
// active pane was inside the removed subtree, the first leaf in traversal
// order of the new tree becomes active.
func (s *Store) ClosePane(ctx context.Context, paneID entity.PaneID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.panes.Close(ctx, usecase.ClosePaneInput{
		Root:     s.root,
		TargetID: paneID,
	})
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Str("pane_id", string(paneID)).Msg("close pane rejected")
		return false
	}

	active := s.activePaneID
	if node := out.Root.FindNode(active); node == nil || !node.IsLeaf() {
		active = out.Root.FirstLeaf().ID
	}

	s.commit(out.Root, active)
	return true
}

// SetActivePane changes which pane is active. The target must be an
// existing leaf.
func (s *Store) SetActivePane(ctx context.Context, paneID entity.PaneID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.index[paneID]
	if !ok || !node.IsLeaf() {
		return false
	}
	if s.activePaneID == paneID {
		return true
	}

	s.commit(s.root, paneID)
	logging.FromContext(ctx).Debug().Str("pane_id", string(paneID)).Msg("active pane changed")
	return true
}

// OpenDocument shows the document in the target pane (the active pane when
// paneID is empty) and returns the id of the tab now showing it, or empty
// on failure. See NavigateUseCase.OpenDocument for the in-tab navigation
// semantics.
func (s *Store) OpenDocument(ctx context.Context, documentID entity.DocumentID, paneID entity.PaneID, forceNewTab bool) entity.TabID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if paneID == "" {
		paneID = s.activePaneID
	}

	out, err := s.nav.OpenDocument(ctx, usecase.OpenDocumentInput{
		Root:        s.root,
		PaneID:      paneID,
		DocumentID:  documentID,
		ForceNewTab: forceNewTab,
	})
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).
			Str("pane_id", string(paneID)).
			Str("document_id", string(documentID)).
			Msg("open document rejected")
		return ""
	}

	if out.Root != s.root {
		s.commit(out.Root, s.activePaneID)
	}
	return out.TabID
}

// CloseTab removes a tab from a pane. The pane is never auto-collapsed
// when it empties; that policy stays with the caller.
func (s *Store) CloseTab(ctx context.Context, paneID entity.PaneID, tabID entity.TabID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	newRoot, err := s.tabs.RemoveTab(ctx, s.root, paneID, tabID)
	if err != nil {
		return false
	}
	s.commit(newRoot, s.activePaneID)
	return true
}

// CloseOtherTabs closes every tab in the active pane except the active tab
// and pinned tabs. It operates only on the active pane.
func (s *Store) CloseOtherTabs(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	newRoot, err := s.tabs.CloseOthers(ctx, s.root, s.activePaneID)
	if err != nil {
		return false
	}
	s.commit(newRoot, s.activePaneID)
	return true
}

// CloseAllTabs closes every tab in the active pane, pinned included.
func (s *Store) CloseAllTabs(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	newRoot, err := s.tabs.CloseAll(ctx, s.root, s.activePaneID)
	if err != nil {
		return false
	}
	s.commit(newRoot, s.activePaneID)
	return true
}

// SetActiveTab changes the active tab of a pane. Unknown panes or tabs are
// tolerated as no-ops.
func (s *Store) SetActiveTab(ctx context.Context, paneID entity.PaneID, tabID entity.TabID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newRoot, err := s.tabs.SetActiveTab(ctx, s.root, paneID, tabID)
	if err != nil || newRoot == s.root {
		return
	}
	s.commit(newRoot, s.activePaneID)
}

// UpdateTab merges a partial update into the matching tab.
func (s *Store) UpdateTab(ctx context.Context, paneID entity.PaneID, tabID entity.TabID, patch entity.TabPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newRoot, err := s.tabs.UpdateTab(ctx, s.root, paneID, tabID, patch)
	if err != nil || newRoot == s.root {
		return
	}
	s.commit(newRoot, s.activePaneID)
}

// ReorderTabs replaces a pane's tab order. Rejected orders (not a
// permutation, or crossing the pinned boundary) return false and change
// nothing.
func (s *Store) ReorderTabs(ctx context.Context, paneID entity.PaneID, newOrder []entity.TabID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	newRoot, err := s.tabs.ReorderTabs(ctx, s.root, paneID, newOrder)
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Str("pane_id", string(paneID)).Msg("reorder rejected")
		return false
	}
	s.commit(newRoot, s.activePaneID)
	return true
}

// PinTab sets a tab's pinned flag, repositioning it to keep pinned tabs
// before unpinned ones.
func (s *Store) PinTab(ctx context.Context, paneID entity.PaneID, tabID entity.TabID, pinned bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	newRoot, err := s.tabs.Pin(ctx, s.root, paneID, tabID, pinned)
	if err != nil {
		return false
	}
	if newRoot != s.root {
		s.commit(newRoot, s.activePaneID)
	}
	return true
}

// DuplicateTab clones a tab within its pane and returns the new tab's id,
// or empty on failure.
func (s *Store) DuplicateTab(ctx context.Context, paneID entity.PaneID, tabID entity.TabID) entity.TabID {
	s.mu.Lock()
	defer s.mu.Unlock()

	newRoot, dupID, err := s.tabs.Duplicate(ctx, s.root, paneID, tabID)
	if err != nil {
		return ""
	}
	s.commit(newRoot, s.activePaneID)
	return dupID
}

// MoveTab transfers a tab between panes as a remove-then-insert; tabs are
// owned by exactly one leaf at a time. The moved tab keeps its id, history,
// and flags, and becomes active in the destination pane.
func (s *Store) MoveTab(ctx context.Context, fromPane, toPane entity.PaneID, tabID entity.TabID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	source, ok := s.index[fromPane]
	if !ok || !source.IsLeaf() {
		return false
	}
	tab := source.FindTab(tabID)
	if tab == nil {
		return false
	}
	dest, ok := s.index[toPane]
	if !ok || !dest.IsLeaf() || fromPane == toPane {
		return false
	}

	removedRoot, err := s.tabs.RemoveTab(ctx, s.root, fromPane, tabID)
	if err != nil {
		return false
	}
	newRoot, err := s.tabs.AddTab(ctx, removedRoot, toPane, tab)
	if err != nil {
		// Nothing was committed, so the failed remove is discarded too.
		return false
	}

	s.commit(newRoot, s.activePaneID)
	return true
}

// NavigateBack moves the active tab of the pane (the active pane when
// paneID is empty) one step back in history. No-op at the start.
func (s *Store) NavigateBack(ctx context.Context, paneID entity.PaneID) bool {
	return s.navigate(ctx, paneID, s.nav.Back)
}

// NavigateForward moves the active tab one step forward in history. No-op
// at the end.
func (s *Store) NavigateForward(ctx context.Context, paneID entity.PaneID) bool {
	return s.navigate(ctx, paneID, s.nav.Forward)
}

func (s *Store) navigate(ctx context.Context, paneID entity.PaneID, move func(context.Context, *entity.PaneNode, entity.PaneID) (*entity.PaneNode, bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if paneID == "" {
		paneID = s.activePaneID
	}

	newRoot, moved := move(ctx, s.root, paneID)
	if !moved {
		return false
	}
	s.commit(newRoot, s.activePaneID)
	return true
}

// SetSplitRatio records a new divider position for a split node.
func (s *Store) SetSplitRatio(ctx context.Context, splitID entity.PaneID, ratio float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	newRoot, err := s.panes.SetSplitRatio(ctx, s.root, splitID, ratio)
	if err != nil {
		return false
	}
	s.commit(newRoot, s.activePaneID)
	return true
}

// FindPane resolves a pane by id in O(1) via the index. The returned node
// belongs to an immutable snapshot and must not be modified.
func (s *Store) FindPane(id entity.PaneID) *entity.PaneNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index[id]
}

// FindPaneByTab returns the leaf holding the given tab, scanning only
// leaves through the index.
func (s *Store) FindPaneByTab(tabID entity.TabID) *entity.PaneNode {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, node := range s.index {
		if node.IsLeaf() && node.FindTab(tabID) != nil {
			return node
		}
	}
	return nil
}

// GetActivePane returns the currently active leaf pane.
func (s *Store) GetActivePane() *entity.PaneNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index[s.activePaneID]
}

// ActivePaneID returns the id of the active pane.
func (s *Store) ActivePaneID() entity.PaneID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activePaneID
}

// Root returns the current tree snapshot. Snapshots are immutable; readers
// may hold the returned root across later mutations.
func (s *Store) Root() *entity.PaneNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root
}

// PaneCount returns the number of leaf panes.
func (s *Store) PaneCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root.LeafCount()
}

// AllTabs collects every tab in traversal order. The pane tree is the
// single source of truth; there is no secondary tab list to keep in sync.
func (s *Store) AllTabs() []*entity.Tab {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tabs []*entity.Tab
	s.root.Walk(func(node *entity.PaneNode) bool {
		if node.IsLeaf() {
			tabs = append(tabs, node.Tabs...)
		}
		return true
	})
	return tabs
}

// Snapshot returns a serializable snapshot of the current layout.
func (s *Store) Snapshot() *entity.LayoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return entity.SnapshotLayout(s.root, s.activePaneID)
}

// TabTitle resolves a display title for a tab through the document
// provider, falling back to the raw document id.
func (s *Store) TabTitle(ctx context.Context, tabID entity.TabID) string {
	pane := s.FindPaneByTab(tabID)
	if pane == nil {
		return ""
	}
	tab := pane.FindTab(tabID)

	if s.documents != nil {
		if title, ok := s.documents.Title(ctx, tab.DocumentID); ok {
			return title
		}
	}
	return string(tab.DocumentID)
}

// commit atomically replaces the snapshot and its derived index, then
// schedules a debounced save. Callers hold s.mu.
func (s *Store) commit(root *entity.PaneNode, activePaneID entity.PaneID) {
	s.root = root
	s.activePaneID = activePaneID
	s.index = entity.BuildIndex(root)
	s.checkInvariants()

	if s.saver != nil {
		s.saver.Schedule(entity.SnapshotLayout(root, activePaneID))
	}
}

func (s *Store) checkInvariants() {
	if !s.strict {
		return
	}
	if err := entity.ValidateTree(s.root); err != nil {
		panic(fmt.Sprintf("workspace invariant violated: %v", err))
	}
	if _, ok := s.index[s.activePaneID]; !ok {
		panic(fmt.Sprintf("active pane %q missing from index", s.activePaneID))
	}
}
