package usecase

import (
	"context"

	"github.com/bnema/inkpad/internal/domain/entity"
	"github.com/bnema/inkpad/internal/logging"
)

// NavigateUseCase handles document navigation: opening documents into tabs
// and moving through a tab's history. Like the other use cases, every
// method returns a new root.
type NavigateUseCase struct {
	idGenerator IDGenerator
}

// NewNavigateUseCase creates a new navigation use case.
func NewNavigateUseCase(idGenerator IDGenerator) *NavigateUseCase {
	return &NavigateUseCase{
		idGenerator: idGenerator,
	}
}

// OpenDocumentInput contains parameters for opening a document.
type OpenDocumentInput struct {
	Root        *entity.PaneNode
	PaneID      entity.PaneID
	DocumentID  entity.DocumentID
	ForceNewTab bool
}

// OpenDocumentOutput contains the result of opening a document.
type OpenDocumentOutput struct {
	Root  *entity.PaneNode
	TabID entity.TabID
}

// OpenDocument shows a document in the target pane. When the pane has an
// active tab and ForceNewTab is not set, the document opens as a navigation
// within that tab: forward history is truncated at the cursor, the document
// is appended, and the cursor advances. A new tab is created only when the
// pane has no active tab yet or ForceNewTab is set. Opening the document
// the active tab already shows is a no-op.
func (uc *NavigateUseCase) OpenDocument(ctx context.Context, input OpenDocumentInput) (*OpenDocumentOutput, error) {
	log := logging.FromContext(ctx)

	leaf := input.Root.FindNode(input.PaneID)
	if leaf == nil {
		return nil, entity.ErrPaneNotFound
	}
	if !leaf.IsLeaf() {
		return nil, entity.ErrNotALeaf
	}

	active := leaf.ActiveTab()
	if active != nil && !input.ForceNewTab {
		if active.DocumentID == input.DocumentID {
			return &OpenDocumentOutput{Root: input.Root, TabID: active.ID}, nil
		}

		newRoot, _ := replaceNode(input.Root, input.PaneID, func(node *entity.PaneNode) *entity.PaneNode {
			updated := node.CloneShallow()
			for i, tab := range updated.Tabs {
				if tab.ID == node.ActiveTabID {
					visited := tab.Clone()
					visited.VisitDocument(input.DocumentID)
					updated.Tabs[i] = visited
					break
				}
			}
			return updated
		})

		log.Info().
			Str("pane_id", string(input.PaneID)).
			Str("tab_id", string(active.ID)).
			Str("document_id", string(input.DocumentID)).
			Msg("navigated within tab")

		return &OpenDocumentOutput{Root: newRoot, TabID: active.ID}, nil
	}

	tab := entity.NewTab(entity.TabID(uc.idGenerator()), input.DocumentID)

	newRoot, _ := replaceNode(input.Root, input.PaneID, func(node *entity.PaneNode) *entity.PaneNode {
		updated := node.CloneShallow()
		updated.Tabs = append(updated.Tabs, tab)
		updated.ActiveTabID = tab.ID
		return updated
	})

	log.Info().
		Str("pane_id", string(input.PaneID)).
		Str("tab_id", string(tab.ID)).
		Str("document_id", string(input.DocumentID)).
		Msg("document opened in new tab")

	return &OpenDocumentOutput{Root: newRoot, TabID: tab.ID}, nil
}

// Back moves the active tab's history cursor one step back. At the start
// of history (or with no active tab) this is a no-op, never an error. The
// returned bool reports whether the cursor moved.
//
//nolint:revive // receiver kept for interface consistency with the other use cases
func (uc *NavigateUseCase) Back(ctx context.Context, root *entity.PaneNode, paneID entity.PaneID) (*entity.PaneNode, bool) {
	return moveCursor(ctx, root, paneID, func(tab *entity.Tab) bool { return tab.GoBack() }, "navigated back")
}

// Forward moves the active tab's history cursor one step forward. At the
// end of history this is a no-op.
//
//nolint:revive // receiver kept for interface consistency with the other use cases
func (uc *NavigateUseCase) Forward(ctx context.Context, root *entity.PaneNode, paneID entity.PaneID) (*entity.PaneNode, bool) {
	return moveCursor(ctx, root, paneID, func(tab *entity.Tab) bool { return tab.GoForward() }, "navigated forward")
}

func moveCursor(ctx context.Context, root *entity.PaneNode, paneID entity.PaneID, move func(*entity.Tab) bool, msg string) (*entity.PaneNode, bool) {
	ctx = logging.WithPaneID(ctx, string(paneID))
	log := logging.FromContext(ctx)

	leaf := root.FindNode(paneID)
	if leaf == nil || !leaf.IsLeaf() {
		return root, false
	}
	active := leaf.ActiveTab()
	if active == nil {
		return root, false
	}

	probe := active.Clone()
	if !move(probe) {
		return root, false
	}

	newRoot, _ := replaceNode(root, paneID, func(node *entity.PaneNode) *entity.PaneNode {
		updated := node.CloneShallow()
		for i, tab := range updated.Tabs {
			if tab.ID == node.ActiveTabID {
				updated.Tabs[i] = probe
				break
			}
		}
		return updated
	})

	log.Debug().
		Str("tab_id", string(active.ID)).
		Str("document_id", string(probe.DocumentID)).
		Msg(msg)

	return newRoot, true
}
