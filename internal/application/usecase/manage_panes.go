// Package usecase contains the application's tree transforms. Every
// operation takes the current root and returns a brand-new root; old roots
// remain valid snapshots for any reader still holding them. Untouched
// subtrees are shared between revisions.
package usecase

import (
	"context"
	"math"

	"github.com/bnema/inkpad/internal/domain/entity"
	"github.com/bnema/inkpad/internal/logging"
)

// IDGenerator is a function type for generating unique IDs.
type IDGenerator func() string

const (
	minSplitRatio = 0.05
	maxSplitRatio = 0.95
)

// ManagePanesUseCase handles structural pane tree operations.
type ManagePanesUseCase struct {
	idGenerator IDGenerator
}

// NewManagePanesUseCase creates a new pane management use case.
func NewManagePanesUseCase(idGenerator IDGenerator) *ManagePanesUseCase {
	return &ManagePanesUseCase{
		idGenerator: idGenerator,
	}
}

// SplitPaneInput contains parameters for splitting a pane.
type SplitPaneInput struct {
	Root      *entity.PaneNode
	TargetID  entity.PaneID
	Direction entity.SplitDirection
}

// SplitPaneOutput contains the result of a split operation.
type SplitPaneOutput struct {
	Root *entity.PaneNode

	// ContentPaneID is the first child: a new leaf carrying the target's
	// original tabs and active tab.
	ContentPaneID entity.PaneID

	// DuplicatePaneID is the second child: a new leaf seeded with
	// independent copies of the same tabs.
	DuplicatePaneID entity.PaneID
}

// Split replaces the target leaf with a split node. The split keeps the
// target's id, so existing references to the pane now denote the split.
// The first child receives the leaf's exact tabs under a new pane id; the
// second child duplicates those tabs (continuity over an empty pane). The
// duplicates get fresh tab ids and are fully independent records, though
// they point at the same underlying documents.
func (uc *ManagePanesUseCase) Split(ctx context.Context, input SplitPaneInput) (*SplitPaneOutput, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("target_id", string(input.TargetID)).
		Int("direction", int(input.Direction)).
		Msg("splitting pane")

	target := input.Root.FindNode(input.TargetID)
	if target == nil {
		return nil, entity.ErrPaneNotFound
	}
	if !target.IsLeaf() {
		return nil, entity.ErrNotALeaf
	}

	contentID := entity.PaneID(uc.idGenerator())
	duplicateID := entity.PaneID(uc.idGenerator())

	newRoot, _ := replaceNode(input.Root, input.TargetID, func(leaf *entity.PaneNode) *entity.PaneNode {
		content := &entity.PaneNode{
			ID:          contentID,
			ActiveTabID: leaf.ActiveTabID,
		}
		for _, tab := range leaf.Tabs {
			content.Tabs = append(content.Tabs, tab.Clone())
		}

		duplicate := &entity.PaneNode{ID: duplicateID}
		for _, tab := range leaf.Tabs {
			dup := tab.Clone()
			dup.ID = entity.TabID(uc.idGenerator())
			duplicate.Tabs = append(duplicate.Tabs, dup)
			if tab.ID == leaf.ActiveTabID {
				duplicate.ActiveTabID = dup.ID
			}
		}

		return &entity.PaneNode{
			ID:         leaf.ID,
			SplitDir:   input.Direction,
			SplitRatio: entity.DefaultSplitRatio,
			Children:   []*entity.PaneNode{content, duplicate},
		}
	})

	log.Info().
		Str("split_id", string(input.TargetID)).
		Str("content_pane_id", string(contentID)).
		Str("duplicate_pane_id", string(duplicateID)).
		Msg("pane split completed")

	return &SplitPaneOutput{
		Root:            newRoot,
		ContentPaneID:   contentID,
		DuplicatePaneID: duplicateID,
	}, nil
}

// ClosePaneInput contains parameters for closing a pane.
type ClosePaneInput struct {
	Root     *entity.PaneNode
	TargetID entity.PaneID
}

// ClosePaneOutput contains the new root after a close operation.
type ClosePaneOutput struct {
	Root *entity.PaneNode
}

// Close removes the target node (leaf or whole subtree) and collapses its
// parent split: the sibling subtree takes the split's place. Closing the
// root fails with ErrLastPane; a single-leaf workspace can never be closed.
//
//nolint:revive // receiver kept for interface consistency with the other use cases
func (uc *ManagePanesUseCase) Close(ctx context.Context, input ClosePaneInput) (*ClosePaneOutput, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("target_id", string(input.TargetID)).Msg("closing pane")

	if input.Root == nil {
		return nil, entity.ErrPaneNotFound
	}
	if input.Root.ID == input.TargetID {
		return nil, entity.ErrLastPane
	}

	newRoot, removed := removePane(input.Root, input.TargetID)
	if !removed {
		return nil, entity.ErrPaneNotFound
	}

	log.Info().
		Str("closed_pane_id", string(input.TargetID)).
		Int("remaining_leaves", newRoot.LeafCount()).
		Msg("pane closed, sibling promoted")

	return &ClosePaneOutput{Root: newRoot}, nil
}

// SetSplitRatio records a new divider position on a split node. The ratio
// is clamped so neither side collapses and rounded to keep persisted
// snapshots stable.
//
//nolint:revive // receiver kept for interface consistency with the other use cases
func (uc *ManagePanesUseCase) SetSplitRatio(ctx context.Context, root *entity.PaneNode, splitID entity.PaneID, ratio float64) (*entity.PaneNode, error) {
	log := logging.FromContext(ctx)

	target := root.FindNode(splitID)
	if target == nil || !target.IsSplit() {
		return nil, entity.ErrPaneNotFound
	}

	clamped := roundSplitRatio(clampFloat64(ratio, minSplitRatio, maxSplitRatio))

	newRoot, _ := replaceNode(root, splitID, func(split *entity.PaneNode) *entity.PaneNode {
		updated := split.CloneShallow()
		updated.SplitRatio = clamped
		return updated
	})

	log.Debug().
		Str("split_id", string(splitID)).
		Float64("old_ratio", target.SplitRatio).
		Float64("new_ratio", clamped).
		Msg("split ratio set")

	return newRoot, nil
}

// replaceNode returns a copy of the tree with the node identified by id
// swapped for the result of build. Only the path from the root to the
// target is reallocated; all other subtrees are shared with the old tree.
func replaceNode(node *entity.PaneNode, id entity.PaneID, build func(*entity.PaneNode) *entity.PaneNode) (*entity.PaneNode, bool) {
	if node.ID == id {
		return build(node), true
	}
	for i, child := range node.Children {
		if replaced, ok := replaceNode(child, id, build); ok {
			updated := node.CloneShallow()
			updated.Children[i] = replaced
			return updated, true
		}
	}
	return node, false
}

// removePane returns a copy of the tree with the target node removed and
// its sibling promoted into the parent split's position.
func removePane(node *entity.PaneNode, id entity.PaneID) (*entity.PaneNode, bool) {
	if !node.IsSplit() {
		return node, false
	}
	for i, child := range node.Children {
		if child.ID == id {
			// The sibling subtree replaces the split itself.
			return node.Children[1-i], true
		}
		if replaced, ok := removePane(child, id); ok {
			updated := node.CloneShallow()
			updated.Children[i] = replaced
			return updated, true
		}
	}
	return node, false
}

const splitRatioRoundFactor = 100.0

func roundSplitRatio(ratio float64) float64 {
	// Keep snapshots stable and readable; avoids persisting noisy float values.
	return math.Round(ratio*splitRatioRoundFactor) / splitRatioRoundFactor
}

func clampFloat64(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
