package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/inkpad/internal/application/usecase"
	"github.com/bnema/inkpad/internal/domain/entity"
	"github.com/bnema/inkpad/internal/logging"
)

func testContext() context.Context {
	logger := logging.New(logging.DefaultConfig())
	return logging.WithContext(context.Background(), logger)
}

// mockIDGenerator returns id-1, id-2, ... deterministically.
func mockIDGenerator() usecase.IDGenerator {
	counter := 0
	return func() string {
		counter++
		return fmt.Sprintf("id-%d", counter)
	}
}

func leafWithTabs(id entity.PaneID, docs ...entity.DocumentID) *entity.PaneNode {
	leaf := entity.NewLeaf(id)
	for i, doc := range docs {
		tab := entity.NewTab(entity.TabID(fmt.Sprintf("%s-tab%d", id, i+1)), doc)
		leaf.Tabs = append(leaf.Tabs, tab)
	}
	if len(leaf.Tabs) > 0 {
		leaf.ActiveTabID = leaf.Tabs[0].ID
	}
	return leaf
}

func TestManagePanesUseCase_Split_ReplacesLeafWithSplit(t *testing.T) {
	ctx := testContext()
	uc := usecase.NewManagePanesUseCase(mockIDGenerator())

	root := leafWithTabs("pane1", "a.md", "b.md")

	out, err := uc.Split(ctx, usecase.SplitPaneInput{
		Root:      root,
		TargetID:  "pane1",
		Direction: entity.SplitVertical,
	})
	require.NoError(t, err)

	// The split keeps the closed leaf's id.
	split := out.Root.FindNode("pane1")
	require.NotNil(t, split)
	assert.True(t, split.IsSplit())
	assert.Equal(t, entity.SplitVertical, split.SplitDir)
	assert.InDelta(t, entity.DefaultSplitRatio, split.SplitRatio, 0.001)

	content := out.Root.FindNode(out.ContentPaneID)
	require.NotNil(t, content)
	assert.Equal(t, split.Left(), content)
	require.Len(t, content.Tabs, 2)
	assert.Equal(t, entity.TabID("pane1-tab1"), content.Tabs[0].ID)
	assert.Equal(t, entity.TabID("pane1-tab1"), content.ActiveTabID)

	duplicate := out.Root.FindNode(out.DuplicatePaneID)
	require.NotNil(t, duplicate)
	assert.Equal(t, split.Right(), duplicate)
	require.Len(t, duplicate.Tabs, 2)
	// Duplicated tabs carry fresh ids but point at the same documents.
	assert.NotEqual(t, content.Tabs[0].ID, duplicate.Tabs[0].ID)
	assert.Equal(t, content.Tabs[0].DocumentID, duplicate.Tabs[0].DocumentID)
	assert.Equal(t, duplicate.Tabs[0].ID, duplicate.ActiveTabID)

	require.NoError(t, entity.ValidateTree(out.Root))
}

func TestManagePanesUseCase_Split_LeavesOldRootUntouched(t *testing.T) {
	ctx := testContext()
	uc := usecase.NewManagePanesUseCase(mockIDGenerator())

	root := leafWithTabs("pane1", "a.md")

	out, err := uc.Split(ctx, usecase.SplitPaneInput{
		Root:      root,
		TargetID:  "pane1",
		Direction: entity.SplitHorizontal,
	})
	require.NoError(t, err)

	// The input snapshot is still a plain leaf.
	assert.True(t, root.IsLeaf())
	assert.Len(t, root.Tabs, 1)
	assert.NotSame(t, root, out.Root)
}

func TestManagePanesUseCase_Split_DuplicateHistoryIsIndependent(t *testing.T) {
	ctx := testContext()
	uc := usecase.NewManagePanesUseCase(mockIDGenerator())

	root := leafWithTabs("pane1", "a.md")
	root.Tabs[0].VisitDocument("b.md")

	out, err := uc.Split(ctx, usecase.SplitPaneInput{
		Root:      root,
		TargetID:  "pane1",
		Direction: entity.SplitVertical,
	})
	require.NoError(t, err)

	content := out.Root.FindNode(out.ContentPaneID)
	duplicate := out.Root.FindNode(out.DuplicatePaneID)

	duplicate.Tabs[0].VisitDocument("c.md")
	assert.Equal(t, entity.DocumentID("b.md"), content.Tabs[0].DocumentID)
	assert.Len(t, content.Tabs[0].History, 2)
}

func TestManagePanesUseCase_Split_Errors(t *testing.T) {
	ctx := testContext()
	uc := usecase.NewManagePanesUseCase(mockIDGenerator())

	root := leafWithTabs("pane1", "a.md")
	splitOut, err := uc.Split(ctx, usecase.SplitPaneInput{
		Root: root, TargetID: "pane1", Direction: entity.SplitVertical,
	})
	require.NoError(t, err)

	_, err = uc.Split(ctx, usecase.SplitPaneInput{
		Root: splitOut.Root, TargetID: "missing", Direction: entity.SplitVertical,
	})
	assert.ErrorIs(t, err, entity.ErrPaneNotFound)

	// pane1 is now a split node, not a leaf.
	_, err = uc.Split(ctx, usecase.SplitPaneInput{
		Root: splitOut.Root, TargetID: "pane1", Direction: entity.SplitVertical,
	})
	assert.ErrorIs(t, err, entity.ErrNotALeaf)
}

func TestManagePanesUseCase_Close_PromotesSibling(t *testing.T) {
	ctx := testContext()
	uc := usecase.NewManagePanesUseCase(mockIDGenerator())

	root := leafWithTabs("pane1", "a.md")
	splitOut, err := uc.Split(ctx, usecase.SplitPaneInput{
		Root: root, TargetID: "pane1", Direction: entity.SplitVertical,
	})
	require.NoError(t, err)

	closeOut, err := uc.Close(ctx, usecase.ClosePaneInput{
		Root:     splitOut.Root,
		TargetID: splitOut.DuplicatePaneID,
	})
	require.NoError(t, err)

	// The content pane takes the split's place as root.
	assert.Equal(t, splitOut.ContentPaneID, closeOut.Root.ID)
	assert.True(t, closeOut.Root.IsLeaf())
	assert.Equal(t, 1, closeOut.Root.LeafCount())
	require.NoError(t, entity.ValidateTree(closeOut.Root))
}

func TestManagePanesUseCase_Close_NestedSplitCollapse(t *testing.T) {
	ctx := testContext()
	uc := usecase.NewManagePanesUseCase(mockIDGenerator())

	// Build pane1 -> split into (A, B) -> split A into (A1, A2).
	root := leafWithTabs("pane1", "a.md")
	first, err := uc.Split(ctx, usecase.SplitPaneInput{
		Root: root, TargetID: "pane1", Direction: entity.SplitHorizontal,
	})
	require.NoError(t, err)
	second, err := uc.Split(ctx, usecase.SplitPaneInput{
		Root: first.Root, TargetID: first.ContentPaneID, Direction: entity.SplitVertical,
	})
	require.NoError(t, err)
	require.Equal(t, 3, second.Root.LeafCount())

	out, err := uc.Close(ctx, usecase.ClosePaneInput{
		Root:     second.Root,
		TargetID: second.ContentPaneID,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Root.LeafCount())
	// The inner split collapsed; its sibling leaf took its place.
	inner := out.Root.FindNode(first.ContentPaneID)
	require.NotNil(t, inner)
	assert.True(t, inner.IsLeaf())
	require.NoError(t, entity.ValidateTree(out.Root))
}

func TestManagePanesUseCase_Close_WholeSubtree(t *testing.T) {
	ctx := testContext()
	uc := usecase.NewManagePanesUseCase(mockIDGenerator())

	root := leafWithTabs("pane1", "a.md")
	first, err := uc.Split(ctx, usecase.SplitPaneInput{
		Root: root, TargetID: "pane1", Direction: entity.SplitHorizontal,
	})
	require.NoError(t, err)
	second, err := uc.Split(ctx, usecase.SplitPaneInput{
		Root: first.Root, TargetID: first.ContentPaneID, Direction: entity.SplitVertical,
	})
	require.NoError(t, err)

	// Closing the inner split removes both of its leaves at once.
	out, err := uc.Close(ctx, usecase.ClosePaneInput{
		Root:     second.Root,
		TargetID: first.ContentPaneID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Root.LeafCount())
	assert.Equal(t, first.DuplicatePaneID, out.Root.ID)
}

func TestManagePanesUseCase_Close_RootFails(t *testing.T) {
	ctx := testContext()
	uc := usecase.NewManagePanesUseCase(mockIDGenerator())

	root := leafWithTabs("pane1", "a.md")
	_, err := uc.Close(ctx, usecase.ClosePaneInput{Root: root, TargetID: "pane1"})
	assert.ErrorIs(t, err, entity.ErrLastPane)

	_, err = uc.Close(ctx, usecase.ClosePaneInput{Root: root, TargetID: "missing"})
	assert.ErrorIs(t, err, entity.ErrPaneNotFound)
}

func TestManagePanesUseCase_SetSplitRatio(t *testing.T) {
	ctx := testContext()
	uc := usecase.NewManagePanesUseCase(mockIDGenerator())

	root := leafWithTabs("pane1", "a.md")
	splitOut, err := uc.Split(ctx, usecase.SplitPaneInput{
		Root: root, TargetID: "pane1", Direction: entity.SplitVertical,
	})
	require.NoError(t, err)

	newRoot, err := uc.SetSplitRatio(ctx, splitOut.Root, "pane1", 0.7)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, newRoot.FindNode("pane1").SplitRatio, 0.001)
	// Old snapshot keeps the old ratio.
	assert.InDelta(t, entity.DefaultSplitRatio, splitOut.Root.FindNode("pane1").SplitRatio, 0.001)

	// Extremes are clamped so neither side collapses.
	clamped, err := uc.SetSplitRatio(ctx, splitOut.Root, "pane1", 0.001)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, clamped.FindNode("pane1").SplitRatio, 0.001)

	clamped, err = uc.SetSplitRatio(ctx, splitOut.Root, "pane1", 2.0)
	require.NoError(t, err)
	assert.InDelta(t, 0.95, clamped.FindNode("pane1").SplitRatio, 0.001)

	// Only split nodes carry a ratio.
	_, err = uc.SetSplitRatio(ctx, splitOut.Root, splitOut.ContentPaneID, 0.5)
	assert.ErrorIs(t, err, entity.ErrPaneNotFound)
}
