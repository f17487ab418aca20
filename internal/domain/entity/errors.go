package entity

import "errors"

// Structural errors are always recoverable: they are returned to the caller
// and never corrupt the current snapshot (a failed operation commits nothing).
var (
	// ErrPaneNotFound is returned when a pane id is absent from the tree.
	ErrPaneNotFound = errors.New("pane not found")

	// ErrNotALeaf is returned when an operation requiring a leaf targets a split.
	ErrNotALeaf = errors.New("pane is not a leaf")

	// ErrLastPane is returned when closing would remove the only pane.
	ErrLastPane = errors.New("cannot close the last pane")

	// ErrTabNotFound is returned when a tab id is absent from the target pane.
	ErrTabNotFound = errors.New("tab not found")

	// ErrInvalidPermutation is returned when a reorder request is not a
	// permutation of the pane's current tab ids.
	ErrInvalidPermutation = errors.New("tab order is not a permutation of existing tabs")

	// ErrPinnedBoundary is returned when a reorder would move a pinned tab
	// across the pinned/unpinned boundary.
	ErrPinnedBoundary = errors.New("pinned tabs must stay before unpinned tabs")
)
