package entity

// TabID uniquely identifies a tab across the whole workspace.
type TabID string

// DocumentID identifies a document opened in a tab. Document content is
// owned by an external provider; the workspace only tracks references.
type DocumentID string

// Tab represents an open document within a leaf pane, with its own
// navigation history. The invariant History[HistoryCursor] == DocumentID
// is maintained by every navigation-affecting mutation.
type Tab struct {
	ID            TabID
	DocumentID    DocumentID
	IsDirty       bool
	IsPinned      bool
	IsPreview     bool
	History       []DocumentID
	HistoryCursor int
}

// NewTab creates a tab showing the given document, with history seeded to it.
func NewTab(id TabID, doc DocumentID) *Tab {
	return &Tab{
		ID:         id,
		DocumentID: doc,
		History:    []DocumentID{doc},
	}
}

// Clone returns an independent copy of the tab, including its history.
func (t *Tab) Clone() *Tab {
	clone := *t
	clone.History = append([]DocumentID(nil), t.History...)
	return &clone
}

// CanGoBack reports whether the history cursor can move backward.
func (t *Tab) CanGoBack() bool {
	return t.HistoryCursor > 0
}

// CanGoForward reports whether the history cursor can move forward.
func (t *Tab) CanGoForward() bool {
	return t.HistoryCursor < len(t.History)-1
}

// VisitDocument records a navigation to a new document: everything after the
// cursor is truncated, the document is appended, and the cursor advances.
// Classic browser-history semantics. Callers mutate only freshly cloned tabs.
func (t *Tab) VisitDocument(doc DocumentID) {
	t.History = append(t.History[:t.HistoryCursor+1], doc)
	t.HistoryCursor = len(t.History) - 1
	t.DocumentID = doc
}

// GoBack moves the cursor one step back. Returns false at the start.
func (t *Tab) GoBack() bool {
	if !t.CanGoBack() {
		return false
	}
	t.HistoryCursor--
	t.DocumentID = t.History[t.HistoryCursor]
	return true
}

// GoForward moves the cursor one step forward. Returns false at the end.
func (t *Tab) GoForward() bool {
	if !t.CanGoForward() {
		return false
	}
	t.HistoryCursor++
	t.DocumentID = t.History[t.HistoryCursor]
	return true
}

// TabPatch is a partial update merged into a tab by UpdateTab. Nil fields
// are left untouched.
type TabPatch struct {
	DocumentID *DocumentID
	IsDirty    *bool
	IsPinned   *bool
	IsPreview  *bool
}

// Apply merges the patch into the tab. Patching DocumentID rewrites the
// current history entry in place (rename semantics, not a navigation) so the
// cursor invariant holds.
func (p TabPatch) Apply(t *Tab) {
	if p.DocumentID != nil {
		t.DocumentID = *p.DocumentID
		t.History[t.HistoryCursor] = *p.DocumentID
	}
	if p.IsDirty != nil {
		t.IsDirty = *p.IsDirty
	}
	if p.IsPinned != nil {
		t.IsPinned = *p.IsPinned
	}
	if p.IsPreview != nil {
		t.IsPreview = *p.IsPreview
	}
}
