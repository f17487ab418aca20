package entity

import "testing"

func TestTab_VisitDocument_TruncatesForwardHistory(t *testing.T) {
	tab := NewTab("tab1", "a.md")
	tab.VisitDocument("b.md")
	tab.VisitDocument("c.md")

	if !tab.GoBack() {
		t.Fatal("expected GoBack to succeed")
	}
	if tab.DocumentID != "b.md" {
		t.Fatalf("expected b.md after back, got %s", tab.DocumentID)
	}

	// Navigating from the middle of history drops the forward entries.
	tab.VisitDocument("d.md")

	want := []DocumentID{"a.md", "b.md", "d.md"}
	if len(tab.History) != len(want) {
		t.Fatalf("expected history %v, got %v", want, tab.History)
	}
	for i, doc := range want {
		if tab.History[i] != doc {
			t.Fatalf("expected history %v, got %v", want, tab.History)
		}
	}
	if tab.HistoryCursor != 2 {
		t.Fatalf("expected cursor 2, got %d", tab.HistoryCursor)
	}
	if tab.DocumentID != "d.md" {
		t.Fatalf("expected d.md, got %s", tab.DocumentID)
	}
}

func TestTab_VisitDocument_MaintainsCursorInvariant(t *testing.T) {
	tab := NewTab("tab1", "a.md")
	docs := []DocumentID{"b.md", "c.md", "d.md"}
	for _, doc := range docs {
		tab.VisitDocument(doc)
		if tab.History[tab.HistoryCursor] != tab.DocumentID {
			t.Fatalf("cursor invariant broken after visiting %s", doc)
		}
	}
}

func TestTab_GoBack_AtStartIsNoOp(t *testing.T) {
	tab := NewTab("tab1", "a.md")

	if tab.GoBack() {
		t.Fatal("expected GoBack to fail at start of history")
	}
	if tab.DocumentID != "a.md" || tab.HistoryCursor != 0 {
		t.Fatalf("no-op GoBack changed state: doc=%s cursor=%d", tab.DocumentID, tab.HistoryCursor)
	}
}

func TestTab_GoForward_AtEndIsNoOp(t *testing.T) {
	tab := NewTab("tab1", "a.md")
	tab.VisitDocument("b.md")

	if tab.GoForward() {
		t.Fatal("expected GoForward to fail at end of history")
	}
	if tab.DocumentID != "b.md" {
		t.Fatalf("no-op GoForward changed state: doc=%s", tab.DocumentID)
	}
}

func TestTab_BackForwardRoundTrip(t *testing.T) {
	tab := NewTab("tab1", "a.md")
	tab.VisitDocument("b.md")
	tab.VisitDocument("c.md")

	tab.GoBack()
	tab.GoBack()
	if tab.DocumentID != "a.md" {
		t.Fatalf("expected a.md, got %s", tab.DocumentID)
	}
	if tab.CanGoBack() {
		t.Fatal("expected CanGoBack false at start")
	}

	tab.GoForward()
	tab.GoForward()
	if tab.DocumentID != "c.md" {
		t.Fatalf("expected c.md, got %s", tab.DocumentID)
	}
	if tab.CanGoForward() {
		t.Fatal("expected CanGoForward false at end")
	}

	// Moving through history never loses entries.
	if len(tab.History) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(tab.History))
	}
}

func TestTab_Clone_IsIndependent(t *testing.T) {
	tab := NewTab("tab1", "a.md")
	tab.VisitDocument("b.md")

	clone := tab.Clone()
	clone.VisitDocument("c.md")

	if tab.DocumentID != "b.md" {
		t.Fatalf("clone mutation leaked into original: doc=%s", tab.DocumentID)
	}
	if len(tab.History) != 2 {
		t.Fatalf("clone mutation leaked into original history: %v", tab.History)
	}
	if clone.DocumentID != "c.md" || len(clone.History) != 3 {
		t.Fatalf("clone state wrong: doc=%s history=%v", clone.DocumentID, clone.History)
	}
}

func TestTabPatch_Apply(t *testing.T) {
	boolPtr := func(b bool) *bool { return &b }
	docPtr := func(d DocumentID) *DocumentID { return &d }

	tests := []struct {
		name  string
		patch TabPatch
		check func(t *testing.T, tab *Tab)
	}{
		{
			name:  "empty patch changes nothing",
			patch: TabPatch{},
			check: func(t *testing.T, tab *Tab) {
				if tab.DocumentID != "b.md" || tab.IsDirty || tab.IsPinned {
					t.Fatalf("empty patch changed tab: %+v", tab)
				}
			},
		},
		{
			name:  "document patch rewrites current history entry",
			patch: TabPatch{DocumentID: docPtr("renamed.md")},
			check: func(t *testing.T, tab *Tab) {
				if tab.DocumentID != "renamed.md" {
					t.Fatalf("expected renamed.md, got %s", tab.DocumentID)
				}
				if tab.History[tab.HistoryCursor] != "renamed.md" {
					t.Fatalf("history entry not rewritten: %v", tab.History)
				}
				if len(tab.History) != 2 {
					t.Fatalf("rename must not grow history: %v", tab.History)
				}
			},
		},
		{
			name:  "flag patches",
			patch: TabPatch{IsDirty: boolPtr(true), IsPinned: boolPtr(true), IsPreview: boolPtr(true)},
			check: func(t *testing.T, tab *Tab) {
				if !tab.IsDirty || !tab.IsPinned || !tab.IsPreview {
					t.Fatalf("flags not applied: %+v", tab)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab := NewTab("tab1", "a.md")
			tab.VisitDocument("b.md")
			tt.patch.Apply(tab)
			tt.check(t, tab)
		})
	}
}
