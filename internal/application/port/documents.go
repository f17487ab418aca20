// Package port declares boundaries the application layer depends on.
// Concrete adapters live under internal/infrastructure.
package port

import (
	"context"

	"github.com/bnema/inkpad/internal/domain/entity"
)

// DocumentProvider resolves display metadata for documents referenced by
// tabs. The workspace engine never reads or writes document content; it
// only asks for a tab's label and whether the document still exists.
type DocumentProvider interface {
	// Title returns the display title for a document and whether the
	// document exists.
	Title(ctx context.Context, id entity.DocumentID) (string, bool)
}

// DocumentProviderFunc adapts a function to the DocumentProvider interface.
type DocumentProviderFunc func(ctx context.Context, id entity.DocumentID) (string, bool)

// Title implements DocumentProvider.
func (f DocumentProviderFunc) Title(ctx context.Context, id entity.DocumentID) (string, bool) {
	return f(ctx, id)
}
