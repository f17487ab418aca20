// Package repository defines persistence contracts for domain entities.
// Implementations live under internal/infrastructure.
package repository

import (
	"context"

	"github.com/bnema/inkpad/internal/domain/entity"
)

// LayoutRepository persists the workspace layout snapshot. There is a
// single layout per profile, so the contract is save/load/delete of one
// state rather than a keyed collection.
type LayoutRepository interface {
	// SaveLayout stores the snapshot, replacing any previous one.
	SaveLayout(ctx context.Context, state *entity.LayoutState) error

	// LoadLayout returns the stored snapshot, or (nil, nil) when none exists.
	LoadLayout(ctx context.Context) (*entity.LayoutState, error)

	// DeleteLayout removes the stored snapshot.
	DeleteLayout(ctx context.Context) error
}
