package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/inkpad/internal/domain/entity"
	"github.com/bnema/inkpad/internal/domain/repository"
	"github.com/bnema/inkpad/internal/logging"
)

// ErrNoSavedLayout is returned when no layout snapshot has been persisted.
var ErrNoSavedLayout = errors.New("no saved layout")

// ErrVersionMismatch is returned when the persisted layout was written by a
// newer schema version.
var ErrVersionMismatch = errors.New("layout state version mismatch")

// RestoreLayoutUseCase handles loading and validating a persisted layout.
// Callers fall back to a default single-leaf workspace on any error; a
// failed restore is a recoverable warning, never fatal.
type RestoreLayoutUseCase struct {
	layoutRepo repository.LayoutRepository
}

// NewRestoreLayoutUseCase creates a new RestoreLayoutUseCase.
func NewRestoreLayoutUseCase(layoutRepo repository.LayoutRepository) *RestoreLayoutUseCase {
	return &RestoreLayoutUseCase{layoutRepo: layoutRepo}
}

// RestoreOutput contains the restored tree and active pane.
type RestoreOutput struct {
	Root         *entity.PaneNode
	ActivePaneID entity.PaneID
}

// Execute loads the persisted layout, checks its schema version, and
// rebuilds the tree with ids preserved.
func (uc *RestoreLayoutUseCase) Execute(ctx context.Context) (*RestoreOutput, error) {
	log := logging.FromContext(ctx)

	state, err := uc.layoutRepo.LoadLayout(ctx)
	if err != nil {
		return nil, fmt.Errorf("load layout snapshot: %w", err)
	}
	if state == nil {
		return nil, ErrNoSavedLayout
	}

	if state.Version > entity.LayoutStateVersion {
		log.Warn().
			Int("state_version", state.Version).
			Int("current_version", entity.LayoutStateVersion).
			Msg("layout state version is newer than current version")
		return nil, ErrVersionMismatch
	}

	root, activePaneID, err := state.RestoreTree()
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("pane_count", root.LeafCount()).
		Str("active_pane_id", string(activePaneID)).
		Msg("layout restored")

	return &RestoreOutput{Root: root, ActivePaneID: activePaneID}, nil
}
