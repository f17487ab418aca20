package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/inkpad/internal/domain/entity"
	"github.com/bnema/inkpad/internal/domain/repository"
	"github.com/bnema/inkpad/internal/logging"
)

// SnapshotLayoutUseCase handles saving workspace layout snapshots.
type SnapshotLayoutUseCase struct {
	layoutRepo repository.LayoutRepository
}

// NewSnapshotLayoutUseCase creates a new SnapshotLayoutUseCase.
func NewSnapshotLayoutUseCase(layoutRepo repository.LayoutRepository) *SnapshotLayoutUseCase {
	return &SnapshotLayoutUseCase{layoutRepo: layoutRepo}
}

// SnapshotInput contains the parameters for persisting a layout.
type SnapshotInput struct {
	State *entity.LayoutState
}

// Execute saves the layout snapshot.
func (uc *SnapshotLayoutUseCase) Execute(ctx context.Context, input SnapshotInput) error {
	log := logging.FromContext(ctx)

	if input.State == nil {
		return fmt.Errorf("layout state is required")
	}

	log.Debug().
		Int("pane_count", input.State.CountPanes()).
		Int("tab_count", input.State.CountTabs()).
		Msg("saving layout snapshot")

	if err := uc.layoutRepo.SaveLayout(ctx, input.State); err != nil {
		return fmt.Errorf("save layout snapshot: %w", err)
	}

	return nil
}
