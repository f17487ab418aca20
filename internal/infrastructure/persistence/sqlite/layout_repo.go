package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/inkpad/internal/domain/entity"
	"github.com/bnema/inkpad/internal/domain/repository"
	"github.com/bnema/inkpad/internal/logging"
)

// The table holds exactly one row; each save replaces the previous layout
// (last write wins).
const layoutRowID = 1

type layoutRepo struct {
	db *sql.DB
}

// NewLayoutRepository creates a SQLite-backed layout repository.
func NewLayoutRepository(db *sql.DB) repository.LayoutRepository {
	return &layoutRepo{db: db}
}

// SaveLayout saves or replaces the workspace layout snapshot.
func (r *layoutRepo) SaveLayout(ctx context.Context, state *entity.LayoutState) error {
	log := logging.FromContext(ctx)
	if state == nil {
		return errors.New("layout state cannot be nil")
	}

	stateJSON, err := json.Marshal(state)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal layout state")
		return err
	}

	log.Debug().
		Int("pane_count", state.CountPanes()).
		Int("tab_count", state.CountTabs()).
		Msg("saving layout snapshot")

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO workspace_layout (id, state_json, version, pane_count, tab_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			state_json = excluded.state_json,
			version = excluded.version,
			pane_count = excluded.pane_count,
			tab_count = excluded.tab_count,
			updated_at = excluded.updated_at`,
		layoutRowID,
		string(stateJSON),
		state.Version,
		state.CountPanes(),
		state.CountTabs(),
		state.SavedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert layout snapshot: %w", err)
	}

	return nil
}

// LoadLayout returns the persisted layout snapshot, or (nil, nil) when none
// has been saved yet.
func (r *layoutRepo) LoadLayout(ctx context.Context) (*entity.LayoutState, error) {
	var stateJSON string
	err := r.db.QueryRowContext(ctx,
		"SELECT state_json FROM workspace_layout WHERE id = ?", layoutRowID,
	).Scan(&stateJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query layout snapshot: %w", err)
	}

	var state entity.LayoutState
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("failed to unmarshal layout state")
		return nil, err
	}

	return &state, nil
}

// DeleteLayout removes the persisted layout snapshot.
func (r *layoutRepo) DeleteLayout(ctx context.Context) error {
	logging.FromContext(ctx).Debug().Msg("deleting layout snapshot")
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM workspace_layout WHERE id = ?", layoutRowID)
	if err != nil {
		return fmt.Errorf("delete layout snapshot: %w", err)
	}
	return nil
}
