package snapshot_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/inkpad/internal/application/usecase"
	"github.com/bnema/inkpad/internal/domain/entity"
	"github.com/bnema/inkpad/internal/infrastructure/snapshot"
	"github.com/bnema/inkpad/internal/logging"
)

type countingRepo struct {
	mu    sync.Mutex
	saved []*entity.LayoutState
}

func (r *countingRepo) SaveLayout(_ context.Context, state *entity.LayoutState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, state)
	return nil
}

func (r *countingRepo) LoadLayout(context.Context) (*entity.LayoutState, error) { return nil, nil }
func (r *countingRepo) DeleteLayout(context.Context) error                      { return nil }

func (r *countingRepo) snapshot() []*entity.LayoutState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.LayoutState(nil), r.saved...)
}

func testContext() context.Context {
	logger := logging.New(logging.DefaultConfig())
	return logging.WithContext(context.Background(), logger)
}

func stateWithPane(id entity.PaneID) *entity.LayoutState {
	return entity.SnapshotLayout(entity.NewLeaf(id), id)
}

func TestService_BurstCollapsesToSingleSave(t *testing.T) {
	ctx := testContext()
	repo := &countingRepo{}
	svc := snapshot.NewService(usecase.NewSnapshotLayoutUseCase(repo), 30)
	svc.Start(ctx)
	defer svc.Stop(ctx)

	for i := 0; i < 10; i++ {
		svc.Schedule(stateWithPane(entity.PaneID("pane-final")))
	}
	last := stateWithPane("pane-latest")
	svc.Schedule(last)

	require.Eventually(t, func() bool {
		return len(repo.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)

	// Give a late duplicate timer a chance to misfire before checking.
	time.Sleep(100 * time.Millisecond)
	saved := repo.snapshot()
	require.Len(t, saved, 1)
	assert.Equal(t, entity.PaneID("pane-latest"), saved[0].ActivePaneID)
}

func TestService_FlushWritesImmediately(t *testing.T) {
	ctx := testContext()
	repo := &countingRepo{}
	svc := snapshot.NewService(usecase.NewSnapshotLayoutUseCase(repo), 10_000)
	svc.Start(ctx)

	svc.Schedule(stateWithPane("pane1"))
	svc.Flush(ctx)

	saved := repo.snapshot()
	require.Len(t, saved, 1)
	assert.Equal(t, entity.PaneID("pane1"), saved[0].ActivePaneID)

	// Nothing pending anymore; a second flush is a no-op.
	svc.Flush(ctx)
	assert.Len(t, repo.snapshot(), 1)
}

func TestService_StopFlushesAndRejectsLaterWork(t *testing.T) {
	ctx := testContext()
	repo := &countingRepo{}
	svc := snapshot.NewService(usecase.NewSnapshotLayoutUseCase(repo), 10_000)
	svc.Start(ctx)

	svc.Schedule(stateWithPane("pane1"))
	svc.Stop(ctx)
	require.Len(t, repo.snapshot(), 1)

	svc.Schedule(stateWithPane("pane2"))
	svc.Flush(ctx)
	assert.Len(t, repo.snapshot(), 1)
}

func TestService_WritesFollowSchedulingOrder(t *testing.T) {
	ctx := testContext()
	repo := &countingRepo{}
	svc := snapshot.NewService(usecase.NewSnapshotLayoutUseCase(repo), 1)
	svc.Start(ctx)
	defer svc.Stop(ctx)

	// Interleave timer-driven saves with flushes; every persisted state
	// must be newer than the one written before it.
	for i := 0; i < 50; i++ {
		svc.Schedule(stateWithPane(entity.PaneID(fmt.Sprintf("pane-%03d", i))))
		if i%5 == 0 {
			svc.Flush(ctx)
		}
		time.Sleep(time.Millisecond)
	}
	svc.Flush(ctx)

	saved := repo.snapshot()
	require.NotEmpty(t, saved)
	for i := 1; i < len(saved); i++ {
		assert.Less(t, string(saved[i-1].ActivePaneID), string(saved[i].ActivePaneID),
			"write %d regressed behind write %d", i, i-1)
	}
	assert.Equal(t, entity.PaneID("pane-049"), saved[len(saved)-1].ActivePaneID)
}

func TestService_SetIntervalAppliesToNextSchedule(t *testing.T) {
	ctx := testContext()
	repo := &countingRepo{}
	svc := snapshot.NewService(usecase.NewSnapshotLayoutUseCase(repo), 10_000)
	svc.Start(ctx)
	defer svc.Stop(ctx)

	svc.SetInterval(10)
	svc.Schedule(stateWithPane("pane1"))

	require.Eventually(t, func() bool {
		return len(repo.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestService_DefaultInterval(t *testing.T) {
	svc := snapshot.NewService(usecase.NewSnapshotLayoutUseCase(&countingRepo{}), 0)
	require.NotNil(t, svc)
	assert.Equal(t, 300, snapshot.DefaultDebounceMs)
}
