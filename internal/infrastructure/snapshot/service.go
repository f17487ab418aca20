// Package snapshot provides debounced persistence of workspace layout
// snapshots. Rapid mutation bursts collapse into a single write of the
// latest state.
package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/inkpad/internal/application/usecase"
	"github.com/bnema/inkpad/internal/domain/entity"
	"github.com/bnema/inkpad/internal/logging"
)

// DefaultDebounceMs is the save delay applied when no interval is configured.
const DefaultDebounceMs = 300

// Service debounces layout saves. Each Schedule call cancels the previous
// pending save and re-arms the timer with the new state, so only the most
// recent snapshot within a burst reaches storage. Writes are serialized:
// a save triggered later can never be overwritten by one triggered earlier.
type Service struct {
	snapshotUC *usecase.SnapshotLayoutUseCase

	mu         sync.Mutex
	interval   time.Duration
	timer      *time.Timer
	pending    *entity.LayoutState
	pendingSeq uint64
	seq        uint64

	// saveMu serializes the actual writes; lastSavedSeq orders them, so a
	// drained payload that is slow to reach the write cannot land after a
	// newer one.
	saveMu       sync.Mutex
	lastSavedSeq uint64

	ctx    context.Context
	cancel context.CancelFunc
}

// NewService creates a debounced save service. intervalMs <= 0 selects
// DefaultDebounceMs.
func NewService(snapshotUC *usecase.SnapshotLayoutUseCase, intervalMs int) *Service {
	if intervalMs <= 0 {
		intervalMs = DefaultDebounceMs
	}
	return &Service{
		snapshotUC: snapshotUC,
		interval:   time.Duration(intervalMs) * time.Millisecond,
	}
}

// Start binds the service to a lifecycle context. Saves scheduled after the
// context is cancelled are dropped.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx, s.cancel = context.WithCancel(logging.WithComponent(ctx, "snapshot"))
}

// Schedule replaces any pending save with the given state and re-arms the
// debounce timer. Never blocks.
func (s *Service) Schedule(state *entity.LayoutState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx != nil && s.ctx.Err() != nil {
		return
	}

	if s.timer != nil {
		s.timer.Stop()
	}
	s.seq++
	s.pending = state
	s.pendingSeq = s.seq
	s.timer = time.AfterFunc(s.interval, s.fire)
}

// fire drains the pending state and writes it. A failed save is logged and
// dropped; the next scheduled save supersedes it.
func (s *Service) fire() {
	s.mu.Lock()
	state := s.pending
	seq := s.pendingSeq
	s.pending = nil
	ctx := s.ctx
	s.mu.Unlock()

	if state == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s.save(ctx, state, seq)
}

// save writes one drained payload. Payloads carry the sequence assigned at
// Schedule time; anything at or below the last written sequence is stale
// and skipped, keeping writes in scheduling order even when the goroutine
// carrying an older payload reaches saveMu late.
func (s *Service) save(ctx context.Context, state *entity.LayoutState, seq uint64) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if seq <= s.lastSavedSeq {
		return
	}
	s.lastSavedSeq = seq

	if ctx.Err() != nil {
		return
	}

	if err := s.snapshotUC.Execute(ctx, usecase.SnapshotInput{State: state}); err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("debounced layout save failed")
	}
}

// Flush writes any pending snapshot immediately, bypassing the debounce
// timer. Used on shutdown so the last mutations are not lost.
func (s *Service) Flush(ctx context.Context) {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	state := s.pending
	seq := s.pendingSeq
	s.pending = nil
	s.mu.Unlock()

	if state == nil {
		return
	}
	s.save(ctx, state, seq)
}

// Stop flushes pending work and cancels the service. Subsequent Schedule
// calls are ignored.
func (s *Service) Stop(ctx context.Context) {
	s.Flush(ctx)

	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// SetInterval changes the debounce delay for future Schedule calls. An
// already armed timer keeps its original deadline.
func (s *Service) SetInterval(intervalMs int) {
	if intervalMs <= 0 {
		intervalMs = DefaultDebounceMs
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interval = time.Duration(intervalMs) * time.Millisecond
}
