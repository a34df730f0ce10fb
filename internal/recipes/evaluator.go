package recipes

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/larder/pkg/models"
)

// Evaluator owns the published recipe list for the interactive session.
// Criteria updates are coalesced: each update resets the pending timer, and
// only the latest criteria run once the delay elapses without further input.
// The published list is replaced wholesale when a pass completes, so readers
// never observe a partial result.
type Evaluator struct {
	engine *Engine
	delay  time.Duration
	logger *zap.Logger

	mu        sync.Mutex
	timer     *time.Timer
	criteria  FilterCriteria
	published []models.Recipe
	stopped   bool
}

func NewEvaluator(engine *Engine, delay time.Duration, logger *zap.Logger) *Evaluator {
	ev := &Evaluator{
		engine: engine,
		delay:  delay,
		logger: logger,
	}
	// Publish the unfiltered list immediately so the session never starts
	// empty.
	ev.published = engine.Evaluate(FilterCriteria{})
	return ev
}

// Update stores the new criteria and schedules an evaluation pass after the
// debounce delay, discarding any pass still pending.
func (ev *Evaluator) Update(c FilterCriteria) {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	if ev.stopped {
		return
	}
	ev.criteria = c
	if ev.timer != nil {
		ev.timer.Stop()
	}
	ev.timer = time.AfterFunc(ev.delay, ev.runPass)
}

func (ev *Evaluator) runPass() {
	ev.mu.Lock()
	criteria := ev.criteria
	ev.mu.Unlock()

	start := time.Now()
	result := ev.engine.Evaluate(criteria)

	ev.mu.Lock()
	if !ev.stopped {
		ev.published = result
	}
	ev.mu.Unlock()

	ev.logger.Debug("filter pass complete",
		zap.Int("matched", len(result)),
		zap.Duration("took", time.Since(start)))
}

// Criteria returns the most recently stored criteria, whether or not the
// pass for them has run yet.
func (ev *Evaluator) Criteria() FilterCriteria {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	return ev.criteria
}

// Current returns the last published list.
func (ev *Evaluator) Current() []models.Recipe {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	out := make([]models.Recipe, len(ev.published))
	copy(out, ev.published)
	return out
}

// Stop cancels any pending pass. The last published list stays readable.
func (ev *Evaluator) Stop() {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	ev.stopped = true
	if ev.timer != nil {
		ev.timer.Stop()
		ev.timer = nil
	}
}
