package reminder

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// State is the scheduler's current phase.
type State int

const (
	StateWaiting State = iota
	StateRunning
	StateBackingOff
	StateStopped
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateRunning:
		return "running"
	case StateBackingOff:
		return "backing_off"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// Scanner runs one reminder cycle. *Engine satisfies it.
type Scanner interface {
	ScanAndNotify(ctx context.Context) (*CycleResult, error)
}

// Purger removes notifications older than a cutoff. *SQLiteStore
// satisfies it through the Store interface.
type Purger interface {
	PurgeNotificationsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// SchedulerConfig controls cycle cadence and retention.
type SchedulerConfig struct {
	// ScanInterval is the wait between successful cycles.
	// Defaults to 24 hours.
	ScanInterval time.Duration

	// RetryInterval is the shortened wait after a failed cycle.
	// Defaults to 1 hour.
	RetryInterval time.Duration

	// RetentionDays is how long notification rows are kept. 0
	// disables purging.
	RetentionDays int

	// Purger is consulted before each scheduled cycle when
	// RetentionDays is set.
	Purger Purger

	// Logger receives cycle logs. Defaults to slog.Default.
	Logger *slog.Logger

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Scheduler drives the reminder engine on a fixed cadence, isolating
// failures per cycle and retrying after a shorter interval on error.
// There is exactly one instance per process, owned by the serve
// command.
type Scheduler struct {
	scanner Scanner
	cfg     SchedulerConfig

	mu        sync.Mutex
	state     State
	lastCycle *CycleResult
}

// NewScheduler creates a scheduler over the given scanner.
func NewScheduler(scanner Scanner, cfg SchedulerConfig) *Scheduler {
	if cfg.ScanInterval <= 0 {
		cfg.ScanInterval = 24 * time.Hour
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = time.Hour
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Scheduler{scanner: scanner, cfg: cfg, state: StateWaiting}
}

// Run executes the scheduling loop until ctx is cancelled. The first
// cycle runs immediately. Each reminder is independently committed, so
// cancellation mid-scan never leaves a partial notification/email
// pair; the scan in flight finishes its current task and stops.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		s.purgeExpired(ctx)

		delay := s.cfg.ScanInterval
		if err := s.runCycle(ctx); err != nil {
			if ctx.Err() != nil {
				s.setState(StateStopped)
				return
			}
			s.cfg.Logger.Error("reminder cycle failed", "error", err,
				"retry_in", s.cfg.RetryInterval)
			s.setState(StateBackingOff)
			delay = s.cfg.RetryInterval
		} else {
			s.setState(StateWaiting)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.setState(StateStopped)
			return
		case <-timer.C:
		}
	}
}

// runCycle executes one scan and records its result.
func (s *Scheduler) runCycle(ctx context.Context) error {
	s.setState(StateRunning)

	cycle, err := s.scanner.ScanAndNotify(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.lastCycle = cycle
	s.mu.Unlock()

	s.cfg.Logger.Info("reminder cycle complete",
		"sent", cycle.Count(OutcomeSent),
		"skipped_no_email", cycle.Count(OutcomeSkippedNoEmail),
		"skipped_duplicate", cycle.Count(OutcomeSkippedDuplicate),
		"failed", cycle.Count(OutcomeFailed),
	)
	return nil
}

// purgeExpired removes notifications older than the retention window.
// Failures are logged and never block the cycle.
func (s *Scheduler) purgeExpired(ctx context.Context) {
	if s.cfg.RetentionDays <= 0 || s.cfg.Purger == nil {
		return
	}

	cutoff := s.cfg.Now().AddDate(0, 0, -s.cfg.RetentionDays)
	purged, err := s.cfg.Purger.PurgeNotificationsBefore(ctx, cutoff)
	if err != nil {
		s.cfg.Logger.Error("notification purge failed", "error", err)
		return
	}
	if purged > 0 {
		s.cfg.Logger.Info("purged expired notifications", "count", purged)
	}
}

// State returns the scheduler's current phase.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastCycle returns the most recent completed cycle result, or nil.
func (s *Scheduler) LastCycle() *CycleResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCycle
}

func (s *Scheduler) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
