// Package monitor watches the published coordination database for changes,
// runs each change through the band plan, and publishes a change report.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/pnwcoord/repeater-qa/internal/bandplan"
	"github.com/pnwcoord/repeater-qa/internal/delta"
	"github.com/pnwcoord/repeater-qa/internal/domain"
	"github.com/pnwcoord/repeater-qa/internal/observability"
)

// Fetcher retrieves the latest coordination extract.
type Fetcher interface {
	Fetch(ctx context.Context) ([]domain.Channel, error)
}

// Publisher delivers the changes found in one cycle.
type Publisher interface {
	Publish(ctx context.Context, changes []delta.Change, observedAt time.Time) error
}

// Status is a point-in-time summary of the monitor, served on /statusz.
type Status struct {
	Channels      int       `json:"channels"`
	LastFetch     time.Time `json:"last_fetch"`
	LastChangedAt time.Time `json:"last_changed_at,omitempty"`
	CycleErrors   int       `json:"cycle_errors"`
}

// Monitor orchestrates the fetch-diff-validate-publish loop.
type Monitor struct {
	fetcher    Fetcher
	publisher  Publisher
	validator  *bandplan.Validator
	enumerator *bandplan.Enumerator
	logger     *slog.Logger
	metrics    *observability.Metrics
	clock      clockwork.Clock
	interval   time.Duration

	ready atomic.Bool

	mu           sync.Mutex
	baseline     []domain.Channel
	haveBaseline bool
	status       Status
}

// New creates a Monitor with the given collaborators.
func New(f Fetcher, p Publisher, v *bandplan.Validator, e *bandplan.Enumerator,
	logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock,
	interval time.Duration) *Monitor {
	return &Monitor{
		fetcher:    f,
		publisher:  p,
		validator:  v,
		enumerator: e,
		logger:     logger,
		metrics:    metrics,
		clock:      clock,
		interval:   interval,
	}
}

// CheckReadiness returns nil once a full extract snapshot has been recorded.
func (m *Monitor) CheckReadiness(_ context.Context) error {
	if !m.ready.Load() {
		return errors.New("no extract snapshot recorded yet")
	}
	return nil
}

// Status returns the latest cycle summary.
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Run executes the monitor loop until the context is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("monitor started", "interval", m.interval)
	m.metrics.MonitorRunning.Set(1)
	defer m.metrics.MonitorRunning.Set(0)

	// Exponential backoff on cycle failures: start at 30s, double each
	// retry, cap at the fetch interval.
	backoff := 30 * time.Second
	if backoff > m.interval {
		backoff = m.interval
	}
	wait := backoff

	for {
		if err := m.cycle(ctx); err != nil {
			if ctx.Err() != nil {
				m.logger.Info("monitor stopping", "reason", ctx.Err())
				return nil
			}
			m.logger.Error("cycle failed", "error", err)
			m.recordCycleError()
			if !m.sleep(ctx, wait) {
				return nil
			}
			wait = nextBackoff(wait, m.interval)
			continue
		}
		wait = backoff
		if !m.sleep(ctx, m.interval) {
			return nil
		}
	}
}

// cycle runs one fetch-diff-validate-publish pass. The first successful
// fetch only seeds the baseline: notifying every existing coordination on
// startup would be noise, not news.
func (m *Monitor) cycle(ctx context.Context) error {
	start := m.clock.Now()
	latest, err := m.fetcher.Fetch(ctx)
	if err != nil {
		m.metrics.FetchErrors.Inc()
		return fmt.Errorf("fetch extract: %w", err)
	}
	m.metrics.FetchDuration.Observe(m.clock.Since(start).Seconds())
	m.metrics.ChannelsParsed.Set(float64(len(latest)))
	m.metrics.AvailablePairs.Set(float64(len(m.enumerator.Available(latest))))

	m.mu.Lock()
	baseline, seeded := m.baseline, m.haveBaseline
	m.mu.Unlock()

	if !seeded {
		m.logger.Info("baseline snapshot recorded", "channels", len(latest))
		m.commit(latest, false)
		return nil
	}

	report := delta.Diff(baseline, latest)
	if report.Changed() {
		changes := m.describe(report)
		if err := m.publisher.Publish(ctx, changes, m.clock.Now()); err != nil {
			// Baseline stays put so the same diff is retried next cycle.
			m.metrics.NotifyErrors.Inc()
			return fmt.Errorf("publish changes: %w", err)
		}
		m.metrics.ChannelsAdded.Add(float64(len(report.Added)))
		m.metrics.ChannelsRemoved.Add(float64(len(report.Removed)))
		m.logger.Info("changes published",
			"added", len(report.Added), "removed", len(report.Removed))
	}

	m.commit(latest, report.Changed())
	return nil
}

// describe turns a diff report into publishable changes, running each
// addition through the band plan.
func (m *Monitor) describe(report delta.Report) []delta.Change {
	changes := make([]delta.Change, 0, len(report.Added)+len(report.Removed))
	for _, ch := range report.Added {
		verdict := m.validator.Check(ch)
		switch {
		case verdict.Known:
			m.metrics.KnownExceptions.Inc()
		case !verdict.OK:
			m.metrics.ValidationErrors.Inc()
		}
		changes = append(changes, delta.Change{
			Action:   delta.ActionAdded,
			Channel:  ch,
			Comments: verdict.Comments,
		})
	}
	for _, ch := range report.Removed {
		changes = append(changes, delta.Change{
			Action:  delta.ActionRemoved,
			Channel: ch,
		})
	}
	return changes
}

func (m *Monitor) commit(latest []domain.Channel, changed bool) {
	now := m.clock.Now()
	m.mu.Lock()
	m.baseline = latest
	m.haveBaseline = true
	m.status.Channels = len(latest)
	m.status.LastFetch = now
	if changed {
		m.status.LastChangedAt = now
	}
	m.mu.Unlock()
	m.ready.Store(true)
}

func (m *Monitor) recordCycleError() {
	m.mu.Lock()
	m.status.CycleErrors++
	m.mu.Unlock()
}

func (m *Monitor) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-m.clock.After(d):
		return true
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}
