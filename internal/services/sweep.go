package services

import (
	"context"
	"fmt"
	"log/slog"

	"tally/internal/core"
	"tally/internal/ledger"
	"tally/internal/metrics"
	"tally/internal/notify"
)

// Sweeper materializes recurring expenses. One sweep runs per process start;
// it is not a background timer.
type Sweeper struct {
	notifier notify.Notifier
}

// NewSweeper creates a sweeper. A nil notifier disables due-today alerts.
func NewSweeper(notifier notify.Notifier) *Sweeper {
	return &Sweeper{notifier: notifier}
}

// Run walks a fixed snapshot of the ledger and, for every recurring expense
// whose next due date has arrived, appends one concrete occurrence and
// advances the source's schedule pointer by one frequency step. Because the
// snapshot is taken before any append, records created during the sweep are
// never re-evaluated, so each source yields at most one occurrence per sweep
// even if several periods have elapsed since the last run. Returns the
// number of occurrences created.
func (s *Sweeper) Run(ctx context.Context, l *ledger.Ledger, today core.Date) (int, error) {
	if l == nil {
		return 0, fmt.Errorf("sweeper needs a ledger")
	}

	snapshot := l.Snapshot()

	slog.InfoContext(ctx, "Running recurrence sweep",
		"ledger_size", len(snapshot),
		"today", today.String())

	created := 0
	for _, src := range snapshot {
		if !src.Recurring || src.NextDate.IsZero() {
			continue
		}
		if src.NextDate.After(today) {
			continue
		}

		dueDate := src.NextDate
		advanced := core.NextOccurrence(dueDate, src.Frequency)

		clone := src
		clone.Date = dueDate
		clone.NextDate = advanced
		clone = l.Append(clone)

		src.NextDate = advanced
		if !l.Update(src) {
			// Source was deleted mid-sweep; the occurrence stands.
			slog.WarnContext(ctx, "Recurring source vanished during sweep", "id", src.ID)
		}

		created++
		metrics.SweepOccurrencesCreated.Inc()
		slog.InfoContext(ctx, "Materialized recurring expense",
			"source_id", src.ID,
			"occurrence_id", clone.ID,
			"name", clone.Name,
			"due", dueDate.String(),
			"next_due", advanced.String())

		if dueDate.Equal(today) {
			s.notifyDueToday(ctx, clone)
		}
	}

	slog.InfoContext(ctx, "Recurrence sweep complete",
		"created", created,
		"checked", len(snapshot))

	return created, nil
}

func (s *Sweeper) notifyDueToday(ctx context.Context, e core.Expense) {
	if s.notifier == nil {
		return
	}

	n := notify.New(
		"Recurring expense due today",
		fmt.Sprintf("%s: %s", e.Name, e.Amount),
	)
	if err := s.notifier.Publish(ctx, n); err != nil {
		// Best-effort: a failed alert never fails the sweep.
		slog.ErrorContext(ctx, "Failed to publish due-today notification",
			"id", e.ID,
			"name", e.Name,
			"error", err)
		return
	}
	metrics.NotificationsPublished.Inc()
}
