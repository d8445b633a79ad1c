package safety

import (
	"context"
	"fmt"
	"time"

	"vesper/internal/config"
	"vesper/internal/queue"
)

const (
	// HumanApprovalThreshold is the number of lifetime published posts below
	// which every post must be approved by hand before any auto-approval
	// workflow may be layered on top.
	HumanApprovalThreshold = 10

	// MaxConsecutiveFailures pauses all publishing once this many of the most
	// recent queue updates are failures.
	MaxConsecutiveFailures = 3
)

// Gate is the read-only predicate layer deciding whether any publish may
// proceed right now. It holds no state of its own: every check re-reads the
// queue store, so approvals or failures written by other processes between
// two runs are always observed.
type Gate struct {
	store    *queue.Store
	minHours float64
	now      func() time.Time
}

// NewGate builds a gate over the queue store using the configured minimum
// posting interval. A nil clock defaults to time.Now.
func NewGate(store *queue.Store, cfg *config.Config, now func() time.Time) *Gate {
	minHours := float64(4)
	if cfg != nil {
		minHours = cfg.Publishing.MinHoursBetweenPosts
	}
	if now == nil {
		now = time.Now
	}
	return &Gate{store: store, minHours: minHours, now: now}
}

// CanPublish runs all safety checks. Returns (false, reason) when publishing
// is blocked; the reason is a human-readable explanation, never an error.
func (g *Gate) CanPublish(ctx context.Context) (bool, string, error) {
	streakOK, err := g.consecutiveFailuresOK(ctx)
	if err != nil {
		return false, "", err
	}
	if !streakOK {
		return false, fmt.Sprintf(
			"paused: %d consecutive failures; review errors before continuing",
			MaxConsecutiveFailures,
		), nil
	}

	intervalOK, err := g.MinIntervalMet(ctx)
	if err != nil {
		return false, "", err
	}
	if !intervalOK {
		return false, fmt.Sprintf("too soon: must wait %gh between posts", g.minHours), nil
	}

	return true, "OK", nil
}

// MinIntervalMet reports whether enough time has passed since the most recent
// published post. The first-ever publish always passes. The processor
// re-evaluates this check before every item in a batch, because a publish
// earlier in the same batch moves the cutoff forward.
func (g *Gate) MinIntervalMet(ctx context.Context) (bool, error) {
	last, err := g.store.LastPublishedAt(ctx)
	if err != nil {
		return false, err
	}
	if last == nil {
		return true, nil
	}
	cutoff := last.Add(time.Duration(g.minHours * float64(time.Hour)))
	return !g.now().Before(cutoff), nil
}

// NeedsHumanApproval reports whether the account is still inside the manual
// trust-building window. Advisory only; it never blocks the processor.
func (g *Gate) NeedsHumanApproval(ctx context.Context) (bool, error) {
	count, err := g.store.PublishedCount(ctx)
	if err != nil {
		return false, err
	}
	return count < HumanApprovalThreshold, nil
}

// consecutiveFailuresOK is checked once per batch, not per item: a publish
// within a batch changes the interval state but not the failure streak.
func (g *Gate) consecutiveFailuresOK(ctx context.Context) (bool, error) {
	statuses, err := g.store.RecentStatuses(ctx, MaxConsecutiveFailures)
	if err != nil {
		return false, err
	}
	if len(statuses) < MaxConsecutiveFailures {
		return true, nil
	}
	for _, status := range statuses {
		if status != queue.StatusFailed {
			return true, nil
		}
	}
	return false, nil
}
