package safety_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"vesper/internal/queue"
	"vesper/internal/safety"
	"vesper/internal/testsupport"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func addFailed(t *testing.T, store *queue.Store, ref string) {
	t.Helper()
	ctx := context.Background()
	item, err := store.Add(ctx, ref, "tiktok", time.Now())
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := store.Approve(ctx, item.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if _, err := store.MarkFailed(ctx, item.ID, "upload error"); err != nil {
		t.Fatalf("MarkFailed failed: %v", err)
	}
}

func addPublished(t *testing.T, store *queue.Store, ref string, publishedAt time.Time) {
	t.Helper()
	ctx := context.Background()
	item, err := store.Add(ctx, ref, "tiktok", time.Now())
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := store.Approve(ctx, item.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if _, err := store.MarkUploading(ctx, item.ID); err != nil {
		t.Fatalf("MarkUploading failed: %v", err)
	}
	if _, err := store.MarkPublished(ctx, item.ID, "post-"+ref, publishedAt); err != nil {
		t.Fatalf("MarkPublished failed: %v", err)
	}
}

func TestCanPublishOnEmptyQueue(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	gate := safety.NewGate(store, cfg, nil)

	ok, reason, err := gate.CanPublish(context.Background())
	if err != nil {
		t.Fatalf("CanPublish failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected publishing allowed, got %q", reason)
	}
	if reason != "OK" {
		t.Fatalf("reason = %q, want OK", reason)
	}
}

func TestConsecutiveFailuresPausePublishing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	gate := safety.NewGate(store, cfg, nil)

	for i := 0; i < safety.MaxConsecutiveFailures; i++ {
		addFailed(t, store, fmt.Sprintf("video-%d", i))
	}

	ok, reason, err := gate.CanPublish(context.Background())
	if err != nil {
		t.Fatalf("CanPublish failed: %v", err)
	}
	if ok {
		t.Fatal("expected publishing paused after consecutive failures")
	}
	if !strings.Contains(reason, "paused") {
		t.Fatalf("reason = %q, want a paused explanation", reason)
	}
}

func TestTwoFailuresDoNotPause(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	gate := safety.NewGate(store, cfg, nil)

	addFailed(t, store, "video-0")
	addFailed(t, store, "video-1")

	ok, _, err := gate.CanPublish(context.Background())
	if err != nil {
		t.Fatalf("CanPublish failed: %v", err)
	}
	if !ok {
		t.Fatal("two failures must not pause publishing")
	}
}

func TestRecentSuccessResetsFailureStreak(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	now := time.Now()
	gate := safety.NewGate(store, cfg, fixedClock(now))

	for i := 0; i < safety.MaxConsecutiveFailures; i++ {
		addFailed(t, store, fmt.Sprintf("video-%d", i))
	}
	// The publish is the most recent update, so the streak is broken.
	addPublished(t, store, "winner", now.Add(-24*time.Hour))

	ok, reason, err := gate.CanPublish(context.Background())
	if err != nil {
		t.Fatalf("CanPublish failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected streak broken by a publish, got %q", reason)
	}
}

func TestMinIntervalBlocksRecentPublish(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	now := time.Now().UTC()
	gate := safety.NewGate(store, cfg, fixedClock(now))

	addPublished(t, store, "recent", now.Add(-30*time.Minute))

	ok, reason, err := gate.CanPublish(context.Background())
	if err != nil {
		t.Fatalf("CanPublish failed: %v", err)
	}
	if ok {
		t.Fatal("expected interval block 30 minutes after a publish")
	}
	if !strings.Contains(reason, "too soon") {
		t.Fatalf("reason = %q, want a too-soon explanation", reason)
	}
}

func TestMinIntervalPassesAtBoundary(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	now := time.Now().UTC()
	gate := safety.NewGate(store, cfg, fixedClock(now))

	hours := time.Duration(cfg.Publishing.MinHoursBetweenPosts * float64(time.Hour))
	addPublished(t, store, "old", now.Add(-hours))

	ok, err := gate.MinIntervalMet(context.Background())
	if err != nil {
		t.Fatalf("MinIntervalMet failed: %v", err)
	}
	if !ok {
		t.Fatal("an elapsed interval exactly at the cutoff must pass")
	}
}

func TestFirstPublishAlwaysPassesInterval(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	gate := safety.NewGate(store, cfg, nil)

	ok, err := gate.MinIntervalMet(context.Background())
	if err != nil {
		t.Fatalf("MinIntervalMet failed: %v", err)
	}
	if !ok {
		t.Fatal("first publish must pass the interval check")
	}
}

func TestNeedsHumanApproval(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	now := time.Now().UTC()
	gate := safety.NewGate(store, cfg, fixedClock(now))

	manual, err := gate.NeedsHumanApproval(context.Background())
	if err != nil {
		t.Fatalf("NeedsHumanApproval failed: %v", err)
	}
	if !manual {
		t.Fatal("a fresh account needs manual approval")
	}

	for i := 0; i < safety.HumanApprovalThreshold; i++ {
		addPublished(t, store, fmt.Sprintf("video-%d", i), now.Add(-time.Duration(i+1)*24*time.Hour))
	}

	manual, err = gate.NeedsHumanApproval(context.Background())
	if err != nil {
		t.Fatalf("NeedsHumanApproval failed: %v", err)
	}
	if manual {
		t.Fatalf("manual approval should lift at %d lifetime publishes", safety.HumanApprovalThreshold)
	}
}
