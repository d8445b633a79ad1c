package processor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vesper/internal/config"
	"vesper/internal/library"
	"vesper/internal/queue"
	"vesper/internal/safety"
	"vesper/internal/tiktok"
)

// Resolver looks up the composed video a queue item references. A nil video
// with a nil error means the reference is unknown.
type Resolver interface {
	GetByRef(ctx context.Context, ref string) (*library.Video, error)
}

// Publisher performs the external publish call and returns the platform's
// post identifier. Any error is recorded verbatim (truncated) on the item;
// the processor does not interpret error subtypes.
type Publisher interface {
	Publish(ctx context.Context, filePath, caption string) (string, error)
}

// Processor drains due, approved queue items through the safety gate and the
// external publisher. It keeps no state between runs: every invocation
// re-reads the store.
type Processor struct {
	store     *queue.Store
	gate      *safety.Gate
	resolver  Resolver
	publisher Publisher
	cfg       *config.Config
	logger    *slog.Logger
	now       func() time.Time
}

// New assembles a processor. A nil clock defaults to time.Now; a nil logger
// discards nothing but logs to the default slog logger.
func New(store *queue.Store, gate *safety.Gate, resolver Resolver, publisher Publisher, cfg *config.Config, logger *slog.Logger, now func() time.Time) *Processor {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		store:     store,
		gate:      gate,
		resolver:  resolver,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
		now:       now,
	}
}

// ProcessQueue runs one publish batch.
//
// The full gate (breaker + interval) runs once up front; the interval check
// alone re-runs before each item because a publish earlier in the batch moves
// the cutoff. When the interval check fails mid-batch, processing stops and
// later items stay approved for the next invocation. The returned slice
// always describes every item considered, or carries a single blocked/empty
// marker.
func (p *Processor) ProcessQueue(ctx context.Context, dryRun bool) ([]Result, error) {
	ok, reason, err := p.gate.CanPublish(ctx)
	if err != nil {
		return nil, fmt.Errorf("evaluate gate: %w", err)
	}
	if !ok {
		p.logger.Warn("publishing blocked", "reason", reason)
		return []Result{{Status: ResultBlocked, Detail: reason}}, nil
	}

	due, err := p.store.DueItems(ctx, p.now())
	if err != nil {
		return nil, fmt.Errorf("fetch due items: %w", err)
	}
	if len(due) == 0 {
		return []Result{{Status: ResultEmpty, Detail: "no due items"}}, nil
	}

	results := make([]Result, 0, len(due))
	for _, item := range due {
		intervalOK, err := p.gate.MinIntervalMet(ctx)
		if err != nil {
			return results, fmt.Errorf("recheck interval: %w", err)
		}
		if !intervalOK {
			results = append(results, Result{
				QueueID: item.ID,
				Status:  ResultSkipped,
				Detail:  "minimum interval not met",
			})
			break
		}

		results = append(results, p.processItem(ctx, item, dryRun))
	}

	return results, nil
}

func (p *Processor) processItem(ctx context.Context, item *queue.Item, dryRun bool) Result {
	logger := p.logger.With("queue_id", item.ID, "video_ref", item.VideoRef)

	video, err := p.resolver.GetByRef(ctx, item.VideoRef)
	if err != nil {
		// Store-level failure, not a missing record: surface it on the item
		// so the run is visible in the audit trail.
		msg := fmt.Sprintf("resolve video: %v", err)
		p.failItem(ctx, logger, item.ID, msg)
		return Result{QueueID: item.ID, Status: ResultFailed, Detail: queue.TruncateError(msg)}
	}
	if video == nil {
		logger.Warn("video record not found")
		p.failItem(ctx, logger, item.ID, "video record not found")
		return Result{QueueID: item.ID, Status: ResultFailed, Detail: "video record not found"}
	}

	caption := tiktok.BuildCaption(
		video.VerseReference,
		video.ThemeSlug,
		p.cfg.Publishing.Hashtags,
		p.cfg.Publishing.MaxHashtags,
	)

	if dryRun {
		return Result{
			QueueID: item.ID,
			Status:  ResultDryRun,
			Detail:  fmt.Sprintf("would publish %s (caption: %s)", video.FilePath, video.VerseReference),
		}
	}

	claimed, err := p.store.MarkUploading(ctx, item.ID)
	if err != nil {
		msg := fmt.Sprintf("mark uploading: %v", err)
		return Result{QueueID: item.ID, Status: ResultFailed, Detail: queue.TruncateError(msg)}
	}
	if !claimed {
		logger.Warn("item no longer approved, skipping")
		return Result{QueueID: item.ID, Status: ResultSkipped, Detail: "claimed by another run"}
	}

	postID, err := p.publisher.Publish(ctx, video.FilePath, caption)
	if err != nil {
		logger.Error("publish failed", "error", err)
		p.failItem(ctx, logger, item.ID, err.Error())
		return Result{QueueID: item.ID, Status: ResultFailed, Detail: queue.TruncateError(err.Error())}
	}

	if _, err := p.store.MarkPublished(ctx, item.ID, postID, p.now()); err != nil {
		// Published on the platform but not recorded: report the failure so
		// the operator can reconcile by hand.
		msg := fmt.Sprintf("published as %s but failed to record: %v", postID, err)
		logger.Error("record publish failed", "error", err, "post_id", postID)
		return Result{QueueID: item.ID, Status: ResultFailed, Detail: queue.TruncateError(msg)}
	}

	logger.Info("published", "post_id", postID)
	return Result{QueueID: item.ID, Status: ResultPublished, Detail: postID}
}

func (p *Processor) failItem(ctx context.Context, logger *slog.Logger, id int64, message string) {
	if _, err := p.store.MarkFailed(ctx, id, message); err != nil {
		logger.Error("mark failed errored", "error", err)
	}
}
