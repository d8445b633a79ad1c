package queue

import (
	"context"
	"fmt"
	"time"
)

// Approve moves a pending item to approved. Returns false when the item does
// not exist or is not pending; approving twice is a no-op, not an error.
func (s *Store) Approve(ctx context.Context, id int64) (bool, error) {
	res, err := s.execWithRetry(
		ctx,
		`UPDATE queue_items SET status = ?, updated_at = ?
         WHERE id = ? AND status = ?`,
		StatusApproved,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
		StatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("approve item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// MarkUploading moves an approved item to uploading. Returns false when the
// item is no longer approved, which means another run claimed it first.
func (s *Store) MarkUploading(ctx context.Context, id int64) (bool, error) {
	res, err := s.execWithRetry(
		ctx,
		`UPDATE queue_items SET status = ?, updated_at = ?
         WHERE id = ? AND status = ?`,
		StatusUploading,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
		StatusApproved,
	)
	if err != nil {
		return false, fmt.Errorf("mark uploading: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// MarkPublished records a successful publish: sets the publish timestamp and
// the platform's post id, and clears any failure message from prior attempts.
func (s *Store) MarkPublished(ctx context.Context, id int64, externalPostID string, publishedAt time.Time) (bool, error) {
	res, err := s.execWithRetry(
		ctx,
		`UPDATE queue_items
         SET status = ?, published_at = ?, external_post_id = ?, error_message = NULL, updated_at = ?
         WHERE id = ? AND status = ?`,
		StatusPublished,
		publishedAt.UTC().Format(time.RFC3339Nano),
		externalPostID,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
		StatusUploading,
	)
	if err != nil {
		return false, fmt.Errorf("mark published: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// MarkFailed records a failed attempt: stores a bounded failure summary and
// increments the retry counter. Legal from approved (missing video) or
// uploading (publish error); published_at is never set on this path.
func (s *Store) MarkFailed(ctx context.Context, id int64, message string) (bool, error) {
	res, err := s.execWithRetry(
		ctx,
		`UPDATE queue_items
         SET status = ?, error_message = ?, retry_count = retry_count + 1, updated_at = ?
         WHERE id = ? AND status IN (?, ?)`,
		StatusFailed,
		TruncateError(message),
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
		StatusApproved,
		StatusUploading,
	)
	if err != nil {
		return false, fmt.Errorf("mark failed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}
