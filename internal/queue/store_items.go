package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Add inserts a new pending publish attempt for a composed video.
func (s *Store) Add(ctx context.Context, videoRef, platform string, scheduledAt time.Time) (*Item, error) {
	videoRef = strings.TrimSpace(videoRef)
	if videoRef == "" {
		return nil, errors.New("video ref is required")
	}
	platform = strings.ToLower(strings.TrimSpace(platform))
	if platform == "" {
		platform = "tiktok"
	}

	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO queue_items (
            video_ref, platform, scheduled_at, status, retry_count, created_at, updated_at
        ) VALUES (?, ?, ?, ?, 0, ?, ?)`,
		videoRef,
		platform,
		scheduledAt.UTC().Format(time.RFC3339Nano),
		StatusPending,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert queue item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches a queue item by identifier. Returns nil when no item exists.
func (s *Store) GetByID(ctx context.Context, id int64) (*Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM queue_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// List returns queue items filtered by status set (or all items when no
// status is provided), ordered by scheduled time.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Item, error) {
	var (
		rows *sql.Rows
		err  error
	)

	baseQuery := `SELECT ` + itemColumns + ` FROM queue_items`
	orderClause := ` ORDER BY scheduled_at`

	if len(statuses) == 0 {
		rows, err = s.db.QueryContext(ctx, baseQuery+orderClause)
	} else {
		placeholders := makePlaceholders(len(statuses))
		args := make([]any, len(statuses))
		for i, status := range statuses {
			args[i] = status
		}
		query := baseQuery + ` WHERE status IN (` + placeholders + `)` + orderClause
		rows, err = s.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("list queue items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// DueItems returns approved items whose scheduled time is at or before now,
// oldest-due first.
func (s *Store) DueItems(ctx context.Context, now time.Time) ([]*Item, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+itemColumns+` FROM queue_items
         WHERE status = ? AND scheduled_at <= ?
         ORDER BY scheduled_at ASC`,
		StatusApproved,
		now.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("query due items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// RecentStatuses returns the statuses of the n most recently updated items,
// newest first. The safety gate reads this fresh on every call instead of
// keeping counters, so external mutations between runs are always observed.
func (s *Store) RecentStatuses(ctx context.Context, n int) ([]Status, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT status FROM queue_items ORDER BY updated_at DESC LIMIT ?`,
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent statuses: %w", err)
	}
	defer rows.Close()

	var statuses []Status
	for rows.Next() {
		var status Status
		if err := rows.Scan(&status); err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}

// LastPublishedAt returns the publish time of the most recently published
// item, or nil when nothing has ever been published.
func (s *Store) LastPublishedAt(ctx context.Context) (*time.Time, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT published_at FROM queue_items
         WHERE status = ? AND published_at IS NOT NULL
         ORDER BY published_at DESC LIMIT 1`,
		StatusPublished,
	)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query last published: %w", err)
	}

	published, err := parseTimeString(raw)
	if err != nil {
		return nil, fmt.Errorf("parse published_at %q: %w", raw, err)
	}
	return &published, nil
}

// PublishedCount returns the lifetime number of published items.
func (s *Store) PublishedCount(ctx context.Context) (int, error) {
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM queue_items WHERE status = ?`, StatusPublished)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count published: %w", err)
	}
	return count, nil
}

// Stats returns a count of items grouped by status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM queue_items GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("queue stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

// ClearFailed removes failed items. Operator maintenance only; the processor
// never deletes queue rows.
func (s *Store) ClearFailed(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM queue_items WHERE status = ?`, StatusFailed)
	if err != nil {
		return 0, fmt.Errorf("clear failed: %w", err)
	}
	return res.RowsAffected()
}

const itemColumns = "id, video_ref, platform, scheduled_at, status, published_at, external_post_id, error_message, retry_count, created_at, updated_at"

func scanItem(scanner interface{ Scan(dest ...any) error }) (*Item, error) {
	var (
		id           int64
		videoRef     string
		platform     string
		scheduledRaw string
		statusStr    string
		publishedRaw sql.NullString
		postID       sql.NullString
		errorMessage sql.NullString
		retryCount   int
		createdRaw   string
		updatedRaw   string
	)

	if err := scanner.Scan(
		&id,
		&videoRef,
		&platform,
		&scheduledRaw,
		&statusStr,
		&publishedRaw,
		&postID,
		&errorMessage,
		&retryCount,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	item := &Item{
		ID:             id,
		VideoRef:       videoRef,
		Platform:       platform,
		Status:         Status(statusStr),
		ExternalPostID: postID.String,
		ErrorMessage:   errorMessage.String,
		RetryCount:     retryCount,
	}

	if scheduled, err := parseTimeString(scheduledRaw); err == nil {
		item.ScheduledAt = scheduled
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		item.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		item.UpdatedAt = updated
	}
	if publishedRaw.Valid {
		if published, err := parseTimeString(publishedRaw.String); err == nil {
			item.PublishedAt = &published
		}
	}
	return item, nil
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
