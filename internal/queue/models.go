package queue

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a queue item.
//
// The only legal transitions are pending -> approved -> uploading ->
// published or failed. Failed is terminal for the item; a retry requires
// scheduling a fresh item for the same video.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusUploading Status = "uploading"
	StatusPublished Status = "published"
	StatusFailed    Status = "failed"
)

// MaxErrorMessageLen bounds the stored failure summary.
const MaxErrorMessageLen = 500

var allStatuses = []Status{
	StatusPending,
	StatusApproved,
	StatusUploading,
	StatusPublished,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// Item represents one scheduled publish attempt persisted in SQLite.
type Item struct {
	ID             int64
	VideoRef       string
	Platform       string
	ScheduledAt    time.Time
	Status         Status
	PublishedAt    *time.Time
	ExternalPostID string
	ErrorMessage   string
	RetryCount     int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsTerminal reports whether the status ends the item's lifecycle.
func (s Status) IsTerminal() bool {
	return s == StatusPublished || s == StatusFailed
}

// TruncateError bounds a failure message to MaxErrorMessageLen characters.
func TruncateError(message string) string {
	runes := []rune(message)
	if len(runes) <= MaxErrorMessageLen {
		return message
	}
	return string(runes[:MaxErrorMessageLen])
}
