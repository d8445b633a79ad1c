package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"vesper/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS videos (
    ref TEXT PRIMARY KEY,
    file_path TEXT NOT NULL,
    prayer_text TEXT NOT NULL,
    verse_reference TEXT NOT NULL,
    verse_text TEXT NOT NULL DEFAULT '',
    theme_slug TEXT NOT NULL,
    hook_text TEXT NOT NULL DEFAULT '',
    duration_sec REAL NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);
`

// Video describes one composed video artifact and the content it carries.
type Video struct {
	Ref            string
	FilePath       string
	PrayerText     string
	VerseReference string
	VerseText      string
	ThemeSlug      string
	HookText       string
	DurationSec    float64
	CreatedAt      time.Time
}

// Store is the registry of composed videos the publish queue references.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the video library database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "library.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create library schema: %w", err)
	}
	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Add registers a composed video. A missing ref is assigned a fresh UUID.
func (s *Store) Add(ctx context.Context, video Video) (*Video, error) {
	video.FilePath = strings.TrimSpace(video.FilePath)
	if video.FilePath == "" {
		return nil, errors.New("file path is required")
	}
	if strings.TrimSpace(video.VerseReference) == "" {
		return nil, errors.New("verse reference is required")
	}
	if strings.TrimSpace(video.ThemeSlug) == "" {
		return nil, errors.New("theme slug is required")
	}
	if strings.TrimSpace(video.Ref) == "" {
		video.Ref = uuid.NewString()
	}
	video.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO videos (
            ref, file_path, prayer_text, verse_reference, verse_text,
            theme_slug, hook_text, duration_sec, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		video.Ref,
		video.FilePath,
		video.PrayerText,
		video.VerseReference,
		video.VerseText,
		video.ThemeSlug,
		video.HookText,
		video.DurationSec,
		video.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert video: %w", err)
	}
	return &video, nil
}

// GetByRef fetches a video by its reference. Returns nil when absent.
func (s *Store) GetByRef(ctx context.Context, ref string) (*Video, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT ref, file_path, prayer_text, verse_reference, verse_text,
                theme_slug, hook_text, duration_sec, created_at
         FROM videos WHERE ref = ?`,
		ref,
	)
	video, err := scanVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return video, nil
}

// List returns all registered videos, newest first.
func (s *Store) List(ctx context.Context) ([]*Video, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT ref, file_path, prayer_text, verse_reference, verse_text,
                theme_slug, hook_text, duration_sec, created_at
         FROM videos ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	var videos []*Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}
	return videos, rows.Err()
}

func scanVideo(scanner interface{ Scan(dest ...any) error }) (*Video, error) {
	var (
		video      Video
		createdRaw string
	)
	if err := scanner.Scan(
		&video.Ref,
		&video.FilePath,
		&video.PrayerText,
		&video.VerseReference,
		&video.VerseText,
		&video.ThemeSlug,
		&video.HookText,
		&video.DurationSec,
		&createdRaw,
	); err != nil {
		return nil, err
	}
	if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		video.CreatedAt = created
	}
	return &video, nil
}
