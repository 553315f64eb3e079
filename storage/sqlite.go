package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ewintr.nl/potongin/model"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// OpenSQLite opens the database file at path. Use ":memory:" for a throwaway
// database.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // single writer, and keeps :memory: on one connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// fixed width so created_at sorts as text
const sqliteTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

type SQLite struct {
	db   *sql.DB
	path string
}

func NewSQLite(db *sql.DB, path string) (*SQLite, error) {
	s := &SQLite{db: db, path: path}
	if err := migrate(db, sqliteMigration,
		`CREATE TABLE IF NOT EXISTS migration
(id INTEGER PRIMARY KEY AUTOINCREMENT, query TEXT)`,
		`INSERT INTO migration
(query) VALUES (?)`,
	); err != nil {
		return &SQLite{}, err
	}

	return s, nil
}

var sqliteMigration = []string{
	`CREATE TABLE clip (
id TEXT PRIMARY KEY,
video_id TEXT NOT NULL,
user_id TEXT,
start_seconds REAL NOT NULL,
end_seconds REAL NOT NULL,
title TEXT,
transcript_snippet TEXT,
export_status TEXT NOT NULL DEFAULT 'draft'
  CHECK (export_status IN ('draft', 'rendering', 'ready', 'failed')),
share_url TEXT,
created_at TEXT NOT NULL,
CHECK (end_seconds > start_seconds)
)`,
	`CREATE INDEX clip_video_id_idx ON clip (video_id)`,
}

type SQLiteClipRepository struct {
	*SQLite
}

func NewSQLiteClipRepository(sqlite *SQLite) *SQLiteClipRepository {
	return &SQLiteClipRepository{sqlite}
}

func (s *SQLiteClipRepository) Create(ctx context.Context, clip *model.Clip) (string, error) {
	id := uuid.New().String()
	query := `INSERT INTO clip
(id, video_id, user_id, start_seconds, end_seconds, title, transcript_snippet, export_status, share_url, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query,
		id,
		string(clip.VideoID),
		nullString(clip.UserID),
		clip.Start,
		clip.End,
		nullString(clip.Title),
		nullString(clip.TranscriptSnippet),
		string(clip.ExportStatus),
		nullString(clip.ShareURL),
		clip.CreatedAt.UTC().Format(sqliteTimeFormat),
	); err != nil {
		return "", fmt.Errorf("insert clip: %w", err)
	}

	return id, nil
}

func (s *SQLiteClipRepository) FindByVideoID(ctx context.Context, videoID model.YoutubeVideoID) ([]*model.Clip, error) {
	query := `SELECT id, video_id, user_id, start_seconds, end_seconds, title, transcript_snippet, export_status, share_url, created_at
FROM clip
WHERE video_id = ?
ORDER BY created_at, rowid`
	rows, err := s.db.QueryContext(ctx, query, string(videoID))
	if err != nil {
		return nil, fmt.Errorf("select clips: %w", err)
	}
	defer rows.Close()

	clips := []*model.Clip{}
	for rows.Next() {
		var (
			row       clipRow
			createdAt string
		)
		if err := rows.Scan(row.dest(&createdAt)...); err != nil {
			return nil, fmt.Errorf("scan clip: %w", err)
		}
		if row.createdAt, err = time.Parse(sqliteTimeFormat, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at of clip %s: %w", row.id, err)
		}
		clips = append(clips, row.clip())
	}

	return clips, rows.Err()
}

func (s *SQLiteClipRepository) Status(ctx context.Context) Status {
	status := Status{Backend: "sqlite", Name: s.path, Tables: []string{}}
	if err := s.db.PingContext(ctx); err != nil {
		status.Error = errorMessage(err)
		return status
	}
	status.Connected = true

	tables, err := listTables(ctx, s.db, `SELECT name FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
ORDER BY name
LIMIT ?`)
	if err != nil {
		status.Error = errorMessage(err)
		return status
	}
	status.Tables = tables

	return status
}
