package storage

import (
	"context"
	"database/sql"
	"fmt"

	"ewintr.nl/potongin/model"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

type PostgresInfo struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

func OpenPostgres(info PostgresInfo) (*sql.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		info.Host, info.Port, info.User, info.Password, info.Database)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) (*Postgres, error) {
	p := &Postgres{db: db}
	if err := migrate(db, pgMigration,
		`CREATE TABLE IF NOT EXISTS migration
("id" SERIAL PRIMARY KEY, "query" TEXT)`,
		`INSERT INTO migration
(query) VALUES ($1)`,
	); err != nil {
		return &Postgres{}, err
	}

	return p, nil
}

var pgMigration = []string{
	`CREATE TYPE export_status AS ENUM ('draft', 'rendering', 'ready', 'failed')`,
	`CREATE TABLE clip (
id uuid PRIMARY KEY,
video_id VARCHAR(11) NOT NULL,
user_id VARCHAR(255),
start_seconds DOUBLE PRECISION NOT NULL,
end_seconds DOUBLE PRECISION NOT NULL,
title TEXT,
transcript_snippet TEXT,
export_status export_status NOT NULL DEFAULT 'draft',
share_url TEXT,
created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE INDEX clip_video_id_idx ON clip (video_id)`,
	`ALTER TABLE clip ADD CONSTRAINT clip_range_check CHECK (end_seconds > start_seconds)`,
}

type PostgresClipRepository struct {
	*Postgres
}

func NewPostgresClipRepository(postgres *Postgres) *PostgresClipRepository {
	return &PostgresClipRepository{postgres}
}

func (p *PostgresClipRepository) Create(ctx context.Context, clip *model.Clip) (string, error) {
	id := uuid.New().String()
	query := `INSERT INTO clip
(id, video_id, user_id, start_seconds, end_seconds, title, transcript_snippet, export_status, share_url, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := p.db.ExecContext(ctx, query,
		id,
		string(clip.VideoID),
		nullString(clip.UserID),
		clip.Start,
		clip.End,
		nullString(clip.Title),
		nullString(clip.TranscriptSnippet),
		string(clip.ExportStatus),
		nullString(clip.ShareURL),
		clip.CreatedAt,
	); err != nil {
		return "", fmt.Errorf("insert clip: %w", err)
	}

	return id, nil
}

func (p *PostgresClipRepository) FindByVideoID(ctx context.Context, videoID model.YoutubeVideoID) ([]*model.Clip, error) {
	query := `SELECT id, video_id, user_id, start_seconds, end_seconds, title, transcript_snippet, export_status, share_url, created_at
FROM clip
WHERE video_id = $1
ORDER BY created_at, id`
	rows, err := p.db.QueryContext(ctx, query, string(videoID))
	if err != nil {
		return nil, fmt.Errorf("select clips: %w", err)
	}
	defer rows.Close()

	clips := []*model.Clip{}
	for rows.Next() {
		var row clipRow
		if err := rows.Scan(row.dest(&row.createdAt)...); err != nil {
			return nil, fmt.Errorf("scan clip: %w", err)
		}
		clips = append(clips, row.clip())
	}

	return clips, rows.Err()
}

func (p *PostgresClipRepository) Status(ctx context.Context) Status {
	status := Status{Backend: "postgres", Tables: []string{}}
	if err := p.db.QueryRowContext(ctx, `SELECT current_database()`).Scan(&status.Name); err != nil {
		status.Error = errorMessage(err)
		return status
	}
	status.Connected = true

	tables, err := listTables(ctx, p.db, `SELECT table_name FROM information_schema.tables
WHERE table_schema = 'public'
ORDER BY table_name
LIMIT $1`)
	if err != nil {
		status.Error = errorMessage(err)
		return status
	}
	status.Tables = tables

	return status
}
