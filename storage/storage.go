package storage

import (
	"context"
	"database/sql"
	"time"

	"ewintr.nl/potongin/model"
)

type ClipRepository interface {
	// Create stores a new clip and returns the id it was given.
	Create(ctx context.Context, clip *model.Clip) (string, error)
	FindByVideoID(ctx context.Context, videoID model.YoutubeVideoID) ([]*model.Clip, error)
	Status(ctx context.Context) Status
}

type ClipIndex interface {
	Save(ctx context.Context, clip *model.Clip) error
	Search(ctx context.Context, query string, limit int) ([]*model.Clip, error)
}

type Status struct {
	Backend   string   `json:"backend"`
	Connected bool     `json:"connected"`
	Name      string   `json:"name,omitempty"`
	Tables    []string `json:"tables"`
	Error     string   `json:"error,omitempty"`
}

const maxStatusTables = 10

func nullString(o model.Optional[string]) sql.NullString {
	v, ok := o.Get()
	return sql.NullString{String: v, Valid: ok}
}

func optional(ns sql.NullString) model.Optional[string] {
	if !ns.Valid {
		return model.None[string]()
	}
	return model.Some(ns.String)
}

func errorMessage(err error) string {
	msg := []rune(err.Error())
	if len(msg) > 80 {
		msg = msg[:80]
	}
	return string(msg)
}

func listTables(ctx context.Context, db *sql.DB, query string) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, maxStatusTables)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}

	return tables, rows.Err()
}

// clipRow holds the columns of a clip as they come out of the database, in
// select order.
type clipRow struct {
	id, videoID, exportStatus        string
	userID, title, snippet, shareURL sql.NullString
	start, end                       float64
	createdAt                        time.Time
}

func (r *clipRow) dest(createdAt any) []any {
	return []any{&r.id, &r.videoID, &r.userID, &r.start, &r.end, &r.title, &r.snippet, &r.exportStatus, &r.shareURL, createdAt}
}

func (r *clipRow) clip() *model.Clip {
	return &model.Clip{
		ID:                r.id,
		VideoID:           model.YoutubeVideoID(r.videoID),
		UserID:            optional(r.userID),
		Start:             r.start,
		End:               r.end,
		Title:             optional(r.title),
		TranscriptSnippet: optional(r.snippet),
		ExportStatus:      model.ExportStatus(r.exportStatus),
		ShareURL:          optional(r.shareURL),
		CreatedAt:         r.createdAt,
	}
}
