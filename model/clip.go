package model

import "time"

type ExportStatus string

const (
	ExportStatusDraft     ExportStatus = "draft"
	ExportStatusRendering ExportStatus = "rendering"
	ExportStatusReady     ExportStatus = "ready"
	ExportStatusFailed    ExportStatus = "failed"
)

func (s ExportStatus) Valid() bool {
	switch s {
	case ExportStatusDraft, ExportStatusRendering, ExportStatusReady, ExportStatusFailed:
		return true
	}
	return false
}

type Clip struct {
	ID                string           `json:"id"`
	VideoID           YoutubeVideoID   `json:"video_id"`
	UserID            Optional[string] `json:"user_id"`
	Start             float64          `json:"start"`
	End               float64          `json:"end"`
	Title             Optional[string] `json:"title"`
	TranscriptSnippet Optional[string] `json:"transcript_snippet"`
	ExportStatus      ExportStatus     `json:"export_status"`
	ShareURL          Optional[string] `json:"share_url"`
	CreatedAt         time.Time        `json:"created_at"`
}
