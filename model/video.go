package model

type YoutubeVideoID string

// Track is one transcript option the provider reports for a video.
type Track struct {
	LanguageCode string
	Language     string
	Generated    bool
	BaseURL      string
}

// Cue is a raw timed caption as delivered by the provider.
type Cue struct {
	Start    float64
	Duration float64
	Text     string
}

type Segment struct {
	Index int     `json:"index"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type Transcript struct {
	VideoID      YoutubeVideoID
	LanguageCode string
	Generated    bool
	Segments     []Segment
}

type VideoMetadata struct {
	YoutubeID   YoutubeVideoID
	Title       string
	Channel     string
	Description string
	Duration    string
	PublishedAt string
}
