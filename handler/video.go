package handler

import (
	"fmt"
	"net/http"

	"ewintr.nl/potongin/fetcher"
	"ewintr.nl/potongin/model"
	"ewintr.nl/potongin/transcript"
	"golang.org/x/exp/slog"
)

type MetadataFetcher = fetcher.MetadataFetcher

type VideoAPI struct {
	metadata MetadataFetcher
	logger   *slog.Logger
}

func NewVideoAPI(metadata MetadataFetcher, logger *slog.Logger) *VideoAPI {
	return &VideoAPI{
		metadata: metadata,
		logger:   logger,
	}
}

func (v *VideoAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	videoID, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodGet && videoID != "":
		v.Get(w, r, model.YoutubeVideoID(videoID))
	default:
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("method %s with subpath %q was not registered in the videos api", r.Method, videoID))
	}
}

func (v *VideoAPI) Get(w http.ResponseWriter, r *http.Request, videoID model.YoutubeVideoID) {
	if v.metadata == nil {
		returnErr(v.logger, w, "video metadata is disabled", fmt.Errorf("youtube api %w", ErrNotConfigured))
		return
	}
	if !transcript.ValidVideoID(videoID) {
		returnErr(v.logger, w, "invalid video id", fmt.Errorf("%w: malformed video id %q", transcript.ErrInvalidInput, videoID))
		return
	}

	md, err := fetcher.FetchOne(r.Context(), v.metadata, videoID)
	if err != nil {
		returnErr(v.logger, w, "could not fetch video metadata", err)
		return
	}

	type respVideo struct {
		VideoID     string `json:"video_id"`
		Title       string `json:"title"`
		Channel     string `json:"channel"`
		Description string `json:"description"`
		Duration    string `json:"duration"`
		PublishedAt string `json:"published_at"`
	}
	JSON(w, http.StatusOK, respVideo{
		VideoID:     string(md.YoutubeID),
		Title:       md.Title,
		Channel:     md.Channel,
		Description: md.Description,
		Duration:    md.Duration,
		PublishedAt: md.PublishedAt,
	})
}
