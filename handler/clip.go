package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"ewintr.nl/potongin/clip"
	"ewintr.nl/potongin/model"
	"ewintr.nl/potongin/transcript"
	"golang.org/x/exp/slog"
)

type ClipService interface {
	Create(ctx context.Context, req clip.CreateRequest) (clip.Created, error)
	List(ctx context.Context, videoID model.YoutubeVideoID) ([]*model.Clip, error)
	Search(ctx context.Context, query string, limit int) ([]*model.Clip, error)
}

type ClipAPI struct {
	clips  ClipService
	logger *slog.Logger
}

func NewClipAPI(clips ClipService, logger *slog.Logger) *ClipAPI {
	return &ClipAPI{
		clips:  clips,
		logger: logger,
	}
}

func (c *ClipAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	subPath, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodPost && subPath == "":
		c.Create(w, r)
	case r.Method == http.MethodGet && subPath == "":
		c.List(w, r)
	case r.Method == http.MethodGet && subPath == "search":
		c.Search(w, r)
	default:
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("method %s with subpath %q was not registered in the clips api", r.Method, subPath))
	}
}

func (c *ClipAPI) Create(w http.ResponseWriter, r *http.Request) {
	var req clip.CreateRequest
	if err := decodeBody(r, &req); err != nil {
		returnErr(c.logger, w, "invalid request", err)
		return
	}

	created, err := c.clips.Create(r.Context(), req)
	if err != nil {
		returnErr(c.logger, w, "could not create clip", err)
		return
	}

	JSON(w, http.StatusOK, created)
}

type respClips struct {
	Items []*model.Clip `json:"items"`
}

func (c *ClipAPI) List(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("video_id")
	if videoID == "" {
		returnErr(c.logger, w, "invalid request", fmt.Errorf("%w: video_id is required", transcript.ErrInvalidInput))
		return
	}

	clips, err := c.clips.List(r.Context(), model.YoutubeVideoID(videoID))
	if err != nil {
		returnErr(c.logger, w, "could not list clips", err)
		return
	}

	JSON(w, http.StatusOK, respClips{Items: clips})
}

func (c *ClipAPI) Search(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		var err error
		if limit, err = strconv.Atoi(l); err != nil {
			returnErr(c.logger, w, "invalid request", fmt.Errorf("%w: limit %q is not a number", transcript.ErrInvalidInput, l))
			return
		}
	}

	clips, err := c.clips.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		returnErr(c.logger, w, "could not search clips", err)
		return
	}

	JSON(w, http.StatusOK, respClips{Items: clips})
}
