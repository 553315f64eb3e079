package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"ewintr.nl/potongin/model"
	"ewintr.nl/potongin/transcript"
	"golang.org/x/exp/slog"
)

type TranscriptFetcher interface {
	Fetch(ctx context.Context, req transcript.FetchRequest) (model.Transcript, error)
}

type TranscriptAPI struct {
	transcripts TranscriptFetcher
	logger      *slog.Logger
}

func NewTranscriptAPI(transcripts TranscriptFetcher, logger *slog.Logger) *TranscriptAPI {
	return &TranscriptAPI{
		transcripts: transcripts,
		logger:      logger,
	}
}

func (t *TranscriptAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	subPath, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodPost && subPath == "":
		t.Fetch(w, r)
	default:
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("method %s with subpath %q was not registered in the fetch api", r.Method, subPath))
	}
}

func (t *TranscriptAPI) Fetch(w http.ResponseWriter, r *http.Request) {
	var req transcript.FetchRequest
	if err := decodeBody(r, &req); err != nil {
		returnErr(t.logger, w, "invalid request", err)
		return
	}

	tr, err := t.transcripts.Fetch(r.Context(), req)
	if err != nil {
		var pErr *transcript.ProviderError
		switch {
		case errors.Is(err, transcript.ErrInvalidInput):
			returnErr(t.logger, w, "invalid youtube url", err)
		case errors.Is(err, transcript.ErrNoTranscriptAvailable):
			returnErr(t.logger, w, "no transcript available for this video", err)
		case errors.As(err, &pErr):
			returnErr(t.logger, w, "could not fetch transcript", errors.New(pErr.Message))
		default:
			returnErr(t.logger, w, "could not fetch transcript", err)
		}
		return
	}

	type respTranscript struct {
		VideoID   string          `json:"video_id"`
		Language  string          `json:"language"`
		Generated bool            `json:"generated"`
		Segments  []model.Segment `json:"segments"`
	}
	JSON(w, http.StatusOK, respTranscript{
		VideoID:   string(tr.VideoID),
		Language:  tr.LanguageCode,
		Generated: tr.Generated,
		Segments:  tr.Segments,
	})
}

func returnErr(logger *slog.Logger, w http.ResponseWriter, message string, err error, details ...any) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(message, slog.String("err", err.Error()), slog.String("details", fmt.Sprintf("%+v", details)))
	}
	Error(w, status, message, err, details...)
}
