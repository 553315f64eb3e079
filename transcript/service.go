package transcript

import (
	"context"
	"errors"
	"fmt"

	"ewintr.nl/potongin/model"
	"golang.org/x/exp/slog"
)

type Provider interface {
	ListTracks(ctx context.Context, videoID model.YoutubeVideoID) ([]model.Track, error)
	FetchCues(ctx context.Context, track model.Track) ([]model.Cue, error)
}

type FetchRequest struct {
	URL      string                 `json:"url"`
	Language model.Optional[string] `json:"language"`
}

type Service struct {
	provider Provider
	logger   *slog.Logger
}

func NewService(provider Provider, logger *slog.Logger) *Service {
	return &Service{
		provider: provider,
		logger:   logger,
	}
}

// Fetch resolves the video in req.URL, selects a track and returns its
// normalized segments. Provider failures are returned immediately.
func (s *Service) Fetch(ctx context.Context, req FetchRequest) (model.Transcript, error) {
	videoID, ok := ExtractVideoID(req.URL)
	if !ok {
		return model.Transcript{}, fmt.Errorf("%w: no youtube video id in %q", ErrInvalidInput, req.URL)
	}

	tracks, err := s.provider.ListTracks(ctx, videoID)
	if err != nil {
		return model.Transcript{}, s.providerErr(videoID, err)
	}

	track, err := Select(req.Language, tracks)
	if err != nil {
		return model.Transcript{}, err
	}
	s.logger.Info("selected track",
		slog.String("video", string(videoID)),
		slog.String("language", track.LanguageCode),
		slog.Bool("generated", track.Generated),
		slog.Int("available", len(tracks)),
	)

	cues, err := s.provider.FetchCues(ctx, track)
	if err != nil {
		return model.Transcript{}, s.providerErr(videoID, err)
	}

	return model.Transcript{
		VideoID:      videoID,
		LanguageCode: track.LanguageCode,
		Generated:    track.Generated,
		Segments:     Normalize(cues),
	}, nil
}

func (s *Service) providerErr(videoID model.YoutubeVideoID, err error) error {
	if errors.Is(err, ErrTranscriptsDisabled) || errors.Is(err, ErrNoTranscriptFound) {
		s.logger.Info("no transcript", slog.String("video", string(videoID)), slog.String("reason", err.Error()))
		return fmt.Errorf("%w: %v", ErrNoTranscriptAvailable, err)
	}

	s.logger.Error("transcript provider failed", slog.String("video", string(videoID)), slog.String("err", err.Error()))
	return NewProviderError(err)
}
