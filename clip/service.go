package clip

import (
	"context"
	"strings"
	"time"

	"ewintr.nl/potongin/model"
	"ewintr.nl/potongin/storage"
	"golang.org/x/exp/slog"
)

type TitleFetcher interface {
	FetchTitle(ctx context.Context, snippet string) (string, error)
}

type CreateRequest struct {
	VideoID           model.YoutubeVideoID   `json:"video_id"`
	Start             float64                `json:"start"`
	End               float64                `json:"end"`
	Title             model.Optional[string] `json:"title"`
	TranscriptSnippet model.Optional[string] `json:"transcript_snippet"`
	UserID            model.Optional[string] `json:"user_id"`
}

type Created struct {
	ID       string `json:"id"`
	ShareURL string `json:"share_url"`
}

type Service struct {
	clipRepo storage.ClipRepository
	index    storage.ClipIndex
	titler   TitleFetcher
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires the clip use cases. index and titler are optional and may
// be nil.
func NewService(clipRepo storage.ClipRepository, index storage.ClipIndex, titler TitleFetcher, logger *slog.Logger) *Service {
	return &Service{
		clipRepo: clipRepo,
		index:    index,
		titler:   titler,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Created, error) {
	if err := validateRequest(req); err != nil {
		return Created{}, err
	}

	shareURL := ShareURL(req.VideoID, req.Start)
	c := &model.Clip{
		VideoID:           req.VideoID,
		UserID:            req.UserID,
		Start:             req.Start,
		End:               req.End,
		Title:             s.title(ctx, req),
		TranscriptSnippet: req.TranscriptSnippet,
		ExportStatus:      model.ExportStatusReady,
		ShareURL:          model.Some(shareURL),
		CreatedAt:         s.now().UTC(),
	}

	id, err := s.clipRepo.Create(ctx, c)
	if err != nil {
		s.logger.Error("failed to save clip", slog.String("video", string(req.VideoID)), slog.String("err", err.Error()))
		return Created{}, err
	}
	s.logger.Info("clip created", slog.String("id", id), slog.String("video", string(req.VideoID)))

	if s.index != nil {
		indexed := *c
		indexed.ID = id
		if err := s.index.Save(ctx, &indexed); err != nil {
			s.logger.Error("failed to index clip", slog.String("id", id), slog.String("err", err.Error()))
		}
	}

	return Created{ID: id, ShareURL: shareURL}, nil
}

func (s *Service) title(ctx context.Context, req CreateRequest) model.Optional[string] {
	if req.Title.IsSet() || s.titler == nil {
		return req.Title
	}
	snippet, ok := req.TranscriptSnippet.Get()
	if !ok || strings.TrimSpace(snippet) == "" {
		return req.Title
	}

	title, err := s.titler.FetchTitle(ctx, snippet)
	if err != nil {
		s.logger.Error("failed to fetch title", slog.String("video", string(req.VideoID)), slog.String("err", err.Error()))
		return req.Title
	}
	if title = strings.TrimSpace(title); title == "" {
		return req.Title
	}

	return model.Some(title)
}

func (s *Service) List(ctx context.Context, videoID model.YoutubeVideoID) ([]*model.Clip, error) {
	return s.clipRepo.FindByVideoID(ctx, videoID)
}

func (s *Service) Search(ctx context.Context, query string, limit int) ([]*model.Clip, error) {
	if s.index == nil {
		return nil, ErrSearchDisabled
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 || limit > maxSearchLimit {
		limit = defaultSearchLimit
	}

	return s.index.Search(ctx, query, limit)
}
