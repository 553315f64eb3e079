package fetcher

import (
	"context"
	"errors"

	"ewintr.nl/potongin/model"
)

var ErrVideoNotFound = errors.New("video not found")

type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, ytIDs []model.YoutubeVideoID) (map[model.YoutubeVideoID]model.VideoMetadata, error)
}

func FetchOne(ctx context.Context, f MetadataFetcher, ytID model.YoutubeVideoID) (model.VideoMetadata, error) {
	mds, err := f.FetchMetadata(ctx, []model.YoutubeVideoID{ytID})
	if err != nil {
		return model.VideoMetadata{}, err
	}
	md, ok := mds[ytID]
	if !ok {
		return model.VideoMetadata{}, ErrVideoNotFound
	}

	return md, nil
}
