package fetcher

import (
	"context"
	"strings"

	"ewintr.nl/potongin/model"
	"google.golang.org/api/youtube/v3"
)

type Youtube struct {
	Client *youtube.Service
}

func NewYoutube(client *youtube.Service) *Youtube {
	return &Youtube{Client: client}
}

func (y *Youtube) FetchMetadata(ctx context.Context, ytIDs []model.YoutubeVideoID) (map[model.YoutubeVideoID]model.VideoMetadata, error) {
	strIDs := make([]string, len(ytIDs))
	for i, id := range ytIDs {
		strIDs[i] = string(id)
	}
	call := y.Client.Videos.
		List([]string{"snippet", "contentDetails"}).
		Id(strings.Join(strIDs, ",")).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return map[model.YoutubeVideoID]model.VideoMetadata{}, err
	}

	mds := make(map[model.YoutubeVideoID]model.VideoMetadata, len(response.Items))
	for _, item := range response.Items {
		if item.Snippet == nil {
			continue
		}
		md := model.VideoMetadata{
			YoutubeID:   model.YoutubeVideoID(item.Id),
			Title:       item.Snippet.Title,
			Channel:     item.Snippet.ChannelTitle,
			Description: item.Snippet.Description,
			PublishedAt: item.Snippet.PublishedAt,
		}

		if item.ContentDetails != nil {
			md.Duration = item.ContentDetails.Duration
		}

		mds[md.YoutubeID] = md
	}

	return mds, nil
}
