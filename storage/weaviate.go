package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ewintr.nl/potongin/model"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/fault"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

const (
	className = "Clip"
)

type WeaviateInfo struct {
	Scheme       string
	Host         string
	ApiKey       string
	OpenaiApiKey string
}

// Weaviate indexes clip titles and snippets for search by meaning.
type Weaviate struct {
	client *weaviate.Client
}

func NewWeaviate(info WeaviateInfo) (*Weaviate, error) {
	scheme := info.Scheme
	if scheme == "" {
		scheme = "https"
	}
	config := weaviate.Config{
		Scheme: scheme,
		Host:   info.Host,
		Headers: map[string]string{
			"X-OpenAI-Api-Key": info.OpenaiApiKey,
		},
	}
	if info.ApiKey != "" {
		config.AuthConfig = auth.ApiKey{Value: info.ApiKey}
	}

	c, err := weaviate.NewClient(config)
	if err != nil {
		return nil, err
	}

	return &Weaviate{client: c}, nil
}

// EnsureSchema creates the clip class if it does not exist yet.
func (w *Weaviate) EnsureSchema(ctx context.Context) error {
	_, err := w.client.Schema().ClassGetter().WithClassName(className).Do(ctx)
	if err == nil {
		return nil
	}
	var status *fault.WeaviateClientError
	if !errors.As(err, &status) || status.StatusCode != http.StatusNotFound {
		return err
	}

	skip := map[string]any{
		"text2vec-openai": map[string]any{"skip": true},
	}
	classObj := &models.Class{
		Class:      className,
		Vectorizer: "text2vec-openai",
		ModuleConfig: map[string]any{
			"text2vec-openai": map[string]any{
				"model":        "ada",
				"modelVersion": "002",
				"type":         "text",
			},
		},
		Properties: []*models.Property{
			{Name: "clipId", DataType: []string{"text"}, ModuleConfig: skip},
			{Name: "videoId", DataType: []string{"text"}, ModuleConfig: skip},
			{Name: "title", DataType: []string{"text"}},
			{Name: "transcriptSnippet", DataType: []string{"text"}},
			{Name: "shareUrl", DataType: []string{"text"}, ModuleConfig: skip},
			{Name: "start", DataType: []string{"number"}},
			{Name: "end", DataType: []string{"number"}},
		},
	}

	return w.client.Schema().ClassCreator().WithClass(classObj).Do(ctx)
}

type weaviateClip struct {
	ClipID            string  `json:"clipId"`
	VideoID           string  `json:"videoId"`
	Title             string  `json:"title"`
	TranscriptSnippet string  `json:"transcriptSnippet"`
	ShareURL          string  `json:"shareUrl"`
	Start             float64 `json:"start"`
	End               float64 `json:"end"`
}

func (w *Weaviate) Save(ctx context.Context, clip *model.Clip) error {
	props := weaviateClip{
		ClipID:            clip.ID,
		VideoID:           string(clip.VideoID),
		Title:             clip.Title.OrElse(""),
		TranscriptSnippet: clip.TranscriptSnippet.OrElse(""),
		ShareURL:          clip.ShareURL.OrElse(""),
		Start:             clip.Start,
		End:               clip.End,
	}

	_, err := w.client.Data().
		Creator().
		WithClassName(className).
		WithID(clip.ID).
		WithProperties(props).
		Do(ctx)

	return err
}

func (w *Weaviate) Search(ctx context.Context, query string, limit int) ([]*model.Clip, error) {
	fields := []graphql.Field{
		{Name: "clipId"},
		{Name: "videoId"},
		{Name: "title"},
		{Name: "transcriptSnippet"},
		{Name: "shareUrl"},
		{Name: "start"},
		{Name: "end"},
	}
	nearText := w.client.GraphQL().
		NearTextArgBuilder().
		WithConcepts([]string{query})

	resp, err := w.client.GraphQL().
		Get().
		WithClassName(className).
		WithFields(fields...).
		WithNearText(nearText).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("weaviate search: %s", strings.Join(msgs, "; "))
	}

	return decodeSearchResult(resp.Data)
}

func decodeSearchResult(data map[string]models.JSONObject) ([]*model.Clip, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var result struct {
		Get map[string][]weaviateClip `json:"Get"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode weaviate search: %w", err)
	}

	found := result.Get[className]
	clips := make([]*model.Clip, 0, len(found))
	for _, wc := range found {
		clips = append(clips, &model.Clip{
			ID:                wc.ClipID,
			VideoID:           model.YoutubeVideoID(wc.VideoID),
			Start:             wc.Start,
			End:               wc.End,
			Title:             someIfNotEmpty(wc.Title),
			TranscriptSnippet: someIfNotEmpty(wc.TranscriptSnippet),
			ExportStatus:      model.ExportStatusReady,
			ShareURL:          someIfNotEmpty(wc.ShareURL),
		})
	}

	return clips, nil
}

func someIfNotEmpty(s string) model.Optional[string] {
	if s == "" {
		return model.None[string]()
	}
	return model.Some(s)
}
