package transcript_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"ewintr.nl/potongin/model"
	"ewintr.nl/potongin/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type memoryProvider struct {
	tracks    []model.Track
	cues      map[string][]model.Cue
	listErr   error
	fetchErr  error
	listCalls int
	fetched   []model.Track
}

func (mp *memoryProvider) ListTracks(_ context.Context, _ model.YoutubeVideoID) ([]model.Track, error) {
	mp.listCalls++
	if mp.listErr != nil {
		return nil, mp.listErr
	}
	return mp.tracks, nil
}

func (mp *memoryProvider) FetchCues(_ context.Context, track model.Track) ([]model.Cue, error) {
	mp.fetched = append(mp.fetched, track)
	if mp.fetchErr != nil {
		return nil, mp.fetchErr
	}
	return mp.cues[track.BaseURL], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServiceFetch(t *testing.T) {
	provider := &memoryProvider{
		tracks: []model.Track{
			{LanguageCode: "en", BaseURL: "en-manual"},
			{LanguageCode: "id", Generated: true, BaseURL: "id-auto"},
		},
		cues: map[string][]model.Cue{
			"en-manual": {{Start: 0, Duration: 1, Text: "hello"}},
			"id-auto":   {{Start: 1.0, Duration: 2.5, Text: "a\nb "}},
		},
	}
	svc := transcript.NewService(provider, testLogger())

	act, err := svc.Fetch(context.Background(), transcript.FetchRequest{
		URL:      "https://youtu.be/dQw4w9WgXcQ",
		Language: model.Some("fr"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.Transcript{
		VideoID:      "dQw4w9WgXcQ",
		LanguageCode: "id",
		Generated:    true,
		Segments:     []model.Segment{{Index: 0, Start: 1.0, End: 3.5, Text: "a b"}},
	}, act)
}

func TestServiceFetchErrors(t *testing.T) {
	for _, tc := range []struct {
		name      string
		url       string
		provider  *memoryProvider
		expErr    error
		expCalls  int
		expTracks int
	}{
		{
			name:     "invalid url",
			url:      "not a url",
			provider: &memoryProvider{},
			expErr:   transcript.ErrInvalidInput,
		},
		{
			name:     "disabled",
			url:      "https://youtu.be/dQw4w9WgXcQ",
			provider: &memoryProvider{listErr: transcript.ErrTranscriptsDisabled},
			expErr:   transcript.ErrNoTranscriptAvailable,
			expCalls: 1,
		},
		{
			name:     "not found",
			url:      "https://youtu.be/dQw4w9WgXcQ",
			provider: &memoryProvider{listErr: fmt.Errorf("lookup: %w", transcript.ErrNoTranscriptFound)},
			expErr:   transcript.ErrNoTranscriptAvailable,
			expCalls: 1,
		},
		{
			name:     "empty track list",
			url:      "https://youtu.be/dQw4w9WgXcQ",
			provider: &memoryProvider{},
			expErr:   transcript.ErrNoTranscriptAvailable,
			expCalls: 1,
		},
		{
			name: "fetch disabled",
			url:  "https://youtu.be/dQw4w9WgXcQ",
			provider: &memoryProvider{
				tracks:   []model.Track{{LanguageCode: "en"}},
				fetchErr: transcript.ErrNoTranscriptFound,
			},
			expErr:    transcript.ErrNoTranscriptAvailable,
			expCalls:  1,
			expTracks: 1,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			svc := transcript.NewService(tc.provider, testLogger())
			_, err := svc.Fetch(context.Background(), transcript.FetchRequest{URL: tc.url})
			assert.ErrorIs(t, err, tc.expErr)
			assert.Equal(t, tc.expCalls, tc.provider.listCalls)
			assert.Len(t, tc.provider.fetched, tc.expTracks)
		})
	}
}

func TestServiceFetchProviderError(t *testing.T) {
	cause := errors.New(strings.Repeat("x", 300))
	provider := &memoryProvider{listErr: cause}
	svc := transcript.NewService(provider, testLogger())

	_, err := svc.Fetch(context.Background(), transcript.FetchRequest{URL: "https://youtu.be/dQw4w9WgXcQ"})
	var pErr *transcript.ProviderError
	require.ErrorAs(t, err, &pErr)
	assert.Len(t, pErr.Message, 120)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, provider.listCalls, "provider errors are not retried")
	assert.False(t, errors.Is(err, transcript.ErrNoTranscriptAvailable))
}

func TestNewProviderErrorShortMessage(t *testing.T) {
	err := transcript.NewProviderError(errors.New("timeout"))
	assert.Equal(t, "timeout", err.Message)
	assert.Equal(t, "transcript provider failed: timeout", err.Error())
}
