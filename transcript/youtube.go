package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"ewintr.nl/potongin/model"
)

const (
	youtubeURL                    = "https://www.youtube.com"
	youtubeUserAgent              = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "
	maxWatchPageSize              = 6 * 1024 * 1024
	maxTimedTextSize              = 2 * 1024 * 1024
)

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
	Name         struct {
		SimpleText string `json:"simpleText"`
		Runs       []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"name"`
}

func (ct captionTrack) name() string {
	if ct.Name.SimpleText != "" {
		return ct.Name.SimpleText
	}
	var parts []string
	for _, r := range ct.Name.Runs {
		parts = append(parts, r.Text)
	}
	return strings.Join(parts, "")
}

type timedText struct {
	Lines []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Text  string `xml:",chardata"`
	} `xml:"text"`
}

type YoutubeInfo struct {
	BaseURL string
	Client  *http.Client
}

// Youtube reads the caption tracks that the watch page embeds in its player
// response and downloads the timedtext XML of a track.
type Youtube struct {
	baseURL string
	client  *http.Client
}

func NewYoutube(info YoutubeInfo) *Youtube {
	y := &Youtube{
		baseURL: strings.TrimSuffix(info.BaseURL, "/"),
		client:  info.Client,
	}
	if y.baseURL == "" {
		y.baseURL = youtubeURL
	}
	if y.client == nil {
		y.client = http.DefaultClient
	}

	return y
}

func (y *Youtube) ListTracks(ctx context.Context, videoID model.YoutubeVideoID) ([]model.Track, error) {
	body, err := y.get(ctx, y.baseURL+"/watch?v="+url.QueryEscape(string(videoID)), maxWatchPageSize)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}

	idx := bytes.Index(body, []byte(ytInitialPlayerResponseMarker))
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}

	var resp playerResponse
	if err := json.Unmarshal(jsonData, &resp); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	if resp.Captions == nil {
		if resp.PlayabilityStatus != nil && resp.PlayabilityStatus.Status != "OK" {
			return nil, fmt.Errorf("video %s is not playable: %s %s", videoID, resp.PlayabilityStatus.Status, resp.PlayabilityStatus.Reason)
		}
		return nil, ErrTranscriptsDisabled
	}

	cts := resp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(cts) == 0 {
		return nil, ErrNoTranscriptFound
	}

	tracks := make([]model.Track, 0, len(cts))
	for _, ct := range cts {
		tracks = append(tracks, model.Track{
			LanguageCode: ct.LanguageCode,
			Language:     ct.name(),
			Generated:    ct.Kind == "asr",
			BaseURL:      y.resolve(ct.BaseURL),
		})
	}

	return tracks, nil
}

func (y *Youtube) FetchCues(ctx context.Context, track model.Track) ([]model.Cue, error) {
	body, err := y.get(ctx, track.BaseURL, maxTimedTextSize)
	if err != nil {
		return nil, fmt.Errorf("timedtext: %w", err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	cues := make([]model.Cue, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		cues = append(cues, model.Cue{
			Start:    parseSeconds(line.Start),
			Duration: parseSeconds(line.Dur),
			Text:     html.UnescapeString(line.Text),
		})
	}

	return cues, nil
}

func (y *Youtube) get(ctx context.Context, u string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", youtubeUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, snippet)
	}

	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

func (y *Youtube) resolve(ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return y.baseURL + "/" + strings.TrimPrefix(ref, "/")
}

// parseSeconds reads a timedtext offset. Missing or broken values count as 0.
func parseSeconds(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

// extractJSON returns the JSON object that data starts with, or nil if the
// object is not terminated.
func extractJSON(data []byte) []byte {
	if len(data) == 0 || data[0] != '{' {
		return nil
	}

	depth := 0
	inString := false
	escaped := false
	for i, c := range data {
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return data[:i+1]
			}
		}
	}

	return nil
}
