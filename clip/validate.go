package clip

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"ewintr.nl/potongin/model"
	"ewintr.nl/potongin/transcript"
)

var (
	ErrInvalidRange   = fmt.Errorf("%w: clip end must be after start", transcript.ErrInvalidInput)
	ErrEmptyQuery     = fmt.Errorf("%w: empty search query", transcript.ErrInvalidInput)
	ErrSearchDisabled = errors.New("clip search is not configured")
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// Validate checks a time range before a clip is built from it.
func Validate(start, end float64) error {
	if end <= start {
		return ErrInvalidRange
	}

	return nil
}

func validateRequest(req CreateRequest) error {
	if !transcript.ValidVideoID(req.VideoID) {
		return fmt.Errorf("%w: malformed video id %q", transcript.ErrInvalidInput, req.VideoID)
	}
	if math.IsNaN(req.Start) || math.IsInf(req.Start, 0) || math.IsNaN(req.End) || math.IsInf(req.End, 0) {
		return fmt.Errorf("%w: clip range must be finite", transcript.ErrInvalidInput)
	}
	if req.Start < 0 {
		return fmt.Errorf("%w: negative start %v", transcript.ErrInvalidInput, req.Start)
	}

	return Validate(req.Start, req.End)
}

// ShareURL deep links into the video at the whole second the clip starts.
func ShareURL(videoID model.YoutubeVideoID, start float64) string {
	return "https://youtu.be/" + string(videoID) + "?t=" + strconv.FormatFloat(math.Trunc(start), 'f', 0, 64)
}
