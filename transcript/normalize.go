package transcript

import (
	"strings"

	"ewintr.nl/potongin/model"
)

// Normalize turns raw cues into indexed segments. Nothing is dropped, empty
// and zero length cues are kept.
func Normalize(cues []model.Cue) []model.Segment {
	segments := make([]model.Segment, 0, len(cues))
	for i, cue := range cues {
		segments = append(segments, model.Segment{
			Index: i,
			Start: cue.Start,
			End:   cue.Start + cue.Duration,
			Text:  strings.TrimSpace(strings.ReplaceAll(cue.Text, "\n", " ")),
		})
	}

	return segments
}
