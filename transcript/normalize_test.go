package transcript_test

import (
	"testing"

	"ewintr.nl/potongin/model"
	"ewintr.nl/potongin/transcript"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	for _, tc := range []struct {
		name string
		cues []model.Cue
		exp  []model.Segment
	}{
		{
			name: "empty",
			cues: []model.Cue{},
			exp:  []model.Segment{},
		},
		{
			name: "newline and trailing space",
			cues: []model.Cue{{Start: 1.0, Duration: 2.5, Text: "a\nb "}},
			exp:  []model.Segment{{Index: 0, Start: 1.0, End: 3.5, Text: "a b"}},
		},
		{
			name: "keeps empty and zero length cues",
			cues: []model.Cue{
				{Start: 0, Duration: 1, Text: "  hello\n"},
				{Start: 1, Duration: 0, Text: ""},
				{Text: "\n"},
			},
			exp: []model.Segment{
				{Index: 0, Start: 0, End: 1, Text: "hello"},
				{Index: 1, Start: 1, End: 1, Text: ""},
				{Index: 2, Start: 0, End: 0, Text: ""},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.exp, transcript.Normalize(tc.cues))
		})
	}
}

func TestNormalizeOrderAndIdempotence(t *testing.T) {
	cues := make([]model.Cue, 0, 50)
	for i := 0; i < 50; i++ {
		cues = append(cues, model.Cue{Start: float64(50 - i), Duration: 0.5, Text: "line\nbreak"})
	}

	first := transcript.Normalize(cues)
	second := transcript.Normalize(cues)
	assert.Equal(t, first, second)
	assert.Len(t, first, len(cues))
	for i, seg := range first {
		assert.Equal(t, i, seg.Index)
		assert.Equal(t, cues[i].Start, seg.Start)
		assert.GreaterOrEqual(t, seg.End, seg.Start)
		assert.Equal(t, "line break", seg.Text)
	}
}
