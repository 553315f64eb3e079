package transcript_test

import (
	"testing"

	"ewintr.nl/potongin/model"
	"ewintr.nl/potongin/transcript"
	"github.com/stretchr/testify/assert"
)

func TestExtractVideoID(t *testing.T) {
	for _, tc := range []struct {
		name  string
		url   string
		exp   model.YoutubeVideoID
		expOk bool
	}{
		{name: "short link", url: "https://youtu.be/dQw4w9WgXcQ", exp: "dQw4w9WgXcQ", expOk: true},
		{name: "watch", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42", exp: "dQw4w9WgXcQ", expOk: true},
		{name: "embed", url: "https://www.youtube.com/embed/a-b_c123XYZ", exp: "a-b_c123XYZ", expOk: true},
		{name: "first marker wins", url: "https://youtu.be/AAAAAAAAAAA?v=BBBBBBBBBBB", exp: "AAAAAAAAAAA", expOk: true},
		{name: "not a url", url: "not a url"},
		{name: "too short", url: "https://youtu.be/abc"},
		{name: "empty", url: ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			act, ok := transcript.ExtractVideoID(tc.url)
			assert.Equal(t, tc.expOk, ok)
			assert.Equal(t, tc.exp, act)
		})
	}
}

func TestValidVideoID(t *testing.T) {
	assert.True(t, transcript.ValidVideoID("dQw4w9WgXcQ"))
	assert.False(t, transcript.ValidVideoID("dQw4w9WgXc"))
	assert.False(t, transcript.ValidVideoID("dQw4w9WgXc!"))
	assert.False(t, transcript.ValidVideoID(""))
}
