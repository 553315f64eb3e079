package transcript_test

import (
	"testing"

	"ewintr.nl/potongin/model"
	"ewintr.nl/potongin/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manual(code string) model.Track {
	return model.Track{LanguageCode: code}
}

func auto(code string) model.Track {
	return model.Track{LanguageCode: code, Generated: true}
}

func TestSelect(t *testing.T) {
	for _, tc := range []struct {
		name      string
		requested model.Optional[string]
		available []model.Track
		exp       model.Track
	}{
		{
			name:      "requested manual",
			requested: model.Some("fr"),
			available: []model.Track{auto("fr"), manual("fr"), manual("id")},
			exp:       manual("fr"),
		},
		{
			name:      "requested generated",
			requested: model.Some("fr"),
			available: []model.Track{manual("id"), auto("fr")},
			exp:       auto("fr"),
		},
		{
			name:      "requested missing falls through to preferred",
			requested: model.Some("fr"),
			available: []model.Track{manual("en"), auto("id")},
			exp:       auto("id"),
		},
		{
			name:      "no request prefers id",
			available: []model.Track{manual("en"), manual("id")},
			exp:       manual("id"),
		},
		{
			name:      "manual id before generated id",
			available: []model.Track{auto("id"), manual("id")},
			exp:       manual("id"),
		},
		{
			name:      "en when no id",
			available: []model.Track{auto("de"), auto("en")},
			exp:       auto("en"),
		},
		{
			name:      "any remaining track",
			available: []model.Track{auto("ko"), manual("ja")},
			exp:       manual("ja"),
		},
		{
			name:      "empty requested language is a language",
			requested: model.Some(""),
			available: []model.Track{auto("en")},
			exp:       auto("en"),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			act, err := transcript.Select(tc.requested, tc.available)
			require.NoError(t, err)
			assert.Equal(t, tc.exp, act)
		})
	}
}

func TestSelectEmpty(t *testing.T) {
	_, err := transcript.Select(model.Some("en"), nil)
	assert.ErrorIs(t, err, transcript.ErrNoTranscriptAvailable)
}

func TestSelectIgnoresArrivalOrder(t *testing.T) {
	a := []model.Track{auto("ko"), manual("ja"), auto("ja"), manual("de")}
	b := []model.Track{auto("ja"), manual("de"), auto("ko"), manual("ja")}

	actA, err := transcript.Select(model.None[string](), a)
	require.NoError(t, err)
	actB, err := transcript.Select(model.None[string](), b)
	require.NoError(t, err)
	assert.Equal(t, actA, actB)
	assert.Equal(t, manual("de"), actA)
}

func TestSelectDoesNotReorderInput(t *testing.T) {
	available := []model.Track{auto("ko"), manual("de")}
	_, err := transcript.Select(model.None[string](), available)
	require.NoError(t, err)
	assert.Equal(t, []model.Track{auto("ko"), manual("de")}, available)
}
