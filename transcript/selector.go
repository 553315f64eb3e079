package transcript

import (
	"sort"

	"ewintr.nl/potongin/model"
)

// PreferredLanguages are tried, in order, when the requested language is
// absent or not available.
var PreferredLanguages = []string{"id", "en"}

type attempt struct {
	languageCode string
	manualOnly   bool
}

func (a attempt) matches(t model.Track) bool {
	if t.LanguageCode != a.languageCode {
		return false
	}
	return !a.manualOnly || !t.Generated
}

func attempts(requested model.Optional[string]) []attempt {
	var codes []string
	if lang, ok := requested.Get(); ok {
		codes = append(codes, lang)
	}
	codes = append(codes, PreferredLanguages...)

	list := make([]attempt, 0, 2*len(codes))
	for _, code := range codes {
		list = append(list,
			attempt{languageCode: code, manualOnly: true},
			attempt{languageCode: code},
		)
	}

	return list
}

// Select picks exactly one track out of available. Manual tracks win over
// generated ones within a language, the requested language wins over the
// preferred languages and if nothing matches the first track in language
// code order is used.
func Select(requested model.Optional[string], available []model.Track) (model.Track, error) {
	if len(available) == 0 {
		return model.Track{}, ErrNoTranscriptAvailable
	}

	tracks := make([]model.Track, len(available))
	copy(tracks, available)
	sort.SliceStable(tracks, func(i, j int) bool {
		if tracks[i].LanguageCode != tracks[j].LanguageCode {
			return tracks[i].LanguageCode < tracks[j].LanguageCode
		}
		return !tracks[i].Generated && tracks[j].Generated
	})

	for _, a := range attempts(requested) {
		for _, t := range tracks {
			if a.matches(t) {
				return t, nil
			}
		}
	}

	return tracks[0], nil
}
