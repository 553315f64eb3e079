package transcript

import (
	"regexp"

	"ewintr.nl/potongin/model"
)

var videoIDRE = regexp.MustCompile(`(?:v=|be/|embed/)([A-Za-z0-9_-]{11})`)

// ExtractVideoID finds the first YouTube id in url. The id is not checked
// against YouTube.
func ExtractVideoID(url string) (model.YoutubeVideoID, bool) {
	m := videoIDRE.FindStringSubmatch(url)
	if len(m) < 2 {
		return "", false
	}

	return model.YoutubeVideoID(m[1]), true
}

var plainIDRE = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ValidVideoID reports whether id has the shape of a YouTube video id.
func ValidVideoID(id model.YoutubeVideoID) bool {
	return plainIDRE.MatchString(string(id))
}
