package player

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

type Example struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

const sampleBucket = "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/"

var Examples = []Example{
	{Name: "Sintel", URL: sampleBucket + "Sintel.mp4"},
	{Name: "Big Buck Bunny", URL: sampleBucket + "BigBuckBunny.mp4"},
	{Name: "Tears of Steel", URL: sampleBucket + "TearsOfSteel.mp4"},
}

// DefaultURL is loaded when nothing else is requested
var DefaultURL = Examples[1].URL

type exampleSource []Example

func (e exampleSource) String(i int) string { return e[i].Name }
func (e exampleSource) Len() int            { return len(e) }

// FindExample resolves an example by fuzzy name match. An exact (case-insensitive)
// name wins over the best fuzzy score.
func FindExample(query string) (Example, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return Example{}, fmt.Errorf("empty example name")
	}
	for _, ex := range Examples {
		if strings.EqualFold(ex.Name, q) {
			return ex, nil
		}
	}
	matches := fuzzy.FindFrom(q, exampleSource(Examples))
	if len(matches) == 0 {
		return Example{}, fmt.Errorf("no example matches %q", query)
	}
	return Examples[matches[0].Index], nil
}
