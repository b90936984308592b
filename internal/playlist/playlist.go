// Package playlist synthesizes shareable playlist descriptors from music
// recommendations. The descriptor is a deterministic local artifact shaped
// like an external playlist link; no playlist service is called.
package playlist

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// Namespace prefixes every synthesized playlist id.
	Namespace = "listoria_"

	urlTemplate = "https://open.spotify.com/playlist/"
	maxTracks   = 20
)

var title = cases.Title(language.Turkish)

// Descriptor is the synthesized playlist. Demo is always true; the URL is
// a plausible external link derived from the id, not a live resource.
type Descriptor struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Tracks      []string `json:"tracks"`
	Description string   `json:"description,omitempty"`
	Demo        bool     `json:"demo"`
}

// Synthesize builds a descriptor for the given tracks. The id is the first
// 8 hex digits of the md5 of the concatenated track list under the
// namespace prefix, so the same tracks always produce the same playlist.
// Degenerate input falls back to a fixed demo descriptor; Synthesize never
// fails.
func Synthesize(tracks []string, genre string) *Descriptor {
	if len(tracks) == 0 {
		return demoDescriptor(tracks)
	}

	sum := md5.Sum([]byte(strings.Join(tracks, "")))
	id := Namespace + hex.EncodeToString(sum[:])[:8]

	label := "Karışık"
	if genre != "" && genre != "hepsi" {
		label = title.String(genre)
	}
	if len(tracks) > maxTracks {
		tracks = tracks[:maxTracks]
	}

	return &Descriptor{
		ID:          id,
		Name:        "Listoria - " + label + " Playlist",
		URL:         urlTemplate + id,
		Tracks:      tracks,
		Description: "Listoria tarafından oluşturulan playlist",
		Demo:        true,
	}
}

func demoDescriptor(tracks []string) *Descriptor {
	if len(tracks) > 10 {
		tracks = tracks[:10]
	}
	return &Descriptor{
		ID:     "demo_playlist",
		Name:   "Listoria Demo Playlist",
		URL:    urlTemplate + "demo",
		Tracks: tracks,
		Demo:   true,
	}
}
