// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"mime"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// allowed maps every accepted media type to the registry key of the
// decoder that handles it.
var allowed = map[string]string{
	"audio/mpeg":     "mp3",
	"audio/mp3":      "mp3",
	"audio/mpeg3":    "mp3",
	"audio/x-mpeg-3": "mp3",

	"audio/wav":      "wav",
	"audio/wave":     "wav",
	"audio/x-wav":    "wav",
	"audio/vnd.wave": "wav",

	"audio/ogg":       "ogg",
	"application/ogg": "ogg",
	"audio/vorbis":    "ogg",

	"audio/webm": "webm",

	"audio/flac":   "flac",
	"audio/x-flac": "flac",

	"audio/aiff":   "aiff",
	"audio/x-aiff": "aiff",
}

// AllowedTypes returns the accepted media types in sorted order.
func AllowedTypes() []string {
	out := make([]string, 0, len(allowed))
	for t := range allowed {
		out = append(out, t)
	}
	sort.Strings(out)

	return out
}

// Lookup normalises a declared media type and reports the format key it
// maps to. Parameters such as codecs=opus are dropped and the match is
// case-insensitive.
func Lookup(declared string) (mediaType, format string, ok bool) {
	mediaType = normalise(declared)
	format, ok = allowed[mediaType]
	return mediaType, format, ok
}

func normalise(declared string) string {
	declared = strings.TrimSpace(declared)
	if declared == "" {
		return ""
	}

	mt, _, err := mime.ParseMediaType(declared)
	if err != nil {
		// keep whatever precedes the parameters so "audio/ogg;" still matches
		mt, _, _ = strings.Cut(declared, ";")
	}
	return strings.ToLower(strings.TrimSpace(mt))
}

// sniff detects the content type and walks up the detected type's parents
// until one of them, or one of their aliases, is allowed.
func sniff(data []byte) (mediaType, format string, ok bool) {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if f, found := allowed[m.String()]; found {
			return m.String(), f, true
		}
		for _, t := range AllowedTypes() {
			if m.Is(t) {
				return t, allowed[t], true
			}
		}
	}
	return "", "", false
}

// needsSniff reports whether a declared type says nothing useful about the
// content.
func needsSniff(mediaType string) bool {
	return mediaType == "" || mediaType == "application/octet-stream"
}
