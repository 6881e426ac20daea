package outputs

import (
	"encoding/hex"
	"regexp"
	"strings"
)

// Unknown is the placeholder shown whenever identity data or layout data
// cannot be decoded or fetched.
const Unknown = "unknown"

var wordRe = regexp.MustCompile(`[0-9A-Za-z_-]{3,}`)

// Humanize renders an EDID hex blob as a best-effort human-readable string:
// printable ASCII runs of length >= 3 joined by single spaces. It is a
// display aid for diagnostics only, never used for matching. Anything that
// cannot be decoded comes back as Unknown.
func Humanize(blob string) string {
	raw, err := hex.DecodeString(blob)
	if err != nil {
		return Unknown
	}

	printable := make([]byte, len(raw))
	for i, b := range raw {
		if b >= 32 && b <= 126 {
			printable[i] = b
		} else {
			printable[i] = '.'
		}
	}

	words := wordRe.FindAllString(string(printable), -1)
	if len(words) == 0 {
		return Unknown
	}
	return strings.Join(words, " ")
}
