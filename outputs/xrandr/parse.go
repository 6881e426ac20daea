package xrandr

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wejn/xrandr-by-edid/outputs"
)

var (
	screenRe    = regexp.MustCompile(`^Screen\s+(\d+):`)
	outputRe    = regexp.MustCompile(`^(\S+)\s+((dis)?connected|unknown connection)`)
	edidStartRe = regexp.MustCompile(`^\s*EDID:\s*$`)
	hexRe       = regexp.MustCompile(`^\s*([0-9a-f]+)\s*$`)
)

// ParseStatus converts the text emitted by `xrandr --props` into the list
// of discovered outputs, in dump order.
//
// The scan is a single forward pass with two states. In the normal state,
// a screen header updates the current screen index, an output header
// finalizes the in-progress output and starts a new one, and an "EDID:"
// property label switches to collecting. While collecting, hex-digit lines
// accumulate into the current output's identity blob; the first line that
// is not pure hex ends the block and is reprocessed under normal rules, so
// a blob terminated by the next output header doesn't swallow that header.
// Anything else is property noise and is ignored.
func ParseStatus(text string) []outputs.Output {
	var (
		found      []outputs.Output
		current    *outputs.Output
		screen     *int
		collecting bool
	)

	finalize := func() {
		if current != nil {
			found = append(found, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if collecting {
			if m := hexRe.FindStringSubmatch(line); m != nil {
				if current != nil && current.EDID != nil {
					*current.EDID += m[1]
				}
				continue
			}
			collecting = false
			// fall through and reprocess the terminating line
		}

		if m := screenRe.FindStringSubmatch(line); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				idx := n
				screen = &idx
			}
			continue
		}
		if m := outputRe.FindStringSubmatch(line); m != nil {
			finalize()
			current = &outputs.Output{Name: m[1], Screen: screen}
			continue
		}
		if edidStartRe.MatchString(line) {
			collecting = true
			if current != nil && current.EDID == nil {
				blob := ""
				current.EDID = &blob
			}
			continue
		}
	}
	finalize()

	return found
}
