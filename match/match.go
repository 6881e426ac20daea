// Package match resolves which configuration arguments each discovered
// output should get, by searching the outputs' EDID blobs for hex-encoded
// identifier substrings.
package match

import (
	"encoding/hex"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/wejn/xrandr-by-edid/outputs"
)

// Spec pairs one user-supplied identifier (usually a monitor serial) with
// the xrandr arguments to apply to whichever output it matches.
type Spec struct {
	Serial string
	Args   []string
}

// Assignment is the resolved configuration for one output.
type Assignment struct {
	Output string

	// Serial that claimed this output; empty when the default applied.
	Serial string

	Args []string
}

// UnmatchedError reports serials that matched no output under strict mode.
type UnmatchedError struct {
	Serials []string
}

func (e *UnmatchedError) Error() string {
	return fmt.Sprintf("no output matched serials: %s", strings.Join(e.Serials, ", "))
}

// Encode returns the form a serial takes inside an EDID hex blob: each
// byte as its two-digit lowercase hex code, concatenated.
func Encode(serial string) string {
	return hex.EncodeToString([]byte(serial))
}

// Matcher assigns configuration arguments to discovered outputs.
type Matcher struct {
	// Specs are tried in order; the first one whose encoded serial is a
	// substring of an output's blob claims that output and leaves the
	// working set. No shortest/longest preference.
	Specs []Spec

	// Default is assigned to outputs no serial claims.
	Default []string

	// Strict makes Match fail when any serial remains unclaimed.
	Strict bool

	// Diagnose, when set, is called for every output no serial claimed.
	Diagnose func(o outputs.Output)
}

// Match resolves an assignment for every output, in the order given.
// Outputs without usable identity data (no EDID section, or an empty one)
// always get the default. Under strict mode, serials left unclaimed after
// all outputs are processed make the whole operation fail with an
// *UnmatchedError; no partial result is returned.
func (m *Matcher) Match(outs []outputs.Output) ([]Assignment, error) {
	claimed := make([]bool, len(m.Specs))
	assignments := make([]Assignment, 0, len(outs))

	for i := range outs {
		o := &outs[i]
		l := log.WithField("output", o.Name)

		idx := -1
		if blob := o.Identity(); blob != "" {
			for j, s := range m.Specs {
				if claimed[j] {
					continue
				}
				if strings.Contains(blob, Encode(s.Serial)) {
					idx = j
					break
				}
			}
		}

		if idx >= 0 {
			claimed[idx] = true
			l.WithField("serial", m.Specs[idx].Serial).Debug("serial matched output")
			assignments = append(assignments, Assignment{
				Output: o.Name,
				Serial: m.Specs[idx].Serial,
				Args:   m.Specs[idx].Args,
			})
			continue
		}

		l.Debug("no serial matched, assigning default")
		if m.Diagnose != nil {
			m.Diagnose(*o)
		}
		assignments = append(assignments, Assignment{
			Output: o.Name,
			Args:   m.Default,
		})
	}

	if m.Strict {
		var unmatched []string
		for j, s := range m.Specs {
			if !claimed[j] {
				unmatched = append(unmatched, s.Serial)
			}
		}
		if len(unmatched) > 0 {
			return nil, &UnmatchedError{Serials: unmatched}
		}
	}

	return assignments, nil
}
