// Package xrandr talks to the X server through the xrandr command line
// tool: it fetches and parses the status dump, looks up the currently
// active layout, and applies composed output configurations.
package xrandr

import (
	"fmt"
	"os/exec"

	log "github.com/sirupsen/logrus"

	"github.com/wejn/xrandr-by-edid/match"
	"github.com/wejn/xrandr-by-edid/outputs"
)

// helper command, invokes xrandr
func xrandrcmd(args ...string) ([]byte, error) {
	out, err := exec.Command("xrandr", args...).Output()
	log := log.WithFields(log.Fields{
		"name": "xrandr",
		"args": args,
	})
	if err != nil {
		// keep this log statement, so we see the output somewhere.
		// callsites usually discard it without logging output.
		log.WithField("out", string(out)).Debug("failed running xrandr")
		return out, fmt.Errorf("failed running xrandr: %w", err)
	}
	log.Debug("ran xrandr")
	return out, nil
}

// Status invokes `xrandr --props` and returns the raw status dump.
func Status() (string, error) {
	out, err := xrandrcmd("--props")
	if err != nil {
		return "", fmt.Errorf("unable to fetch status dump: %w", err)
	}
	return string(out), nil
}

// Discover fetches the status dump and parses it into the list of
// discovered outputs.
func Discover() ([]outputs.Output, error) {
	raw, err := Status()
	if err != nil {
		return nil, err
	}
	return ParseStatus(raw), nil
}

// ComposeArgs renders the final xrandr argument list: the fixed prefix
// first, then `--output <name> <args...>` per assignment, in order.
func ComposeArgs(prefix []string, assignments []match.Assignment) []string {
	args := append([]string{}, prefix...)
	for _, a := range assignments {
		args = append(args, "--output", a.Output)
		args = append(args, a.Args...)
	}
	return args
}

// Apply invokes xrandr with the composed argument list. The returned error
// wraps the command's *exec.ExitError, so callers can propagate xrandr's
// own exit status.
func Apply(args []string) error {
	if _, err := xrandrcmd(args...); err != nil {
		return err
	}
	return nil
}
