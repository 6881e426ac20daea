package xrandr

import (
	"regexp"
	"strings"

	"github.com/wejn/xrandr-by-edid/outputs"
)

// ` 0: +*eDP-1 1920/344x1080/194+0+0  eDP-1`
var monitorRe = regexp.MustCompile(`^\s*\d+:\s+\S+\s+(\S+)\s+(\S+)\s*$`)

// Layout maps output names to their currently active geometry.
type Layout map[string]outputs.Geometry

// CurrentLayout asks `xrandr --listmonitors` for the active monitors. The
// boolean is false when the lookup is unusable; callers degrade to a
// placeholder instead of failing the run.
func CurrentLayout() (Layout, bool) {
	out, err := xrandrcmd("--listmonitors")
	if err != nil {
		return nil, false
	}
	return parseMonitors(string(out)), true
}

func parseMonitors(text string) Layout {
	l := Layout{}
	for _, line := range strings.Split(text, "\n") {
		m := monitorRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		g, err := outputs.NewGeometry(m[1])
		if err != nil {
			continue
		}
		l[m[2]] = *g
	}
	return l
}

// Describe renders the active geometry of the named output, or Unknown
// when the layout has no entry for it.
func (l Layout) Describe(name string) string {
	g, ok := l[name]
	if !ok {
		return outputs.Unknown
	}
	return g.String()
}
