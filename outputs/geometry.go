package outputs

import (
	"fmt"
	"strconv"
	"strings"
)

// Geometry is the active mode and position of an output, as xrandr reports
// it: WxH+X+Y.
type Geometry struct {
	Width  int64
	Height int64
	X      int64
	Y      int64
}

func (g *Geometry) String() string {
	return fmt.Sprintf("%vx%v+%v+%v", g.Width, g.Height, g.X, g.Y)
}

// NewGeometry parses a geometry string. Both the plain "1920x1080+0+0" form
// and the `xrandr --listmonitors` "1920/530x1080/300+0+0" form (with
// physical millimeter sizes) are accepted; offsets may be omitted.
func NewGeometry(s string) (*Geometry, error) {
	items := strings.SplitN(s, "+", 3)

	var x, y int64 = 0, 0
	if len(items) == 3 {
		var err error
		x, err = strconv.ParseInt(items[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse x offset: %w", err)
		}
		y, err = strconv.ParseInt(items[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse y offset: %w", err)
		}
	} else if len(items) != 1 {
		return nil, fmt.Errorf("invalid geometry: %v", s)
	}

	whItems := strings.SplitN(items[0], "x", 2)
	if len(whItems) != 2 {
		return nil, fmt.Errorf("invalid WxH geometry: %v", items[0])
	}

	w, err := strconv.ParseInt(stripMillimeters(whItems[0]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("unable to parse width as int: %w", err)
	}
	h, err := strconv.ParseInt(stripMillimeters(whItems[1]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("unable to parse height as int: %w", err)
	}

	return &Geometry{
		Width:  w,
		Height: h,
		X:      x,
		Y:      y,
	}, nil
}

// drop the "/530" millimeter part of a --listmonitors dimension
func stripMillimeters(s string) string {
	return strings.SplitN(s, "/", 2)[0]
}
