package outputs

// Output describes a physical connector discovered in an xrandr status dump.
type Output struct {
	// Connector name, e.g. "HDMI-1".
	Name string

	// Index of the X screen whose header most recently preceded this
	// output in the dump, or nil if none did.
	Screen *int

	// EDID is the concatenated hex-digit string captured from the
	// output's EDID property block. nil when no EDID section was seen;
	// non-nil but empty when the section carried no hex lines.
	EDID *string
}

// Identity returns the output's EDID hex blob. Both an absent and an empty
// EDID section count as "no usable identity data" and yield "".
func (o *Output) Identity() string {
	if o.EDID == nil {
		return ""
	}
	return *o.EDID
}
