package xrandr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus_EDIDAndDisconnected(t *testing.T) {
	dump := "Screen 0: minimum 320 x 200, current 3840 x 1080, maximum 16384 x 16384\n" +
		"HDMI-1 connected 1920x1080+0+0 (normal left inverted right x axis y axis) 530mm x 300mm\n" +
		"\tEDID:\n" +
		"\t\t00ff00ff\n" +
		"\t\t41424331\n" +
		"DP-1 disconnected (normal left inverted right x axis y axis)\n"

	outs := ParseStatus(dump)
	require.Len(t, outs, 2)

	assert.Equal(t, "HDMI-1", outs[0].Name)
	require.NotNil(t, outs[0].Screen)
	assert.Equal(t, 0, *outs[0].Screen)
	assert.Equal(t, "00ff00ff41424331", outs[0].Identity())

	assert.Equal(t, "DP-1", outs[1].Name)
	assert.Nil(t, outs[1].EDID)
	assert.Equal(t, "", outs[1].Identity())
}

func TestParseStatus_OneOutputPerHeader(t *testing.T) {
	dump := "Screen 0: stuff\n" +
		"HDMI-1 connected primary\n" +
		"DP-1 disconnected\n" +
		"DP-2 unknown connection\n"

	outs := ParseStatus(dump)
	require.Len(t, outs, 3)
	assert.Equal(t, "HDMI-1", outs[0].Name)
	assert.Equal(t, "DP-1", outs[1].Name)
	assert.Equal(t, "DP-2", outs[2].Name)
}

func TestParseStatus_ScreenIndexes(t *testing.T) {
	dump := "VGA-1 connected\n" +
		"Screen 0: stuff\n" +
		"HDMI-1 connected\n" +
		"DP-1 disconnected\n" +
		"Screen 1: stuff\n" +
		"DP-2 connected\n"

	outs := ParseStatus(dump)
	require.Len(t, outs, 4)

	// before any screen header
	assert.Nil(t, outs[0].Screen)

	require.NotNil(t, outs[1].Screen)
	assert.Equal(t, 0, *outs[1].Screen)
	require.NotNil(t, outs[2].Screen)
	assert.Equal(t, 0, *outs[2].Screen)
	require.NotNil(t, outs[3].Screen)
	assert.Equal(t, 1, *outs[3].Screen)
}

func TestParseStatus_BlockTerminatorIsReprocessed(t *testing.T) {
	// the line ending the hex block is itself an output header and must
	// not be swallowed
	dump := "HDMI-1 connected\n" +
		"\tEDID:\n" +
		"\t\t00ffffff\n" +
		"DP-1 connected\n" +
		"\tEDID:\n" +
		"\t\t41424344\n"

	outs := ParseStatus(dump)
	require.Len(t, outs, 2)
	assert.Equal(t, "00ffffff", outs[0].Identity())
	assert.Equal(t, "41424344", outs[1].Identity())
}

func TestParseStatus_BlockTerminatorIsScreenHeader(t *testing.T) {
	dump := "Screen 0: stuff\n" +
		"HDMI-1 connected\n" +
		"\tEDID:\n" +
		"\t\t00ffffff\n" +
		"Screen 1: stuff\n" +
		"DP-1 connected\n"

	outs := ParseStatus(dump)
	require.Len(t, outs, 2)
	assert.Equal(t, "00ffffff", outs[0].Identity())
	require.NotNil(t, outs[1].Screen)
	assert.Equal(t, 1, *outs[1].Screen)
}

func TestParseStatus_EmptyEDIDBlock(t *testing.T) {
	dump := "HDMI-1 connected\n" +
		"\tEDID:\n" +
		"\tBrightness: 1.0\n"

	outs := ParseStatus(dump)
	require.Len(t, outs, 1)

	// present but empty, distinguishable from "no EDID section seen"
	require.NotNil(t, outs[0].EDID)
	assert.Equal(t, "", outs[0].Identity())
}

func TestParseStatus_NonLowercaseHexEndsBlock(t *testing.T) {
	dump := "HDMI-1 connected\n" +
		"\tEDID:\n" +
		"\t\t00ffffff\n" +
		"\t\t00FFFFFF\n" +
		"\t\t41424344\n"

	outs := ParseStatus(dump)
	require.Len(t, outs, 1)
	assert.Equal(t, "00ffffff", outs[0].Identity())
}

func TestParseStatus_NoiseBetweenRecords(t *testing.T) {
	dump := "garbage that matches nothing\n" +
		"Screen 0: stuff\n" +
		"  more: garbage (here)\n" +
		"HDMI-1 connected 1920x1080+0+0\n" +
		"\tBrightness: 1.0\n" +
		"\tEDID:\n" +
		"\t\tdeadbeef\n" +
		"\tnon-desktop: 0\n" +
		"DP-1 disconnected\n" +
		"trailing noise\n"

	outs := ParseStatus(dump)
	require.Len(t, outs, 2)
	assert.Equal(t, "deadbeef", outs[0].Identity())
	assert.Equal(t, "DP-1", outs[1].Name)
}

func TestParseStatus_Empty(t *testing.T) {
	assert.Empty(t, ParseStatus(""))
}
