package outputs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeometry(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "1920x1080+0+0", want: "1920x1080+0+0"},
		{name: "offsets", in: "1280x1024+1920+200", want: "1280x1024+1920+200"},
		{name: "listmonitors form", in: "1920/344x1080/194+0+0", want: "1920x1080+0+0"},
		{name: "no offsets", in: "800x600", want: "800x600+0+0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGeometry(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, g.String())
		})
	}
}

func TestNewGeometry_Invalid(t *testing.T) {
	for _, in := range []string{"", "bogus", "1920", "wxh+0+0", "1920x1080+z+0"} {
		t.Run(in, func(t *testing.T) {
			_, err := NewGeometry(in)
			assert.Error(t, err)
		})
	}
}
