package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeCentered(t *testing.T) {
	bg := strings.Join([]string{"aaaaaaaaaa", "bbbbbbbbbb", "cccccccccc", "dddddddddd", "eeeeeeeeee"}, "\n")
	got := strings.Split(Compose(bg, 10, 5, "XX\nYY", Centered), "\n")

	want := []string{"aaaaaaaaaa", "bbbbXX", "ccccYY", "dddddddddd", "eeeeeeeeee"}
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i], strings.TrimRight(got[i], " "), "row %d", i)
	}
}

func TestComposePadsAndPlacesTopLeft(t *testing.T) {
	got := strings.Split(Compose("hi", 6, 3, "box", Placement{Horizontal: lipgloss.Left, Vertical: lipgloss.Top, MarginX: 1, MarginY: 1}), "\n")
	require.Len(t, got, 3)
	assert.Equal(t, "hi    ", got[0])
	assert.Equal(t, " box", strings.TrimRight(got[1], " "))
}

func TestComposeWithoutForeground(t *testing.T) {
	assert.Equal(t, "a \nb ", Compose("a\nb", 2, 2, "", Centered))
}
