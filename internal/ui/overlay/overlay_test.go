package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func plain(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

func TestPlace_Center(t *testing.T) {
	out := plain(Place(Config{Width: 5, Height: 3}, "XX\nXX", "AAAAA\nAAAAA\nAAAAA"))
	require.Equal(t, []string{"AXXAA", "AXXAA", "AAAAA"}, out)
}

func TestPlace_Bottom(t *testing.T) {
	out := plain(Place(Config{Width: 5, Height: 4, Position: Bottom, PadY: 1}, "XXX", "AAAAA\nAAAAA\nAAAAA\nAAAAA"))
	require.Equal(t, []string{"AAAAA", "AAAAA", "AXXXA", "AAAAA"}, out)
}

func TestPlace_BottomRight(t *testing.T) {
	out := plain(Place(Config{Width: 6, Height: 3, Position: BottomRight, PadX: 1}, "XX", "AAAAAA\nAAAAAA\nAAAAAA"))
	require.Equal(t, []string{"AAAAAA", "AAAAAA", "AAAXXA"}, out)
}

func TestPlace_PadsShortBackground(t *testing.T) {
	out := plain(Place(Config{Width: 4, Height: 3}, "X", "AB"))
	require.Len(t, out, 3)
	require.Equal(t, "AB", out[0])
	require.Equal(t, " X  ", out[1])
}

func TestPlace_ClipsWideForeground(t *testing.T) {
	out := plain(Place(Config{Width: 3, Height: 1}, "XXXXX", "AAA"))
	require.Equal(t, []string{"XXX"}, out)
}

func TestPlace_PreservesStyledBackground(t *testing.T) {
	bg := "\x1b[31mRRRRRR\x1b[0m"
	out := Place(Config{Width: 6, Height: 1}, "XX", bg)
	require.Equal(t, "RRXXRR", ansi.Strip(out))
	require.Contains(t, out, "\x1b[31m")
}
