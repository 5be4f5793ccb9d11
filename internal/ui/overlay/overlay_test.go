package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceCenter(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA"
	fg := "XX\nXX"

	result := Place(Config{Width: 5, Height: 3, Position: Center}, fg, bg)

	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], "XX")
}

func TestPlacePreservesBackgroundOnSides(t *testing.T) {
	bg := "ABCDE\nFGHIJ\nKLMNO"
	fg := "X"

	result := Place(Config{Width: 5, Height: 3, Position: Center}, fg, bg)

	lines := strings.Split(result, "\n")
	assert.Equal(t, "FGXIJ", lines[1])
}

func TestPlaceBottomWithPadding(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA\nAAAAA\nAAAAA"
	fg := "XX"

	result := Place(Config{Width: 5, Height: 5, Position: Bottom, PadY: 1}, fg, bg)

	lines := strings.Split(result, "\n")
	assert.Equal(t, "AAAAA", lines[4])
	assert.Contains(t, lines[3], "XX")
}

func TestPlaceTopRight(t *testing.T) {
	bg := "AAAAAAAA\nAAAAAAAA\nAAAAAAAA"
	fg := "XX"

	result := Place(Config{Width: 8, Height: 3, Position: TopRight, PadX: 1, PadY: 0}, fg, bg)

	lines := strings.Split(result, "\n")
	assert.Equal(t, "AAAAAXXA", lines[0])
	assert.Equal(t, "AAAAAAAA", lines[1])
}

func TestPlacePadsShortBackground(t *testing.T) {
	result := Place(Config{Width: 5, Height: 3, Position: Center}, "XX\nXX", "")

	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 3)
}

func TestPlacePreservesANSI(t *testing.T) {
	bg := "\x1b[31mRED\x1b[0m\n\x1b[31mRED\x1b[0m\n\x1b[31mRED\x1b[0m"

	result := Place(Config{Width: 3, Height: 3, Position: Center}, "X", bg)

	assert.Contains(t, result, "\x1b[31m")
}

func TestAnchorClampsNegative(t *testing.T) {
	x, y := anchor(Config{Width: 5, Height: 5, Position: Center}, 10, 10)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestAnchorBottom(t *testing.T) {
	x, y := anchor(Config{Width: 10, Height: 10, Position: Bottom, PadY: 1}, 4, 2)
	assert.Equal(t, 3, x)
	assert.Equal(t, 7, y)
}
