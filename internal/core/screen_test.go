package core

import (
	"strings"
	"testing"
)

// rowText reads one screen row back as plain text.
func rowText(s *Screen, y int) string {
	var sb strings.Builder
	for x := 0; x < s.Width(); x++ {
		sb.WriteRune(s.GetCell(x, y).Rune)
	}
	return sb.String()
}

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)

	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("NewScreen(12, 4) is %dx%d", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawTextWithColor(1, 1, "ab", ColorRed)
	s.SetWithColor(5, 1, '●', ColorBlue)

	if c := s.GetCell(1, 1); c.Rune != 'a' || c.Color != ColorRed {
		t.Errorf("GetCell(1, 1) = %+v, expected red 'a'", c)
	}
	if c := s.GetCell(5, 1); c.Rune != '●' || c.Color != ColorBlue {
		t.Errorf("GetCell(5, 1) = %+v, expected blue '●'", c)
	}
	if c := s.GetCell(-1, 0); c != blankCell {
		t.Errorf("Out of bounds GetCell = %+v, expected blank", c)
	}

	// Plain Set resets the color
	s.Set(1, 1, 'z')
	if c := s.GetCell(1, 1); c.Color != ColorDefault {
		t.Errorf("Set should clear color, got %v", c.Color)
	}

	s.Clear()
	if c := s.GetCell(5, 1); c != blankCell {
		t.Errorf("Clear should reset colors, got %+v", c)
	}
}

func TestScreenTextClipping(t *testing.T) {
	s := NewScreen(6, 2)
	s.DrawText(-2, 0, "Score: 12")
	s.DrawText(4, 1, "Moves")
	s.DrawText(0, 5, "off screen")

	if got := rowText(s, 0); got != "ore: 1" {
		t.Errorf("row 0 = %q, expected %q", got, "ore: 1")
	}
	if got := rowText(s, 1); got != "    Mo" {
		t.Errorf("row 1 = %q, expected %q", got, "    Mo")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawTextCentered(1, "Window too small")

	if got := rowText(s, 1); got != "  Window too small  " {
		t.Errorf("centered row = %q", got)
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(6, 1)
	s.DrawText(0, 0, "●●x")

	if got := s.GetCell(2, 0).Rune; got != 'x' {
		t.Errorf("multibyte runes should take one cell each, row = %q", rowText(s, 0))
	}
}

func TestScreenOverlayBox(t *testing.T) {
	s := NewScreen(8, 5)
	for y := 0; y < 5; y++ {
		s.DrawText(0, y, "........")
	}

	box := NewRect(1, 1, 6, 3)
	s.DrawRect(box, ' ')
	s.DrawBox(box)

	expected := []string{
		"........",
		".┌────┐.",
		".│    │.",
		".└────┘.",
		"........",
	}
	for y, want := range expected {
		if got := rowText(s, y); got != want {
			t.Errorf("row %d = %q, expected %q", y, got, want)
		}
	}
}

func TestScreenBoardFrameColor(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBoxWithColor(NewRect(0, 0, 6, 4), ColorGray)

	for _, p := range []Point{{0, 0}, {5, 0}, {0, 3}, {5, 3}, {2, 0}, {0, 2}} {
		if c := s.GetCell(p.X, p.Y); c.Color != ColorGray {
			t.Errorf("frame cell %v color = %v, expected gray", p, c.Color)
		}
	}
	if c := s.GetCell(2, 2); c != blankCell {
		t.Errorf("inside of frame = %+v, expected blank", c)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "[●]")
	s.DrawText(1, 1, "o")

	if got := s.String(); got != "[●]\n o " {
		t.Errorf("String() = %q", got)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 6)
	s.DrawTextWithColor(0, 0, "Score", ColorYellow)
	s.DrawText(0, 5, "Controls")

	s.Resize(4, 3)
	if s.Width() != 4 || s.Height() != 3 {
		t.Fatalf("after shrink, dimensions = %dx%d, expected 4x3", s.Width(), s.Height())
	}
	if got := rowText(s, 0); got != "Scor" {
		t.Errorf("row 0 after shrink = %q, expected %q", got, "Scor")
	}

	s.Resize(12, 6)
	if got := rowText(s, 0); got != "Scor        " {
		t.Errorf("row 0 after grow = %q", got)
	}
	if c := s.GetCell(0, 0); c.Color != ColorYellow {
		t.Errorf("resize should keep colors, got %v", c.Color)
	}
	if got := rowText(s, 5); got != strings.Repeat(" ", 12) {
		t.Errorf("rows cut by the shrink should come back blank, got %q", got)
	}

	s.Resize(12, 6)
	if got := rowText(s, 0); got != "Scor        " {
		t.Errorf("same-size resize changed content: %q", got)
	}
}
