package term

import (
	"image/color"
	"strings"
	"testing"
)

func TestCanvas_SetSize(t *testing.T) {
	c := NewCanvas(10, 5, ThemeNight)
	c.SetSize(161, 97)
	if c.Cols != 81 || c.Rows != 25 {
		t.Errorf("expected 81x25 cells, got %dx%d", c.Cols, c.Rows)
	}
	for _, row := range c.Grid {
		for _, r := range row {
			if r != blank {
				t.Fatal("resized canvas not blank")
			}
		}
	}
}

func TestCanvas_FillCircle_SetsCentre(t *testing.T) {
	c := NewCanvas(10, 5, ThemeNight)
	c.FillCircle(3.2, 5.7, 0.1, color.White)

	// sub-pixel (3, 5) lands in cell (1, 1), right column of the second dot row
	want := blank | rune(pixelMap[1][1])
	if c.Grid[1][1] != want {
		t.Errorf("expected %U, got %U", want, c.Grid[1][1])
	}
	if _, inked := c.inkAt(1, 1); !inked {
		t.Error("expected cell to be inked")
	}
	if _, inked := c.inkAt(0, 0); inked {
		t.Error("unexpected ink in untouched cell")
	}
}

func TestCanvas_FillCircle_Radius(t *testing.T) {
	c := NewCanvas(10, 5, ThemeNight)
	c.FillCircle(8, 8, 2, color.White)

	dots := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for bits := r - blank; bits != 0; bits &= bits - 1 {
				dots++
			}
		}
	}
	if dots < 9 || dots > 16 {
		t.Errorf("expected a small disc, got %d dots", dots)
	}
}

func TestCanvas_OutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2, ThemeNight)
	c.FillCircle(-5, -5, 1, color.White)
	c.FillCircle(100, 100, 1, color.White)
	c.StrokeLine(-10, -10, -1, -1, 1, color.White)
	for _, row := range c.Grid {
		for _, r := range row {
			if r != blank {
				t.Fatal("out of bounds draw touched the canvas")
			}
		}
	}
}

func TestCanvas_BlendsTranslucentFill(t *testing.T) {
	theme := ThemeMinimal // black background
	c := NewCanvas(4, 4, theme)
	c.FillCircle(1, 1, 0.5, color.NRGBA{R: 255, G: 255, B: 255, A: 128})

	ink, _ := c.inkAt(0, 0)
	if ink.R < 0.45 || ink.R > 0.55 {
		t.Errorf("expected half blend over black, got R=%f", ink.R)
	}

	// a second draw in the same cell blends on top
	c.FillCircle(1, 1, 0.5, color.NRGBA{R: 255, G: 255, B: 255, A: 128})
	ink2, _ := c.inkAt(0, 0)
	if ink2.R <= ink.R {
		t.Errorf("expected brighter cell after second draw, got %f then %f", ink.R, ink2.R)
	}
}

func TestCanvas_StrokeLine(t *testing.T) {
	c := NewCanvas(10, 2, ThemeNight)
	c.StrokeLine(0, 0, 19, 0, 1, color.White)
	for col := 0; col < 10; col++ {
		if c.Grid[0][col]&rune(pixelMap[0][0]|pixelMap[0][1]) == 0 {
			t.Errorf("column %d not covered by line", col)
		}
	}
}

func TestCanvas_Clear(t *testing.T) {
	c := NewCanvas(4, 4, ThemeNight)
	c.FillCircle(2, 2, 1, color.White)
	c.Clear()
	if _, inked := c.inkAt(1, 0); inked {
		t.Error("ink survived Clear")
	}
	if c.Grid[0][1] != blank {
		t.Error("dots survived Clear")
	}
}

func TestCanvas_String(t *testing.T) {
	c := NewCanvas(6, 3, ThemeNight)
	c.FillCircle(1, 1, 0.5, color.White)
	out := c.String()
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("expected 3 lines, got %d newlines", got)
	}

	c.SetVisible(false)
	if c.String() != "" {
		t.Error("hidden canvas rendered output")
	}
}

func TestGetTheme(t *testing.T) {
	if GetTheme("sunset").Name != "sunset" {
		t.Error("expected sunset theme")
	}
	if GetTheme("nope").Name != ThemeNight.Name {
		t.Error("expected fallback to night")
	}
	if NextTheme(Themes[len(Themes)-1]).Name != Themes[0].Name {
		t.Error("expected NextTheme to wrap")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
}
