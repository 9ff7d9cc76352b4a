package draw

import (
	"bytes"
	"strings"
	"testing"
)

func countSet(c *Canvas) int {
	n := 0
	for _, p := range c.pixels {
		if p != ColorNone {
			n++
		}
	}
	return n
}

func TestDrawCircle(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		filled bool
		min    int
		max    int
	}{
		{"sub-pixel radius sets the centre", 0.2, true, 1, 1},
		{"zero radius sets the centre", 0, false, 1, 1},
		{"filled", 5, true, 60, 100},
		{"outline", 5, false, 20, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(40, 20)
			c.DrawCircle(Point{20, 20}, tt.radius, ColorRed, tt.filled)
			if got := countSet(c); got < tt.min || got > tt.max {
				t.Errorf("%d pixels set, want [%d, %d]", got, tt.min, tt.max)
			}
			if got := c.At(20, 20); got != ColorRed {
				t.Errorf("centre = %v, want red", got)
			}
		})
	}
}

func TestDrawCircleClipsAtEdges(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawCircle(Point{0, 0}, 30, ColorBlue, true)
	if got := countSet(c); got != 10*10 {
		t.Errorf("%d pixels set, want the whole canvas", got)
	}
}

func TestDrawRectFilled(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawRect(Point{10, 10}, Point{3, 3}, ColorGreen, true)
	for _, p := range []Point{{10, 10}, {8, 12}, {13, 7}} {
		if c.At(p.X, p.Y) != ColorGreen {
			t.Errorf("pixel %v not filled", p)
		}
	}
	if c.At(2, 2) != ColorNone {
		t.Error("pixel outside the rect was set")
	}
}

func TestScaledCanvas(t *testing.T) {
	c := NewScaledCanvas(48, 28, 384, 448)
	col, row := c.LogicalToTerminal(384, 448)
	if col != 49 || row != 29 {
		t.Errorf("LogicalToTerminal(far corner) = (%d, %d), want (49, 29)", col, row)
	}
	c.Set(192, 224, ColorWhite)
	if c.At(192, 224) != ColorWhite {
		t.Error("scaled Set and At disagree")
	}

	c.Resize(24, 14)
	if c.LogicalWidth() != 384 || c.LogicalHeight() != 448 {
		t.Errorf("logical size = %vx%v after resize", c.LogicalWidth(), c.LogicalHeight())
	}
}

func TestRenderOnlyChangedCells(t *testing.T) {
	c := NewCanvas(10, 5)
	var out bytes.Buffer

	c.Set(1, 1, ColorWhite)
	c.Set(5, 4, ColorRed)
	if n := c.Render(&out); n != 2 {
		t.Fatalf("first Render wrote %d cells, want 2", n)
	}

	out.Reset()
	if n := c.Render(&out); n != 0 || out.Len() != 0 {
		t.Fatalf("unchanged Render wrote %d cells (%q)", n, out.String())
	}

	c.Clear()
	c.Set(5, 4, ColorRed)
	out.Reset()
	if n := c.Render(&out); n != 1 {
		t.Fatalf("Render after erasing wrote %d cells, want 1", n)
	}
	if !strings.Contains(out.String(), "\033[1;2H ") {
		t.Errorf("erased cell not blanked: %q", out.String())
	}

	c.ForceRedraw()
	if n := c.Render(&bytes.Buffer{}); n != 1 {
		t.Errorf("forced Render wrote %d cells, want 1", n)
	}
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		cell   cell
		ch     rune
		fg, bg Color
	}{
		{cell{}, BlockEmpty, ColorNone, ColorNone},
		{cell{ColorRed, ColorRed}, BlockFull, ColorRed, ColorNone},
		{cell{ColorRed, ColorNone}, BlockUpperHalf, ColorRed, ColorNone},
		{cell{ColorNone, ColorBlue}, BlockLowerHalf, ColorBlue, ColorNone},
		{cell{ColorRed, ColorBlue}, BlockUpperHalf, ColorRed, ColorBlue},
	}

	for _, tt := range tests {
		ch, fg, bg := glyph(tt.cell)
		if ch != tt.ch || fg != tt.fg || bg != tt.bg {
			t.Errorf("glyph(%v) = %q %v %v, want %q %v %v", tt.cell, ch, fg, bg, tt.ch, tt.fg, tt.bg)
		}
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 3)
	cw.WriteAt(1, 1, "hi")
	cw.WriteString(strings.Repeat("x", 3*maxChunkSize))
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "\033[4;3Hhi") {
		t.Errorf("offset not applied: %q", out.String()[:12])
	}
	if cw.Len() != 0 {
		t.Errorf("Len() = %d after Flush", cw.Len())
	}
}
