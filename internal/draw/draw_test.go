package draw

import (
	"bytes"
	"strings"
	"testing"
)

func render(t *testing.T, c *Canvas) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestHalfBlocks(t *testing.T) {
	tests := []struct {
		name   string
		plots  [][2]float64
		wantCh rune
	}{
		{"top pixel", [][2]float64{{0, 0}}, BlockUpperHalf},
		{"bottom pixel", [][2]float64{{0, 10}}, BlockLowerHalf},
		{"both pixels", [][2]float64{{0, 0}, {0, 10}}, BlockFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(10, 5, 100, 100) // one sub-pixel per 10 world units
			for _, p := range tt.plots {
				c.Plot(p[0], p[1], ColorCyan)
			}
			out := render(t, c)
			want := "\033[1;1H" + ColorBrightCyan + string(tt.wantCh)
			if !strings.Contains(out, want) {
				t.Errorf("render output %q does not contain %q", out, want)
			}
			if !strings.HasSuffix(out, ColorReset) {
				t.Error("render should reset the color at the end")
			}
		})
	}
}

func TestRenderOnlyEmitsChanges(t *testing.T) {
	c := NewCanvas(10, 5, 100, 100)
	c.Plot(50, 50, ColorWhite)
	render(t, c)

	if out := render(t, c); out != "" {
		t.Errorf("unchanged frame rendered %q", out)
	}

	c.Clear()
	if out := render(t, c); out != "\033[3;6H " {
		t.Errorf("cleared pixel rendered %q, want a blank at row 3 col 6", out)
	}

	c.ForceRedraw()
	if n := strings.Count(render(t, c), "\033["); n != 50 {
		t.Errorf("forced redraw emitted %d cells, want 50", n)
	}
}

func TestMarkTextDirty(t *testing.T) {
	c := NewCanvas(10, 5, 100, 100)
	render(t, c)

	c.MarkTextDirty(2, 1, 3)
	out := render(t, c)
	for _, pos := range []string{"\033[1;2H", "\033[1;3H", "\033[1;4H"} {
		if !strings.Contains(out, pos) {
			t.Errorf("dirty cell %q not repainted in %q", pos, out)
		}
	}
	if strings.Contains(out, "\033[1;5H") || strings.Contains(out, "\033[1;1H") {
		t.Errorf("clean cells repainted: %q", out)
	}
}

func TestRenderAppliesOffset(t *testing.T) {
	c := NewCanvas(10, 5, 100, 100)
	c.SetOffset(4, 2)
	c.Plot(0, 0, ColorWhite)
	if out := render(t, c); !strings.Contains(out, "\033[3;5H") {
		t.Errorf("offset not applied: %q", out)
	}
}

func TestFillShapes(t *testing.T) {
	c := NewCanvas(20, 10, 20, 20) // 1:1 world to sub-pixel
	c.FillCircle(10, 10, 3, ColorOrange)
	c.Polygon(Rect(1, 1, 4, 4), ColorMagenta, true)

	at := func(x, y int) Color { return c.pixels[y*c.termWidth+x] }
	if at(10, 10) != ColorOrange || at(12, 10) != ColorOrange {
		t.Error("circle interior not filled")
	}
	if at(10, 15) != ColorNone || at(15, 10) != ColorNone {
		t.Error("circle spilled outside its radius")
	}
	if at(3, 3) != ColorMagenta {
		t.Error("rectangle interior not filled")
	}
	if at(7, 3) != ColorNone {
		t.Error("rectangle spilled outside")
	}
}

func TestEachCellSkipsEmpty(t *testing.T) {
	c := NewCanvas(10, 5, 100, 100)
	c.Plot(90, 40, ColorGray)

	var got []string
	c.EachCell(func(col, row int, ch rune, color Color) {
		got = append(got, string(ch))
		if col != 9 || row != 2 || color != ColorGray {
			t.Errorf("cell at (%d, %d) color %d", col, row, color)
		}
	})
	if len(got) != 1 {
		t.Errorf("EachCell visited %d cells, want 1", len(got))
	}
}

func TestWorldToTerminal(t *testing.T) {
	c := NewCanvas(80, 30, 800, 600)
	if col, row := c.WorldToTerminal(400, 300); col != 41 || row != 16 {
		t.Errorf("WorldToTerminal(400, 300) = (%d, %d), want (41, 16)", col, row)
	}
}

func TestShipOutline(t *testing.T) {
	pts := ShipOutline(100, 200, 40)
	if len(pts) != 4 {
		t.Fatalf("outline has %d points", len(pts))
	}
	if pts[0] != (Point{X: 100, Y: 180}) {
		t.Errorf("nose = %+v, want (100, 180)", pts[0])
	}
	if pts[1].Y != 220 || pts[3].Y != 220 || pts[1].X != 80 || pts[3].X != 120 {
		t.Errorf("wings = %+v %+v", pts[1], pts[3])
	}
}

type recordingWriter struct {
	writes []int
	buf    bytes.Buffer
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.writes = append(w.writes, len(p))
	return w.buf.Write(p)
}

func TestChunkWriterFlush(t *testing.T) {
	rw := &recordingWriter{}
	cw := NewChunkWriter(rw, 0, 0)
	cw.WriteString(strings.Repeat("x", 3000))
	if cw.buf.Len() != 3000 {
		t.Fatalf("pending = %d", cw.buf.Len())
	}

	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if rw.buf.Len() != 3000 {
		t.Errorf("flushed %d bytes, want 3000", rw.buf.Len())
	}
	for _, n := range rw.writes {
		if n > maxChunkSize {
			t.Errorf("write of %d bytes exceeds chunk size", n)
		}
	}
	if cw.buf.Len() != 0 {
		t.Error("buffer not reset after flush")
	}
}

func TestChunkWriterOffset(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 2, 1)
	cw.WriteAt(1, 1, "x")
	cw.SetOffset(0, 0)
	cw.WriteAt(5, 7, "y")
	_ = cw.Flush()

	if got, want := buf.String(), "\033[2;3Hx\033[7;5Hy"; got != want {
		t.Errorf("output %q, want %q", got, want)
	}
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		w, h                   int
		rw, rh, offCol, offRow int
	}{
		{100, 40, 100, 40, 0, 0},
		{200, 80, 160, 60, 20, 10},
		{161, 30, 160, 30, 0, 0},
	}
	for _, tt := range tests {
		rw, rh, oc, or := ClampTermSize(tt.w, tt.h, 160, 60)
		if rw != tt.rw || rh != tt.rh || oc != tt.offCol || or != tt.offRow {
			t.Errorf("ClampTermSize(%d, %d) = %d %d %d %d", tt.w, tt.h, rw, rh, oc, or)
		}
	}
}
