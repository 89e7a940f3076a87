package draw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// maxChunkSize is the maximum bytes written at once. It stays under a typical
// MTU so frames stream smoothly over SSH.
const maxChunkSize = 1400

// ChunkWriter accumulates a frame of terminal output and writes it in
// MTU-sized chunks on Flush. Cursor positions passed to MoveCursor and WriteAt
// are relative to the render area offset.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer
	numBuf [20]byte // Scratch space for allocation-free integer formatting
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor appends an ANSI cursor position sequence for the 1-based canvas
// position (col, row).
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// Write implements io.Writer. Canvas.Render writes absolute positions through it.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.buf.Write(p)
}

// WriteString appends s without moving the cursor.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteAt writes s at the 1-based canvas position (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

// Flush writes the accumulated frame to the underlying writer and resets the
// buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.bufw.WriteString(data[:n]); err != nil {
			return err
		}
		if err := cw.bufw.Flush(); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

var _ io.Writer = (*ChunkWriter)(nil)

// TermSizeFunc returns the terminal dimensions in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the process's stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClampTermSize limits the render area to maxWidth x maxHeight and returns
// the offset that centres it in the terminal.
func ClampTermSize(termWidth, termHeight, maxWidth, maxHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, maxWidth)
	renderHeight = min(termHeight, maxHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// ClearScreen clears the terminal and moves the cursor to the top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}
