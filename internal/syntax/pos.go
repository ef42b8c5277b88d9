package syntax

import "fmt"

// Pos is a position in a source buffer.
// The zero value is an invalid position.
type Pos struct {
	filename string
	line     uint32 // 1-based
	col      uint32 // 1-based byte column
	offs     int    // 0-based byte offset into the buffer
}

// NewPos creates a Pos for the given file, line and column.
func NewPos(filename string, line, col uint32) Pos {
	return Pos{filename: filename, line: line, col: col}
}

// String formats p as "file:line:col", or "line:col" without a file name.
func (p Pos) String() string {
	if p.filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.filename, p.line, p.col)
	}
	return fmt.Sprintf("%d:%d", p.line, p.col)
}

// IsValid reports whether p refers to an actual source location.
func (p Pos) IsValid() bool { return p.line > 0 }

func (p Pos) Line() uint32     { return p.line }
func (p Pos) Col() uint32      { return p.col }
func (p Pos) Offset() int      { return p.offs }
func (p Pos) Filename() string { return p.filename }
