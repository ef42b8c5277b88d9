package syntax

import "io"

// source is a byte reader with line/column tracking.
// Input is ASCII; any other byte is handed to the scanner as is and
// classified as unknown there.
type source struct {
	buf []byte

	filename string
	line     uint32 // line of ch, 1-based
	col      uint32 // column of ch, 1-based
	offs     int    // offset of ch in buf

	ch int // current byte, -1 at EOF

	errh func(line, col uint32, msg string)
}

// newSource reads all of src into memory and positions the reader on the
// first byte. Read failures are reported through errh and yield an empty
// buffer.
func newSource(filename string, src io.Reader, errh func(line, col uint32, msg string)) *source {
	s := &source{
		filename: filename,
		line:     1,
		col:      1,
		errh:     errh,
	}

	buf, err := io.ReadAll(src)
	if err != nil {
		s.error("error reading source: " + err.Error())
	}
	s.buf = buf
	s.load()
	return s
}

// load sets ch from the byte at offs.
func (s *source) load() {
	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}
	s.ch = int(s.buf[s.offs])
}

// nextch advances to the next byte. It is a no-op at EOF.
func (s *source) nextch() {
	if s.ch < 0 {
		return
	}
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.offs++
	s.load()
}

// pos returns the position of the current byte.
func (s *source) pos() Pos {
	return Pos{filename: s.filename, line: s.line, col: s.col, offs: s.offs}
}

// segment returns the source text from start up to the current offset.
func (s *source) segment(start int) string {
	return string(s.buf[start:s.offs])
}

func (s *source) error(msg string) {
	if s.errh != nil {
		s.errh(s.line, s.col, msg)
	}
}

func isLetter(c int) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isDigit(c int) bool {
	return '0' <= c && c <= '9'
}

// isWhitespace matches the blank set of the language: space, tab,
// form feed, vertical tab, carriage return and newline.
func isWhitespace(c int) bool {
	switch c {
	case ' ', '\t', '\f', '\v', '\r', '\n':
		return true
	}
	return false
}
