package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS control bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Alignment values for ESC a
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character sizes for GS !
const (
	FontNormal = 0x00
	FontDouble = 0x11
)

// Paper widths in characters
const (
	Width58mm = 32
	Width80mm = 48
)

// Document lays out a receipt line by line. The same calls produce either an
// ESC/POS job or plain monospace text; in text mode printer commands are
// dropped and alignment is emulated with spaces.
type Document struct {
	buf   bytes.Buffer
	width int
	text  bool
	align int
}

func newDocument(width int, text bool) *Document {
	if width <= 0 {
		width = Width58mm
	}
	return &Document{width: width, text: text}
}

// NewDocument starts an ESC/POS job. The printer is reset with ESC @ first.
func NewDocument(width int) *Document {
	d := newDocument(width, false)
	d.command(ESC, '@')
	return d
}

// NewTextDocument starts a plain text rendering.
func NewTextDocument(width int) *Document {
	return newDocument(width, true)
}

func (d *Document) Width() int {
	return d.width
}

func (d *Document) command(b ...byte) {
	if !d.text {
		d.buf.Write(b)
	}
}

func (d *Document) line(s string) {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
}

func (d *Document) SetAlign(align int) *Document {
	d.align = align
	d.command(ESC, 'a', byte(align))
	return d
}

func (d *Document) SetBold(on bool) *Document {
	var b byte
	if on {
		b = 1
	}
	d.command(ESC, 'E', b)
	return d
}

func (d *Document) SetFontSize(size byte) *Document {
	d.command(GS, '!', size)
	return d
}

// Text writes one line using the current alignment.
func (d *Document) Text(s string) *Document {
	if d.text {
		s = d.aligned(s)
	}
	d.line(s)
	return d
}

func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

func (d *Document) aligned(s string) string {
	gap := d.width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	switch d.align {
	case AlignCenter:
		return strings.Repeat(" ", gap/2) + s
	case AlignRight:
		return strings.Repeat(" ", gap) + s
	default:
		return s
	}
}

// Separator fills one line with char.
func (d *Document) Separator(char byte) *Document {
	d.line(strings.Repeat(string(char), d.width))
	return d
}

// KeyValue prints key on the left and value flush right, e.g.
// "Subtotal:                 18,000".
func (d *Document) KeyValue(key, value string) *Document {
	d.columns(key, value)
	return d
}

// ItemLine prints "2x Iced Coffee           36,000". The name is cut to fit.
func (d *Document) ItemLine(qty int, name, total string) *Document {
	prefix := fmt.Sprintf("%dx ", qty)
	room := d.width - utf8.RuneCountInString(prefix) - utf8.RuneCountInString(total) - 1
	d.columns(prefix+truncate(name, room), total)
	return d
}

func (d *Document) columns(left, right string) {
	gap := max(d.width-utf8.RuneCountInString(left)-utf8.RuneCountInString(right), 1)
	d.line(left + strings.Repeat(" ", gap) + right)
}

func truncate(s string, n int) string {
	if n < 1 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Finish feeds the paper past the tear bar and issues a partial cut.
// Text documents are left as they are.
func (d *Document) Finish() *Document {
	if d.text {
		return d
	}
	d.buf.Write(bytes.Repeat([]byte{LF}, 3))
	d.command(GS, 'V', 0x01)
	return d
}

func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func (d *Document) String() string {
	return d.buf.String()
}
