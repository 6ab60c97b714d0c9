package ui

import (
	"strings"

	"github.com/lbtop/lbtop/internal/cliexec"
)

// ringBuffer is a fixed-capacity FIFO of strings, grounded on the
// original's collections.deque(maxlen=N) backing obuf/ihist.
type ringBuffer struct {
	cap  int
	data []string
}

func newRingBuffer(capacity int) *ringBuffer {
	return &ringBuffer{cap: capacity}
}

func (r *ringBuffer) append(s string) {
	r.data = append(r.data, s)
	if len(r.data) > r.cap {
		r.data = r.data[len(r.data)-r.cap:]
	}
}

func (r *ringBuffer) appendAll(lines []string) {
	for _, l := range lines {
		r.append(l)
	}
}

func (r *ringBuffer) lines() []string { return r.data }
func (r *ringBuffer) len() int        { return len(r.data) }
func (r *ringBuffer) last() string {
	if len(r.data) == 0 {
		return ""
	}
	return r.data[len(r.data)-1]
}

const (
	cliMaxLines  = 1000
	cliMaxHist   = 100
	cliInputCap  = 200
)

// editor is the Embedded CLI's input line state (§4.8): the rune buffer,
// caret position, and the left edge of the visible viewport into it. The
// viewport symmetrically follows the caret on both growth directions —
// Open Question (a)'s resolution — rather than only evicting rightward.
type editor struct {
	buf  []rune
	pos  int // caret offset into buf
	vmin int // left edge of the visible window into buf

	hist    *ringBuffer
	histPos int // index into hist while browsing, -1 when not browsing
	saved   []rune
}

func newEditor() *editor {
	return &editor{hist: newRingBuffer(cliMaxHist), histPos: -1}
}

func (e *editor) text() string { return string(e.buf) }

func (e *editor) reset() {
	e.buf = nil
	e.pos = 0
	e.vmin = 0
	e.histPos = -1
}

// viewport returns the [vmin, vmax) rune window that fits in span columns,
// shifting vmin just far enough to bring the caret back to the window's edge
// if it would otherwise fall outside of it.
func (e *editor) viewport(span int) (vmin, vmax int) {
	if e.pos < e.vmin {
		e.vmin = e.pos
	}
	if e.pos > e.vmin+span {
		e.vmin = e.pos - span
	}
	if e.vmin < 0 {
		e.vmin = 0
	}
	vmax = e.vmin + span
	if vmax > len(e.buf) {
		vmax = len(e.buf)
	}
	return e.vmin, vmax
}

func (e *editor) insert(s string) bool {
	var accepted []rune
	for _, r := range s {
		if !cliexec.AllowedChar(r) {
			return false
		}
		accepted = append(accepted, r)
	}
	if len(e.buf)+len(accepted) > cliInputCap {
		return false
	}
	e.buf = append(e.buf[:e.pos:e.pos], append(accepted, e.buf[e.pos:]...)...)
	e.pos += len(accepted)
	return true
}

func (e *editor) deleteLeft() {
	if e.pos == 0 {
		return
	}
	e.buf = append(e.buf[:e.pos-1], e.buf[e.pos:]...)
	e.pos--
}

func (e *editor) deleteRight() {
	if e.pos >= len(e.buf) {
		return
	}
	e.buf = append(e.buf[:e.pos], e.buf[e.pos+1:]...)
}

func (e *editor) moveBy(n int) {
	e.pos += n
	if e.pos < 0 {
		e.pos = 0
	}
	if e.pos > len(e.buf) {
		e.pos = len(e.buf)
	}
}

func (e *editor) moveHome() { e.pos = 0; e.vmin = 0 }
func (e *editor) moveEnd()  { e.pos = len(e.buf) }

// historyPrev rotates backwards through command history, stashing the
// in-progress line the first time it's called.
func (e *editor) historyPrev() {
	if e.hist.len() == 0 {
		return
	}
	if e.histPos == -1 {
		e.saved = append([]rune(nil), e.buf...)
		e.histPos = e.hist.len() - 1
	} else if e.histPos > 0 {
		e.histPos--
	} else {
		return
	}
	e.buf = []rune(e.hist.data[e.histPos])
	e.moveEnd()
}

func (e *editor) historyNext() {
	if e.histPos == -1 {
		return
	}
	if e.histPos < e.hist.len()-1 {
		e.histPos++
		e.buf = []rune(e.hist.data[e.histPos])
	} else {
		e.histPos = -1
		e.buf = e.saved
	}
	e.moveEnd()
}

func (e *editor) commit() {
	line := e.text()
	if strings.TrimSpace(line) != "" && line != e.hist.last() {
		e.hist.append(line)
	}
	e.reset()
}
