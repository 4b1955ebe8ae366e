//go:build linux

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// ReadLine reads one line from the terminal with basic emacs-style editing and
// history. When stdin is not a terminal it falls back to buffered reads.
func (ed *lineEditor) ReadLine() (string, error) {
	if !stdinIsTTY() {
		return ed.readPlain()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return "", err
	}
	raw := *oldState
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		return "", err
	}
	defer func() {
		_ = unix.IoctlSetTermios(fd, unix.TCSETS, oldState)
	}()

	st := editState{ed: ed, histPos: len(ed.history)}
	_, _ = fmt.Fprint(ed.out, ed.prompt)

	var buf [16]byte
	for {
		n, err := os.Stdin.Read(buf[:])
		if err != nil {
			return "", err
		}
		for _, b := range buf[:n] {
			line, done, err := st.feed(b)
			if done || err != nil {
				return line, err
			}
		}
	}
}

type editState struct {
	ed     *lineEditor
	line   []byte
	cursor int

	esc    int
	escBuf strings.Builder

	histPos      int
	histBrowsing bool
	histDraft    string
}

// feed consumes one input byte. done reports a finished line.
func (st *editState) feed(b byte) (string, bool, error) {
	if st.esc != 0 {
		st.feedEscape(b)
		return "", false, nil
	}
	switch b {
	case 27:
		st.esc = 1
	case '\r', '\n':
		_, _ = fmt.Fprint(st.ed.out, "\r\n")
		out := string(st.line)
		st.ed.remember(out)
		return out, true, nil
	case 3: // Ctrl+C
		_, _ = fmt.Fprint(st.ed.out, "^C\r\n")
		return "", true, io.EOF
	case 4: // Ctrl+D
		if len(st.line) == 0 {
			_, _ = fmt.Fprint(st.ed.out, "\r\n")
			return "", true, io.EOF
		}
	case 127, 8:
		if st.cursor > 0 {
			st.line = append(st.line[:st.cursor-1], st.line[st.cursor:]...)
			st.cursor--
			st.redraw()
		}
	case 1: // Ctrl+A
		st.cursor = 0
		st.redraw()
	case 5: // Ctrl+E
		st.cursor = len(st.line)
		st.redraw()
	case 23: // Ctrl+W
		st.deleteWordBack()
	default:
		if b >= 32 {
			st.line = append(st.line, 0)
			copy(st.line[st.cursor+1:], st.line[st.cursor:])
			st.line[st.cursor] = b
			st.cursor++
			st.redraw()
		}
	}
	return "", false, nil
}

func (st *editState) feedEscape(b byte) {
	if st.esc == 1 {
		switch b {
		case '[':
			st.esc = 2
			st.escBuf.Reset()
			return
		case 'b', 'B':
			st.moveWord(-1)
		case 'f', 'F':
			st.moveWord(1)
		case 127:
			st.deleteWordBack()
		}
		st.esc = 0
		return
	}
	st.escBuf.WriteByte(b)
	if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
		st.csi(st.escBuf.String())
		st.esc = 0
	}
}

func (st *editState) csi(seq string) {
	switch seq {
	case "A":
		st.historyStep(-1)
	case "B":
		st.historyStep(1)
	case "D":
		if st.cursor > 0 {
			st.cursor--
		}
	case "C":
		if st.cursor < len(st.line) {
			st.cursor++
		}
	case "H":
		st.cursor = 0
	case "F":
		st.cursor = len(st.line)
	case "3~":
		if st.cursor < len(st.line) {
			st.line = append(st.line[:st.cursor], st.line[st.cursor+1:]...)
		}
	case "1;5D", "5D":
		st.moveWord(-1)
		return
	case "1;5C", "5C":
		st.moveWord(1)
		return
	default:
		return
	}
	st.redraw()
}

func (st *editState) historyStep(dir int) {
	hist := st.ed.history
	if dir < 0 {
		if len(hist) == 0 {
			return
		}
		if !st.histBrowsing {
			st.histDraft = string(st.line)
			st.histBrowsing = true
			st.histPos = len(hist)
		}
		if st.histPos > 0 {
			st.histPos--
			st.line = append(st.line[:0], hist[st.histPos]...)
		}
	} else {
		if !st.histBrowsing {
			return
		}
		if st.histPos < len(hist)-1 {
			st.histPos++
			st.line = append(st.line[:0], hist[st.histPos]...)
		} else {
			st.histPos = len(hist)
			st.line = append(st.line[:0], st.histDraft...)
			st.histBrowsing = false
		}
	}
	st.cursor = len(st.line)
}

func (st *editState) moveWord(dir int) {
	isSpace := func(b byte) bool { return b == ' ' || b == '\t' }
	if dir < 0 {
		for st.cursor > 0 && isSpace(st.line[st.cursor-1]) {
			st.cursor--
		}
		for st.cursor > 0 && !isSpace(st.line[st.cursor-1]) {
			st.cursor--
		}
	} else {
		for st.cursor < len(st.line) && isSpace(st.line[st.cursor]) {
			st.cursor++
		}
		for st.cursor < len(st.line) && !isSpace(st.line[st.cursor]) {
			st.cursor++
		}
	}
	st.redraw()
}

func (st *editState) deleteWordBack() {
	end := st.cursor
	st.moveWord(-1)
	st.line = append(st.line[:st.cursor], st.line[end:]...)
	st.redraw()
}

func (st *editState) redraw() {
	w := st.ed.out
	_, _ = fmt.Fprintf(w, "\r%s%s\x1b[K", st.ed.prompt, st.line)
	if st.cursor < len(st.line) {
		_, _ = fmt.Fprintf(w, "\r%s%s", st.ed.prompt, st.line[:st.cursor])
	}
}
