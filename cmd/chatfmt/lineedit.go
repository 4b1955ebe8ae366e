package main

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

type lineEditor struct {
	prompt  string
	out     io.Writer
	plain   *bufio.Reader
	history []string
}

func newLineEditor(prompt string, in io.Reader, out io.Writer) *lineEditor {
	return &lineEditor{
		prompt: prompt,
		out:    out,
		plain:  bufio.NewReader(in),
	}
}

func (ed *lineEditor) readPlain() (string, error) {
	_, _ = io.WriteString(ed.out, ed.prompt)
	s, err := ed.plain.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if err != nil && s == "" {
		return "", io.EOF
	}
	s = trimTrailingNewline(s)
	ed.remember(s)
	return s, nil
}

func (ed *lineEditor) remember(line string) {
	if strings.TrimSpace(line) != "" {
		ed.history = append(ed.history, line)
	}
}

func trimTrailingNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
