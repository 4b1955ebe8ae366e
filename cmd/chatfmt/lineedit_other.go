//go:build !linux

package main

func (ed *lineEditor) ReadLine() (string, error) {
	return ed.readPlain()
}
