package ioutils

import "github.com/atotto/clipboard"

// WriteClipboard puts text on the system clipboard.
//
// The clipboard is a best-effort output sink: callers report a failure
// to the user but never retry it.
func WriteClipboard(text string) error {
	return clipboard.WriteAll(text)
}
