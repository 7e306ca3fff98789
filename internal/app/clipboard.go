package app

import "github.com/atotto/clipboard"

// Clipboard copies text to a clipboard.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard copies to the operating system clipboard.
type SystemClipboard struct{}

// Copy copies text to the system clipboard.
func (SystemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}
