package client

// KeyEnter is the activation key.
const KeyEnter = "enter"

// KeyEvent is a key press as seen by the client. Composing is set while an
// input method is still composing text (or, in a terminal, while a bracketed
// paste is delivered); such events never trigger a search.
type KeyEvent struct {
	Key       string
	Composing bool
}

// IsSubmitKey reports whether ev should submit the current query
func IsSubmitKey(ev KeyEvent) bool {
	return ev.Key == KeyEnter && !ev.Composing
}
