package core

import "log"

var (
	EmptyMessage        = ""
	ChangesSavedMessage = "changes saved"
	LineDeletedMessage  = "line deleted"
	YankMessage         = "selection yanked"
	BufferClosedMessage = "buffer closed"
)

// DispatchMessage sends a MessageSignal. With one argument it is both the id
// and the text.
func (s *Session) DispatchMessage(args ...string) {
	if len(args) == 0 {
		return
	}
	id := args[0]
	value := id
	if len(args) > 1 {
		value = args[1]
	}
	select {
	case s.updateSignal <- MessageSignal{id, value}:
	default:
		log.Println("Channel is full, unable to send message signal")
	}
}
