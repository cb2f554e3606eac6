package core

import (
	"errors"
	"fmt"
	"log"
)

var (
	ErrNoBufferOpen    = errors.New("no buffer open")
	ErrNoSelection     = errors.New("no selection")
	ErrFileOpenFailed  = errors.New("failed to open file")
	ErrFileReadFailed  = errors.New("failed to read file")
	ErrFileWriteFailed = errors.New("failed to write file")
	ErrFileSeekFailed  = errors.New("failed to seek file")
	ErrNoFile          = errors.New("buffer has no file")
	ErrClipboard       = errors.New("clipboard error")
	ErrInvalidIndex    = errors.New("invalid buffer index")
	ErrInvalidCommand  = errors.New("invalid command")
	ErrUnsavedChanges  = errors.New("unsaved changes (add ! to override)")
)

type ErrorId int

const (
	ErrNoBufferOpenId ErrorId = iota
	ErrNoSelectionId
	ErrFileOpenFailedId
	ErrFileReadFailedId
	ErrFileWriteFailedId
	ErrFileSeekFailedId
	ErrNoFileId
	ErrClipboardId
	ErrInvalidIndexId
	ErrInvalidCommandId
	ErrUnsavedChangesId
	ErrUnknownId
)

var errorIds = []struct {
	err error
	id  ErrorId
}{
	{ErrNoBufferOpen, ErrNoBufferOpenId},
	{ErrNoSelection, ErrNoSelectionId},
	{ErrFileOpenFailed, ErrFileOpenFailedId},
	{ErrFileReadFailed, ErrFileReadFailedId},
	{ErrFileWriteFailed, ErrFileWriteFailedId},
	{ErrFileSeekFailed, ErrFileSeekFailedId},
	{ErrNoFile, ErrNoFileId},
	{ErrClipboard, ErrClipboardId},
	{ErrInvalidIndex, ErrInvalidIndexId},
	{ErrInvalidCommand, ErrInvalidCommandId},
	{ErrUnsavedChanges, ErrUnsavedChangesId},
}

// ErrorIdOf maps an error returned by the core to the id carried in an ErrorSignal.
func ErrorIdOf(err error) ErrorId {
	for _, e := range errorIds {
		if errors.Is(err, e.err) {
			return e.id
		}
	}
	return ErrUnknownId
}

// wrapErr attaches the underlying cause to one of the sentinel kinds above,
// so callers can match on either with errors.Is.
func wrapErr(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, cause)
}

func (s *Session) dispatchError(err error) {
	select {
	case s.updateSignal <- ErrorSignal{id: ErrorIdOf(err), err: err}:
	default:
		log.Println("Channel is full, unable to send error signal")
	}
}
