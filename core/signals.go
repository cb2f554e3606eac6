package core

import "log"

type Signal any

type MessageSignal struct {
	id    string
	value string
}

func (m MessageSignal) Value() (id, message string) {
	id = m.id
	message = m.value

	return id, message
}

type SaveSignal struct {
	path string
}

func (s SaveSignal) Value() string {
	return s.path
}

// RunCommandSignal carries the command line submitted from command mode.
type RunCommandSignal struct {
	command string
}

func (r RunCommandSignal) Value() string {
	return r.command
}

type QuitSignal struct{}

type ErrorSignal struct {
	id  ErrorId
	err error
}

func (e ErrorSignal) Value() (id ErrorId, err error) {
	id = e.id
	err = e.err

	return id, err
}

func (s *Session) dispatchSignal(signal Signal) {
	select {
	case s.updateSignal <- signal:
	default:
		log.Printf("Channel is full, unable to send %T", signal)
	}
}
