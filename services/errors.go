package services

import "errors"

var (
	// ErrEmptyInput indicates a chat message that is empty or whitespace only.
	ErrEmptyInput = errors.New("no input provided")

	// ErrProvider indicates the completion provider failed or returned an
	// unparseable payload.
	ErrProvider = errors.New("provider error")

	// ErrStore indicates an escalation record could not be persisted.
	ErrStore = errors.New("escalation store error")
)
