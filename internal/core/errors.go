package core

import "errors"

var (
	// ErrNoNicknames is returned when a nickname task is built without candidates.
	ErrNoNicknames = errors.New("no nickname candidates")
	// ErrNoChannel is returned when a channel task is built without a channel name.
	ErrNoChannel = errors.New("no channel name")
)
