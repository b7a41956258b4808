package domain

import "errors"

// ErrUnknownLocale is returned when a locale code is not part of the supported set.
var ErrUnknownLocale = errors.New("unknown locale")

// ErrUnknownView is returned when a view name is not part of the closed View set.
var ErrUnknownView = errors.New("unknown view")

// ErrUnknownAction is returned when a command table entry cannot be parsed.
var ErrUnknownAction = errors.New("unknown action")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")
