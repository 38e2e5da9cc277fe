package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Account errors
	ErrAccountNotFound = errors.New("account not found")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
)
