package utils

import "github.com/google/uuid"

// NewID returns a random identifier for a conversation window.
func NewID() string {
	return uuid.NewString()
}
