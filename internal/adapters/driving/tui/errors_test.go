package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errors := []error{
		ErrMissingSessionService,
		ErrMissingAuthFlows,
		ErrInvalidPorts,
	}

	seen := make(map[string]bool)
	for _, err := range errors {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrMissingSessionService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingSessionService.Error(), "session service")
}

func TestErrMissingAuthFlows_Message(t *testing.T) {
	assert.Contains(t, ErrMissingAuthFlows.Error(), "auth flows")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
