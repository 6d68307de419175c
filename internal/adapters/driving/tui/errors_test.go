package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	assert.NotEqual(t, ErrMissingViewerService.Error(), ErrInvalidPorts.Error())
}

func TestErrMissingViewerService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingViewerService.Error(), "viewer service")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
