package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUUID(t *testing.T) {
	assert.True(t, isUUID("6f1c2a0e-5b1d-4c8e-9a57-3d2b1f0e4c11"))
	assert.False(t, isUUID(""))
	assert.False(t, isUUID("abc"))
	assert.False(t, isUUID("urn:uuid:6f1c2a0e-5b1d-4c8e-9a57-3d2b1f0e4c11"))
	assert.False(t, isUUID("{6f1c2a0e-5b1d-4c8e-9a57-3d2b1f0e4c11}"))
}
