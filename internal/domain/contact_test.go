package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactMessageValidate(t *testing.T) {
	valid := ContactMessage{Name: "Jo", Email: "jo@example.com", Message: "hi"}
	assert.Nil(t, valid.Validate())

	missing := ContactMessage{}
	details := missing.Validate()
	require.NotNil(t, details)
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "message")

	badEmail := ContactMessage{Name: "Jo", Email: "not-an-email", Message: "hi"}
	details = badEmail.Validate()
	require.NotNil(t, details)
	assert.Contains(t, details, "email")
}
