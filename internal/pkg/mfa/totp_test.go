package mfa

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOTP_GenerateAndValidate(t *testing.T) {
	svc := NewTOTP("HRMS")

	key, err := svc.Generate("ana@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, key.Secret)
	assert.True(t, strings.HasPrefix(key.URL, "otpauth://totp/HRMS:"))

	code, err := CodeAt(key.Secret, time.Now())
	require.NoError(t, err)
	assert.True(t, svc.Validate(code, key.Secret))
	assert.False(t, svc.Validate("000000x", key.Secret))
	assert.False(t, svc.Validate("", key.Secret))
}
