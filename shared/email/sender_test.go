package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSenderFromEnv(t *testing.T) {
	t.Run("LogSenderWithoutAPIKey", func(t *testing.T) {
		t.Setenv("RESEND_API_KEY", "")
		sender := NewSenderFromEnv()
		assert.IsType(t, &logSender{}, sender)
	})

	t.Run("ResendSenderWithAPIKey", func(t *testing.T) {
		t.Setenv("RESEND_API_KEY", "re_test_key")
		sender := NewSenderFromEnv()
		rs, ok := sender.(*resendSender)
		require.True(t, ok)
		assert.Equal(t, "CarServe <login@carserve.app>", rs.from)
	})

	t.Run("FromAddressOverride", func(t *testing.T) {
		t.Setenv("RESEND_API_KEY", "re_test_key")
		t.Setenv("EMAIL_FROM", "Ops <ops@carserve.app>")
		sender := NewSenderFromEnv()
		rs, ok := sender.(*resendSender)
		require.True(t, ok)
		assert.Equal(t, "Ops <ops@carserve.app>", rs.from)
	})
}

func TestLogSenderNeverFails(t *testing.T) {
	assert.NoError(t, logSender{}.SendLoginCode("driver@example.com", "1234"))
}
