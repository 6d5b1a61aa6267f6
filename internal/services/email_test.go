package services

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreetingName(t *testing.T) {
	assert.Equal(t, "Ada", greetingName("  Ada Lovelace "))
	assert.Equal(t, "there", greetingName(""))
	assert.Equal(t, "&lt;b&gt;", greetingName("<b> bold"))
}

func TestEmailService_DevModeDoesNotSend(t *testing.T) {
	svc := NewEmailService("", "587", "", "", "noreply@focus.app", "http://localhost:5173")
	svc.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("dev mode must not reach SMTP")
		return nil
	}

	assert.NoError(t, svc.SendStreakReminderEmail("ada@example.com", "Ada", 3))
	assert.NoError(t, svc.SendWeeklyReviewEmail("ada@example.com", "Ada"))
}

func TestEmailService_SendsThroughSMTP(t *testing.T) {
	svc := NewEmailService("smtp.example.com", "587", "user", "pass", "noreply@focus.app", "https://focus.app/")

	var gotAddr string
	var gotMsg []byte
	svc.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotMsg = addr, msg
		return nil
	}

	require.NoError(t, svc.SendStreakReminderEmail("ada@example.com", "Ada", 7))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	body := string(gotMsg)
	assert.Contains(t, body, "Subject: Your 7-day focus streak ends tonight")
	assert.Contains(t, body, "https://focus.app/focus")
	assert.True(t, strings.Contains(body, "Hi Ada"))

	svc.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("relay refused") }
	assert.ErrorContains(t, svc.SendWeeklyReviewEmail("ada@example.com", "Ada"), "relay refused")
}
