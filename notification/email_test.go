package notification

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backend/models"
)

type sentMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func newTestEmailNotifier(cfg SMTPConfig, logBuf *bytes.Buffer, sent *[]sentMail, sendErr error) *EmailNotifier {
	n := NewEmailNotifier(cfg, slog.New(slog.NewTextHandler(logBuf, nil)))
	n.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		*sent = append(*sent, sentMail{addr: addr, from: from, to: to, msg: string(msg)})
		return sendErr
	}
	return n
}

var smtpCfg = SMTPConfig{Host: "smtp.example.com", Port: "587", Username: "bookings@example.com", Password: "pw", FromName: "Rentals"}

func TestEmailNotifier_Sends(t *testing.T) {
	var logs bytes.Buffer
	var sent []sentMail
	n := newTestEmailNotifier(smtpCfg, &logs, &sent, nil)

	b := booking()
	b.PropertyName = "Cabin <b>"
	require.NoError(t, n.BookingCreated(context.Background(), b))

	require.Len(t, sent, 1)
	m := sent[0]
	assert.Equal(t, "smtp.example.com:587", m.addr)
	assert.Equal(t, "bookings@example.com", m.from)
	assert.Equal(t, []string{"jane@example.com"}, m.to)
	assert.Contains(t, m.msg, "From: Rentals <bookings@example.com>\r\n")
	assert.Contains(t, m.msg, "Subject: Your booking at Cabin <b>\r\n")
	assert.Contains(t, m.msg, "Reference: booking_1")
	assert.Contains(t, m.msg, "Cabin &lt;b&gt;")
	assert.Contains(t, m.msg, "Total: 310.00")
	assert.Contains(t, logs.String(), "j**e@e******.com")
}

func TestEmailNotifier_HeaderInjection(t *testing.T) {
	var sent []sentMail
	n := newTestEmailNotifier(smtpCfg, &bytes.Buffer{}, &sent, nil)

	b := booking()
	b.Email = "jane@example.com\r\nBcc: victim@example.com"
	require.NoError(t, n.BookingCreated(context.Background(), b))

	require.Len(t, sent, 1)
	assert.NotContains(t, sent[0].msg, "\r\nBcc:")
}

func TestEmailNotifier_MockWhenUnconfigured(t *testing.T) {
	var logs bytes.Buffer
	var sent []sentMail
	n := newTestEmailNotifier(SMTPConfig{}, &logs, &sent, nil)

	require.NoError(t, n.BookingCreated(context.Background(), booking()))
	assert.Empty(t, sent)
	assert.Contains(t, logs.String(), "[MOCK EMAIL]")
}

func TestEmailNotifier_SendError(t *testing.T) {
	var sent []sentMail
	n := newTestEmailNotifier(smtpCfg, &bytes.Buffer{}, &sent, errors.New("535 auth failed"))

	err := n.BookingCreated(context.Background(), booking())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "535 auth failed")
	assert.False(t, strings.Contains(err.Error(), "jane@example.com"))
}

type stubNotifier struct {
	calls int
	err   error
}

func (s *stubNotifier) BookingCreated(context.Context, models.Booking) error {
	s.calls++
	return s.err
}

func TestMulti(t *testing.T) {
	boom := errors.New("boom")
	a, b, c := &stubNotifier{}, &stubNotifier{err: boom}, &stubNotifier{}

	err := Multi{a, b, c}.BookingCreated(context.Background(), booking())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, c.calls)

	assert.NoError(t, Multi{}.BookingCreated(context.Background(), booking()))
}
