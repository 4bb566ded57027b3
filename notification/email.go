package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/smtp"
	"strings"

	"rental-backend/models"
	"rental-backend/utils"
)

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	FromName string
}

func (c SMTPConfig) enabled() bool {
	return c.Host != "" && c.Port != "" && c.Username != "" && c.Password != ""
}

// EmailNotifier sends the guest a confirmation for every new booking. Without
// SMTP settings it logs the message instead of sending it.
type EmailNotifier struct {
	cfg      SMTPConfig
	log      *slog.Logger
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailNotifier(cfg SMTPConfig, log *slog.Logger) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, log: log, sendMail: smtp.SendMail}
}

const mailBoundary = "----=_BOOKING_CONFIRMATION_BOUNDARY"

var confirmationHTML = template.Must(template.New("confirmation").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Booking received</title>
<style>
body { background:#f5f7fb; font-family:Arial, Helvetica, sans-serif; color:#222; }
.container { max-width:640px; margin:20px auto; }
.card { background:#fff; border:1px solid #e6eef6; padding:24px; border-radius:8px; }
td { padding:4px 12px 4px 0; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h2>Booking received</h2>
    <p>Hi {{.FirstName}},</p>
    <p>Thanks for booking <strong>{{.PropertyName}}</strong>. Your reservation is pending confirmation.</p>
    <table>
      <tr><td>Reference</td><td>{{.ID}}</td></tr>
      <tr><td>Check-in</td><td>{{.CheckInDate}}</td></tr>
      <tr><td>Check-out</td><td>{{.CheckOutDate}}</td></tr>
      <tr><td>Guests</td><td>{{.Guests}}</td></tr>
      <tr><td>Nights</td><td>{{.TotalNights}}</td></tr>
      <tr><td>Total</td><td>{{printf "%.2f" .TotalPrice}}</td></tr>
    </table>
  </div>
</div>
</body>
</html>`))

func plainConfirmation(b models.Booking) string {
	return fmt.Sprintf(
		"Hi %s,\n\n"+
			"Thanks for booking %s. Your reservation is pending confirmation.\n\n"+
			"Reference: %s\nCheck-in: %s\nCheck-out: %s\nGuests: %d\nNights: %d\nTotal: %.2f\n",
		b.FirstName, b.PropertyName, b.ID, b.CheckInDate, b.CheckOutDate, b.Guests, b.TotalNights, b.TotalPrice,
	)
}

// headerSafe strips line breaks so user input cannot inject headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(strings.TrimSpace(s))
}

func (n *EmailNotifier) buildMessage(b models.Booking) ([]byte, error) {
	var html bytes.Buffer
	if err := confirmationHTML.Execute(&html, b); err != nil {
		return nil, fmt.Errorf("render confirmation: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s <%s>\r\n", headerSafe(n.cfg.FromName), n.cfg.Username)
	fmt.Fprintf(&sb, "To: %s\r\n", headerSafe(b.Email))
	fmt.Fprintf(&sb, "Subject: %s\r\n", headerSafe("Your booking at "+b.PropertyName))
	sb.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&sb, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", mailBoundary)

	fmt.Fprintf(&sb, "--%s\r\n", mailBoundary)
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainConfirmation(b) + "\r\n")

	fmt.Fprintf(&sb, "--%s\r\n", mailBoundary)
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(html.String() + "\r\n")

	fmt.Fprintf(&sb, "--%s--\r\n", mailBoundary)
	return []byte(sb.String()), nil
}

func (n *EmailNotifier) BookingCreated(ctx context.Context, b models.Booking) error {
	to := headerSafe(b.Email)
	if !n.cfg.enabled() {
		n.log.Info("[MOCK EMAIL] booking confirmation",
			slog.String("to", utils.MaskEmail(to)),
			slog.String("booking_id", b.ID),
		)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("email skipped: %w", err)
	}

	msg, err := n.buildMessage(b)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(n.cfg.Host, n.cfg.Port)
	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	if err := n.sendMail(addr, auth, n.cfg.Username, []string{to}, msg); err != nil {
		return fmt.Errorf("send confirmation to %s: %w", utils.MaskEmail(to), err)
	}

	n.log.Info("confirmation email sent",
		slog.String("to", utils.MaskEmail(to)),
		slog.String("booking_id", b.ID),
	)
	return nil
}
