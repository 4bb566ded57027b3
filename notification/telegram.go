package notification

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"rental-backend/models"
)

// TelegramNotifier posts new bookings to an operator chat. With no token or
// chat configured it only logs.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *slog.Logger
}

func NewTelegramNotifier(token string, chatID int64, log *slog.Logger) (*TelegramNotifier, error) {
	if token == "" {
		log.Warn("telegram bot token is empty, notifications disabled")
		return &TelegramNotifier{log: log}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID, log: log}, nil
}

// NewTelegramNotifierWithBot wires an already constructed bot, e.g. one
// pointed at a different API endpoint.
func NewTelegramNotifierWithBot(bot *tgbotapi.BotAPI, chatID int64, log *slog.Logger) *TelegramNotifier {
	return &TelegramNotifier{bot: bot, chatID: chatID, log: log}
}

func (n *TelegramNotifier) BookingCreated(ctx context.Context, b models.Booking) error {
	text := fmt.Sprintf(
		"New booking %s\n\nProperty: %s (#%s)\nGuest: %s %s <%s>\nStay: %s to %s, %d night(s), %d guest(s)\nTotal: %.2f",
		b.ID, b.PropertyName, b.PropertyID, b.FirstName, b.LastName, b.Email,
		b.CheckInDate, b.CheckOutDate, b.TotalNights, b.Guests, b.TotalPrice,
	)
	return n.send(ctx, b.ID, text)
}

// send logs only the booking id when skipping; text carries guest details.
func (n *TelegramNotifier) send(ctx context.Context, bookingID, text string) error {
	if n.bot == nil {
		n.log.Debug("notification skipped (bot disabled)", slog.String("booking_id", bookingID))
		return nil
	}
	if n.chatID == 0 {
		n.log.Debug("notification skipped (no chat_id)", slog.String("booking_id", bookingID))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("notification skipped: %w", err)
	}

	if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		return fmt.Errorf("send telegram message to %d: %w", n.chatID, err)
	}
	return nil
}
