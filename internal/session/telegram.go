package session

import (
	"context"
	"fmt"
	"io"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Telegram messages are capped at 4096 characters.
const telegramFlushSize = 3500

type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram is a LineIO over a private chat with a single allowed user.
// Written lines are collected and sent as one message when the session waits
// for input.
type Telegram struct {
	api     messageSender
	updates <-chan tgbotapi.Update
	userID  int64
	stop    func()
	logger  *zap.Logger
	pending []string
	size    int
}

// NewTelegram connects to the Bot API and starts polling updates.
func NewTelegram(token string, allowUserID int64, logger *zap.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	logger.Info("bot authorized", zap.String("account", api.Self.UserName))

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := api.GetUpdatesChan(updateConfig)

	return newTelegram(api, updates, allowUserID, api.StopReceivingUpdates, logger), nil
}

func newTelegram(api messageSender, updates <-chan tgbotapi.Update, userID int64, stop func(), logger *zap.Logger) *Telegram {
	return &Telegram{api: api, updates: updates, userID: userID, stop: stop, logger: logger}
}

// ReadLine flushes pending output and waits for the next text message from
// the allowed user. Commands such as "/plan" are read as "plan".
func (t *Telegram) ReadLine(ctx context.Context) (string, error) {
	if err := t.flush(); err != nil {
		return "", err
	}

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case update, ok := <-t.updates:
			if !ok {
				return "", io.EOF
			}
			msg := update.Message
			if msg == nil || msg.From == nil || msg.Chat == nil {
				continue
			}
			if msg.From.ID != t.userID || !msg.Chat.IsPrivate() {
				t.logger.Warn("ignoring message from unknown chat",
					zap.Int64("user", msg.From.ID), zap.Int64("chat", msg.Chat.ID))
				continue
			}
			return strings.TrimPrefix(strings.TrimSpace(msg.Text), "/"), nil
		}
	}
}

func (t *Telegram) WriteLine(line string) error {
	t.pending = append(t.pending, line)
	t.size += len(line) + 1
	if t.size >= telegramFlushSize {
		return t.flush()
	}
	return nil
}

// Close sends what is left and stops polling.
func (t *Telegram) Close() error {
	err := t.flush()
	if t.stop != nil {
		t.stop()
	}
	return err
}

func (t *Telegram) flush() error {
	text := strings.TrimSpace(strings.Join(t.pending, "\n"))
	t.pending = t.pending[:0]
	t.size = 0
	if text == "" {
		return nil
	}

	// In a private chat the chat ID equals the user ID.
	msg := tgbotapi.NewMessage(t.userID, text)
	msg.ReplyMarkup = mainMenuKeyboard()
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(cmdAdd),
			tgbotapi.NewKeyboardButton(cmdShow),
			tgbotapi.NewKeyboardButton(cmdPlan),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(cmdSave),
			tgbotapi.NewKeyboardButton(cmdExit),
		),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}
