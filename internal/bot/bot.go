package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/example/vocabtrainer/internal/database"
	"github.com/example/vocabtrainer/internal/trainer"
	"github.com/example/vocabtrainer/internal/wordbank"
	"github.com/example/vocabtrainer/pkg/models"
)

// Sender is the part of the Telegram API the handlers need. Narrowed out so
// tests can record outgoing messages.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// session is one chat's practice state. Every chat owns its own selector so
// attempt histories are never shared between users.
type session struct {
	selector *trainer.Selector
	topic    string
	current  *models.VocabEntry
}

// Bot is the Telegram front end over the word bank and the selectors.
type Bot struct {
	api      *tgbotapi.BotAPI
	sender   Sender
	bank     *wordbank.Bank
	history  *database.AttemptRecordRepository
	log      *zap.Logger
	sessions map[int64]*session
}

// New creates a bot instance.
func New(token, env string, bank *wordbank.Bank, history *database.AttemptRecordRepository, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	api.Debug = env == "development"

	return &Bot{
		api:      api,
		sender:   api,
		bank:     bank,
		history:  history,
		log:      log,
		sessions: make(map[int64]*session),
	}, nil
}

// Start runs the update loop until the context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message != nil {
				if update.Message.IsCommand() {
					b.handleCommand(update.Message)
				} else {
					b.handleMessage(update.Message)
				}
				continue
			}
			if update.CallbackQuery != nil {
				b.handleCallback(update.CallbackQuery)
			}
		}
	}
}

// Stop shuts the update channel down.
func (b *Bot) Stop(ctx context.Context) error {
	b.api.StopReceivingUpdates()
	return nil
}

// SendPracticeReminder nudges a user to practice. Used by the scheduler.
func (b *Bot) SendPracticeReminder(userID int64) error {
	msg := tgbotapi.NewMessage(userID, "Time to practice! Send /practice to get a word.")
	_, err := b.sender.Send(msg)
	return err
}

// session returns the chat's practice session, creating it on first contact.
func (b *Bot) session(chatID int64) *session {
	if s, ok := b.sessions[chatID]; ok {
		return s
	}

	var store trainer.HistoryStore
	if b.history != nil {
		store = b.history.ForUser(chatID)
	}

	selector, err := trainer.NewSelector(b.bank, store)
	if err != nil {
		b.log.Warn("failed to load history, starting empty", zap.Int64("chat_id", chatID), zap.Error(err))
		selector, _ = trainer.NewSelector(b.bank, nil)
	}

	s := &session{selector: selector, topic: wordbank.AllTopics}
	b.sessions[chatID] = s
	return s
}

// send pushes a message out, logging failures.
func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.sender.Send(msg); err != nil {
		b.log.Error("failed to send message", zap.Error(err))
	}
}

// MenuButton represents a button in an inline menu.
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates an inline keyboard from menu buttons.
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}
