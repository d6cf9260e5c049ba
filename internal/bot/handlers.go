package bot

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/example/vocabtrainer/internal/wordbank"
)

// Callback data prefixes and values.
const (
	callbackTopicPrefix = "topic:"
	callbackAllTopics   = "topic:__all__"
	callbackNextWord    = "next_word"
	callbackResetYes    = "reset_confirm"
	callbackResetNo     = "reset_cancel"
)

func (b *Bot) handleCommand(message *tgbotapi.Message) {
	switch message.Command() {
	case "start", "help":
		b.handleStart(message)
	case "topics":
		b.handleTopics(message)
	case "practice":
		b.handlePractice(message)
	case "stats":
		b.handleStats(message)
	case "reset":
		b.handleReset(message)
	default:
		b.send(tgbotapi.NewMessage(message.Chat.ID, "Unknown command. Send /help for the command list."))
	}
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	text := "Welcome to the vocabulary trainer!\n\n" +
		"Commands:\n" +
		"/topics - choose a topic\n" +
		"/practice - get a word to translate\n" +
		"/stats - your statistics per topic\n" +
		"/reset - wipe your statistics"
	b.send(tgbotapi.NewMessage(message.Chat.ID, text))
}

func (b *Bot) handleTopics(message *tgbotapi.Message) {
	topics := b.bank.Topics()
	if len(topics) == 0 {
		b.send(tgbotapi.NewMessage(message.Chat.ID, "The word bank is empty."))
		return
	}

	buttons := [][]MenuButton{{{Text: "All topics", CallbackData: callbackAllTopics}}}
	for _, topic := range topics {
		buttons = append(buttons, []MenuButton{{Text: topic, CallbackData: callbackTopicPrefix + topic}})
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, "Choose a topic:")
	msg.ReplyMarkup = createKeyboard(buttons)
	b.send(msg)
}

func (b *Bot) handlePractice(message *tgbotapi.Message) {
	b.sendNextWord(message.Chat.ID)
}

func (b *Bot) handleStats(message *tgbotapi.Message) {
	s := b.session(message.Chat.ID)

	stats := s.selector.StatsByTopic()
	if len(stats) == 0 {
		b.send(tgbotapi.NewMessage(message.Chat.ID, "No statistics yet. Send /practice to get started."))
		return
	}

	topics := make([]string, 0, len(stats))
	for topic := range stats {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	var sb strings.Builder
	sb.WriteString("*Your statistics*\n")
	for _, topic := range topics {
		ts := stats[topic]
		sb.WriteString("\n*")
		sb.WriteString(topic)
		sb.WriteString("*\n")
		sb.WriteString("Correct: " + strconv.Itoa(ts.Correct))
		sb.WriteString(" / " + strconv.Itoa(ts.Total))
		sb.WriteString(fmt.Sprintf(" (%.1f%%)\n", ts.SuccessRate))
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, sb.String())
	msg.ParseMode = tgbotapi.ModeMarkdown
	b.send(msg)
}

func (b *Bot) handleReset(message *tgbotapi.Message) {
	msg := tgbotapi.NewMessage(message.Chat.ID, "This will permanently delete all your statistics. Continue?")
	msg.ReplyMarkup = createKeyboard([][]MenuButton{{
		{Text: "Yes, reset", CallbackData: callbackResetYes},
		{Text: "Cancel", CallbackData: callbackResetNo},
	}})
	b.send(msg)
}

// handleMessage treats plain text as an answer to the currently open word.
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	s := b.session(message.Chat.ID)

	if s.current == nil {
		b.send(tgbotapi.NewMessage(message.Chat.ID, "No word is open. Send /practice to get one."))
		return
	}

	entry := *s.current
	s.current = nil

	result, err := s.selector.RecordAttempt(entry, message.Text)
	if err != nil {
		// In-memory state is already updated, only persistence failed.
		b.log.Error("failed to persist attempt", zap.Int64("chat_id", message.Chat.ID), zap.Error(err))
	}

	var sb strings.Builder
	if result.Correct {
		sb.WriteString("Correct!")
	} else {
		sb.WriteString("Incorrect. The right answer is *" + result.CorrectAnswer + "*.")
	}
	if entry.Note != "" {
		sb.WriteString("\n\nNote: " + entry.Note)
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, sb.String())
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = createKeyboard([][]MenuButton{{{Text: "Next word", CallbackData: callbackNextWord}}})
	b.send(msg)
}

func (b *Bot) handleCallback(query *tgbotapi.CallbackQuery) {
	// Telegram omits Message for stale (>48h) and inline-mode callbacks.
	if query.Message == nil {
		b.log.Warn("callback without message", zap.String("data", query.Data))
		return
	}

	// Acknowledge the button press so the client stops the spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.log.Warn("failed to answer callback", zap.Error(err))
	}

	chatID := query.Message.Chat.ID
	s := b.session(chatID)

	data := query.Data
	switch {
	case data == callbackAllTopics:
		s.topic = wordbank.AllTopics
		b.sendNextWord(chatID)
	case strings.HasPrefix(data, callbackTopicPrefix):
		s.topic = strings.TrimPrefix(data, callbackTopicPrefix)
		b.sendNextWord(chatID)
	case data == callbackNextWord:
		b.sendNextWord(chatID)
	case data == callbackResetYes:
		if err := s.selector.Reset(); err != nil {
			b.log.Error("failed to clear stored history", zap.Int64("chat_id", chatID), zap.Error(err))
			b.send(tgbotapi.NewMessage(chatID, "Statistics were reset in this session, but the stored history could not be cleared."))
			return
		}
		s.current = nil
		b.send(tgbotapi.NewMessage(chatID, "Statistics reset."))
	case data == callbackResetNo:
		b.send(tgbotapi.NewMessage(chatID, "Reset cancelled."))
	}
}

// sendNextWord draws a word for the chat's topic and prompts for a
// translation.
func (b *Bot) sendNextWord(chatID int64) {
	s := b.session(chatID)

	entry, ok := s.selector.Select(s.topic)
	if !ok {
		s.current = nil
		b.send(tgbotapi.NewMessage(chatID, "No words available in this topic."))
		return
	}
	s.current = entry

	msg := tgbotapi.NewMessage(chatID, "Translate: *"+entry.SourceText+"*")
	msg.ParseMode = tgbotapi.ModeMarkdown
	b.send(msg)
}
