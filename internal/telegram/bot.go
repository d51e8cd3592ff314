package telegram

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"book_catalog/internal/menu"
	"book_catalog/internal/service"
)

const (
	// Telegram не принимает сообщения длиннее 4096 символов.
	maxMessageLen = 4096

	msgForbidden = "⛔ Доступ к каталогу запрещён."
	msgRestart   = "Напишите /start, чтобы открыть меню снова."
)

// sender — часть BotAPI, которой бот отправляет ответы.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot serves the catalog menu over Telegram. Updates are handled one by one
// in the Start loop, so the catalog is never touched concurrently.
type Bot struct {
	api     *tgbotapi.BotAPI
	sender  sender
	lib     *service.Library
	logger  *zap.Logger
	allowed map[int64]struct{}

	sessions   map[int64]*menu.Session
	sessionsMu sync.Mutex
}

func NewBot(token string, client *http.Client, lib *service.Library, allowedUsers []int64, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, err
	}

	api.Debug = false
	b := newBot(api, lib, allowedUsers, logger)
	b.api = api
	b.logger.Info("authorized", zap.String("username", api.Self.UserName))
	return b, nil
}

func newBot(s sender, lib *service.Library, allowedUsers []int64, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}

	var allowed map[int64]struct{}
	if len(allowedUsers) > 0 {
		allowed = make(map[int64]struct{}, len(allowedUsers))
		for _, id := range allowedUsers {
			allowed[id] = struct{}{}
		}
	}

	return &Bot{
		sender:   s,
		lib:      lib,
		logger:   logger,
		allowed:  allowed,
		sessions: make(map[int64]*menu.Session),
	}
}

// Start — главный цикл. Возвращается, когда ctx отменён.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleMessage(update.Message)
			}
		}
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if msg.Chat == nil || msg.From == nil {
		return
	}
	chatID := msg.Chat.ID

	if !b.isAllowed(msg.From.ID) {
		b.logger.Warn("rejected user", zap.Int64("user_id", msg.From.ID), zap.String("username", msg.From.UserName))
		b.sendMessage(chatID, msgForbidden, nil)
		return
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start", "menu":
			session := b.resetSession(chatID)
			b.sendMessage(chatID, session.Start(), menuKeyboard())
			return
		}
	}

	session := b.getSession(chatID)
	reply, done := session.Handle(msg.Text)
	if done {
		b.dropSession(chatID)
		b.sendMessage(chatID, reply+"\n"+msgRestart, tgbotapi.NewRemoveKeyboard(false))
		return
	}

	var markup any
	if session.AtMenu() {
		markup = menuKeyboard()
	}
	b.sendMessage(chatID, reply, markup)
}

func (b *Bot) isAllowed(userID int64) bool {
	if b.allowed == nil {
		return true
	}
	_, ok := b.allowed[userID]
	return ok
}

func (b *Bot) getSession(chatID int64) *menu.Session {
	b.sessionsMu.Lock()
	defer b.sessionsMu.Unlock()

	session, ok := b.sessions[chatID]
	if !ok {
		session = menu.NewSession(b.lib, b.logger.With(zap.Int64("chat_id", chatID)))
		b.sessions[chatID] = session
	}
	return session
}

func (b *Bot) resetSession(chatID int64) *menu.Session {
	b.sessionsMu.Lock()
	defer b.sessionsMu.Unlock()

	session := menu.NewSession(b.lib, b.logger.With(zap.Int64("chat_id", chatID)))
	b.sessions[chatID] = session
	return session
}

func (b *Bot) dropSession(chatID int64) {
	b.sessionsMu.Lock()
	defer b.sessionsMu.Unlock()

	delete(b.sessions, chatID)
}

func menuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menu.ChoiceAdd),
			tgbotapi.NewKeyboardButton(menu.ChoiceDelete),
			tgbotapi.NewKeyboardButton(menu.ChoiceSearch),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menu.ChoiceList),
			tgbotapi.NewKeyboardButton(menu.ChoiceStatus),
			tgbotapi.NewKeyboardButton(menu.ChoiceExit),
		),
	)
}

// sendMessage — хелпер для отправки текста. Клавиатура цепляется к последней части.
func (b *Bot) sendMessage(chatID int64, text string, markup any) {
	parts := splitMessage(strings.TrimSpace(text), maxMessageLen)
	for i, part := range parts {
		msg := tgbotapi.NewMessage(chatID, part)
		if i == len(parts)-1 && markup != nil {
			msg.ReplyMarkup = markup
		}
		if _, err := b.sender.Send(msg); err != nil {
			b.logger.Error("send message", zap.Int64("chat_id", chatID), zap.Error(err))
			return
		}
	}
}

// splitMessage режет текст по строкам так, чтобы каждая часть влезала в limit символов.
// Строка длиннее limit режется посимвольно.
func splitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var parts []string
	var cur strings.Builder
	curLen := 0

	flush := func() {
		if curLen > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
			curLen = 0
		}
	}

	for _, line := range strings.Split(text, "\n") {
		for utf8.RuneCountInString(line) > limit {
			flush()
			runes := []rune(line)
			parts = append(parts, string(runes[:limit]))
			line = string(runes[limit:])
		}

		n := utf8.RuneCountInString(line)
		if curLen > 0 && curLen+1+n > limit {
			flush()
		}
		if curLen > 0 {
			cur.WriteByte('\n')
			curLen++
		}
		cur.WriteString(line)
		curLen += n
	}
	flush()

	return parts
}
