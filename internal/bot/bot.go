// Package bot hosts the Telegram transport: the long-poll update loop,
// command and menu routing, and the rendering of dialogue replies into
// messages, inline keyboards and edits.
package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Ramz1k999/diplomaproject/internal/dialogue"
	"github.com/Ramz1k999/diplomaproject/internal/session"
	"github.com/Ramz1k999/diplomaproject/pkg/locales"
)

// Bot wires the Telegram API to the dialogue engine.
type Bot struct {
	api     *tgbotapi.BotAPI
	store   *session.Store
	engine  *dialogue.Engine
	limiter *userLimiter
	log     *zap.Logger
}

// New authorizes against the Telegram API and builds the bot.
func New(token string, store *session.Store, engine *dialogue.Engine, ratePerMinute int, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	log.Info("authorized on telegram", zap.String("username", api.Self.UserName))

	return &Bot{
		api:     api,
		store:   store,
		engine:  engine,
		limiter: newUserLimiter(ratePerMinute),
		log:     log,
	}, nil
}

// Start runs the long-poll loop until ctx is cancelled. Updates are handled
// on their own goroutines; per-user ordering comes from the session lock.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update := <-updates:
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("panic in update handler", zap.Any("panic", r))
		}
	}()

	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}
	if update.Message != nil {
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	var lang string
	b.store.Do(userID, func(sess *session.Session) {
		sess.ChatID = chatID
		lang = sess.Lang
	})

	if msg.IsCommand() {
		b.handleCommand(ctx, userID, chatID, lang, msg.Command())
		return
	}

	if kind, ok := menuKind(msg.Text); ok {
		b.startDialogue(ctx, userID, chatID, lang, kind)
		return
	}
	if msg.Text == locales.Get("menu_cancel", lang) {
		b.engine.Cancel(ctx, userID, b.emitter(chatID))
		return
	}

	b.engine.HandleText(ctx, userID, msg.Text, b.emitter(chatID))
}

func (b *Bot) handleCommand(ctx context.Context, userID, chatID int64, lang, command string) {
	switch command {
	case "start":
		b.sendWithMenu(chatID, locales.Get("start", lang), lang)
	case "help":
		b.sendWithMenu(chatID, locales.Get("help", lang), lang)
	case "menu":
		b.sendWithMenu(chatID, locales.Get("menu_title", lang), lang)
	case "language":
		b.sendLanguagePrompt(chatID, lang)
	case "cancel":
		b.engine.Cancel(ctx, userID, b.emitter(chatID))
	case "bmi":
		b.startDialogue(ctx, userID, chatID, lang, session.KindBMI)
	case "water":
		b.startDialogue(ctx, userID, chatID, lang, session.KindWater)
	case "recipe":
		b.startDialogue(ctx, userID, chatID, lang, session.KindRecipe)
	case "food":
		b.startDialogue(ctx, userID, chatID, lang, session.KindFood)
	case "workout":
		b.startDialogue(ctx, userID, chatID, lang, session.KindWorkout)
	default:
		b.sendWithMenu(chatID, locales.Get("unknown_input", lang), lang)
	}
}

func (b *Bot) startDialogue(ctx context.Context, userID, chatID int64, lang string, kind session.DialogueKind) {
	if !b.limiter.allow(userID) {
		b.sendMarkdown(chatID, locales.Get("rate_limited", lang))
		return
	}
	b.engine.Start(ctx, userID, kind, b.emitter(chatID))
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Answer right away so the client drops its progress spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.log.Debug("callback answer failed", zap.Error(err))
	}
	if cb.Message == nil {
		return
	}

	userID := cb.From.ID
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID

	b.store.Do(userID, func(sess *session.Session) {
		sess.ChatID = chatID
		sess.LastMessageID = msgID
	})

	switch {
	case strings.HasPrefix(cb.Data, "lang:"):
		b.setLanguage(userID, chatID, strings.TrimPrefix(cb.Data, "lang:"))
	case strings.HasPrefix(cb.Data, "dlg:"):
		b.engine.HandleSelection(ctx, userID, strings.TrimPrefix(cb.Data, "dlg:"), b.emitter(chatID))
	default:
		b.log.Debug("unknown callback data", zap.String("data", cb.Data))
	}
}

func (b *Bot) sendLanguagePrompt(chatID int64, lang string) {
	msg := tgbotapi.NewMessage(chatID, locales.Get("language_prompt", lang))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇬🇧 English", "lang:en"),
			tgbotapi.NewInlineKeyboardButtonData("🇷🇺 Русский", "lang:ru"),
			tgbotapi.NewInlineKeyboardButtonData("🇺🇿 O'zbek", "lang:uz"),
		),
	)
	b.send(msg)
}

func (b *Bot) setLanguage(userID, chatID int64, lang string) {
	if !validLang(lang) {
		return
	}
	b.store.Do(userID, func(sess *session.Session) {
		sess.Lang = lang
	})
	b.sendWithMenu(chatID, locales.Get("language_set", lang), lang)
}

// SendTo delivers a plain message outside a dialogue turn (reminders).
func (b *Bot) SendTo(userID int64, text string) {
	var chatID int64
	b.store.Do(userID, func(sess *session.Session) {
		chatID = sess.ChatID
	})
	if chatID == 0 {
		b.log.Debug("no chat known for user, dropping message", zap.Int64("user", userID))
		return
	}
	b.sendMarkdown(chatID, text)
}

func validLang(lang string) bool {
	for _, l := range locales.Langs() {
		if l == lang {
			return true
		}
	}
	return false
}
