package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Ramz1k999/diplomaproject/internal/dialogue"
	"github.com/Ramz1k999/diplomaproject/internal/session"
	"github.com/Ramz1k999/diplomaproject/pkg/locales"
)

// emitter renders engine replies into Telegram messages. It runs while the
// session lock is held, so it may record the sent message ID on the session
// for later edit-in-place.
func (b *Bot) emitter(chatID int64) dialogue.Emitter {
	return func(sess *session.Session, r dialogue.Reply) {
		b.deliver(chatID, sess, r)
	}
}

func (b *Bot) deliver(chatID int64, sess *session.Session, r dialogue.Reply) {
	var markup any
	if len(r.Choices) > 0 {
		markup = choiceKeyboard(r.Choices)
	} else if r.ShowMenu {
		markup = mainMenuKeyboard(sess.Lang)
	}

	// Option flows update the previous options message in place so the chat
	// doesn't fill up with dead keyboards.
	if r.Edit && sess.LastMessageID > 0 {
		edit := tgbotapi.NewEditMessageText(chatID, sess.LastMessageID, r.Text)
		if r.Markdown {
			edit.ParseMode = tgbotapi.ModeMarkdown
		}
		if kb, ok := markup.(tgbotapi.InlineKeyboardMarkup); ok {
			edit.ReplyMarkup = &kb
		}
		if _, err := b.api.Send(edit); err == nil {
			return
		}
		// Editing can fail (message too old, deleted); fall through to send.
	}

	msg := tgbotapi.NewMessage(chatID, r.Text)
	if r.Markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	sent, err := b.api.Send(msg)
	if err != nil {
		b.log.Warn("send failed", zap.Int64("chat", chatID), zap.Error(err))
		return
	}
	if len(r.Choices) > 0 {
		sess.LastMessageID = sent.MessageID
	}
}

func (b *Bot) send(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("send failed", zap.Int64("chat", msg.ChatID), zap.Error(err))
	}
}

func (b *Bot) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	b.send(msg)
}

func (b *Bot) sendWithMenu(chatID int64, text, lang string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = mainMenuKeyboard(lang)
	b.send(msg)
}

// choiceKeyboard lays out dialogue choices two per row, the same shape the
// original menus use.
func choiceKeyboard(choices []dialogue.Choice) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(choices); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(choices[i].Label, "dlg:"+choices[i].Data),
		}
		if i+1 < len(choices) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(choices[i+1].Label, "dlg:"+choices[i+1].Data))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func mainMenuKeyboard(lang string) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(locales.Get("menu_bmi", lang)),
			tgbotapi.NewKeyboardButton(locales.Get("menu_water", lang)),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(locales.Get("menu_recipe", lang)),
			tgbotapi.NewKeyboardButton(locales.Get("menu_food", lang)),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(locales.Get("menu_workout", lang)),
			tgbotapi.NewKeyboardButton(locales.Get("menu_cancel", lang)),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// menuKind maps a main-menu button label to its dialogue.
func menuKind(text string) (session.DialogueKind, bool) {
	switch text {
	case locales.Get("menu_bmi", locales.DefaultLang):
		return session.KindBMI, true
	case locales.Get("menu_water", locales.DefaultLang):
		return session.KindWater, true
	case locales.Get("menu_recipe", locales.DefaultLang):
		return session.KindRecipe, true
	case locales.Get("menu_food", locales.DefaultLang):
		return session.KindFood, true
	case locales.Get("menu_workout", locales.DefaultLang):
		return session.KindWorkout, true
	}
	return "", false
}
