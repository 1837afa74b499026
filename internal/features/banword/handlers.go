// Package banword — handlers.go отправляет ответы диалога в Telegram.
// Меню удаления работает через Reply Keyboard: по кнопке на слово плюс «Отмена».
package banword

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// Handler обрабатывает команды управления словами.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик управления словами.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleAdd обрабатывает команду /add_banword.
func (h *Handler) HandleAdd(ctx context.Context, chatID int64) {
	h.send(chatID, h.service.StartAdd(ctx, chatID))
}

// HandleRemove обрабатывает команду /remove_banword.
func (h *Handler) HandleRemove(ctx context.Context, chatID int64) {
	h.send(chatID, h.service.StartRemove(ctx, chatID))
}

// HandleStats обрабатывает команду /stats.
func (h *Handler) HandleStats(ctx context.Context, chatID int64) {
	h.send(chatID, h.service.Stats(ctx, chatID))
}

// HandleCancel обрабатывает команду /cancel.
func (h *Handler) HandleCancel(ctx context.Context, chatID int64) {
	h.send(chatID, h.service.Cancel(chatID))
}

// HandleText обрабатывает свободный текст внутри незавершённого диалога.
func (h *Handler) HandleText(ctx context.Context, chatID int64, text string) {
	h.send(chatID, h.service.HandleText(ctx, chatID, text))
}

func (h *Handler) send(chatID int64, reply Reply) {
	if reply.Text == "" {
		return
	}

	msg := tgbotapi.NewMessage(chatID, reply.Text)
	switch {
	case len(reply.Menu) > 0:
		msg.ReplyMarkup = buildMenu(reply.Menu)
	case reply.CloseMenu:
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	}

	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

// buildMenu собирает клавиатуру выбора: по кнопке на слово и «Отмена» внизу.
func buildMenu(words []string) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(words)+1)
	for _, w := range words {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(w)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("Отмена")))

	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.OneTimeKeyboard = true
	return markup
}
