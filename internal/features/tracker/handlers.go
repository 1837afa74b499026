// Package tracker — handlers.go отправляет ответы трекера в Telegram.
package tracker

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// Handler обрабатывает сообщения и команду /start.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик трекера.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleMessage прогоняет текст сообщения через движок и отвечает,
// если набралось ненулевое «время без запретных слов».
func (h *Handler) HandleMessage(ctx context.Context, chatID int64, text string) {
	verdict, err := h.service.HandleMessage(ctx, chatID, text, time.Now())
	if err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка обработки сообщения")
		return
	}

	if verdict.Skip != SkipNone {
		log.WithFields(log.Fields{
			"chat_id": chatID,
			"reason":  string(verdict.Skip),
		}).Debug("Сообщение пропущено")
		return
	}

	if verdict.Reply != "" {
		h.sendMessage(chatID, verdict.Reply)
	}
}

// HandleStart обрабатывает /start: начинает отслеживание чата.
// Отвечает только при первом запуске в этом чате.
func (h *Handler) HandleStart(ctx context.Context, chatID int64) {
	created, err := h.service.StartTracking(ctx, chatID, time.Now())
	if err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка старта отслеживания")
		return
	}
	if created {
		log.WithField("chat_id", chatID).Info("Начато отслеживание чата")
		h.sendMessage(chatID, "💣 Отслеживание запретных слов началось.")
	}
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}
