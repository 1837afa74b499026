// Package filters решает, какие сообщения бот вообще рассматривает.
package filters

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/jopokorsar/banword-bot/internal/config"
)

// ChatFilter пропускает сообщения только из отслеживаемых чатов.
type ChatFilter struct {
	cfg *config.Config
}

func NewChatFilter(cfg *config.Config) *ChatFilter {
	return &ChatFilter{cfg: cfg}
}

// Allowed проверяет, что сообщение пришло из разрешённого чата
// и у него есть отправитель (сервисные сообщения каналов отбрасываются).
func (f *ChatFilter) Allowed(message *tgbotapi.Message) bool {
	if message == nil || message.Chat == nil {
		log.WithField("component", "ChatFilter").Warn("nil message/chat")
		return false
	}
	if message.From == nil {
		log.WithFields(log.Fields{
			"component": "ChatFilter",
			"chat_id":   message.Chat.ID,
			"chat_type": message.Chat.Type,
		}).Warn("nil message.From (service/channel message?)")
		return false
	}

	if f.cfg.IsAllowedChat(message.Chat.ID) {
		return true
	}

	log.WithFields(log.Fields{
		"component": "ChatFilter",
		"chat_id":   message.Chat.ID,
	}).Debug("deny: chat not in allowed list")
	return false
}
