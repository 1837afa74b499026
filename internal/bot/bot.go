// Package bot содержит главный модуль бота: цикл апдейтов и маршрутизацию.
// Апдейты разных чатов обрабатываются параллельно, апдейты одного чата —
// строго последовательно: и проверка окна тишины, и состояние диалога
// являются последовательностями «проверил-сделал».
package bot

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/jopokorsar/banword-bot/internal/bot/filters"
	"github.com/jopokorsar/banword-bot/internal/bot/middleware"
	"github.com/jopokorsar/banword-bot/internal/config"
	"github.com/jopokorsar/banword-bot/internal/features/banword"
	"github.com/jopokorsar/banword-bot/internal/features/tracker"
)

// Bot — главная структура бота, объединяющая все компоненты.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	chatFilter  *filters.ChatFilter
	rateLimiter *middleware.RateLimiter

	trackerHandler *tracker.Handler
	banwordHandler *banword.Handler
	sessions       *banword.Sessions

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
	// по мьютексу на чат: сериализация обработки внутри одного чата
	chatLocks sync.Map
}

// New создаёт новый экземпляр бота со всеми зависимостями.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	trackerHandler *tracker.Handler,
	banwordHandler *banword.Handler,
	sessions *banword.Sessions,
	chatFilter *filters.ChatFilter,
) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		api:            api,
		cfg:            cfg,
		chatFilter:     chatFilter,
		rateLimiter:    middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		trackerHandler: trackerHandler,
		banwordHandler: banwordHandler,
		sessions:       sessions,
		inflight:       make(chan struct{}, maxInFlight),
	}
}

// Start запускает polling обновлений от Telegram.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Бот запущен и ожидает сообщения...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			b.api.StopReceivingUpdates()
			b.rateLimiter.Close()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				return
			}

			// лимит параллелизма
			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// chatLock возвращает мьютекс чата, создавая его при первом обращении.
func (b *Bot) chatLock(chatID int64) *sync.Mutex {
	mu, _ := b.chatLocks.LoadOrStore(chatID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// handleUpdate обрабатывает одно обновление от Telegram.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic()

	if update.Message == nil || update.Message.Text == "" {
		return
	}
	message := update.Message

	middleware.LogMessage(message)

	if !b.chatFilter.Allowed(message) {
		return
	}

	if message.From != nil && !b.rateLimiter.Allow(message.From.ID) {
		log.WithField("user_id", message.From.ID).Debug("rate limited")
		return
	}

	chatID := message.Chat.ID

	mu := b.chatLock(chatID)
	mu.Lock()
	defer mu.Unlock()

	// Команды маршрутизируются из StateIdle; /cancel работает всегда.
	if message.IsCommand() && (!b.sessions.Busy(chatID) || message.Command() == "cancel") {
		b.routeCommand(ctx, chatID, message.Command())
		return
	}

	// Незавершённый диалог: любой текст — ввод для текущего шага.
	if b.sessions.Busy(chatID) {
		b.banwordHandler.HandleText(ctx, chatID, message.Text)
		return
	}

	b.trackerHandler.HandleMessage(ctx, chatID, message.Text)
}

// routeCommand маршрутизирует команду к нужному обработчику.
func (b *Bot) routeCommand(ctx context.Context, chatID int64, cmd string) {
	log.WithFields(log.Fields{
		"chat_id": chatID,
		"cmd":     cmd,
	}).Debug("routing command")

	switch cmd {
	case "start":
		b.trackerHandler.HandleStart(ctx, chatID)

	case "add_banword":
		b.banwordHandler.HandleAdd(ctx, chatID)

	case "remove_banword":
		b.banwordHandler.HandleRemove(ctx, chatID)

	case "stats":
		b.banwordHandler.HandleStats(ctx, chatID)

	case "cancel":
		b.banwordHandler.HandleCancel(ctx, chatID)
	}
}
