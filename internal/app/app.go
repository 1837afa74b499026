// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы, обработчики,
// фильтры и собирает всё в один объект Bot.
package app

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/jopokorsar/banword-bot/internal/bot"
	"github.com/jopokorsar/banword-bot/internal/bot/filters"
	"github.com/jopokorsar/banword-bot/internal/config"
	"github.com/jopokorsar/banword-bot/internal/db/postgres"
	"github.com/jopokorsar/banword-bot/internal/features/banword"
	"github.com/jopokorsar/banword-bot/internal/features/tracker"
	"github.com/jopokorsar/banword-bot/internal/jobs"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	// === 3. Репозитории и сессии ===
	trackerRepo := tracker.NewRepository(pool)
	banwordRepo := banword.NewRepository(pool)
	sessions := banword.NewSessions()

	// === 4. Сервисы ===
	trackerService := tracker.NewService(trackerRepo, sessions, cfg)
	banwordService := banword.NewService(banwordRepo, sessions, cfg)

	// === 5. Обработчики и фильтры ===
	trackerHandler := tracker.NewHandler(trackerService, botAPI)
	banwordHandler := banword.NewHandler(banwordService, botAPI)
	chatFilter := filters.NewChatFilter(cfg)

	// === 6. Собираем бота ===
	b := bot.New(botAPI, cfg, trackerHandler, banwordHandler, sessions, chatFilter)

	// === 7. Планировщик задач ===
	scheduler := jobs.NewScheduler(trackerService)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		DB:        pool,
		BotAPI:    botAPI,
	}, nil
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.InitMigrations(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Chats},
		{2, migration002BanWords},
		{3, migration003Usages},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001Chats = `
CREATE TABLE IF NOT EXISTS chats (
    id BIGINT PRIMARY KEY,
    last_trigger_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

var migration002BanWords = `
CREATE TABLE IF NOT EXISTS ban_words (
    chat_id BIGINT NOT NULL REFERENCES chats(id),
    text VARCHAR(255) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (chat_id, text)
);
`

var migration003Usages = `
CREATE TABLE IF NOT EXISTS ban_word_usages (
    id BIGSERIAL PRIMARY KEY,
    chat_id BIGINT NOT NULL REFERENCES chats(id),
    text VARCHAR(255) NOT NULL,
    used_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_usages_chat_text ON ban_word_usages(chat_id, text);
CREATE INDEX IF NOT EXISTS idx_usages_used_at ON ban_word_usages(used_at);
`
