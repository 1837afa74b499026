// Package tracker — service.go содержит решающую логику трекера:
// классификацию входящего сообщения, окно тишины и формирование ответа.
package tracker

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jopokorsar/banword-bot/internal/common"
	"github.com/jopokorsar/banword-bot/internal/config"
)

// SkipReason — причина, по которой сообщение не обрабатывается как триггер.
type SkipReason string

const (
	SkipNone           SkipReason = ""
	SkipChatNotAllowed SkipReason = "chat_not_allowed"
	SkipSessionBusy    SkipReason = "session_busy"
	SkipNoMatch        SkipReason = "no_match"
)

// Verdict — результат обработки одного сообщения.
// Skip != SkipNone означает, что сообщение отброшено без действий.
// Пустой Reply при Skip == SkipNone — срабатывание погашено окном тишины
// либо интервал нулевой (только что созданный чат).
type Verdict struct {
	Skip      SkipReason
	Created   bool
	Debounced bool
	Reply     string
}

// ChatRepository — операции хранилища, нужные трекеру.
type ChatRepository interface {
	GetOrCreateChat(ctx context.Context, chatID int64, now time.Time) (*Chat, bool, error)
	UpdateTimestamp(ctx context.Context, chatID int64, ts time.Time) error
	ListWordTexts(ctx context.Context, chatID int64) ([]string, error)
	RecordUsage(ctx context.Context, chatID int64, text string, ts time.Time) error
	PruneUsagesBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// SessionChecker сообщает, идёт ли в чате диалог управления словами.
// Пока диалог не завершён, срабатывание триггеров приостановлено.
type SessionChecker interface {
	Busy(chatID int64) bool
}

// Service реализует триггерный движок.
type Service struct {
	repo     ChatRepository
	sessions SessionChecker
	cfg      *config.Config
}

// NewService создаёт сервис трекера.
func NewService(repo ChatRepository, sessions SessionChecker, cfg *config.Config) *Service {
	return &Service{repo: repo, sessions: sessions, cfg: cfg}
}

// classify прогоняет сообщение через упорядоченный список именованных проверок.
// Первая непройденная проверка даёт причину пропуска.
func (s *Service) classify(ctx context.Context, chatID int64, text string) ([]string, SkipReason, error) {
	var matched []string

	checks := []struct {
		reason SkipReason
		pass   func() (bool, error)
	}{
		{SkipChatNotAllowed, func() (bool, error) {
			return s.cfg.IsAllowedChat(chatID), nil
		}},
		{SkipSessionBusy, func() (bool, error) {
			return !s.sessions.Busy(chatID), nil
		}},
		{SkipNoMatch, func() (bool, error) {
			chatWords, err := s.repo.ListWordTexts(ctx, chatID)
			if err != nil {
				return false, fmt.Errorf("чтение слов чата: %w", err)
			}
			phrases := append(append([]string{}, s.cfg.TriggerWords...), chatWords...)
			matched = MatchPhrases(text, phrases)
			return len(matched) > 0, nil
		}},
	}

	for _, c := range checks {
		ok, err := c.pass()
		if err != nil {
			return nil, c.reason, err
		}
		if !ok {
			return nil, c.reason, nil
		}
	}
	return matched, SkipNone, nil
}

// HandleMessage обрабатывает одно входящее сообщение чата.
//
// Порядок: классификация → get-or-create записи чата → сравнение интервала
// с окном тишины. Внутри окна срабатывание гасится: отметка обновляется,
// ответа нет. Иначе формируется ответ с интервалом, отметка обновляется
// безусловно и записывается по одному использованию на совпавшее слово.
func (s *Service) HandleMessage(ctx context.Context, chatID int64, text string, now time.Time) (Verdict, error) {
	matched, skip, err := s.classify(ctx, chatID, text)
	if err != nil {
		return Verdict{Skip: skip}, err
	}
	if skip != SkipNone {
		return Verdict{Skip: skip}, nil
	}

	chat, created, err := s.repo.GetOrCreateChat(ctx, chatID, now)
	if err != nil {
		return Verdict{}, err
	}

	delta := now.Sub(chat.LastTriggerAt)
	log.WithFields(log.Fields{
		"chat_id": chatID,
		"delta":   delta.String(),
	}).Info("Триггер сработал")

	if delta < s.cfg.CooldownWindow {
		// Окно тишины: молча сдвигаем отметку, чтобы шквал сообщений
		// не породил шквал ответов. Сюда же попадает первое сообщение
		// только что созданного чата (delta ~ 0).
		if err := s.repo.UpdateTimestamp(ctx, chatID, now); err != nil {
			return Verdict{}, fmt.Errorf("обновление отметки чата %d: %w", chatID, err)
		}
		return Verdict{Created: created, Debounced: true}, nil
	}

	var reply string
	if formatted := common.FormatDelta(delta); formatted != "" {
		reply = "💣 Время без запретных слов: " + formatted + " 💥"
	}

	if err := s.repo.UpdateTimestamp(ctx, chatID, now); err != nil {
		return Verdict{}, fmt.Errorf("обновление отметки чата %d: %w", chatID, err)
	}

	for _, word := range matched {
		if err := s.repo.RecordUsage(ctx, chatID, word, now); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"chat_id": chatID,
				"word":    word,
			}).Warn("Не удалось записать использование слова")
		}
	}

	return Verdict{Created: created, Reply: reply}, nil
}

// StartTracking создаёт запись чата по команде /start.
// Возвращает true, если чат ранее не отслеживался.
func (s *Service) StartTracking(ctx context.Context, chatID int64, now time.Time) (bool, error) {
	_, created, err := s.repo.GetOrCreateChat(ctx, chatID, now)
	return created, err
}

// PruneOldUsages удаляет использования старше окна статистики.
func (s *Service) PruneOldUsages(ctx context.Context, now time.Time) (int64, error) {
	return s.repo.PruneUsagesBefore(ctx, now.Add(-s.cfg.StatsWindow))
}
