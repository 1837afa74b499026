// Package banword — service.go содержит машину состояний диалога:
// добавление слова, удаление через меню, отмена и статистика.
// Любой завершающий шаг — успех, ошибка или отмена — возвращает диалог
// в StateIdle, чат не может застрять в промежуточном состоянии.
package banword

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jopokorsar/banword-bot/internal/common"
	"github.com/jopokorsar/banword-bot/internal/config"
)

const cancelWord = "отмена"

// Reply — ответ пользователю. Menu непустой — показать клавиатуру выбора,
// CloseMenu — убрать ранее показанную клавиатуру.
type Reply struct {
	Text      string
	Menu      []string
	CloseMenu bool
}

// WordRepository — операции хранилища, нужные диалогу управления словами.
type WordRepository interface {
	EnsureChat(ctx context.Context, chatID int64, now time.Time) error
	AddWord(ctx context.Context, chatID int64, text string) (bool, error)
	RemoveWord(ctx context.Context, chatID int64, text string) (bool, error)
	ListWords(ctx context.Context, chatID int64) ([]string, error)
	CountWords(ctx context.Context, chatID int64) (int, error)
	CountUsagesSince(ctx context.Context, chatID int64, since time.Time) ([]WordCount, error)
}

// Service управляет диалогами запретных слов.
type Service struct {
	repo     WordRepository
	sessions *Sessions
	cfg      *config.Config
	now      func() time.Time
}

// NewService создаёт сервис управления словами.
func NewService(repo WordRepository, sessions *Sessions, cfg *config.Config) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
		cfg:      cfg,
		now:      time.Now,
	}
}

// StartAdd обрабатывает команду добавления слова.
// Из StateIdle: проверяет лимит слов и переводит диалог в ожидание слова.
func (s *Service) StartAdd(ctx context.Context, chatID int64) Reply {
	if err := s.repo.EnsureChat(ctx, chatID, s.now()); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка создания чата")
		return Reply{Text: "Ошибка, попробуйте ещё раз"}
	}

	count, err := s.repo.CountWords(ctx, chatID)
	if err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка подсчёта слов")
		return Reply{Text: "Ошибка, попробуйте ещё раз"}
	}
	if count >= s.cfg.WordLimit {
		return Reply{Text: fmt.Sprintf(
			"Лимит достигнут: не больше %d %s на чат",
			s.cfg.WordLimit, common.PluralizeWords(s.cfg.WordLimit),
		)}
	}

	s.sessions.Set(chatID, StateAwaitingAddWord, nil)
	log.WithField("chat_id", chatID).Debug("Диалог: ожидание слова для добавления")
	return Reply{Text: "Какое слово добавляем?"}
}

// submitWord принимает слово в StateAwaitingAddWord и завершает диалог.
func (s *Service) submitWord(ctx context.Context, chatID int64, text string) Reply {
	defer s.sessions.Clear(chatID)

	word := strings.ToLower(strings.TrimSpace(text))
	if word == "" {
		return Reply{Text: "Ошибка при добавлении слова"}
	}

	count, err := s.repo.CountWords(ctx, chatID)
	if err == nil && count >= s.cfg.WordLimit {
		return Reply{Text: fmt.Sprintf(
			"Лимит достигнут: не больше %d %s на чат",
			s.cfg.WordLimit, common.PluralizeWords(s.cfg.WordLimit),
		)}
	}

	added, err := s.repo.AddWord(ctx, chatID, word)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"chat_id": chatID, "word": word}).
			Error("Ошибка добавления слова")
		return Reply{Text: "Ошибка при добавлении слова"}
	}
	if !added {
		log.WithFields(log.Fields{"chat_id": chatID, "word": word}).Debug("Слово уже есть")
		return Reply{Text: "Ошибка при добавлении слова"}
	}

	log.WithFields(log.Fields{"chat_id": chatID, "word": word}).Info("Слово добавлено")
	return Reply{Text: "Слово добавлено"}
}

// StartRemove обрабатывает команду удаления слова.
// Из StateIdle: показывает меню текущих слов или отвечает, что удалять нечего.
func (s *Service) StartRemove(ctx context.Context, chatID int64) Reply {
	words, err := s.repo.ListWords(ctx, chatID)
	if err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка чтения слов")
		return Reply{Text: "Ошибка, попробуйте ещё раз"}
	}
	if len(words) == 0 {
		return Reply{Text: "Нечего удалять"}
	}

	s.sessions.Set(chatID, StateAwaitingRemoveChoice, words)
	log.WithField("chat_id", chatID).Debug("Диалог: ожидание выбора слова для удаления")
	return Reply{Text: "Какое слово удаляем?", Menu: words}
}

// submitRemoval принимает выбор в StateAwaitingRemoveChoice и завершает диалог.
// Выбор сверяется со снимком списка, показанным в меню.
func (s *Service) submitRemoval(ctx context.Context, chatID int64, selection string) Reply {
	session := s.sessions.Get(chatID)
	defer s.sessions.Clear(chatID)

	choice := strings.ToLower(strings.TrimSpace(selection))
	found := false
	for _, w := range session.Words {
		if w == choice {
			found = true
			break
		}
	}
	if !found {
		return Reply{Text: "Такого слова нет в списке", CloseMenu: true}
	}

	removed, err := s.repo.RemoveWord(ctx, chatID, choice)
	if err != nil || !removed {
		if err != nil {
			log.WithError(err).WithFields(log.Fields{"chat_id": chatID, "word": choice}).
				Error("Ошибка удаления слова")
		}
		return Reply{Text: "Ошибка при удалении слова", CloseMenu: true}
	}

	log.WithFields(log.Fields{"chat_id": chatID, "word": choice}).Info("Слово удалено")
	return Reply{Text: "Слово удалено", CloseMenu: true}
}

// Cancel прерывает диалог из любого незавершённого состояния.
func (s *Service) Cancel(chatID int64) Reply {
	if !s.sessions.Busy(chatID) {
		return Reply{Text: "Нечего отменять"}
	}
	s.sessions.Clear(chatID)
	log.WithField("chat_id", chatID).Debug("Диалог отменён")
	return Reply{Text: "Понял, отмена", CloseMenu: true}
}

// Stats показывает слова чата с числом использований за окно статистики.
// Доступна только из StateIdle (роутер не пускает её в другие состояния).
func (s *Service) Stats(ctx context.Context, chatID int64) Reply {
	since := s.now().Add(-s.cfg.StatsWindow)
	counts, err := s.repo.CountUsagesSince(ctx, chatID, since)
	if err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка чтения статистики")
		return Reply{Text: "Ошибка, попробуйте ещё раз"}
	}
	if len(counts) == 0 {
		return Reply{Text: "Нечего показывать"}
	}

	var b strings.Builder
	b.WriteString("📊 Использования за последний месяц:\n")
	for _, wc := range counts {
		fmt.Fprintf(&b, "%s — %d\n", wc.Text, wc.Count)
	}
	return Reply{Text: strings.TrimRight(b.String(), "\n")}
}

// HandleText обрабатывает свободный текст по текущему состоянию диалога.
// Текст «отмена» в любом незавершённом состоянии прерывает диалог.
func (s *Service) HandleText(ctx context.Context, chatID int64, text string) Reply {
	session := s.sessions.Get(chatID)
	if session.State == StateIdle {
		return Reply{}
	}

	if strings.ToLower(strings.TrimSpace(text)) == cancelWord {
		return s.Cancel(chatID)
	}

	switch session.State {
	case StateAwaitingAddWord:
		return s.submitWord(ctx, chatID, text)
	case StateAwaitingRemoveChoice:
		return s.submitRemoval(ctx, chatID, text)
	default:
		return Reply{}
	}
}
