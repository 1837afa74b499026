// Package tracker — repository.go выполняет операции с таблицами chats и ban_word_usages.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository работает с таблицами chats и ban_word_usages.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий трекера.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetOrCreateChat возвращает запись чата, создавая её при первом обращении.
// Создание идемпотентно: проигравший гонку INSERT не получает строку из
// RETURNING и читает уже существующую запись.
func (r *Repository) GetOrCreateChat(ctx context.Context, chatID int64, now time.Time) (*Chat, bool, error) {
	var last time.Time
	err := r.db.QueryRow(ctx, `
		INSERT INTO chats (id, last_trigger_at)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
		RETURNING last_trigger_at
	`, chatID, now).Scan(&last)
	if err == nil {
		return &Chat{ID: chatID, LastTriggerAt: last}, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("создание чата %d: %w", chatID, err)
	}

	err = r.db.QueryRow(ctx,
		"SELECT last_trigger_at FROM chats WHERE id = $1", chatID,
	).Scan(&last)
	if err != nil {
		return nil, false, fmt.Errorf("чтение чата %d: %w", chatID, err)
	}
	return &Chat{ID: chatID, LastTriggerAt: last}, false, nil
}

// UpdateTimestamp обновляет отметку последнего срабатывания.
func (r *Repository) UpdateTimestamp(ctx context.Context, chatID int64, ts time.Time) error {
	_, err := r.db.Exec(ctx,
		"UPDATE chats SET last_trigger_at = $2 WHERE id = $1", chatID, ts,
	)
	return err
}

// ListWordTexts возвращает тексты запретных слов чата для матчинга.
func (r *Repository) ListWordTexts(ctx context.Context, chatID int64) ([]string, error) {
	rows, err := r.db.Query(ctx,
		"SELECT text FROM ban_words WHERE chat_id = $1 ORDER BY text", chatID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// RecordUsage записывает одно срабатывание слова.
func (r *Repository) RecordUsage(ctx context.Context, chatID int64, text string, ts time.Time) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO ban_word_usages (chat_id, text, used_at) VALUES ($1, $2, $3)",
		chatID, text, ts,
	)
	return err
}

// PruneUsagesBefore удаляет срабатывания старше cutoff. Возвращает число удалённых.
func (r *Repository) PruneUsagesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM ban_word_usages WHERE used_at < $1", cutoff,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
