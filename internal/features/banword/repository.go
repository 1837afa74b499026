// Package banword — repository.go выполняет операции с таблицами ban_words
// и ban_word_usages.
package banword

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository работает с таблицами ban_words и ban_word_usages.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт репозиторий запретных слов.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// EnsureChat создаёт запись чата, если её ещё нет (для внешнего ключа слов).
func (r *Repository) EnsureChat(ctx context.Context, chatID int64, now time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO chats (id, last_trigger_at)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`, chatID, now)
	return err
}

// AddWord добавляет слово чату. Возвращает false, если слово уже есть:
// дубликат — не ошибка, а отказ (ON CONFLICT DO NOTHING + RowsAffected).
func (r *Repository) AddWord(ctx context.Context, chatID int64, text string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO ban_words (chat_id, text)
		VALUES ($1, $2)
		ON CONFLICT (chat_id, text) DO NOTHING
	`, chatID, text)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// RemoveWord удаляет слово чата. Возвращает false, если слова не было.
func (r *Repository) RemoveWord(ctx context.Context, chatID int64, text string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM ban_words WHERE chat_id = $1 AND text = $2", chatID, text,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListWords возвращает слова чата в алфавитном порядке.
func (r *Repository) ListWords(ctx context.Context, chatID int64) ([]string, error) {
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

// CountWords возвращает число слов чата.
func (r *Repository) CountWords(ctx context.Context, chatID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM ban_words WHERE chat_id = $1", chatID,
	).Scan(&count)
	return count, err
}

// CountUsagesSince возвращает слова чата с числом использований начиная
// с since, по убыванию числа. Слова без использований попадают с нулём.
func (r *Repository) CountUsagesSince(ctx context.Context, chatID int64, since time.Time) ([]WordCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT w.text, COUNT(u.text)
		FROM ban_words w
		LEFT JOIN ban_word_usages u
			ON u.chat_id = w.chat_id AND u.text = w.text AND u.used_at >= $2
		WHERE w.chat_id = $1
		GROUP BY w.text
		ORDER BY COUNT(u.text) DESC, w.text
	`, chatID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []WordCount
	for rows.Next() {
		var wc WordCount
		if err := rows.Scan(&wc.Text, &wc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, wc)
	}
	return counts, rows.Err()
}
