// Package tracker отслеживает запретные слова в сообщениях и отвечает,
// сколько времени чат продержался без них.
// models.go описывает структуры данных трекера.
package tracker

import "time"

// Chat — запись отслеживаемого чата.
// LastTriggerAt обновляется при каждом срабатывании, в том числе погашенном.
type Chat struct {
	ID            int64     `db:"id"`
	LastTriggerAt time.Time `db:"last_trigger_at"`
}

// Usage — одно срабатывание конкретного слова в чате. Никогда не изменяется.
type Usage struct {
	ChatID int64     `db:"chat_id"`
	Text   string    `db:"text"`
	UsedAt time.Time `db:"used_at"`
}
