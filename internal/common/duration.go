// Package common — duration.go превращает интервал времени
// в человекочитаемую строку вида «2 дня 3 часа 5 минут».
package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatDelta раскладывает интервал на дни/часы/минуты/секунды и собирает
// строку из ненулевых компонентов в порядке убывания единицы.
// Нулевые компоненты опускаются; полностью нулевой интервал даёт пустую
// строку — вызывающий в этом случае не отвечает вообще.
//
// Примеры:
//
//	FormatDelta(0)                → ""
//	FormatDelta(24 * time.Hour)   → "1 день"
//	FormatDelta(2*time.Hour + 5*time.Minute) → "2 часа 5 минут"
func FormatDelta(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	total := int(d / time.Second)
	days := total / (24 * 60 * 60)
	hours := (total / (60 * 60)) % 24
	minutes := (total / 60) % 60
	seconds := total % 60

	parts := make([]string, 0, 4)
	if days != 0 {
		parts = append(parts, fmt.Sprintf("%d %s", days, PluralizeDays(days)))
	}
	if hours != 0 {
		parts = append(parts, fmt.Sprintf("%d %s", hours, PluralizeHours(hours)))
	}
	if minutes != 0 {
		parts = append(parts, fmt.Sprintf("%d %s", minutes, PluralizeMinutes(minutes)))
	}
	if seconds != 0 {
		parts = append(parts, fmt.Sprintf("%d %s", seconds, PluralizeSeconds(seconds)))
	}

	return strings.Join(parts, " ")
}
