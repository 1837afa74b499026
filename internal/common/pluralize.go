// Package common содержит общие утилиты: русская плюрализация
// и форматирование интервалов времени.
package common

// Правила русского языка, одинаковые для всех единиц:
//   - n%10==1 И n%100!=11 → единственное число (1, 21, 31, 101, ...)
//   - n%10 в [2,4] И n%100 НЕ в [12,14] → малое множественное (2, 3, 4, 22, ...)
//   - остальные случаи → большое множественное (0, 5-20, 25-30, 100, ...)
func pluralize(n int, one, few, many string) string {
	if n < 0 {
		n = -n
	}
	lastDigit := n % 10
	lastTwoDigits := n % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return one
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return few
	}
	return many
}

// PluralizeDays возвращает правильную форму слова «день» для числа n.
//
// Примеры:
//
//	PluralizeDays(1)  → "день"
//	PluralizeDays(3)  → "дня"
//	PluralizeDays(11) → "дней"
//	PluralizeDays(21) → "день"
func PluralizeDays(n int) string {
	return pluralize(n, "день", "дня", "дней")
}

// PluralizeHours возвращает правильную форму слова «час».
func PluralizeHours(n int) string {
	return pluralize(n, "час", "часа", "часов")
}

// PluralizeMinutes возвращает правильную форму слова «минута».
func PluralizeMinutes(n int) string {
	return pluralize(n, "минута", "минуты", "минут")
}

// PluralizeSeconds возвращает правильную форму слова «секунда».
func PluralizeSeconds(n int) string {
	return pluralize(n, "секунда", "секунды", "секунд")
}

// PluralizeWords возвращает правильную форму слова «слово».
func PluralizeWords(n int) string {
	return pluralize(n, "слово", "слова", "слов")
}
