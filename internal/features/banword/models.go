// Package banword — models.go описывает структуры данных управления словами.
package banword

// WordCount — число использований одного слова в окне статистики.
type WordCount struct {
	Text  string `db:"text"`
	Count int    `db:"count"`
}
