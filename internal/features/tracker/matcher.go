// Package tracker — matcher.go определяет, содержит ли сообщение запретную фразу.
package tracker

import "strings"

// Знаки препинания заменяются на пробел перед токенизацией.
var punctReplacer = strings.NewReplacer(
	",", " ", ".", " ", "-", " ", "?", " ", "!", " ", ":", " ", ";", " ",
)

// NormalizeText приводит текст к нижнему регистру, убирает пунктуацию
// и разбивает на токены. Повторные пробелы схлопываются.
func NormalizeText(text string) []string {
	return strings.Fields(punctReplacer.Replace(strings.ToLower(text)))
}

// MatchPhrases возвращает фразы, все слова которых присутствуют среди
// токенов сообщения. Сравнение по целому токену, не по подстроке:
// «блинчики» не срабатывает на «блин». Порядок слов не важен.
func MatchPhrases(text string, phrases []string) []string {
	if text == "" || len(phrases) == 0 {
		return nil
	}

	tokens := NormalizeText(text)
	if len(tokens) == 0 {
		return nil
	}
	present := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		present[t] = struct{}{}
	}

	var matched []string
	for _, phrase := range phrases {
		words := strings.Fields(strings.ToLower(phrase))
		if len(words) == 0 {
			continue
		}
		all := true
		for _, w := range words {
			if _, ok := present[w]; !ok {
				all = false
				break
			}
		}
		if all {
			matched = append(matched, phrase)
		}
	}
	return matched
}
