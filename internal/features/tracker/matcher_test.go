package tracker

import (
	"reflect"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want []string
	}{
		{"регистр и пробелы", "Он Опять  Сказал", []string{"он", "опять", "сказал"}},
		{"пунктуация заменяется пробелом", "блин, опять?!", []string{"блин", "опять"}},
		{"дефис тоже разделитель", "как-нибудь", []string{"как", "нибудь"}},
		{"пустая строка", "", nil},
		{"одна пунктуация", ",.?!", nil},
	}

	for _, c := range cases {
		got := NormalizeText(c.text)
		if len(got) == 0 && len(c.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("%s: NormalizeText(%q) = %v, want %v", c.name, c.text, got, c.want)
		}
	}
}

func TestMatchPhrases(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		text    string
		phrases []string
		want    bool
	}{
		{"слово среди токенов", "Он опять блин сказал", []string{"блин"}, true},
		{"не подстрока", "блинчики", []string{"блин"}, false},
		{"нет совпадения", "все хорошо", []string{"блин"}, false},
		{"регистр не важен", "БЛИН!", []string{"блин"}, true},
		{"фраза из двух слов, порядок не важен", "сказал опять блин он", []string{"блин опять"}, true},
		{"фраза совпадает не целиком", "ну блин", []string{"блин опять"}, false},
		{"любая из фраз", "тут кирпич лежит", []string{"блин", "кирпич"}, true},
		{"пустой текст", "", []string{"блин"}, false},
		{"пустой список фраз", "блин", nil, false},
	}

	for _, c := range cases {
		matched := MatchPhrases(c.text, c.phrases)
		if got := len(matched) > 0; got != c.want {
			t.Errorf("%s: MatchPhrases(%q, %v) = %v, want %v", c.name, c.text, c.phrases, matched, c.want)
		}
	}
}

func TestMatchPhrasesReturnsAllMatched(t *testing.T) {
	t.Parallel()

	matched := MatchPhrases("блин и кирпич", []string{"блин", "кирпич", "стена"})
	want := []string{"блин", "кирпич"}
	if !reflect.DeepEqual(matched, want) {
		t.Errorf("MatchPhrases = %v, want %v", matched, want)
	}
}
