package common

import "testing"

func TestPluralizeDays(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n    int
		want string
	}{
		{0, "дней"},
		{1, "день"},
		{2, "дня"},
		{4, "дня"},
		{5, "дней"},
		{11, "дней"},
		{12, "дней"},
		{14, "дней"},
		{21, "день"},
		{22, "дня"},
		{25, "дней"},
		{100, "дней"},
		{101, "день"},
		{111, "дней"},
	}

	for _, c := range cases {
		if got := PluralizeDays(c.n); got != c.want {
			t.Errorf("PluralizeDays(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestPluralizeHours(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n    int
		want string
	}{
		{1, "час"},
		{2, "часа"},
		{5, "часов"},
		{11, "часов"},
		{21, "час"},
		{23, "часа"},
	}

	for _, c := range cases {
		if got := PluralizeHours(c.n); got != c.want {
			t.Errorf("PluralizeHours(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestPluralizeMinutes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n    int
		want string
	}{
		{1, "минута"},
		{2, "минуты"},
		{5, "минут"},
		{11, "минут"},
		{31, "минута"},
		{59, "минут"},
	}

	for _, c := range cases {
		if got := PluralizeMinutes(c.n); got != c.want {
			t.Errorf("PluralizeMinutes(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestPluralizeSeconds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n    int
		want string
	}{
		{1, "секунда"},
		{3, "секунды"},
		{12, "секунд"},
		{22, "секунды"},
		{40, "секунд"},
	}

	for _, c := range cases {
		if got := PluralizeSeconds(c.n); got != c.want {
			t.Errorf("PluralizeSeconds(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

// Форма стабильна: одно и то же n всегда даёт одну и ту же строку,
// и это всегда одна из трёх фиксированных форм.
func TestPluralizeStable(t *testing.T) {
	t.Parallel()

	forms := map[string]bool{"день": true, "дня": true, "дней": true}
	for n := 0; n <= 200; n++ {
		first := PluralizeDays(n)
		if !forms[first] {
			t.Fatalf("PluralizeDays(%d) = %q: не из трёх форм", n, first)
		}
		if second := PluralizeDays(n); second != first {
			t.Fatalf("PluralizeDays(%d) нестабильна: %q != %q", n, first, second)
		}
	}
}
