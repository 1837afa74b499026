package config

import (
	"reflect"
	"testing"
)

func TestParseInt64CSV(t *testing.T) {
	t.Parallel()

	got, err := parseInt64CSV(" 123, -456,789 ")
	if err != nil {
		t.Fatalf("parseInt64CSV: %v", err)
	}
	want := []int64{123, -456, 789}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseInt64CSV = %v, want %v", got, want)
	}

	if _, err := parseInt64CSV("123,abc"); err == nil {
		t.Error("ожидалась ошибка на нечисловом значении")
	}

	got, err = parseInt64CSV("")
	if err != nil || got != nil {
		t.Errorf("пустая строка: got %v, err %v", got, err)
	}
}

func TestParseStringCSV(t *testing.T) {
	t.Parallel()

	got := parseStringCSV("Блин, Жареный Блин , ,кирпич")
	want := []string{"блин", "жареный блин", "кирпич"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseStringCSV = %v, want %v", got, want)
	}
}

func TestIsAllowedChat(t *testing.T) {
	t.Parallel()

	cfg := &Config{AllowedChatIDs: []int64{123, 456}}
	if !cfg.IsAllowedChat(123) {
		t.Error("123 должен быть разрешён")
	}
	if cfg.IsAllowedChat(789) {
		t.Error("789 не должен быть разрешён")
	}
}
