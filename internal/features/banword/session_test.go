package banword

import (
	"sync"
	"testing"
)

func TestSessions_Lifecycle(t *testing.T) {
	t.Parallel()

	s := NewSessions()

	if s.Busy(1) {
		t.Fatal("новый чат не должен быть busy")
	}

	s.Set(1, StateAwaitingAddWord, nil)
	if !s.Busy(1) {
		t.Fatal("ожидалось busy после Set")
	}
	if s.Busy(2) {
		t.Fatal("состояние одного чата не видно другому")
	}

	s.Set(1, StateAwaitingRemoveChoice, []string{"блин"})
	got := s.Get(1)
	if got.State != StateAwaitingRemoveChoice || len(got.Words) != 1 {
		t.Fatalf("unexpected session: %+v", got)
	}

	s.Clear(1)
	if s.Busy(1) {
		t.Fatal("после Clear чат снова idle")
	}
}

func TestSessions_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := NewSessions()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(chatID int64) {
			defer wg.Done()
			s.Set(chatID, StateAwaitingAddWord, nil)
			s.Get(chatID)
			s.Busy(chatID)
			s.Clear(chatID)
		}(int64(i % 5))
	}
	wg.Wait()
}
