// Package banword управляет списком запретных слов чата через пошаговый
// диалог: добавление, удаление и статистика использований.
// session.go хранит состояния диалогов (in-memory, по одному на чат).
package banword

import "sync"

// State — шаг диалога управления словами.
type State int

const (
	// StateIdle — диалога нет.
	StateIdle State = iota
	// StateAwaitingAddWord — ждём слово для добавления.
	StateAwaitingAddWord
	// StateAwaitingRemoveChoice — ждём выбор слова для удаления.
	StateAwaitingRemoveChoice
)

// Session — состояние диалога одного чата.
// Words — снимок списка слов на момент показа меню удаления.
type Session struct {
	State State
	Words []string
}

// Sessions — потокобезопасное хранилище диалогов, ключ — chat_id.
// Состояния не переживают перезапуск процесса.
type Sessions struct {
	mu     sync.RWMutex
	byChat map[int64]Session
}

// NewSessions создаёт пустое хранилище диалогов.
func NewSessions() *Sessions {
	return &Sessions{byChat: make(map[int64]Session)}
}

// Get возвращает текущее состояние диалога чата.
func (s *Sessions) Get(chatID int64) Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byChat[chatID]
}

// Set переводит диалог чата в состояние state со снимком words.
func (s *Sessions) Set(chatID int64, state State, words []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byChat[chatID] = Session{State: state, Words: words}
}

// Clear возвращает диалог чата в StateIdle.
func (s *Sessions) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byChat, chatID)
}

// Busy сообщает, идёт ли в чате незавершённый диалог.
func (s *Sessions) Busy(chatID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byChat[chatID].State != StateIdle
}
