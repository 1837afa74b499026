package banword

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jopokorsar/banword-bot/internal/config"
)

// fakeRepo — мок-реализация Repository для тестов.
type fakeRepo struct {
	words  []string
	counts []WordCount

	addResult    bool
	addErr       error
	removeResult bool
	removeErr    error
	countErr     error
	listErr      error
	usagesErr    error

	addedWords   []string
	removedWords []string
}

func (f *fakeRepo) EnsureChat(context.Context, int64, time.Time) error { return nil }

func (f *fakeRepo) AddWord(_ context.Context, _ int64, text string) (bool, error) {
	if f.addErr != nil {
		return false, f.addErr
	}
	if f.addResult {
		f.addedWords = append(f.addedWords, text)
	}
	return f.addResult, nil
}

func (f *fakeRepo) RemoveWord(_ context.Context, _ int64, text string) (bool, error) {
	if f.removeErr != nil {
		return false, f.removeErr
	}
	if f.removeResult {
		f.removedWords = append(f.removedWords, text)
	}
	return f.removeResult, nil
}

func (f *fakeRepo) ListWords(context.Context, int64) ([]string, error) {
	return f.words, f.listErr
}

func (f *fakeRepo) CountWords(context.Context, int64) (int, error) {
	return len(f.words), f.countErr
}

func (f *fakeRepo) CountUsagesSince(context.Context, int64, time.Time) ([]WordCount, error) {
	return f.counts, f.usagesErr
}

func newTestService(repo WordRepository) (*Service, *Sessions) {
	sessions := NewSessions()
	cfg := &config.Config{WordLimit: 3, StatsWindow: 756 * time.Hour}
	return NewService(repo, sessions, cfg), sessions
}

const chatID = int64(123)

func TestAddFlow_Success(t *testing.T) {
	repo := &fakeRepo{addResult: true}
	svc, sessions := newTestService(repo)
	ctx := context.Background()

	reply := svc.StartAdd(ctx, chatID)
	require.Equal(t, "Какое слово добавляем?", reply.Text)
	require.Equal(t, StateAwaitingAddWord, sessions.Get(chatID).State)

	reply = svc.HandleText(ctx, chatID, "  КИРПИЧ ")
	require.Equal(t, "Слово добавлено", reply.Text)
	require.Equal(t, []string{"кирпич"}, repo.addedWords, "слово сохраняется в нижнем регистре")
	require.Equal(t, StateIdle, sessions.Get(chatID).State)
}

func TestAddFlow_DuplicateReportsFailure(t *testing.T) {
	repo := &fakeRepo{addResult: false}
	svc, sessions := newTestService(repo)
	ctx := context.Background()

	svc.StartAdd(ctx, chatID)
	reply := svc.HandleText(ctx, chatID, "кирпич")
	require.Equal(t, "Ошибка при добавлении слова", reply.Text)
	require.Equal(t, StateIdle, sessions.Get(chatID).State, "после неудачи диалог завершён")
}

func TestAddFlow_RepoErrorReturnsToIdle(t *testing.T) {
	repo := &fakeRepo{addErr: errors.New("db down")}
	svc, sessions := newTestService(repo)
	ctx := context.Background()

	svc.StartAdd(ctx, chatID)
	reply := svc.HandleText(ctx, chatID, "кирпич")
	require.Equal(t, "Ошибка при добавлении слова", reply.Text)
	require.Equal(t, StateIdle, sessions.Get(chatID).State)
}

func TestStartAdd_WordLimitReached(t *testing.T) {
	repo := &fakeRepo{words: []string{"а", "б", "в"}} // лимит 3 уже достигнут
	svc, sessions := newTestService(repo)

	reply := svc.StartAdd(context.Background(), chatID)
	require.Contains(t, reply.Text, "Лимит")
	require.Equal(t, StateIdle, sessions.Get(chatID).State, "диалог не начинается")
}

func TestRemoveFlow_Success(t *testing.T) {
	repo := &fakeRepo{words: []string{"блин", "кирпич"}, removeResult: true}
	svc, sessions := newTestService(repo)
	ctx := context.Background()

	reply := svc.StartRemove(ctx, chatID)
	require.Equal(t, "Какое слово удаляем?", reply.Text)
	require.Equal(t, []string{"блин", "кирпич"}, reply.Menu)
	require.Equal(t, StateAwaitingRemoveChoice, sessions.Get(chatID).State)

	reply = svc.HandleText(ctx, chatID, "кирпич")
	require.Equal(t, "Слово удалено", reply.Text)
	require.True(t, reply.CloseMenu)
	require.Equal(t, []string{"кирпич"}, repo.removedWords)
	require.Equal(t, StateIdle, sessions.Get(chatID).State)
}

func TestRemoveFlow_EmptyListShortCircuits(t *testing.T) {
	repo := &fakeRepo{}
	svc, sessions := newTestService(repo)

	reply := svc.StartRemove(context.Background(), chatID)
	require.Equal(t, "Нечего удалять", reply.Text)
	require.Equal(t, StateIdle, sessions.Get(chatID).State)
}

func TestRemoveFlow_SelectionOutsideSnapshot(t *testing.T) {
	repo := &fakeRepo{words: []string{"блин"}, removeResult: true}
	svc, sessions := newTestService(repo)
	ctx := context.Background()

	svc.StartRemove(ctx, chatID)
	reply := svc.HandleText(ctx, chatID, "чего-то другого")
	require.Equal(t, "Такого слова нет в списке", reply.Text)
	require.Empty(t, repo.removedWords)
	require.Equal(t, StateIdle, sessions.Get(chatID).State)
}

func TestCancel_FromIdle(t *testing.T) {
	svc, _ := newTestService(&fakeRepo{})

	reply := svc.Cancel(chatID)
	require.Equal(t, "Нечего отменять", reply.Text)
}

func TestCancel_FromAnyBusyState(t *testing.T) {
	for _, state := range []State{StateAwaitingAddWord, StateAwaitingRemoveChoice} {
		svc, sessions := newTestService(&fakeRepo{})
		sessions.Set(chatID, state, nil)

		reply := svc.Cancel(chatID)
		require.Equal(t, "Понял, отмена", reply.Text)
		require.Equal(t, StateIdle, sessions.Get(chatID).State)
	}
}

// Текст «отмена» работает как команда /cancel внутри диалога.
func TestHandleText_CancelWord(t *testing.T) {
	repo := &fakeRepo{words: []string{"блин"}}
	svc, sessions := newTestService(repo)
	ctx := context.Background()

	svc.StartRemove(ctx, chatID)
	reply := svc.HandleText(ctx, chatID, "Отмена")
	require.Equal(t, "Понял, отмена", reply.Text)
	require.Equal(t, StateIdle, sessions.Get(chatID).State)
	require.Empty(t, repo.removedWords)
}

func TestHandleText_IdleIsSilent(t *testing.T) {
	svc, _ := newTestService(&fakeRepo{})

	reply := svc.HandleText(context.Background(), chatID, "просто текст")
	require.Empty(t, reply.Text)
}

func TestStats_Empty(t *testing.T) {
	svc, _ := newTestService(&fakeRepo{})

	reply := svc.Stats(context.Background(), chatID)
	require.Equal(t, "Нечего показывать", reply.Text)
}

func TestStats_ListsCounts(t *testing.T) {
	repo := &fakeRepo{counts: []WordCount{
		{Text: "блин", Count: 5},
		{Text: "кирпич", Count: 0},
	}}
	svc, _ := newTestService(repo)

	reply := svc.Stats(context.Background(), chatID)
	require.Contains(t, reply.Text, "блин — 5")
	require.Contains(t, reply.Text, "кирпич — 0")
}
