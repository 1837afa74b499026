// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает ежедневную чистку устаревшей статистики:
// использования старше окна статистики больше не попадают в /stats,
// держать их в таблице незачем.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/jopokorsar/banword-bot/internal/features/tracker"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron    *cron.Cron
	tracker *tracker.Service
}

// NewScheduler создаёт планировщик задач.
func NewScheduler(trackerService *tracker.Service) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		tracker: trackerService,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Чистка устаревших использований каждую ночь в 04:00
	s.cron.AddFunc("0 4 * * *", func() {
		pruned, err := s.tracker.PruneOldUsages(ctx, time.Now())
		if err != nil {
			log.WithError(err).Error("[CRON] Ошибка чистки статистики")
			return
		}
		log.WithField("pruned", pruned).Info("[CRON] Устаревшая статистика удалена")
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен")
}

// Stop останавливает планировщик.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
