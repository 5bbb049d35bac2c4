package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-manager-api/internal/config"
)

// WorkspaceEvicter fecha sessões sem atividade
type WorkspaceEvicter interface {
	EvictIdle(idle time.Duration) int
	Len() int
}

// WorkspaceCleanupService fecha periodicamente as sessões do painel abandonadas
type WorkspaceCleanupService struct {
	scheduler      *gocron.Scheduler
	cronSchedule   string
	idleTimeout    time.Duration
	enabled        bool
	registry       WorkspaceEvicter
	mu             sync.Mutex
	lastRunAt      time.Time
	lastEvicted    int
	totalEvictions int
}

func NewWorkspaceCleanupService(registry WorkspaceEvicter, appConfig *config.Config) *WorkspaceCleanupService {
	return &WorkspaceCleanupService{
		scheduler:    gocron.NewScheduler(time.Local),
		cronSchedule: appConfig.WorkspaceCleanup.CronSchedule,
		idleTimeout:  appConfig.WorkspaceCleanup.IdleTimeout,
		enabled:      appConfig.WorkspaceCleanup.Enabled,
		registry:     registry,
	}
}

// Start inicia o agendador
func (s *WorkspaceCleanupService) Start(ctx context.Context) error {
	if !s.enabled {
		logrus.Info("Limpeza de sessões desabilitada por configuração")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"cron":         s.cronSchedule,
		"idle_timeout": s.idleTimeout.String(),
	}).Info("Iniciando agendador de limpeza de sessões")

	_, err := s.scheduler.Cron(s.cronSchedule).Do(s.cleanup)
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de sessões: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza de sessões")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *WorkspaceCleanupService) cleanup() {
	evicted := s.registry.EvictIdle(s.idleTimeout)

	s.mu.Lock()
	s.lastRunAt = time.Now()
	s.lastEvicted = evicted
	s.totalEvictions += evicted
	s.mu.Unlock()

	if evicted > 0 {
		logrus.WithFields(logrus.Fields{
			"evicted":   evicted,
			"remaining": s.registry.Len(),
		}).Info("Sessões inativas encerradas")
	}
}

// TriggerManualSync executa a limpeza imediatamente
func (s *WorkspaceCleanupService) TriggerManualSync(context.Context) bool {
	s.cleanup()
	return true
}

func (s *WorkspaceCleanupService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"cleanup_enabled": s.enabled,
		"cleanup_cron":    s.cronSchedule,
		"idle_timeout":    s.idleTimeout.String(),
		"open_workspaces": s.registry.Len(),
		"last_run_at":     s.lastRunAt,
		"last_evicted":    s.lastEvicted,
		"total_evictions": s.totalEvictions,
	}
}
