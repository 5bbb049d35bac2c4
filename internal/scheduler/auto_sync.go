package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-manager-api/internal/config"
	"github.com/vfg2006/ads-manager-api/internal/usecases/syncing"
)

// AccountSource fornece as contas com sessão aberta no painel
type AccountSource interface {
	Accounts() []string
}

// AutoSyncConfig representa a configuração da sincronização periódica
type AutoSyncConfig struct {
	CronSchedule      string
	MaxConcurrentJobs int
	SyncEnabled       bool
}

// AutoSyncService mantém as contas abertas no painel sincronizadas em segundo plano.
// Cada ciclo respeita o TTL do coordenador; contas sincronizadas há pouco são ignoradas.
type AutoSyncService struct {
	scheduler           *gocron.Scheduler
	config              AutoSyncConfig
	accounts            AccountSource
	syncer              syncing.Coordinator
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncedAccounts  int
}

func NewAutoSyncService(accounts AccountSource, syncer syncing.Coordinator, appConfig *config.Config) *AutoSyncService {
	syncConfig := AutoSyncConfig{
		CronSchedule:      appConfig.AutoSync.CronSchedule,
		MaxConcurrentJobs: appConfig.AutoSync.MaxConcurrentJobs,
		SyncEnabled:       appConfig.AutoSync.Enabled,
	}
	if syncConfig.MaxConcurrentJobs <= 0 {
		syncConfig.MaxConcurrentJobs = 1
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("Configuração da sincronização automática carregada")

	return &AutoSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		accounts:  accounts,
		syncer:    syncer,
	}
}

// Start inicia o agendador
func (s *AutoSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização automática desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização automática")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncOpenAccounts(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização automática: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização automática")
		s.scheduler.Stop()
	}()

	return nil
}

// syncOpenAccounts sincroniza as contas com sessão aberta, limitado por MaxConcurrentJobs
func (s *AutoSyncService) syncOpenAccounts(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização automática já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	startTime := time.Now()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	accounts := s.accounts.Accounts()
	if len(accounts) == 0 {
		logrus.Debug("Nenhuma sessão aberta, nada para sincronizar")
		return
	}

	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup
	var mu sync.Mutex
	synced := 0

	for _, accountID := range accounts {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(accountID string) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			if s.syncer.Sync(ctx, accountID, false) {
				mu.Lock()
				synced++
				mu.Unlock()
			}
		}(accountID)
	}

	wg.Wait()

	logrus.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"accounts": len(accounts),
		"synced":   synced,
	}).Info("Sincronização automática concluída")

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.lastSyncedAccounts = synced
	s.syncMutex.Unlock()
}

// TriggerManualSync inicia manualmente um ciclo de sincronização
func (s *AutoSyncService) TriggerManualSync(ctx context.Context) bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização automática já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual das contas abertas")
	go s.syncOpenAccounts(context.WithoutCancel(ctx))
	return true
}

// GetStatus retorna o status atual do agendador
func (s *AutoSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_running":           s.syncRunning,
		"open_accounts":          len(s.accounts.Accounts()),
		"last_synced_accounts":   s.lastSyncedAccounts,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
