package syncing

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/ads-manager-api/infrastructure/gateway"
	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/pkg/log"
)

type Coordinator interface {
	Sync(ctx context.Context, accountID string, force bool) bool
	LastSyncedAt(accountID string) (time.Time, bool)
}

// Service sincroniza os três níveis de uma conta com a plataforma, limitado por um TTL por conta
type Service struct {
	gateway gateway.Gateway
	ttl     time.Duration
	now     func() time.Time

	mu       sync.Mutex
	lastSync map[string]time.Time
	inFlight map[string]int // ciclos em andamento por conta
}

func NewService(gw gateway.Gateway, ttl time.Duration) *Service {
	return &Service{
		gateway:  gw,
		ttl:      ttl,
		now:      time.Now,
		lastSync: map[string]time.Time{},
		inFlight: map[string]int{},
	}
}

// Sync devolve true quando um ciclo foi executado. Falhas por nível são logadas e nunca propagadas.
func (s *Service) Sync(ctx context.Context, accountID string, force bool) bool {
	logger := log.ForContext(ctx).WithField("account_id", accountID)

	s.mu.Lock()
	if !force {
		if last, ok := s.lastSync[accountID]; ok && s.now().Sub(last) < s.ttl {
			s.mu.Unlock()
			logger.Debug("Sincronização recente, ignorando")
			return false
		}
		if s.inFlight[accountID] > 0 {
			s.mu.Unlock()
			logger.Debug("Sincronização já em andamento para a conta")
			return false
		}
	}
	s.inFlight[accountID]++
	s.mu.Unlock()

	start := s.now()

	var wg sync.WaitGroup
	for _, tier := range domain.Tiers {
		wg.Add(1)
		go func(tier domain.Tier) {
			defer wg.Done()

			if err := s.gateway.Sync(ctx, tier, accountID); err != nil {
				logger.WithFields(log.Fields{
					"tier":  tier,
					"error": err.Error(),
				}).Warn("Falha ao sincronizar nível, seguindo com os demais")
			}
		}(tier)
	}
	wg.Wait()

	s.mu.Lock()
	s.lastSync[accountID] = s.now()
	// um ciclo forçado pode rodar junto com outro; a marca só sai quando o último termina
	s.inFlight[accountID]--
	if s.inFlight[accountID] <= 0 {
		delete(s.inFlight, accountID)
	}
	s.mu.Unlock()

	logger.WithField("duration_ms", s.now().Sub(start).Milliseconds()).Info("Sincronização da conta concluída")

	return true
}

func (s *Service) LastSyncedAt(accountID string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	last, ok := s.lastSync[accountID]
	return last, ok
}
