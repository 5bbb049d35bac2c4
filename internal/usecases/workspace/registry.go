package workspace

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-manager-api/pkg/utils"
)

// Registry mantém as sessões abertas do painel
type Registry struct {
	mu              sync.RWMutex
	items           map[string]*Workspace
	defaultPageSize int
	now             func() time.Time
	newID           func() (string, error)
}

func NewRegistry(defaultPageSize int) *Registry {
	return &Registry{
		items:           map[string]*Workspace{},
		defaultPageSize: defaultPageSize,
		now:             time.Now,
		newID:           utils.GenerateSessionID,
	}
}

func (r *Registry) Open(accountID string, userID int) (*Workspace, error) {
	if accountID == "" {
		return nil, ErrAccountRequired
	}

	id, err := r.newID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da sessão: %w", err)
	}

	ws := newWorkspace(id, accountID, userID, r.defaultPageSize, r.now())

	r.mu.Lock()
	r.items[id] = ws
	r.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"workspace_id": id,
		"account_id":   accountID,
		"user_id":      userID,
	}).Info("Sessão do painel aberta")

	return ws, nil
}

// Get devolve a sessão e registra atividade
func (r *Registry) Get(id string) (*Workspace, error) {
	r.mu.RLock()
	ws, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrWorkspaceNotFound
	}

	ws.Touch(r.now())
	return ws, nil
}

func (r *Registry) Close(id string) error {
	r.mu.Lock()
	ws, ok := r.items[id]
	delete(r.items, id)
	r.mu.Unlock()

	if !ok {
		return ErrWorkspaceNotFound
	}

	ws.Close()
	return nil
}

func (r *Registry) List() []*Workspace {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Workspace, 0, len(r.items))
	for _, ws := range r.items {
		out = append(out, ws)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Accounts devolve as contas distintas com sessão aberta
func (r *Registry) Accounts() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[string]struct{}{}
	accounts := make([]string, 0, len(r.items))
	for _, ws := range r.items {
		if _, ok := seen[ws.AccountID]; ok {
			continue
		}
		seen[ws.AccountID] = struct{}{}
		accounts = append(accounts, ws.AccountID)
	}
	sort.Strings(accounts)
	return accounts
}

// EvictIdle fecha as sessões sem atividade há mais de idle; sessões com lote em andamento ficam
func (r *Registry) EvictIdle(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	evicted := make([]*Workspace, 0)
	for id, ws := range r.items {
		if ws.LastSeen().Before(cutoff) && !ws.BatchRunning() {
			evicted = append(evicted, ws)
			delete(r.items, id)
		}
	}
	r.mu.Unlock()

	for _, ws := range evicted {
		ws.Close()
	}

	return len(evicted)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
