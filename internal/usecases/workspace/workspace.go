package workspace

import (
	"sync"
	"time"

	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/internal/usecases/navigating"
)

type tierPage struct {
	Total     int
	PageCount int
	Page      domain.Page
}

// Workspace guarda o estado de uma sessão do painel: linhas por nível, navegação, operações e progresso
type Workspace struct {
	ID        string
	AccountID string
	UserID    int
	CreatedAt time.Time

	mu          sync.Mutex
	nav         *navigating.State
	rows        map[domain.Tier][]domain.Entity
	pages       map[domain.Tier]tierPage
	busy        map[string]struct{}
	mutations   map[string]*Mutation
	lastSeen    time.Time
	notice      *domain.Notice
	batch       batchState
	subscribers map[int]chan domain.BatchProgress
	nextSubID   int
}

type batchState struct {
	running    bool
	progress   *domain.BatchProgress
	generation int
	closeTimer *time.Timer
}

// Snapshot é a visão serializável da sessão
type Snapshot struct {
	ID         string                `json:"id"`
	AccountID  string                `json:"account_id"`
	Navigation navigating.View       `json:"navigation"`
	Progress   *domain.BatchProgress `json:"progress,omitempty"`
	Notice     *domain.Notice        `json:"notice,omitempty"`
	Busy       []string              `json:"busy"`
	Totals     map[domain.Tier]int   `json:"totals"`
	LastSeen   time.Time             `json:"last_seen"`
	CreatedAt  time.Time             `json:"created_at"`
}

func newWorkspace(id, accountID string, userID, pageSize int, now time.Time) *Workspace {
	return &Workspace{
		ID:          id,
		AccountID:   accountID,
		UserID:      userID,
		CreatedAt:   now,
		nav:         navigating.New(pageSize),
		rows:        make(map[domain.Tier][]domain.Entity, len(domain.Tiers)),
		pages:       make(map[domain.Tier]tierPage, len(domain.Tiers)),
		busy:        map[string]struct{}{},
		mutations:   map[string]*Mutation{},
		lastSeen:    now,
		subscribers: map[int]chan domain.BatchProgress{},
	}
}

func (w *Workspace) Touch(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastSeen = now
}

func (w *Workspace) LastSeen() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

func (w *Workspace) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	snapshot := Snapshot{
		ID:         w.ID,
		AccountID:  w.AccountID,
		Navigation: w.nav.View(),
		Busy:       make([]string, 0, len(w.busy)),
		Totals:     make(map[domain.Tier]int, len(w.pages)),
		LastSeen:   w.lastSeen,
		CreatedAt:  w.CreatedAt,
	}

	for key := range w.busy {
		snapshot.Busy = append(snapshot.Busy, key)
	}
	for tier, page := range w.pages {
		snapshot.Totals[tier] = page.Total
	}
	if w.batch.progress != nil {
		progress := w.batch.progress.Clone()
		snapshot.Progress = &progress
	}
	if w.notice != nil {
		notice := *w.notice
		snapshot.Notice = &notice
	}

	return snapshot
}

// SetNotice registra a última notificação exibida ao usuário
func (w *Workspace) SetNotice(notice domain.Notice) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.notice = &notice
}
