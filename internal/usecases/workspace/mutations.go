package workspace

import (
	"github.com/vfg2006/ads-manager-api/internal/domain"
)

// BeginMutation valida as pré-condições, captura o valor confirmado e aplica o valor otimista,
// tudo sob a mesma trava. A linha fica ocupada até Release.
func (w *Workspace) BeginMutation(tier domain.Tier, rowID string, next func(domain.Entity) domain.EntityStatus) (Mutation, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := w.indexLocked(tier, rowID)
	if idx < 0 {
		return Mutation{}, ErrRowNotFound
	}

	row := w.rows[tier][idx]
	if !row.HasExternalID() {
		return Mutation{}, ErrMissingExternalID
	}

	key := rowKey(tier, rowID)
	if _, busy := w.busy[key]; busy {
		return Mutation{}, ErrRowBusy
	}

	m := &Mutation{
		Tier:      tier,
		RowID:     rowID,
		Committed: row,
		Pending:   next(row),
		State:     MutationPending,
	}

	w.busy[key] = struct{}{}
	w.mutations[key] = m
	w.rows[tier][idx].SetStatus(m.Pending)

	return *m, nil
}

// CommitMutation confirma o valor otimista; nada muda na linha
func (w *Workspace) CommitMutation(tier domain.Tier, rowID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	key := rowKey(tier, rowID)
	if m, ok := w.mutations[key]; ok {
		m.State = MutationCommitted
		delete(w.mutations, key)
	}
}

// RollbackMutation restaura exatamente o valor capturado antes da chamada
func (w *Workspace) RollbackMutation(tier domain.Tier, rowID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	key := rowKey(tier, rowID)
	m, ok := w.mutations[key]
	if !ok {
		return false
	}

	m.State = MutationRolledBack
	delete(w.mutations, key)

	idx := w.indexLocked(tier, rowID)
	if idx < 0 {
		return false
	}

	w.rows[tier][idx] = m.Committed
	return true
}

// Release libera a linha para novas operações
func (w *Workspace) Release(tier domain.Tier, rowID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.busy, rowKey(tier, rowID))
}

func (w *Workspace) IsBusy(tier domain.Tier, rowID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, busy := w.busy[rowKey(tier, rowID)]
	return busy
}

func (w *Workspace) PendingMutation(tier domain.Tier, rowID string) (Mutation, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	m, ok := w.mutations[rowKey(tier, rowID)]
	if !ok {
		return Mutation{}, false
	}
	return *m, true
}
