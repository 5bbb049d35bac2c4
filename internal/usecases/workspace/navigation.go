package workspace

import (
	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/internal/usecases/navigating"
)

func (w *Workspace) ActiveTier() domain.Tier {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nav.ActiveTier
}

func (w *Workspace) Scope() domain.Scope {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nav.Scope(w.AccountID)
}

func (w *Workspace) ActivePage() domain.Page {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nav.Page(w.nav.ActiveTier)
}

func (w *Workspace) Navigation() navigating.View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nav.View()
}

func (w *Workspace) SetTier(tier domain.Tier) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nav.SetTier(tier)
}

func (w *Workspace) SetPage(number, size int) domain.Page {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nav.SetPage(number, size)
}

// SelectCampaign aceita o id local ou externo; o escopo usa sempre o id externo
func (w *Workspace) SelectCampaign(id string) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	resolved := w.resolveExternalLocked(domain.TierCampaign, id)
	w.nav.SelectCampaign(resolved)
	return resolved
}

func (w *Workspace) SelectAdSet(id string) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	resolved := w.resolveExternalLocked(domain.TierAdSet, id)
	w.nav.SelectAdSet(resolved)
	return resolved
}

// ToggleRow marca/desmarca uma linha visível do nível ativo
func (w *Workspace) ToggleRow(rowID string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	tier := w.nav.ActiveTier
	visible := idsOf(w.visibleLocked(tier))
	if !contains(visible, rowID) {
		return false, ErrRowNotFound
	}

	return w.nav.ToggleRow(tier, rowID, visible), nil
}

func (w *Workspace) ToggleAll() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	tier := w.nav.ActiveTier
	return w.nav.ToggleAll(tier, idsOf(w.visibleLocked(tier)))
}

func (w *Workspace) CheckedIDs(tier domain.Tier) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nav.CheckedIDs(tier)
}

func (w *Workspace) resolveExternalLocked(tier domain.Tier, id string) string {
	if id == "" {
		return ""
	}

	if idx := w.indexLocked(tier, id); idx >= 0 && w.rows[tier][idx].HasExternalID() {
		return w.rows[tier][idx].ExternalID
	}
	return id
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
