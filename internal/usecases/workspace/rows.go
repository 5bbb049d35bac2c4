package workspace

import (
	"github.com/vfg2006/ads-manager-api/internal/domain"
)

// ReplaceRows troca as linhas do nível pelo resultado de uma busca.
// Linhas com alteração pendente continuam exibindo o valor otimista.
func (w *Workspace) ReplaceRows(tier domain.Tier, result *domain.PageResult) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rows := make([]domain.Entity, len(result.Rows))
	copy(rows, result.Rows)

	for i := range rows {
		if m, ok := w.mutations[rowKey(tier, rows[i].ID)]; ok && m.State == MutationPending {
			rows[i].SetStatus(m.Pending)
		}
	}

	w.rows[tier] = rows
	w.pages[tier] = tierPage{
		Total:     result.Total,
		PageCount: result.PageCount,
		Page:      result.Page,
	}
}

// Rows devolve as linhas visíveis do nível com a marcação de seleção aplicada
func (w *Workspace) Rows(tier domain.Tier) []domain.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.visibleLocked(tier)
}

// Page devolve as linhas visíveis com os totais da última busca
func (w *Workspace) Page(tier domain.Tier) *domain.PageResult {
	w.mu.Lock()
	defer w.mu.Unlock()

	page := w.pages[tier]
	return &domain.PageResult{
		Rows:      w.visibleLocked(tier),
		Total:     page.Total,
		PageCount: page.PageCount,
		Page:      page.Page,
	}
}

func (w *Workspace) VisibleIDs(tier domain.Tier) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	return idsOf(w.visibleLocked(tier))
}

func (w *Workspace) Row(tier domain.Tier, id string) (domain.Entity, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := w.indexLocked(tier, id)
	if idx < 0 {
		return domain.Entity{}, false
	}
	return w.rows[tier][idx], true
}

// RemoveRows tira do conjunto local apenas os ids informados
func (w *Workspace) RemoveRows(tier domain.Tier, ids []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(ids) == 0 {
		return
	}

	remove := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		remove[id] = struct{}{}
	}

	kept := w.rows[tier][:0:0]
	for _, row := range w.rows[tier] {
		if _, ok := remove[row.ID]; !ok {
			kept = append(kept, row)
		}
	}
	w.rows[tier] = kept

	w.nav.Forget(tier, ids, idsOf(w.visibleLocked(tier)))
}

// visibleLocked aplica as regras de visibilidade: DELETED nunca aparece e,
// com escopo de campanha, anúncios cujo conjunto local é de outra campanha ficam ocultos.
// ParentID sempre referencia o id externo do pai.
func (w *Workspace) visibleLocked(tier domain.Tier) []domain.Entity {
	rows := w.rows[tier]
	visible := make([]domain.Entity, 0, len(rows))

	var adSetCampaign map[string]string
	if tier == domain.TierAd && w.nav.SelectedCampaign != "" {
		adSetCampaign = make(map[string]string, len(w.rows[domain.TierAdSet]))
		for _, adSet := range w.rows[domain.TierAdSet] {
			if adSet.HasExternalID() {
				adSetCampaign[adSet.ExternalID] = adSet.ParentID
			}
		}
	}

	for _, row := range rows {
		if row.Status == domain.EntityStatusDeleted {
			continue
		}

		if adSetCampaign != nil {
			if campaignID, ok := adSetCampaign[row.ParentID]; ok && campaignID != w.nav.SelectedCampaign {
				continue
			}
		}

		row.Selected = w.nav.IsChecked(tier, row.ID)
		visible = append(visible, row)
	}

	return visible
}

func (w *Workspace) indexLocked(tier domain.Tier, id string) int {
	for i, row := range w.rows[tier] {
		if row.ID == id {
			return i
		}
	}
	return -1
}

func idsOf(rows []domain.Entity) []string {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids
}
