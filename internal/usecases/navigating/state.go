package navigating

import (
	"errors"
	"sort"

	"github.com/vfg2006/ads-manager-api/internal/domain"
)

var ErrInvalidTier = errors.New("invalid tier")

// State é a navegação de uma sessão do painel: nível ativo, drill-down, seleção e paginação
type State struct {
	ActiveTier       domain.Tier
	SelectedCampaign string
	SelectedAdSet    string

	checked         map[domain.Tier]map[string]struct{}
	checkAll        map[domain.Tier]bool
	pages           map[domain.Tier]domain.Page
	defaultPageSize int
}

// View é a fotografia serializável do estado
type View struct {
	ActiveTier       domain.Tier                 `json:"active_tier"`
	SelectedCampaign string                      `json:"selected_campaign,omitempty"`
	SelectedAdSet    string                      `json:"selected_adset,omitempty"`
	Checked          map[domain.Tier][]string    `json:"checked"`
	CheckAll         map[domain.Tier]bool        `json:"check_all"`
	Pages            map[domain.Tier]domain.Page `json:"pages"`
}

func New(defaultPageSize int) *State {
	if !domain.IsAllowedPageSize(defaultPageSize) {
		defaultPageSize = domain.AllowedPageSizes[0]
	}

	s := &State{
		ActiveTier:      domain.TierCampaign,
		checked:         make(map[domain.Tier]map[string]struct{}, len(domain.Tiers)),
		checkAll:        make(map[domain.Tier]bool, len(domain.Tiers)),
		pages:           make(map[domain.Tier]domain.Page, len(domain.Tiers)),
		defaultPageSize: defaultPageSize,
	}

	for _, tier := range domain.Tiers {
		s.checked[tier] = map[string]struct{}{}
		s.pages[tier] = domain.Page{Number: 1, Size: defaultPageSize}
	}

	return s
}

// SetTier troca o nível ativo e volta para a primeira página. A seleção do nível deixado e do
// nível de destino é descartada.
func (s *State) SetTier(tier domain.Tier) error {
	if !tier.IsValid() {
		return ErrInvalidTier
	}

	s.resetSelection(s.ActiveTier)
	s.resetSelection(tier)
	s.ActiveTier = tier
	s.resetPage(tier)
	return nil
}

// SelectCampaign entra na campanha; id vazio limpa o drill-down e volta às campanhas
func (s *State) SelectCampaign(id string) {
	s.SelectedCampaign = id
	s.SelectedAdSet = ""
	s.resetSelection(domain.TierAdSet)
	s.resetSelection(domain.TierAd)
	s.resetPage(domain.TierAdSet)
	s.resetPage(domain.TierAd)

	if id == "" {
		s.ActiveTier = domain.TierCampaign
		s.resetPage(domain.TierCampaign)
		return
	}

	s.ActiveTier = domain.TierAdSet
}

// SelectAdSet entra no conjunto; id vazio limpa o conjunto e permanece nos conjuntos
func (s *State) SelectAdSet(id string) {
	s.SelectedAdSet = id
	s.resetSelection(domain.TierAd)
	s.resetPage(domain.TierAd)

	if id == "" {
		s.ActiveTier = domain.TierAdSet
		s.resetPage(domain.TierAdSet)
		return
	}

	s.ActiveTier = domain.TierAd
}

// SetPage altera a página do nível ativo; tamanhos fora da lista usam o padrão
func (s *State) SetPage(number, size int) domain.Page {
	if number < 1 {
		number = 1
	}
	if !domain.IsAllowedPageSize(size) {
		size = s.pages[s.ActiveTier].Size
		if size == 0 {
			size = s.defaultPageSize
		}
	}

	page := domain.Page{Number: number, Size: size}
	// a seleção vale apenas para as linhas da página em que foi feita
	if page != s.pages[s.ActiveTier] {
		s.resetSelection(s.ActiveTier)
	}
	s.pages[s.ActiveTier] = page
	return page
}

func (s *State) Page(tier domain.Tier) domain.Page {
	return s.pages[tier]
}

// Scope monta o filtro do nível ativo a partir do drill-down
func (s *State) Scope(accountID string) domain.Scope {
	scope := domain.Scope{AccountID: accountID}

	switch s.ActiveTier {
	case domain.TierAdSet:
		scope.CampaignID = s.SelectedCampaign
	case domain.TierAd:
		scope.CampaignID = s.SelectedCampaign
		scope.AdSetID = s.SelectedAdSet
	}

	return scope
}

// ToggleRow inverte a marcação da linha e recalcula o "marcar todos" sobre as linhas visíveis
func (s *State) ToggleRow(tier domain.Tier, id string, visibleIDs []string) bool {
	checked := s.checked[tier]
	_, isChecked := checked[id]
	if isChecked {
		delete(checked, id)
	} else {
		checked[id] = struct{}{}
	}

	s.checkAll[tier] = s.allChecked(tier, visibleIDs)
	return !isChecked
}

// ToggleAll marca ou desmarca apenas as linhas visíveis
func (s *State) ToggleAll(tier domain.Tier, visibleIDs []string) bool {
	target := !s.checkAll[tier]
	checked := s.checked[tier]

	for _, id := range visibleIDs {
		if target {
			checked[id] = struct{}{}
		} else {
			delete(checked, id)
		}
	}

	s.checkAll[tier] = target && len(visibleIDs) > 0
	return s.checkAll[tier]
}

// Forget remove ids da seleção, usado depois que as linhas saem do conjunto local
func (s *State) Forget(tier domain.Tier, ids []string, visibleIDs []string) {
	for _, id := range ids {
		delete(s.checked[tier], id)
	}
	s.checkAll[tier] = s.allChecked(tier, visibleIDs)
}

func (s *State) IsChecked(tier domain.Tier, id string) bool {
	_, ok := s.checked[tier][id]
	return ok
}

func (s *State) CheckAll(tier domain.Tier) bool {
	return s.checkAll[tier]
}

// CheckedIDs devolve os ids marcados em ordem estável
func (s *State) CheckedIDs(tier domain.Tier) []string {
	ids := make([]string, 0, len(s.checked[tier]))
	for id := range s.checked[tier] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *State) View() View {
	view := View{
		ActiveTier:       s.ActiveTier,
		SelectedCampaign: s.SelectedCampaign,
		SelectedAdSet:    s.SelectedAdSet,
		Checked:          make(map[domain.Tier][]string, len(domain.Tiers)),
		CheckAll:         make(map[domain.Tier]bool, len(domain.Tiers)),
		Pages:            make(map[domain.Tier]domain.Page, len(domain.Tiers)),
	}

	for _, tier := range domain.Tiers {
		view.Checked[tier] = s.CheckedIDs(tier)
		view.CheckAll[tier] = s.checkAll[tier]
		view.Pages[tier] = s.pages[tier]
	}

	return view
}

func (s *State) allChecked(tier domain.Tier, visibleIDs []string) bool {
	if len(visibleIDs) == 0 {
		return false
	}
	for _, id := range visibleIDs {
		if !s.IsChecked(tier, id) {
			return false
		}
	}
	return true
}

func (s *State) resetSelection(tier domain.Tier) {
	s.checked[tier] = map[string]struct{}{}
	s.checkAll[tier] = false
}

func (s *State) resetPage(tier domain.Tier) {
	page := s.pages[tier]
	page.Number = 1
	if page.Size == 0 {
		page.Size = s.defaultPageSize
	}
	s.pages[tier] = page
}
