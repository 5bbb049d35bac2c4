package managing

import (
	"context"
	"errors"

	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/internal/usecases/batching"
	"github.com/vfg2006/ads-manager-api/internal/usecases/fetching"
	"github.com/vfg2006/ads-manager-api/internal/usecases/navigating"
	"github.com/vfg2006/ads-manager-api/internal/usecases/syncing"
	"github.com/vfg2006/ads-manager-api/internal/usecases/toggling"
	"github.com/vfg2006/ads-manager-api/internal/usecases/workspace"
	"github.com/vfg2006/ads-manager-api/pkg/apiErrors"
	"github.com/vfg2006/ads-manager-api/pkg/log"
)

type Manager interface {
	Open(ctx context.Context, accountID string, userID int) (workspace.Snapshot, error)
	Close(ctx context.Context, id string) error
	Workspace(id string) (*workspace.Workspace, error)
	Snapshot(id string) (workspace.Snapshot, error)
	Sync(ctx context.Context, id string, force bool) (bool, error)
	LoadRows(ctx context.Context, id string, number, size int) (*domain.PageResult, error)
	SetTier(id string, tier domain.Tier) (navigating.View, error)
	SelectCampaign(id, campaignID string) (navigating.View, error)
	SelectAdSet(id, adSetID string) (navigating.View, error)
	ToggleRowSelection(id, rowID string) (navigating.View, error)
	ToggleAllSelection(id string) (navigating.View, error)
	ToggleStatus(ctx context.Context, id, rowID string) (*domain.Entity, error)
	Bulk(ctx context.Context, id string, operation domain.BatchOperation, ids []string) (domain.BatchProgress, error)
	Progress(id string) (*domain.BatchProgress, error)
	DismissProgress(id string) error
}

// Service conduz o fluxo do painel: navegação → sincronização → busca → linhas da sessão
type Service struct {
	registry *workspace.Registry
	syncer   syncing.Coordinator
	fetcher  fetching.Fetcher
	toggler  toggling.Toggler
	batcher  batching.Batcher
}

func NewService(
	registry *workspace.Registry,
	syncer syncing.Coordinator,
	fetcher fetching.Fetcher,
	toggler toggling.Toggler,
	batcher batching.Batcher,
) *Service {
	return &Service{
		registry: registry,
		syncer:   syncer,
		fetcher:  fetcher,
		toggler:  toggler,
		batcher:  batcher,
	}
}

func (s *Service) Open(ctx context.Context, accountID string, userID int) (workspace.Snapshot, error) {
	ws, err := s.registry.Open(accountID, userID)
	if err != nil {
		if errors.Is(err, workspace.ErrAccountRequired) {
			return workspace.Snapshot{}, workspace.NewWorkspaceError(err, apiErrors.ErrMissingRequiredData, "", "")
		}
		return workspace.Snapshot{}, err
	}

	return ws.Snapshot(), nil
}

func (s *Service) Close(ctx context.Context, id string) error {
	if err := s.registry.Close(id); err != nil {
		return notFound(err, id)
	}

	log.ForContext(ctx).WithField("workspace_id", id).Info("Sessão do painel encerrada")
	return nil
}

// Workspace devolve a sessão ativa
func (s *Service) Workspace(id string) (*workspace.Workspace, error) {
	ws, err := s.registry.Get(id)
	if err != nil {
		return nil, notFound(err, id)
	}
	return ws, nil
}

func (s *Service) Snapshot(id string) (workspace.Snapshot, error) {
	ws, err := s.Workspace(id)
	if err != nil {
		return workspace.Snapshot{}, err
	}
	return ws.Snapshot(), nil
}

// Sync dispara o coordenador para a conta da sessão e devolve se um ciclo rodou
func (s *Service) Sync(ctx context.Context, id string, force bool) (bool, error) {
	ws, err := s.Workspace(id)
	if err != nil {
		return false, err
	}

	// a sincronização marca a conta como recente; não pode ser interrompida pela desconexão do cliente
	return s.syncer.Sync(context.WithoutCancel(ctx), ws.AccountID, force), nil
}

// LoadRows sincroniza respeitando o TTL e carrega a página do nível ativo.
// number e size zerados mantêm a paginação atual.
func (s *Service) LoadRows(ctx context.Context, id string, number, size int) (*domain.PageResult, error) {
	ws, err := s.Workspace(id)
	if err != nil {
		return nil, err
	}

	if number > 0 || size > 0 {
		current := ws.ActivePage()
		if number <= 0 {
			number = current.Number
		}
		ws.SetPage(number, size)
	}

	s.syncer.Sync(context.WithoutCancel(ctx), ws.AccountID, false)

	tier := ws.ActiveTier()
	if err := s.load(ctx, ws, tier, ws.ActivePage()); err != nil {
		return nil, err
	}

	return ws.Page(tier), nil
}

// Refresh força a sincronização e recarrega o nível; usado após lotes com sucesso
func (s *Service) Refresh(ctx context.Context, ws *workspace.Workspace, tier domain.Tier) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"workspace_id": ws.ID,
		"tier":         tier,
	})

	s.syncer.Sync(ctx, ws.AccountID, true)

	// o usuário já navegou para outro nível; a próxima carga busca os dados novos
	if ws.ActiveTier() != tier {
		return
	}

	page := domain.Page{Number: 1}
	if current := ws.Page(tier); current != nil && current.Page.Number > 0 {
		page = current.Page
	}

	if err := s.load(ctx, ws, tier, page); err != nil {
		logger.WithError(err).Warn("Falha ao recarregar após operação em lote")
		return
	}

	logger.Debug("Nível recarregado após operação em lote")
}

func (s *Service) load(ctx context.Context, ws *workspace.Workspace, tier domain.Tier, page domain.Page) error {
	result, err := s.fetcher.FetchTier(ctx, tier, ws.Scope(), page)
	if err != nil {
		ws.SetNotice(domain.Notice{Level: domain.NoticeError, Message: "Falha ao carregar", Detail: err.Error()})
		return err
	}

	ws.ReplaceRows(tier, result)
	return nil
}

func (s *Service) SetTier(id string, tier domain.Tier) (navigating.View, error) {
	ws, err := s.Workspace(id)
	if err != nil {
		return navigating.View{}, err
	}

	if err := ws.SetTier(tier); err != nil {
		return navigating.View{}, workspace.NewWorkspaceError(err, apiErrors.ErrInvalidRequest, id, string(tier))
	}
	return ws.Navigation(), nil
}

// SelectCampaign entra na campanha; id vazio volta para o nível de campanhas
func (s *Service) SelectCampaign(id, campaignID string) (navigating.View, error) {
	ws, err := s.Workspace(id)
	if err != nil {
		return navigating.View{}, err
	}

	ws.SelectCampaign(campaignID)
	return ws.Navigation(), nil
}

func (s *Service) SelectAdSet(id, adSetID string) (navigating.View, error) {
	ws, err := s.Workspace(id)
	if err != nil {
		return navigating.View{}, err
	}

	ws.SelectAdSet(adSetID)
	return ws.Navigation(), nil
}

func (s *Service) ToggleRowSelection(id, rowID string) (navigating.View, error) {
	ws, err := s.Workspace(id)
	if err != nil {
		return navigating.View{}, err
	}

	if _, err := ws.ToggleRow(rowID); err != nil {
		return navigating.View{}, workspace.NewWorkspaceError(err, apiErrors.ErrResourceNotFound, id, rowID)
	}
	return ws.Navigation(), nil
}

func (s *Service) ToggleAllSelection(id string) (navigating.View, error) {
	ws, err := s.Workspace(id)
	if err != nil {
		return navigating.View{}, err
	}

	ws.ToggleAll()
	return ws.Navigation(), nil
}

// ToggleStatus alterna o status de uma linha do nível ativo
func (s *Service) ToggleStatus(ctx context.Context, id, rowID string) (*domain.Entity, error) {
	ws, err := s.Workspace(id)
	if err != nil {
		return nil, err
	}

	// a chamada remota segue até o fim mesmo que o cliente desconecte; cancelar no meio
	// faria o rollback local divergir do que a plataforma já aplicou
	ctx = context.WithoutCancel(log.WithWorkspaceID(ctx, ws.ID))
	row, err := s.toggler.Toggle(ctx, ws, ws.ActiveTier(), rowID)
	if err != nil {
		var toggleErr *toggling.ToggleError
		if errors.As(err, &toggleErr) && !toggleErr.Warning {
			ws.SetNotice(domain.Notice{Level: domain.NoticeError, Message: "Falha ao alterar status", Detail: toggleErr.Details})
		}
		return nil, err
	}

	return row, nil
}

// Bulk inicia um lote no nível ativo; sem ids, usa as linhas marcadas
func (s *Service) Bulk(ctx context.Context, id string, operation domain.BatchOperation, ids []string) (domain.BatchProgress, error) {
	ws, err := s.Workspace(id)
	if err != nil {
		return domain.BatchProgress{}, err
	}

	tier := ws.ActiveTier()
	if len(ids) == 0 {
		ids = ws.CheckedIDs(tier)
	}

	ctx = log.WithWorkspaceID(ctx, ws.ID)
	progress, _, err := s.batcher.Run(ctx, ws, operation, tier, ids)
	if err != nil {
		return domain.BatchProgress{}, err
	}

	return progress, nil
}

func (s *Service) Progress(id string) (*domain.BatchProgress, error) {
	ws, err := s.Workspace(id)
	if err != nil {
		return nil, err
	}
	return ws.Progress(), nil
}

func (s *Service) DismissProgress(id string) error {
	ws, err := s.Workspace(id)
	if err != nil {
		return err
	}

	if err := ws.DismissProgress(); err != nil {
		return workspace.NewWorkspaceError(err, apiErrors.ErrBatchInProgress, id, "")
	}
	return nil
}

func notFound(err error, id string) error {
	if errors.Is(err, workspace.ErrWorkspaceNotFound) {
		return workspace.NewWorkspaceError(err, apiErrors.ErrResourceNotFound, id, "")
	}
	return err
}
