package managing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-manager-api/internal/domain"
	batchmocks "github.com/vfg2006/ads-manager-api/internal/usecases/batching/mocks"
	"github.com/vfg2006/ads-manager-api/internal/usecases/fetching"
	fetchmocks "github.com/vfg2006/ads-manager-api/internal/usecases/fetching/mocks"
	syncmocks "github.com/vfg2006/ads-manager-api/internal/usecases/syncing/mocks"
	"github.com/vfg2006/ads-manager-api/internal/usecases/toggling"
	togglemocks "github.com/vfg2006/ads-manager-api/internal/usecases/toggling/mocks"
	"github.com/vfg2006/ads-manager-api/internal/usecases/workspace"
	"github.com/vfg2006/ads-manager-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	service *Service
	syncer  *syncmocks.MockCoordinator
	fetcher *fetchmocks.MockFetcher
	toggler *togglemocks.MockToggler
	batcher *batchmocks.MockBatcher
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	f := fixture{
		syncer:  syncmocks.NewMockCoordinator(ctrl),
		fetcher: fetchmocks.NewMockFetcher(ctrl),
		toggler: togglemocks.NewMockToggler(ctrl),
		batcher: batchmocks.NewMockBatcher(ctrl),
	}
	f.service = NewService(workspace.NewRegistry(10), f.syncer, f.fetcher, f.toggler, f.batcher)
	return f
}

func entity(id, externalID string, tier domain.Tier) domain.Entity {
	e := domain.Entity{ID: id, ExternalID: externalID, Tier: tier, Name: id, Metrics: domain.PlaceholderMetrics()}
	e.SetStatus(domain.EntityStatusActive)
	return e
}

func (f fixture) open(t *testing.T) string {
	t.Helper()
	snapshot, err := f.service.Open(context.Background(), "act_1", 7)
	require.NoError(t, err)
	return snapshot.ID
}

func TestLoadRowsSincronizaComTTLEBuscaNivelAtivo(t *testing.T) {
	f := newFixture(t)
	id := f.open(t)

	rows := []domain.Entity{entity("1", "c1", domain.TierCampaign), entity("2", "c2", domain.TierCampaign)}

	gomock.InOrder(
		f.syncer.EXPECT().Sync(gomock.Any(), "act_1", false).Return(true),
		f.fetcher.EXPECT().FetchTier(gomock.Any(), domain.TierCampaign, domain.Scope{AccountID: "act_1"}, domain.Page{Number: 2, Size: 20}).
			Return(&domain.PageResult{Rows: rows, Total: 22, PageCount: 2, Page: domain.Page{Number: 2, Size: 20}}, nil),
	)

	result, err := f.service.LoadRows(context.Background(), id, 2, 20)

	require.NoError(t, err)
	assert.Len(t, result.Rows, 2)
	assert.Equal(t, 22, result.Total)
	assert.Equal(t, 2, result.PageCount)
}

func TestLoadRowsFalhaNaBusca(t *testing.T) {
	f := newFixture(t)
	id := f.open(t)

	fetchErr := &fetching.FetchError{Err: errors.New("connection refused"), Code: apiErrors.ErrFetchFailed, Tier: domain.TierCampaign}
	f.syncer.EXPECT().Sync(gomock.Any(), "act_1", false).Return(false)
	f.fetcher.EXPECT().FetchTier(gomock.Any(), domain.TierCampaign, gomock.Any(), gomock.Any()).Return(nil, fetchErr)

	_, err := f.service.LoadRows(context.Background(), id, 0, 0)

	assert.ErrorIs(t, err, fetching.ErrFetchFailed)
	snapshot, _ := f.service.Snapshot(id)
	require.NotNil(t, snapshot.Notice)
	assert.Equal(t, domain.NoticeError, snapshot.Notice.Level)
}

func TestDrillDownUsaIDExternoNoEscopo(t *testing.T) {
	f := newFixture(t)
	id := f.open(t)

	f.syncer.EXPECT().Sync(gomock.Any(), "act_1", false).Return(false).Times(2)
	f.fetcher.EXPECT().FetchTier(gomock.Any(), domain.TierCampaign, gomock.Any(), gomock.Any()).
		Return(&domain.PageResult{Rows: []domain.Entity{entity("local-1", "c1", domain.TierCampaign)}, Total: 1, PageCount: 1}, nil)
	f.fetcher.EXPECT().FetchTier(gomock.Any(), domain.TierAdSet, domain.Scope{AccountID: "act_1", CampaignID: "c1"}, gomock.Any()).
		Return(&domain.PageResult{}, nil)

	_, err := f.service.LoadRows(context.Background(), id, 0, 0)
	require.NoError(t, err)

	view, err := f.service.SelectCampaign(id, "local-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TierAdSet, view.ActiveTier)
	assert.Equal(t, "c1", view.SelectedCampaign)

	_, err = f.service.LoadRows(context.Background(), id, 0, 0)
	require.NoError(t, err)

	view, err = f.service.SelectCampaign(id, "")
	require.NoError(t, err)
	assert.Equal(t, domain.TierCampaign, view.ActiveTier)
}

func TestToggleStatusUsaNivelAtivo(t *testing.T) {
	f := newFixture(t)
	id := f.open(t)
	ws, err := f.service.Workspace(id)
	require.NoError(t, err)

	updated := entity("1", "c1", domain.TierCampaign)
	updated.SetStatus(domain.EntityStatusPaused)
	f.toggler.EXPECT().Toggle(gomock.Any(), ws, domain.TierCampaign, "1").Return(&updated, nil)

	row, err := f.service.ToggleStatus(context.Background(), id, "1")

	require.NoError(t, err)
	assert.False(t, row.Enabled)
}

func TestToggleStatusSobreviveADesconexaoDoCliente(t *testing.T) {
	f := newFixture(t)
	id := f.open(t)

	ctx, cancel := context.WithCancel(context.Background())
	updated := entity("1", "c1", domain.TierCampaign)
	f.toggler.EXPECT().Toggle(gomock.Any(), gomock.Any(), domain.TierCampaign, "1").
		DoAndReturn(func(ctx context.Context, _ *workspace.Workspace, _ domain.Tier, _ string) (*domain.Entity, error) {
			// cliente desconecta com a chamada remota em andamento
			cancel()
			assert.NoError(t, ctx.Err())
			return &updated, nil
		})

	row, err := f.service.ToggleStatus(ctx, id, "1")

	require.NoError(t, err)
	assert.Equal(t, "1", row.ID)
}

func TestLoadRowsSincronizaMesmoComClienteDesconectado(t *testing.T) {
	f := newFixture(t)
	id := f.open(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f.syncer.EXPECT().Sync(gomock.Any(), "act_1", false).
		DoAndReturn(func(ctx context.Context, _ string, _ bool) bool {
			assert.NoError(t, ctx.Err())
			return true
		})
	f.fetcher.EXPECT().FetchTier(gomock.Any(), domain.TierCampaign, gomock.Any(), gomock.Any()).
		Return(&domain.PageResult{}, nil)

	_, err := f.service.LoadRows(ctx, id, 0, 0)

	require.NoError(t, err)
}

func TestToggleStatusFalhaRegistraAviso(t *testing.T) {
	f := newFixture(t)
	id := f.open(t)

	f.toggler.EXPECT().Toggle(gomock.Any(), gomock.Any(), domain.TierCampaign, "1").
		Return(nil, &toggling.ToggleError{Err: toggling.ErrToggleFailed, Code: apiErrors.ErrToggleFailed, Details: "Anúncio rejeitado"})

	_, err := f.service.ToggleStatus(context.Background(), id, "1")

	assert.ErrorIs(t, err, toggling.ErrToggleFailed)
	snapshot, _ := f.service.Snapshot(id)
	require.NotNil(t, snapshot.Notice)
	assert.Equal(t, "Anúncio rejeitado", snapshot.Notice.Detail)
}

func TestBulkUsaLinhasMarcadasQuandoSemIDs(t *testing.T) {
	f := newFixture(t)
	id := f.open(t)

	rows := []domain.Entity{entity("1", "c1", domain.TierCampaign), entity("2", "c2", domain.TierCampaign), entity("3", "c3", domain.TierCampaign)}
	f.syncer.EXPECT().Sync(gomock.Any(), "act_1", false).Return(false)
	f.fetcher.EXPECT().FetchTier(gomock.Any(), domain.TierCampaign, gomock.Any(), gomock.Any()).
		Return(&domain.PageResult{Rows: rows, Total: 3, PageCount: 1}, nil)
	_, err := f.service.LoadRows(context.Background(), id, 0, 0)
	require.NoError(t, err)

	_, err = f.service.ToggleRowSelection(id, "3")
	require.NoError(t, err)
	_, err = f.service.ToggleRowSelection(id, "1")
	require.NoError(t, err)

	initial := domain.BatchProgress{Operation: domain.BatchOperationDelete, Status: domain.BatchStatusLoading, Total: 2}
	f.batcher.EXPECT().Run(gomock.Any(), gomock.Any(), domain.BatchOperationDelete, domain.TierCampaign, []string{"1", "3"}).
		Return(initial, nil, nil)

	progress, err := f.service.Bulk(context.Background(), id, domain.BatchOperationDelete, nil)

	require.NoError(t, err)
	assert.Equal(t, initial, progress)
}

func TestBulkComIDsExplicitos(t *testing.T) {
	f := newFixture(t)
	id := f.open(t)

	f.batcher.EXPECT().Run(gomock.Any(), gomock.Any(), domain.BatchOperationArchive, domain.TierCampaign, []string{"9"}).
		Return(domain.BatchProgress{Total: 1}, nil, nil)

	_, err := f.service.Bulk(context.Background(), id, domain.BatchOperationArchive, []string{"9"})
	require.NoError(t, err)
}

func TestRefreshForcaSincronizacao(t *testing.T) {
	f := newFixture(t)
	id := f.open(t)
	ws, err := f.service.Workspace(id)
	require.NoError(t, err)

	gomock.InOrder(
		f.syncer.EXPECT().Sync(gomock.Any(), "act_1", true).Return(true),
		f.fetcher.EXPECT().FetchTier(gomock.Any(), domain.TierCampaign, gomock.Any(), gomock.Any()).
			Return(&domain.PageResult{Rows: []domain.Entity{entity("4", "c4", domain.TierCampaign)}, Total: 1, PageCount: 1}, nil),
	)

	f.service.Refresh(context.Background(), ws, domain.TierCampaign)

	assert.Equal(t, []string{"4"}, ws.VisibleIDs(domain.TierCampaign))
}

func TestRefreshNivelInativoApenasSincroniza(t *testing.T) {
	f := newFixture(t)
	id := f.open(t)
	ws, err := f.service.Workspace(id)
	require.NoError(t, err)

	f.syncer.EXPECT().Sync(gomock.Any(), "act_1", true).Return(true)

	f.service.Refresh(context.Background(), ws, domain.TierAd)
}

func TestSessaoInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.LoadRows(context.Background(), "nope", 0, 0)

	var wsErr *workspace.WorkspaceError
	require.ErrorAs(t, err, &wsErr)
	assert.Equal(t, apiErrors.ErrResourceNotFound, wsErr.Code)
	assert.ErrorIs(t, err, workspace.ErrWorkspaceNotFound)
}

func TestSetTierInvalido(t *testing.T) {
	f := newFixture(t)
	id := f.open(t)

	_, err := f.service.SetTier(id, domain.Tier("creative"))

	var wsErr *workspace.WorkspaceError
	require.ErrorAs(t, err, &wsErr)
	assert.Equal(t, apiErrors.ErrInvalidRequest, wsErr.Code)
}

func TestDismissProgressDuranteLote(t *testing.T) {
	f := newFixture(t)
	id := f.open(t)
	ws, err := f.service.Workspace(id)
	require.NoError(t, err)

	require.NoError(t, ws.StartBatch(domain.BatchProgress{Status: domain.BatchStatusLoading, Total: 1}))

	err = f.service.DismissProgress(id)
	assert.ErrorIs(t, err, workspace.ErrBatchInProgress)

	ws.FinishBatch(domain.BatchProgress{Status: domain.BatchStatusSuccess, Total: 1, Current: 1}, 0)
	require.NoError(t, f.service.DismissProgress(id))

	progress, err := f.service.Progress(id)
	require.NoError(t, err)
	assert.Nil(t, progress)
}
