package batching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-manager-api/infrastructure/gateway"
	"github.com/vfg2006/ads-manager-api/infrastructure/gateway/mocks"
	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/internal/usecases/workspace"
	"github.com/vfg2006/ads-manager-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

type refreshCall struct {
	ws   *workspace.Workspace
	tier domain.Tier
}

type fakeRefresher struct {
	calls chan refreshCall
}

func (f *fakeRefresher) Refresh(_ context.Context, ws *workspace.Workspace, tier domain.Tier) {
	f.calls <- refreshCall{ws: ws, tier: tier}
}

func newTestService(gw gateway.Gateway) (*Service, *[]time.Duration, *[]time.Duration) {
	var slept, scheduled []time.Duration

	service := NewService(gw, Settings{
		RefreshDelay: 2 * time.Second,
		ArchiveDelay: 800 * time.Millisecond,
	})
	service.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	service.afterFunc = func(d time.Duration, f func()) {
		scheduled = append(scheduled, d)
		f()
	}

	return service, &slept, &scheduled
}

func newWorkspace(t *testing.T, ids ...string) *workspace.Workspace {
	t.Helper()

	rows := make([]domain.Entity, 0, len(ids))
	for _, id := range ids {
		e := domain.Entity{ID: id, ExternalID: "ext-" + id, Tier: domain.TierCampaign, Name: "Campanha " + id}
		e.SetStatus(domain.EntityStatusActive)
		rows = append(rows, e)
	}

	ws, err := workspace.NewRegistry(10).Open("123", 1)
	require.NoError(t, err)
	ws.ReplaceRows(domain.TierCampaign, &domain.PageResult{Rows: rows, Total: len(rows), PageCount: 1})
	return ws
}

func waitResult(t *testing.T, done <-chan domain.BatchResult) domain.BatchResult {
	t.Helper()

	select {
	case result := <-done:
		return result
	case <-time.After(2 * time.Second):
		t.Fatal("lote não terminou")
	}
	return domain.BatchResult{}
}

func TestRunExclusaoParcial(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)
	ws := newWorkspace(t, "1", "2", "3", "4", "5")
	service, _, scheduled := newTestService(gw)
	refresher := &fakeRefresher{calls: make(chan refreshCall, 1)}
	service.SetRefresher(refresher)

	events, cancel := ws.Subscribe()
	defer cancel()

	for i, id := range []string{"1", "2", "3", "4", "5"} {
		var err error
		if i == 1 || i == 3 {
			err = &gateway.RemoteError{Message: "Permissions error"}
		}

		expected := i
		gw.EXPECT().Remove(gomock.Any(), domain.TierCampaign, "ext-"+id).DoAndReturn(
			func(context.Context, domain.Tier, string) error {
				// o item anterior já foi publicado antes deste começar
				if progress := ws.Progress(); assert.NotNil(t, progress) {
					assert.Equal(t, expected, progress.Current)
				}
				return err
			})
	}

	initial, done, err := service.Run(context.Background(), ws, domain.BatchOperationDelete, domain.TierCampaign, []string{"1", "2", "3", "4", "5"})
	require.NoError(t, err)
	assert.Equal(t, domain.BatchStatusLoading, initial.Status)
	assert.Equal(t, 5, initial.Total)
	assert.Equal(t, 0, initial.Current)

	result := waitResult(t, done)

	assert.Equal(t, domain.BatchStatusPartial, result.Progress.Status)
	assert.Equal(t, 3, result.Progress.SuccessCount)
	assert.Equal(t, 2, result.Progress.ErrorCount)
	assert.Equal(t, 100, result.Progress.Percentage)
	assert.NotNil(t, result.Progress.FinishedAt)
	assert.Equal(t, []string{"1", "3", "5"}, result.Succeeded)
	require.Len(t, result.Progress.Errors, 2)
	assert.Equal(t, "2", result.Progress.Errors[0].ID)
	assert.Equal(t, "4", result.Progress.Errors[1].ID)

	// só as linhas removidas com sucesso saem do conjunto local
	assert.Equal(t, []string{"2", "4"}, ws.VisibleIDs(domain.TierCampaign))

	snapshot := ws.Snapshot()
	require.NotNil(t, snapshot.Notice)
	assert.Equal(t, domain.NoticeWarning, snapshot.Notice.Level)

	call := <-refresher.calls
	assert.Equal(t, domain.TierCampaign, call.tier)
	assert.Equal(t, []time.Duration{2 * time.Second}, *scheduled)

	last := -1
	for len(events) > 0 {
		progress := <-events
		assert.GreaterOrEqual(t, progress.Current, last)
		last = progress.Current
	}
	assert.Equal(t, 5, last)
}

func TestRunSemSelecaoNaoChamaPlataforma(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)
	ws := newWorkspace(t, "1")
	service, _, _ := newTestService(gw)

	for _, ids := range [][]string{nil, {}, {""}} {
		_, done, err := service.Run(context.Background(), ws, domain.BatchOperationDelete, domain.TierCampaign, ids)

		assert.Nil(t, done)
		var batchErr *BatchError
		require.ErrorAs(t, err, &batchErr)
		assert.True(t, batchErr.Warning)
		assert.Equal(t, apiErrors.ErrNothingSelected, batchErr.Code)
		assert.ErrorIs(t, err, ErrNothingSelected)
	}

	assert.Nil(t, ws.Progress())
}

func TestRunOperacaoInvalida(t *testing.T) {
	ctrl := gomock.NewController(t)
	service, _, _ := newTestService(mocks.NewMockGateway(ctrl))

	_, _, err := service.Run(context.Background(), newWorkspace(t, "1"), domain.BatchOperation("pause"), domain.TierCampaign, []string{"1"})

	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestRunRecusaLoteConcorrente(t *testing.T) {
	ctrl := gomock.NewController(t)
	ws := newWorkspace(t, "1")
	service, _, _ := newTestService(mocks.NewMockGateway(ctrl))

	require.NoError(t, ws.StartBatch(NewProgress(domain.BatchOperationArchive, domain.TierCampaign, 1, time.Now())))

	_, _, err := service.Run(context.Background(), ws, domain.BatchOperationDelete, domain.TierCampaign, []string{"1"})

	var batchErr *BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, apiErrors.ErrBatchInProgress, batchErr.Code)
	assert.ErrorIs(t, err, workspace.ErrBatchInProgress)
}

func TestRunTodosFalhamNaoAgendaRecarga(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)
	ws := newWorkspace(t, "1", "2")
	service, _, scheduled := newTestService(gw)
	service.SetRefresher(&fakeRefresher{calls: make(chan refreshCall, 1)})

	gw.EXPECT().Remove(gomock.Any(), domain.TierCampaign, gomock.Any()).Return(errors.New("timeout")).Times(2)

	_, done, err := service.Run(context.Background(), ws, domain.BatchOperationDelete, domain.TierCampaign, []string{"1", "2"})
	require.NoError(t, err)

	result := waitResult(t, done)

	assert.Equal(t, domain.BatchStatusError, result.Progress.Status)
	assert.Empty(t, result.Succeeded)
	assert.Empty(t, *scheduled)
	assert.Equal(t, []string{"1", "2"}, ws.VisibleIDs(domain.TierCampaign))
}

func TestStreamArquivamento(t *testing.T) {
	ctrl := gomock.NewController(t)
	service, slept, _ := newTestService(mocks.NewMockGateway(ctrl))

	items := []Item{
		{ID: "1", ExternalID: "ext-1", Found: true},
		{ID: "2", Found: true},
		{ID: "3", ExternalID: "ext-3", Found: true},
	}

	var percentages []int
	var statuses []domain.BatchStatus
	for event := range service.Stream(context.Background(), NewProgress(domain.BatchOperationArchive, domain.TierAd, len(items), time.Now()), items) {
		percentages = append(percentages, event.Progress.Percentage)
		statuses = append(statuses, event.Progress.Status)
		assert.True(t, event.Succeeded)
	}

	assert.Equal(t, []int{33, 67, 100}, percentages)
	assert.Equal(t, []domain.BatchStatus{domain.BatchStatusLoading, domain.BatchStatusLoading, domain.BatchStatusSuccess}, statuses)
	assert.Len(t, *slept, 3)
	assert.Equal(t, 800*time.Millisecond, (*slept)[0])
}

func TestStreamExclusaoSemIDExterno(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)
	service, _, _ := newTestService(gw)

	gw.EXPECT().Remove(gomock.Any(), domain.TierAd, "ext-2").Return(nil)

	items := []Item{
		{ID: "1", Found: true},
		{ID: "2", ExternalID: "ext-2", Found: true},
		{ID: "3"},
	}

	var final domain.BatchProgress
	for event := range service.Stream(context.Background(), NewProgress(domain.BatchOperationDelete, domain.TierAd, len(items), time.Now()), items) {
		final = event.Progress
	}

	assert.Equal(t, domain.BatchStatusPartial, final.Status)
	require.Len(t, final.Errors, 2)
	assert.Equal(t, ErrMissingExternalID.Error(), final.Errors[0].Message)
	assert.Equal(t, ErrItemNotFound.Error(), final.Errors[1].Message)
}

func TestStreamInterrompidoPeloConsumidor(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)
	service, _, _ := newTestService(gw)

	gw.EXPECT().Remove(gomock.Any(), domain.TierAd, "ext-1").Return(nil)

	items := []Item{
		{ID: "1", ExternalID: "ext-1", Found: true},
		{ID: "2", ExternalID: "ext-2", Found: true},
	}

	for range service.Stream(context.Background(), NewProgress(domain.BatchOperationDelete, domain.TierAd, len(items), time.Now()), items) {
		break
	}
}

func TestStreamPreservaInicioDoLote(t *testing.T) {
	ctrl := gomock.NewController(t)
	service, _, _ := newTestService(mocks.NewMockGateway(ctrl))

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	clock := start
	service.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	items := []Item{
		{ID: "1", Found: true},
		{ID: "2", Found: true},
	}
	initial := NewProgress(domain.BatchOperationArchive, domain.TierAd, len(items), start)

	var events []Event
	for event := range service.Stream(context.Background(), initial, items) {
		events = append(events, event)
	}

	require.Len(t, events, 2)
	for _, event := range events {
		assert.Equal(t, start, event.Progress.StartedAt)
		assert.Equal(t, domain.BatchOperationArchive, event.Progress.Operation)
		assert.Equal(t, domain.TierAd, event.Progress.Tier)
	}
	require.NotNil(t, events[1].Progress.FinishedAt)
	assert.True(t, events[1].Progress.FinishedAt.After(start))
	assert.Empty(t, initial.Errors)
}

func TestRunPublicaMesmoInicioDoRegistroInicial(t *testing.T) {
	ctrl := gomock.NewController(t)
	service, _, _ := newTestService(mocks.NewMockGateway(ctrl))

	clock := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	ws := newWorkspace(t, "1", "2")
	initial, done, err := service.Run(context.Background(), ws, domain.BatchOperationArchive, domain.TierCampaign, []string{"1", "2"})
	require.NoError(t, err)

	result := waitResult(t, done)

	assert.Equal(t, initial.StartedAt, result.Progress.StartedAt)
	assert.Equal(t, domain.BatchStatusSuccess, result.Progress.Status)
}

func TestTerminalStatus(t *testing.T) {
	assert.Equal(t, domain.BatchStatusSuccess, TerminalStatus(3, 0))
	assert.Equal(t, domain.BatchStatusError, TerminalStatus(0, 3))
	assert.Equal(t, domain.BatchStatusPartial, TerminalStatus(1, 2))
}

func TestNoticeFor(t *testing.T) {
	notice := NoticeFor(domain.BatchProgress{Status: domain.BatchStatusSuccess, SuccessCount: 4, Total: 4})
	assert.Equal(t, domain.NoticeSuccess, notice.Level)
	assert.Equal(t, "4 itens processados com sucesso", notice.Message)

	notice = NoticeFor(domain.BatchProgress{Status: domain.BatchStatusError, ErrorCount: 2, Total: 2})
	assert.Equal(t, domain.NoticeError, notice.Level)
	assert.Equal(t, "2 falhas", notice.Detail)
}
