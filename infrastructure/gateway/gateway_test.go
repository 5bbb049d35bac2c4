package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-manager-api/infrastructure/gateway/mocks"
	"github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-manager-api/infrastructure/repository"
	repomocks "github.com/vfg2006/ads-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-manager-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*mocks.MockIntegrator, *repomocks.MockEntityRepository, Gateway) {
	ctrl := gomock.NewController(t)
	integrator := mocks.NewMockIntegrator(ctrl)
	repo := repomocks.NewMockEntityRepository(ctrl)
	return integrator, repo, New(integrator, repo)
}

func TestList(t *testing.T) {
	_, repo, gw := setup(t)
	ctx := context.Background()
	scope := domain.Scope{AccountID: "123"}
	page := domain.Page{Number: 1, Size: 10}

	repo.EXPECT().List(ctx, domain.TierCampaign, scope, page).
		Return([]domain.RawEntity{{DBID: "a"}, {DBID: "b"}}, 21, nil)

	result, err := gw.List(ctx, domain.TierCampaign, scope, page)

	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, 21, result.Total)
	assert.Equal(t, 3, result.Pages)
}

func TestListPropagaErro(t *testing.T) {
	_, repo, gw := setup(t)
	dbErr := errors.New("conexão perdida")

	repo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, 0, dbErr)

	_, err := gw.List(context.Background(), domain.TierAd, domain.Scope{}, domain.Page{Number: 1, Size: 10})

	assert.ErrorIs(t, err, dbErr)
}

func TestMetricsSemIDsNaoChamaIntegrador(t *testing.T) {
	_, _, gw := setup(t)

	records, err := gw.Metrics(context.Background(), domain.TierAd, nil)

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSync(t *testing.T) {
	integrator, repo, gw := setup(t)
	ctx := context.Background()
	entities := []domain.RawEntity{{ExternalID: "s1"}}

	integrator.EXPECT().ListEntities(ctx, domain.TierAdSet, "123").Return(entities, nil)
	repo.EXPECT().SaveOrUpdate(ctx, domain.TierAdSet, entities).Return(nil)

	assert.NoError(t, gw.Sync(ctx, domain.TierAdSet, "123"))
}

func TestSetStatus(t *testing.T) {
	tests := []struct {
		name       string
		remoteErr  error
		mirrorErr  error
		wantRemote *RemoteError
		wantErr    bool
	}{
		{
			name: "sucesso atualiza o espelho",
		},
		{
			name:      "espelho sem a linha não falha",
			mirrorErr: repository.ErrEntityNotFound,
		},
		{
			name:      "falha no espelho não falha a operação",
			mirrorErr: errors.New("timeout"),
		},
		{
			name:       "erro de aplicação vira RemoteError",
			remoteErr:  &metaclient.APIError{Message: "Invalid parameter", UserMsg: "Anúncio em revisão"},
			wantRemote: &RemoteError{Message: "Invalid parameter", Detail: "Anúncio em revisão"},
			wantErr:    true,
		},
		{
			name:      "erro de rede é embrulhado",
			remoteErr: errors.New("connection reset"),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integrator, repo, gw := setup(t)
			ctx := context.Background()

			integrator.EXPECT().SetStatus(ctx, "ext-1", domain.EntityStatusPaused).Return(tt.remoteErr)
			if tt.remoteErr == nil {
				repo.EXPECT().UpdateStatus(ctx, domain.TierAd, "ext-1", domain.EntityStatusPaused).Return(tt.mirrorErr)
			}

			err := gw.SetStatus(ctx, domain.TierAd, "ext-1", domain.EntityStatusPaused)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			if tt.wantRemote != nil {
				var remote *RemoteError
				require.ErrorAs(t, err, &remote)
				assert.Equal(t, tt.wantRemote, remote)
				assert.Equal(t, "Invalid parameter: Anúncio em revisão", remote.Error())
				return
			}
			assert.ErrorIs(t, err, tt.remoteErr)
		})
	}
}

func TestRemoveMarcaComoDeletado(t *testing.T) {
	integrator, repo, gw := setup(t)
	ctx := context.Background()

	integrator.EXPECT().Delete(ctx, "ext-9").Return(nil)
	repo.EXPECT().UpdateStatus(ctx, domain.TierCampaign, "ext-9", domain.EntityStatusDeleted).Return(nil)

	assert.NoError(t, gw.Remove(ctx, domain.TierCampaign, "ext-9"))
}
