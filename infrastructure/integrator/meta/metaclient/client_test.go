package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-manager-api/internal/config"
)

type fakeSecretStorage struct {
	mu      sync.Mutex
	secrets map[string]string
}

func (f *fakeSecretStorage) AddOrUpdateSecret(_ context.Context, name, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.secrets == nil {
		f.secrets = map[string]string{}
	}
	f.secrets[name] = content
	return nil
}

func newTestClient(t *testing.T, handler func(srvURL string) http.HandlerFunc) (*MetaClient, *fakeSecretStorage) {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler(srv.URL)(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Meta.BaseURL = srv.URL
	cfg.Meta.Version = "v22.0"
	cfg.Meta.URL = srv.URL + "/v22.0"
	cfg.Meta.AccessToken = "token-atual"
	cfg.Meta.LongLivedToken = "token-atual"
	cfg.Meta.PageLimit = 2

	secrets := &fakeSecretStorage{}
	client := NewClient(cfg, NewTokenManager(cfg, secrets)).(*MetaClient)
	return client, secrets
}

func TestListCampaignsSeguePaginacao(t *testing.T) {
	client, _ := newTestClient(t, func(srvURL string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/v22.0/act_123/campaigns":
				assert.Equal(t, "token-atual", r.URL.Query().Get("access_token"))
				assert.Equal(t, "2", r.URL.Query().Get("limit"))
				fmt.Fprintf(w, `{"data":[{"id":"c1","name":"Campanha 1","status":"ACTIVE","daily_budget":"5000"},{"id":"c2","name":"Campanha 2","status":"PAUSED"}],"paging":{"next":"%s/page-2"}}`, srvURL)
			case "/page-2":
				fmt.Fprint(w, `{"data":[{"id":"c3","name":"Campanha 3","status":"ACTIVE","lifetime_budget":"100000"}],"paging":{}}`)
			default:
				t.Errorf("caminho inesperado: %s", r.URL.Path)
				w.WriteHeader(http.StatusNotFound)
			}
		}
	})

	campaigns, err := client.ListCampaigns(context.Background(), "123")

	require.NoError(t, err)
	require.Len(t, campaigns, 3)
	assert.Equal(t, "c1", campaigns[0].ID)
	assert.Equal(t, "5000", campaigns[0].DailyBudget)
	assert.Equal(t, "c3", campaigns[2].ID)
	assert.Equal(t, "100000", campaigns[2].LifetimeBudget)
}

func TestGetInsightsByIDs(t *testing.T) {
	client, _ := newTestClient(t, func(string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "a1,a2", r.URL.Query().Get("ids"))
			fmt.Fprint(w, `{
				"a1":{"id":"a1","insights":{"data":[{"impressions":"1000","reach":"800","actions":[{"action_type":"link_click","value":"12"}],"quality_ranking":"ABOVE_AVERAGE"}]}},
				"a2":{"id":"a2"}
			}`)
		}
	})

	nodes, err := client.GetInsightsByIDs(context.Background(), []string{"a1", "a2"})

	require.NoError(t, err)
	require.Len(t, nodes, 2)

	first := nodes["a1"].First()
	require.NotNil(t, first)
	assert.Equal(t, "1000", first.Impressions)
	assert.Equal(t, "ABOVE_AVERAGE", first.QualityRanking)
	assert.Len(t, first.Actions, 1)
	assert.Nil(t, nodes["a2"].First())
}

func TestGetInsightsByIDsSemIDsNaoChamaAPI(t *testing.T) {
	client, _ := newTestClient(t, func(string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			t.Error("não deveria chamar a API")
		}
	})

	nodes, err := client.GetInsightsByIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantErr    bool
		wantMsg    string
	}{
		{
			name:       "sucesso",
			statusCode: http.StatusOK,
			body:       `{"success":true}`,
		},
		{
			name:       "erro de aplicação com mensagem ao usuário",
			statusCode: http.StatusBadRequest,
			body:       `{"error":{"message":"Invalid parameter","type":"OAuthException","code":100,"error_user_msg":"Campanha em revisão"}}`,
			wantErr:    true,
			wantMsg:    "Campanha em revisão",
		},
		{
			name:       "sucesso não confirmado",
			statusCode: http.StatusOK,
			body:       `{"success":false}`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(string) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, http.MethodPost, r.Method)
					assert.Equal(t, "/v22.0/999", r.URL.Path)
					assert.NoError(t, r.ParseForm())
					assert.Equal(t, "PAUSED", r.PostForm.Get("status"))
					w.WriteHeader(tt.statusCode)
					fmt.Fprint(w, tt.body)
				}
			})

			err := client.UpdateStatus(context.Background(), "999", "PAUSED")

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, apiErr.UserMsg)
				assert.Equal(t, tt.statusCode, apiErr.StatusCode)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	client, _ := newTestClient(t, func(string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/v22.0/555", r.URL.Path)
			fmt.Fprint(w, `{"success":true}`)
		}
	})

	assert.NoError(t, client.Delete(context.Background(), "555"))
}

func TestTokenExpiradoRenovaERepete(t *testing.T) {
	var mu sync.Mutex
	calls := 0

	client, secrets := newTestClient(t, func(string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/v22.0/oauth/access_token":
				assert.Equal(t, "token-atual", r.URL.Query().Get("fb_exchange_token"))
				fmt.Fprint(w, `{"access_token":"token-novo","token_type":"bearer","expires_in":5184000}`)
			case "/v22.0/act_1/ads":
				mu.Lock()
				calls++
				mu.Unlock()

				if r.URL.Query().Get("access_token") != "token-novo" {
					w.WriteHeader(http.StatusBadRequest)
					fmt.Fprint(w, `{"error":{"message":"Error validating access token","type":"OAuthException","code":190}}`)
					return
				}
				fmt.Fprint(w, `{"data":[{"id":"ad1","adset_id":"s1","campaign_id":"c1","name":"Anúncio","status":"ACTIVE"}]}`)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}
	})

	ads, err := client.ListAds(context.Background(), "1")

	require.NoError(t, err)
	require.Len(t, ads, 1)
	assert.Equal(t, "s1", ads[0].AdSetID)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "token-novo", client.Cfg.Meta.AccessToken)
	assert.False(t, client.Cfg.Meta.TokenExpiresAt.IsZero())
	assert.Equal(t, "token-novo", secrets.secrets[tokenSecretName])
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1 dias, 2 horas e 3 minutos", FormatDuration(int64(26*3600+3*60)))
}
