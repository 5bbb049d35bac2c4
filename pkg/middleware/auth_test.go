package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-manager-api/internal/config"
	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/internal/usecases/authenticating"
)

const testSecret = "segredo"

func signedToken(t *testing.T) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.Claims{
		UserID:     3,
		UserRoleID: RoleClient,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	validator := authenticating.NewService(&config.Config{Auth: config.Auth{Secret: testSecret}})
	token := signedToken(t)

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantUser   bool
	}{
		{name: "Healthcheck é público", path: "/healthcheck", wantStatus: http.StatusOK},
		{name: "Sem token", path: "/v1/workspaces/abc", wantStatus: http.StatusUnauthorized},
		{name: "Cabeçalho sem Bearer", path: "/v1/workspaces/abc", header: token, wantStatus: http.StatusUnauthorized},
		{name: "Token inválido", path: "/v1/workspaces/abc", header: "Bearer xyz", wantStatus: http.StatusUnauthorized},
		{name: "Token válido", path: "/v1/workspaces/abc", header: "Bearer " + token, wantStatus: http.StatusOK, wantUser: true},
		{name: "Stream aceita token na query", path: "/v1/workspaces/abc/progress/stream?access_token=" + token, wantStatus: http.StatusOK, wantUser: true},
		{name: "Query só vale para o stream", path: "/v1/workspaces/abc/rows?access_token=" + token, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				claims, ok := ClaimsFromContext(r.Context())
				gotUser = ok && claims.UserID == 3
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(validator)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUser, gotUser)
		})
	}
}

func TestAllowedOriginHosts(t *testing.T) {
	assert.Contains(t, AllowedOriginHosts(), "localhost:3000")
	assert.Contains(t, AllowedOriginHosts(), "ads-manager-web.vercel.app")
}
