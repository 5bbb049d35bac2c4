package metaclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	metadomain "github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-manager-api/internal/config"

	"github.com/sirupsen/logrus"
)

const tokenSecretName = "meta_access_token"

var (
	// ErrTokenRefreshed indica que a chamada falhou por token expirado e o token já foi renovado
	ErrTokenRefreshed = errors.New("token expirado e renovado, por favor tente novamente")
	// ErrReauthorizationRequired indica que o token não pode mais ser renovado automaticamente
	ErrReauthorizationRequired = errors.New("token expirou permanentemente e requer reautorização manual")
)

// TokenManager gerencia tokens de acesso da API do Meta
type TokenManager struct {
	cfg        *config.Config
	mu         sync.Mutex
	secrets    config.SecretStorage
	httpClient *http.Client
}

// NewTokenManager cria uma nova instância do gerenciador de tokens
func NewTokenManager(cfg *config.Config, secrets config.SecretStorage) *TokenManager {
	return &TokenManager{
		cfg:        cfg,
		secrets:    secrets,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (tm *TokenManager) InitToken(ctx context.Context) {
	if tm.cfg.Meta.LongLivedToken == "" {
		logrus.Info("Token de longa duração não encontrado. Iniciando processo de obtenção...")
		if err := tm.InitiateToken(ctx); err != nil {
			logrus.Errorf("Falha ao inicializar token de longa duração: %v", err)
			logrus.Warn("A API Meta pode ter funcionalidade limitada até que o token seja configurado corretamente")
			return
		}
		logrus.Info("Token de longa duração inicializado com sucesso")
		return
	}

	logrus.Info("Validando token de longa duração existente...")
	if err := tm.ValidateExistingToken(ctx); err != nil {
		logrus.Errorf("Falha ao validar token existente: %v", err)
		return
	}
	logrus.Info("Token de longa duração validado com sucesso")
}

// StartAutoRefresh renova o token periodicamente até o contexto ser cancelado
func (tm *TokenManager) StartAutoRefresh(ctx context.Context) {
	// aproximadamente 23 horas para garantir que seja feito antes de 24h
	refreshInterval := 23 * time.Hour
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logrus.Info("Iniciando renovação periódica do token da Meta")
			if err := tm.RefreshToken(ctx); err != nil {
				logrus.Errorf("Erro na renovação periódica do token: %v", err)
				ticker.Reset(1 * time.Hour)
				continue
			}
			logrus.Info("Renovação periódica do token concluída com sucesso")
			ticker.Reset(refreshInterval)
		case <-ctx.Done():
			logrus.Info("Encerrando goroutine de renovação periódica do token")
			return
		}
	}
}

// InitiateToken obtém um token de longa duração a partir do token de curta duração
func (tm *TokenManager) InitiateToken(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	// outra goroutine pode ter inicializado enquanto esperávamos
	if tm.cfg.Meta.LongLivedToken != "" {
		return nil
	}

	tokenResponse, err := tm.getLongLivedToken(ctx, tm.cfg.Meta.AccessToken)
	if err != nil {
		return fmt.Errorf("erro ao obter token de longa duração: %w", err)
	}

	tm.apply(ctx, tokenResponse)

	logrus.Infof("Token de longa duração inicializado com sucesso. Expira em: %s",
		tm.cfg.Meta.TokenExpiresAt.Format(time.RFC3339))

	return nil
}

// ValidateExistingToken valida um token existente e atualiza as informações de expiração
func (tm *TokenManager) ValidateExistingToken(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	info, err := tm.debugToken(ctx, tm.cfg.Meta.LongLivedToken)
	if err != nil {
		return err
	}

	if !info.Data.IsValid {
		return tm.refreshLocked(ctx)
	}

	tm.cfg.Meta.AccessToken = tm.cfg.Meta.LongLivedToken
	if info.Data.ExpiresAt > 0 {
		tm.cfg.Meta.TokenExpiresAt = time.Unix(info.Data.ExpiresAt, 0).Add(-24 * time.Hour)
		logrus.Infof("Token de longa duração é válido. Expira em: %s",
			tm.cfg.Meta.TokenExpiresAt.Format(time.RFC3339))
	}

	return nil
}

// RefreshToken obtém um novo token de longa duração
func (tm *TokenManager) RefreshToken(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	return tm.refreshLocked(ctx)
}

func (tm *TokenManager) refreshLocked(ctx context.Context) error {
	if !tm.cfg.Meta.TokenExpiresAt.IsZero() && time.Until(tm.cfg.Meta.TokenExpiresAt) < 1*time.Hour {
		logrus.Warn("Token está muito próximo da expiração ou já expirou - pode ser necessária reautorização manual")
	}

	logrus.Info("Iniciando renovação do token...")
	tokenResponse, err := tm.getLongLivedToken(ctx, tm.cfg.Meta.AccessToken)
	if err != nil {
		if containsTokenExpirationMessage(err.Error()) {
			logrus.Error("O token de acesso expirou e não pode ser renovado automaticamente. É necessário reautorizar")
			return fmt.Errorf("%w: %v", ErrReauthorizationRequired, err)
		}

		logrus.Errorf("Erro ao renovar token: %v", err)
		return fmt.Errorf("erro ao obter novo token de longa duração: %w", err)
	}

	oldToken := tm.cfg.Meta.LongLivedToken
	tm.apply(ctx, tokenResponse)

	if oldToken == tm.cfg.Meta.LongLivedToken {
		logrus.Info("Token renovado, mas não mudou. Isso pode indicar um problema na API da Meta")
	} else {
		logrus.Infof("Token de longa duração atualizado com sucesso. Expira em: %s",
			tm.cfg.Meta.TokenExpiresAt.Format(time.RFC3339))
	}

	return nil
}

// apply troca o token em uso e persiste o novo valor
func (tm *TokenManager) apply(ctx context.Context, tokenResponse *TokenResponse) {
	tm.cfg.Meta.LongLivedToken = tokenResponse.AccessToken
	tm.cfg.Meta.TokenExpiresAt = CalculateTokenExpiration(tokenResponse.ExpiresIn)
	tm.cfg.Meta.AccessToken = tokenResponse.AccessToken

	if tm.secrets == nil {
		return
	}

	if err := tm.secrets.AddOrUpdateSecret(ctx, tokenSecretName, tokenResponse.AccessToken); err != nil {
		logrus.WithError(err).Warn("Não foi possível persistir o token renovado")
	}
}

// EnsureValidToken verifica se o token atual é válido e tenta renová-lo se necessário
func (tm *TokenManager) EnsureValidToken(ctx context.Context) error {
	if tm.cfg.Meta.AccessToken == "" {
		logrus.Info("Token não inicializado. Inicializando...")
		return tm.InitiateToken(ctx)
	}

	// Sem data de expiração conhecida, a renovação acontece quando a API recusar o token
	if tm.cfg.Meta.TokenExpiresAt.IsZero() {
		return nil
	}

	if time.Until(tm.cfg.Meta.TokenExpiresAt) < 24*time.Hour {
		logrus.Info("Token expira em menos de 24 horas. Renovando proativamente...")
		return tm.RefreshToken(ctx)
	}

	return nil
}

// ParseErrorResponse tenta parsear um erro da API do Meta
func ParseErrorResponse(body []byte) (*metadomain.ErrorResponse, error) {
	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return nil, err
	}
	return &errorResp, nil
}

// HandleResponse manipula a resposta HTTP e verifica erros de token expirado
func (tm *TokenManager) HandleResponse(ctx context.Context, resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	return nil, tm.handleErrorResponse(ctx, resp.StatusCode, body)
}

func (tm *TokenManager) handleErrorResponse(ctx context.Context, statusCode int, body []byte) error {
	errorResp, parseErr := ParseErrorResponse(body)

	if parseErr == nil && errorResp.IsTokenExpired() {
		logrus.Warnf("Token expirado detectado pela API Meta. Código: %d, Subcódigo: %d",
			errorResp.Error.Code, errorResp.Error.ErrorSubcode)
		return tm.handleExpiredToken(ctx)
	}

	if containsTokenExpirationMessage(string(body)) {
		logrus.Warnf("Token expirado detectado pela mensagem de erro: %s", string(body))
		return tm.handleExpiredToken(ctx)
	}

	if parseErr == nil && errorResp.Error.Message != "" {
		return &APIError{
			StatusCode: statusCode,
			Message:    errorResp.Error.Message,
			UserMsg:    errorResp.Error.ErrorUserMsg,
			Code:       errorResp.Error.Code,
			Subcode:    errorResp.Error.ErrorSubcode,
		}
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("erro na resposta da API. Status: %d, Corpo: %s", statusCode, string(body)),
	}
}

func (tm *TokenManager) handleExpiredToken(ctx context.Context) error {
	if refreshErr := tm.RefreshToken(ctx); refreshErr != nil {
		if errors.Is(refreshErr, ErrReauthorizationRequired) {
			return refreshErr
		}
		return fmt.Errorf("erro ao renovar token expirado: %w", refreshErr)
	}

	return ErrTokenRefreshed
}

// containsTokenExpirationMessage verifica se a mensagem contém indicação de token expirado
func containsTokenExpirationMessage(message string) bool {
	return strings.Contains(message, "Error validating access token") ||
		strings.Contains(message, "Session has expired") ||
		strings.Contains(message, "The session has been invalidated")
}
