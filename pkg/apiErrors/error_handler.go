package apiErrors

import (
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro para autenticação
const (
	// Erros de autenticação (1000-1999)
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes

	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrResourceNotFound    = "VAL_004" // Workspace ou linha inexistente

	// Avisos de pré-condição (3000-3999), nunca chegam à plataforma
	ErrNothingSelected      = "WRN_001" // Nenhum item selecionado
	ErrMissingExternalID    = "WRN_002" // Linha sem id externo
	ErrRowBusy              = "WRN_003" // Linha com operação em andamento
	ErrConfirmationRequired = "WRN_004" // Operação destrutiva sem confirmação

	// Erros do motor de sincronização (4000-4999)
	ErrFetchFailed     = "ENG_001" // Falha ao carregar
	ErrToggleFailed    = "ENG_002" // Falha ao alterar status
	ErrBatchInProgress = "ENG_003" // Já existe um lote em andamento

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
)

const (
	LevelWarning = "warning"
	LevelError   = "error"
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrResourceNotFound:      http.StatusNotFound,
	ErrNothingSelected:       http.StatusUnprocessableEntity,
	ErrMissingExternalID:     http.StatusUnprocessableEntity,
	ErrRowBusy:               http.StatusConflict,
	ErrConfirmationRequired:  http.StatusUnprocessableEntity,
	ErrFetchFailed:           http.StatusBadGateway,
	ErrToggleFailed:          http.StatusBadGateway,
	ErrBatchInProgress:       http.StatusConflict,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
	ErrCommunication:         http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Level   string `json:"level"`             // warning ou error
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// IsWarning indica se o código é um aviso de pré-condição
func IsWarning(code string) bool {
	return strings.HasPrefix(code, "WRN_")
}

// StatusFor devolve o status HTTP do código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Level:   LevelError,
		Message: message,
		Details: details,
	}
	if IsWarning(code) {
		apiErr.Level = LevelWarning
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Level:   LevelError,
			Message: "Erro desconhecido",
		}
	}

	level := LevelError
	if IsWarning(code) {
		level = LevelWarning
	}

	return APIError{
		Code:    code,
		Level:   level,
		Message: err.Error(),
	}
}
