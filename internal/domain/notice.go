package domain

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice é a notificação exibida ao usuário após uma operação
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
	Detail  string      `json:"detail,omitempty"`
}
