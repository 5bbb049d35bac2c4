package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"nhooyr.io/websocket"
)

const streamWriteTimeout = 5 * time.Second

// ProgressStream envia cada evento de progresso do lote da sessão por websocket
func (h *WorkspaceHandlers) ProgressStream(originPatterns []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, ok := h.authorize(w, r)
		if !ok {
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: originPatterns})
		if err != nil {
			logrus.WithError(err).WithField("workspace_id", ws.ID).Warn("Falha ao abrir stream de progresso")
			return
		}
		defer conn.CloseNow()

		events, unsubscribe := ws.Subscribe()
		defer unsubscribe()

		// o cliente só escuta; CloseRead encerra o contexto quando a conexão cai
		ctx := conn.CloseRead(r.Context())

		for {
			select {
			case <-ctx.Done():
				return
			case progress, open := <-events:
				if !open {
					conn.Close(websocket.StatusGoingAway, "workspace closed")
					return
				}

				payload, err := json.Marshal(progress)
				if err != nil {
					logrus.WithError(err).Error("Erro ao codificar progresso")
					continue
				}

				writeCtx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
				err = conn.Write(writeCtx, websocket.MessageText, payload)
				cancel()
				if err != nil {
					logrus.WithError(err).WithField("workspace_id", ws.ID).Debug("Stream de progresso encerrado")
					return
				}
			}
		}
	})
}
