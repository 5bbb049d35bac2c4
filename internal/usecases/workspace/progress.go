package workspace

import (
	"time"

	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/pkg/log"
)

const subscriberBuffer = 32

// StartBatch publica o registro inicial; só um lote por sessão
func (w *Workspace) StartBatch(progress domain.BatchProgress) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.batch.running {
		return ErrBatchInProgress
	}

	w.stopCloseTimerLocked()
	w.batch.running = true
	w.batch.generation++
	w.setProgressLocked(progress)

	return nil
}

// PublishProgress aplica o evento de progresso do lote em andamento
func (w *Workspace) PublishProgress(progress domain.BatchProgress) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.setProgressLocked(progress)
}

// FinishBatch grava o estado final e agenda o fechamento automático do registro
func (w *Workspace) FinishBatch(progress domain.BatchProgress, closeAfter time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.batch.running = false
	w.setProgressLocked(progress)

	if closeAfter <= 0 {
		return
	}

	generation := w.batch.generation
	w.batch.closeTimer = time.AfterFunc(closeAfter, func() {
		w.mu.Lock()
		defer w.mu.Unlock()

		if w.batch.generation != generation || w.batch.running {
			return
		}
		w.batch.progress = nil
		w.batch.closeTimer = nil

		log.L.WithField("workspace_id", w.ID).Debug("Progresso fechado automaticamente")
	})
}

// DismissProgress fecha o registro manualmente; lotes em andamento não podem ser dispensados
func (w *Workspace) DismissProgress() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.batch.running {
		return ErrBatchInProgress
	}

	w.stopCloseTimerLocked()
	w.batch.progress = nil
	return nil
}

func (w *Workspace) Progress() *domain.BatchProgress {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.batch.progress == nil {
		return nil
	}
	progress := w.batch.progress.Clone()
	return &progress
}

func (w *Workspace) BatchRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.batch.running
}

// Subscribe recebe cada evento publicado; eventos são descartados para assinantes lentos
func (w *Workspace) Subscribe() (<-chan domain.BatchProgress, func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextSubID
	w.nextSubID++

	ch := make(chan domain.BatchProgress, subscriberBuffer)
	w.subscribers[id] = ch

	if w.batch.progress != nil {
		ch <- w.batch.progress.Clone()
	}

	return ch, func() {
		w.mu.Lock()
		defer w.mu.Unlock()

		if sub, ok := w.subscribers[id]; ok {
			delete(w.subscribers, id)
			close(sub)
		}
	}
}

// Close encerra timers e assinantes; chamado quando a sessão sai do registro
func (w *Workspace) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopCloseTimerLocked()
	for id, sub := range w.subscribers {
		delete(w.subscribers, id)
		close(sub)
	}
}

func (w *Workspace) setProgressLocked(progress domain.BatchProgress) {
	stored := progress.Clone()
	w.batch.progress = &stored

	for _, sub := range w.subscribers {
		select {
		case sub <- progress.Clone():
		default:
		}
	}
}

func (w *Workspace) stopCloseTimerLocked() {
	if w.batch.closeTimer != nil {
		w.batch.closeTimer.Stop()
		w.batch.closeTimer = nil
	}
}
