package memory

import (
	"context"
	"log/slog"
	"sync"

	"cleanCalc/internal/domain"
	"cleanCalc/internal/ports"
)

var _ ports.IHistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo — история вычислений в памяти процесса, новые записи первыми.
// Записи хранятся в порядке добавления, чтение разворачивает порядок.
type HistoryRepo struct {
	mu      sync.RWMutex
	records []domain.CalculationRecord
	log     *slog.Logger
}

// NewHistoryRepo возвращает пустую историю.
func NewHistoryRepo(log *slog.Logger) *HistoryRepo {
	if log == nil {
		log = slog.Default()
	}
	return &HistoryRepo{log: log}
}

// Save добавляет запись в начало истории. Ошибок не бывает.
func (r *HistoryRepo) Save(_ context.Context, rec domain.CalculationRecord) error {
	r.mu.Lock()
	r.records = append(r.records, rec)
	n := len(r.records)
	r.mu.Unlock()

	r.log.Debug("record saved", "id", rec.ID, "size", n)
	return nil
}

// GetHistory возвращает до limit последних записей (последние сначала). limit=0 даёт пустой срез.
func (r *HistoryRepo) GetHistory(_ context.Context, limit int) ([]domain.CalculationRecord, error) {
	if limit < 0 {
		return nil, domain.ErrInvalidLimit
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	n := min(limit, len(r.records))
	out := make([]domain.CalculationRecord, n)
	for i := 0; i < n; i++ {
		out[i] = r.records[len(r.records)-1-i]
	}
	return out, nil
}

// Clear очищает историю. Повторный вызов ничего не меняет.
func (r *HistoryRepo) Clear(_ context.Context) error {
	r.mu.Lock()
	n := len(r.records)
	r.records = nil
	r.mu.Unlock()

	r.log.Debug("history cleared", "removed", n)
	return nil
}

// Len возвращает количество записей.
func (r *HistoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Ping всегда успешен: память доступна, пока жив процесс.
func (r *HistoryRepo) Ping(context.Context) error {
	return nil
}
