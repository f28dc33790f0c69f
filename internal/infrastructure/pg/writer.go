package pg

import (
	"context"
	"fmt"
	"log/slog"

	"cleanCalc/internal/domain"
	"cleanCalc/internal/ports"
)

var _ ports.IOperationAnalytics = (*AnalyticsWriter)(nil)

// AnalyticsWriter пишет копии вычислений в таблицу calculations.
type AnalyticsWriter struct {
	db  *DB
	log *slog.Logger
}

// NewAnalyticsWriter возвращает писатель аналитики поверх PostgreSQL.
func NewAnalyticsWriter(db *DB, log *slog.Logger) *AnalyticsWriter {
	if log == nil {
		log = slog.Default()
	}
	return &AnalyticsWriter{db: db, log: log}
}

// WriteOperation сохраняет запись. Повторная доставка того же id игнорируется.
func (w *AnalyticsWriter) WriteOperation(ctx context.Context, rec domain.CalculationRecord) error {
	_, err := w.db.ExecContext(ctx,
		`INSERT INTO calculations (id, first_operand, second_operand, operation, value, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO NOTHING`,
		rec.ID.String(), rec.Operands[0], rec.Operands[1], string(rec.Operation), rec.Value, rec.Timestamp)
	if err != nil {
		w.log.Debug("write calculation failed", "id", rec.ID, "error", err)
		return fmt.Errorf("insert calculation: %w", err)
	}
	return nil
}
