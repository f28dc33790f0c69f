package click

import (
	"context"
	"fmt"

	"cleanCalc/internal/domain"
	"cleanCalc/internal/ports"
)

// AnalyticsTable — таблица вычислений для аналитики.
const AnalyticsTable = "calculations_analytics"

var _ ports.IOperationAnalytics = (*OperationWriter)(nil)

// OperationWriter пишет вычисления в ClickHouse в виде, удобном для аналитики (GROUP BY operation, по времени).
type OperationWriter struct {
	db    *Client
	table string
}

// NewOperationWriter создаёт писатель вычислений для аналитики.
func NewOperationWriter(db *Client) *OperationWriter {
	return &OperationWriter{db: db, table: qualifiedTable(db.database)}
}

func qualifiedTable(database string) string {
	if database == "" {
		database = "default"
	}
	return database + "." + AnalyticsTable
}

// EnsureTable создаёт таблицу, если её ещё нет. Вызывается один раз при старте.
func (w *OperationWriter) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id UUID,
			first_operand Float64,
			second_operand Float64,
			operation LowCardinality(String),
			value Float64,
			created_at DateTime64(3)
		) ENGINE = ReplacingMergeTree()
		ORDER BY (operation, created_at, id)
		PARTITION BY toYYYYMM(created_at)`,
		w.table,
	)
	if _, err := w.db.DB().ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create %s: %w", w.table, err)
	}
	return nil
}

// WriteOperation реализует ports.IOperationAnalytics. Повторная доставка события схлопывается по id.
func (w *OperationWriter) WriteOperation(ctx context.Context, rec domain.CalculationRecord) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (id, first_operand, second_operand, operation, value, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		w.table,
	)
	_, err := w.db.DB().ExecContext(ctx, query,
		rec.ID.String(), rec.Operands[0], rec.Operands[1], string(rec.Operation), rec.Value, rec.Timestamp)
	if err != nil {
		return fmt.Errorf("insert calculation: %w", err)
	}
	return nil
}
