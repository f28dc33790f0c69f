package pg

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS calculations (
		id             UUID PRIMARY KEY,
		first_operand  DOUBLE PRECISION NOT NULL,
		second_operand DOUBLE PRECISION NOT NULL,
		operation      VARCHAR(4) NOT NULL,
		value          DOUBLE PRECISION NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS calculations_created_at_idx ON calculations (created_at DESC)`,
}

// Migrate создаёт таблицу calculations и индексы, если их ещё нет. Повторный вызов безопасен.
func Migrate(ctx context.Context, db *DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("pg migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
