package ports

//go:generate mockgen -source=analytics.go -destination=../mocks/analytics_mock.go -package=mocks

import (
	"context"

	"cleanCalc/internal/domain"
)

// IOperationAnalytics — запись вычислений в хранилище для аналитики (ClickHouse, PostgreSQL, MongoDB).
type IOperationAnalytics interface {
	WriteOperation(ctx context.Context, rec domain.CalculationRecord) error
}
