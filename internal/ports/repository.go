package ports

//go:generate mockgen -source=repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"cleanCalc/internal/domain"
)

// IHistoryRepository — контракт истории вычислений: сохранить, прочитать последние, очистить.
type IHistoryRepository interface {
	Save(ctx context.Context, rec domain.CalculationRecord) error
	GetHistory(ctx context.Context, limit int) ([]domain.CalculationRecord, error)
	Clear(ctx context.Context) error
}

// IPinger — зависимость, которую проверяет readiness.
type IPinger interface {
	Ping(ctx context.Context) error
}
