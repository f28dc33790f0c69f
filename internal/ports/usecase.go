package ports

//go:generate mockgen -source=usecase.go -destination=../mocks/usecase_mock.go -package=mocks

import (
	"context"

	"cleanCalc/internal/domain"
)

// ICalculatorUseCase — контракт бизнес-логики калькулятора (расчёт, история, обработка событий из Kafka).
type ICalculatorUseCase interface {
	Calculate(ctx context.Context, first any, operation string, second any) (*domain.CalculationRecord, error)
	History(ctx context.Context, limit int) ([]domain.CalculationRecord, error)
	ClearHistory(ctx context.Context) error
	HandleOperationEvent(ctx context.Context, rec domain.CalculationRecord) error
}
