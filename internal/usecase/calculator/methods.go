package calculator

import (
	"context"
	"encoding/json"
	"fmt"

	"cleanCalc/internal/domain"
)

var supportedOps = domain.Operations()

// failed оборачивает причину в ErrCalculationFailed, сохраняя её для errors.Is.
func failed(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrCalculationFailed, err)
}

// Calculate — проверяет операнды и операцию, считает (с кэшем), сохраняет запись в историю и публикует событие.
// При любой ошибке в историю ничего не пишется.
func (u *UseCase) Calculate(ctx context.Context, first any, operation string, second any) (rec *domain.CalculationRecord, err error) {
	defer func() { observe(operation, err) }()

	a, err := domain.ValidateNumber(first)
	if err != nil {
		return nil, failed(err)
	}
	op, err := domain.ValidateOperation(operation)
	if err != nil {
		return nil, failed(err)
	}
	b, err := domain.ValidateNumber(second)
	if err != nil {
		return nil, failed(err)
	}
	if op == domain.OpDiv || op == domain.OpMod {
		if err := domain.ValidateDivision(a, b); err != nil {
			return nil, failed(err)
		}
	}

	key := cacheKey(a, b, op)
	result, found, cacheErr := u.cache.Get(ctx, key)
	if cacheErr != nil {
		u.log.Warn("cache get", "key", key, "error", cacheErr)
	}
	if !found {
		result, err = domain.Compute(a, op, b)
		if err != nil {
			return nil, failed(err)
		}
		if err := u.cache.Set(ctx, key, result); err != nil {
			u.log.Warn("cache set", "key", key, "error", err)
		}
	}

	record := domain.NewRecord(result, op, a, b)
	if err := u.repo.Save(ctx, record); err != nil {
		return nil, failed(fmt.Errorf("save record: %w", err))
	}
	u.log.Info("operation saved", "key", key, "result", result, "cached", found)

	u.publish(ctx, record)
	return &record, nil
}

// publish отправляет запись в брокер. Ошибки только логируются: запись уже в истории.
func (u *UseCase) publish(ctx context.Context, rec domain.CalculationRecord) {
	if !rec.IsValid() {
		u.log.Debug("skip publish of non-finite result", "id", rec.ID)
		return
	}
	value, err := json.Marshal(rec)
	if err != nil {
		u.log.Warn("event marshal", "id", rec.ID, "error", err)
		return
	}
	if err := u.broker.Send(ctx, []byte(rec.ID.String()), value); err != nil {
		u.log.Warn("broker send", "id", rec.ID, "error", err)
		return
	}
	u.log.Debug("operation published", "id", rec.ID)
}

// History — последние limit записей истории (последние сначала).
func (u *UseCase) History(ctx context.Context, limit int) ([]domain.CalculationRecord, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidLimit, limit)
	}
	return u.repo.GetHistory(ctx, limit)
}

// ClearHistory очищает историю.
func (u *UseCase) ClearHistory(ctx context.Context) error {
	if err := u.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	u.log.Info("history cleared")
	return nil
}

// HandleOperationEvent вызывается консьюмером при получении события из топика (часть ICalculatorUseCase).
func (u *UseCase) HandleOperationEvent(ctx context.Context, rec domain.CalculationRecord) error {
	if err := u.analytics.WriteOperation(ctx, rec); err != nil {
		u.log.Warn("analytics write", "id", rec.ID, "error", err)
		return err
	}
	u.log.Info("operation stored to analytics", "id", rec.ID, "operation", rec.Operation, "result", rec.Value)
	return nil
}
