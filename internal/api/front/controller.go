package front

import (
	"context"
	"fmt"
	"log/slog"

	"cleanCalc/internal/ports"
)

// DefaultHistoryLimit — лимит истории по умолчанию.
const DefaultHistoryLimit = 10

// Controller — единая точка входа калькулятора: calculate, history, clear.
// Ошибки use case не пробрасываются, а превращаются в Outcome.
type Controller struct {
	uc  ports.ICalculatorUseCase
	log *slog.Logger
}

// New создаёт фронт-контроллер.
func New(uc ports.ICalculatorUseCase, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{uc: uc, log: log}
}

// Calculate выполняет вычисление. Ошибка возвращается текстом в Outcome.Error.
func (c *Controller) Calculate(ctx context.Context, req Request) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("calculate panic", "panic", r)
			out = fromError(fmt.Errorf("calculation failed: %v", r))
		}
	}()

	rec, err := c.uc.Calculate(ctx, req.FirstOperand, req.Operation, req.SecondOperand)
	if err != nil {
		c.log.Debug("calculate rejected", "error", err)
		return fromError(err)
	}
	return fromRecord(*rec)
}

// History возвращает до limit последних вычислений. Любая ошибка даёт пустой список,
// в отличие от Calculate текст ошибки наружу не попадает.
func (c *Controller) History(ctx context.Context, limit int) (out []Outcome) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("history panic", "panic", r)
			out = []Outcome{}
		}
	}()

	list, err := c.uc.History(ctx, limit)
	if err != nil {
		c.log.Warn("history failed", "limit", limit, "error", err)
		return []Outcome{}
	}
	out = make([]Outcome, len(list))
	for i, rec := range list {
		out[i] = fromRecord(rec)
	}
	return out
}

// ClearHistory очищает историю и сообщает результат.
func (c *Controller) ClearHistory(ctx context.Context) (out ClearOutcome) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("clear history panic", "panic", r)
			out = ClearOutcome{Error: fmt.Sprint(r)}
		}
	}()

	if err := c.uc.ClearHistory(ctx); err != nil {
		c.log.Error("clear history failed", "error", err)
		return ClearOutcome{Error: err.Error()}
	}
	return ClearOutcome{Success: true}
}
