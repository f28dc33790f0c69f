package front

import (
	"time"

	"cleanCalc/internal/domain"
)

// Request — запрос на вычисление. Операнды — числа или строки, приводятся в use case.
type Request struct {
	FirstOperand  any
	Operation     string
	SecondOperand any
}

// Outcome — результат вызова: либо запись вычисления, либо текст ошибки (но не оба сразу).
type Outcome struct {
	Result    *float64
	Operation string
	Operands  []float64
	Timestamp *time.Time
	Display   string
	Error     string
}

// Failed сообщает, что Outcome содержит ошибку.
func (o Outcome) Failed() bool {
	return o.Error != ""
}

// ClearOutcome — результат очистки истории.
type ClearOutcome struct {
	Success bool
	Error   string
}

// fromRecord проецирует запись вычисления в Outcome.
func fromRecord(rec domain.CalculationRecord) Outcome {
	value := rec.Value
	ts := rec.Timestamp
	return Outcome{
		Result:    &value,
		Operation: string(rec.Operation),
		Operands:  []float64{rec.Operands[0], rec.Operands[1]},
		Timestamp: &ts,
		Display:   rec.String(),
	}
}

// fromError — Outcome с одной ошибкой, остальные поля пустые.
func fromError(err error) Outcome {
	return Outcome{Error: err.Error()}
}
