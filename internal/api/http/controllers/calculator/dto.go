package calculator

import (
	"math"
	"time"

	"cleanCalc/internal/api/front"
)

// CalculateRequest — запрос на вычисление (POST /api/v1/calculate). Операнды — числа или строки.
// Поля не проверяются здесь: порядок проверок и тексты ошибок задаёт use case.
type CalculateRequest struct {
	FirstOperand  any    `json:"first_operand"`
	Operation     string `json:"operation"`
	SecondOperand any    `json:"second_operand"`
}

// HistoryQuery — параметры GET /api/v1/history.
type HistoryQuery struct {
	Limit *int `form:"limit"`
}

// OutcomeResponse — ответ calculate и элемент истории. При ошибке заполнено только error.
type OutcomeResponse struct {
	Result    *float64   `json:"result"`
	Operation *string    `json:"operation"`
	Operands  []float64  `json:"operands"`
	Timestamp *time.Time `json:"timestamp"`
	Display   string     `json:"display,omitempty"`
	Error     *string    `json:"error"`
}

// HistoryResponse — ответ со списком операций.
type HistoryResponse struct {
	Items []OutcomeResponse `json:"items"`
}

// ClearResponse — ответ DELETE /api/v1/history.
type ClearResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// OperationItem — одна поддерживаемая операция.
type OperationItem struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// OperationsResponse — список поддерживаемых операций.
type OperationsResponse struct {
	Items []OperationItem `json:"items"`
}

// toResponse переводит Outcome в JSON-форму. NaN и бесконечность JSON не кодирует,
// поэтому такой результат отдаётся как null, а значение остаётся в display.
func toResponse(o front.Outcome) OutcomeResponse {
	if o.Failed() {
		msg := o.Error
		return OutcomeResponse{Error: &msg}
	}
	resp := OutcomeResponse{
		Operands:  o.Operands,
		Timestamp: o.Timestamp,
		Display:   o.Display,
	}
	if o.Operation != "" {
		op := o.Operation
		resp.Operation = &op
	}
	if o.Result != nil && !math.IsNaN(*o.Result) && !math.IsInf(*o.Result, 0) {
		v := *o.Result
		resp.Result = &v
	}
	return resp
}
