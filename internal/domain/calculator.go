package domain

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Operation — символ арифметической операции.
type Operation string

// Константы арифметических операций.
const (
	OpAdd Operation = "+"
	OpSub Operation = "-"
	OpMul Operation = "*"
	OpDiv Operation = "/"
	OpMod Operation = "%"
	OpPow Operation = "^"
)

// OperationInfo — описание операции для клиентов (символ и название).
type OperationInfo struct {
	Symbol Operation
	Name   string
}

var catalogue = []OperationInfo{
	{Symbol: OpAdd, Name: "add"},
	{Symbol: OpSub, Name: "subtract"},
	{Symbol: OpMul, Name: "multiply"},
	{Symbol: OpDiv, Name: "divide"},
	{Symbol: OpMod, Name: "modulo"},
	{Symbol: OpPow, Name: "power"},
}

// Operations возвращает список поддерживаемых операций в фиксированном порядке.
func Operations() []OperationInfo {
	out := make([]OperationInfo, len(catalogue))
	copy(out, catalogue)
	return out
}

// CalculationRecord — запись об одном успешном вычислении. После создания не меняется.
type CalculationRecord struct {
	ID        uuid.UUID  `json:"id"`
	Value     float64    `json:"value"`
	Operation Operation  `json:"operation"`
	Operands  [2]float64 `json:"operands"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewRecord собирает запись с новым ID и текущим временем.
func NewRecord(value float64, op Operation, a, b float64) CalculationRecord {
	return CalculationRecord{
		ID:        uuid.New(),
		Value:     value,
		Operation: op,
		Operands:  [2]float64{a, b},
		Timestamp: time.Now(),
	}
}

// IsValid сообщает, что результат — конечное число.
func (r CalculationRecord) IsValid() bool {
	return !math.IsNaN(r.Value) && !math.IsInf(r.Value, 0)
}

// String возвращает запись в виде "2 ^ 10 = 1024".
func (r CalculationRecord) String() string {
	var b strings.Builder
	b.WriteString(FormatNumber(r.Operands[0]))
	b.WriteString(" ")
	b.WriteString(string(r.Operation))
	b.WriteString(" ")
	b.WriteString(FormatNumber(r.Operands[1]))
	b.WriteString(" = ")
	b.WriteString(FormatNumber(r.Value))
	return b.String()
}

// FormatNumber печатает число в кратчайшем виде без экспоненты для обычных значений.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
