package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValidateNumber приводит вход к числу. Принимает числовые типы Go, json.Number и строки.
// Пустой ввод, нечисловая строка, NaN и бесконечность дают ErrInvalidNumber.
func ValidateNumber(input any) (float64, error) {
	var v float64
	switch x := input.(type) {
	case nil:
		return 0, fmt.Errorf("%w: value cannot be empty", ErrInvalidNumber)
	case float64:
		v = x
	case float32:
		v = float64(x)
	case int:
		v = float64(x)
	case int8:
		v = float64(x)
	case int16:
		v = float64(x)
	case int32:
		v = float64(x)
	case int64:
		v = float64(x)
	case uint:
		v = float64(x)
	case uint8:
		v = float64(x)
	case uint16:
		v = float64(x)
	case uint32:
		v = float64(x)
	case uint64:
		v = float64(x)
	case json.Number:
		return parseNumber(string(x))
	case string:
		return parseNumber(x)
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidNumber, input)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidNumber, v)
	}
	return v, nil
}

func parseNumber(s string) (float64, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, fmt.Errorf("%w: value cannot be empty", ErrInvalidNumber)
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return v, nil
}

// ValidateOperation проверяет, что символ входит в набор + - * / % ^.
func ValidateOperation(input string) (Operation, error) {
	op := Operation(input)
	for _, info := range catalogue {
		if info.Symbol == op {
			return op, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedOperation, input)
}

// ValidateDivision запрещает нулевой делитель (вызывается только для / и %).
// Делимое не проверяется: 0 / x и 0 % x допустимы.
func ValidateDivision(_, divisor float64) error {
	if divisor == 0 {
		return ErrDivisionByZero
	}
	return nil
}
