package domain

import (
	"fmt"
	"math"
)

// Compute применяет операцию к двум проверенным операндам.
// Остаток берётся по math.Mod (знак делимого), степень — по math.Pow без ограничений области.
func Compute(a float64, op Operation, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		if err := ValidateDivision(a, b); err != nil {
			return 0, err
		}
		return a / b, nil
	case OpMod:
		if err := ValidateDivision(a, b); err != nil {
			return 0, err
		}
		return math.Mod(a, b), nil
	case OpPow:
		return math.Pow(a, b), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedOperation, string(op))
	}
}
