package domain

import "errors"

var (
	// ErrInvalidNumber — операнд отсутствует или не приводится к конечному числу.
	ErrInvalidNumber = errors.New("invalid number")
	// ErrUnsupportedOperation возвращается, когда операция не поддерживается.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrDivisionByZero — делитель равен нулю для / и %.
	ErrDivisionByZero = errors.New("division by zero is not allowed")
	// ErrCalculationFailed оборачивает первую ошибку валидации или вычисления.
	ErrCalculationFailed = errors.New("calculation failed")
	// ErrInvalidLimit — отрицательный лимит при чтении истории.
	ErrInvalidLimit = errors.New("invalid history limit")
)
