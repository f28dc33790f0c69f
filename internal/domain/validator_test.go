package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    float64
		wantErr bool
	}{
		{name: "float64", input: 2.5, want: 2.5},
		{name: "int", input: 7, want: 7},
		{name: "uint8", input: uint8(3), want: 3},
		{name: "float32", input: float32(0.5), want: 0.5},
		{name: "json number", input: json.Number("-12.25"), want: -12.25},
		{name: "строка", input: "42", want: 42},
		{name: "строка с пробелами", input: "  3.5 ", want: 3.5},
		{name: "экспонента", input: "1e3", want: 1000},
		{name: "отрицательный ноль", input: "-0", want: math.Copysign(0, -1)},
		{name: "nil", input: nil, wantErr: true},
		{name: "пустая строка", input: "", wantErr: true},
		{name: "только пробелы", input: "   ", wantErr: true},
		{name: "буквы", input: "abc", wantErr: true},
		{name: "число с мусором", input: "12abc", wantErr: true},
		{name: "NaN строкой", input: "NaN", wantErr: true},
		{name: "бесконечность строкой", input: "Inf", wantErr: true},
		{name: "переполнение", input: "1e400", wantErr: true},
		{name: "NaN числом", input: math.NaN(), wantErr: true},
		{name: "бесконечность числом", input: math.Inf(-1), wantErr: true},
		{name: "bool", input: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateNumber(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidNumber)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateNumber_MessageMentionsInput(t *testing.T) {
	_, err := ValidateNumber("abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "abc")
}

func TestValidateOperation(t *testing.T) {
	for _, info := range Operations() {
		op, err := ValidateOperation(string(info.Symbol))
		require.NoError(t, err, "операция %s", info.Name)
		assert.Equal(t, info.Symbol, op)
	}

	for _, bad := range []string{"", "&", "plus", "++", " +", "x", "**"} {
		_, err := ValidateOperation(bad)
		assert.ErrorIs(t, err, ErrUnsupportedOperation, "ввод %q", bad)
	}
}

func TestValidateDivision(t *testing.T) {
	assert.NoError(t, ValidateDivision(1, 2))
	assert.NoError(t, ValidateDivision(0, -0.5))
	assert.ErrorIs(t, ValidateDivision(1, 0), ErrDivisionByZero)
	assert.ErrorIs(t, ValidateDivision(1, math.Copysign(0, -1)), ErrDivisionByZero)
	assert.ErrorIs(t, ValidateDivision(0, 0), ErrDivisionByZero, "делимое не важно")
}

func TestOperations_ReturnsCopy(t *testing.T) {
	ops := Operations()
	require.Len(t, ops, 6)
	ops[0].Name = "changed"
	assert.Equal(t, "add", Operations()[0].Name)
}

func TestCalculationRecord_String(t *testing.T) {
	rec := NewRecord(1024, OpPow, 2, 10)
	assert.Equal(t, "2 ^ 10 = 1024", rec.String())
	assert.True(t, rec.IsValid())
	assert.NotEqual(t, [16]byte{}, [16]byte(rec.ID))
	assert.False(t, rec.Timestamp.IsZero())

	inf := NewRecord(math.Inf(1), OpDiv, 1, 0)
	assert.False(t, inf.IsValid())
	assert.Equal(t, "1 / 0 = +Inf", inf.String())
}
