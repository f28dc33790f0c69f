package front

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cleanCalc/internal/domain"
	"cleanCalc/internal/infrastructure/memory"
	"cleanCalc/internal/mocks"
	calcUsecase "cleanCalc/internal/usecase/calculator"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newController собирает контроллер поверх настоящего use case и истории в памяти.
func newController() *Controller {
	log := newTestLogger()
	repo := memory.NewHistoryRepo(log)
	return New(calcUsecase.New(repo, nil, nil, nil, log), log)
}

func TestCalculate_Success(t *testing.T) {
	c := newController()

	out := c.Calculate(context.Background(), Request{FirstOperand: 10, Operation: "+", SecondOperand: 5})

	require.False(t, out.Failed(), out.Error)
	require.NotNil(t, out.Result)
	assert.Equal(t, 15.0, *out.Result)
	assert.Equal(t, "+", out.Operation)
	assert.Equal(t, []float64{10, 5}, out.Operands)
	require.NotNil(t, out.Timestamp)
	assert.False(t, out.Timestamp.IsZero())
	assert.Equal(t, "10 + 5 = 15", out.Display)
}

func TestCalculate_ErrorOutcomeHasOnlyError(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{name: "деление на ноль", req: Request{FirstOperand: 7, Operation: "/", SecondOperand: 0}, want: "division by zero"},
		{name: "остаток от нуля", req: Request{FirstOperand: 7, Operation: "%", SecondOperand: 0}, want: "division by zero"},
		{name: "нечисловой операнд", req: Request{FirstOperand: "abc", Operation: "+", SecondOperand: 1}, want: "abc"},
		{name: "неизвестная операция", req: Request{FirstOperand: 1, Operation: "&", SecondOperand: 1}, want: "unsupported operation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController()

			out := c.Calculate(context.Background(), tt.req)

			require.True(t, out.Failed())
			assert.Contains(t, out.Error, tt.want)
			assert.Contains(t, out.Error, "calculation failed")
			assert.Nil(t, out.Result)
			assert.Empty(t, out.Operation)
			assert.Nil(t, out.Operands)
			assert.Nil(t, out.Timestamp)
			assert.Empty(t, c.History(context.Background(), 10), "ошибка не попадает в историю")
		})
	}
}

func TestHistory_OrderAndLimit(t *testing.T) {
	c := newController()
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		out := c.Calculate(ctx, Request{FirstOperand: i, Operation: "*", SecondOperand: 10})
		require.False(t, out.Failed())
	}

	all := c.History(ctx, 4)
	require.Len(t, all, 4)
	assert.Equal(t, 40.0, *all[0].Result)
	assert.Equal(t, 10.0, *all[3].Result)

	two := c.History(ctx, 2)
	require.Len(t, two, 2)
	assert.Equal(t, 40.0, *two[0].Result)
	assert.Equal(t, 30.0, *two[1].Result)

	assert.Len(t, c.History(ctx, DefaultHistoryLimit), 4)
	assert.Empty(t, c.History(ctx, 0))
}

func TestHistory_FailureIsEmpty(t *testing.T) {
	c := newController()
	ctx := context.Background()
	c.Calculate(ctx, Request{FirstOperand: 1, Operation: "+", SecondOperand: 1})

	list := c.History(ctx, -1)

	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestClearHistory(t *testing.T) {
	c := newController()
	ctx := context.Background()
	c.Calculate(ctx, Request{FirstOperand: 2, Operation: "^", SecondOperand: 8})

	res := c.ClearHistory(ctx)

	assert.True(t, res.Success)
	assert.Empty(t, res.Error)
	assert.Empty(t, c.History(ctx, DefaultHistoryLimit))

	// повторная очистка тоже успешна
	assert.True(t, c.ClearHistory(ctx).Success)
}

func TestController_UseCaseFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockICalculatorUseCase(ctrl)

	uc.EXPECT().History(gomock.Any(), 10).Return(nil, errors.New("storage down"))
	uc.EXPECT().ClearHistory(gomock.Any()).Return(errors.New("storage down"))
	uc.EXPECT().Calculate(gomock.Any(), 1, "+", 1).DoAndReturn(
		func(context.Context, any, string, any) (*domain.CalculationRecord, error) {
			panic("unexpected")
		})

	c := New(uc, newTestLogger())
	ctx := context.Background()

	assert.Empty(t, c.History(ctx, 10))

	res := c.ClearHistory(ctx)
	assert.False(t, res.Success)
	assert.Equal(t, "storage down", res.Error)

	out := c.Calculate(ctx, Request{FirstOperand: 1, Operation: "+", SecondOperand: 1})
	assert.True(t, out.Failed())
	assert.Contains(t, out.Error, "unexpected")
}
