package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cleanCalc/internal/domain"
	"cleanCalc/internal/infrastructure/memory"
	"cleanCalc/internal/mocks"
)

// newTestLogger создаёт логгер для тестов (выводит только ошибки, чтобы не засорять вывод).
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// Полный флоу: кэш-промах → расчёт → кэш → история → брокер.
func TestCalculate_CacheMiss(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockCache := mocks.NewMockICache(ctrl)
	mockRepo := mocks.NewMockIHistoryRepository(ctrl)
	mockBroker := mocks.NewMockIProducer(ctrl)

	var saved domain.CalculationRecord
	gomock.InOrder(
		mockCache.EXPECT().Get(gomock.Any(), "10 + 5").Return(0.0, false, nil),
		mockCache.EXPECT().Set(gomock.Any(), "10 + 5", 15.0).Return(nil),
		mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, rec domain.CalculationRecord) error {
				saved = rec
				return nil
			}),
		mockBroker.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, key, value []byte) error {
				assert.Equal(t, saved.ID.String(), string(key))
				var event domain.CalculationRecord
				require.NoError(t, json.Unmarshal(value, &event))
				assert.Equal(t, saved.ID, event.ID)
				assert.Equal(t, 15.0, event.Value)
				return nil
			}),
	)

	uc := New(mockRepo, mockCache, mockBroker, nil, newTestLogger())

	result, err := uc.Calculate(context.Background(), 10, "+", "5")

	require.NoError(t, err)
	assert.Equal(t, 15.0, result.Value)
	assert.Equal(t, domain.OpAdd, result.Operation)
	assert.Equal(t, [2]float64{10, 5}, result.Operands)
	assert.Equal(t, saved.ID, result.ID)
}

// Кэш-попадание: расчёт не выполняется, но запись всё равно попадает в историю.
func TestCalculate_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockCache := mocks.NewMockICache(ctrl)
	mockRepo := mocks.NewMockIHistoryRepository(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), "2 ^ 10").Return(1024.0, true, nil)
	mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	// Set не вызывается — значение уже в кэше.

	uc := New(mockRepo, mockCache, nil, nil, newTestLogger())

	result, err := uc.Calculate(context.Background(), 2, "^", 10)

	require.NoError(t, err)
	assert.Equal(t, 1024.0, result.Value)
}

// Ошибки кэша и брокера не ломают вычисление.
func TestCalculate_InfrastructureErrorsAreSoft(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockCache := mocks.NewMockICache(ctrl)
	mockRepo := mocks.NewMockIHistoryRepository(ctrl)
	mockBroker := mocks.NewMockIProducer(ctrl)

	mockCache.EXPECT().Get(gomock.Any(), "6 * 7").Return(0.0, false, errors.New("redis down"))
	mockCache.EXPECT().Set(gomock.Any(), "6 * 7", 42.0).Return(errors.New("redis down"))
	mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	mockBroker.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("kafka down"))

	uc := New(mockRepo, mockCache, mockBroker, nil, newTestLogger())

	result, err := uc.Calculate(context.Background(), 6, "*", 7)

	require.NoError(t, err)
	assert.Equal(t, 42.0, result.Value)
}

// Ошибки валидации: ни кэш, ни история, ни брокер не вызываются.
func TestCalculate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		first     any
		operation string
		second    any
		wantErr   error
		wantText  string
	}{
		{name: "деление на ноль", first: 10, operation: "/", second: 0, wantErr: domain.ErrDivisionByZero, wantText: "division by zero"},
		{name: "остаток от нуля", first: 10, operation: "%", second: "0", wantErr: domain.ErrDivisionByZero, wantText: "division by zero"},
		{name: "нечисловой операнд", first: "abc", operation: "+", second: 1, wantErr: domain.ErrInvalidNumber, wantText: "abc"},
		{name: "пустой второй операнд", first: 1, operation: "+", second: nil, wantErr: domain.ErrInvalidNumber, wantText: "invalid number"},
		{name: "неизвестная операция", first: 1, operation: "&", second: 1, wantErr: domain.ErrUnsupportedOperation, wantText: "&"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockCache := mocks.NewMockICache(ctrl)
			mockRepo := mocks.NewMockIHistoryRepository(ctrl)
			mockBroker := mocks.NewMockIProducer(ctrl)

			uc := New(mockRepo, mockCache, mockBroker, nil, newTestLogger())

			result, err := uc.Calculate(context.Background(), tt.first, tt.operation, tt.second)

			assert.Nil(t, result)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrCalculationFailed)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantText)
		})
	}
}

// Первая ошибка по порядку: сначала первый операнд, потом операция, потом второй.
func TestCalculate_FirstErrorWins(t *testing.T) {
	uc := New(memory.NewHistoryRepo(newTestLogger()), nil, nil, nil, newTestLogger())

	_, err := uc.Calculate(context.Background(), "x", "&", "y")
	assert.ErrorIs(t, err, domain.ErrInvalidNumber)
	assert.NotErrorIs(t, err, domain.ErrUnsupportedOperation)

	_, err = uc.Calculate(context.Background(), 1, "&", "y")
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)
}

func TestCalculate_SaveError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIHistoryRepository(ctrl)
	mockBroker := mocks.NewMockIProducer(ctrl)

	mockRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("boom"))
	// брокер не вызывается — записи нет

	uc := New(mockRepo, nil, mockBroker, nil, newTestLogger())

	_, err := uc.Calculate(context.Background(), 1, "+", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCalculationFailed)
	assert.Contains(t, err.Error(), "boom")
}

// Бесконечный результат сохраняется, но не публикуется (JSON не кодирует Inf).
func TestCalculate_NonFiniteResultNotPublished(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockBroker := mocks.NewMockIProducer(ctrl)
	repo := memory.NewHistoryRepo(newTestLogger())

	uc := New(repo, nil, mockBroker, nil, newTestLogger())

	result, err := uc.Calculate(context.Background(), 0, "^", -1)
	require.NoError(t, err)
	assert.True(t, math.IsInf(result.Value, 1))
	assert.Equal(t, 1, repo.Len())
}

// Каждый успешный результат сразу первый в истории.
func TestCalculate_AppearsFirstInHistory(t *testing.T) {
	repo := memory.NewHistoryRepo(newTestLogger())
	uc := New(repo, nil, nil, nil, newTestLogger())
	ctx := context.Background()

	inputs := []struct {
		a, b any
		op   string
	}{
		{a: 100, op: "+", b: 50},
		{a: 75, op: "-", b: 25},
		{a: "12", op: "*", b: "12"},
		{a: 200, op: "/", b: 8},
	}
	for _, in := range inputs {
		rec, err := uc.Calculate(ctx, in.a, in.op, in.b)
		require.NoError(t, err)

		latest, err := uc.History(ctx, 1)
		require.NoError(t, err)
		require.Len(t, latest, 1)
		assert.Equal(t, rec.ID, latest[0].ID)
	}

	all, err := uc.History(ctx, len(inputs))
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, 25.0, all[0].Value)
	assert.Equal(t, 150.0, all[3].Value)

	two, err := uc.History(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, all[:2], two)
}

func TestHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIHistoryRepository(ctrl)

	expected := []domain.CalculationRecord{
		domain.NewRecord(15, domain.OpAdd, 10, 5),
		domain.NewRecord(5, domain.OpDiv, 20, 4),
	}
	mockRepo.EXPECT().GetHistory(gomock.Any(), 10).Return(expected, nil)

	// Для History не нужны cache, broker, analytics — передаём nil
	uc := New(mockRepo, nil, nil, nil, newTestLogger())

	result, err := uc.History(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestHistory_NegativeLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIHistoryRepository(ctrl)

	uc := New(mockRepo, nil, nil, nil, newTestLogger())

	_, err := uc.History(context.Background(), -5)
	assert.ErrorIs(t, err, domain.ErrInvalidLimit)
}

func TestClearHistory(t *testing.T) {
	repo := memory.NewHistoryRepo(newTestLogger())
	uc := New(repo, nil, nil, nil, newTestLogger())
	ctx := context.Background()

	_, err := uc.Calculate(ctx, 1, "+", 2)
	require.NoError(t, err)

	require.NoError(t, uc.ClearHistory(ctx))
	list, err := uc.History(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClearHistory_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockIHistoryRepository(ctrl)
	mockRepo.EXPECT().Clear(gomock.Any()).Return(errors.New("locked"))

	uc := New(mockRepo, nil, nil, nil, newTestLogger())

	err := uc.ClearHistory(context.Background())
	assert.ErrorContains(t, err, "locked")
}

func TestHandleOperationEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAnalytics := mocks.NewMockIOperationAnalytics(ctrl)
	rec := domain.NewRecord(3, domain.OpAdd, 1, 2)

	mockAnalytics.EXPECT().WriteOperation(gomock.Any(), rec).Return(nil)
	mockAnalytics.EXPECT().WriteOperation(gomock.Any(), rec).Return(errors.New("click down"))

	uc := New(nil, nil, nil, mockAnalytics, newTestLogger())

	assert.NoError(t, uc.HandleOperationEvent(context.Background(), rec))
	assert.Error(t, uc.HandleOperationEvent(context.Background(), rec))
}
