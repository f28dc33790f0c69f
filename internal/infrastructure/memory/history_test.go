package memory

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"cleanCalc/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func record(v float64) domain.CalculationRecord {
	return domain.NewRecord(v, domain.OpAdd, v, 0)
}

func TestHistoryRepo_NewestFirst(t *testing.T) {
	repo := NewHistoryRepo(newTestLogger())
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.Save(ctx, record(float64(i))))
	}

	list, err := repo.GetHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 3.0, list[0].Value, "первая запись — самая новая")
	assert.Equal(t, 2.0, list[1].Value)
	assert.Equal(t, 1.0, list[2].Value, "последняя запись — самая старая")
}

func TestHistoryRepo_Limit(t *testing.T) {
	repo := NewHistoryRepo(newTestLogger())
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.Save(ctx, record(float64(i))))
	}

	tests := []struct {
		name  string
		limit int
		want  []float64
	}{
		{name: "ноль", limit: 0, want: []float64{}},
		{name: "меньше размера", limit: 2, want: []float64{5, 4}},
		{name: "равен размеру", limit: 5, want: []float64{5, 4, 3, 2, 1}},
		{name: "больше размера", limit: 100, want: []float64{5, 4, 3, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := repo.GetHistory(ctx, tt.limit)
			require.NoError(t, err)
			got := make([]float64, 0, len(list))
			for _, rec := range list {
				got = append(got, rec.Value)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHistoryRepo_NegativeLimit(t *testing.T) {
	repo := NewHistoryRepo(newTestLogger())

	_, err := repo.GetHistory(context.Background(), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidLimit)
}

func TestHistoryRepo_NoDeduplication(t *testing.T) {
	repo := NewHistoryRepo(newTestLogger())
	ctx := context.Background()
	rec := record(7)

	require.NoError(t, repo.Save(ctx, rec))
	require.NoError(t, repo.Save(ctx, rec))

	assert.Equal(t, 2, repo.Len())
}

func TestHistoryRepo_ReturnsCopy(t *testing.T) {
	repo := NewHistoryRepo(newTestLogger())
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, record(1)))

	list, err := repo.GetHistory(ctx, 1)
	require.NoError(t, err)
	list[0].Value = 100

	again, err := repo.GetHistory(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, again[0].Value)
}

func TestHistoryRepo_ClearIdempotent(t *testing.T) {
	repo := NewHistoryRepo(newTestLogger())
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, record(1)))

	require.NoError(t, repo.Clear(ctx))
	require.NoError(t, repo.Clear(ctx))

	list, err := repo.GetHistory(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, repo.Ping(ctx))
}

func TestHistoryRepo_ConcurrentSave(t *testing.T) {
	repo := NewHistoryRepo(newTestLogger())
	ctx := context.Background()

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_ = repo.Save(ctx, record(float64(i)))
				_, _ = repo.GetHistory(ctx, 5)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker, repo.Len())
}

// Модель: история — срез, в начало которого вставляется каждая запись.
func TestHistoryRepo_Model_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		repo := NewHistoryRepo(newTestLogger())
		ctx := context.Background()
		var model []float64

		steps := rapid.IntRange(1, 50).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 9).Draw(rt, "action") {
			case 0:
				_ = repo.Clear(ctx)
				model = nil
			default:
				v := float64(i)
				_ = repo.Save(ctx, record(v))
				model = append([]float64{v}, model...)
			}

			limit := rapid.IntRange(0, 60).Draw(rt, "limit")
			list, err := repo.GetHistory(ctx, limit)
			if err != nil {
				rt.Fatalf("GetHistory(%d): %v", limit, err)
			}
			want := model[:min(limit, len(model))]
			if len(list) != len(want) {
				rt.Fatalf("GetHistory(%d) returned %d records, want %d", limit, len(list), len(want))
			}
			for j := range want {
				if list[j].Value != want[j] {
					rt.Fatalf("GetHistory(%d)[%d] = %v, want %v", limit, j, list[j].Value, want[j])
				}
			}
		}
	})
}
