package calculator

import (
	"context"
	"log/slog"

	"cleanCalc/internal/domain"
	"cleanCalc/internal/ports"
)

// cacheKey формирует читаемый ключ операции для кэша, например "1 + 1".
func cacheKey(number1, number2 float64, operation domain.Operation) string {
	return domain.FormatNumber(number1) + " " + string(operation) + " " + domain.FormatNumber(number2)
}

// UseCase — бизнес-логика калькулятора.
type UseCase struct {
	repo      ports.IHistoryRepository
	cache     ports.ICache
	broker    ports.IProducer
	analytics ports.IOperationAnalytics
	log       *slog.Logger
}

// New создаёт юзкейс калькулятора. cache, broker и analytics необязательны: nil заменяется заглушкой.
func New(repo ports.IHistoryRepository, cache ports.ICache, broker ports.IProducer, analytics ports.IOperationAnalytics, log *slog.Logger) *UseCase {
	if log == nil {
		log = slog.Default()
	}
	if cache == nil {
		cache = nopCache{}
	}
	if broker == nil {
		broker = nopProducer{}
	}
	if analytics == nil {
		analytics = nopAnalytics{}
	}
	return &UseCase{repo: repo, cache: cache, broker: broker, analytics: analytics, log: log}
}

type nopCache struct{}

func (nopCache) Get(context.Context, string) (float64, bool, error) { return 0, false, nil }
func (nopCache) Set(context.Context, string, float64) error         { return nil }

type nopProducer struct{}

func (nopProducer) Send(context.Context, []byte, []byte) error { return nil }

type nopAnalytics struct{}

func (nopAnalytics) WriteOperation(context.Context, domain.CalculationRecord) error { return nil }
