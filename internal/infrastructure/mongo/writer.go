package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"cleanCalc/internal/domain"
	"cleanCalc/internal/ports"
)

// calculationDoc — документ коллекции calculations. _id — строковый UUID записи.
type calculationDoc struct {
	ID            string    `bson:"_id"`
	FirstOperand  float64   `bson:"first_operand"`
	SecondOperand float64   `bson:"second_operand"`
	Operation     string    `bson:"operation"`
	Value         float64   `bson:"value"`
	CreatedAt     time.Time `bson:"created_at"`
}

func toDoc(rec domain.CalculationRecord) calculationDoc {
	return calculationDoc{
		ID:            rec.ID.String(),
		FirstOperand:  rec.Operands[0],
		SecondOperand: rec.Operands[1],
		Operation:     string(rec.Operation),
		Value:         rec.Value,
		CreatedAt:     rec.Timestamp.UTC(),
	}
}

var _ ports.IOperationAnalytics = (*AnalyticsWriter)(nil)

// AnalyticsWriter пишет копии вычислений в коллекцию MongoDB.
type AnalyticsWriter struct {
	client *Client
	log    *slog.Logger
}

// NewAnalyticsWriter возвращает писатель аналитики поверх MongoDB.
func NewAnalyticsWriter(client *Client, log *slog.Logger) *AnalyticsWriter {
	if log == nil {
		log = slog.Default()
	}
	return &AnalyticsWriter{client: client, log: log}
}

// WriteOperation сохраняет запись (upsert по _id, повторная доставка не плодит документы).
func (w *AnalyticsWriter) WriteOperation(ctx context.Context, rec domain.CalculationRecord) error {
	doc := toDoc(rec)
	opts := options.Replace().SetUpsert(true)
	if _, err := w.client.Coll().ReplaceOne(ctx, bson.D{{Key: "_id", Value: doc.ID}}, doc, opts); err != nil {
		w.log.Debug("write calculation failed", "id", doc.ID, "error", err)
		return fmt.Errorf("upsert calculation: %w", err)
	}
	return nil
}
