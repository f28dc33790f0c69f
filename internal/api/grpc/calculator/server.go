package calculator

import (
	"context"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	calculatorv1 "github.com/AraxHub/calc-proto/gen/go/calculator/v1"
	"cleanCalc/internal/api/front"
)

// Server реализует gRPC CalculatorService поверх фронт-контроллера.
// Очистка истории в контракте сервиса отсутствует и доступна только по HTTP.
type Server struct {
	calculatorv1.UnimplementedCalculatorServiceServer
	front *front.Controller
	log   *slog.Logger
}

// New создаёт gRPC-сервер калькулятора.
func New(fc *front.Controller, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{front: fc, log: log}
}

// Calculate возвращает результат или InvalidArgument с текстом ошибки.
// В Message кладётся запись целиком ("2 ^ 10 = 1024"); NaN и бесконечность protobuf передаёт как есть.
func (s *Server) Calculate(ctx context.Context, req *calculatorv1.CalculateRequest) (*calculatorv1.CalculateResponse, error) {
	out := s.front.Calculate(ctx, front.Request{
		FirstOperand:  req.GetNumber1(),
		Operation:     req.GetOperation(),
		SecondOperand: req.GetNumber2(),
	})
	if out.Failed() {
		return nil, status.Error(codes.InvalidArgument, out.Error)
	}
	return &calculatorv1.CalculateResponse{
		Result:  *out.Result,
		Message: out.Display,
	}, nil
}

// History возвращает последние DefaultHistoryLimit вычислений, новые первыми.
// Id — позиция в выдаче (1 — самое новое). Сбой даёт пустой список, а не ошибку.
func (s *Server) History(ctx context.Context, _ *calculatorv1.HistoryRequest) (*calculatorv1.HistoryResponse, error) {
	list := s.front.History(ctx, front.DefaultHistoryLimit)
	items := make([]*calculatorv1.HistoryItem, len(list))
	for i, o := range list {
		items[i] = toHistoryItem(int32(i+1), o)
	}
	return &calculatorv1.HistoryResponse{Items: items}, nil
}

func toHistoryItem(id int32, o front.Outcome) *calculatorv1.HistoryItem {
	item := &calculatorv1.HistoryItem{
		Id:        id,
		Operation: o.Operation,
		Message:   o.Display,
	}
	if len(o.Operands) == 2 {
		item.Number1, item.Number2 = o.Operands[0], o.Operands[1]
	}
	if o.Result != nil {
		item.Result = *o.Result
	}
	if o.Timestamp != nil {
		item.TimestampUnixNano = o.Timestamp.UnixNano()
	}
	return item
}
