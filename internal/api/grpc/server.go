package grpc

import (
	"context"
	"log/slog"
	"net"

	"google.golang.org/grpc"

	calculatorv1 "github.com/AraxHub/calc-proto/gen/go/calculator/v1"
	"cleanCalc/internal/api/front"
	"cleanCalc/internal/api/grpc/calculator"
	"cleanCalc/internal/api/grpc/interceptors"
)

// Config — настройки gRPC-сервера. Переменные: CALCULATOR_GRPC_ENABLED, CALCULATOR_GRPC_HOST, CALCULATOR_GRPC_PORT.
type Config struct {
	Enabled bool   `envconfig:"ENABLED" default:"true"`
	Host    string `envconfig:"HOST" default:"0.0.0.0"`
	Port    string `envconfig:"PORT" default:"9090"`
}

// Addr возвращает адрес "host:port".
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Server — gRPC-сервер: регистрирует сервисы и слушает порт.
type Server struct {
	grpc *grpc.Server
	addr string
}

// NewServer создаёт gRPC-сервер и регистрирует CalculatorService поверх фронт-контроллера.
// Цепочка интерцепторов: recovery, затем логирование метода, latency_ms и grpc_code.
func NewServer(addr string, fc *front.Controller, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(
		interceptors.RecoveryUnaryInterceptor(log),
		interceptors.LoggingUnaryInterceptor(log),
	))
	calculatorv1.RegisterCalculatorServiceServer(s, calculator.New(fc, log))
	return &Server{grpc: s, addr: addr}
}

// Start слушает addr и принимает соединения (блокируется). Остановка через Stop().
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(lis)
}

// Serve принимает соединения на готовом listener.
func (s *Server) Serve(lis net.Listener) error {
	return s.grpc.Serve(lis)
}

// Stop останавливает сервер (graceful).
func (s *Server) Stop(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.grpc.Stop()
		return ctx.Err()
	}
}
