// Демонстрация калькулятора без сети: сценарии вызывают фронт-контроллер напрямую.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"cleanCalc/internal/api/front"
	"cleanCalc/internal/infrastructure/memory"
	"cleanCalc/internal/pkg/logger"
	calcUsecase "cleanCalc/internal/usecase/calculator"
)

// newController собирает калькулятор с историей в памяти.
func newController(log *slog.Logger) *front.Controller {
	repo := memory.NewHistoryRepo(log)
	return front.New(calcUsecase.New(repo, nil, nil, nil, log), log)
}

func newRootCmd(out io.Writer) *cobra.Command {
	var (
		logLevel   string
		iterations int
	)

	// Каждый сценарий получает свой калькулятор с пустой историей.
	scenario := func(run func(r *runner, ctx context.Context) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			log := logger.NewWithWriter(logger.Config{Level: logLevel}, cmd.ErrOrStderr())
			return run(&runner{fc: newController(log), out: cmd.OutOrStdout()}, cmd.Context())
		}
	}

	root := &cobra.Command{
		Use:           "demo",
		Short:         "Calculator usage scenarios",
		SilenceUsage:  true,
		RunE: scenario(func(r *runner, ctx context.Context) error {
			steps := []func(context.Context) error{r.basic, r.errors, r.history, r.advanced}
			for _, step := range steps {
				if err := step(ctx); err != nil {
					return err
				}
			}
			if err := r.timing(ctx, iterations); err != nil {
				return err
			}
			r.printf("\nall scenarios completed\n")
			return nil
		}),
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&logLevel, "log-level", "error", "log level (debug, info, warn, error)")
	root.PersistentFlags().IntVarP(&iterations, "iterations", "n", 1000, "number of calculations for the timing scenario")

	root.AddCommand(
		&cobra.Command{Use: "basic", Short: "Simple calculations", RunE: scenario(func(r *runner, ctx context.Context) error { return r.basic(ctx) })},
		&cobra.Command{Use: "errors", Short: "Rejected input", RunE: scenario(func(r *runner, ctx context.Context) error { return r.errors(ctx) })},
		&cobra.Command{Use: "history", Short: "History listing and clearing", RunE: scenario(func(r *runner, ctx context.Context) error { return r.history(ctx) })},
		&cobra.Command{Use: "advanced", Short: "Batch and chained calculations", RunE: scenario(func(r *runner, ctx context.Context) error { return r.advanced(ctx) })},
		&cobra.Command{Use: "timing", Short: "Random calculations with timing", RunE: scenario(func(r *runner, ctx context.Context) error { return r.timing(ctx, iterations) })},
	)
	return root
}

func main() {
	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
