package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"cleanCalc/internal/api/front"
)

// runner печатает сценарии использования калькулятора в out.
type runner struct {
	fc  *front.Controller
	out io.Writer
}

func (r *runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *runner) section(title string) {
	r.printf("\n=== %s ===\n", title)
}

// show печатает результат или ошибку одного вычисления.
func (r *runner) show(o front.Outcome) {
	if o.Failed() {
		r.printf("error: %s\n", o.Error)
		return
	}
	r.printf("%s\n", o.Display)
}

func (r *runner) calc(ctx context.Context, a any, op string, b any) front.Outcome {
	return r.fc.Calculate(ctx, front.Request{FirstOperand: a, Operation: op, SecondOperand: b})
}

func (r *runner) basic(ctx context.Context) error {
	r.section("basic usage")
	for _, c := range []struct {
		a, b float64
		op   string
	}{
		{10, 5, "+"},
		{7, 8, "*"},
		{20, 4, "/"},
		{2, 10, "^"},
	} {
		r.show(r.calc(ctx, c.a, c.op, c.b))
	}
	return nil
}

func (r *runner) errors(ctx context.Context) error {
	r.section("error handling")
	r.show(r.calc(ctx, 10, "/", 0))
	r.show(r.calc(ctx, 5, "&", 3))
	r.show(r.calc(ctx, "abc", "+", 5))
	return nil
}

func (r *runner) history(ctx context.Context) error {
	r.section("history management")
	for _, c := range []struct {
		a, b float64
		op   string
	}{
		{100, 50, "+"},
		{75, 25, "-"},
		{12, 12, "*"},
		{200, 8, "/"},
	} {
		r.show(r.calc(ctx, c.a, c.op, c.b))
	}

	r.printf("\nlast %d:\n", front.DefaultHistoryLimit)
	for i, o := range r.fc.History(ctx, front.DefaultHistoryLimit) {
		r.printf("%d. %s (%s)\n", i+1, o.Display, o.Timestamp.Format(time.TimeOnly))
	}
	r.printf("\nlast 2:\n")
	for i, o := range r.fc.History(ctx, 2) {
		r.printf("%d. %s\n", i+1, o.Display)
	}

	if res := r.fc.ClearHistory(ctx); !res.Success {
		return fmt.Errorf("clear history: %s", res.Error)
	}
	r.printf("\nhistory after clearing: %d items\n", len(r.fc.History(ctx, front.DefaultHistoryLimit)))
	return nil
}

func (r *runner) advanced(ctx context.Context) error {
	r.section("batch")
	batch := []front.Request{
		{FirstOperand: 1, Operation: "+", SecondOperand: 2},
		{FirstOperand: 3, Operation: "*", SecondOperand: 4},
		{FirstOperand: 10, Operation: "/", SecondOperand: 2},
		{FirstOperand: 15, Operation: "%", SecondOperand: 4},
	}
	results := make([]front.Outcome, len(batch))
	var g errgroup.Group
	for i, req := range batch {
		i, req := i, req
		g.Go(func() error {
			results[i] = r.fc.Calculate(ctx, req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, o := range results {
		r.show(o)
	}

	r.section("chain")
	step := r.calc(ctx, 10, "+", 5)
	r.show(step)
	for _, next := range []struct {
		op string
		b  float64
	}{{"*", 2}, {"/", 5}} {
		if step.Failed() {
			return fmt.Errorf("chain: %s", step.Error)
		}
		step = r.calc(ctx, *step.Result, next.op, next.b)
		r.show(step)
	}
	return nil
}

// timing выполняет n случайных вычислений параллельно и печатает время.
func (r *runner) timing(ctx context.Context, n int) error {
	r.section("timing")
	ops := []string{"+", "-", "*", "/"}
	start := time.Now()

	var g errgroup.Group
	g.SetLimit(16)
	for i := 0; i < n; i++ {
		a := rand.Intn(100)
		b := rand.Intn(100) + 1
		op := ops[rand.Intn(len(ops))]
		g.Go(func() error {
			if o := r.calc(ctx, a, op, b); o.Failed() {
				return fmt.Errorf("%d %s %d: %s", a, op, b, o.Error)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	elapsed := time.Since(start)
	r.printf("completed %d calculations in %s\n", n, elapsed)
	if n > 0 {
		r.printf("average per calculation: %s\n", elapsed/time.Duration(n))
	}
	r.printf("history contains %d calculations\n", len(r.fc.History(ctx, n)))
	return nil
}
