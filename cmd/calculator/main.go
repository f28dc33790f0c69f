// Сервис калькулятора: HTTP и gRPC поверх общей истории в памяти.
package main

import (
	"fmt"
	"os"

	"cleanCalc/internal/app"
)

func main() {
	cfg, err := app.LoadCfg()
	if err != nil {
		fmt.Fprintf(os.Stderr, "calculator: config: %v\n", err)
		os.Exit(2)
	}

	if err := app.New(cfg).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "calculator: %v\n", err)
		os.Exit(1)
	}
}
