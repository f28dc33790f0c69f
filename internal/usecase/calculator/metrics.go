package calculator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var calculationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "calculations_total",
		Help: "Total number of calculations by operation and status",
	},
	[]string{"operation", "status"},
)

// observe учитывает вычисление. Неизвестные операции сводятся к одной метке.
func observe(operation string, err error) {
	label := "invalid"
	for _, info := range supportedOps {
		if string(info.Symbol) == operation {
			label = info.Name
			break
		}
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	calculationsTotal.WithLabelValues(label, status).Inc()
}
