package calculator

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"cleanCalc/internal/api/front"
	"cleanCalc/internal/domain"
)

// Controller — маршруты калькулятора: calculate, history, clear, operations.
type Controller struct {
	front *front.Controller
	log   *slog.Logger
}

// New создаёт контроллер калькулятора.
func New(fc *front.Controller, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{front: fc, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	api.POST("/calculate", c.calculate)
	api.GET("/history", c.history)
	api.DELETE("/history", c.clearHistory)
	api.GET("/operations", c.operations)
}

// @Summary Выполнить вычисление
// @Description Принимает два операнда (число или строка) и операцию (+, -, *, /, %, ^). Результат сохраняется в историю.
// @Tags calculator
// @Accept json
// @Produce json
// @Param request body CalculateRequest true "Параметры вычисления"
// @Success 200 {object} OutcomeResponse "Результат вычисления"
// @Failure 400 {object} OutcomeResponse "Невалидный запрос или ошибка вычисления"
// @Router /api/v1/calculate [post]
func (c *Controller) calculate(ctx *gin.Context) {
	var req CalculateRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.log.Warn("calculate bind failed", "error", err)
		msg := "invalid request: " + err.Error()
		ctx.JSON(http.StatusBadRequest, OutcomeResponse{Error: &msg})
		return
	}

	out := c.front.Calculate(ctx.Request.Context(), front.Request{
		FirstOperand:  req.FirstOperand,
		Operation:     req.Operation,
		SecondOperand: req.SecondOperand,
	})
	if out.Failed() {
		c.log.Warn("calculate failed", "error", out.Error)
		ctx.JSON(http.StatusBadRequest, toResponse(out))
		return
	}
	ctx.JSON(http.StatusOK, toResponse(out))
}

// @Summary Получить историю операций
// @Description Возвращает последние limit вычислений (по умолчанию 10), новые первыми. При сбое — пустой список.
// @Tags calculator
// @Produce json
// @Param limit query int false "Сколько записей вернуть"
// @Success 200 {object} HistoryResponse "Список операций"
// @Router /api/v1/history [get]
func (c *Controller) history(ctx *gin.Context) {
	var q HistoryQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		c.log.Warn("history bind failed", "error", err)
		ctx.JSON(http.StatusOK, HistoryResponse{Items: []OutcomeResponse{}})
		return
	}
	limit := front.DefaultHistoryLimit
	if q.Limit != nil {
		limit = *q.Limit
	}

	list := c.front.History(ctx.Request.Context(), limit)
	items := make([]OutcomeResponse, len(list))
	for i, o := range list {
		items[i] = toResponse(o)
	}
	ctx.JSON(http.StatusOK, HistoryResponse{Items: items})
}

// @Summary Очистить историю
// @Tags calculator
// @Produce json
// @Success 200 {object} ClearResponse
// @Failure 500 {object} ClearResponse
// @Router /api/v1/history [delete]
func (c *Controller) clearHistory(ctx *gin.Context) {
	res := c.front.ClearHistory(ctx.Request.Context())
	if !res.Success {
		ctx.JSON(http.StatusInternalServerError, ClearResponse{Error: res.Error})
		return
	}
	ctx.JSON(http.StatusOK, ClearResponse{Success: true})
}

// @Summary Список операций
// @Tags calculator
// @Produce json
// @Success 200 {object} OperationsResponse
// @Router /api/v1/operations [get]
func (c *Controller) operations(ctx *gin.Context) {
	ops := domain.Operations()
	items := make([]OperationItem, len(ops))
	for i, op := range ops {
		items[i] = OperationItem{Symbol: string(op.Symbol), Name: op.Name}
	}
	ctx.JSON(http.StatusOK, OperationsResponse{Items: items})
}
