package system

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cleanCalc/internal/ports"
)

// Controller — системные маршруты: liveness, readiness, метрики.
type Controller struct {
	deps map[string]ports.IPinger
	log  *slog.Logger
}

// New создаёт системный контроллер. deps — зависимости, которые проверяет readiness (имя → пинг).
func New(deps map[string]ports.IPinger, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{deps: deps, log: log}
}

// RegisterRoutes реализует http.Controller: регистрирует маршруты на роутере.
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	r.GET("/liveness", c.live)
	r.GET("/readyness", c.ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (c *Controller) live(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "alive"})
}

func (c *Controller) ready(ctx *gin.Context) {
	names := make([]string, 0, len(c.deps))
	for name := range c.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	failed := gin.H{}
	for _, name := range names {
		if err := c.deps[name].Ping(ctx.Request.Context()); err != nil {
			c.log.Warn("ready check failed", "dependency", name, "error", err)
			failed[name] = err.Error()
		}
	}
	if len(failed) > 0 {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "errors": failed})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ready", "dependencies": names})
}
