package app

import (
	"fmt"
	"strings"

	"skill-matrix/internal/config"
	"skill-matrix/internal/delivery/http/handler"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/delivery/http/routes"
	"skill-matrix/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP app on top of an initialized container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	routes.NewRegistry(newHandlers(c)).Register(f)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware(c.Log).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Log.Named("http")).Middleware())
	app.Use(middleware.NewMetricsMiddleware(c.Metrics).Middleware())
}

func newHandlers(c *Container) routes.Handlers {
	var cachePinger handler.Pinger
	if c.Cache != nil && c.Cache.Available() {
		cachePinger = c.Cache
	}

	uc := c.Usecases
	return routes.Handlers{
		Health:        handler.NewHealthHandler(c.DB, cachePinger),
		Skill:         handler.NewSkillHandler(uc.Skills),
		EmployeeMatch: handler.NewEmployeeMatchHandler(uc.EmployeeMatch),
		SkillRecord:   handler.NewSkillRecordHandler(uc.SkillRecords),
		Gap:           handler.NewGapHandler(uc.GapReports, uc.GapExport),
		AutoAssign:    handler.NewAutoAssignHandler(uc.AutoAssign),
		Assignment:    handler.NewAssignmentHandler(uc.Assignments),
		WS:            ws.NewHandler(c.Hub, c.Log.Named("ws")),
		Metrics:       c.Metrics.Handler(),
	}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
