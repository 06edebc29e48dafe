package routes

import (
	"net/http"

	"skill-matrix/internal/delivery/http/handler"
	"skill-matrix/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

// Handlers holds everything the router mounts. Nil entries are skipped.
type Handlers struct {
	Health        *handler.HealthHandler
	Skill         *handler.SkillHandler
	EmployeeMatch *handler.EmployeeMatchHandler
	SkillRecord   *handler.SkillRecordHandler
	Gap           *handler.GapHandler
	AutoAssign    *handler.AutoAssignHandler
	Assignment    *handler.AssignmentHandler
	WS            *ws.Handler
	Metrics       http.Handler
}

type Registry struct {
	h Handlers
}

func NewRegistry(h Handlers) *Registry {
	return &Registry{h: h}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerOps(app)
	r.registerAPI(app)
}

func (r *Registry) registerOps(app *fiber.App) {
	if r.h.Health != nil {
		r.h.Health.RegisterRoutes(app)
	}
	if r.h.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(r.h.Metrics))
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.h)
}
