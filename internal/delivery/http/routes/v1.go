package routes

import (
	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Health != nil {
		h.Health.RegisterRoutes(r)
	}
	if h.WS != nil {
		r.Get("/ws", h.WS.HandleEvents)
	}

	// /employees/match must be registered before the :id routes.
	if h.EmployeeMatch != nil {
		h.EmployeeMatch.RegisterRoutes(r)
	}
	if h.Skill != nil {
		h.Skill.RegisterRoutes(r)
	}
	if h.SkillRecord != nil {
		h.SkillRecord.RegisterRoutes(r)
	}
	if h.Gap != nil {
		h.Gap.RegisterRoutes(r)
	}
	if h.AutoAssign != nil {
		h.AutoAssign.RegisterRoutes(r)
	}
	if h.Assignment != nil {
		h.Assignment.RegisterRoutes(r)
	}
}
