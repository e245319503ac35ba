package controller

import (
	"alignai-be/internal/dto"
	"alignai-be/internal/pkg/serverutils"
	"alignai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Broadcast(ctx *fiber.Ctx) error
	LiveSessions(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IAdminService
	jwt     fiber.Handler
}

func NewAdminController(service service.IAdminService, jwt fiber.Handler) IAdminController {
	return &adminController{service: service, jwt: jwt}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin", c.jwt, serverutils.RequireAdmin)
	h.Post("/broadcast", c.Broadcast)
	h.Get("/sessions", c.LiveSessions)
	h.Get("/logs", c.GetLogs)
}

func (c *adminController) Broadcast(ctx *fiber.Ctx) error {
	var req dto.BroadcastRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.Validation("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Broadcast(&req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Announcement sent", res))
}

func (c *adminController) LiveSessions(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Live sessions", c.service.LiveSessions()))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	res, err := c.service.Logs(ctx.Query("level"), ctx.QueryInt("limit", 100), ctx.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Logs", res))
}
