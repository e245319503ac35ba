package controller

import (
	"alignai-be/internal/dto"
	"alignai-be/internal/pkg/serverutils"
	"alignai-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IInterviewController interface {
	RegisterRoutes(r fiber.Router)
	GetTemplates(ctx *fiber.Ctx) error
	GetVoices(ctx *fiber.Ctx) error
	StartInterview(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	GetInterview(ctx *fiber.Ctx) error
	CancelInterview(ctx *fiber.Ctx) error
}

type interviewController struct {
	service service.IInterviewService
	jwt     fiber.Handler
}

func NewInterviewController(service service.IInterviewService, jwt fiber.Handler) IInterviewController {
	return &interviewController{service: service, jwt: jwt}
}

// RegisterRoutes attaches the middleware per route: /ai-interview also hosts
// the websocket endpoint, which authenticates with a query token.
func (c *interviewController) RegisterRoutes(r fiber.Router) {
	ai := r.Group("/ai-interview")
	ai.Get("/templates", c.GetTemplates)
	ai.Get("/voices", c.GetVoices)
	ai.Post("/start", c.jwt, c.StartInterview)
	ai.Get("/history", c.jwt, c.GetHistory)
	ai.Get("/:id", c.jwt, c.GetInterview)

	iv := r.Group("/interviews")
	iv.Get("/templates", c.GetTemplates)
	iv.Get("/my-interviews", c.jwt, c.GetHistory)
	iv.Get("/:id", c.jwt, c.GetInterview)
	iv.Post("/:id/cancel", c.jwt, c.CancelInterview)
}

func interviewID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, serverutils.NotFound("Interview not found")
	}
	return id, nil
}

func (c *interviewController) GetTemplates(ctx *fiber.Ctx) error {
	res, err := c.service.GetTemplates(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Interview templates", res))
}

func (c *interviewController) GetVoices(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Available voices", c.service.GetVoices()))
}

func (c *interviewController) StartInterview(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.StartInterviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.Validation("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.StartInterview(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Interview started", res))
}

func (c *interviewController) GetHistory(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetHistory(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Interview history", res))
}

func (c *interviewController) GetInterview(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserID(ctx)
	if err != nil {
		return err
	}
	id, err := interviewID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetInterviewDetail(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Interview detail", res))
}

func (c *interviewController) CancelInterview(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserID(ctx)
	if err != nil {
		return err
	}
	id, err := interviewID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.CancelInterview(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Interview cancelled", res))
}
