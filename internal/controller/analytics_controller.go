package controller

import (
	"alignai-be/internal/pkg/serverutils"
	"alignai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAnalyticsController interface {
	RegisterRoutes(r fiber.Router)
}

type analyticsController struct {
	service service.IAnalyticsService
	jwt     fiber.Handler
}

func NewAnalyticsController(service service.IAnalyticsService, jwt fiber.Handler) IAnalyticsController {
	return &analyticsController{service: service, jwt: jwt}
}

func (c *analyticsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analytics", c.jwt)
	h.Get("/dashboard", c.Dashboard)
	h.Get("/performance-trends", c.PerformanceTrends)
	h.Get("/category-performance", c.CategoryPerformance)
	h.Get("/improvement-areas", c.ImprovementAreas)
}

func (c *analyticsController) Dashboard(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserID(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.Dashboard(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Dashboard", res))
}

func (c *analyticsController) PerformanceTrends(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserID(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.PerformanceTrends(ctx.UserContext(), userId, ctx.QueryInt("days", 30))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Performance trends", res))
}

func (c *analyticsController) CategoryPerformance(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserID(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.CategoryPerformance(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Category performance", res))
}

func (c *analyticsController) ImprovementAreas(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserID(ctx)
	if err != nil {
		return err
	}
	res, err := c.service.ImprovementAreas(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Improvement areas", res))
}
