package controller

import (
	"alignai-be/internal/dto"
	"alignai-be/internal/pkg/serverutils"
	"alignai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	GetProfile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
	UploadResume(ctx *fiber.Ctx) error
	GetResumes(ctx *fiber.Ctx) error
}

type userController struct {
	service service.IUserService
	jwt     fiber.Handler
}

func NewUserController(service service.IUserService, jwt fiber.Handler) IUserController {
	return &userController{service: service, jwt: jwt}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/users", c.jwt)
	h.Get("/profile", c.GetProfile)
	h.Put("/profile", c.UpdateProfile)
	h.Post("/upload-resume", c.UploadResume)
	h.Get("/resumes", c.GetResumes)
}

func (c *userController) GetProfile(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetProfile(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User profile", res))
}

func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.Validation("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateProfile(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile updated", res))
}

func (c *userController) UploadResume(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserID(ctx)
	if err != nil {
		return err
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return serverutils.Validation("File is required")
	}

	res, err := c.service.UploadResume(ctx.UserContext(), userId, file)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Resume uploaded successfully", res))
}

func (c *userController) GetResumes(ctx *fiber.Ctx) error {
	userId, err := serverutils.GetUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetResumes(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Resumes", res))
}
