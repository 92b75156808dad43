package controller

import (
	"ai-scoping-be/internal/dto"
	"ai-scoping-be/internal/pkg/serverutils"
	"ai-scoping-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IScopeController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Regenerate(ctx *fiber.Ctx) error
	Finalize(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type scopeController struct {
	scopeService service.IScopeService
}

func NewScopeController(scopeService service.IScopeService) IScopeController {
	return &scopeController{
		scopeService: scopeService,
	}
}

func (c *scopeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/project/v1/:id/scope")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/generate", c.Generate)
	h.Post("/regenerate", c.Regenerate)
	h.Post("/finalize", c.Finalize)
	h.Get("", c.Show)
}

func (c *scopeController) Generate(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid project id")
	}

	res, err := c.scopeService.Generate(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "project not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate scope", res))
}

func (c *scopeController) Regenerate(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid project id")
	}

	var req dto.RegenerateScopeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.scopeService.Regenerate(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "project or scope not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success regenerate scope", res))
}

func (c *scopeController) Finalize(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid project id")
	}

	var req dto.FinalizeScopeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	res, err := c.scopeService.Finalize(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "project not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success finalize scope", res))
}

func (c *scopeController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid project id")
	}

	res, err := c.scopeService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "scope not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get scope", res))
}
