package controller

import (
	"keepnotes-be/internal/dto"
	"keepnotes-be/internal/pkg/serverutils"
	"keepnotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ILabelController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type labelController struct {
	labelService service.ILabelService
}

func NewLabelController(labelService service.ILabelService) ILabelController {
	return &labelController{
		labelService: labelService,
	}
}

func (c *labelController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/label/v1")
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *labelController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateLabelRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.labelService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create label", res))
}

func (c *labelController) List(ctx *fiber.Ctx) error {
	res, err := c.labelService.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list labels", res))
}

func (c *labelController) Show(ctx *fiber.Ctx) error {
	id, err := parseLabelIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.labelService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show label", res))
}

func (c *labelController) Update(ctx *fiber.Ctx) error {
	id, err := parseLabelIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateLabelRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.labelService.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update label", res))
}

func (c *labelController) Delete(ctx *fiber.Ctx) error {
	id, err := parseLabelIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.labelService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete label", nil))
}

func parseLabelIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid label ID")
	}
	return id, nil
}
