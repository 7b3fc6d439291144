package controller

import (
	"keepnotes-be/internal/dto"
	"keepnotes-be/internal/pkg/serverutils"
	"keepnotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IVaultController interface {
	RegisterRoutes(r fiber.Router)
	Status(ctx *fiber.Ctx) error
	Enable(ctx *fiber.Ctx) error
	Unlock(ctx *fiber.Ctx) error
	Lock(ctx *fiber.Ctx) error
	Disable(ctx *fiber.Ctx) error
}

type vaultController struct {
	vaultService service.IVaultService
}

func NewVaultController(vaultService service.IVaultService) IVaultController {
	return &vaultController{
		vaultService: vaultService,
	}
}

func (c *vaultController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/vault/v1")
	h.Get("status", c.Status)
	h.Post("enable", c.Enable)
	h.Post("unlock", c.Unlock)
	h.Post("lock", c.Lock)
	h.Post("disable", c.Disable)
}

func (c *vaultController) Status(ctx *fiber.Ctx) error {
	res, err := c.vaultService.Status(ctx.Context(), vaultSessionId(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get vault status", res))
}

func (c *vaultController) Enable(ctx *fiber.Ctx) error {
	var req dto.EnableVaultRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.vaultService.Enable(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Vault enabled", res))
}

func (c *vaultController) Unlock(ctx *fiber.Ctx) error {
	var req dto.UnlockVaultRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.vaultService.Unlock(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Vault unlocked", res))
}

func (c *vaultController) Lock(ctx *fiber.Ctx) error {
	if err := c.vaultService.Lock(ctx.Context(), vaultSessionId(ctx)); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Vault locked", nil))
}

func (c *vaultController) Disable(ctx *fiber.Ctx) error {
	var req dto.DisableVaultRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.vaultService.Disable(ctx.Context(), vaultSessionId(ctx), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Vault disabled", nil))
}
