package controller

import (
	"errors"

	"keepnotes-be/internal/dto"
	"keepnotes-be/internal/pkg/serverutils"
	"keepnotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Restore(ctx *fiber.Ctx) error
	Purge(ctx *fiber.Ctx) error
	TogglePin(ctx *fiber.Ctx) error
	SetLabels(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
	Import(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Post("import", c.Import)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id/pin", c.TogglePin)
	h.Put(":id/labels", c.SetLabels)
	h.Get(":id/export", c.Export)
	h.Post(":id/restore", c.Restore)
	h.Delete(":id/purge", c.Purge)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.Context(), vaultSessionId(ctx), &req)
	if err != nil {
		// An all-empty note is silently dropped, like the editor does it.
		if errors.Is(err, service.ErrEmptyNote) {
			return ctx.JSON(serverutils.SuccessResponse[any]("Empty note discarded", nil))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create note", res))
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	query := dto.ListNotesQuery{
		Trash:   ctx.QueryBool("trash", false),
		Label:   ctx.Query("label"),
		Search:  ctx.Query("q"),
		SortKey: ctx.Query("sort_key"),
		Limit:   ctx.QueryInt("limit", 0),
		Offset:  ctx.QueryInt("offset", 0),
	}
	if raw := ctx.Query("ascending"); raw != "" {
		asc := ctx.QueryBool("ascending")
		query.Ascending = &asc
	}
	if raw := ctx.Query("pinned"); raw != "" {
		pinned := ctx.QueryBool("pinned")
		query.Pinned = &pinned
	}

	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.noteService.List(ctx.Context(), vaultSessionId(ctx), &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list notes", res))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.Show(ctx.Context(), vaultSessionId(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show note", res))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Update(ctx.Context(), vaultSessionId(ctx), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyNote) {
			return ctx.JSON(serverutils.SuccessResponse[any]("Empty note discarded", nil))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update note", res))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.noteService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Note moved to trash", nil))
}

func (c *noteController) Restore(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.noteService.Restore(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Note restored", nil))
}

func (c *noteController) Purge(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.noteService.Purge(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Note deleted forever", nil))
}

func (c *noteController) TogglePin(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.TogglePinRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := c.noteService.TogglePin(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success toggle pin", nil))
}

func (c *noteController) SetLabels(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.SetLabelsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := c.noteService.SetLabels(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success set labels", nil))
}

func (c *noteController) Export(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	format := ctx.Query("format", service.ExportFormatMarkdown)
	if format != service.ExportFormatMarkdown && format != service.ExportFormatText {
		return fiber.NewError(fiber.StatusBadRequest, "format must be markdown or text")
	}

	res, err := c.noteService.Export(ctx.Context(), vaultSessionId(ctx), id, format)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success export note", res))
}

func (c *noteController) Import(ctx *fiber.Ctx) error {
	var req dto.ImportNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Import(ctx.Context(), vaultSessionId(ctx), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyNote) {
			return ctx.JSON(serverutils.SuccessResponse[any]("Empty note discarded", nil))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success import note", res))
}

func parseIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid note ID")
	}
	return id, nil
}

// vaultSessionId reads the session id the vault middleware stored, empty
// when the request carried no token.
func vaultSessionId(ctx *fiber.Ctx) string {
	if v, ok := ctx.Locals(serverutils.LocalsVaultSession).(string); ok {
		return v
	}
	return ""
}
