package board

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"listkit/core/diff"
	"listkit/core/logger"
	"listkit/core/reorder"
	"listkit/core/snapshot"
)

// Handler handles HTTP requests for boards.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the board routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/boards")
	group.Post("/", h.HandleCreate)
	group.Get("/", h.HandleList)
	// Fixed paths must precede the :id routes; fiber matches in
	// registration order.
	group.Get("/saved", h.HandleSaved)
	group.Get("/exports", h.HandleExports)
	group.Get("/:id", h.HandleLayout)
	group.Delete("/:id", h.HandleDeleteBoard)
	group.Put("/:id/layout", h.HandleApplyTarget)
	group.Post("/:id/sections/:section/items", h.HandleAppend)
	group.Delete("/:id/items", h.HandleDelete)
	group.Post("/:id/items/:item/move", h.HandleMove)
	group.Post("/:id/sections/:section/shuffle", h.HandleShuffle)
	group.Post("/:id/items/reconfigure", h.HandleReconfigure)
	group.Post("/:id/items/reload", h.HandleReload)
	group.Post("/:id/reorder", h.HandleReorder)
	group.Post("/:id/save", h.HandleSave)
	group.Post("/:id/load", h.HandleLoad)
	group.Post("/:id/export", h.HandleExport)
	group.Post("/:id/import", h.HandleImport)
}

// HandleCreate creates a new named board.
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var req CreateBoardRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	info := h.service.CreateBoard(req.Name)
	return c.Status(fiber.StatusCreated).JSON(info)
}

// HandleList returns summaries of all boards.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	return c.JSON(h.service.ListBoards())
}

// HandleSaved lists the boards persisted in the database.
func (h *Handler) HandleSaved(c *fiber.Ctx) error {
	saved, err := h.service.SavedBoards(c.Context())
	if err != nil {
		return h.fail(c, err, "Saved board listing failed")
	}
	return c.JSON(saved)
}

// HandleExports lists the board exports present in object storage.
func (h *Handler) HandleExports(c *fiber.Ctx) error {
	ids, err := h.service.Exports(c.Context())
	if err != nil {
		return h.fail(c, err, "Export listing failed")
	}
	return c.JSON(ids)
}

// HandleDeleteBoard removes a board along with its saved rows and export.
func (h *Handler) HandleDeleteBoard(c *fiber.Ctx) error {
	if err := h.service.DeleteBoard(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, err, "Board delete failed")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleLayout returns the board's current layout.
func (h *Handler) HandleLayout(c *fiber.Ctx) error {
	layout, err := h.service.Layout(c.Params("id"))
	if err != nil {
		return h.fail(c, err, "Layout lookup failed")
	}
	return c.JSON(layout)
}

// HandleApplyTarget diffs the board against a submitted target layout and
// returns the operation plan.
func (h *Handler) HandleApplyTarget(c *fiber.Ctx) error {
	var req ApplyTargetRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	plan, err := h.service.ApplyTarget(c.Params("id"), req.TargetLayout, req.Animated)
	if err != nil {
		return h.fail(c, err, "Target apply failed")
	}
	return c.JSON(plan)
}

// HandleAppend appends rows to a section.
func (h *Handler) HandleAppend(c *fiber.Ctx) error {
	var req ItemsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	plan, err := h.service.Append(c.Params("id"), c.Params("section"), req.Animated, req.Items...)
	if err != nil {
		return h.fail(c, err, "Append failed")
	}
	return c.JSON(plan)
}

// HandleDelete removes rows from the board.
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	var req ItemsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	plan, err := h.service.Delete(c.Params("id"), req.Animated, req.Items...)
	if err != nil {
		return h.fail(c, err, "Delete failed")
	}
	return c.JSON(plan)
}

// HandleMove relocates a row to the end of another section.
func (h *Handler) HandleMove(c *fiber.Ctx) error {
	var req MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	plan, err := h.service.Move(c.Params("id"), c.Params("item"), req.Section, req.Animated)
	if err != nil {
		return h.fail(c, err, "Move failed")
	}
	return c.JSON(plan)
}

// HandleShuffle randomizes a section's row order.
func (h *Handler) HandleShuffle(c *fiber.Ctx) error {
	plan, err := h.service.Shuffle(c.Params("id"), c.Params("section"), c.QueryBool("animated"))
	if err != nil {
		return h.fail(c, err, "Shuffle failed")
	}
	return c.JSON(plan)
}

// HandleReconfigure refreshes rows in place.
func (h *Handler) HandleReconfigure(c *fiber.Ctx) error {
	var req ItemsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	plan, err := h.service.Reconfigure(c.Params("id"), req.Animated, req.Items...)
	if err != nil {
		return h.fail(c, err, "Reconfigure failed")
	}
	return c.JSON(plan)
}

// HandleReload recreates rows in place.
func (h *Handler) HandleReload(c *fiber.Ctx) error {
	var req ItemsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	plan, err := h.service.Reload(c.Params("id"), req.Animated, req.Items...)
	if err != nil {
		return h.fail(c, err, "Reload failed")
	}
	return c.JSON(plan)
}

// HandleReorder proposes an interactive move between two positions.
func (h *Handler) HandleReorder(c *fiber.Ctx) error {
	var req ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	moved, err := h.service.ProposeMove(c.Params("id"),
		diff.Position{Section: snapshot.SectionID(req.From.Section), Index: req.From.Index},
		diff.Position{Section: snapshot.SectionID(req.To.Section), Index: req.To.Index},
	)
	if err != nil {
		return h.fail(c, err, "Reorder failed")
	}
	return c.JSON(ReorderResponse{Moved: moved})
}

// HandleSave persists the board layout to the database.
func (h *Handler) HandleSave(c *fiber.Ctx) error {
	if err := h.service.SaveBoard(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, err, "Save failed")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleLoad restores the board layout from the database.
func (h *Handler) HandleLoad(c *fiber.Ctx) error {
	plan, err := h.service.LoadBoard(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "Load failed")
	}
	return c.JSON(plan)
}

// HandleExport uploads the board layout to object storage.
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	if err := h.service.ExportBoard(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, err, "Export failed")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleImport restores the board layout from object storage.
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	plan, err := h.service.ImportBoard(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "Import failed")
	}
	return c.JSON(plan)
}

// fail logs the error with the request's RayID and maps it to a status code.
func (h *Handler) fail(c *fiber.Ctx, err error, msg string) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Error(msg, zap.Error(err), zap.String("board", c.Params("id")))
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnknownBoard),
		errors.Is(err, snapshot.ErrUnknownSection),
		errors.Is(err, snapshot.ErrUnknownItem),
		errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, snapshot.ErrDuplicateSection),
		errors.Is(err, snapshot.ErrDuplicateItem):
		return fiber.StatusConflict
	case errors.Is(err, diff.ErrIdentityConflict),
		errors.Is(err, reorder.ErrPositionOutOfRange):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrStoreDisabled),
		errors.Is(err, ErrArchiveDisabled):
		return fiber.StatusNotImplemented
	default:
		return fiber.StatusInternalServerError
	}
}
