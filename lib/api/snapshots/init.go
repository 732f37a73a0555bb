package snapshots

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apiError "github.com/typecast/typecast-go/lib/api/errors"
	"github.com/typecast/typecast-go/lib/document"
	"github.com/typecast/typecast-go/lib/exception"
	"github.com/typecast/typecast-go/lib/snapshot"
)

type createSnapshotRequest struct {
	Path  string `json:"path" validate:"required"`
	Title string `json:"title"`
	// Content pins the snapshot to explicit text. When omitted the current
	// live document content is captured.
	Content *string `json:"content"`
}

func Init(c *fiber.App, store *snapshot.Store, registry *document.Registry,
	validatorEvaluator *validator.Validate, logger *zap.SugaredLogger) {

	c.Post("/api/snapshots", func(c *fiber.Ctx) error {
		var req createSnapshotRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(apiError.Error{
				Message: "Invalid request body",
			})
		}
		if err := validatorEvaluator.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(apiError.Error{
				Message: err.Error(),
			})
		}

		var content string
		if req.Content != nil {
			content = *req.Content
		} else {
			content = registry.GetOrCreate(req.Path).Read()
		}

		saved, err := store.Save(req.Path, req.Title, content)
		if err != nil {
			logger.Errorw("saving snapshot failed", "path", req.Path, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(apiError.Error{
				Message: "Could not save snapshot",
			})
		}

		logger.Infow("snapshot captured", "path", saved.Path, "snapshotId", saved.ID, "bytes", len(saved.Content))
		return c.Status(fiber.StatusCreated).JSON(saved)
	})

	c.Get("/api/snapshots", func(c *fiber.Ctx) error {
		snapshots, err := store.List(c.Query("path"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(apiError.Error{
				Message: "Could not list snapshots",
			})
		}
		return c.JSON(snapshots)
	})

	c.Get("/api/snapshots/:snapshotId", func(c *fiber.Ctx) error {
		found, err := store.Get(c.Params("snapshotId"))
		if err != nil {
			var notFound *exception.SnapshotNotFoundError
			if errors.As(err, &notFound) {
				return c.Status(fiber.StatusNotFound).JSON(apiError.Error{
					Message: "Snapshot not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(apiError.Error{
				Message: "Could not load snapshot",
			})
		}
		return c.JSON(found)
	})

	c.Delete("/api/snapshots/:snapshotId", func(c *fiber.Ctx) error {
		if err := store.Delete(c.Params("snapshotId")); err != nil {
			var notFound *exception.SnapshotNotFoundError
			if errors.As(err, &notFound) {
				return c.Status(fiber.StatusNotFound).JSON(apiError.Error{
					Message: "Snapshot not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(apiError.Error{
				Message: "Could not delete snapshot",
			})
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
