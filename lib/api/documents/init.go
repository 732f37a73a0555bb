package documents

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	apiError "github.com/typecast/typecast-go/lib/api/errors"
	"github.com/typecast/typecast-go/lib/document"
)

type setContentRequest struct {
	Path    string `json:"path" validate:"required"`
	Content string `json:"content"`
}

// Init registers the live document routes. Documents are created on first
// touch; PUT replaces the full content, which is how a presenter seeds the
// buffer before capturing snapshots.
func Init(c *fiber.App, registry *document.Registry, validatorEvaluator *validator.Validate) {
	c.Get("/api/documents", func(c *fiber.Ctx) error {
		path := c.Query("path")
		if path == "" {
			return c.JSON(fiber.Map{"paths": registry.Paths()})
		}
		buf := registry.Get(path)
		if buf == nil {
			return c.Status(fiber.StatusNotFound).JSON(apiError.Error{
				Message: "Document not found",
			})
		}
		return c.JSON(fiber.Map{
			"path":    path,
			"content": buf.Read(),
		})
	})

	c.Put("/api/documents", func(c *fiber.Ctx) error {
		var req setContentRequest
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

		buf := registry.GetOrCreate(req.Path)
		if err := buf.Splice(0, buf.Len(), req.Content); err != nil {
			return c.Status(fiber.StatusConflict).JSON(apiError.Error{
				Message: "Document rejected the edit",
			})
		}
		return c.JSON(fiber.Map{
			"path":    req.Path,
			"content": buf.Read(),
		})
	})
}
