package media

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/brushandbeyond/gallery-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/media", h.list)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/admin/media", user.RequireAdmin(h.upload))
	app.Delete("/api/v1/admin/media/:id<[0-9]+>", user.RequireAdmin(h.remove))
}

func (h *Handler) list(c *fiber.Ctx) error {
	items, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to get media"})
	}
	return c.JSON(items)
}

func (h *Handler) upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "file is required"})
	}
	if file.Size > MaxUploadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"message": "File exceeds the 5MB limit"})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Unable to read upload"})
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, MaxUploadBytes+1))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Unable to read upload"})
	}

	item, err := h.service.Store(c.FormValue("title"), file.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, ErrTooLarge):
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"message": "File exceeds the 5MB limit"})
		case errors.Is(err, ErrNotAnImage):
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{"message": "Only image uploads are allowed"})
		case errors.Is(err, ErrEmptyUpload):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Uploaded file is empty"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to store media"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *Handler) remove(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid media ID"})
	}
	if err := h.service.Remove(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Media item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete media"})
	}
	return c.JSON(fiber.Map{"message": "Media item deleted"})
}
