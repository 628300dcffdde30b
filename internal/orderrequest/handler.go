package orderrequest

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/brushandbeyond/gallery-backend/internal/artwork"
	"github.com/brushandbeyond/gallery-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes registers the storefront lead-capture endpoint.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/order-requests", h.create)
}

// RegisterProtectedRoutes registers the admin review endpoints.
func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/admin/order-requests", user.RequireAdmin(h.list))
	app.Post("/api/v1/admin/order-requests/:id<[0-9]+>/accept", user.RequireAdmin(h.accept))
	app.Delete("/api/v1/admin/order-requests/:id<[0-9]+>", user.RequireAdmin(h.reject))
}

func (h *Handler) create(c *fiber.Ctx) error {
	var payload struct {
		ArtworkID int    `json:"artworkId"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		Message   string `json:"message"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if payload.ArtworkID <= 0 || payload.Name == "" || payload.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "artworkId, name and email are required"})
	}

	created, err := h.service.Create(Request{
		ArtworkID: payload.ArtworkID,
		Name:      payload.Name,
		Email:     payload.Email,
		Phone:     payload.Phone,
		Message:   payload.Message,
	})
	if err != nil {
		if errors.Is(err, artwork.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Artwork not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create order request"})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) list(c *fiber.Ctx) error {
	requests, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to get order requests"})
	}
	return c.JSON(requests)
}

func (h *Handler) accept(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request ID"})
	}

	ord, err := h.service.Accept(id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order request not found"})
		case errors.Is(err, ErrProfileNotFound):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "No user profile matches the request email"})
		case errors.Is(err, artwork.ErrNotFound):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "Artwork no longer exists"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to accept order request"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(ord)
}

func (h *Handler) reject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request ID"})
	}
	if err := h.service.Reject(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order request not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete order request"})
	}
	return c.JSON(fiber.Map{"message": "Order request deleted"})
}
