package payment

import (
	"github.com/brushandbeyond/gallery-backend/internal/user"
	"github.com/gofiber/fiber/v2"
)

// Handler exposes the admin payment ledger.
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/admin/payments", user.RequireAdmin(h.list))
}

func (h *Handler) list(c *fiber.Ctx) error {
	payments, err := h.repo.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(payments)
}
