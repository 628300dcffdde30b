package upi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	payeeAddress string
	payeeName    string
}

func NewHandler(payeeAddress, payeeName string) *Handler {
	return &Handler{payeeAddress: payeeAddress, payeeName: payeeName}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/upi-link", h.link)
}

func (h *Handler) link(c *fiber.Ctx) error {
	raw := c.Query("amount")
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "amount must be a positive number"})
	}
	if h.payeeAddress == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "UPI payments are not configured"})
	}
	return c.JSON(fiber.Map{"link": PaymentLink(h.payeeAddress, h.payeeName, amount)})
}
