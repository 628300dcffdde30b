package coupon

import (
	"strconv"
	"time"

	"github.com/brushandbeyond/gallery-backend/internal/user"
	"github.com/gofiber/fiber/v2"
)

// Handler delegates coupon operations to the coupon service.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

// RegisterPublicRoutes registers the validate endpoint outside the JWT
// middleware: it must answer login_required to anonymous callers instead of
// a bare 401, since the storefront shows the reason inline.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/coupons/validate", h.validate)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/admin/coupons", user.RequireAdmin(h.list))
	app.Post("/api/v1/admin/coupons", user.RequireAdmin(h.create))
	app.Put("/api/v1/admin/coupons/:id<[0-9]+>", user.RequireAdmin(h.update))
	app.Delete("/api/v1/admin/coupons/:id<[0-9]+>", user.RequireAdmin(h.remove))
}

type validateRequest struct {
	Code string `json:"code"`
}

func (h *Handler) validate(c *fiber.Ctx) error {
	payload := new(validateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	// no token is not an error here; it maps to login_required
	userID, _ := user.GetUserIDFromCtx(c)

	result := h.service.Validate(payload.Code, time.Now().UTC(), userID)
	return c.JSON(result)
}

type couponRequest struct {
	Code               string     `json:"code"`
	DiscountPercentage float64    `json:"discountPercentage"`
	Active             bool       `json:"active"`
	ValidFrom          time.Time  `json:"validFrom"`
	ValidUntil         *time.Time `json:"validUntil,omitempty"`
	UsageLimit         *int       `json:"usageLimit,omitempty"`
}

func (h *Handler) list(c *fiber.Ctx) error {
	coupons, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(coupons)
}

func (h *Handler) create(c *fiber.Ctx) error {
	payload := new(couponRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "code is required"})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created, err := h.service.Create(Coupon{
		Code:               payload.Code,
		DiscountPercentage: payload.DiscountPercentage,
		Active:             payload.Active,
		ValidFrom:          payload.ValidFrom,
		ValidUntil:         payload.ValidUntil,
		UsageLimit:         payload.UsageLimit,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	if err != nil {
		switch err {
		case ErrCodeExists:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "coupon code already exists"})
		case ErrInvalidDiscount:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	payload := new(couponRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(id, Coupon{
		Code:               payload.Code,
		DiscountPercentage: payload.DiscountPercentage,
		Active:             payload.Active,
		ValidFrom:          payload.ValidFrom,
		ValidUntil:         payload.ValidUntil,
		UsageLimit:         payload.UsageLimit,
		UpdatedAt:          time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "coupon not found"})
		case ErrInvalidDiscount:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(updated)
}

func (h *Handler) remove(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	if err := h.service.Delete(id); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "coupon not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
