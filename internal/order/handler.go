package order

import (
	"strconv"

	"github.com/brushandbeyond/gallery-backend/internal/coupon"
	"github.com/brushandbeyond/gallery-backend/internal/user"
	"github.com/gofiber/fiber/v2"
)

// Handler delegates order operations to the order service. It needs the
// user service to stamp customer details onto new orders.
type Handler struct {
	service     *Service
	userService user.ServiceInterface
}

func NewHandler(s *Service, us user.ServiceInterface) *Handler {
	return &Handler{service: s, userService: us}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/checkout", h.checkout)
	app.Get("/api/v1/orders", h.listOwn)
	app.Get("/api/v1/admin/orders", user.RequireAdmin(h.listAll))
	app.Get("/api/v1/admin/orders/:id<[0-9]+>", user.RequireAdmin(h.get))
	app.Put("/api/v1/admin/orders/:id<[0-9]+>/status", user.RequireAdmin(h.updateStatus))
	app.Delete("/api/v1/admin/orders/:id<[0-9]+>", user.RequireAdmin(h.remove))
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(CheckoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ShippingAddress.Name == "" || payload.ShippingAddress.Line1 == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "shipping address is required"})
	}
	if payload.PaymentReferenceID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "payment reference is required"})
	}
	if payload.PaymentMethod == "" {
		payload.PaymentMethod = "upi"
	}

	usr, err := h.userService.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}

	ord, pay, err := h.service.Checkout(userID, usr.FirstName+" "+usr.LastName, usr.Email, usr.Phone, *payload)
	if err != nil {
		if rejected, ok := err.(*CouponRejectedError); ok {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": "coupon rejected", "reason": rejected.Reason})
		}
		switch err {
		case ErrEmptyCart:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart is empty"})
		case ErrInsufficientStock:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "insufficient stock"})
		case coupon.ErrExhausted:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "coupon usage limit reached"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order": ord, "payment": pay})
}

func (h *Handler) listOwn(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) listAll(c *fiber.Ctx) error {
	orders, err := h.service.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	ord, err := h.service.GetByID(id)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(ord)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	payload := new(statusUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ord, err := h.service.UpdateStatus(id, payload.Status)
	if err != nil {
		switch err {
		case ErrInvalidStatus:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order status"})
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(ord)
}

func (h *Handler) remove(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	if err := h.service.Delete(id); err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
