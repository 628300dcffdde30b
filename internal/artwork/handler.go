package artwork

import (
	"strconv"
	"time"

	"github.com/brushandbeyond/gallery-backend/internal/user"
	"github.com/gofiber/fiber/v2"
)

// Handler delegates catalog operations to the artwork service.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/artworks", h.list)
	app.Get("/api/v1/artworks/:id<[0-9]+>", h.get)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/admin/artworks", user.RequireAdmin(h.create))
	app.Put("/api/v1/admin/artworks/:id<[0-9]+>", user.RequireAdmin(h.update))
	app.Delete("/api/v1/admin/artworks/:id<[0-9]+>", user.RequireAdmin(h.remove))
}

func (h *Handler) list(c *fiber.Ctx) error {
	filter := ListFilter{
		Medium:   c.Query("medium"),
		Category: c.Query("category"),
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true" || v == "1"
		filter.Featured = &featured
	}

	artworks, err := h.service.List(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(artworks)
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	a, err := h.service.GetByID(id)
	if err != nil {
		if err == ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "artwork not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(a)
}

type artworkRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Price          float64    `json:"price"`
	Medium         string     `json:"medium"`
	Category       string     `json:"category"`
	Style          string     `json:"style"`
	Dimensions     Dimensions `json:"dimensions"`
	Images         []string   `json:"images"`
	MainImageIndex int        `json:"mainImageIndex"`
	StockCount     int        `json:"stockCount"`
	Featured       bool       `json:"featured"`
	Tags           []string   `json:"tags"`
	DateCreated    string     `json:"dateCreated"`
}

func (h *Handler) create(c *fiber.Ctx) error {
	payload := new(artworkRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Title == "" || payload.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "title and a non-negative price are required"})
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created, err := h.service.Create(Artwork{
		Title:          payload.Title,
		Description:    payload.Description,
		Price:          payload.Price,
		Medium:         payload.Medium,
		Category:       payload.Category,
		Style:          payload.Style,
		Dimensions:     payload.Dimensions,
		Images:         payload.Images,
		MainImageIndex: payload.MainImageIndex,
		StockCount:     payload.StockCount,
		Featured:       payload.Featured,
		Tags:           payload.Tags,
		DateCreated:    payload.DateCreated,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		if err == ErrInvalidMedium {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "medium must be fabric, oil or handcraft"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	payload := new(artworkRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(id, Artwork{
		Title:          payload.Title,
		Description:    payload.Description,
		Price:          payload.Price,
		Medium:         payload.Medium,
		Category:       payload.Category,
		Style:          payload.Style,
		Dimensions:     payload.Dimensions,
		Images:         payload.Images,
		MainImageIndex: payload.MainImageIndex,
		StockCount:     payload.StockCount,
		Featured:       payload.Featured,
		Tags:           payload.Tags,
		DateCreated:    payload.DateCreated,
		UpdatedAt:      time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "artwork not found"})
		case ErrInvalidMedium:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "medium must be fabric, oil or handcraft"})
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
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "artwork not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
