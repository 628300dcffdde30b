package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/brushandbeyond/gallery-backend/internal/artwork"
	"github.com/brushandbeyond/gallery-backend/internal/cart"
	"github.com/brushandbeyond/gallery-backend/internal/config"
	"github.com/brushandbeyond/gallery-backend/internal/coupon"
	"github.com/brushandbeyond/gallery-backend/internal/media"
	"github.com/brushandbeyond/gallery-backend/internal/notification"
	"github.com/brushandbeyond/gallery-backend/internal/order"
	"github.com/brushandbeyond/gallery-backend/internal/orderrequest"
	"github.com/brushandbeyond/gallery-backend/internal/payment"
	"github.com/brushandbeyond/gallery-backend/internal/pricing"
	"github.com/brushandbeyond/gallery-backend/internal/upi"
	"github.com/brushandbeyond/gallery-backend/internal/user"
	"github.com/brushandbeyond/gallery-backend/internal/wishlist"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New(fiber.Config{BodyLimit: media.MaxUploadBytes + 1<<20})
	setupCORS(app)
	app.Use(requestLogger)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	bootstrapSchema(db)

	// repositories and services
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	artworkRepo := artwork.NewPostgresRepository(db)
	artworkService := artwork.NewService(artworkRepo)
	artworkHandler := artwork.NewHandler(artworkService)

	cartRepo := cart.NewPostgresRepository(db)
	cartService := cart.NewService(cartRepo, artworkService)
	cartHandler := cart.NewHandler(cartService)

	wishlistRepo := wishlist.NewPostgresRepository(db)
	wishlistService := wishlist.NewService(wishlistRepo, artworkService)
	wishlistHandler := wishlist.NewHandler(wishlistService)

	couponRepo := coupon.NewPostgresRepository(db)
	couponService := coupon.NewService(couponRepo)
	couponHandler := coupon.NewHandler(couponService)

	outboxRepo := notification.NewPostgresRepository(db)

	pricingCfg := pricing.Config{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		ShippingFee:           cfg.ShippingFee,
		GSTRate:               cfg.GSTRate,
	}
	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, cartService, couponService, pricingCfg, outboxRepo, cfg.AdminEmail)
	orderHandler := order.NewHandler(orderService, userService)

	paymentHandler := payment.NewHandler(payment.NewPostgresRepository(db))

	requestRepo := orderrequest.NewPostgresRepository(db)
	requestService := orderrequest.NewService(requestRepo, userService, artworkService, orderService)
	requestHandler := orderrequest.NewHandler(requestService)

	mediaRepo := media.NewPostgresRepository(db)
	mediaService := media.NewService(mediaRepo, cfg.UploadDir, cfg.PublicBaseURL)
	mediaHandler := media.NewHandler(mediaService)

	upiHandler := upi.NewHandler(cfg.UPIPayee, cfg.UPIPayeeName)

	// public surface: browsing, sign-up/sign-in, lead capture, coupon
	// validation (which recognizes a bearer token when one is present)
	app.Use(user.OptionalJWT([]byte(cfg.JWTSecret)))
	userHandler.RegisterPublicRoutes(app)
	artworkHandler.RegisterPublicRoutes(app)
	couponHandler.RegisterPublicRoutes(app)
	requestHandler.RegisterPublicRoutes(app)
	mediaHandler.RegisterPublicRoutes(app)
	upiHandler.RegisterPublicRoutes(app)
	app.Static("/uploads", cfg.UploadDir)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		Filter:     isPublicPath,
	}))

	userHandler.RegisterProtectedRoutes(app)
	artworkHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	wishlistHandler.RegisterProtectedRoutes(app)
	couponHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	paymentHandler.RegisterProtectedRoutes(app)
	requestHandler.RegisterProtectedRoutes(app)
	mediaHandler.RegisterProtectedRoutes(app)

	startOutboxWorker(cfg, outboxRepo)

	if err := app.Listen(cfg.Addr); err != nil {
		panic(err)
	}
}

// isPublicPath lets unauthenticated requests through the JWT gate for the
// storefront's browse and sign-in surface.
func isPublicPath(c *fiber.Ctx) bool {
	p := c.Path()
	if strings.HasPrefix(p, "/uploads/") {
		return true
	}
	switch {
	case p == "/api/v1/sign-up" || p == "/api/v1/sign-in":
		return true
	case p == "/api/v1/coupons/validate" || p == "/api/v1/order-requests":
		return true
	case p == "/api/v1/upi-link" || p == "/api/v1/media":
		return c.Method() == fiber.MethodGet
	case strings.HasPrefix(p, "/api/v1/artworks"):
		return c.Method() == fiber.MethodGet
	}
	return false
}

func startOutboxWorker(cfg config.Config, repo notification.Repository) {
	var mailer notification.Mailer
	if m, err := notification.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom); err == nil {
		mailer = m
	} else {
		fmt.Printf("outbox: email delivery disabled: %v\n", err)
	}

	var whatsapp notification.WhatsAppSender
	if s, err := notification.NewHTTPWhatsAppSender(cfg.WhatsAppEndpoint); err == nil {
		whatsapp = s
	} else {
		fmt.Printf("outbox: whatsapp delivery disabled: %v\n", err)
	}

	if mailer == nil && whatsapp == nil {
		fmt.Println("outbox: no delivery channels configured, worker not started")
		return
	}

	worker := notification.NewWorker(repo, mailer, whatsapp, 15*time.Second)
	go worker.Run(context.Background())
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	fmt.Printf("URL = %s, Method = %s, Status = %d, Took = %v\n", c.OriginalURL(), c.Method(), c.Response().StatusCode(), time.Since(start))
	return err
}

func mustOpenDB(databaseURL string) *sql.DB {
	if databaseURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

// bootstrapSchema creates missing tables on startup. Statements are
// idempotent so restarts against an existing database are safe.
func bootstrapSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS user_profiles (
			user_id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			first_name TEXT,
			last_name TEXT,
			phone TEXT,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS artworks (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			price NUMERIC NOT NULL DEFAULT 0,
			medium TEXT,
			category TEXT,
			style TEXT,
			dimensions JSONB NOT NULL DEFAULT '{}',
			images JSONB NOT NULL DEFAULT '[]',
			main_image_index INT NOT NULL DEFAULT 0,
			stock_count INT NOT NULL DEFAULT 0,
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			tags JSONB NOT NULL DEFAULT '[]',
			date_created TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS cart (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL,
			artwork_id INT NOT NULL,
			quantity INT NOT NULL DEFAULT 0,
			UNIQUE (user_id, artwork_id)
		)`,
		`CREATE TABLE IF NOT EXISTS wishlist (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL,
			artwork_id INT NOT NULL,
			UNIQUE (user_id, artwork_id)
		)`,
		`CREATE TABLE IF NOT EXISTS coupons (
			id SERIAL PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			discount_percentage NUMERIC NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			valid_from TIMESTAMPTZ NOT NULL DEFAULT now(),
			valid_until TIMESTAMPTZ,
			usage_limit INT,
			used_count INT NOT NULL DEFAULT 0,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			reference TEXT NOT NULL UNIQUE,
			user_id INT,
			items JSONB NOT NULL DEFAULT '[]',
			subtotal NUMERIC NOT NULL DEFAULT 0,
			discount_amount NUMERIC NOT NULL DEFAULT 0,
			coupon_code TEXT,
			shipping_cost NUMERIC NOT NULL DEFAULT 0,
			gst_amount NUMERIC NOT NULL DEFAULT 0,
			total NUMERIC NOT NULL DEFAULT 0,
			shipping_address JSONB NOT NULL DEFAULT '{}',
			payment_method TEXT,
			payment_status TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			customer_name TEXT,
			customer_email TEXT,
			payment_reference_id TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id SERIAL PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			customer_id INT,
			amount NUMERIC NOT NULL DEFAULT 0,
			reference_id TEXT,
			status TEXT,
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS order_requests (
			id SERIAL PRIMARY KEY,
			artwork_id INT NOT NULL,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT,
			message TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS notification_outbox (
			id SERIAL PRIMARY KEY,
			to_email TEXT,
			to_phone TEXT,
			subject TEXT,
			text_body TEXT,
			html_body TEXT,
			whatsapp_body TEXT,
			email_sent BOOLEAN NOT NULL DEFAULT FALSE,
			whatsapp_sent BOOLEAN NOT NULL DEFAULT FALSE,
			status TEXT NOT NULL DEFAULT 'pending',
			attempts INT NOT NULL DEFAULT 0,
			last_error TEXT,
			created_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS media_gallery (
			id SERIAL PRIMARY KEY,
			title TEXT,
			stored_name TEXT NOT NULL,
			url TEXT NOT NULL,
			mime_type TEXT,
			size_bytes BIGINT NOT NULL DEFAULT 0,
			created_at TEXT
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}
