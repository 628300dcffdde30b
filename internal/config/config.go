package config

import (
	"os"
	"strconv"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string

	// Pricing knobs. GSTRate defaults to 0; whether tax collection is a
	// suspended promotion or an unfinished feature is an upstream question,
	// so it stays configurable rather than hard-wired.
	GSTRate               float64
	FreeShippingThreshold float64
	ShippingFee           float64

	// Notification delivery.
	ResendAPIKey     string
	MailFrom         string
	AdminEmail       string
	WhatsAppEndpoint string

	// UPI payment link.
	UPIPayee     string
	UPIPayeeName string

	// Media storage.
	UploadDir     string
	PublicBaseURL string
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Addr:                  getenv("GALLERY_ADDR", ":8080"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		GSTRate:               getenvFloat("GST_RATE", 0),
		FreeShippingThreshold: getenvFloat("FREE_SHIPPING_THRESHOLD", 2000),
		ShippingFee:           getenvFloat("SHIPPING_FEE", 150),
		ResendAPIKey:          os.Getenv("RESEND_API_KEY"),
		MailFrom:              getenv("MAIL_FROM", "orders@brushandbeyond.in"),
		AdminEmail:            os.Getenv("ADMIN_EMAIL"),
		WhatsAppEndpoint:      os.Getenv("WHATSAPP_ENDPOINT"),
		UPIPayee:              os.Getenv("UPI_PAYEE"),
		UPIPayeeName:          getenv("UPI_PAYEE_NAME", "Brush and Beyond"),
		UploadDir:             getenv("UPLOAD_DIR", "./uploads"),
		PublicBaseURL:         getenv("PUBLIC_BASE_URL", "http://localhost:8080"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
