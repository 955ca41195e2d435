package globals

import (
	"context"
	"os"

	"github.com/joho/godotenv"
)

var (
	JwtSecret []byte
	// AdminKey grants the admin role at registration time when supplied.
	AdminKey string
)

// Package variable initializers run before init, so the secrets are assigned
// here, after the .env file has been loaded.
func init() {
	_ = godotenv.Load()
	JwtSecret = []byte(getenv("JWT_SECRET", "devsecret-change-me"))
	AdminKey = getenv("ADMIN_KEY", "NOVA-ADMIN")
}

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const IsAdminKey ContextKey = "isAdmin"

var Ctx = context.Background()

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
