package globals

import (
	"context"
	"os"
)

var JwtSecret = []byte(Getenv("ACCESS_TOKEN_SECRET", "your_secret_key"))

// Context keys
type ContextKey string

const RoleKey ContextKey = "role"
const UserIDKey ContextKey = "userId"

var Ctx = context.Background()

func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
