package globals

import (
	"context"
	"os"
)

var (
	JwtSecret = []byte("change-me-in-env")
)

func init() {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		JwtSecret = []byte(s)
	}
}

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const UserNameKey ContextKey = "userName"
const RoleKey ContextKey = "role"

var Ctx = context.Background()
