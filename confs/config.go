package confs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadConfig loads environment variables from a .env file if present
// and validates essential settings when needed.
func LoadConfig() error {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		// Only log when the file truly doesn't exist; not an error for runtime
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}
	return nil
}

// ServerAddr returns the listen address, defaulting to 0.0.0.0:3540.
func ServerAddr() string {
	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		return addr
	}
	return "0.0.0.0:3540"
}

// TokenTTL returns the bearer-token lifetime from TOKEN_TTL_HOURS, or
// zero when unset so the usecase default applies.
func TokenTTL() time.Duration {
	raw := os.Getenv("TOKEN_TTL_HOURS")
	if raw == "" {
		return 0
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		log.Printf("warning: invalid TOKEN_TTL_HOURS %q, using default", raw)
		return 0
	}
	return time.Duration(hours) * time.Hour
}
