package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr     string
	GinMode     string
	JWTSecret   string
	DBDSN       string
	CORSOrigins []string
}

func LoadEnv() Env {
	// Local dev keeps settings in .env; absence is fine.
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "troque-este-segredo-em-producao"
	}

	var origins []string
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	}

	return Env{
		AppAddr:     appAddr,
		GinMode:     strings.TrimSpace(os.Getenv("GIN_MODE")),
		JWTSecret:   secret,
		DBDSN:       strings.TrimSpace(os.Getenv("DB_DSN")),
		CORSOrigins: origins,
	}
}

// JWTSecret returns the signing key for handlers and middleware that do
// not carry the Env around.
func JWTSecret() []byte {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "troque-este-segredo-em-producao"
	}
	return []byte(secret)
}
