// Command admintoken prints a bearer token for the /api/admin routes.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/Dosada05/mcr-results/middleware"
)

type tokenConfig struct {
	JWTSecretKey string `env:"JWT_SECRET_KEY,required,notEmpty"`
}

func main() {
	subject := flag.String("sub", "scoreboard", "token subject")
	ttl := flag.Duration("ttl", 72*time.Hour, "token lifetime")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	_ = godotenv.Load()
	var cfg tokenConfig
	if err := env.Parse(&cfg); err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	token, err := middleware.IssueToken([]byte(cfg.JWTSecretKey), *subject, middleware.RoleAdmin, *ttl)
	if err != nil {
		logger.Error("failed to sign token", slog.Any("error", err))
		os.Exit(1)
	}
	fmt.Println(token)
}
