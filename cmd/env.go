package cmd

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultAddr           = ":8080"
	defaultRateLimitRPS   = 20.0
	defaultRateLimitBurst = 40
)

// loadEnv reads the dotenv file named by EVOGAME_ENV (or .env). A missing
// file is not an error; variables already set in the environment win.
func loadEnv() {
	envFile := os.Getenv("EVOGAME_ENV")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)
}

func envAddr() string {
	if addr := os.Getenv("EVOGAME_ADDR"); addr != "" {
		return addr
	}
	return defaultAddr
}

func envLogLevel() string {
	return os.Getenv("LOG_LEVEL")
}

// envRateLimitRPS returns RATE_LIMIT_RPS; 0 disables rate limiting.
func envRateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil {
		return defaultRateLimitRPS
	}
	return rps
}

func envRateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return defaultRateLimitBurst
	}
	return burst
}
