package configs

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	NotifyChannel      string
	DefaultLoanDays    int
	DefaultPenaltyRate float64
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := Config{
		Port:               os.Getenv("PORT"),
		NotifyChannel:      os.Getenv("NOTIFY_CHANNEL"),
		DefaultLoanDays:    14,
		DefaultPenaltyRate: 0.50,
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if val := os.Getenv("DEFAULT_LOAN_DAYS"); val != "" {
		if _, err := fmt.Sscanf(val, "%d", &cfg.DefaultLoanDays); err != nil {
			log.Fatalf("Invalid DEFAULT_LOAN_DAYS: %v", err)
		}
	}
	if val := os.Getenv("DEFAULT_PENALTY_RATE"); val != "" {
		if _, err := fmt.Sscanf(val, "%f", &cfg.DefaultPenaltyRate); err != nil {
			log.Fatalf("Invalid DEFAULT_PENALTY_RATE: %v", err)
		}
	}

	return cfg
}
