package config

import (
	"os"
	"strconv"
	"time"
)

// LedgerConfig carries the fixed amounts the ledger operates with. The
// defaults are the agency's production values: a flat 10 DZD recharge
// fee and a one-time 10,000 DZD bonus for trader accounts whose first
// qualifying deposit reaches 50,000 DZD.
type LedgerConfig struct {
	ServiceFee     int64
	BonusAmount    int64
	BonusThreshold int64
}

// ReviewConfig controls the receipt review pipeline.
type ReviewConfig struct {
	AdminEmail     string
	ReviewWindow   time.Duration
	MaxReceiptSize int64
}

func LoadLedgerConfig() *LedgerConfig {
	return &LedgerConfig{
		ServiceFee:     getEnvAsInt64("LEDGER_SERVICE_FEE", 10),
		BonusAmount:    getEnvAsInt64("LEDGER_BONUS_AMOUNT", 10000),
		BonusThreshold: getEnvAsInt64("LEDGER_BONUS_THRESHOLD", 50000),
	}
}

func LoadReviewConfig() *ReviewConfig {
	return &ReviewConfig{
		AdminEmail:     getEnv("ADMIN_EMAIL", "admin@agence-elamir.dz"),
		ReviewWindow:   getEnvAsDuration("RECEIPT_REVIEW_WINDOW", 24*time.Hour),
		MaxReceiptSize: getEnvAsInt64("RECEIPT_MAX_SIZE", 5*1024*1024),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.ParseInt(val, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}
