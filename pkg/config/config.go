package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	Environment     string
	FirebaseProject string
	StorageBucket   string

	SessionSigningKey string
	SessionTTL        time.Duration

	ChainRPCURL      string
	LuminaFiContract string
	TokenContract    string
	ChainFromAddress string
	ChainGasLimit    uint64

	GateMountDelay    time.Duration
	GateRedirectDelay time.Duration

	UploadMaxBytes int64
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		FirebaseProject: getEnv("FIREBASE_PROJECT_ID", ""),
		StorageBucket:   getEnv("STORAGE_BUCKET", ""),

		SessionSigningKey: getEnv("SESSION_SIGNING_KEY", "dev-insecure-key-change-me"),
		SessionTTL:        getEnvAsDuration("SESSION_TTL", 24*time.Hour),

		ChainRPCURL:      getEnv("CHAIN_RPC_URL", ""),
		LuminaFiContract: getEnv("LUMINAFI_CONTRACT_ADDRESS", ""),
		TokenContract:    getEnv("LUMINA_TOKEN_ADDRESS", ""),
		ChainFromAddress: getEnv("CHAIN_FROM_ADDRESS", ""),
		ChainGasLimit:    getEnvAsUint64("CHAIN_GAS_LIMIT", 300000),

		GateMountDelay:    getEnvAsDuration("GATE_MOUNT_DELAY", 50*time.Millisecond),
		GateRedirectDelay: getEnvAsDuration("GATE_REDIRECT_DELAY", 500*time.Millisecond),

		UploadMaxBytes: getEnvAsInt64("UPLOAD_MAX_BYTES", 10<<20),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	if value, exists := os.LookupEnv(key); exists {
		uintValue, err := strconv.ParseUint(value, 10, 64)
		if err == nil {
			return uintValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}
