package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/piresc/kirimin/internal/pkg/models"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

var env = newEnv()

func newEnv() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		// Load config from file
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	// Create config from environment variables
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "kirimin-trips")
	configs.App.Environment = GetEnv("APP_ENV", "")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 9990)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 0)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 0)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)

	// Database config
	configs.Database.Driver = GetEnv("DB_DRIVER", "pgx")
	configs.Database.Host = GetEnv("DB_HOST", "")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 5432)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "disable")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 0)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 0)

	// Redis config
	configs.Redis.Host = GetEnv("REDIS_HOST", "")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 6379)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 0)

	// NATS config
	configs.NATS.URL = GetEnv("NATS_URL", "")

	// NSQ config
	configs.NSQ.Address = GetEnv("NSQ_ADDRESS", "")
	configs.NSQ.Enabled = GetEnvAsBool("NSQ_ENABLED", false)

	// JWT config
	configs.JWT.Secret = GetEnv("JWT_SECRET", "")
	configs.JWT.Expiration = GetEnvAsInt("JWT_EXPIRATION", 0)
	configs.JWT.Issuer = GetEnv("JWT_ISSUER", "")

	// API keys for internal callers
	configs.APIKey.Keys = map[string]string{
		"agent-service": GetEnv("AGENT_SERVICE_API_KEY", ""),
		"admin":         GetEnv("ADMIN_API_KEY", ""),
	}

	// Pricing config
	configs.Pricing.Currency = GetEnv("PRICING_CURRENCY", "INR")
	configs.Pricing.BaseFare = GetEnvAsFloat("PRICING_BASE_FARE", 3000)
	configs.Pricing.PerKmRate = GetEnvAsFloat("PRICING_PER_KM_RATE", 1200)

	// Match config
	configs.Match.SearchRadiusKm = GetEnvAsFloat("MATCH_SEARCH_RADIUS_KM", 10.0)
	configs.Match.MaxCandidates = GetEnvAsInt("MATCH_MAX_CANDIDATES", 20)
	configs.Match.HeartbeatTTLSeconds = GetEnvAsInt("MATCH_HEARTBEAT_TTL_SECONDS", 120)
	configs.Match.CandidatePoolTTLSeconds = GetEnvAsInt("MATCH_CANDIDATE_POOL_TTL_SECONDS", 900)

	// OTP config
	configs.OTP.Length = GetEnvAsInt("OTP_LENGTH", 6)
	configs.OTP.TTLMinutes = GetEnvAsInt("OTP_TTL_MINUTES", 10)
	configs.OTP.MaxAttempts = GetEnvAsInt("OTP_MAX_ATTEMPTS", 5)
	configs.OTP.HashCost = GetEnvAsInt("OTP_HASH_COST", 10)

	// Earnings config
	configs.Earnings.AgentShare = GetEnvAsFloat("EARNINGS_AGENT_SHARE", 0.70)

	// Rate limit config
	configs.RateLimit.OTPLimit = GetEnvAsInt("RATE_LIMIT_OTP_LIMIT", 10)
	configs.RateLimit.OTPPeriodSeconds = GetEnvAsInt("RATE_LIMIT_OTP_PERIOD_SECONDS", 60)

	// NewRelic config
	configs.NewRelic.LicenseKey = GetEnv("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = GetEnv("NEW_RELIC_APP_NAME", "")
	configs.NewRelic.Enabled = GetEnvAsBool("NEW_RELIC_ENABLED", false)
	configs.NewRelic.ForwardLogs = GetEnvAsBool("NEW_RELIC_FORWARD_LOGS", false)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "")

	return configs
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := strings.TrimSpace(env.GetString(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := cast.ToIntE(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := cast.ToInt64E(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid int64 value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := cast.ToBoolE(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := cast.ToFloat64E(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
