package models

// Config represents application configuration
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	NATS      NATSConfig
	NSQ       NSQConfig
	JWT       JWTConfig
	APIKey    APIKeyConfig
	Pricing   PricingConfig
	Match     MatchConfig
	OTP       OTPConfig
	Earnings  EarningsConfig
	RateLimit RateLimitConfig
	NewRelic  NewRelicConfig
	Logger    LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// NSQConfig contains the nsqd address used for settlement events
type NSQConfig struct {
	Address string
	Enabled bool
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// APIKeyConfig maps internal caller names to their API keys
type APIKeyConfig struct {
	Keys map[string]string
}

type PricingConfig struct {
	Currency  string  `json:"currency"`
	BaseFare  float64 `json:"base_fare"`   // minor units
	PerKmRate float64 `json:"per_km_rate"` // minor units per km
}

// MatchConfig contains geo matching configuration
type MatchConfig struct {
	SearchRadiusKm          float64 `json:"search_radius_km"`
	MaxCandidates           int     `json:"max_candidates"`
	HeartbeatTTLSeconds     int     `json:"heartbeat_ttl_seconds"`
	CandidatePoolTTLSeconds int     `json:"candidate_pool_ttl_seconds"`
}

// OTPConfig contains one-time code configuration
type OTPConfig struct {
	Length      int
	TTLMinutes  int
	MaxAttempts int
	HashCost    int
}

// EarningsConfig contains settlement configuration
type EarningsConfig struct {
	AgentShare float64 // fraction of the fare paid to the agent
}

// RateLimitConfig contains limits for OTP endpoints
type RateLimitConfig struct {
	OTPLimit         int
	OTPPeriodSeconds int
}

// NewRelicConfig contains New Relic APM configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	ForwardLogs bool
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}
