package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the settlement service
type Config struct {
	Server      ServerConfig
	Kafka       KafkaConfig
	Redis       RedisConfig
	SportsData  SportsDataConfig
	Settlement  SettlementConfig
	Leaderboard LeaderboardConfig
	Wallet      WalletConfig
	Notify      NotifyConfig
	Logging     LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AdminToken   string
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers           []string
	GameResultsTopic  string
	FightResultsTopic string
	GroupID           string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SportsDataConfig holds third-party API configuration
type SportsDataConfig struct {
	PrimaryURL  string
	FallbackURL string
	APIKey      string
	Timeout     time.Duration
	OddsTTL     time.Duration
	GamesTTL    time.Duration
	NewsTTL     time.Duration
	StatsTTL    time.Duration
}

// SettlementConfig holds settlement timing parameters
type SettlementConfig struct {
	RecheckInterval time.Duration // combat trigger re-check cadence
}

// LeaderboardConfig holds snapshot staleness bounds
type LeaderboardConfig struct {
	RefreshInterval time.Duration
	DailyMaxAge     time.Duration
	DefaultMaxAge   time.Duration
}

// WalletConfig holds allowance parameters
type WalletConfig struct {
	AllowanceAmount   float64
	AllowanceInterval time.Duration
	SweepInterval     time.Duration
}

// NotifyConfig holds push gateway configuration
type NotifyConfig struct {
	GatewayURL string
	Timeout    time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8082)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.admin_token", "")

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.game_results_topic", "game-results")
	v.SetDefault("kafka.fight_results_topic", "fight-results")
	v.SetDefault("kafka.group_id", "settlement-service")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("sportsdata.primary_url", "https://site.api.sportsfeed.example.com/v2")
	v.SetDefault("sportsdata.fallback_url", "https://www.thesportsdb.example.com/api/v1")
	v.SetDefault("sportsdata.api_key", "")
	v.SetDefault("sportsdata.timeout", 10*time.Second)
	v.SetDefault("sportsdata.odds_ttl", 5*time.Minute)
	v.SetDefault("sportsdata.games_ttl", 5*time.Minute)
	v.SetDefault("sportsdata.news_ttl", time.Hour)
	v.SetDefault("sportsdata.stats_ttl", 24*time.Hour)

	v.SetDefault("settlement.recheck_interval", 5*time.Minute)

	v.SetDefault("leaderboard.refresh_interval", time.Hour)
	v.SetDefault("leaderboard.daily_max_age", time.Hour)
	v.SetDefault("leaderboard.default_max_age", 6*time.Hour)

	v.SetDefault("wallet.allowance_amount", 25.0)
	v.SetDefault("wallet.allowance_interval", 7*24*time.Hour)
	v.SetDefault("wallet.sweep_interval", time.Hour)

	v.SetDefault("notify.gateway_url", "http://localhost:8090/push")
	v.SetDefault("notify.timeout", 5*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix("SETTLEMENT")
	v.AutomaticEnv()
	// Replace . with _ for environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal to struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
