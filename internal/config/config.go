package config

import (
	"fmt"
	"strings"
	"time"

	"baby-tracker-go/pkg/logger"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTPPort           string
	Env                string
	CORSAllowedOrigins []string
	DB                 DBConfig
	Supabase           SupabaseConfig
	Timeline           TimelineConfig
	AI                 AIConfig
	MCP                MCPConfig
	MembershipCacheTTL time.Duration
	LiveUpdatesEnabled bool
	MetricsEnabled     bool
}

type DBConfig struct {
	Driver          string
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SQLitePath      string
}

type SupabaseConfig struct {
	URL            string
	PublishableKey string
	JWTSecret      string
	AuthTimeout    time.Duration
	SkipAuth       bool
	MockUserID     string
	MockUserEmail  string
	MockUserName   string
	MockUserAvatar string
}

type TimelineConfig struct {
	DayStartHour int
	TimeZone     string
}

// Location falls back to UTC when the configured zone is unknown.
func (c TimelineConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type AIConfig struct {
	APIKey        string
	BaseURL       string
	DefaultModel  string
	AllowedModels []string
	MaxTokens     int
	Timeout       time.Duration
	MaxToolRounds int
}

type MCPConfig struct {
	Enabled bool
	UserID  string
}

func Load(log logger.Logger) (Config, error) {
	if err := loadDotEnv(log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := newViper()
	cfg := Config{
		HTTPPort:           v.GetString("HTTP_PORT"),
		Env:                v.GetString("ENV"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		DB: DBConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:             v.GetString("DB_DSN"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			TimeZone:        v.GetString("DB_TIMEZONE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			SQLitePath:      v.GetString("DB_SQLITE_PATH"),
		},
		Supabase: SupabaseConfig{
			URL:            v.GetString("SUPABASE_URL"),
			PublishableKey: firstNonEmpty(v.GetString("SUPABASE_PUBLISHABLE_KEY"), v.GetString("VITE_SUPABASE_PUBLISHABLE_KEY")),
			JWTSecret:      v.GetString("SUPABASE_JWT_SECRET"),
			AuthTimeout:    v.GetDuration("SUPABASE_AUTH_TIMEOUT"),
			SkipAuth:       v.GetBool("AUTH_SKIP"),
			MockUserID:     v.GetString("AUTH_MOCK_USER_ID"),
			MockUserEmail:  v.GetString("AUTH_MOCK_USER_EMAIL"),
			MockUserName:   v.GetString("AUTH_MOCK_USER_NAME"),
			MockUserAvatar: v.GetString("AUTH_MOCK_USER_AVATAR_URL"),
		},
		Timeline: TimelineConfig{
			DayStartHour: v.GetInt("TIMELINE_DAY_START_HOUR"),
			TimeZone:     v.GetString("TIMELINE_TIMEZONE"),
		},
		AI: AIConfig{
			APIKey:        v.GetString("AI_API_KEY"),
			BaseURL:       strings.TrimRight(v.GetString("AI_BASE_URL"), "/"),
			DefaultModel:  v.GetString("AI_DEFAULT_MODEL"),
			AllowedModels: splitList(v.GetString("AI_ALLOWED_MODELS")),
			MaxTokens:     v.GetInt("AI_MAX_TOKENS"),
			Timeout:       v.GetDuration("AI_TIMEOUT"),
			MaxToolRounds: v.GetInt("AI_MAX_TOOL_ROUNDS"),
		},
		MCP: MCPConfig{
			Enabled: v.GetBool("MCP_ENABLED"),
			UserID:  v.GetString("MCP_USER_ID"),
		},
		MembershipCacheTTL: v.GetDuration("MEMBERSHIP_CACHE_TTL"),
		LiveUpdatesEnabled: v.GetBool("LIVE_UPDATES_ENABLED"),
		MetricsEnabled:     v.GetBool("METRICS_ENABLED"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "baby_tracker")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	v.SetDefault("DB_SQLITE_PATH", "baby-tracker.db")

	v.SetDefault("SUPABASE_AUTH_TIMEOUT", 5*time.Second)
	v.SetDefault("AUTH_SKIP", false)
	v.SetDefault("AUTH_MOCK_USER_ID", "00000000-0000-0000-0000-000000000001")

	v.SetDefault("TIMELINE_DAY_START_HOUR", 8)
	v.SetDefault("TIMELINE_TIMEZONE", "UTC")

	v.SetDefault("AI_BASE_URL", "https://api.anthropic.com")
	v.SetDefault("AI_DEFAULT_MODEL", "claude-sonnet-4-5")
	v.SetDefault("AI_MAX_TOKENS", 2048)
	v.SetDefault("AI_TIMEOUT", 2*time.Minute)
	v.SetDefault("AI_MAX_TOOL_ROUNDS", 5)

	v.SetDefault("MCP_ENABLED", true)
	v.SetDefault("MEMBERSHIP_CACHE_TTL", 30*time.Second)
	v.SetDefault("LIVE_UPDATES_ENABLED", true)
	v.SetDefault("METRICS_ENABLED", true)

	return v
}

func (c Config) validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.Timeline.DayStartHour < 0 || c.Timeline.DayStartHour > 23 {
		return fmt.Errorf("TIMELINE_DAY_START_HOUR must be between 0 and 23, got %d", c.Timeline.DayStartHour)
	}
	if _, err := time.LoadLocation(c.Timeline.TimeZone); err != nil {
		return fmt.Errorf("TIMELINE_TIMEZONE: %w", err)
	}
	return nil
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}

// ModelAllowed reports whether model may be requested by clients; the default model always is.
func (c AIConfig) ModelAllowed(model string) bool {
	if model == c.DefaultModel {
		return true
	}
	for _, allowed := range c.AllowedModels {
		if allowed == model {
			return true
		}
	}
	return false
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
