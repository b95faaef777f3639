package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/vhoanghac/sellerdash/internal/analytics"
	httpapi "github.com/vhoanghac/sellerdash/internal/api/http"
	"github.com/vhoanghac/sellerdash/internal/auth"
	"github.com/vhoanghac/sellerdash/internal/report"
	"github.com/vhoanghac/sellerdash/internal/store"
	"github.com/vhoanghac/sellerdash/log"
)

// Config represents the global configuration for the service.
type Config struct {
	DB        store.Config     `mapstructure:"mysql"`
	Logger    log.Config       `mapstructure:"logger"`
	HTTP      httpapi.Config   `mapstructure:"http"`
	Auth      auth.Config      `mapstructure:"auth"`
	Analytics analytics.Config `mapstructure:"analytics"`
	Report    report.Config    `mapstructure:"report"`
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
func LoadConfig(cfgFile string) (*Config, error) {
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))

	bindEnvVars()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/config/sellerdash")
		viper.AddConfigPath("/etc/sellerdash")
		_ = viper.ReadInConfig()
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	// DSN can also be assembled from MYSQL_* pieces when unset.
	if config.DB.DSN == "" {
		host := os.Getenv("MYSQL_HOST")
		port := os.Getenv("MYSQL_PORT")
		user := os.Getenv("MYSQL_USER")
		password := os.Getenv("MYSQL_PASSWORD")
		database := os.Getenv("MYSQL_DATABASE")

		if host != "" && user != "" && database != "" {
			if port == "" {
				port = "3306"
			}
			config.DB.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true",
				user, password, host, port, database)
		}
	}

	return &config, nil
}

// bindEnvVars binds environment variables to config keys so both nested
// keys (MYSQL__DSN) and flat keys (MYSQL_DSN) work.
func bindEnvVars() {
	// MySQL
	viper.BindEnv("mysql.dsn", "MYSQL_DSN")
	viper.BindEnv("mysql.automigrate", "MYSQL_AUTOMIGRATE")
	viper.BindEnv("mysql.max_open_connections", "MYSQL_MAX_OPEN_CONNECTIONS")
	viper.BindEnv("mysql.max_idle_connections", "MYSQL_MAX_IDLE_CONNECTIONS")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	viper.BindEnv("http.port", "HTTP_PORT")
	viper.BindEnv("http.address", "HTTP_ADDRESS")
	viper.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")

	// Auth
	viper.BindEnv("auth.jwt_secret", "AUTH_JWT_SECRET")
	viper.BindEnv("auth.token_ttl", "AUTH_TOKEN_TTL")

	// Analytics
	viper.BindEnv("analytics.timezone", "ANALYTICS_TIMEZONE")
	viper.BindEnv("analytics.profit_margin_rate", "ANALYTICS_PROFIT_MARGIN_RATE")
	viper.BindEnv("analytics.low_stock_threshold", "ANALYTICS_LOW_STOCK_THRESHOLD")
	viper.BindEnv("analytics.stock_alert_limit", "ANALYTICS_STOCK_ALERT_LIMIT")
	viper.BindEnv("analytics.top_limit", "ANALYTICS_TOP_LIMIT")

	// Report
	viper.BindEnv("report.timezone", "REPORT_TIMEZONE")
	viper.BindEnv("report.profit_margin_rate", "REPORT_PROFIT_MARGIN_RATE")
}
