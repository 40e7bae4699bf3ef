package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gestorpro/internal/catalog"
	"gestorpro/internal/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. GESTORPRO_ADDR.
const EnvPrefix = "GESTORPRO"

type Config struct {
	DataDir           string   `mapstructure:"data_dir"`
	Addr              string   `mapstructure:"addr"`
	WebDir            string   `mapstructure:"web_dir"`
	AllowedOrigins    []string `mapstructure:"allowed_origins"`
	JWTSecret         string   `mapstructure:"jwt_secret"`
	AdminUser         string   `mapstructure:"admin_user"`
	AdminPass         string   `mapstructure:"admin_pass"`
	AllowRegistration bool     `mapstructure:"allow_registration"`
	LowStockThreshold int      `mapstructure:"low_stock_threshold"`
	LogLevel          string   `mapstructure:"log_level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "")
	v.SetDefault("addr", "127.0.0.1:8080")
	v.SetDefault("web_dir", "./web")
	v.SetDefault("allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("jwt_secret", "")
	v.SetDefault("admin_user", "Administrator")
	v.SetDefault("admin_pass", "")
	v.SetDefault("allow_registration", true)
	v.SetDefault("low_stock_threshold", catalog.DefaultLowStock)
	v.SetDefault("log_level", "info")
}

// Load reads .env into the environment, then layers defaults, an optional
// gestorpro.yaml, GESTORPRO_* variables and flags (highest wins).
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("gestorpro")
	v.SetConfigType("yaml")
	v.AddConfigPath("./")
	if dir, err := utils.DefaultDataDir(); err == nil {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", bindErr)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DataDir == "" {
		dir, err := utils.DefaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dir
	}
	if cfg.LowStockThreshold < 0 {
		return nil, fmt.Errorf("low_stock_threshold must not be negative, got %d", cfg.LowStockThreshold)
	}
	return &cfg, nil
}

// Level parses LogLevel, defaulting to info.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
