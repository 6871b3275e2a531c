package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name string `mapstructure:"name"`
		Port string `mapstructure:"port"`
		// Env is "development" or "production"; production switches gin to
		// release mode and quiets startup logging.
		Env string `mapstructure:"env"`
	} `mapstructure:"app"`
	Database struct {
		// URL is a postgres connection string; overridden by DATABASE_URL.
		URL             string        `mapstructure:"url"`
		MaxIdleConns    int           `mapstructure:"max_idle_conns"`
		MaxOpenConns    int           `mapstructure:"max_open_conns"`
		ConnectAttempts int           `mapstructure:"connect_attempts"`
		ConnectDelay    time.Duration `mapstructure:"connect_delay"`
	} `mapstructure:"database"`
	Redis struct {
		// Addr empty disables caching entirely.
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Auth struct {
		// Enabled guards the administrative write endpoints with JWT.
		Enabled bool   `mapstructure:"enabled"`
		Secret  string `mapstructure:"secret"`
	} `mapstructure:"auth"`
	RateLimit struct {
		Enabled bool    `mapstructure:"enabled"`
		RPS     float64 `mapstructure:"rps"`
		Burst   int     `mapstructure:"burst"`
	} `mapstructure:"rate_limit"`
}

var AppConfig *Config

func InitConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")

	viper.SetDefault("app.name", "newsdesk")
	viper.SetDefault("app.port", ":8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.max_open_conns", 20)
	viper.SetDefault("database.connect_attempts", 5)
	viper.SetDefault("database.connect_delay", 5*time.Second)
	viper.SetDefault("rate_limit.rps", 10.0)
	viper.SetDefault("rate_limit.burst", 20)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("Failed to read config file: %v", err)
		}
		log.Println("No config file found, using defaults and environment")
	}

	// Environment overrides for deploy-time settings.
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("app.port", "PORT")
	viper.BindEnv("auth.secret", "JWT_SECRET")

	AppConfig = &Config{}
	if err := viper.Unmarshal(AppConfig); err != nil {
		log.Fatalf("Failed to unmarshal config: %v", err)
	}

	if AppConfig.Database.URL == "" {
		log.Fatal("database.url (or DATABASE_URL) is required")
	}

	if AppConfig.App.Env != "production" {
		log.Printf("Loaded config: app=%s env=%s port=%s redis=%q auth=%v",
			AppConfig.App.Name, AppConfig.App.Env, AppConfig.App.Port,
			AppConfig.Redis.Addr, AppConfig.Auth.Enabled)
	}

	initDB()
	initRedis()
}
