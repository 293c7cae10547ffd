package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Google GoogleConfig
	SMTP   SMTPConfig
	Log    LogConfig
	Auth   AuthConfig
}

type AppConfig struct {
	Env            string
	Port           string
	AllowedOrigins string
	BaseURL        string
	SeedOnStart    bool
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	URI string
}

type JWTConfig struct {
	Secret string
	Expire time.Duration
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// Enabled reports whether every SMTP field needed to send mail is set.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.Port != 0 && s.From != ""
}

type LogConfig struct {
	Level string
	File  string
}

type AuthConfig struct {
	LoginRatePerMinute int
}

var (
	ErrMissingMongoURI  = errors.New("MONGO_URI environment variable not set")
	ErrMissingJWTSecret = errors.New("JWT_SECRET environment variable not set")
)

// Production reports whether APP_ENV asks for production settings.
func (a AppConfig) Production() bool {
	return strings.EqualFold(a.Env, "production")
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:            v.GetString("APP_ENV"),
			Port:           v.GetString("APP_PORT"),
			AllowedOrigins: v.GetString("ALLOWED_ORIGINS"),
			BaseURL:        strings.TrimRight(v.GetString("APP_BASE_URL"), "/"),
			SeedOnStart:    v.GetBool("SEED_ON_START"),
		},
		Mongo: MongoConfig{
			URI:      v.GetString("MONGO_URI"),
			Database: v.GetString("MONGO_DB"),
		},
		Redis: RedisConfig{URI: v.GetString("REDIS_URI")},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Expire: time.Duration(v.GetInt("JWT_EXPIRE_HOURS")) * time.Hour,
		},
		Google: GoogleConfig{
			ClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  v.GetString("GOOGLE_REDIRECT"),
		},
		SMTP: SMTPConfig{
			Host: v.GetString("SMTP_HOST"),
			Port: v.GetInt("SMTP_PORT"),
			User: v.GetString("SMTP_USER"),
			Pass: v.GetString("SMTP_PASS"),
			From: v.GetString("SMTP_FROM"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
			File:  v.GetString("LOG_FILE"),
		},
		Auth: AuthConfig{LoginRatePerMinute: v.GetInt("LOGIN_RATE_PER_MINUTE")},
	}

	if cfg.Mongo.URI == "" {
		return cfg, ErrMissingMongoURI
	}
	if cfg.JWT.Secret == "" {
		if cfg.App.Production() {
			return cfg, ErrMissingJWTSecret
		}
		log.Println("⚠️ Warning: JWT_SECRET not set, tokens are signed with a random key and will not survive a restart")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8888")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("APP_BASE_URL", "http://localhost:5173")
	v.SetDefault("SEED_ON_START", true)
	v.SetDefault("MONGO_DB", "PulsePadDB")
	v.SetDefault("JWT_EXPIRE_HOURS", 24)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOGIN_RATE_PER_MINUTE", 5)
}
