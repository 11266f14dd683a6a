package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env           string
	Port          string
	SessionSecret string
	DatabaseURL   string
	RedisURL      string

	// Cloudinary unsigned upload (media CDN).
	CloudinaryCloudName    string
	CloudinaryUploadPreset string
	CloudinaryBaseURL      string // override for tests; default https://api.cloudinary.com

	StripeSecretKey     string
	StripeWebhookSecret string

	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if env == "test" && viper.GetString("DATABASE_URL_TEST") != "" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}

	base := viper.GetString("CLOUDINARY_BASE_URL")
	if base == "" {
		base = "https://api.cloudinary.com"
	}

	return &Config{
		Env:                    env,
		Port:                   port,
		SessionSecret:          viper.GetString("SESSION_SECRET"),
		DatabaseURL:            dbURL,
		RedisURL:               viper.GetString("REDIS_URL"),
		CloudinaryCloudName:    viper.GetString("CLOUDINARY_CLOUD_NAME"),
		CloudinaryUploadPreset: viper.GetString("CLOUDINARY_UPLOAD_PRESET"),
		CloudinaryBaseURL:      base,
		StripeSecretKey:        viper.GetString("STRIPE_SECRET_KEY"),
		StripeWebhookSecret:    viper.GetString("STRIPE_WEBHOOK_SECRET"),
		FrontendURLEndsWith:    viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:            viper.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:      strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
	}, nil
}
