package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// HTTP server
	ServerAddr   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	TLSCertFile  string
	TLSKeyFile   string

	// Auth
	SecretKey string
	TokenTTL  time.Duration

	// Postgres
	DatabaseURL string
	DBTimeout   time.Duration

	// Cloudinary
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadPreset string
}

var cfg *Config

// Init loads the config using Viper and returns it
func Init() *Config {
	viper.SetDefault("SERVER_ADDR", ":8080")
	viper.SetDefault("HTTP_READ_TIMEOUT", "10s")
	viper.SetDefault("HTTP_WRITE_TIMEOUT", "10s")

	viper.SetDefault("TOKEN_TTL", "24h")

	viper.SetDefault("DATABASE_URL", "postgres://localhost:5432/socialhub?sslmode=disable")
	viper.SetDefault("DB_TIMEOUT", "10s")

	viper.SetDefault("CLOUDINARY_UPLOAD_PRESET", "ylxdtj0f")
	// Optional: TLS cert/key paths can be empty (plain HTTP)

	// Load env variables
	viper.AutomaticEnv()

	// Optional config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	_ = viper.ReadInConfig() // ignore error if no file

	cfg = &Config{
		ServerAddr:             viper.GetString("SERVER_ADDR"),
		ReadTimeout:            parseDuration(viper.GetString("HTTP_READ_TIMEOUT"), 10*time.Second),
		WriteTimeout:           parseDuration(viper.GetString("HTTP_WRITE_TIMEOUT"), 10*time.Second),
		TLSCertFile:            viper.GetString("TLS_CERT_FILE"),
		TLSKeyFile:             viper.GetString("TLS_KEY_FILE"),
		SecretKey:              viper.GetString("SECRET_KEY"),
		TokenTTL:               parseDuration(viper.GetString("TOKEN_TTL"), 24*time.Hour),
		DatabaseURL:            viper.GetString("DATABASE_URL"),
		DBTimeout:              parseDuration(viper.GetString("DB_TIMEOUT"), 10*time.Second),
		CloudinaryCloudName:    viper.GetString("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:       viper.GetString("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:    viper.GetString("CLOUDINARY_API_SECRET"),
		CloudinaryUploadPreset: viper.GetString("CLOUDINARY_UPLOAD_PRESET"),
	}

	return cfg
}

func parseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}

// Get returns the loaded config instance
func Get() *Config {
	return cfg
}
