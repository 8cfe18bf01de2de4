package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Store  StoreConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

type StoreConfig struct {
	Name string
	// CatalogFile is read at startup; empty means the built-in catalog.
	CatalogFile string
}

// IsDevelopment reports whether the server runs outside production
func (c ServerConfig) IsDevelopment() bool {
	return c.Env != "production"
}

// Load reads .env from the working directory, then the environment
func Load() *Config {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_ENV", "development")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("STORE_NAME", "Best Buy")
	v.SetDefault("CATALOG_FILE", "")

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Env:            v.GetString("SERVER_ENV"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Store: StoreConfig{
			Name:        v.GetString("STORE_NAME"),
			CatalogFile: v.GetString("CATALOG_FILE"),
		},
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
