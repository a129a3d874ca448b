package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Env holds process-wide configuration. Loaded once at startup and read-only
// afterwards.
type Env struct {
	AppAddr     string
	GinMode     string
	DatabaseURL string
	SecretKey   string
	UploadPath  string
	PublicPath  string
	SessionTTL  time.Duration
	CORSOrigins []string
}

// LoadEnv reads configuration from the environment (plus an optional .env
// file) via viper. PORT and DATABASE_URL follow the deployment platform's
// naming.
func LoadEnv() Env {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // .env is optional
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("SECRET_KEY", "alhudha-dev-secret-change-me")
	v.SetDefault("UPLOAD_PATH", "uploads")
	v.SetDefault("PUBLIC_PATH", "public")
	v.SetDefault("SESSION_TTL_HOURS", 7*24)

	addr := strings.TrimSpace(v.GetString("PORT"))
	if !strings.HasPrefix(addr, ":") {
		addr = ":" + addr
	}

	var origins []string
	for _, o := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return Env{
		AppAddr:     addr,
		GinMode:     strings.TrimSpace(v.GetString("GIN_MODE")),
		DatabaseURL: strings.TrimSpace(v.GetString("DATABASE_URL")),
		SecretKey:   v.GetString("SECRET_KEY"),
		UploadPath:  v.GetString("UPLOAD_PATH"),
		PublicPath:  v.GetString("PUBLIC_PATH"),
		SessionTTL:  time.Duration(v.GetInt("SESSION_TTL_HOURS")) * time.Hour,
		CORSOrigins: origins,
	}
}
