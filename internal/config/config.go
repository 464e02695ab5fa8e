package config

import (
	"strings"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort           string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL        string `env:"DATABASE_URL,required"`
	DBAutoMigrate      bool   `env:"DB_AUTO_MIGRATE" envDefault:"true"`
	JWTSecret          string `env:"JWT_SECRET,required,notEmpty"`
	JWTExpiresIn       string `env:"JWT_EXPIRES_IN" envDefault:"24h"`
	JWTIssuer          string `env:"JWT_ISSUER" envDefault:"intranet"`
	RedisAddr          string `env:"REDIS_ADDR"`
	RedisPassword      string `env:"REDIS_PASSWORD"`
	RedisDB            int    `env:"REDIS_DB" envDefault:"0"`
	LoginMaxAttempts   int    `env:"LOGIN_MAX_ATTEMPTS" envDefault:"5"`
	LoginWindowMinutes int    `env:"LOGIN_WINDOW_MINUTES" envDefault:"15"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile            string `env:"LOG_FILE"`
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AllowedOrigins separa CORS_ALLOWED_ORIGINS en una lista limpia.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
