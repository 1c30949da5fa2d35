package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains all server parameters, loaded from the environment.
type Config struct {
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	LogLevel    int    `env:"LOG_LEVEL" envDefault:"0"`
	DatabaseURL string `env:"DATABASE_URL"`

	Session Session
	AI      AI `envPrefix:"OPENAI_"`
	Contact Contact
	Redis   Redis `envPrefix:"REDIS_"`
}

// Session contains the cookie/JWT parameters for the demo auth flow.
type Session struct {
	JWTSecret       string        `env:"JWT_SECRET" envDefault:"devsecret"`
	JWTIssuer       string        `env:"JWT_ISSUER" envDefault:"elias-portfolio"`
	TokenTTL        time.Duration `env:"JWT_TTL" envDefault:"168h"`
	CookieName      string        `env:"AUTH_COOKIE_NAME" envDefault:"auth_token"`
	ProtectedPrefix string        `env:"PROTECTED_PREFIX" envDefault:"/dashboard"`
	LoginPath       string        `env:"LOGIN_PATH" envDefault:"/login"`
}

// AI contains the parameters for the feedback proxy. An empty key selects
// mock mode.
type AI struct {
	APIKey  string        `env:"API_KEY"`
	Model   string        `env:"MODEL" envDefault:"gpt-4o-mini"`
	BaseURL string        `env:"BASE_URL" envDefault:"https://api.openai.com/v1"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Contact contains the mail provider parameters for the contact form.
type Contact struct {
	ResendAPIKey  string        `env:"RESEND_API_KEY"`
	ToEmail       string        `env:"CONTACT_TO_EMAIL"`
	FromEmail     string        `env:"CONTACT_FROM_EMAIL"`
	SendAutoReply bool          `env:"CONTACT_SEND_AUTOREPLY" envDefault:"false"`
	RateWindow    time.Duration `env:"CONTACT_RATE_WINDOW" envDefault:"1m"`
	RateMax       int           `env:"CONTACT_RATE_MAX" envDefault:"5"`
}

// Redis contains connection parameters for the optional rate limiter.
type Redis struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
}

// New loads configuration from environment variables.
func New() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
