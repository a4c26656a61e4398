package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/decioext/quotes-service/internal/model"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
	Users        map[string]string
}

type CompanyConfig struct {
	Name     string
	Phone    string
	LogoPath string
}

type QuoteConfig struct {
	ValidityDays int
	PaymentTerms string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Company     CompanyConfig
	Quotes      QuoteConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
			Users:        parseUsers(v.GetString("AUTH_USERS")),
		},
		Company: CompanyConfig{
			Name:     v.GetString("COMPANY_NAME"),
			Phone:    v.GetString("COMPANY_PHONE"),
			LogoPath: v.GetString("PDF_LOGO_PATH"),
		},
		Quotes: QuoteConfig{
			ValidityDays: v.GetInt("QUOTE_VALIDITY_DAYS"),
			PaymentTerms: v.GetString("QUOTE_PAYMENT_TERMS"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Company.Name == "" {
		cfg.Company.Name = "Décio Extintores"
	}
	if cfg.Company.LogoPath == "" {
		cfg.Company.LogoPath = "Logotipo.jpg"
	}
	if cfg.Quotes.ValidityDays <= 0 {
		cfg.Quotes.ValidityDays = model.DefaultValidityDays
	}
	if cfg.Quotes.PaymentTerms == "" {
		cfg.Quotes.PaymentTerms = model.DefaultPaymentTerms
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if len(cfg.Auth.Users) == 0 {
		return fmt.Errorf("AUTH_USERS is required")
	}
	return nil
}

// parseUsers reads "user:pass,user2:pass2".
func parseUsers(raw string) map[string]string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	users := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, pass, ok := strings.Cut(pair, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			continue
		}
		users[name] = pass
	}
	return users
}
