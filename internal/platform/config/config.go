package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Rate provider
	ProviderURL     string
	ProviderAPIKey  string
	ProviderTimeout time.Duration

	// Rate engine
	BaseCurrency        string
	CacheTTL            time.Duration
	SupportedCurrencies []string

	// Inbound HTTP rate limit in ulule/limiter format, e.g. "100-M".
	// Empty disables the middleware.
	RateLimit string
}

const defaultSupportedCurrencies = "USD,EUR,GBP,JPY,AUD,CAD,CHF,CNY,SEK,NZD,BRL"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("EXCHANGE_RATE_API_URL", "http://api.exchangeratesapi.io/latest")
	viper.SetDefault("EXCHANGE_RATE_API_KEY", "")
	viper.SetDefault("EXCHANGE_RATE_BASE_CURRENCY", "EUR")
	viper.SetDefault("EXCHANGE_RATE_CACHE_TTL", 3600)
	viper.SetDefault("SUPPORTED_CURRENCIES", defaultSupportedCurrencies)
	viper.SetDefault("PROVIDER_TIMEOUT", "10s")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.ProviderURL = viper.GetString("EXCHANGE_RATE_API_URL")
	cfg.ProviderAPIKey = viper.GetString("EXCHANGE_RATE_API_KEY")
	if cfg.ProviderAPIKey == "" {
		log.Println("Warning: EXCHANGE_RATE_API_KEY environment variable not set.")
	}

	providerTimeoutStr := viper.GetString("PROVIDER_TIMEOUT")
	providerTimeout, err := time.ParseDuration(providerTimeoutStr)
	if err != nil {
		providerTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for PROVIDER_TIMEOUT ('%s'). Defaulting to %s.\n", providerTimeoutStr, providerTimeout)
	}
	cfg.ProviderTimeout = providerTimeout

	cfg.BaseCurrency = strings.ToUpper(viper.GetString("EXCHANGE_RATE_BASE_CURRENCY"))

	cacheTTLSeconds := viper.GetInt("EXCHANGE_RATE_CACHE_TTL")
	if cacheTTLSeconds <= 0 {
		cacheTTLSeconds = 3600
		log.Printf("Warning: Invalid value for EXCHANGE_RATE_CACHE_TTL. Defaulting to %d seconds.\n", cacheTTLSeconds)
	}
	cfg.CacheTTL = time.Duration(cacheTTLSeconds) * time.Second

	cfg.SupportedCurrencies = parseCurrencyList(viper.GetString("SUPPORTED_CURRENCIES"))
	if len(cfg.SupportedCurrencies) == 0 {
		cfg.SupportedCurrencies = parseCurrencyList(defaultSupportedCurrencies)
		log.Println("Warning: SUPPORTED_CURRENCIES is empty. Using the default set.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}

func parseCurrencyList(raw string) []string {
	parts := strings.Split(raw, ",")
	currencies := make([]string, 0, len(parts))
	for _, part := range parts {
		code := strings.ToUpper(strings.TrimSpace(part))
		if code != "" {
			currencies = append(currencies, code)
		}
	}
	return currencies
}
