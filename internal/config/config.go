// Package config has a configuration structure
package config

import "time"

// Config contains configuration data
type Config struct {
	Addr           string   `env:"BROKER_ADDR" envDefault:":3000"`
	StaticDir      string   `env:"STATIC_DIR" envDefault:"public"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`

	// Remote banking API
	APIBaseURL     string        `env:"DI_API_URL" envDefault:"https://diapis.digitalinsight.com"`
	ConsumerKey    string        `env:"DI_CONSUMER_KEY"`
	ConsumerSecret string        `env:"DI_CONSUMER_SECRET"`
	FIID           string        `env:"DI_FIID"`
	CustomerID     string        `env:"DI_CLIENT_GUID"`
	UserAgent      string        `env:"DI_USER_AGENT" envDefault:"someUserAgent"`
	HTTPTimeout    time.Duration `env:"DI_HTTP_TIMEOUT" envDefault:"30s"`

	SettlementDelay time.Duration `env:"SETTLEMENT_DELAY" envDefault:"1s"`

	// Redis tier of the catalog cache. Empty host keeps the cache in process.
	ServerRedisCache string        `env:"SERVER" envDefault:"server1"`
	HostRedisCache   string        `env:"HOST"`
	PortRedisCache   string        `env:"PORT" envDefault:"6379"`
	CatalogTTL       time.Duration `env:"CATALOG_TTL" envDefault:"24h"`
}
