package config

import (
	"errors"
	"fmt"
	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"
	"strings"
	"time"
)

var ErrMissingShopify = errors.New("config: SHOPIFY_STORE and SHOPIFY_ACCESS_TOKEN are required")

type MetafieldKeyMode string

const (
	MetafieldKeysStable     MetafieldKeyMode = "stable"
	MetafieldKeysPositional MetafieldKeyMode = "positional"
)

type NoteMode string

const (
	NoteReplace NoteMode = "replace"
	NoteAppend  NoteMode = "append"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	ShopifyStore         string `env:"SHOPIFY_STORE"`
	ShopifyAccessToken   string `env:"SHOPIFY_ACCESS_TOKEN"`
	ShopifyWebhookSecret string `env:"SHOPIFY_WEBHOOK_SECRET"`
	ShopifyAPIVersion    string `env:"SHOPIFY_API_VERSION" envDefault:"2026-01"`

	GoogleAPIKey      string           `env:"GOOGLE_API_KEY"`
	TranslateEndpoint string           `env:"TRANSLATE_ENDPOINT" envDefault:"https://translation.googleapis.com/language/translate/v2"`
	TranslateTarget   string           `env:"TRANSLATE_TARGET" envDefault:"en"`
	HTTPClientTimeout time.Duration    `env:"HTTP_CLIENT_TIMEOUT" envDefault:"15s"`
	MetafieldKeys     MetafieldKeyMode `env:"METAFIELD_KEYS" envDefault:"stable"`
	NoteMode          NoteMode         `env:"NOTE_MODE" envDefault:"replace"`

	DBString string `env:"DB_STRING"`

	KafkaBrokers string `env:"KAFKA_BROKERS"`
	KafkaTopic   string `env:"KAFKA_TOPIC" envDefault:"orders.translated"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.ShopifyStore = normalizeStore(cfg.ShopifyStore)
	if cfg.ShopifyStore == "" || strings.TrimSpace(cfg.ShopifyAccessToken) == "" {
		return nil, ErrMissingShopify
	}

	if _, err := cfg.Target(); err != nil {
		return nil, err
	}

	switch cfg.MetafieldKeys {
	case MetafieldKeysStable, MetafieldKeysPositional:
	default:
		return nil, fmt.Errorf("config: unknown METAFIELD_KEYS %q", cfg.MetafieldKeys)
	}

	switch cfg.NoteMode {
	case NoteReplace, NoteAppend:
	default:
		return nil, fmt.Errorf("config: unknown NOTE_MODE %q", cfg.NoteMode)
	}

	return cfg, nil
}

// Target returns the translation target as a BCP 47 tag.
func (c *Config) Target() (language.Tag, error) {
	raw := strings.TrimSpace(c.TranslateTarget)
	if raw == "" {
		return language.English, nil
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return language.Und, fmt.Errorf("config: invalid TRANSLATE_TARGET %q: %w", raw, err)
	}
	return tag, nil
}

// ShopDomain accepts either "my-store" or "my-store.myshopify.com".
func (c *Config) ShopDomain() string {
	if strings.Contains(c.ShopifyStore, ".") {
		return c.ShopifyStore
	}
	return c.ShopifyStore + ".myshopify.com"
}

func normalizeStore(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	return strings.TrimSuffix(s, "/")
}
