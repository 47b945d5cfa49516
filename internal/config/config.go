package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultPort     = "5000"
	defaultLogLevel = "info"
)

type Config struct {
	Port     string
	LogLevel string

	AllowedOrigins []string

	MetricsEnabled bool
	MetricsToken   string

	// CatalogDSN points at a Postgres database holding products and
	// categories. Empty means the built-in seed catalog.
	CatalogDSN string
}

func (c Config) Addr() string {
	return ":" + c.Port
}

// Load reads an optional .env file, then the process environment. Variables
// already set in the environment win over the file.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}

	return Config{
		Port:           getenv("PORT", defaultPort),
		LogLevel:       getenv("LOG_LEVEL", defaultLogLevel),
		AllowedOrigins: parseList(getenv("ALLOWED_ORIGINS", "*")),
		MetricsEnabled: getenvBool("METRICS_ENABLED", true),
		MetricsToken:   os.Getenv("METRICS_TOKEN"),
		CatalogDSN:     os.Getenv("CATALOG_DSN"),
	}, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func parseList(s string) []string {
	out := make([]string, 0, 4)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
