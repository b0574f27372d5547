// Package config reads process configuration at startup. A .env file is
// loaded first when present so local development matches deployment, then
// the environment wins.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	envDSN      = "SAMIKNA_PG_DSN"
	envDBHost   = "SAMIKNA_DB_HOST"
	envDBPort   = "SAMIKNA_DB_PORT"
	envDBUser   = "SAMIKNA_DB_USER"
	envDBPass   = "SAMIKNA_DB_PASSWORD"
	envDBName   = "SAMIKNA_DB_NAME"
	envSecret   = "SAMIKNA_AUTH_SECRET"
	envBaseURL  = "SAMIKNA_BASE_URL"
	envHTTPAddr = "SAMIKNA_HTTP_ADDR"
	envTokenTTL = "SAMIKNA_TOKEN_TTL"
)

// Config holds everything cmd/api needs to start.
type Config struct {
	HTTPAddr string
	BaseURL  string
	PGDSN    string
	TokenTTL time.Duration
}

// Load reads an optional .env file and the process environment.
// A missing signing secret or missing database credentials is a fatal
// startup error, reported here rather than on first use.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr: getenv(envHTTPAddr, ":8080"),
		BaseURL:  getenv(envBaseURL, "http://localhost:8080"),
		TokenTTL: 12 * time.Hour,
	}

	if raw := strings.TrimSpace(os.Getenv(envTokenTTL)); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return Config{}, fmt.Errorf("%s must be a positive duration: %q", envTokenTTL, raw)
		}
		cfg.TokenTTL = ttl
	}

	if strings.TrimSpace(os.Getenv(envSecret)) == "" {
		return Config{}, errors.New(envSecret + " is required")
	}

	dsn, err := databaseDSN()
	if err != nil {
		return Config{}, err
	}
	cfg.PGDSN = dsn
	return cfg, nil
}

// databaseDSN prefers the full DSN and otherwise assembles one from the
// discrete host/port/credential variables.
func databaseDSN() (string, error) {
	if dsn := strings.TrimSpace(os.Getenv(envDSN)); dsn != "" {
		return dsn, nil
	}
	host := strings.TrimSpace(os.Getenv(envDBHost))
	user := strings.TrimSpace(os.Getenv(envDBUser))
	name := strings.TrimSpace(os.Getenv(envDBName))
	if host == "" || user == "" || name == "" {
		return "", errors.New("database configuration is required: set " + envDSN +
			" or " + envDBHost + "/" + envDBUser + "/" + envDBName)
	}
	port := getenv(envDBPort, "5432")
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, os.Getenv(envDBPass)),
		Host:   host + ":" + port,
		Path:   "/" + name,
	}
	q := u.Query()
	q.Set("sslmode", "disable")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
