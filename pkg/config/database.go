package config

import (
	"net"
	"net/url"
	"os"
	"strconv"
)

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

// LoadDatabaseConfig reads the libpq style PG* variables.
func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     GetEnvString("PGHOST", "localhost"),
		Port:     GetEnvInt("PGPORT", 5432),
		Name:     GetEnvString("PGDATABASE", "news_agency"),
		User:     GetEnvString("PGUSER", "postgres"),
		Password: os.Getenv("PGPASSWORD"),
		SSLMode:  GetEnvString("PGSSLMODE", "disable"),
	}
}

// DSN renders the settings as a postgres:// URL. DATABASE_URL, when set,
// takes precedence over the individual variables.
func (c DatabaseConfig) DSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}
