package history

import (
	"net"
	"os"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// DSNEnv holds a complete data source name and takes precedence over DB_*
const DSNEnv = "E2E_HISTORY_DSN"

// ResolveDSN finds the history database from the process environment and
// the .env file at envPath (process environment wins). ok is false when no
// database is configured, which disables history.
func ResolveDSN(envPath string) (dsn string, ok bool) {
	fileEnv, err := godotenv.Read(envPath)
	if err != nil {
		// .env file might not exist, that's okay - use environment variables
		fileEnv = map[string]string{}
	}
	get := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		if v := fileEnv[key]; v != "" {
			return v
		}
		return fallback
	}

	if dsn := get(DSNEnv, ""); dsn != "" {
		// Run timestamps are scanned into time.Time
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return dsn, true
		}
		cfg.ParseTime = true
		return cfg.FormatDSN(), true
	}
	name := get("DB_DATABASE", "")
	if name == "" {
		return "", false
	}

	cfg := mysql.NewConfig()
	cfg.User = get("DB_USERNAME", "root")
	cfg.Passwd = get("DB_PASSWORD", "")
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(get("DB_HOST", "127.0.0.1"), get("DB_PORT", "3306"))
	cfg.DBName = name
	cfg.ParseTime = true
	return cfg.FormatDSN(), true
}
