package config

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

const masked = "******"

func mask(s string) string {
	if s == "" {
		return ""
	}
	return masked
}

// PrintConfig writes the resolved configuration to stdout with secrets masked.
func PrintConfig(cfg *Config) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	row := func(key string, value any) {
		fmt.Fprintf(w, "  %s\t%v\n", key, value)
	}

	fmt.Fprintln(w, strings.Repeat("=", 48))
	row("mode", cfg.Mode)
	row("http.port", cfg.Port())
	row("log.level", cfg.Log.Level)

	row("dataset.source", cfg.Dataset.Source)
	row("dataset.trips_path", cfg.Dataset.TripsPath)
	row("dataset.loans_path", cfg.Dataset.LoansPath)
	row("dataset.reload_cron", cfg.Dataset.ReloadCron)

	row("assistant.provider", cfg.Assistant.Provider)
	row("assistant.model", cfg.Assistant.Model)
	row("assistant.api_key", mask(cfg.Assistant.APIKey))
	row("assistant.timeout", cfg.Assistant.Timeout)
	row("assistant.history_size", cfg.Assistant.HistorySize)

	row("session.ttl", cfg.Session.TTL)

	row("database.host", fmt.Sprintf("%s:%s", cfg.Database.Host, cfg.Database.Port))
	row("database.user", cfg.Database.User)
	row("database.password", mask(cfg.Database.Password))

	row("rabbitmq.enabled", cfg.RabbitMQ.Enabled)
	row("rabbitmq.host", fmt.Sprintf("%s:%s", cfg.RabbitMQ.Host, cfg.RabbitMQ.Port))
	row("rabbitmq.password", mask(cfg.RabbitMQ.Password))

	row("redis.enabled", cfg.Redis.Enabled)
	row("redis.addr", cfg.Redis.GetAddr())
	row("redis.password", mask(cfg.Redis.Password))

	row("minio.endpoint", cfg.Minio.Endpoint)
	row("minio.bucket", cfg.Minio.Bucket)
	row("minio.secret_key", mask(cfg.Minio.SecretKey))

	row("auth.jwt_secret", mask(cfg.Auth.JWTSecret))
	fmt.Fprintln(w, strings.Repeat("=", 48))
}
