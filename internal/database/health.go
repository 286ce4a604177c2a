package database

import (
	"context"
	"time"
)

// HealthReport is the per-dependency state returned by /health.
type HealthReport map[string]string

// CheckHealth pings every connected backend. Backends that were never
// connected are reported as "disabled".
func CheckHealth(ctx context.Context) (HealthReport, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	report := HealthReport{}
	healthy := true
	record := func(name string, connected bool, ping func() error) {
		if !connected {
			report[name] = "disabled"
			return
		}
		if err := ping(); err != nil {
			report[name] = "down: " + err.Error()
			healthy = false
			return
		}
		report[name] = "ok"
	}

	record("mongo", Client != nil, func() error { return Client.Ping(ctx, nil) })
	record("postgres", PostgresDB != nil, func() error { return PostgresDB.PingContext(ctx) })
	record("redis", RedisClient != nil, func() error { return RedisClient.Ping(ctx).Err() })
	return report, healthy
}
