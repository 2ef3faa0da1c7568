package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("AMQP_URL", "")

	cfg := Load()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("expected default addr :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.AMQPURL != "" {
		t.Errorf("AMQP should be disabled by default, got %q", cfg.AMQPURL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MYSQL_DSN", "user:pw@tcp(db:3306)/cafe?parseTime=true")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("AMQP_URL", "amqp://guest:guest@mq:5672/")

	cfg := Load()
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("expected :9090, got %s", cfg.HTTPAddr)
	}
	if cfg.MySQLDSN != "user:pw@tcp(db:3306)/cafe?parseTime=true" {
		t.Errorf("unexpected MySQL DSN: %s", cfg.MySQLDSN)
	}
	if cfg.RedisAddr != "cache:6379" {
		t.Errorf("unexpected Redis addr: %s", cfg.RedisAddr)
	}
	if cfg.AMQPURL == "" {
		t.Error("expected AMQP URL from environment")
	}
}
