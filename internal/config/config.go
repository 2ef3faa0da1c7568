package config

import "os"

// Config carries everything the server needs from the environment.
// AMQPURL is optional: when empty, order events are not published.
type Config struct {
	HTTPAddr  string
	MySQLDSN  string
	RedisAddr string
	AMQPURL   string
}

func Load() *Config {
	return &Config{
		HTTPAddr:  ":" + getEnvOrDefault("PORT", "8080"),
		MySQLDSN:  getEnvOrDefault("MYSQL_DSN", "root:root@tcp(localhost:3306)/cafe?parseTime=true"),
		RedisAddr: getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		AMQPURL:   os.Getenv("AMQP_URL"),
	}
}

func getEnvOrDefault(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}
