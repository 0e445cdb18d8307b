// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds configuration knobs for the HTTP server and the durable store.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	MongoURI            string
	MongoDatabase       string
	MongoCollection     string
	MongoConnectTimeout time.Duration
	MongoOpTimeout      time.Duration
	MongoPingInterval   time.Duration

	LowStockThreshold int64
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 15),

		MongoURI:            getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:       getenv("MONGO_DB", "warehouseDB"),
		MongoCollection:     getenv("MONGO_COLLECTION", "products"),
		MongoConnectTimeout: durenvs("MONGO_CONNECT_TIMEOUT", 10),
		MongoOpTimeout:      durenvs("MONGO_OP_TIMEOUT", 5),
		MongoPingInterval:   durenvs("MONGO_PING_INTERVAL", 5),

		LowStockThreshold: int64(atoienv("LOW_STOCK_THRESHOLD", 5)),
	}
}
