package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DB", "")
	t.Setenv("MONGO_COLLECTION", "")
	t.Setenv("MONGO_CONNECT_TIMEOUT", "")
	t.Setenv("MONGO_OP_TIMEOUT", "")
	t.Setenv("MONGO_PING_INTERVAL", "")
	t.Setenv("LOW_STOCK_THRESHOLD", "")
	c := Load()
	if c.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr default")
	}
	if c.ShutdownTimeout != 15*time.Second {
		t.Fatalf("ShutdownTimeout default")
	}
	if c.MongoURI != "mongodb://localhost:27017" {
		t.Fatalf("MongoURI default")
	}
	if c.MongoDatabase != "warehouseDB" || c.MongoCollection != "products" {
		t.Fatalf("mongo names default")
	}
	if c.MongoConnectTimeout != 10*time.Second || c.MongoOpTimeout != 5*time.Second {
		t.Fatalf("mongo timeouts default")
	}
	if c.MongoPingInterval != 5*time.Second {
		t.Fatalf("MongoPingInterval default")
	}
	if c.LowStockThreshold != 5 {
		t.Fatalf("LowStockThreshold default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "2")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DB", "testdb")
	t.Setenv("MONGO_COLLECTION", "items")
	t.Setenv("MONGO_CONNECT_TIMEOUT", "3")
	t.Setenv("MONGO_OP_TIMEOUT", "1")
	t.Setenv("MONGO_PING_INTERVAL", "2")
	t.Setenv("LOW_STOCK_THRESHOLD", "10")
	c := Load()
	if c.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr env")
	}
	if c.ShutdownTimeout != 2*time.Second {
		t.Fatalf("ShutdownTimeout env")
	}
	if c.MongoURI != "mongodb://db:27017" || c.MongoDatabase != "testdb" || c.MongoCollection != "items" {
		t.Fatalf("mongo env")
	}
	if c.MongoConnectTimeout != 3*time.Second || c.MongoOpTimeout != time.Second || c.MongoPingInterval != 2*time.Second {
		t.Fatalf("mongo timeouts env")
	}
	if c.LowStockThreshold != 10 {
		t.Fatalf("LowStockThreshold env")
	}
}

func TestLoadBadIntFallsBack(t *testing.T) {
	t.Setenv("LOW_STOCK_THRESHOLD", "lots")
	c := Load()
	if c.LowStockThreshold != 5 {
		t.Fatalf("expected default on unparsable int, got %d", c.LowStockThreshold)
	}
}
