package store

import (
	"context"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/warehousekit/warehouse-api/internal/obs"
)

// Health is the connection-state flag read by the Selector on every request.
// Reading it is a cheap atomic load; it never triggers a connection attempt.
type Health struct {
	up atomic.Bool
}

// Up reports whether the durable backing was reachable at the last probe.
func (h *Health) Up() bool { return h.up.Load() }

func (h *Health) set(v bool) { h.up.Store(v) }

// Monitor owns the long-lived connection handle and keeps a Health flag
// current by pinging the server in the background.
type Monitor struct {
	client   *mongo.Client
	health   *Health
	interval time.Duration
	timeout  time.Duration
}

// NewMonitor builds a Monitor around an already-connected client.
func NewMonitor(client *mongo.Client, health *Health, interval, timeout time.Duration) *Monitor {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Monitor{client: client, health: health, interval: interval, timeout: timeout}
}

// Start runs the ping loop until ctx is canceled. The first probe runs
// immediately so the flag is meaningful before the first request.
func (m *Monitor) Start(ctx context.Context) {
	go m.loop(ctx)
}

func (m *Monitor) loop(ctx context.Context) {
	m.probe(ctx)
	t := time.NewTicker(m.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.probe(ctx)
		}
	}
}

func (m *Monitor) probe(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	err := m.client.Ping(pctx, readpref.Primary())
	was := m.health.Up()
	now := err == nil
	m.health.set(now)
	if now != was {
		if now {
			obs.Logger.Info("durable_store_up")
		} else {
			obs.Logger.Warn("durable_store_down", "error", err.Error())
		}
	}
}
