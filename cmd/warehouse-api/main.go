// Package main boots the warehouse inventory HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/warehousekit/warehouse-api/internal/config"
	httpapi "github.com/warehousekit/warehouse-api/internal/http"
	"github.com/warehousekit/warehouse-api/internal/obs"
	"github.com/warehousekit/warehouse-api/internal/store"
)

func main() {
	cfg := config.Load()
	obs.InitLogger()
	obs.Logger.Info("service_starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fallback := store.NewMemoryStore()
	health := &store.Health{}
	var durable *store.MongoStore

	client, err := connectMongo(ctx, cfg)
	if err != nil {
		// The service stays up and serves from memory; the monitor is the
		// only path back to durable mode, and without a client there is none.
		obs.Logger.Warn("mongo_connect_failed", "uri", cfg.MongoURI, "error", err.Error())
	} else {
		coll := client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)
		durable = store.NewMongoStore(coll, cfg.MongoOpTimeout)
		monitor := store.NewMonitor(client, health, cfg.MongoPingInterval, cfg.MongoOpTimeout)
		monitor.Start(ctx)
		obs.Logger.Info("mongo_client_ready", "db", cfg.MongoDatabase, "collection", cfg.MongoCollection)
	}

	var stores *store.Selector
	if durable != nil {
		stores = store.NewSelector(durable, fallback, health)
	} else {
		stores = store.NewSelector(nil, fallback, health)
	}

	app := httpapi.NewApp(cfg, stores)
	mux := httpapi.NewRouter(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())

	ctxSrv, cancelSrv := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelSrv()
	if err := srv.Shutdown(ctxSrv); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}

	cancel()
	if client != nil {
		ctxDb, cancelDb := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelDb()
		if err := client.Disconnect(ctxDb); err != nil {
			obs.Logger.Error("mongo_disconnect_error", "error", err)
		}
	}
	obs.Logger.Info("service_stopped")
}

// connectMongo builds the long-lived client. Connect itself does not reach
// the server; the ping decides whether a usable client exists at all.
func connectMongo(ctx context.Context, cfg config.Config) (*mongo.Client, error) {
	ctxConn, cancel := context.WithTimeout(ctx, cfg.MongoConnectTimeout)
	defer cancel()
	client, err := mongo.Connect(ctxConn, mongoopts.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	return client, nil
}
