package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Skotchmaster/restaurant_pos/internal/config"
	"github.com/Skotchmaster/restaurant_pos/internal/db"
	"github.com/Skotchmaster/restaurant_pos/internal/es"
	"github.com/Skotchmaster/restaurant_pos/internal/events"
	"github.com/Skotchmaster/restaurant_pos/internal/httpserver"
	"github.com/Skotchmaster/restaurant_pos/internal/idempotency"
	"github.com/Skotchmaster/restaurant_pos/internal/logging"
	"github.com/Skotchmaster/restaurant_pos/internal/repo"
	"github.com/Skotchmaster/restaurant_pos/internal/search"
	"github.com/Skotchmaster/restaurant_pos/internal/service"
	"github.com/Skotchmaster/restaurant_pos/web"
)

func main() {
	config.LoadEnvFile(".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	l := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	ctx := context.Background()

	gdb, err := db.Open(ctx, cfg)
	if err != nil {
		l.Error("db_open_failed", "driver", cfg.Storage, "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		l.Error("db_migrate_failed", "error", err)
		os.Exit(1)
	}
	l.Info("db_ready", "driver", cfg.Storage)

	pub, err := events.New(cfg)
	if err != nil {
		l.Error("events_init_failed", "driver", cfg.Events, "error", err)
		os.Exit(1)
	}
	if cfg.Events != config.EventsNone {
		pub = events.NewAsync(pub, cfg.EventsQueueSize, l)
	}
	l.Info("events_ready", "driver", cfg.Events, "queue", cfg.EventsQueueSize)

	var (
		rdb   *redis.Client
		store idempotency.Store = idempotency.NewMemoryStore()
	)
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			l.Error("redis_ping_failed", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		store = idempotency.NewRedisStore(rdb)
	}
	guard := idempotency.NewGuard(store, cfg.IdempotencyTTL)

	r := repo.New(gdb)
	menuSvc := &service.MenuService{Repo: r, Events: pub}
	if cfg.ESURL != "" {
		client, err := es.NewClient(cfg, l)
		if err != nil {
			l.Warn("search_disabled", "error", err)
		} else {
			menuSvc.Index = search.NewMenuIndex(client, cfg.ESIndex)
			n, err := menuSvc.Reindex(ctx)
			if err != nil {
				l.Warn("menu_reindex_failed", "indexed", n, "error", err)
			} else {
				l.Info("menu_reindexed", "items", n)
			}
		}
	}

	e := httpserver.New(cfg, l)
	httpserver.Register(e, &httpserver.Deps{
		Menu:         &httpserver.MenuHTTP{Svc: menuSvc},
		Customers:    &httpserver.CustomerHTTP{Svc: &service.CustomerService{Repo: r}},
		Orders:       &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: r, Events: pub, Idem: guard}},
		Reservations: &httpserver.ReservationHTTP{Svc: &service.ReservationService{Repo: r, Events: pub}},
		Billing: &httpserver.BillingHTTP{Svc: &service.BillingService{
			Repo: r, Events: pub, Idem: guard, Numbers: service.NewBillNumberer(), TaxRate: cfg.DefaultTaxRate,
		}},
		Reports: &httpserver.ReportHTTP{Svc: &service.ReportService{Repo: r}},
		Static:  web.Static(),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		l.Info("http_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	go func() {
		<-quit
		l.Warn("force exit")
		os.Exit(1)
	}()

	l.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("server_shutdown_error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		l.Error("db_close_error", "error", err)
	}
	if err := pub.Close(); err != nil {
		l.Error("events_close_error", "error", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			l.Error("redis_close_error", "error", err)
		}
	}

	l.Info("shutdown complete")
}
