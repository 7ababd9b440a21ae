package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/suPer8Hu/clinic-inbox/internal/clinic"
	"github.com/suPer8Hu/clinic-inbox/internal/config"
	"github.com/suPer8Hu/clinic-inbox/internal/db"
	"github.com/suPer8Hu/clinic-inbox/internal/events"
	"github.com/suPer8Hu/clinic-inbox/internal/httpapi"
	"github.com/suPer8Hu/clinic-inbox/internal/store/rabbitmq"
	"github.com/suPer8Hu/clinic-inbox/internal/store/redisstore"
	"github.com/suPer8Hu/clinic-inbox/internal/store/s3store"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// an unreachable store keeps the API up: reads come back empty, writes fail with 503
	var gdb *gorm.DB
	if cfg.DBDSN == "" {
		log.Printf("[DB] DB_DSN empty, running without a store")
	} else if gdb, err = db.Connect(cfg.DBDSN); err != nil {
		log.Printf("[DB] connect failed, running without a store: %v", err)
		gdb = nil
	}
	defer db.Close(gdb)

	var deps httpapi.Deps

	rds := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rds.Ping(ctx); err != nil {
		log.Printf("[Redis] unavailable, token revocation disabled: %v", err)
		_ = rds.Close()
	} else {
		defer rds.Close()
		deps.Denylist, deps.Revoker = rds, rds
	}

	var pub events.Publisher = events.Nop{}
	if p, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue); err != nil {
		log.Printf("[Rabbit] unavailable, events dropped: %v", err)
	} else {
		defer p.Close()
		pub = p
	}

	if cfg.S3Bucket != "" {
		up, err := s3store.New(ctx, cfg.S3Bucket, cfg.S3PublicBaseURL)
		if err != nil {
			log.Printf("[S3] unavailable, attachments disabled: %v", err)
		} else {
			deps.Uploader = up
		}
	}

	repo := clinic.NewRepo(gdb).WithOwner(cfg.OwnerOpenID)
	svc := clinic.NewService(repo, pub, loc)
	r := httpapi.NewRouter(svc, cfg, deps)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
