package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nwinter/lifehub/internal/backup"
	"github.com/nwinter/lifehub/internal/database"
	"github.com/nwinter/lifehub/internal/logging"
	"github.com/nwinter/lifehub/internal/server"
	"github.com/nwinter/lifehub/internal/store"
)

func main() {
	// Optional; real deployments set the environment directly.
	godotenv.Load()

	logger := logging.Setup(os.Getenv("LIFEHUB_LOG_LEVEL"), os.Getenv("LIFEHUB_LOG_FORMAT"))

	port := os.Getenv("LIFEHUB_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("LIFEHUB_DB_PATH")
	if dbPath == "" {
		dbPath = "lifehub.db"
	}

	secret := os.Getenv("LIFEHUB_JWT_SECRET")
	if secret == "" {
		log.Fatal("LIFEHUB_JWT_SECRET is required")
	}

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	backupMgr := backup.NewManager(backupConfig(dbPath), db, store.NewBackupStore(db), logger.With("component", "backup"))
	backupMgr.Start(context.Background())
	defer backupMgr.Stop()

	srv := server.New(db, []byte(secret), logger)

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				srv.RateLimiter().Cleanup()
			case <-cleanupCtx.Done():
				return
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("LifeHub running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}

func backupConfig(dbPath string) backup.Config {
	interval, _ := time.ParseDuration(os.Getenv("LIFEHUB_BACKUP_INTERVAL"))
	retention, _ := strconv.Atoi(os.Getenv("LIFEHUB_BACKUP_RETENTION_DAYS"))

	return backup.Config{
		S3: backup.S3Config{
			Endpoint:  os.Getenv("LIFEHUB_BACKUP_S3_ENDPOINT"),
			Bucket:    os.Getenv("LIFEHUB_BACKUP_S3_BUCKET"),
			Region:    os.Getenv("LIFEHUB_BACKUP_S3_REGION"),
			AccessKey: os.Getenv("LIFEHUB_BACKUP_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("LIFEHUB_BACKUP_S3_SECRET_KEY"),
		},
		DBPath:        dbPath,
		Passphrase:    os.Getenv("LIFEHUB_BACKUP_PASSPHRASE"),
		Interval:      interval,
		RetentionDays: retention,
	}
}
