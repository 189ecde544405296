package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/Steller12/blogging-platform/app/config"
	"github.com/Steller12/blogging-platform/app/logger"
	"github.com/Steller12/blogging-platform/app/metrics"
	"github.com/Steller12/blogging-platform/app/repositories"
	"github.com/Steller12/blogging-platform/app/routes"
	"github.com/Steller12/blogging-platform/app/session"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("blogging-platform version %s\n", cliVersion)
	case "serve":
		serve()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`Usage: blogging-platform <command>

Commands:
  serve      Start the blog server
  version    Print the version
  help       Show this help`)
}

func serve() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	metrics.Init()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Error("failed to create data dir", "dir", cfg.DataDir, "err", err)
		os.Exit(1)
	}

	deps := routes.Deps{
		Sessions: session.NewManager(cfg.SessionTTL, cfg.RememberTTL),
		Log:      log,
	}

	switch cfg.StorageBackend {
	case config.BackendBadger:
		db, err := repositories.OpenBadger(filepath.Join(cfg.DataDir, "badger"))
		if err != nil {
			log.Error("failed to open badger", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		deps.Accounts = repositories.NewBadgerAccountStore(db)
		deps.Posts = repositories.NewBadgerPostRepository(db)

		tags := repositories.NewBadgerTagCatalog(db)
		// carry an existing tags.json into a fresh badger store
		fileTags, err := repositories.NewFileTagCatalog(filepath.Join(cfg.DataDir, "tags.json"), log).LoadAll()
		if err == nil && len(fileTags) > 0 {
			if err := tags.SeedTags(fileTags); err != nil {
				log.Error("failed to seed tags", "err", err)
			}
		}
		deps.Tags = tags
	default:
		deps.Accounts = repositories.NewFileAccountStore(filepath.Join(cfg.DataDir, "users.txt"), log)
		deps.Posts = repositories.NewFilePostRepository(filepath.Join(cfg.DataDir, "posts.json"), log)
		deps.Tags = repositories.NewFileTagCatalog(filepath.Join(cfg.DataDir, "tags.json"), log)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      routes.Setup(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("listening", "port", cfg.HTTPPort, "backend", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "err", err)
	}
}
