package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/existflow/sticky/internal/app"
	"github.com/existflow/sticky/internal/config"
	"github.com/existflow/sticky/internal/logger"
	"github.com/existflow/sticky/internal/reminder"
	"github.com/existflow/sticky/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	addr := listenAddr(cfg.ListenAddr, os.Getenv("PORT"))

	logCfg := logger.DefaultConfig()
	logCfg.Level = logger.ParseLevel(cfg.LogLevel)
	logCfg.FilePath = cfg.LogFile
	logCfg.Console = true
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	a, err := app.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open notes: %v", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mon := a.NewMonitor(reminder.NewLogNotifier())
	if err := mon.Start(ctx); err != nil {
		log.Fatalf("Failed to start reminders: %v", err)
	}
	defer mon.Stop()

	log.Printf("Sticky API starting on %s", addr)
	if err := server.New(a.Store, a.Prefs, server.WithAccessLog(os.Stdout)).Run(ctx, addr); err != nil {
		log.Printf("Server failed: %v", err)
	}
}

// listenAddr keeps the API on the loopback interface when PORT is set
func listenAddr(configured, port string) string {
	if port == "" {
		return configured
	}
	return net.JoinHostPort("127.0.0.1", port)
}
